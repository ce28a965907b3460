package lexkind

import "testing"

func TestClassifyBuiltins(t *testing.T) {
	r := NewRegistry()
	r.BindInterfaceInventory(4)

	tests := []struct {
		kind  Kind
		input string
		want  bool
	}{
		{IPAddr, "192.168.1.1", true},
		{IPAddr, "256.1.1.1", false},
		{IPAddr, "1.2.3.4.5", false},
		{IPPrefix, "0.0.0.0/0", true},
		{IPPrefix, "255.255.255.255/32", true},
		{IPPrefix, "10.0.0.0/33", false},
		{IPMask, "255.255.255.0", true},
		{IPMask, "255.255.0.255", false},
		{Port, "0", true},
		{Port, "65535", true},
		{Port, "65536", false},
		{Port, "-1", false},
		{VLANID, "1", true},
		{VLANID, "4094", true},
		{VLANID, "0", false},
		{VLANID, "4095", false},
		{MACAddr, "00:11:22:33:44:55", true},
		{MACAddr, "00-11-22-33-44-55", true},
		{MACAddr, "001122334455", true},
		{MACAddr, "00:11:22:33:44", false},
		{IP6Addr, "2001:db8::1", true},
		{IP6Addr, "not-an-ip", false},
		{IP6Prefix, "2001:db8::/32", true},
		{DateTime, "201501010000", true},
		{DateTime, "201412312359", false},
		{DateTime, "202501011200.30", true},
		{EthIfname, "eth0", true},
		{EthIfname, "eth4", false},
		{TunIfname, "tun3", true},
		{TunIfname, "tun4", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := r.Classify(tt.kind, tt.input)
			if got != tt.want {
				t.Errorf("Classify(%v, %q) = %v, want %v", tt.kind, tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyRanged(t *testing.T) {
	r := NewRegistry()
	rng := Range{Min: 1, Max: 100, Set: true}

	if !r.ClassifyRanged(Int, "50", rng) {
		t.Error("50 should be within [1,100]")
	}
	if r.ClassifyRanged(Int, "101", rng) {
		t.Error("101 should be rejected by range")
	}
	if r.ClassifyRanged(Int, "abc", rng) {
		t.Error("non-numeric input should fail Int classification")
	}
}

func TestRegisterCustomReplacesPriorEntry(t *testing.T) {
	r := NewRegistry()
	id := CustomBase

	calls := 0
	if err := r.RegisterCustom(id, "FIRST", func(string) bool { calls++; return true }, "first", ""); err != nil {
		t.Fatalf("RegisterCustom: %v", err)
	}
	r.Classify(id, "x")
	if calls != 1 {
		t.Fatalf("expected first predicate to run once, got %d", calls)
	}

	if err := r.RegisterCustom(id, "SECOND", func(string) bool { return false }, "second", ""); err != nil {
		t.Fatalf("RegisterCustom replace: %v", err)
	}
	if r.Classify(id, "x") {
		t.Error("second registration should have replaced the first")
	}
	if r.DisplayName(id) != "SECOND" {
		t.Errorf("DisplayName = %q, want SECOND", r.DisplayName(id))
	}
}

func TestRegisterCustomOutOfRange(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterCustom(IPAddr, "BAD", func(string) bool { return true }, "", ""); err == nil {
		t.Error("expected error registering a custom kind inside the built-in range")
	}
}

type fakeLister struct{ names []string }

func (f fakeLister) LinkNames() ([]string, error) { return f.names, nil }

func TestDiscoverEthIfnum(t *testing.T) {
	if got := DiscoverEthIfnum(nil); got != defaultEthIfnum {
		t.Errorf("nil lister: got %d, want default %d", got, defaultEthIfnum)
	}
	if got := DiscoverEthIfnum(fakeLister{names: []string{"lo", "eth0", "eth1", "wlan0"}}); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	many := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		many = append(many, "eth")
	}
	if got := DiscoverEthIfnum(fakeLister{names: many}); got != 10 {
		t.Errorf("got %d, want capped at 10", got)
	}
}
