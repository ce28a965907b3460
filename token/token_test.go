package token

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	got := Tokenize(`set interface "ge-0/0/0" description "uplink to isp"`)
	want := []string{"set", "interface", "ge-0/0/0", "description", "uplink to isp"}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Value != w {
			t.Errorf("token %d = %q, want %q", i, got[i].Value, w)
		}
	}
}

func TestTokenizeOffsets(t *testing.T) {
	line := "ping -c 3"
	toks := Tokenize(line)
	var spans [][2]int
	for _, tk := range toks {
		spans = append(spans, [2]int{tk.Start, tk.End})
	}
	want := [][2]int{{0, 4}, {5, 7}, {8, 9}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("spans = %v, want %v", spans, want)
	}
}

func TestTokenizeTruncatesLongToken(t *testing.T) {
	long := make([]byte, MaxTextLen+10)
	for i := range long {
		long[i] = 'a'
	}
	toks := Tokenize(string(long))
	if len(toks[0].Value) != MaxTextLen {
		t.Errorf("expected truncation to %d, got %d", MaxTextLen, len(toks[0].Value))
	}
}

func TestTokenizeCapsArgCount(t *testing.T) {
	line := ""
	for i := 0; i < MaxArgNum+10; i++ {
		line += "a "
	}
	toks := Tokenize(line)
	if len(toks) != MaxArgNum {
		t.Errorf("got %d tokens, want cap of %d", len(toks), MaxArgNum)
	}
}
