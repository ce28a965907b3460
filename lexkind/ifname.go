package lexkind

import "strings"

// ethPrefixes are the link name prefixes counted as "ethernet" for the
// ETH_IFNAME bound, covering both legacy (eth) and predictable (en*) Linux
// naming schemes.
var ethPrefixes = []string{"eth", "eno", "ens", "enp", "en"}

// linkLister abstracts github.com/vishvananda/netlink's LinkList so this
// package stays testable without a real netlink socket.
type linkLister interface {
	LinkNames() ([]string, error)
}

// DiscoverEthIfnum returns a non-negative integer giving the count of
// ethernet interfaces present at init time, per spec §6's external-system
// contract: "provide a non-negative integer = count of ethernet interfaces
// present at init time. Absent a platform source, default to 4, cap at 10."
// A lister that reports no ethernet-like names also yields the default of 4.
func DiscoverEthIfnum(l linkLister) int {
	if l == nil {
		return defaultEthIfnum
	}
	names, err := l.LinkNames()
	if err != nil {
		return defaultEthIfnum
	}
	n := 0
	for _, name := range names {
		if isEthLikeName(name) {
			n++
		}
	}
	if n == 0 {
		return defaultEthIfnum
	}
	if n > 10 {
		n = 10
	}
	return n
}

func isEthLikeName(name string) bool {
	for _, p := range ethPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
