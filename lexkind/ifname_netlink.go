//go:build linux

package lexkind

import "github.com/vishvananda/netlink"

// netlinkLister adapts vishvananda/netlink.LinkList to linkLister. This is
// the concrete realization of spec §6's "host's network interface
// inventory" contract, ported in spirit from
// original_source/example/mylex.c's get_dev_ifnum (which parsed
// /proc/net/dev) but sourced from a real library already present in this
// example pack (canonical-snapd) instead of hand-parsing procfs.
type netlinkLister struct{}

func (netlinkLister) LinkNames() ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Attrs().Name)
	}
	return names, nil
}

// DefaultLinkLister returns the platform's interface inventory source.
func DefaultLinkLister() linkLister { return netlinkLister{} }
