//go:build !linux

package lexkind

// DefaultLinkLister has no netlink-backed source outside Linux; callers
// fall back to DiscoverEthIfnum's documented default of 4 (spec §6).
func DefaultLinkLister() linkLister { return nil }
