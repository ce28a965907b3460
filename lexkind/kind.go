// Package lexkind implements the lexical validator registry (spec §4.A):
// a typed catalog of string recognizers with cached compiled regular
// expressions, extensible with application-registered custom kinds.
package lexkind

// Kind identifies a lexical category. Built-in kinds are dense and stable
// within a process; custom kinds start at CustomBase and run for
// MaxCustomKinds slots, mirroring original_source/src/lex.h's
// LEX_CUSTOM_BASE_TYPE / MAX_CUSTOM_LEX_NUM split.
type Kind int

const (
	IPAddr Kind = iota
	IPMask
	IPPrefix
	IPBlock
	IPRange
	IP6Addr
	IP6Prefix
	IP6Block
	Port
	PortRange
	VLANID
	MACAddr
	Int
	Hex
	Decimal
	Word
	Words
	HostName
	Host
	DomainName
	DomainWildcard
	Email
	HTTPURL
	HTTPSURL
	FTPURL
	SCPURL
	TFTPURL
	FileName
	FilePath
	UID
	NetUID
	Net6UID
	DateTime
	Date
	EthIfname
	TunIfname
	PPPIfname
	MbitsBW

	// CustomBase is the first id available to RegisterCustom.
	CustomBase Kind = 128
)

// MaxCustomKinds is the number of custom kind slots available to an
// application, matching original_source/src/lex.h's MAX_CUSTOM_LEX_NUM.
const MaxCustomKinds = 128

// Range expresses an inclusive numeric bound, attached to a Var symbol
// referencing an Int or Decimal kind (spec §3 "Symbol").
type Range struct {
	Min, Max int
	Set      bool
}

func (r Range) Contains(v int) bool {
	if !r.Set {
		return true
	}
	return v >= r.Min && v <= r.Max
}
