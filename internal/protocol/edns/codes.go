package edns

import "strconv"

// OptionCode is the 16-bit EDNS(0) option type carried in each option header.
type OptionCode uint16

// Option codes from the IANA EDNS0 option registry.
const (
	CodeLLQ          OptionCode = 1
	CodeUL           OptionCode = 2
	CodeNSID         OptionCode = 3
	CodeDAU          OptionCode = 5
	CodeDHU          OptionCode = 6
	CodeN3U          OptionCode = 7
	CodeClientSubnet OptionCode = 8
	CodeExpire       OptionCode = 9
	CodeCookie       OptionCode = 10
	CodeTCPKeepalive OptionCode = 11
	CodePadding      OptionCode = 12
	CodeChain        OptionCode = 13
	CodeKeyTag       OptionCode = 14
	CodeEDE          OptionCode = 15
)

var optionMnemonics = map[OptionCode]string{
	CodeLLQ:          "LLQ",
	CodeUL:           "UL",
	CodeNSID:         "NSID",
	CodeDAU:          "DAU",
	CodeDHU:          "DHU",
	CodeN3U:          "N3U",
	CodeClientSubnet: "ECS",
	CodeExpire:       "EXPIRE",
	CodeCookie:       "COOKIE",
	CodeTCPKeepalive: "TCP-KEEPALIVE",
	CodePadding:      "PADDING",
	CodeChain:        "CHAIN",
	CodeKeyTag:       "KEY-TAG",
	CodeEDE:          "EDE",
}

// String returns the registry mnemonic, or CODE<n> for unassigned values.
func (c OptionCode) String() string {
	if name, ok := optionMnemonics[c]; ok {
		return name
	}
	return "CODE" + strconv.Itoa(int(c))
}
