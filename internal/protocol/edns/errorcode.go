package edns

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorCode is the 16-bit INFO-CODE of an Extended DNS Error. Values
// outside the known table are legal on the wire and are kept as-is.
type ErrorCode uint16

// Extended DNS Error codes (RFC 8914 section 4).
const (
	EDEOther                      ErrorCode = 0
	EDEUnsupportedDNSKEYAlgorithm ErrorCode = 1
	EDEUnsupportedDSDigestType    ErrorCode = 2
	EDEStaleAnswer                ErrorCode = 3
	EDEForgedAnswer               ErrorCode = 4
	EDEDNSSECIndeterminate        ErrorCode = 5
	EDEDNSSECBogus                ErrorCode = 6
	EDESignatureExpired           ErrorCode = 7
	EDESignatureNotYetValid       ErrorCode = 8
	EDEDNSKEYMissing              ErrorCode = 9
	EDERRSIGsMissing              ErrorCode = 10
	EDENoZoneKeyBitSet            ErrorCode = 11
	EDENSECMissing                ErrorCode = 12
	EDECachedError                ErrorCode = 13
	EDENotReady                   ErrorCode = 14
	EDEBlocked                    ErrorCode = 15
	EDECensored                   ErrorCode = 16
	EDEFiltered                   ErrorCode = 17
	EDEProhibited                 ErrorCode = 18
	EDEStaleNXDOMAINAnswer        ErrorCode = 19
	EDENotAuthoritative           ErrorCode = 20
	EDENotSupported               ErrorCode = 21
	EDENoReachableAuthority       ErrorCode = 22
	EDENetworkError               ErrorCode = 23
	EDEInvalidData                ErrorCode = 24
)

// UnknownLabel is printed for codes missing from the table.
const UnknownLabel = "Unknown"

type errorCodeEntry struct {
	name  string
	label string
}

// errorCodes is indexed by numeric id.
var errorCodes = [...]errorCodeEntry{
	EDEOther:                      {"Other", "Other"},
	EDEUnsupportedDNSKEYAlgorithm: {"UnsupportedDNSKEYAlgorithm", "Unsupported DNSKEY Algorithm"},
	EDEUnsupportedDSDigestType:    {"UnsupportedDSDigestType", "Unsupported DS Digest Type"},
	EDEStaleAnswer:                {"StaleAnswer", "Stale Answer"},
	EDEForgedAnswer:               {"ForgedAnswer", "Forged Answer"},
	EDEDNSSECIndeterminate:        {"DNSSECIndeterminate", "DNSSEC Indeterminate"},
	EDEDNSSECBogus:                {"DNSSECBogus", "DNSSEC Bogus"},
	EDESignatureExpired:           {"SignatureExpired", "Signature Expired"},
	EDESignatureNotYetValid:       {"SignatureNotYetValid", "Signature Not Yet Valid"},
	EDEDNSKEYMissing:              {"DNSKEYMissing", "DNSKEY Missing"},
	EDERRSIGsMissing:              {"RRSIGsMissing", "RRSIGs Missing"},
	EDENoZoneKeyBitSet:            {"NoZoneKeyBitSet", "No Zone Key Bit Set"},
	EDENSECMissing:                {"NSECMissing", "NSEC Missing"},
	EDECachedError:                {"CachedError", "Cached Error"},
	EDENotReady:                   {"NotReady", "Not Ready"},
	EDEBlocked:                    {"Blocked", "Blocked"},
	EDECensored:                   {"Censored", "Censored"},
	EDEFiltered:                   {"Filtered", "Filtered"},
	EDEProhibited:                 {"Prohibited", "Prohibited"},
	EDEStaleNXDOMAINAnswer:        {"StaleNXDOMAINAnswer", "Stale NXDOMAIN Answer"},
	EDENotAuthoritative:           {"NotAuthoritative", "Not Authoritative"},
	EDENotSupported:               {"NotSupported", "Not Supported"},
	EDENoReachableAuthority:       {"NoReachableAuthority", "No Reachable Authority"},
	EDENetworkError:               {"NetworkError", "Network Error"},
	EDEInvalidData:                {"InvalidData", "Invalid Data"},
}

// LookupErrorCode resolves a numeric id against the known table. The
// second result is false for ids the table does not define.
func LookupErrorCode(id uint16) (ErrorCode, bool) {
	if int(id) >= len(errorCodes) {
		return 0, false
	}
	return ErrorCode(id), true
}

// KnownErrorCodes returns every defined code in ascending order.
func KnownErrorCodes() []ErrorCode {
	out := make([]ErrorCode, len(errorCodes))
	for i := range errorCodes {
		out[i] = ErrorCode(i)
	}
	return out
}

// ID returns the numeric wire value.
func (c ErrorCode) ID() uint16 {
	return uint16(c)
}

// Known reports whether c is in the table.
func (c ErrorCode) Known() bool {
	_, ok := LookupErrorCode(uint16(c))
	return ok
}

// Label returns the human-readable label, or UnknownLabel.
func (c ErrorCode) Label() string {
	if !c.Known() {
		return UnknownLabel
	}
	return errorCodes[c].label
}

// Name returns the compact identifier used by ParseErrorCode.
func (c ErrorCode) Name() string {
	if !c.Known() {
		return "CODE" + strconv.Itoa(int(c))
	}
	return errorCodes[c].name
}

func (c ErrorCode) String() string {
	return c.Label()
}

// ParseErrorCode accepts a decimal id, a label ("Forged Answer") or a
// compact name ("ForgedAnswer"), case-insensitively. Decimal ids outside
// the table are accepted since the wire allows them.
func ParseErrorCode(s string) (ErrorCode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnknownCode)
	}
	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		return ErrorCode(n), nil
	}
	for i, entry := range errorCodes {
		if strings.EqualFold(s, entry.name) || strings.EqualFold(s, entry.label) {
			return ErrorCode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCode, s)
}
