package edns

import (
	"errors"
	"testing"
)

func TestLookupErrorCodeKnownRange(t *testing.T) {
	for id := uint16(0); id <= 24; id++ {
		code, ok := LookupErrorCode(id)
		if !ok {
			t.Fatalf("expected id %d to resolve", id)
		}
		if code.ID() != id {
			t.Fatalf("LookupErrorCode(%d) returned id %d", id, code.ID())
		}
		if code.Label() == UnknownLabel || code.Label() == "" {
			t.Fatalf("id %d has no label", id)
		}
	}
}

func TestLookupErrorCodeUnknown(t *testing.T) {
	for _, id := range []uint16{25, 9999, 65535} {
		if _, ok := LookupErrorCode(id); ok {
			t.Fatalf("expected id %d to be absent", id)
		}
		if got := ErrorCode(id).Label(); got != UnknownLabel {
			t.Fatalf("unknown id %d label = %q", id, got)
		}
	}
}

func TestErrorCodeLabels(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{EDEOther, "Other"},
		{EDEUnsupportedDNSKEYAlgorithm, "Unsupported DNSKEY Algorithm"},
		{EDEDNSSECBogus, "DNSSEC Bogus"},
		{EDEBlocked, "Blocked"},
		{EDEStaleNXDOMAINAnswer, "Stale NXDOMAIN Answer"},
		{EDEInvalidData, "Invalid Data"},
	}
	for _, tt := range tests {
		if got := tt.code.Label(); got != tt.want {
			t.Fatalf("code %d label = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestLabelsAreDistinct(t *testing.T) {
	seen := make(map[string]ErrorCode)
	for _, code := range KnownErrorCodes() {
		if prev, ok := seen[code.Label()]; ok {
			t.Fatalf("label %q shared by %d and %d", code.Label(), prev, code)
		}
		seen[code.Label()] = code
	}
	if len(seen) != 25 {
		t.Fatalf("expected 25 known codes, got %d", len(seen))
	}
}

func TestParseErrorCode(t *testing.T) {
	tests := []struct {
		in   string
		want ErrorCode
	}{
		{"4", EDEForgedAnswer},
		{"forged answer", EDEForgedAnswer},
		{"ForgedAnswer", EDEForgedAnswer},
		{" blocked ", EDEBlocked},
		{"9999", ErrorCode(9999)},
	}
	for _, tt := range tests {
		got, err := ParseErrorCode(tt.in)
		if err != nil {
			t.Fatalf("ParseErrorCode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseErrorCode(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"", "not-a-code", "70000"} {
		if _, err := ParseErrorCode(in); !errors.Is(err, ErrUnknownCode) {
			t.Fatalf("ParseErrorCode(%q): expected ErrUnknownCode, got %v", in, err)
		}
	}
}
