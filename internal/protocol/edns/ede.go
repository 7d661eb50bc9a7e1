package edns

import (
	"fmt"
	"strconv"

	"github.com/danmuck/ednsctl/internal/protocol/wire"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ExtendedError is the Extended DNS Error option (RFC 8914).
//
// Wire layout of the option data:
//
//	offset  size  field
//	0       2     INFO-CODE
//	2       N     EXTRA-TEXT (UTF-8, N = option length - 2)
type ExtendedError struct {
	InfoCode  ErrorCode
	ExtraText string
}

var _ Option = (*ExtendedError)(nil)

func NewExtendedError(code ErrorCode, extraText string) *ExtendedError {
	return &ExtendedError{InfoCode: code, ExtraText: extraText}
}

// DecodeExtendedError reads the option data from in, which must be bounded
// to the declared option length.
func DecodeExtendedError(in *wire.Input) (*ExtendedError, error) {
	e := &ExtendedError{}
	if err := e.Unpack(in); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *ExtendedError) Code() OptionCode {
	return CodeEDE
}

// Resolved looks the info code up in the known table.
func (e *ExtendedError) Resolved() (ErrorCode, bool) {
	return LookupErrorCode(uint16(e.InfoCode))
}

// Unpack consumes the whole active window. e is only modified on success.
func (e *ExtendedError) Unpack(in *wire.Input) error {
	code, err := in.ReadU16()
	if err != nil {
		return err
	}
	raw := in.ReadRemaining()
	text, err := decodeUTF8(raw)
	if err != nil {
		return err
	}
	e.InfoCode = ErrorCode(code)
	e.ExtraText = text
	return nil
}

// Pack writes nothing when the extra text fails validation.
func (e *ExtendedError) Pack(out *wire.Output) error {
	text, err := encodeUTF8(e.ExtraText)
	if err != nil {
		return err
	}
	out.WriteU16(uint16(e.InfoCode))
	if len(text) > 0 {
		out.WriteBytes(text)
	}
	return nil
}

func (e *ExtendedError) String() string {
	return strconv.Itoa(int(e.InfoCode)) + "(" + e.InfoCode.Label() + ")(" + e.ExtraText + ")"
}

func decodeUTF8(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	valid, _, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return string(valid), nil
}

func encodeUTF8(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	valid, _, err := transform.String(encoding.UTF8Validator, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return []byte(valid), nil
}
