package edns

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEncoding = errors.New("edns: extra text is not valid UTF-8")
	ErrEncoding        = errors.New("edns: extra text cannot be encoded as UTF-8")
	ErrOptionTooLong   = errors.New("edns: option data exceeds 65535 bytes")
	ErrTrailingData    = errors.New("edns: option data not fully consumed")
	ErrNilOption       = errors.New("edns: nil option")
	ErrUnknownCode     = errors.New("edns: unknown extended error code")
)

// OptionError attaches the option code to a failure raised while reading
// or writing that option.
type OptionError struct {
	Code OptionCode
	Err  error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("edns: option %s: %v", e.Code, e.Err)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}
