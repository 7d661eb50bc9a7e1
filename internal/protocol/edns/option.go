package edns

import (
	"github.com/danmuck/ednsctl/internal/protocol/wire"
	"github.com/rs/zerolog/log"
)

// optionHeaderSize is option-code(2) + option-length(2).
const optionHeaderSize = 2 + 2

const maxOptionData = int(^uint16(0))

// Option is one typed EDNS(0) option. Pack and Unpack handle only the
// option data; the header is owned by WriteOption and ReadOption.
type Option interface {
	Code() OptionCode
	Pack(out *wire.Output) error
	Unpack(in *wire.Input) error
	String() string
}

// WriteOption appends the option header and data to out. On failure out is
// left at its length before the call.
func WriteOption(out *wire.Output, opt Option) error {
	if opt == nil {
		return ErrNilOption
	}
	start := out.Len()
	out.WriteU16(uint16(opt.Code()))
	lenPos := out.Len()
	out.WriteU16(0)
	if err := opt.Pack(out); err != nil {
		out.Truncate(start)
		return &OptionError{Code: opt.Code(), Err: err}
	}
	dataLen := out.Len() - lenPos - 2
	if dataLen > maxOptionData {
		out.Truncate(start)
		return &OptionError{Code: opt.Code(), Err: ErrOptionTooLong}
	}
	if err := out.WriteU16At(lenPos, uint16(dataLen)); err != nil {
		out.Truncate(start)
		return &OptionError{Code: opt.Code(), Err: err}
	}
	return nil
}

// ReadOption reads one option header, bounds the cursor to the declared
// length and dispatches the data to the registered codec.
func ReadOption(in *wire.Input) (Option, error) {
	raw, err := in.ReadU16()
	if err != nil {
		return nil, err
	}
	code := OptionCode(raw)
	length, err := in.ReadU16()
	if err != nil {
		return nil, &OptionError{Code: code, Err: err}
	}
	if err := in.SetActive(int(length)); err != nil {
		return nil, &OptionError{Code: code, Err: err}
	}
	defer in.ClearActive()

	opt := NewOption(code)
	if err := opt.Unpack(in); err != nil {
		log.Error().Str("option", code.String()).Uint16("len", length).Err(err).Msg("edns option decode failed")
		return nil, &OptionError{Code: code, Err: err}
	}
	if in.Remaining() != 0 {
		return nil, &OptionError{Code: code, Err: ErrTrailingData}
	}
	log.Debug().Str("option", code.String()).Uint16("len", length).Msg("edns option decoded")
	return opt, nil
}

// PackOptions encodes opts as OPT RDATA.
func PackOptions(opts []Option) ([]byte, error) {
	out := wire.NewOutput(0)
	for _, opt := range opts {
		if err := WriteOption(out, opt); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

// UnpackOptions decodes OPT RDATA into its options, in wire order.
func UnpackOptions(rdata []byte) ([]Option, error) {
	in := wire.NewInput(rdata)
	opts := make([]Option, 0, 2)
	for in.Remaining() > 0 {
		if in.Remaining() < optionHeaderSize {
			return nil, wire.ErrTruncated
		}
		opt, err := ReadOption(in)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// Find returns the first option with the given code.
func Find(opts []Option, code OptionCode) (Option, bool) {
	for _, opt := range opts {
		if opt != nil && opt.Code() == code {
			return opt, true
		}
	}
	return nil, false
}

// FormatOption renders an option for logs, e.g. {EDE: 15(Blocked)()}.
func FormatOption(opt Option) string {
	if opt == nil {
		return "{}"
	}
	return "{" + opt.Code().String() + ": " + opt.String() + "}"
}
