// Package inspect wires the EDNS codecs to hex input and output for the
// CLI and the HTTP inspector.
package inspect

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/ednsctl/internal/observability"
	"github.com/danmuck/ednsctl/internal/output"
	"github.com/danmuck/ednsctl/internal/protocol/edns"
	"github.com/danmuck/ednsctl/internal/protocol/wire"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidHex      = errors.New("inspect: invalid hex input")
	ErrMessageTooLarge = errors.New("inspect: input exceeds max message bytes")
)

// ParseHex accepts hex with optional whitespace, colons and a 0x prefix.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.NewReplacer(" ", "", "\n", "", "\t", "", ":", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	return b, nil
}

// Decode parses hex OPT RDATA into option views. maxBytes <= 0 disables the
// size check.
func Decode(hexInput string, maxBytes int) ([]output.OptionView, error) {
	rdata, err := ParseHex(hexInput)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && len(rdata) > maxBytes {
		return nil, fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(rdata), maxBytes)
	}
	opts, err := edns.UnpackOptions(rdata)
	if err != nil {
		recordFailure(err)
		return nil, err
	}
	observability.RecordOptions(opts, observability.OutcomeDecoded)
	log.Debug().Int("bytes", len(rdata)).Int("options", len(opts)).Msg("decoded opt rdata")
	return output.ViewOptions(opts), nil
}

// EncodeExtendedError builds an EDE option and returns its full wire form,
// option header included.
func EncodeExtendedError(code string, extraText string) (output.EncodeResult, error) {
	infoCode, err := edns.ParseErrorCode(code)
	if err != nil {
		return output.EncodeResult{}, err
	}
	opt := edns.NewExtendedError(infoCode, extraText)
	out := wire.NewOutput(0)
	if err := edns.WriteOption(out, opt); err != nil {
		recordFailure(err)
		return output.EncodeResult{}, err
	}
	observability.RecordOptions([]edns.Option{opt}, observability.OutcomeEncoded)
	if !infoCode.Known() {
		log.Warn().Uint16("info_code", infoCode.ID()).Msg("encoding unassigned extended error code")
	}
	return output.EncodeResult{
		Option: output.ViewOption(opt),
		Hex:    hex.EncodeToString(out.Bytes()),
	}, nil
}

func recordFailure(err error) {
	var optErr *edns.OptionError
	if errors.As(err, &optErr) {
		observability.RecordOptionFailure(optErr.Code)
	}
}
