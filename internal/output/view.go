package output

import (
	"encoding/hex"

	"github.com/danmuck/ednsctl/internal/protocol/edns"
)

// OptionView is the presentation shape of one decoded option.
type OptionView struct {
	Option    string  `json:"option" yaml:"option"`
	Code      uint16  `json:"code" yaml:"code"`
	InfoCode  *uint16 `json:"info_code,omitempty" yaml:"info_code,omitempty"`
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	ExtraText string  `json:"extra_text,omitempty" yaml:"extra_text,omitempty"`
	Data      string  `json:"data,omitempty" yaml:"data,omitempty"`
	Text      string  `json:"text" yaml:"text"`
}

// CodeView is one row of the Extended DNS Error table.
type CodeView struct {
	ID    uint16 `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

func ViewOption(opt edns.Option) OptionView {
	v := OptionView{
		Option: opt.Code().String(),
		Code:   uint16(opt.Code()),
		Text:   edns.FormatOption(opt),
	}
	switch o := opt.(type) {
	case *edns.ExtendedError:
		id := o.InfoCode.ID()
		v.InfoCode = &id
		v.Label = o.InfoCode.Label()
		v.ExtraText = o.ExtraText
	case *edns.GenericOption:
		v.Data = hex.EncodeToString(o.Data)
	}
	return v
}

func ViewOptions(opts []edns.Option) []OptionView {
	views := make([]OptionView, 0, len(opts))
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		views = append(views, ViewOption(opt))
	}
	return views
}

func ViewCodes() []CodeView {
	codes := edns.KnownErrorCodes()
	views := make([]CodeView, 0, len(codes))
	for _, c := range codes {
		views = append(views, CodeView{ID: c.ID(), Name: c.Name(), Label: c.Label()})
	}
	return views
}

// EncodeResult pairs an encoded option with its wire bytes in hex.
type EncodeResult struct {
	Option OptionView `json:"option" yaml:"option"`
	Hex    string     `json:"hex" yaml:"hex"`
}
