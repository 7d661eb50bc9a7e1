package edns

import (
	"encoding/hex"

	"github.com/danmuck/ednsctl/internal/protocol/wire"
)

// GenericOption carries the undecoded payload of an option without a
// registered codec.
type GenericOption struct {
	OptCode OptionCode
	Data    []byte
}

var _ Option = (*GenericOption)(nil)

func (o *GenericOption) Code() OptionCode {
	return o.OptCode
}

func (o *GenericOption) Pack(out *wire.Output) error {
	out.WriteBytes(o.Data)
	return nil
}

func (o *GenericOption) Unpack(in *wire.Input) error {
	o.Data = in.ReadRemaining()
	return nil
}

func (o *GenericOption) String() string {
	return "<" + hex.EncodeToString(o.Data) + ">"
}
