package edns

// factories maps option codes to their typed codec. It is populated at
// package init and never mutated afterwards.
var factories = map[OptionCode]func() Option{
	CodeEDE: func() Option { return &ExtendedError{} },
}

// NewOption returns an empty codec for code. Codes without a typed codec
// get a GenericOption so their payload survives a decode/encode cycle.
func NewOption(code OptionCode) Option {
	if factory, ok := factories[code]; ok {
		return factory()
	}
	return &GenericOption{OptCode: code}
}

// Registered reports whether code has a typed codec.
func Registered(code OptionCode) bool {
	_, ok := factories[code]
	return ok
}
