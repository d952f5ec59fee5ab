package spirq

import "github.com/gogpu/spirq/spirv"

// LoadWords decodes a raw wire-format SPIR-V buffer into the host-endian
// word array Config.Spirv expects, detecting whether the buffer was
// written little- or big-endian from its magic number.
func LoadWords(data []byte) ([]uint32, error) {
	words, err := spirv.DecodeWords(data)
	if err != nil {
		return nil, wrapDecodeError(err)
	}
	return words, nil
}

// decodedModule holds the parsed header plus the full, eagerly-decoded
// instruction stream every later pass shares.
type decodedModule struct {
	header spirv.Header
	instrs []spirv.Instr
}

func decodeModule(cfg Config) (*decodedModule, *Error) {
	if cfg.Spirv == nil {
		return nil, &Error{Kind: KindArgumentNull, Message: "Config.Spirv is nil"}
	}
	if len(cfg.Spirv) < spirv.HeaderWords {
		return nil, &Error{Kind: KindArgumentOutOfRange, Message: "Config.Spirv is shorter than a SPIR-V header"}
	}

	header, err := spirv.ParseHeader(cfg.Spirv)
	if err != nil {
		return nil, wrapDecodeError(err)
	}

	instrs, err := spirv.NewInstrs(cfg.Spirv[spirv.HeaderWords:]).All()
	if err != nil {
		return nil, wrapDecodeError(err)
	}

	return &decodedModule{header: header, instrs: instrs}, nil
}
