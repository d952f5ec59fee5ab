package spirq

import (
	"errors"

	"github.com/gogpu/spirq/spirv"
)

// Kind is the reflection engine's error taxonomy. It is intentionally
// small: reflection either couldn't start (an argument problem, decided
// before a single instruction is read), the module itself is malformed
// in a way tolerance can't paper over, or a caller-supplied
// specialization value doesn't fit its constant (found during folding).
type Kind uint8

const (
	KindArgumentNull Kind = iota
	KindArgumentOutOfRange
	KindInvalidArgument
	KindCorruptedSpirv
	KindUnsupportedSpirv
	KindInvalidSpecialization
)

func (k Kind) String() string {
	switch k {
	case KindArgumentNull:
		return "ArgumentNull"
	case KindArgumentOutOfRange:
		return "ArgumentOutOfRange"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindCorruptedSpirv:
		return "CorruptedSpirv"
	case KindUnsupportedSpirv:
		return "UnsupportedSpirv"
	case KindInvalidSpecialization:
		return "InvalidSpecialization"
	default:
		return "Unknown"
	}
}

// Error is the single error type Reflect ever returns: every pass
// returns the first Error it encounters, and later passes never run.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// wrapDecodeError lifts a spirv.DecodeError into the public taxonomy so
// callers never need to import the spirv package to inspect a failure.
func wrapDecodeError(err error) *Error {
	var decErr *spirv.DecodeError
	if errors.As(err, &decErr) {
		kind := KindCorruptedSpirv
		if decErr.Kind == spirv.ErrUnsupportedSpirv {
			kind = KindUnsupportedSpirv
		}
		return &Error{Kind: kind, Message: decErr.Message, Cause: err}
	}
	return &Error{Kind: KindCorruptedSpirv, Message: err.Error(), Cause: err}
}
