package ir

// ConstantHandle identifies a Constant by its SPIR-V result id.
type ConstantHandle uint32

// ConstantValue is the tagged variant a Constant's value takes: a
// ScalarValue, a CompositeValue, or a SpecValue.
type ConstantValue interface {
	constantValue()
}

// ScalarValue holds a scalar constant's raw bit pattern, tagged with its
// kind and width so callers never truncate through a host integer type.
// Spec constants can be as narrow as bool or as wide as u64; widen or
// narrow only at the edges, never by default.
type ScalarValue struct {
	Bits  uint64
	Kind  ScalarKind
	Width uint32
}

func (ScalarValue) constantValue() {}

// CompositeValue is an ordered list of component constant ids.
type CompositeValue struct {
	Components []ConstantHandle
}

func (CompositeValue) constantValue() {}

// SpecValue is a specialization constant: Default is the module's
// declared value, Folded is the effective value after specialization
// folding applies the caller's specialization map (equal to Default
// when the caller supplied nothing for this SpecID).
type SpecValue struct {
	SpecID  uint32
	Default ConstantValue
	Folded  ConstantValue
}

func (SpecValue) constantValue() {}

// Constant is a module-scope constant.
type Constant struct {
	Type  TypeHandle
	Value ConstantValue
}
