package spirq

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/gogpu/spirq/ir"
	"github.com/gogpu/spirq/spirv"
)

// specValue is the small i64/u64/bool value union OpSpecConstantOp
// expressions are folded over. Values stay tagged with their bit width
// so evalSpecOp never lowers to the host's native integer type without
// a width check — spec constants can be as narrow as u8 or as wide as
// u64.
type specValue struct {
	bits  uint64
	kind  ir.ScalarKind
	width uint32
}

// foldSpecialization applies Config.Specializations to every
// OpSpecConstant{,True,False}, then evaluates OpSpecConstantOp in
// declaration order so an expression's operands are already folded by
// the time it runs.
func foldSpecialization(instrs []spirv.Instr, names *nameTable, ts *typeSystem, cfg Config) *Error {
	for _, in := range instrs {
		switch in.Op {
		case spirv.OpSpecConstantTrue, spirv.OpSpecConstantFalse, spirv.OpSpecConstant:
			ops := in.Operands()
			_, _ = ops.Id() // type, already resolved by buildTypeSystem
			id, _ := ops.Id()
			if err := applyOverride(ts, id, cfg); err != nil {
				return err
			}
		}
	}

	for _, in := range instrs {
		if in.Op != spirv.OpSpecConstantOp {
			continue
		}
		ops := in.Operands()
		tyID, _ := ops.Id()
		id, _ := ops.Id()
		boundOpWord, _ := ops.U32()
		boundOp := spirv.Op(boundOpWord)

		var operands []specValue
		for ops.Len() > 0 {
			opID, _ := ops.Id()
			operands = append(operands, ts.specValueOf(ir.ConstantHandle(opID)))
		}

		scalar, _ := ts.scalarAt(ir.TypeHandle(tyID))
		result, known := evalSpecOp(boundOp, operands)
		folded := ir.ConstantValue(ir.ScalarValue{Kind: scalar.Kind, Width: scalar.Bits})
		if known {
			folded = ir.ScalarValue{Bits: result.bits, Kind: scalar.Kind, Width: scalar.Bits}
		} else {
			cfg.Logger.Warn("OpSpecConstantOp uses an unsupported opcode, folding to zero",
				zap.Uint32("result_id", id), zap.String("op", boundOp.String()))
		}
		ts.constants[ir.ConstantHandle(id)] = ir.Constant{Type: ir.TypeHandle(tyID), Value: folded}
	}
	return nil
}

func applyOverride(ts *typeSystem, id uint32, cfg Config) *Error {
	c, ok := ts.constants[ir.ConstantHandle(id)]
	if !ok {
		return nil
	}
	sv, ok := c.Value.(ir.SpecValue)
	if !ok {
		return nil
	}
	def, ok := sv.Default.(ir.ScalarValue)
	if !ok {
		return nil
	}

	raw, hasOverride := cfg.Specializations[sv.SpecID]
	if !hasOverride {
		sv.Folded = sv.Default
		ts.constants[ir.ConstantHandle(id)] = ir.Constant{Type: c.Type, Value: sv}
		return nil
	}

	expectWidth := def.Width
	if def.Kind == ir.ScalarBool {
		expectWidth = 32
	}
	if expectWidth != 0 && uint32(len(raw))*8 != expectWidth {
		return &Error{Kind: KindInvalidSpecialization, Message: "specialization value byte width disagrees with target scalar"}
	}

	sv.Folded = ir.ScalarValue{Bits: decodeSpecBits(raw), Kind: def.Kind, Width: def.Width}
	ts.constants[ir.ConstantHandle(id)] = ir.Constant{Type: c.Type, Value: sv}
	return nil
}

// maskWidth clears any bits above the target scalar width so a folded
// result never leaks garbage into the unused high bits of the uint64
// union: spec constants can be u8 through u64, and a result must be
// narrowed to the target width at the edges of evaluation.
func maskWidth(bits uint64, width uint32) uint64 {
	if width == 0 || width >= 64 {
		return bits
	}
	return bits & (uint64(1)<<width - 1)
}

// signExtend interprets bits as a two's-complement integer of the
// given width and widens it to int64, replicating the sign bit into
// the high bits. Every operand reaches evalSpecOp zero-extended to a
// uint64 (readScalarBits, maskWidth), so a negative sub-64-bit value
// like a 32-bit -1 (0xFFFFFFFF) would otherwise read as its unsigned
// magnitude instead of -1 wherever a signed opcode branches on it.
func signExtend(bits uint64, width uint32) int64 {
	if width == 0 || width >= 64 {
		return int64(bits)
	}
	masked := maskWidth(bits, width)
	signBit := uint64(1) << (width - 1)
	if masked&signBit != 0 {
		masked |= ^uint64(0) << width
	}
	return int64(masked)
}

func decodeSpecBits(raw []byte) uint64 {
	var buf [8]byte
	copy(buf[:], raw)
	return binary.LittleEndian.Uint64(buf[:])
}

func (ts *typeSystem) specValueOf(h ir.ConstantHandle) specValue {
	c, ok := ts.constants[h]
	if !ok {
		return specValue{}
	}
	switch v := c.Value.(type) {
	case ir.ScalarValue:
		return specValue{bits: v.Bits, kind: v.Kind, width: v.Width}
	case ir.SpecValue:
		if sv, ok := v.Folded.(ir.ScalarValue); ok {
			return specValue{bits: sv.Bits, kind: sv.Kind, width: sv.Width}
		}
	}
	return specValue{}
}

// evalSpecOp evaluates a supported SPIR-V OpSpecConstantOp opcode over
// already-folded operands. An unsupported opcode returns known=false
// rather than failing reflection outright: it evaluates to unknown
// instead of aborting the fold pass. Operand access is bounds-checked
// so a malformed operand list degrades to zero values instead of
// panicking.
func evalSpecOp(op spirv.Op, operands []specValue) (specValue, bool) {
	i64 := func(i int) int64 {
		if i >= len(operands) {
			return 0
		}
		return signExtend(operands[i].bits, operands[i].width)
	}
	u64 := func(i int) uint64 {
		if i >= len(operands) {
			return 0
		}
		return operands[i].bits
	}
	width := func() uint32 {
		if len(operands) > 0 && operands[0].width != 0 {
			return operands[0].width
		}
		return 32
	}
	result := func(bits uint64) (specValue, bool) {
		w := width()
		return specValue{bits: maskWidth(bits, w), width: w}, true
	}
	boolResult := func(b bool) (specValue, bool) {
		bits := uint64(0)
		if b {
			bits = 1
		}
		return specValue{bits: bits, kind: ir.ScalarBool, width: 32}, true
	}

	switch op {
	case spirv.OpIAdd:
		return result(uint64(i64(0) + i64(1)))
	case spirv.OpISub:
		return result(uint64(i64(0) - i64(1)))
	case spirv.OpIMul:
		return result(uint64(i64(0) * i64(1)))
	case spirv.OpSDiv:
		if i64(1) == 0 {
			return specValue{}, false
		}
		return result(uint64(i64(0) / i64(1)))
	case spirv.OpUDiv:
		if u64(1) == 0 {
			return specValue{}, false
		}
		return result(u64(0) / u64(1))
	case spirv.OpUMod:
		if u64(1) == 0 {
			return specValue{}, false
		}
		return result(u64(0) % u64(1))
	case spirv.OpSRem:
		if i64(1) == 0 {
			return specValue{}, false
		}
		return result(uint64(i64(0) % i64(1)))
	case spirv.OpSMod:
		// OpSMod's result takes the sign of the divisor, unlike OpSRem's
		// truncated remainder: differ whenever the operands' signs differ.
		if i64(1) == 0 {
			return specValue{}, false
		}
		a, b := i64(0), i64(1)
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return result(uint64(m))
	case spirv.OpShiftLeftLogical:
		return result(u64(0) << uint(u64(1)))
	case spirv.OpShiftRightLogical:
		return result(u64(0) >> uint(u64(1)))
	case spirv.OpShiftRightArithmetic:
		return result(uint64(i64(0) >> uint(u64(1))))
	case spirv.OpBitwiseAnd:
		return result(u64(0) & u64(1))
	case spirv.OpBitwiseOr:
		return result(u64(0) | u64(1))
	case spirv.OpBitwiseXor:
		return result(u64(0) ^ u64(1))
	case spirv.OpNot:
		return result(^u64(0))
	case spirv.OpLogicalNot:
		return boolResult(u64(0) == 0)
	case spirv.OpLogicalAnd:
		return boolResult(u64(0) != 0 && u64(1) != 0)
	case spirv.OpLogicalOr:
		return boolResult(u64(0) != 0 || u64(1) != 0)
	case spirv.OpIEqual:
		return boolResult(u64(0) == u64(1))
	case spirv.OpINotEqual:
		return boolResult(u64(0) != u64(1))
	case spirv.OpSLessThan:
		return boolResult(i64(0) < i64(1))
	case spirv.OpULessThan:
		return boolResult(u64(0) < u64(1))
	case spirv.OpSGreaterThan:
		return boolResult(i64(0) > i64(1))
	case spirv.OpUGreaterThan:
		return boolResult(u64(0) > u64(1))
	case spirv.OpSLessThanEqual:
		return boolResult(i64(0) <= i64(1))
	case spirv.OpULessThanEqual:
		return boolResult(u64(0) <= u64(1))
	case spirv.OpSGreaterThanEqual:
		return boolResult(i64(0) >= i64(1))
	case spirv.OpUGreaterThanEqual:
		return boolResult(u64(0) >= u64(1))
	case spirv.OpSelect:
		if u64(0) != 0 {
			if len(operands) > 1 {
				return operands[1], true
			}
			return specValue{}, false
		}
		if len(operands) > 2 {
			return operands[2], true
		}
		return specValue{}, false
	default:
		return specValue{}, false
	}
}
