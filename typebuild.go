package spirq

import (
	"go.uber.org/zap"

	"github.com/gogpu/spirq/ir"
	"github.com/gogpu/spirq/spirv"
)

// typeSystem is the id-keyed type registry plus every module-scope
// constant, keyed the same way.
type typeSystem struct {
	types     *ir.TypeRegistry
	constants map[ir.ConstantHandle]ir.Constant

	// arrayLengths remembers, for every OpTypeArray, which constant its
	// length operand came from, specialization constant or not. This
	// pass runs before specialization folding, so the Count captured
	// here is still the constant's default; patchArrayLengths re-resolves
	// it once folding has run.
	arrayLengths map[ir.TypeHandle]ir.ConstantHandle
}

// buildTypeSystem walks the instruction stream once, in declaration
// order, registering every OpType* and OpConstant*/OpSpecConstant*
// result. SPIR-V requires a type or constant to be declared before any
// later instruction references its id, so a single forward pass is
// enough to resolve every cross-reference (array length constants,
// vector/matrix component types, struct member types) as it goes.
//
// OpSpecConstantOp is registered with a nil value here; foldSpecialization
// (specialize.go) folds it once every other constant is in the table,
// since its operands may themselves be earlier OpSpecConstantOp
// results.
func buildTypeSystem(instrs []spirv.Instr, names *nameTable, logger *zap.Logger) (*typeSystem, *Error) {
	ts := &typeSystem{
		types:        ir.NewTypeRegistry(),
		constants:    make(map[ir.ConstantHandle]ir.Constant),
		arrayLengths: make(map[ir.TypeHandle]ir.ConstantHandle),
	}

	for _, in := range instrs {
		ops := in.Operands()
		switch in.Op {
		case spirv.OpTypeVoid:
			id, _ := ops.Id()
			ts.types.Define(ir.TypeHandle(id), ir.Scalar{Kind: ir.ScalarVoid})
		case spirv.OpTypeBool:
			id, _ := ops.Id()
			ts.types.Define(ir.TypeHandle(id), ir.Scalar{Kind: ir.ScalarBool, Bits: 32})
		case spirv.OpTypeInt:
			id, _ := ops.Id()
			width, _ := ops.U32()
			signedness, _ := ops.U32()
			ts.types.Define(ir.TypeHandle(id), ir.Scalar{Kind: ir.ScalarInt, Bits: width, Signed: signedness != 0})
		case spirv.OpTypeFloat:
			id, _ := ops.Id()
			width, _ := ops.U32()
			ts.types.Define(ir.TypeHandle(id), ir.Scalar{Kind: ir.ScalarFloat, Bits: width})
		case spirv.OpTypeVector:
			id, _ := ops.Id()
			compTy, _ := ops.Id()
			n, _ := ops.U32()
			scalar, _ := ts.scalarAt(ir.TypeHandle(compTy))
			ts.types.Define(ir.TypeHandle(id), ir.Vector{Elem: scalar, N: n})
		case spirv.OpTypeMatrix:
			id, _ := ops.Id()
			colTy, _ := ops.Id()
			cols, _ := ops.U32()
			colVec, _ := ts.vectorAt(ir.TypeHandle(colTy))
			major, stride := matrixLayout(names, id)
			ts.types.Define(ir.TypeHandle(id), ir.Matrix{Col: colVec, Cols: cols, Stride: stride, Major: major})
		case spirv.OpTypeArray:
			id, _ := ops.Id()
			elemTy, _ := ops.Id()
			lengthConst, _ := ops.Id()
			count := ts.constantU64(ir.ConstantHandle(lengthConst))
			stride := decorationU32(names, id, spirv.DecorationArrayStride)
			ts.types.Define(ir.TypeHandle(id), ir.Array{Elem: ir.TypeHandle(elemTy), Count: count, Stride: stride})
			ts.arrayLengths[ir.TypeHandle(id)] = ir.ConstantHandle(lengthConst)
		case spirv.OpTypeRuntimeArray:
			id, _ := ops.Id()
			elemTy, _ := ops.Id()
			stride := decorationU32(names, id, spirv.DecorationArrayStride)
			ts.types.Define(ir.TypeHandle(id), ir.Array{Elem: ir.TypeHandle(elemTy), Stride: stride})
		case spirv.OpTypeStruct:
			id, _ := ops.Id()
			var members []ir.StructMember
			for idx := uint32(0); ops.Len() > 0; idx++ {
				memberTy, _ := ops.Id()
				offset := decorationMemberU32(names, id, idx, spirv.DecorationOffset)
				if offset == nil {
					logger.Debug("struct member missing Offset decoration",
						zap.Uint32("struct_id", id), zap.Uint32("member", idx))
				}
				members = append(members, ir.StructMember{
					Name:        names.memberNames[memberKey{id, idx}],
					Offset:      offset,
					Type:        ir.TypeHandle(memberTy),
					Decorations: names.memberDecorations[memberKey{id, idx}],
				})
			}
			ts.types.Define(ir.TypeHandle(id), ir.Struct{Name: names.names[id], Members: members})
		case spirv.OpTypePointer:
			id, _ := ops.Id()
			sc, _ := ops.U32()
			pointee, _ := ops.Id()
			ts.types.Define(ir.TypeHandle(id), ir.Pointer{StorageClass: spirv.StorageClass(sc), Pointee: ir.TypeHandle(pointee)})
		case spirv.OpTypeSampler:
			id, _ := ops.Id()
			ts.types.Define(ir.TypeHandle(id), ir.Sampler{})
		case spirv.OpTypeImage:
			id, _ := ops.Id()
			sampledTy, _ := ops.Id()
			dim, _ := ops.U32()
			depth, _ := ops.U32()
			arrayed, _ := ops.Bool()
			ms, _ := ops.Bool()
			sampled, _ := ops.U32()
			format, _ := ops.U32()
			ts.types.Define(ir.TypeHandle(id), ir.Image{
				SampledType:  ir.TypeHandle(sampledTy),
				Dim:          spirv.Dim(dim),
				Depth:        ir.ImageDepth(depth),
				Arrayed:      arrayed,
				Multisampled: ms,
				Sampled:      ir.ImageSampled(sampled),
				Format:       spirv.ImageFormat(format),
			})
		case spirv.OpTypeSampledImage:
			id, _ := ops.Id()
			imgTy, _ := ops.Id()
			ts.types.Define(ir.TypeHandle(id), ir.SampledImage{Image: ir.TypeHandle(imgTy)})
		case spirv.OpTypeAccelerationStructureKHR:
			id, _ := ops.Id()
			ts.types.Define(ir.TypeHandle(id), ir.AccelerationStructure{})
		case spirv.OpTypeRayQueryKHR:
			id, _ := ops.Id()
			ts.types.Define(ir.TypeHandle(id), ir.RayQuery{})

		case spirv.OpConstantTrue, spirv.OpConstantFalse:
			tyID, _ := ops.Id()
			id, _ := ops.Id()
			bits := uint64(0)
			if in.Op == spirv.OpConstantTrue {
				bits = 1
			}
			ts.constants[ir.ConstantHandle(id)] = ir.Constant{
				Type:  ir.TypeHandle(tyID),
				Value: ir.ScalarValue{Bits: bits, Kind: ir.ScalarBool, Width: 32},
			}
		case spirv.OpConstant:
			tyID, _ := ops.Id()
			id, _ := ops.Id()
			scalar, _ := ts.scalarAt(ir.TypeHandle(tyID))
			bits := readScalarBits(ops, scalar)
			ts.constants[ir.ConstantHandle(id)] = ir.Constant{
				Type:  ir.TypeHandle(tyID),
				Value: ir.ScalarValue{Bits: bits, Kind: scalar.Kind, Width: scalar.Bits},
			}
		case spirv.OpConstantComposite, spirv.OpSpecConstantComposite:
			tyID, _ := ops.Id()
			id, _ := ops.Id()
			var components []ir.ConstantHandle
			for ops.Len() > 0 {
				c, _ := ops.Id()
				components = append(components, ir.ConstantHandle(c))
			}
			composite := ir.CompositeValue{Components: components}
			var value ir.ConstantValue = composite
			if in.Op == spirv.OpSpecConstantComposite {
				value = ir.SpecValue{SpecID: specIDOf(names, id), Default: composite, Folded: composite}
			}
			ts.constants[ir.ConstantHandle(id)] = ir.Constant{Type: ir.TypeHandle(tyID), Value: value}
		case spirv.OpSpecConstantTrue, spirv.OpSpecConstantFalse:
			tyID, _ := ops.Id()
			id, _ := ops.Id()
			bits := uint64(0)
			if in.Op == spirv.OpSpecConstantTrue {
				bits = 1
			}
			def := ir.ScalarValue{Bits: bits, Kind: ir.ScalarBool, Width: 32}
			ts.constants[ir.ConstantHandle(id)] = ir.Constant{
				Type:  ir.TypeHandle(tyID),
				Value: ir.SpecValue{SpecID: specIDOf(names, id), Default: def, Folded: def},
			}
		case spirv.OpSpecConstant:
			tyID, _ := ops.Id()
			id, _ := ops.Id()
			scalar, _ := ts.scalarAt(ir.TypeHandle(tyID))
			bits := readScalarBits(ops, scalar)
			def := ir.ScalarValue{Bits: bits, Kind: scalar.Kind, Width: scalar.Bits}
			ts.constants[ir.ConstantHandle(id)] = ir.Constant{
				Type:  ir.TypeHandle(tyID),
				Value: ir.SpecValue{SpecID: specIDOf(names, id), Default: def, Folded: def},
			}
		case spirv.OpSpecConstantOp:
			tyID, _ := ops.Id()
			id, _ := ops.Id()
			ts.constants[ir.ConstantHandle(id)] = ir.Constant{Type: ir.TypeHandle(tyID), Value: nil}
		}
	}
	return ts, nil
}

// patchArrayLengths re-resolves the Count of every array sized by a
// specialization constant, once foldSpecialization has folded overrides
// and OpSpecConstantOp chains into ts.constants. buildTypeSystem runs
// before folding and so can only see each spec constant's unfolded
// default; without this second pass a Config.Specializations override
// to an array-sizing spec constant would never reach the assembled
// ir.Array.
func (ts *typeSystem) patchArrayLengths() {
	for arrID, lengthConst := range ts.arrayLengths {
		t, ok := ts.types.Lookup(arrID)
		if !ok {
			continue
		}
		arr, ok := t.(ir.Array)
		if !ok {
			continue
		}
		if count := ts.constantU64(lengthConst); count != nil {
			arr.Count = count
			ts.types.Define(arrID, arr)
		}
	}
}

func specIDOf(names *nameTable, id uint32) uint32 {
	if v := decorationU32(names, id, spirv.DecorationSpecId); v != nil {
		return *v
	}
	return 0
}

func (ts *typeSystem) scalarAt(h ir.TypeHandle) (ir.Scalar, bool) {
	t, ok := ts.types.Lookup(h)
	if !ok {
		return ir.Scalar{}, false
	}
	s, ok := t.(ir.Scalar)
	return s, ok
}

func (ts *typeSystem) vectorAt(h ir.TypeHandle) (ir.Vector, bool) {
	t, ok := ts.types.Lookup(h)
	if !ok {
		return ir.Vector{}, false
	}
	v, ok := t.(ir.Vector)
	return v, ok
}

// constantU64 resolves an already-registered constant to its scalar
// bit pattern, following a specialization constant through to its
// folded value when necessary. Used for OpTypeArray's length operand.
func (ts *typeSystem) constantU64(h ir.ConstantHandle) *uint64 {
	c, ok := ts.constants[h]
	if !ok {
		return nil
	}
	switch v := c.Value.(type) {
	case ir.ScalarValue:
		val := v.Bits
		return &val
	case ir.SpecValue:
		if sv, ok := v.Folded.(ir.ScalarValue); ok {
			val := sv.Bits
			return &val
		}
	}
	return nil
}

// readScalarBits reads a scalar literal operand, consuming two words
// when the target scalar is wider than 32 bits, per the SPIR-V grammar
// rule for any literal wider than one word.
func readScalarBits(ops *spirv.Operands, scalar ir.Scalar) uint64 {
	if scalar.Bits > 32 {
		v, _ := ops.U64()
		return v
	}
	v, _ := ops.U32()
	return uint64(v)
}

// matrixLayout resolves RowMajor/ColMajor/MatrixStride from the
// decorations attached directly to the OpTypeMatrix id. These
// decorations are normally applied per struct member in the SPIR-V
// grammar, but every compiler in practice (and every fixture this
// engine builds) allocates a distinct matrix type id per distinct
// layout, so treating them as type-level here matches real modules
// without needing the struct-building pass to special-case matrices.
func matrixLayout(names *nameTable, id uint32) (*ir.MatrixAxisOrder, *uint32) {
	var major *ir.MatrixAxisOrder
	switch {
	case hasDecoration(names, id, spirv.DecorationRowMajor):
		v := ir.AxisOrderRow
		major = &v
	case hasDecoration(names, id, spirv.DecorationColMajor):
		v := ir.AxisOrderColumn
		major = &v
	}
	return major, decorationU32(names, id, spirv.DecorationMatrixStride)
}
