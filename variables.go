package spirq

import (
	"github.com/gogpu/spirq/ir"
	"github.com/gogpu/spirq/spirv"
)

// variableInventory holds every module-scope OpVariable, in declaration
// order.
type variableInventory struct {
	byID  map[uint32]ir.Variable
	order []uint32
}

func buildVariableInventory(instrs []spirv.Instr, names *nameTable) *variableInventory {
	inv := &variableInventory{byID: make(map[uint32]ir.Variable)}
	for _, in := range instrs {
		if in.Op != spirv.OpVariable {
			continue
		}
		ops := in.Operands()
		ptrTy, _ := ops.Id()
		id, _ := ops.Id()
		sc, _ := ops.U32()

		// Function-local variables (StorageClassFunction) live inside a
		// function body, not at module scope, and are never a descriptor,
		// I/O var, or push constant; skip them here so entry point
		// assembly never sees them.
		if spirv.StorageClass(sc) == spirv.StorageClassFunction {
			continue
		}

		inv.byID[id] = ir.Variable{
			ID:           id,
			Name:         names.names[id],
			StorageClass: spirv.StorageClass(sc),
			Type:         ir.TypeHandle(ptrTy),
			Decorations:  names.decorations[id],
		}
		inv.order = append(inv.order, id)
	}
	return inv
}

// resolveDescriptorPointee unwraps one level of Array around a
// descriptor's pointee type, since a descriptor array (`sampler2D
// tex[10]`) is expressed in SPIR-V as a pointer to an array of the
// underlying resource type, not a pointer to the resource type itself.
func resolveDescriptorPointee(ts *typeSystem, pointeeID ir.TypeHandle) (ir.TypeHandle, ir.Type, *uint64) {
	pointee, ok := ts.types.Lookup(pointeeID)
	if !ok {
		return pointeeID, nil, nil
	}
	if arr, ok := pointee.(ir.Array); ok {
		elem, ok := ts.types.Lookup(arr.Elem)
		if !ok {
			return arr.Elem, nil, arr.Count
		}
		return arr.Elem, elem, arr.Count
	}
	return pointeeID, pointee, nil
}

// classify derives a variable's DescriptorKind from its storage class
// and (array-unwrapped) pointee type. A combination it doesn't
// recognize (StorageClassPrivate, an opaque
// pointee it can't resolve, ...) reports DescriptorUnknown, which the
// assembler treats as "not a descriptor" rather than an error — most
// module-scope variables are Private/Function locals, not resources.
func classify(sc spirv.StorageClass, kindTypeID ir.TypeHandle, kindType ir.Type, names *nameTable) ir.DescriptorKind {
	switch sc {
	case spirv.StorageClassUniform:
		if _, ok := kindType.(ir.Struct); ok {
			if hasDecoration(names, uint32(kindTypeID), spirv.DecorationBlock) {
				return ir.DescriptorUniformBuffer
			}
			if hasDecoration(names, uint32(kindTypeID), spirv.DecorationBufferBlock) {
				return ir.DescriptorStorageBufferLegacy
			}
		}
	case spirv.StorageClassStorageBuffer:
		if _, ok := kindType.(ir.Struct); ok {
			return ir.DescriptorStorageBuffer
		}
	case spirv.StorageClassUniformConstant:
		switch t := kindType.(type) {
		case ir.SampledImage:
			return ir.DescriptorCombinedImageSampler
		case ir.Image:
			if t.Dim == spirv.DimSubpassData {
				return ir.DescriptorInputAttachment
			}
			if t.Sampled == ir.ImageSampledWithSampler {
				return ir.DescriptorSampledImage
			}
			return ir.DescriptorStorageImage
		case ir.Sampler:
			return ir.DescriptorSampler
		case ir.AccelerationStructure:
			return ir.DescriptorAccelerationStructure
		}
	}
	return ir.DescriptorUnknown
}
