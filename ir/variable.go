package ir

import "github.com/gogpu/spirq/spirv"

// Variable is a module-scope OpVariable: declared once, alive for the
// module's entire lifetime. Type is the handle of the variable's
// Pointer type (its declared type in SPIR-V is always a pointer to the
// pointee it exposes).
type Variable struct {
	ID           uint32
	Name         string
	StorageClass spirv.StorageClass
	Type         TypeHandle
	Decorations  map[spirv.Decoration][]uint32
}

// DescriptorKind classifies a Variable by its storage class, pointee
// type, and decorations.
type DescriptorKind uint8

const (
	DescriptorUnknown DescriptorKind = iota
	DescriptorUniformBuffer
	DescriptorStorageBufferLegacy
	DescriptorStorageBuffer
	DescriptorCombinedImageSampler
	DescriptorSampledImage
	DescriptorStorageImage
	DescriptorInputAttachment
	DescriptorSampler
	DescriptorAccelerationStructure
)

func (k DescriptorKind) String() string {
	switch k {
	case DescriptorUniformBuffer:
		return "UniformBuffer"
	case DescriptorStorageBufferLegacy:
		return "StorageBuffer(legacy)"
	case DescriptorStorageBuffer:
		return "StorageBuffer"
	case DescriptorCombinedImageSampler:
		return "CombinedImageSampler"
	case DescriptorSampledImage:
		return "SampledImage"
	case DescriptorStorageImage:
		return "StorageImage"
	case DescriptorInputAttachment:
		return "InputAttachment"
	case DescriptorSampler:
		return "Sampler"
	case DescriptorAccelerationStructure:
		return "AccelerationStructure"
	default:
		return "Unknown"
	}
}

// Descriptor is a classified resource-binding variable attached to an
// entry point. Count is nil for a runtime-sized descriptor array.
// InputAttachmentIndex is nil unless Kind is DescriptorInputAttachment,
// in which case it carries the subpass input's attachment index, read
// off the variable's InputAttachmentIndex decoration.
type Descriptor struct {
	Set                  uint32
	Binding              uint32
	Count                *uint64
	Kind                 DescriptorKind
	Type                 TypeHandle
	Access               AccessMode
	Name                 string
	InputAttachmentIndex *uint32
}

// Locate addresses a byte offset inside the descriptor's pointee type by
// walking a path of struct-member/array-element indices, resolving
// through reg (ported from spirq-core's locator.rs). The Rust original
// stores its owning type tree inline and
// so needs no registry argument; this reflection engine's types are
// id-keyed (see registry.go), so Locate takes the registry that defined
// Type explicitly rather than caching a reference to it on Descriptor.
func (d Descriptor) Locate(reg *TypeRegistry, path ...int) (offset uint32, leaf TypeHandle, ok bool) {
	current := d.Type
	var total uint32
	for _, idx := range path {
		t, exists := reg.Lookup(current)
		if !exists {
			return 0, 0, false
		}
		switch v := t.(type) {
		case Struct:
			if idx < 0 || idx >= len(v.Members) {
				return 0, 0, false
			}
			m := v.Members[idx]
			if m.Offset == nil {
				return 0, 0, false
			}
			total += *m.Offset
			current = m.Type
		case Array:
			var stride uint32
			if v.Stride != nil {
				stride = *v.Stride
			} else if elem, exists := reg.Lookup(v.Elem); exists {
				stride = reg.MinSize(elem)
			}
			total += stride * uint32(idx)
			current = v.Elem
		default:
			return 0, 0, false
		}
	}
	return total, current, true
}

// PushConstant is a push-constant block variable: it has no
// set/binding.
type PushConstant struct {
	Type TypeHandle
	Name string
}

// SpecConstant is a module-scope specialization constant, listed on every
// entry point, after specialization folding has folded it against the
// caller's specialization map.
type SpecConstant struct {
	SpecID  uint32
	Type    TypeHandle
	Default ConstantValue
	Value   ConstantValue
	Name    string
}

// IOVar is a shader stage input or output variable. For block-structured
// I/O, the entry-point assembler promotes each member's Location to its
// own IOVar rather than keeping the block as one entry.
type IOVar struct {
	Location  uint32
	Component uint32
	Type      TypeHandle
	Name      string
}
