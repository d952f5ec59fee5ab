package ir

import "github.com/gogpu/spirq/spirv"

// ExecutionModeValue is one OpExecutionMode attached to an entry point,
// with its literal operands.
type ExecutionModeValue struct {
	Mode   spirv.ExecutionMode
	Params []uint32
}

// EntryPoint is one OpEntryPoint's fully assembled reflection result:
// the referenced-and-classified subset of the module visible from this
// entry point, with every list sorted into a deterministic order.
type EntryPoint struct {
	Name           string
	ExecutionModel spirv.ExecutionModel
	ExecutionModes []ExecutionModeValue
	Inputs         []IOVar
	Outputs        []IOVar
	Descriptors    []Descriptor
	PushConstants  []PushConstant
	SpecConstants  []SpecConstant

	// Types resolves every TypeHandle referenced above (Descriptor.Type,
	// IOVar.Type, PushConstant.Type, SpecConstant.Type). Every entry
	// point produced by one Reflect call shares the same registry.
	Types *TypeRegistry
}
