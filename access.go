package spirq

import (
	"github.com/oleiade/lane"

	"github.com/gogpu/spirq/ir"
	"github.com/gogpu/spirq/spirv"
)

// functionBody is one OpFunction's traced effects: which callee
// functions it invokes and which root ids it loads/stores/atomically
// touches.
type functionBody struct {
	calls []uint32
	uses  map[uint32]ir.AccessMode
}

// accessAnalyzer holds a per-function access trace, walked lazily per
// entry point by referenced.
type accessAnalyzer struct {
	functions map[uint32]*functionBody
}

// buildAccessAnalyzer makes one linear pass over the instruction
// stream, tracking which OpFunction body is currently open and
// following pointer provenance through OpAccessChain/OpCopyObject so a
// load or store several derivations away from an OpVariable still
// attributes back to it.
func buildAccessAnalyzer(instrs []spirv.Instr) *accessAnalyzer {
	aa := &accessAnalyzer{functions: make(map[uint32]*functionBody)}
	var current *functionBody
	provenance := make(map[uint32]uint32)

	for _, in := range instrs {
		switch in.Op {
		case spirv.OpFunction:
			ops := in.Operands()
			_, _ = ops.Id()
			id, _ := ops.Id()
			current = &functionBody{uses: make(map[uint32]ir.AccessMode)}
			aa.functions[id] = current
		case spirv.OpFunctionEnd:
			current = nil
		case spirv.OpLoad:
			if current == nil {
				continue
			}
			ops := in.Operands()
			_, _ = ops.Id()
			_, _ = ops.Id()
			ptr, _ := ops.Id()
			root := rootOf(provenance, ptr)
			current.uses[root] = current.uses[root].Join(ir.AccessRead)
		case spirv.OpStore:
			if current == nil {
				continue
			}
			ops := in.Operands()
			ptr, _ := ops.Id()
			root := rootOf(provenance, ptr)
			current.uses[root] = current.uses[root].Join(ir.AccessWrite)
		case spirv.OpAccessChain, spirv.OpInBoundsAccessChain, spirv.OpPtrAccessChain,
			spirv.OpInBoundsPtrAccessChain, spirv.OpCopyObject:
			if current == nil {
				continue
			}
			ops := in.Operands()
			_, _ = ops.Id()
			result, _ := ops.Id()
			base, _ := ops.Id()
			provenance[result] = rootOf(provenance, base)
		case spirv.OpImageRead, spirv.OpImageFetch, spirv.OpImageGather, spirv.OpImageDrefGather,
			spirv.OpImageSampleImplicitLod, spirv.OpImageSampleExplicitLod,
			spirv.OpImageSampleDrefImplicitLod, spirv.OpImageSampleDrefExplicitLod:
			if current == nil {
				continue
			}
			ops := in.Operands()
			_, _ = ops.Id()
			_, _ = ops.Id()
			img, _ := ops.Id()
			root := rootOf(provenance, img)
			current.uses[root] = current.uses[root].Join(ir.AccessRead)
		case spirv.OpImageWrite:
			if current == nil {
				continue
			}
			ops := in.Operands()
			img, _ := ops.Id()
			root := rootOf(provenance, img)
			current.uses[root] = current.uses[root].Join(ir.AccessWrite)
		case spirv.OpAtomicLoad, spirv.OpAtomicStore, spirv.OpAtomicExchange, spirv.OpAtomicCompareExchange,
			spirv.OpAtomicCompareExchangeWeak, spirv.OpAtomicIIncrement, spirv.OpAtomicIDecrement,
			spirv.OpAtomicIAdd, spirv.OpAtomicISub, spirv.OpAtomicSMin, spirv.OpAtomicUMin,
			spirv.OpAtomicSMax, spirv.OpAtomicUMax, spirv.OpAtomicAnd, spirv.OpAtomicOr, spirv.OpAtomicXor:
			if current == nil {
				continue
			}
			ops := in.Operands()
			var ptr uint32
			if hasResult, hasType := in.Op.HasResultAndType(); hasResult && hasType {
				_, _ = ops.Id()
				_, _ = ops.Id()
				ptr, _ = ops.Id()
			} else {
				ptr, _ = ops.Id()
			}
			// Every atomic access is ReadWrite|Atomic even for the
			// nominally load-only OpAtomicLoad (matches v0.4.18's
			// behavior: an atomic load still implies a write fence).
			root := rootOf(provenance, ptr)
			current.uses[root] = current.uses[root].Join(ir.AccessReadWrite).Join(ir.AccessAtomic)
		case spirv.OpFunctionCall:
			if current == nil {
				continue
			}
			ops := in.Operands()
			_, _ = ops.Id()
			_, _ = ops.Id()
			callee, _ := ops.Id()
			current.calls = append(current.calls, callee)
		}
	}
	return aa
}

func rootOf(provenance map[uint32]uint32, id uint32) uint32 {
	visited := make(map[uint32]bool)
	for {
		if visited[id] {
			return id
		}
		visited[id] = true
		next, ok := provenance[id]
		if !ok {
			return id
		}
		id = next
	}
}

// referenced computes the transitive access closure of an entry
// point's function, following OpFunctionCall edges with a worklist
// over the call graph reachable from the entry point function.
func (aa *accessAnalyzer) referenced(entryFunc uint32) map[uint32]ir.AccessMode {
	result := make(map[uint32]ir.AccessMode)
	visited := map[uint32]bool{entryFunc: true}

	queue := lane.NewQueue()
	queue.Enqueue(entryFunc)
	for queue.Size() > 0 {
		v := queue.Dequeue()
		fnID, ok := v.(uint32)
		if !ok {
			continue
		}
		fn, ok := aa.functions[fnID]
		if !ok {
			continue
		}
		for varID, mode := range fn.uses {
			result[varID] = result[varID].Join(mode)
		}
		for _, callee := range fn.calls {
			if !visited[callee] {
				visited[callee] = true
				queue.Enqueue(callee)
			}
		}
	}
	return result
}
