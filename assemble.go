package spirq

import (
	"sort"

	"go.uber.org/zap"

	"github.com/gogpu/spirq/ir"
	"github.com/gogpu/spirq/spirv"
)

// moduleContext threads the decoded module, name table, type system,
// variable inventory and access analyzer into the entry point assembler
// and, later, post-processing.
type moduleContext struct {
	instrs   []spirv.Instr
	names    *nameTable
	types    *typeSystem
	vars     *variableInventory
	analyzer *accessAnalyzer
}

type rawEntryPoint struct {
	model spirv.ExecutionModel
	fn    uint32
	name  string
}

// assembleEntryPoints builds one ir.EntryPoint per OpEntryPoint: resolve
// the reachable variable set (or every variable, under
// ReferenceAllResources), split it by storage class into
// inputs/outputs/descriptors/push-constants, attach the module's
// specialization constants, and sort every list into a deterministic
// order so repeated runs over the same module produce byte-identical
// output.
func assembleEntryPoints(ctx *moduleContext, cfg Config) ([]ir.EntryPoint, *Error) {
	var raws []rawEntryPoint
	modes := make(map[uint32][]ir.ExecutionModeValue)

	for _, in := range ctx.instrs {
		switch in.Op {
		case spirv.OpEntryPoint:
			ops := in.Operands()
			model, _ := ops.U32()
			fn, err := ops.Id()
			if err != nil {
				return nil, wrapDecodeError(err)
			}
			name, err := ops.String()
			if err != nil {
				return nil, wrapDecodeError(err)
			}
			raws = append(raws, rawEntryPoint{model: spirv.ExecutionModel(model), fn: fn, name: name})
		case spirv.OpExecutionMode:
			ops := in.Operands()
			fn, _ := ops.Id()
			mode, _ := ops.U32()
			modes[fn] = append(modes[fn], ir.ExecutionModeValue{Mode: spirv.ExecutionMode(mode), Params: ops.Remainder()})
		}
	}

	eps := make([]ir.EntryPoint, 0, len(raws))
	for _, raw := range raws {
		reachable := ctx.reachableVariables(raw.fn, cfg.ReferenceAllResources)

		var inputs, outputs []ir.IOVar
		var descriptors []ir.Descriptor
		var pushConstants []ir.PushConstant

		for _, varID := range ctx.vars.order {
			access, ok := reachable[varID]
			if !ok {
				continue
			}
			v, ok := ctx.vars.byID[varID]
			if !ok {
				continue
			}
			pointerTy, ok := ctx.types.types.Lookup(v.Type)
			if !ok {
				continue
			}
			ptr, ok := pointerTy.(ir.Pointer)
			if !ok {
				continue
			}

			switch v.StorageClass {
			case spirv.StorageClassInput:
				inputs = append(inputs, ioVarsFor(ctx, v, ptr.Pointee)...)
			case spirv.StorageClassOutput:
				outputs = append(outputs, ioVarsFor(ctx, v, ptr.Pointee)...)
			case spirv.StorageClassPushConstant:
				pushConstants = append(pushConstants, ir.PushConstant{Type: ptr.Pointee, Name: v.Name})
			default:
				kindTypeID, kindType, count := resolveDescriptorPointee(ctx.types, ptr.Pointee)
				kind := classify(v.StorageClass, kindTypeID, kindType, ctx.names)
				if kind == ir.DescriptorUnknown {
					continue
				}
				setVal, bindingVal := uint32(0), uint32(0)
				if s := decorationU32(ctx.names, v.ID, spirv.DecorationDescriptorSet); s != nil {
					setVal = *s
				}
				if b := decorationU32(ctx.names, v.ID, spirv.DecorationBinding); b != nil {
					bindingVal = *b
				}
				access = access.Clamp(
					hasDecoration(ctx.names, v.ID, spirv.DecorationNonReadable),
					hasDecoration(ctx.names, v.ID, spirv.DecorationNonWritable),
				)
				var attachmentIndex *uint32
				if kind == ir.DescriptorInputAttachment {
					attachmentIndex = decorationU32(ctx.names, v.ID, spirv.DecorationInputAttachmentIndex)
				}
				descriptors = append(descriptors, ir.Descriptor{
					Set: setVal, Binding: bindingVal, Count: count, Kind: kind,
					Type: ptr.Pointee, Access: access, Name: v.Name,
					InputAttachmentIndex: attachmentIndex,
				})
			}
		}

		// SliceStable, not Slice: inputs/outputs/descriptors were appended
		// in ctx.vars.order (module declaration order), and a struct
		// I/O block with members that share a Location/Component (or two
		// descriptors that share a set/binding) must keep that
		// declaration order on the tie rather than an arbitrary one, or
		// the assembled list would not be byte-identical across runs.
		sort.SliceStable(inputs, func(i, j int) bool { return ioVarLess(inputs[i], inputs[j]) })
		sort.SliceStable(outputs, func(i, j int) bool { return ioVarLess(outputs[i], outputs[j]) })
		sort.SliceStable(descriptors, func(i, j int) bool {
			if descriptors[i].Set != descriptors[j].Set {
				return descriptors[i].Set < descriptors[j].Set
			}
			return descriptors[i].Binding < descriptors[j].Binding
		})
		warnDuplicateBindings(cfg.Logger, raw.name, descriptors)

		eps = append(eps, ir.EntryPoint{
			Name:           raw.name,
			ExecutionModel: raw.model,
			ExecutionModes: modes[raw.fn],
			Inputs:         inputs,
			Outputs:        outputs,
			Descriptors:    descriptors,
			PushConstants:  pushConstants,
			SpecConstants:  collectSpecConstants(ctx),
			Types:          ctx.types.types,
		})
	}
	return eps, nil
}

// warnDuplicateBindings logs when two descriptors reachable from the
// same entry point land on the same (set, binding): the caller's
// descriptor set layout would be ambiguous, but reflection still
// returns both rather than treating it as fatal.
func warnDuplicateBindings(logger *zap.Logger, entryPointName string, descriptors []ir.Descriptor) {
	for i := 1; i < len(descriptors); i++ {
		if descriptors[i].Set == descriptors[i-1].Set && descriptors[i].Binding == descriptors[i-1].Binding {
			logger.Warn("multiple descriptors share the same set/binding",
				zap.String("entry_point", entryPointName),
				zap.Uint32("set", descriptors[i].Set),
				zap.Uint32("binding", descriptors[i].Binding),
			)
		}
	}
}

func ioVarLess(a, b ir.IOVar) bool {
	if a.Location != b.Location {
		return a.Location < b.Location
	}
	return a.Component < b.Component
}

// reachableVariables resolves the variable set attributed to an entry
// point's function: either the call-graph-and-access closure, or the
// whole module-scope inventory when the caller asked for
// ReferenceAllResources.
func (ctx *moduleContext) reachableVariables(fn uint32, referenceAll bool) map[uint32]ir.AccessMode {
	if !referenceAll {
		return ctx.analyzer.referenced(fn)
	}
	all := make(map[uint32]ir.AccessMode, len(ctx.vars.order))
	for id := range ctx.vars.byID {
		all[id] = ir.AccessNone
	}
	return all
}

// ioVarsFor expands a Block-decorated struct I/O variable into one
// IOVar per member (each carrying its own Location/Component), or
// returns a single IOVar for a plain scalar/vector I/O variable.
func ioVarsFor(ctx *moduleContext, v ir.Variable, pointee ir.TypeHandle) []ir.IOVar {
	if t, ok := ctx.types.types.Lookup(pointee); ok {
		if s, ok := t.(ir.Struct); ok {
			out := make([]ir.IOVar, 0, len(s.Members))
			for idx, m := range s.Members {
				locVal, compVal := uint32(0), uint32(0)
				if loc := decorationMemberU32(ctx.names, uint32(pointee), uint32(idx), spirv.DecorationLocation); loc != nil {
					locVal = *loc
				}
				if comp := decorationMemberU32(ctx.names, uint32(pointee), uint32(idx), spirv.DecorationComponent); comp != nil {
					compVal = *comp
				}
				out = append(out, ir.IOVar{Location: locVal, Component: compVal, Type: m.Type, Name: m.Name})
			}
			return out
		}
	}

	locVal, compVal := uint32(0), uint32(0)
	if loc := decorationU32(ctx.names, v.ID, spirv.DecorationLocation); loc != nil {
		locVal = *loc
	}
	if comp := decorationU32(ctx.names, v.ID, spirv.DecorationComponent); comp != nil {
		compVal = *comp
	}
	return []ir.IOVar{{Location: locVal, Component: compVal, Type: pointee, Name: v.Name}}
}

// collectSpecConstants attaches every module-scope specialization
// constant to the entry point. This engine does not further restrict
// the list to constants reachable from the entry point's function
// body: unlike a variable access, a spec constant's only observable
// effect is on a type's array length or a folded expression's value,
// both already baked into the type/constant tables by the time this
// runs, so per-entry-point filtering would only hide entries a caller
// inspecting descriptor array counts might need to explain them.
func collectSpecConstants(ctx *moduleContext) []ir.SpecConstant {
	type collected struct {
		id uint32
		sc ir.SpecConstant
	}

	var entries []collected
	for id, c := range ctx.types.constants {
		sv, ok := c.Value.(ir.SpecValue)
		if !ok {
			continue
		}
		entries = append(entries, collected{
			id: uint32(id),
			sc: ir.SpecConstant{
				SpecID:  sv.SpecID,
				Type:    c.Type,
				Default: sv.Default,
				Value:   sv.Folded,
				Name:    ctx.names.names[uint32(id)],
			},
		})
	}

	// ctx.types.constants is a map, so iteration order above is random.
	// Order by result id first — a deterministic, collision-free key —
	// then stable-sort by SpecID so ties (e.g. every OpSpecConstantComposite
	// reports SpecID 0 via specIDOf) fall back to declaration order
	// instead of whatever order the map happened to yield this run.
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].sc.SpecID < entries[j].sc.SpecID })

	out := make([]ir.SpecConstant, len(entries))
	for i, e := range entries {
		out[i] = e.sc
	}
	return out
}
