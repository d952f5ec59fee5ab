package spirq

import (
	"fmt"
	"sort"

	"github.com/gogpu/spirq/ir"
)

// postProcess runs the opt-in CombineImageSamplers/GenerateUniqueNames
// passes over each assembled entry point.
func postProcess(eps []ir.EntryPoint, cfg Config) []ir.EntryPoint {
	for i := range eps {
		if cfg.CombineImageSamplers {
			eps[i].Descriptors = combineImageSamplers(eps[i].Descriptors)
		}
		if cfg.GenerateUniqueNames {
			uniqueNames(&eps[i])
		}
	}
	return eps
}

// combineImageSamplers merges a SampledImage and a Sampler descriptor
// that share (set, binding) into one CombinedImageSampler. Separate
// texture/sampler objects bound to the same slot is an
// HLSL-via-DXC idiom; GLSL/SPIR-V natively expresses this as a single
// SampledImage descriptor already, so the pass is a no-op there.
func combineImageSamplers(descs []ir.Descriptor) []ir.Descriptor {
	type key struct{ set, binding uint32 }
	images := make(map[key]int)
	samplers := make(map[key]int)
	for i, d := range descs {
		k := key{d.Set, d.Binding}
		switch d.Kind {
		case ir.DescriptorSampledImage:
			images[k] = i
		case ir.DescriptorSampler:
			samplers[k] = i
		}
	}

	drop := make(map[int]bool, len(images))
	out := make([]ir.Descriptor, 0, len(descs))
	for k, imgIdx := range images {
		samplerIdx, ok := samplers[k]
		if !ok {
			continue
		}
		combined := descs[imgIdx]
		combined.Kind = ir.DescriptorCombinedImageSampler
		combined.Access = combined.Access.Join(descs[samplerIdx].Access)
		out = append(out, combined)
		drop[imgIdx] = true
		drop[samplerIdx] = true
	}
	for i, d := range descs {
		if !drop[i] {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Set != out[j].Set {
			return out[i].Set < out[j].Set
		}
		return out[i].Binding < out[j].Binding
	})
	return out
}

// uniqueNames synthesizes _<set>_<binding> / _<location>_<component>
// names for descriptors and I/O vars with a missing or colliding debug
// name. It keys off each entry's stable positional identity rather than
// its original SPIR-V id, since that id isn't retained once
// assembleEntryPoints flattens into ir.Descriptor/IOVar.
func uniqueNames(ep *ir.EntryPoint) {
	used := make(map[string]bool)
	rename := func(name, fallback string) string {
		if name == "" {
			name = fallback
		}
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		used[candidate] = true
		return candidate
	}
	for i := range ep.Descriptors {
		d := &ep.Descriptors[i]
		d.Name = rename(d.Name, fmt.Sprintf("_%d_%d", d.Set, d.Binding))
	}
	for i := range ep.Inputs {
		v := &ep.Inputs[i]
		v.Name = rename(v.Name, fmt.Sprintf("_%d_%d", v.Location, v.Component))
	}
	for i := range ep.Outputs {
		v := &ep.Outputs[i]
		v.Name = rename(v.Name, fmt.Sprintf("_%d_%d", v.Location, v.Component))
	}
}
