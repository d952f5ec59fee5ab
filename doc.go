// Package spirq reflects compiled SPIR-V shader modules into a typed,
// Vulkan-facing description of their interface: entry points, their
// I/O variables, descriptor bindings, push constants and
// specialization constants.
//
// Reflect is the single entry point. It runs the module through eight
// passes — decode (package spirv), name/decoration collection, type
// and constant registration, specialization folding, variable
// inventory, access analysis, entry-point assembly, and optional
// post-processing — and returns one ir.EntryPoint per OpEntryPoint in
// the module.
//
//	eps, err := spirq.Reflect(spirq.Config{Spirv: words})
//
// Package ir holds the reflection data model this pipeline builds and
// returns; package spirv is the binary format layer underneath it.
package spirq
