// Package ir is the typed reflection data model: the Type, Constant,
// Variable, Descriptor and EntryPoint shapes that the root package
// populates while walking a decoded SPIR-V module.
//
// Types are id-keyed rather than value-deduplicated: a SPIR-V module
// already gives every type a unique result id, so TypeRegistry stores
// one Type per id and resolves cross-references (array elements, struct
// members, pointer pointees, sampled-image targets) by looking the id
// back up rather than embedding child values. This also makes type
// graph cycles — a pointer whose pointee is a struct that itself holds a
// pointer back to the same struct — a plain lookup instead of a
// traversal that would need to detect them.
package ir
