// Package spirv is the binary format layer: decoding a SPIR-V module's
// words into a stream of Instr values (Header, Instrs, Operands) and, for
// building test fixtures, encoding one back out (Builder). It knows nothing
// about shader semantics — that lives in package ir and the root package.
package spirv
