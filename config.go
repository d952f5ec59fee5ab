package spirq

import "go.uber.org/zap"

// Config is the library's public reflection contract.
type Config struct {
	// Spirv is the module's words, already resolved to host endianness.
	// Use LoadWords to produce this from a raw wire-format buffer of
	// unknown endianness.
	Spirv []uint32

	// ReferenceAllResources includes every module-scope variable in each
	// entry point's descriptor/IO lists instead of only the ones the
	// call-graph closure actually reaches.
	ReferenceAllResources bool

	// CombineImageSamplers merges a SampledImage and Sampler descriptor
	// sharing (set, binding) into one CombinedImageSampler.
	CombineImageSamplers bool

	// GenerateUniqueNames synthesizes collision-free names for
	// descriptors and I/O variables with missing or duplicate debug
	// names.
	GenerateUniqueNames bool

	// Specializations overrides OpSpecConstant* defaults, keyed by
	// SpecId, with little-endian encoded bytes matching the target
	// scalar's width.
	Specializations map[uint32][]byte

	// Logger receives diagnostic messages about tolerated anomalies
	// (missing Offset decorations, unsupported OpSpecConstantOp
	// opcodes, ...). It never affects Reflect's return value — the
	// engine's error taxonomy is purely structural.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with every optional feature disabled
// and a no-op logger.
func DefaultConfig() Config {
	return Config{Logger: zap.NewNop()}
}
