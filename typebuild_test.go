package spirq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/spirq/ir"
	"github.com/gogpu/spirq/spirv"
)

func buildMatrixModule(decorate func(b *spirv.Builder, matID uint32)) ([]uint32, uint32) {
	b := spirv.NewBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	f32 := b.AddTypeFloat(32)
	vec4 := b.AddTypeVector(f32, 4)
	mat4 := b.AddTypeMatrix(vec4, 4)
	if decorate != nil {
		decorate(b, mat4)
	}
	return b.Build(), mat4
}

// TestMatrixLayoutUnknownWhenNeitherDecorationPresent guards the
// tolerant-mode fix: a matrix type with neither RowMajor nor ColMajor
// attached reports Major as nil (unknown), not a silently-defaulted
// column-major guess.
func TestMatrixLayoutUnknownWhenNeitherDecorationPresent(t *testing.T) {
	words, matID := buildMatrixModule(nil)
	cfg := DefaultConfig()
	mod, err := decodeModule(Config{Spirv: words, Logger: cfg.Logger})
	require.Nil(t, err)
	names, err := buildNameTable(mod.instrs)
	require.Nil(t, err)
	ts, err := buildTypeSystem(mod.instrs, names, cfg.Logger)
	require.Nil(t, err)

	ty, ok := ts.types.Lookup(ir.TypeHandle(matID))
	require.True(t, ok)
	mat, ok := ty.(ir.Matrix)
	require.True(t, ok)
	assert.Nil(t, mat.Major)
}

func TestMatrixLayoutRowMajorDecorated(t *testing.T) {
	words, matID := buildMatrixModule(func(b *spirv.Builder, matID uint32) {
		b.AddDecorate(matID, spirv.DecorationRowMajor)
	})
	cfg := DefaultConfig()
	mod, err := decodeModule(Config{Spirv: words, Logger: cfg.Logger})
	require.Nil(t, err)
	names, err := buildNameTable(mod.instrs)
	require.Nil(t, err)
	ts, err := buildTypeSystem(mod.instrs, names, cfg.Logger)
	require.Nil(t, err)

	ty, ok := ts.types.Lookup(ir.TypeHandle(matID))
	require.True(t, ok)
	mat, ok := ty.(ir.Matrix)
	require.True(t, ok)
	require.NotNil(t, mat.Major)
	assert.Equal(t, ir.AxisOrderRow, *mat.Major)
}

func TestMatrixLayoutColMajorDecorated(t *testing.T) {
	words, matID := buildMatrixModule(func(b *spirv.Builder, matID uint32) {
		b.AddDecorate(matID, spirv.DecorationColMajor)
	})
	cfg := DefaultConfig()
	mod, err := decodeModule(Config{Spirv: words, Logger: cfg.Logger})
	require.Nil(t, err)
	names, err := buildNameTable(mod.instrs)
	require.Nil(t, err)
	ts, err := buildTypeSystem(mod.instrs, names, cfg.Logger)
	require.Nil(t, err)

	ty, ok := ts.types.Lookup(ir.TypeHandle(matID))
	require.True(t, ok)
	mat, ok := ty.(ir.Matrix)
	require.True(t, ok)
	require.NotNil(t, mat.Major)
	assert.Equal(t, ir.AxisOrderColumn, *mat.Major)
}
