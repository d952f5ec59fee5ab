package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarMinSize(t *testing.T) {
	assert.Equal(t, uint32(0), Scalar{Kind: ScalarVoid}.MinSize())
	assert.Equal(t, uint32(4), Scalar{Kind: ScalarBool}.MinSize())
	assert.Equal(t, uint32(4), Scalar{Kind: ScalarInt, Bits: 32}.MinSize())
	assert.Equal(t, uint32(8), Scalar{Kind: ScalarInt, Bits: 64}.MinSize())
	assert.Equal(t, uint32(2), Scalar{Kind: ScalarFloat, Bits: 16}.MinSize())
}

func TestScalarIsSized(t *testing.T) {
	assert.False(t, Scalar{Kind: ScalarVoid}.IsSized())
	assert.True(t, Scalar{Kind: ScalarBool}.IsSized())
	assert.True(t, Scalar{Kind: ScalarInt, Bits: 32}.IsSized())
}

func TestVectorMinSize(t *testing.T) {
	v := Vector{Elem: Scalar{Kind: ScalarFloat, Bits: 32}, N: 3}
	assert.Equal(t, uint32(12), v.MinSize())
}

func TestMatrixMinSizeWithAndWithoutStride(t *testing.T) {
	col := Vector{Elem: Scalar{Kind: ScalarFloat, Bits: 32}, N: 4}
	stride := uint32(16)
	withStride := Matrix{Col: col, Cols: 4, Stride: &stride}
	assert.Equal(t, uint32(64), withStride.MinSize())

	withoutStride := Matrix{Col: col, Cols: 4}
	assert.Equal(t, uint32(64), withoutStride.MinSize())
}

func TestTypeKindTagging(t *testing.T) {
	var types = []struct {
		val  Type
		kind TypeKind
	}{
		{Scalar{}, KindScalar},
		{Vector{}, KindVector},
		{Matrix{}, KindMatrix},
		{Array{}, KindArray},
		{Struct{}, KindStruct},
		{Image{}, KindImage},
		{Sampler{}, KindSampler},
		{SampledImage{}, KindSampledImage},
		{Pointer{}, KindPointer},
		{AccelerationStructure{}, KindAccelerationStructure},
		{RayQuery{}, KindRayQuery},
	}
	for _, tc := range types {
		assert.Equal(t, tc.kind, tc.val.typeKind(), tc.kind.String())
	}
}
