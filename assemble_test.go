package spirq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/spirq/ir"
	"github.com/gogpu/spirq/spirv"
)

func TestAssembleEntryPointsSortsDescriptorsBySetAndBinding(t *testing.T) {
	b := buildFragmentGallery()
	eps, err := Reflect(Config{Spirv: b.Build(), ReferenceAllResources: true})
	require.NoError(t, err)
	require.Len(t, eps, 1)

	descs := eps[0].Descriptors
	for i := 1; i < len(descs); i++ {
		prev, cur := descs[i-1], descs[i]
		if prev.Set == cur.Set {
			assert.LessOrEqual(t, prev.Binding, cur.Binding)
		} else {
			assert.Less(t, prev.Set, cur.Set)
		}
	}
}

func TestAssembleEntryPointsAttachesExecutionModes(t *testing.T) {
	b := buildFragmentGallery()
	eps, err := Reflect(Config{Spirv: b.Build()})
	require.NoError(t, err)
	require.Len(t, eps, 1)
	require.Len(t, eps[0].ExecutionModes, 1)
}

func TestAssembleEntryPointsSpecConstantsAttachedToEveryEntryPoint(t *testing.T) {
	b, specID, _ := buildSpecializationWalkModule()
	// this fixture has no OpEntryPoint, so wire one on top of it directly
	// through the same builder to exercise collectSpecConstants.
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)
	fn := b.AddFunction(fnType, void, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(spirv.ExecutionModelVertex, fn, "main")

	eps, err := Reflect(Config{Spirv: b.Build()})
	require.NoError(t, err)
	require.Len(t, eps, 1)
	require.Len(t, eps[0].SpecConstants, 1)
	assert.Equal(t, specID, eps[0].SpecConstants[0].SpecID)
}

// TestAssembleEntryPointsDuplicateBindingTiesAreStableByDeclarationOrder
// guards the determinism fix: two descriptors sharing (set, binding)
// must keep their module declaration order across repeated Reflect
// calls rather than whatever order a map iteration happened to
// produce that run.
func TestAssembleEntryPointsDuplicateBindingTiesAreStableByDeclarationOrder(t *testing.T) {
	b, _ := buildDuplicateBindingModule()
	words := b.Build()

	for i := 0; i < 20; i++ {
		eps, err := Reflect(Config{Spirv: words, ReferenceAllResources: true})
		require.NoError(t, err)
		require.Len(t, eps, 1)
		require.Len(t, eps[0].Descriptors, 2)
		assert.Equal(t, "First", eps[0].Descriptors[0].Name)
		assert.Equal(t, "Second", eps[0].Descriptors[1].Name)
	}
}

func TestAssembleEntryPointsCapturesInputAttachmentIndex(t *testing.T) {
	b, attachmentIndex := buildInputAttachmentModule()
	eps, err := Reflect(Config{Spirv: b.Build(), ReferenceAllResources: true})
	require.NoError(t, err)
	require.Len(t, eps, 1)
	require.Len(t, eps[0].Descriptors, 1)

	desc := eps[0].Descriptors[0]
	assert.Equal(t, ir.DescriptorInputAttachment, desc.Kind)
	require.NotNil(t, desc.InputAttachmentIndex)
	assert.Equal(t, attachmentIndex, *desc.InputAttachmentIndex)
}

func TestEntryPointTypesRegistryResolvesDescriptorType(t *testing.T) {
	b := buildFragmentGallery()
	eps, err := Reflect(Config{Spirv: b.Build()})
	require.NoError(t, err)
	require.Len(t, eps, 1)
	require.NotNil(t, eps[0].Types)

	desc := eps[0].Descriptors[0]
	ty, ok := eps[0].Types.Lookup(desc.Type)
	require.True(t, ok)
	_, isStruct := ty.(ir.Struct)
	assert.True(t, isStruct)
}
