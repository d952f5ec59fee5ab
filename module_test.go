package spirq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/spirq/spirv"
)

func TestLoadWordsRoundTripsLittleEndian(t *testing.T) {
	b := buildFragmentGallery()
	raw := b.BuildBytes()
	words, err := LoadWords(raw)
	require.NoError(t, err)
	assert.Equal(t, b.Build(), words)
}

func TestLoadWordsRejectsGarbage(t *testing.T) {
	_, err := LoadWords([]byte{1, 2, 3})
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
}

func TestDecodeModuleRejectsNilSpirv(t *testing.T) {
	_, err := decodeModule(Config{})
	require.NotNil(t, err)
	assert.Equal(t, KindArgumentNull, err.Kind)
}

func TestDecodeModuleRejectsShortBuffer(t *testing.T) {
	_, err := decodeModule(Config{Spirv: []uint32{spirv.MagicNumber, 0, 0, 0}})
	require.NotNil(t, err)
	assert.Equal(t, KindArgumentOutOfRange, err.Kind)
}

func TestDecodeModuleParsesHeaderAndInstructions(t *testing.T) {
	b := buildFragmentGallery()
	mod, err := decodeModule(Config{Spirv: b.Build()})
	require.Nil(t, err)
	assert.Equal(t, spirv.MagicNumber, mod.header.Magic)
	assert.NotEmpty(t, mod.instrs)
}
