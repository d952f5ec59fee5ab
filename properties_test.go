package spirq

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/spirq/ir"
)

// fuzzSpecialization is populated by gofakeit.Struct to drive randomized
// Config.Specializations overrides in the determinism property test
// below: reflection must be deterministic and idempotent under
// specialization.
type fuzzSpecialization struct {
	Base uint32
}

// TestReflectIsDeterministicUnderRandomSpecialization runs the decode,
// type-building and specialization-folding passes twice with the same
// randomized override and requires the resulting array type to be
// identical, dumping a structural diff through go-spew if they ever
// diverge.
func TestReflectIsDeterministicUnderRandomSpecialization(t *testing.T) {
	for i := 0; i < 20; i++ {
		var fs fuzzSpecialization
		require.NoError(t, gofakeit.Struct(&fs))

		b, specID, arrayType := buildSpecializationWalkModule()
		words := b.Build()
		override := make([]byte, 4)
		override[0] = byte(fs.Base)
		override[1] = byte(fs.Base >> 8)
		override[2] = byte(fs.Base >> 16)
		override[3] = byte(fs.Base >> 24)
		cfg := Config{Spirv: words, Specializations: map[uint32][]byte{specID: override}}

		first := reflectTypeSystem(t, cfg)
		second := reflectTypeSystem(t, cfg)

		firstArr, ok := first.types.Lookup(ir.TypeHandle(arrayType))
		require.True(t, ok)
		secondArr, ok := second.types.Lookup(ir.TypeHandle(arrayType))
		require.True(t, ok)

		if !assert.Equal(t, firstArr, secondArr) {
			t.Logf("first:\n%s\nsecond:\n%s", spew.Sdump(firstArr), spew.Sdump(secondArr))
		}
	}
}

func reflectTypeSystem(t *testing.T, cfg Config) *typeSystem {
	t.Helper()
	cfg.Logger = DefaultConfig().Logger
	mod, err := decodeModule(cfg)
	require.Nil(t, err)
	names, err := buildNameTable(mod.instrs)
	require.Nil(t, err)
	ts, err := buildTypeSystem(mod.instrs, names, cfg.Logger)
	require.Nil(t, err)
	require.Nil(t, foldSpecialization(mod.instrs, names, ts, cfg))
	ts.patchArrayLengths()
	return ts
}

// TestReflectNeverPanicsOnFuzzedBuffers feeds gofuzz-generated random
// byte buffers through LoadWords and Reflect and requires a structural
// Error rather than a panic.
func TestReflectNeverPanicsOnFuzzedBuffers(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 64)
	for i := 0; i < 50; i++ {
		var buf []byte
		f.Fuzz(&buf)

		assert.NotPanics(t, func() {
			words, err := LoadWords(buf)
			if err != nil {
				return
			}
			_, _ = Reflect(Config{Spirv: words})
		})
	}
}

// TestReflectNeverPanicsOnFuzzedWordStreams fuzzes word arrays directly
// (bypassing the byte/endianness layer) so malformed instruction bodies
// — truncated operands, huge word counts, unknown opcodes — reach the
// instruction decoder and Reflect's passes without a valid header ever
// being required to construct them.
func TestReflectNeverPanicsOnFuzzedWordStreams(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(5, 128)
	for i := 0; i < 50; i++ {
		var words []uint32
		f.Fuzz(&words)

		assert.NotPanics(t, func() {
			_, _ = Reflect(Config{Spirv: words})
		})
	}
}
