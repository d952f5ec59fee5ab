package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessModeJoin(t *testing.T) {
	assert.Equal(t, AccessReadWrite, AccessRead.Join(AccessWrite))
	assert.Equal(t, AccessRead, AccessRead.Join(AccessNone))
	assert.Equal(t, AccessReadWrite|AccessAtomic, AccessRead.Join(AccessWrite).Join(AccessAtomic))
}

func TestAccessModeAtomicImpliesReadWriteRegardlessOfOpcode(t *testing.T) {
	// OpAtomicLoad is nominally read-only but spirq couples "atomically
	// accessed" with ReadWrite (v0.4.18); this package doesn't decide
	// that policy, it just needs the bitset to be able to represent it
	// once the caller joins in AccessReadWrite itself.
	mode := AccessNone.Join(AccessReadWrite).Join(AccessAtomic)
	assert.True(t, mode.HasRead())
	assert.True(t, mode.HasWrite())
	assert.True(t, mode.HasAtomic())
}

func TestAccessModeClamp(t *testing.T) {
	rw := AccessReadWrite
	assert.Equal(t, AccessWrite, rw.Clamp(true, false))
	assert.Equal(t, AccessRead, rw.Clamp(false, true))
	assert.Equal(t, AccessNone, rw.Clamp(true, true))
	assert.Equal(t, AccessReadWrite, rw.Clamp(false, false))
}

func TestAccessModeString(t *testing.T) {
	assert.Equal(t, "None", AccessNone.String())
	assert.Equal(t, "ReadOnly", AccessRead.String())
	assert.Equal(t, "WriteOnly", AccessWrite.String())
	assert.Equal(t, "ReadWrite", AccessReadWrite.String())
	assert.Equal(t, "ReadWrite|Atomic", (AccessReadWrite | AccessAtomic).String())
}
