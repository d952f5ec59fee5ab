package ir

// AccessMode is the {None, ReadOnly, WriteOnly, ReadWrite} x HasAtomic
// lattice, implemented as a bitset so Join is one OR rather than a
// matrix of boolean combinations.
type AccessMode uint8

const (
	AccessNone   AccessMode = 0
	AccessRead   AccessMode = 1 << 0
	AccessWrite  AccessMode = 1 << 1
	AccessAtomic AccessMode = 1 << 2

	AccessReadWrite = AccessRead | AccessWrite
)

// Join is the lattice's join operation: the access a descriptor exposes
// once every use site touching it has been folded in.
func (a AccessMode) Join(b AccessMode) AccessMode { return a | b }

func (a AccessMode) HasRead() bool   { return a&AccessRead != 0 }
func (a AccessMode) HasWrite() bool  { return a&AccessWrite != 0 }
func (a AccessMode) HasAtomic() bool { return a&AccessAtomic != 0 }

// Clamp applies NonReadable/NonWritable decorations, which override
// whatever the access analyzer inferred from use sites.
func (a AccessMode) Clamp(nonReadable, nonWritable bool) AccessMode {
	if nonReadable {
		a &^= AccessRead
	}
	if nonWritable {
		a &^= AccessWrite
	}
	return a
}

func (a AccessMode) String() string {
	s := ""
	switch {
	case a.HasRead() && a.HasWrite():
		s = "ReadWrite"
	case a.HasRead():
		s = "ReadOnly"
	case a.HasWrite():
		s = "WriteOnly"
	default:
		s = "None"
	}
	if a.HasAtomic() {
		s += "|Atomic"
	}
	return s
}
