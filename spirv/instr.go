package spirv

// Instr is a single decoded SPIR-V instruction: an opcode plus a slice view
// over its operand words (result-type id and result id, if any, are just
// the leading operand words per Op.HasResultAndType — this engine does not
// special-case them at the Instr level, following the teacher's flat
// []uint32 payload style in spirv/writer.go's Instruction).
//
// Words is a sub-slice of the module's own word buffer: decoding an
// instruction stream never copies.
type Instr struct {
	Op    Op
	Words []uint32 // operand words, excluding the opcode/length header word
}

// Operands returns a cursor over the instruction's operand words.
func (i Instr) Operands() *Operands {
	return &Operands{words: i.Words}
}

// Instrs is a forward-only decoder over the instruction stream that follows
// a SPIR-V module's 5-word header. It never copies instruction words: each
// call to Next returns an Instr whose Words slice aliases the input.
type Instrs struct {
	words  []uint32
	offset int
}

// NewInstrs starts decoding instructions from words, which must be
// everything after the 5-word header.
func NewInstrs(words []uint32) *Instrs {
	return &Instrs{words: words}
}

// Next decodes and returns the next instruction, or (nil, nil) at the end of
// the stream. It returns UnsupportedSpirv for a zero-length instruction and
// CorruptedSpirv for one whose declared length runs past the buffer — both
// are structural failures, unlike an unrecognized opcode (which decodes
// fine and is simply skipped by the caller).
func (s *Instrs) Next() (*Instr, error) {
	if s.offset >= len(s.words) {
		return nil, nil
	}
	head := s.words[s.offset]
	wordCount := int(head >> 16)
	op := Op(head & 0xFFFF)

	if wordCount == 0 {
		return nil, &DecodeError{Kind: ErrUnsupportedSpirv, Message: "instruction has zero word count"}
	}
	end := s.offset + wordCount
	if end > len(s.words) {
		return nil, &DecodeError{Kind: ErrCorruptedSpirv, Message: "instruction is truncated"}
	}

	instr := &Instr{Op: op, Words: s.words[s.offset+1 : end]}
	s.offset = end
	return instr, nil
}

// All decodes every remaining instruction eagerly. Reflection needs random
// access to the instruction list across several independent passes (the
// name table, type system and variable inventory each scan it on their
// own), so the top-level pipeline uses All once and shares the slice,
// rather than re-walking Next per pass.
func (s *Instrs) All() ([]Instr, error) {
	var out []Instr
	for {
		instr, err := s.Next()
		if err != nil {
			return nil, err
		}
		if instr == nil {
			return out, nil
		}
		out = append(out, *instr)
	}
}

// Operands is a cursor for reading typed operand values off an instruction's
// word slice, mirroring original_source/spirq-core/src/parse/instr.rs's
// Operands reader (translated from unsafe pointer casts to bounds-checked
// Go slicing).
type Operands struct {
	words []uint32
}

// Len returns the number of unread operand words.
func (o *Operands) Len() int { return len(o.words) }

// U32 reads one raw operand word.
func (o *Operands) U32() (uint32, error) {
	if len(o.words) == 0 {
		return 0, &DecodeError{Kind: ErrCorruptedSpirv, Message: "operand list exhausted"}
	}
	v := o.words[0]
	o.words = o.words[1:]
	return v, nil
}

// Bool reads a SPIR-V LiteralBool (encoded as a full word).
func (o *Operands) Bool() (bool, error) {
	v, err := o.U32()
	return v != 0, err
}

// Id reads an <id> operand.
func (o *Operands) Id() (uint32, error) { return o.U32() }

// U64 reads two consecutive words as a 64-bit unsigned literal, low word
// first, per SPIR-V's rule for literals wider than 32 bits.
func (o *Operands) U64() (uint64, error) {
	lo, err := o.U32()
	if err != nil {
		return 0, err
	}
	hi, err := o.U32()
	if err != nil {
		return 0, err
	}
	return uint64(lo) | uint64(hi)<<32, nil
}

// String reads a NUL-terminated, little-endian, 4-bytes-per-word packed
// UTF-8 string operand and advances past its rounded-up word count. It
// never reads past the operand list even for a malformed string
// (CorruptedSpirv rather than an out-of-bounds read).
func (o *Operands) String() (string, error) {
	for i, w := range o.words {
		for shift := 0; shift < 32; shift += 8 {
			if byte(w>>shift) == 0 {
				buf := make([]byte, 0, i*4+shift/8)
				for j := 0; j < i; j++ {
					buf = appendWordBytes(buf, o.words[j])
				}
				buf = appendWordBytesUpTo(buf, w, shift/8)
				o.words = o.words[i+1:]
				return string(buf), nil
			}
		}
	}
	return "", &DecodeError{Kind: ErrCorruptedSpirv, Message: "string operand is not NUL-terminated"}
}

func appendWordBytes(buf []byte, w uint32) []byte {
	return append(buf, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
}

func appendWordBytesUpTo(buf []byte, w uint32, n int) []byte {
	for i := 0; i < n; i++ {
		buf = append(buf, byte(w>>(8*i)))
	}
	return buf
}

// Remainder returns every unread operand word and consumes them, leaving
// the cursor empty — used for variable-length trailing operand lists
// (OpEntryPoint's interface ids, OpDecorate's parameter list, ...).
func (o *Operands) Remainder() []uint32 {
	rv := o.words
	o.words = nil
	return rv
}
