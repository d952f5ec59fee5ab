package spirv

import (
	"encoding/binary"
	"math"
)

// Instruction is one encoded SPIR-V instruction body (everything after the
// opcode/length header word), built incrementally by InstructionBuilder.
// Adapted from the teacher's spirv.Instruction (spirv/writer.go): same
// shape, renamed nothing, kept as the encode-side counterpart of Instr.
type Instruction struct {
	Op    Op
	Words []uint32
}

// Encode returns the instruction's words including its packed header word.
func (i Instruction) Encode() []uint32 {
	wordCount := uint32(len(i.Words) + 1)
	out := make([]uint32, 0, wordCount)
	out = append(out, (wordCount<<16)|uint32(i.Op))
	return append(out, i.Words...)
}

// InstructionBuilder accumulates operand words for a single instruction.
type InstructionBuilder struct {
	words []uint32
}

// NewInstructionBuilder starts building an instruction.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{words: make([]uint32, 0, 8)}
}

// Word appends a raw operand word.
func (b *InstructionBuilder) Word(word uint32) *InstructionBuilder {
	b.words = append(b.words, word)
	return b
}

// AddWords appends several raw operand words.
func (b *InstructionBuilder) AddWords(words ...uint32) *InstructionBuilder {
	b.words = append(b.words, words...)
	return b
}

// Str appends a NUL-terminated, word-padded UTF-8 string operand.
func (b *InstructionBuilder) Str(s string) *InstructionBuilder {
	bytes := []byte(s)
	bytes = append(bytes, 0)
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}
	for i := 0; i < len(bytes); i += 4 {
		b.words = append(b.words, binary.LittleEndian.Uint32(bytes[i:i+4]))
	}
	return b
}

// Build finalizes the instruction with the given opcode.
func (b *InstructionBuilder) Build(op Op) Instruction {
	return Instruction{Op: op, Words: b.words}
}

// Builder assembles a complete SPIR-V module section by section, in the
// fixed order the format requires. It is the encode-side mirror of
// Instrs/Instr, adapted from the teacher's spirv.ModuleBuilder
// (spirv/writer.go); this module uses it exclusively to construct test
// fixture modules rather than to compile a shader IR, since compiling
// shading languages to SPIR-V is out of scope for a reflection library.
type Builder struct {
	version   Version
	generator uint32
	schema    uint32
	nextID    uint32

	capabilities   []Instruction
	extensions     []Instruction
	extInstImports []Instruction
	memoryModel    *Instruction
	entryPoints    []Instruction
	executionModes []Instruction
	debugNames     []Instruction
	annotations    []Instruction
	types          []Instruction
	globalVars     []Instruction
	functions      []Instruction
}

// NewBuilder starts a module of the given version.
func NewBuilder(version Version) *Builder {
	return &Builder{version: version, nextID: 1}
}

// ID allocates and returns a fresh module-scope id.
func (b *Builder) ID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Builder) AddCapability(c Capability) {
	b.capabilities = append(b.capabilities, NewInstructionBuilder().Word(uint32(c)).Build(OpCapability))
}

func (b *Builder) AddExtension(name string) {
	b.extensions = append(b.extensions, NewInstructionBuilder().Str(name).Build(OpExtension))
}

func (b *Builder) AddExtInstImport(name string) uint32 {
	id := b.ID()
	b.extInstImports = append(b.extInstImports, NewInstructionBuilder().Word(id).Str(name).Build(OpExtInstImport))
	return id
}

func (b *Builder) SetMemoryModel(addr AddressingModel, mem MemoryModel) {
	inst := NewInstructionBuilder().Word(uint32(addr)).Word(uint32(mem)).Build(OpMemoryModel)
	b.memoryModel = &inst
}

// AddEntryPoint emits OpEntryPoint. interfaceIDs are the module-scope
// (or Input/Output, per-version) interface variable ids.
func (b *Builder) AddEntryPoint(model ExecutionModel, funcID uint32, name string, interfaceIDs ...uint32) {
	ib := NewInstructionBuilder().Word(uint32(model)).Word(funcID).Str(name)
	ib.AddWords(interfaceIDs...)
	b.entryPoints = append(b.entryPoints, ib.Build(OpEntryPoint))
}

func (b *Builder) AddExecutionMode(entryPoint uint32, mode ExecutionMode, params ...uint32) {
	ib := NewInstructionBuilder().Word(entryPoint).Word(uint32(mode))
	ib.AddWords(params...)
	b.executionModes = append(b.executionModes, ib.Build(OpExecutionMode))
}

func (b *Builder) AddName(id uint32, name string) {
	b.debugNames = append(b.debugNames, NewInstructionBuilder().Word(id).Str(name).Build(OpName))
}

func (b *Builder) AddMemberName(structID, member uint32, name string) {
	b.debugNames = append(b.debugNames, NewInstructionBuilder().Word(structID).Word(member).Str(name).Build(OpMemberName))
}

func (b *Builder) AddDecorate(id uint32, d Decoration, params ...uint32) {
	ib := NewInstructionBuilder().Word(id).Word(uint32(d))
	ib.AddWords(params...)
	b.annotations = append(b.annotations, ib.Build(OpDecorate))
}

func (b *Builder) AddMemberDecorate(structID, member uint32, d Decoration, params ...uint32) {
	ib := NewInstructionBuilder().Word(structID).Word(member).Word(uint32(d))
	ib.AddWords(params...)
	b.annotations = append(b.annotations, ib.Build(OpMemberDecorate))
}

// AddDecorationGroup + AddGroupDecorate let fixtures exercise the name
// table's decoration-group expansion (see names.go).
func (b *Builder) AddDecorationGroup() uint32 {
	id := b.ID()
	b.annotations = append(b.annotations, NewInstructionBuilder().Word(id).Build(OpDecorationGroup))
	return id
}

func (b *Builder) AddGroupDecorate(groupID uint32, targets ...uint32) {
	ib := NewInstructionBuilder().Word(groupID)
	ib.AddWords(targets...)
	b.annotations = append(b.annotations, ib.Build(OpGroupDecorate))
}

func (b *Builder) addType(op Op, words ...uint32) uint32 {
	id := b.ID()
	ib := NewInstructionBuilder().Word(id)
	ib.AddWords(words...)
	b.types = append(b.types, ib.Build(op))
	return id
}

func (b *Builder) AddTypeVoid() uint32                  { return b.addType(OpTypeVoid) }
func (b *Builder) AddTypeBool() uint32                  { return b.addType(OpTypeBool) }
func (b *Builder) AddTypeFloat(width uint32) uint32     { return b.addType(OpTypeFloat, width) }

func (b *Builder) AddTypeInt(width uint32, signed bool) uint32 {
	s := uint32(0)
	if signed {
		s = 1
	}
	return b.addType(OpTypeInt, width, s)
}

func (b *Builder) AddTypeVector(component uint32, count uint32) uint32 {
	return b.addType(OpTypeVector, component, count)
}

func (b *Builder) AddTypeMatrix(column uint32, columnCount uint32) uint32 {
	return b.addType(OpTypeMatrix, column, columnCount)
}

// AddTypeArray requires lengthConstID: a scalar constant id, per the SPIR-V
// grammar (array length is a constant reference, not a literal).
func (b *Builder) AddTypeArray(elem uint32, lengthConstID uint32) uint32 {
	return b.addType(OpTypeArray, elem, lengthConstID)
}

func (b *Builder) AddTypeRuntimeArray(elem uint32) uint32 {
	return b.addType(OpTypeRuntimeArray, elem)
}

func (b *Builder) AddTypeStruct(members ...uint32) uint32 {
	return b.addType(OpTypeStruct, members...)
}

func (b *Builder) AddTypePointer(sc StorageClass, base uint32) uint32 {
	return b.addType(OpTypePointer, uint32(sc), base)
}

func (b *Builder) AddTypeFunction(ret uint32, params ...uint32) uint32 {
	return b.addType(OpTypeFunction, append([]uint32{ret}, params...)...)
}

// AddTypeImage covers the sampled/storage/subpass-input/depth grammar:
// dim, depth, arrayed, ms, sampled, fmt.
func (b *Builder) AddTypeImage(sampledType uint32, dim Dim, depth, arrayed, ms uint32, sampled uint32, format ImageFormat) uint32 {
	return b.addType(OpTypeImage, sampledType, uint32(dim), depth, arrayed, ms, sampled, uint32(format))
}

func (b *Builder) AddTypeSampler() uint32 { return b.addType(OpTypeSampler) }

func (b *Builder) AddTypeSampledImage(imageType uint32) uint32 {
	return b.addType(OpTypeSampledImage, imageType)
}

func (b *Builder) AddTypeAccelerationStructure() uint32 {
	return b.addType(OpTypeAccelerationStructureKHR)
}

func (b *Builder) AddTypeRayQuery() uint32 { return b.addType(OpTypeRayQueryKHR) }

func (b *Builder) addConstant(op Op, typeID uint32, values ...uint32) uint32 {
	id := b.ID()
	ib := NewInstructionBuilder().Word(typeID).Word(id)
	ib.AddWords(values...)
	b.types = append(b.types, ib.Build(op))
	return id
}

func (b *Builder) AddConstantTrue(boolType uint32) uint32  { return b.addConstant(OpConstantTrue, boolType) }
func (b *Builder) AddConstantFalse(boolType uint32) uint32 { return b.addConstant(OpConstantFalse, boolType) }

func (b *Builder) AddConstant(typeID uint32, value uint32) uint32 {
	return b.addConstant(OpConstant, typeID, value)
}

func (b *Builder) AddConstantWide(typeID uint32, value uint64) uint32 {
	return b.addConstant(OpConstant, typeID, uint32(value), uint32(value>>32))
}

func (b *Builder) AddConstantFloat32(typeID uint32, value float32) uint32 {
	return b.addConstant(OpConstant, typeID, math.Float32bits(value))
}

func (b *Builder) AddConstantComposite(typeID uint32, constituents ...uint32) uint32 {
	return b.addConstant(OpConstantComposite, typeID, constituents...)
}

// AddSpecConstant emits OpSpecConstant decorated with SpecId — the id
// foldSpecialization matches against Config.Specializations.
func (b *Builder) AddSpecConstant(typeID uint32, specID uint32, defaultValue uint32) uint32 {
	id := b.addConstant(OpSpecConstant, typeID, defaultValue)
	b.AddDecorate(id, DecorationSpecId, specID)
	return id
}

func (b *Builder) AddSpecConstantTrue(boolType, specID uint32) uint32 {
	id := b.addConstant(OpSpecConstantTrue, boolType)
	b.AddDecorate(id, DecorationSpecId, specID)
	return id
}

func (b *Builder) AddSpecConstantComposite(typeID uint32, constituents ...uint32) uint32 {
	return b.addConstant(OpSpecConstantComposite, typeID, constituents...)
}

// AddSpecConstantOp emits OpSpecConstantOp; boundOp is the folded opcode and
// operands are already-defined result ids (constants or other spec-const-op
// results), since folding relies on operands appearing in declaration order.
func (b *Builder) AddSpecConstantOp(typeID uint32, boundOp Op, operands ...uint32) uint32 {
	id := b.ID()
	ib := NewInstructionBuilder().Word(typeID).Word(id).Word(uint32(boundOp))
	ib.AddWords(operands...)
	b.types = append(b.types, ib.Build(OpSpecConstantOp))
	return id
}

func (b *Builder) AddVariable(pointerType uint32, sc StorageClass) uint32 {
	id := b.ID()
	inst := NewInstructionBuilder().Word(pointerType).Word(id).Word(uint32(sc)).Build(OpVariable)
	if sc == StorageClassFunction {
		b.functions = append(b.functions, inst)
	} else {
		b.globalVars = append(b.globalVars, inst)
	}
	return id
}

func (b *Builder) AddVariableWithInit(pointerType uint32, sc StorageClass, initID uint32) uint32 {
	id := b.ID()
	b.globalVars = append(b.globalVars, NewInstructionBuilder().Word(pointerType).Word(id).Word(uint32(sc)).Word(initID).Build(OpVariable))
	return id
}

// Function-body emission — kept minimal (label/load/store/access-chain/
// atomics/return) since this engine's fixtures only need enough function
// bodies for the access analyzer to trace, not full control flow.
// AddVariable inside a function body uses StorageClassFunction and is
// appended to the current function's instruction list, mirroring
// OpVariable's special rule of always appearing in the first block.

func (b *Builder) AddFunction(funcType, returnType uint32, control FunctionControl) uint32 {
	id := b.ID()
	b.functions = append(b.functions, NewInstructionBuilder().Word(returnType).Word(id).Word(uint32(control)).Word(funcType).Build(OpFunction))
	return id
}

func (b *Builder) AddFunctionEnd() {
	b.functions = append(b.functions, NewInstructionBuilder().Build(OpFunctionEnd))
}

func (b *Builder) AddLabel() uint32 {
	id := b.ID()
	b.functions = append(b.functions, NewInstructionBuilder().Word(id).Build(OpLabel))
	return id
}

func (b *Builder) AddLoad(resultType, pointer uint32) uint32 {
	id := b.ID()
	b.functions = append(b.functions, NewInstructionBuilder().Word(resultType).Word(id).Word(pointer).Build(OpLoad))
	return id
}

func (b *Builder) AddStore(pointer, value uint32) {
	b.functions = append(b.functions, NewInstructionBuilder().Word(pointer).Word(value).Build(OpStore))
}

func (b *Builder) AddAccessChain(resultType, base uint32, indices ...uint32) uint32 {
	id := b.ID()
	ib := NewInstructionBuilder().Word(resultType).Word(id).Word(base)
	ib.AddWords(indices...)
	b.functions = append(b.functions, ib.Build(OpAccessChain))
	return id
}

func (b *Builder) AddAtomic(op Op, resultType, pointer, scope, semantics uint32, extra ...uint32) uint32 {
	id := b.ID()
	ib := NewInstructionBuilder().Word(resultType).Word(id).Word(pointer).Word(scope).Word(semantics)
	ib.AddWords(extra...)
	b.functions = append(b.functions, ib.Build(op))
	return id
}

// AddAtomicStore is void-result (per SPIR-V grammar, unlike other atomics).
func (b *Builder) AddAtomicStore(pointer, scope, semantics, value uint32) {
	b.functions = append(b.functions, NewInstructionBuilder().Word(pointer).Word(scope).Word(semantics).Word(value).Build(OpAtomicStore))
}

func (b *Builder) AddFunctionCall(resultType, function uint32, args ...uint32) uint32 {
	id := b.ID()
	ib := NewInstructionBuilder().Word(resultType).Word(id).Word(function)
	ib.AddWords(args...)
	b.functions = append(b.functions, ib.Build(OpFunctionCall))
	return id
}

func (b *Builder) AddImageOp(op Op, resultType uint32, image uint32, extra ...uint32) uint32 {
	id := b.ID()
	ib := NewInstructionBuilder().Word(resultType).Word(id).Word(image)
	ib.AddWords(extra...)
	b.functions = append(b.functions, ib.Build(op))
	return id
}

// AddImageWrite is void-result.
func (b *Builder) AddImageWrite(image, coordinate, texel uint32) {
	b.functions = append(b.functions, NewInstructionBuilder().Word(image).Word(coordinate).Word(texel).Build(OpImageWrite))
}

func (b *Builder) AddReturn() {
	b.functions = append(b.functions, NewInstructionBuilder().Build(OpReturn))
}

// Build serializes the module's sections, in SPIR-V's mandated order, into a
// little-endian word slice ready for Config.Spirv.
func (b *Builder) Build() []uint32 {
	var out []uint32
	out = append(out, MagicNumber, b.version.Word(), b.generator, b.nextID, b.schema)
	for _, section := range [][]Instruction{
		b.capabilities, b.extensions, b.extInstImports,
	} {
		out = appendSection(out, section)
	}
	if b.memoryModel != nil {
		out = append(out, b.memoryModel.Encode()...)
	}
	for _, section := range [][]Instruction{
		b.entryPoints, b.executionModes, b.debugNames, b.annotations, b.types, b.globalVars, b.functions,
	} {
		out = appendSection(out, section)
	}
	return out
}

// BuildBytes is Build encoded to a little-endian byte slice.
func (b *Builder) BuildBytes() []byte {
	words := b.Build()
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func appendSection(out []uint32, instrs []Instruction) []uint32 {
	for _, inst := range instrs {
		out = append(out, inst.Encode()...)
	}
	return out
}
