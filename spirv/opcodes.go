package spirv

// Op is a SPIR-V instruction opcode, the low 16 bits of an instruction's
// first word. The full grammar has hundreds of opcodes; this engine only
// names the ones its passes dispatch on. Everything else decodes as an
// opaque instruction (skipped by its word count, never by rejecting it).
type Op uint16

const (
	OpNop           Op = 0
	OpUndef         Op = 1
	OpSourceContinued Op = 2
	OpSource        Op = 3
	OpSourceExtension Op = 4
	OpName          Op = 5
	OpMemberName    Op = 6
	OpString        Op = 7
	OpLine          Op = 8
	OpExtension     Op = 10
	OpExtInstImport Op = 11
	OpExtInst       Op = 12
	OpMemoryModel   Op = 14
	OpEntryPoint    Op = 15
	OpExecutionMode Op = 16
	OpCapability    Op = 17

	OpTypeVoid          Op = 19
	OpTypeBool          Op = 20
	OpTypeInt           Op = 21
	OpTypeFloat         Op = 22
	OpTypeVector        Op = 23
	OpTypeMatrix        Op = 24
	OpTypeImage         Op = 25
	OpTypeSampler       Op = 26
	OpTypeSampledImage  Op = 27
	OpTypeArray         Op = 28
	OpTypeRuntimeArray  Op = 29
	OpTypeStruct        Op = 30
	OpTypeOpaque        Op = 31
	OpTypePointer       Op = 32
	OpTypeFunction      Op = 33
	OpTypeForwardPointer Op = 39

	OpConstantTrue        Op = 41
	OpConstantFalse       Op = 42
	OpConstant            Op = 43
	OpConstantComposite   Op = 44
	OpConstantSampler     Op = 45
	OpConstantNull        Op = 46
	OpSpecConstantTrue    Op = 48
	OpSpecConstantFalse   Op = 49
	OpSpecConstant        Op = 50
	OpSpecConstantComposite Op = 51
	OpSpecConstantOp      Op = 52

	OpFunction          Op = 54
	OpFunctionParameter Op = 55
	OpFunctionEnd       Op = 56
	OpFunctionCall      Op = 57

	OpVariable               Op = 59
	OpImageTexelPointer      Op = 60
	OpLoad                   Op = 61
	OpStore                  Op = 62
	OpCopyMemory             Op = 63
	OpCopyMemorySized        Op = 64
	OpAccessChain            Op = 65
	OpInBoundsAccessChain    Op = 66
	OpPtrAccessChain         Op = 67
	OpArrayLength            Op = 68
	OpInBoundsPtrAccessChain Op = 70

	OpDecorate            Op = 71
	OpMemberDecorate      Op = 72
	OpDecorationGroup     Op = 73
	OpGroupDecorate       Op = 74
	OpGroupMemberDecorate Op = 75

	OpVectorShuffle     Op = 79
	OpCompositeConstruct Op = 80
	OpCompositeExtract  Op = 81
	OpCompositeInsert   Op = 82
	OpCopyObject        Op = 83
	OpTranspose         Op = 84

	OpSampledImage               Op = 86
	OpImageSampleImplicitLod     Op = 87
	OpImageSampleExplicitLod     Op = 88
	OpImageSampleDrefImplicitLod Op = 89
	OpImageSampleDrefExplicitLod Op = 90
	OpImageFetch                 Op = 95
	OpImageGather                Op = 96
	OpImageDrefGather            Op = 97
	OpImageRead                  Op = 98
	OpImageWrite                 Op = 99
	OpImage                      Op = 100
	OpImageQuerySize             Op = 104
	OpImageQuerySizeLod          Op = 103

	OpSNegate Op = 126
	OpFNegate Op = 127
	OpIAdd    Op = 128
	OpFAdd    Op = 129
	OpISub    Op = 130
	OpFSub    Op = 131
	OpIMul    Op = 132
	OpFMul    Op = 133
	OpUDiv    Op = 134
	OpSDiv    Op = 135
	OpFDiv    Op = 136
	OpUMod    Op = 137
	OpSRem    Op = 138
	OpSMod    Op = 139

	OpLogicalEqual        Op = 164
	OpLogicalNotEqual     Op = 165
	OpLogicalOr           Op = 166
	OpLogicalAnd          Op = 167
	OpLogicalNot          Op = 168
	OpSelect              Op = 169
	OpIEqual              Op = 170
	OpINotEqual           Op = 171
	OpUGreaterThan        Op = 172
	OpSGreaterThan        Op = 173
	OpUGreaterThanEqual   Op = 174
	OpSGreaterThanEqual   Op = 175
	OpULessThan           Op = 176
	OpSLessThan           Op = 177
	OpULessThanEqual      Op = 178
	OpSLessThanEqual      Op = 179

	OpShiftRightLogical    Op = 194
	OpShiftRightArithmetic Op = 195
	OpShiftLeftLogical     Op = 196
	OpBitwiseOr            Op = 197
	OpBitwiseXor           Op = 198
	OpBitwiseAnd           Op = 199
	OpNot                  Op = 200

	OpControlBarrier Op = 224
	OpMemoryBarrier  Op = 225

	OpAtomicLoad               Op = 227
	OpAtomicStore              Op = 228
	OpAtomicExchange           Op = 229
	OpAtomicCompareExchange    Op = 230
	OpAtomicCompareExchangeWeak Op = 231
	OpAtomicIIncrement         Op = 232
	OpAtomicIDecrement         Op = 233
	OpAtomicIAdd               Op = 234
	OpAtomicISub               Op = 235
	OpAtomicSMin               Op = 236
	OpAtomicUMin               Op = 237
	OpAtomicSMax               Op = 238
	OpAtomicUMax               Op = 239
	OpAtomicAnd                Op = 240
	OpAtomicOr                 Op = 241
	OpAtomicXor                Op = 242

	OpPhi              Op = 245
	OpLoopMerge        Op = 246
	OpSelectionMerge   Op = 247
	OpLabel            Op = 248
	OpBranch           Op = 249
	OpBranchConditional Op = 250
	OpSwitch           Op = 251
	OpKill             Op = 252
	OpReturn           Op = 253
	OpReturnValue      Op = 254
	OpUnreachable      Op = 255

	// SPV_KHR_ray_tracing / SPV_KHR_ray_query.
	OpTypeRayQueryKHR           Op = 4472
	OpTypeAccelerationStructureKHR Op = 5341
)

// opNames backs Op.String for diagnostics; unset entries fall back to a
// numeric rendering, matching the tolerant "unknown opcodes aren't fatal"
// design of the decoder.
var opNames = map[Op]string{
	OpNop: "OpNop", OpSource: "OpSource", OpName: "OpName", OpMemberName: "OpMemberName",
	OpString: "OpString", OpExtInstImport: "OpExtInstImport", OpMemoryModel: "OpMemoryModel",
	OpEntryPoint: "OpEntryPoint", OpExecutionMode: "OpExecutionMode", OpCapability: "OpCapability",
	OpTypeVoid: "OpTypeVoid", OpTypeBool: "OpTypeBool", OpTypeInt: "OpTypeInt", OpTypeFloat: "OpTypeFloat",
	OpTypeVector: "OpTypeVector", OpTypeMatrix: "OpTypeMatrix", OpTypeImage: "OpTypeImage",
	OpTypeSampler: "OpTypeSampler", OpTypeSampledImage: "OpTypeSampledImage", OpTypeArray: "OpTypeArray",
	OpTypeRuntimeArray: "OpTypeRuntimeArray", OpTypeStruct: "OpTypeStruct", OpTypeOpaque: "OpTypeOpaque",
	OpTypePointer: "OpTypePointer", OpTypeFunction: "OpTypeFunction",
	OpConstantTrue: "OpConstantTrue", OpConstantFalse: "OpConstantFalse", OpConstant: "OpConstant",
	OpConstantComposite: "OpConstantComposite", OpConstantNull: "OpConstantNull",
	OpSpecConstantTrue: "OpSpecConstantTrue", OpSpecConstantFalse: "OpSpecConstantFalse",
	OpSpecConstant: "OpSpecConstant", OpSpecConstantComposite: "OpSpecConstantComposite",
	OpSpecConstantOp: "OpSpecConstantOp",
	OpFunction: "OpFunction", OpFunctionParameter: "OpFunctionParameter", OpFunctionEnd: "OpFunctionEnd",
	OpFunctionCall: "OpFunctionCall", OpVariable: "OpVariable", OpLoad: "OpLoad", OpStore: "OpStore",
	OpAccessChain: "OpAccessChain", OpInBoundsAccessChain: "OpInBoundsAccessChain",
	OpPtrAccessChain: "OpPtrAccessChain", OpCopyObject: "OpCopyObject",
	OpDecorate: "OpDecorate", OpMemberDecorate: "OpMemberDecorate", OpDecorationGroup: "OpDecorationGroup",
	OpGroupDecorate: "OpGroupDecorate", OpGroupMemberDecorate: "OpGroupMemberDecorate",
	OpSampledImage: "OpSampledImage", OpImageRead: "OpImageRead", OpImageWrite: "OpImageWrite",
	OpImageSampleImplicitLod: "OpImageSampleImplicitLod", OpImageSampleExplicitLod: "OpImageSampleExplicitLod",
	OpAtomicLoad: "OpAtomicLoad", OpAtomicStore: "OpAtomicStore", OpAtomicExchange: "OpAtomicExchange",
	OpAtomicIIncrement: "OpAtomicIIncrement", OpAtomicIDecrement: "OpAtomicIDecrement",
	OpAtomicIAdd: "OpAtomicIAdd", OpAtomicISub: "OpAtomicISub",
	OpAtomicSMin: "OpAtomicSMin", OpAtomicUMin: "OpAtomicUMin", OpAtomicSMax: "OpAtomicSMax",
	OpAtomicUMax: "OpAtomicUMax", OpAtomicAnd: "OpAtomicAnd", OpAtomicOr: "OpAtomicOr", OpAtomicXor: "OpAtomicXor",
	OpLabel: "OpLabel", OpBranch: "OpBranch", OpBranchConditional: "OpBranchConditional",
	OpReturn: "OpReturn", OpReturnValue: "OpReturnValue", OpSelectionMerge: "OpSelectionMerge",
	OpLoopMerge: "OpLoopMerge", OpKill: "OpKill",
	OpTypeRayQueryKHR: "OpTypeRayQueryKHR", OpTypeAccelerationStructureKHR: "OpTypeAccelerationStructureKHR",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "Op#" + itoa(uint32(op))
}

// itoa formats an opcode number without importing strconv for this
// single call site (Op.String is only used in diagnostics).
func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// HasResultAndType reports whether an instruction of this opcode
// carries a result id and/or a result-type id as its first operand words —
// mirrors OpHasResultAndType from the SPIR-V grammar for the opcodes this
// engine actually dispatches on (the type/constant registry, the variable
// inventory, and the access analyzer's expression tracing).
func (op Op) HasResultAndType() (hasResult, hasType bool) {
	switch op {
	case OpNop, OpSource, OpSourceExtension, OpName, OpMemberName, OpMemoryModel, OpEntryPoint,
		OpExecutionMode, OpCapability, OpDecorate, OpMemberDecorate, OpGroupDecorate,
		OpGroupMemberDecorate, OpFunctionEnd, OpStore, OpCopyMemory, OpBranch, OpBranchConditional,
		OpLoopMerge, OpSelectionMerge, OpReturn, OpReturnValue, OpKill, OpUnreachable, OpAtomicStore,
		OpExtension, OpLine, OpControlBarrier, OpMemoryBarrier, OpImageWrite, OpSwitch,
		OpCopyMemorySized, OpSourceContinued:
		return false, false
	case OpTypeVoid, OpTypeBool, OpTypeInt, OpTypeFloat, OpTypeVector, OpTypeMatrix, OpTypeImage,
		OpTypeSampler, OpTypeSampledImage, OpTypeArray, OpTypeRuntimeArray, OpTypeStruct, OpTypeOpaque,
		OpTypePointer, OpTypeFunction, OpTypeRayQueryKHR, OpTypeAccelerationStructureKHR, OpLabel,
		OpExtInstImport, OpString, OpDecorationGroup:
		return true, false
	default:
		// Everything else that produces a value (OpLoad, OpConstant*,
		// OpVariable, OpAccessChain, OpFunctionCall, image/atomic ops, the
		// arithmetic and logical ops used by OpSpecConstantOp, ...) carries
		// both a result type and a result id as its first two operand words.
		return true, true
	}
}
