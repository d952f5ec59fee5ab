package spirq

import "github.com/gogpu/spirq/spirv"

// buildFragmentGallery constructs a fragment shader module exercising
// a spread of descriptor kinds in one pass: a uniform block, a
// combined image sampler, a storage buffer, and a vec4 output.
func buildFragmentGallery() *spirv.Builder {
	b := spirv.NewBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.AddTypeVoid()
	f32 := b.AddTypeFloat(32)
	vec4 := b.AddTypeVector(f32, 4)
	fnType := b.AddTypeFunction(void)

	// uniform block: struct { vec4 tint; }
	blockStruct := b.AddTypeStruct(vec4)
	b.AddMemberName(blockStruct, 0, "tint")
	b.AddMemberDecorate(blockStruct, 0, spirv.DecorationOffset, 0)
	b.AddDecorate(blockStruct, spirv.DecorationBlock)
	blockPtr := b.AddTypePointer(spirv.StorageClassUniform, blockStruct)
	blockVar := b.AddVariable(blockPtr, spirv.StorageClassUniform)
	b.AddName(blockVar, "Params")
	b.AddDecorate(blockVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(blockVar, spirv.DecorationBinding, 0)

	// combined image sampler
	imgType := b.AddTypeImage(f32, spirv.Dim2D, 0, 0, 0, 1, spirv.ImageFormatUnknown)
	sampledImgType := b.AddTypeSampledImage(imgType)
	sampledImgPtr := b.AddTypePointer(spirv.StorageClassUniformConstant, sampledImgType)
	texVar := b.AddVariable(sampledImgPtr, spirv.StorageClassUniformConstant)
	b.AddName(texVar, "albedo")
	b.AddDecorate(texVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(texVar, spirv.DecorationBinding, 1)

	// storage buffer: struct { float values[]; }
	runtimeArr := b.AddTypeRuntimeArray(f32)
	b.AddDecorate(runtimeArr, spirv.DecorationArrayStride, 4)
	storageStruct := b.AddTypeStruct(runtimeArr)
	b.AddMemberName(storageStruct, 0, "values")
	b.AddMemberDecorate(storageStruct, 0, spirv.DecorationOffset, 0)
	b.AddDecorate(storageStruct, spirv.DecorationBufferBlock)
	storagePtr := b.AddTypePointer(spirv.StorageClassUniform, storageStruct)
	storageVar := b.AddVariable(storagePtr, spirv.StorageClassUniform)
	b.AddName(storageVar, "Scratch")
	b.AddDecorate(storageVar, spirv.DecorationDescriptorSet, 1)
	b.AddDecorate(storageVar, spirv.DecorationBinding, 0)

	// fragment output
	outPtr := b.AddTypePointer(spirv.StorageClassOutput, vec4)
	outVar := b.AddVariable(outPtr, spirv.StorageClassOutput)
	b.AddName(outVar, "fragColor")
	b.AddDecorate(outVar, spirv.DecorationLocation, 0)

	fn := b.AddFunction(fnType, void, spirv.FunctionControlNone)
	b.AddLabel()
	loaded := b.AddAccessChain(blockPtr, blockVar)
	tint := b.AddLoad(vec4, loaded)
	b.AddStore(outVar, tint)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelFragment, fn, "main", outVar, texVar, blockVar, storageVar)
	b.AddExecutionMode(fn, spirv.ExecutionModeOriginUpperLeft)
	return b
}

// buildAtomicCounterModule constructs a compute shader that only
// touches its storage buffer through OpAtomicIAdd: the descriptor's
// Access must end up ReadWrite|Atomic even though nothing ever issues a
// plain OpLoad or OpStore against it.
func buildAtomicCounterModule() (*spirv.Builder, uint32) {
	b := spirv.NewBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.AddTypeVoid()
	u32 := b.AddTypeInt(32, false)
	fnType := b.AddTypeFunction(void)

	structTy := b.AddTypeStruct(u32)
	b.AddMemberName(structTy, 0, "counter")
	b.AddMemberDecorate(structTy, 0, spirv.DecorationOffset, 0)
	b.AddDecorate(structTy, spirv.DecorationBufferBlock)
	ptrTy := b.AddTypePointer(spirv.StorageClassUniform, structTy)
	counterVar := b.AddVariable(ptrTy, spirv.StorageClassUniform)
	b.AddName(counterVar, "Counter")
	b.AddDecorate(counterVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(counterVar, spirv.DecorationBinding, 0)

	memberPtrTy := b.AddTypePointer(spirv.StorageClassUniform, u32)
	scopeConst := b.AddConstant(u32, 1)    // Device
	semConst := b.AddConstant(u32, 0x0008) // AcquireRelease-ish; value unused by this engine
	idxZero := b.AddConstant(u32, 0)
	one := b.AddConstant(u32, 1)

	fn := b.AddFunction(fnType, void, spirv.FunctionControlNone)
	b.AddLabel()
	member := b.AddAccessChain(memberPtrTy, counterVar, idxZero)
	b.AddAtomic(spirv.OpAtomicIAdd, u32, member, scopeConst, semConst, one)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelGLCompute, fn, "main", counterVar)
	b.AddExecutionMode(fn, spirv.ExecutionModeLocalSize, 1, 1, 1)
	return b, counterVar
}

// buildSpecializationWalkModule builds a module with a scalar spec
// constant feeding an OpSpecConstantOp chain that in turn sizes an
// array.
func buildSpecializationWalkModule() (b *spirv.Builder, specID uint32, arrayType uint32) {
	b = spirv.NewBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	u32 := b.AddTypeInt(32, false)
	base := b.AddSpecConstant(u32, 0, 4)
	two := b.AddConstant(u32, 2)
	doubled := b.AddSpecConstantOp(u32, spirv.OpIMul, base, two)
	arrayType = b.AddTypeArray(u32, doubled)
	return b, 0, arrayType
}

// buildDuplicateBindingModule declares two storage buffers that both
// land on (set=0, binding=0) — a tolerated-but-surprising collision —
// in a fixed declaration order, so a determinism test can assert the
// assembled descriptor list keeps that order on the tie instead of an
// arbitrary one.
func buildDuplicateBindingModule() (b *spirv.Builder, entryFn uint32) {
	b = spirv.NewBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.AddTypeVoid()
	u32 := b.AddTypeInt(32, false)
	fnType := b.AddTypeFunction(void)

	makeStorageBuffer := func(name string) uint32 {
		runtimeArr := b.AddTypeRuntimeArray(u32)
		b.AddDecorate(runtimeArr, spirv.DecorationArrayStride, 4)
		structTy := b.AddTypeStruct(runtimeArr)
		b.AddMemberName(structTy, 0, "values")
		b.AddMemberDecorate(structTy, 0, spirv.DecorationOffset, 0)
		b.AddDecorate(structTy, spirv.DecorationBufferBlock)
		ptrTy := b.AddTypePointer(spirv.StorageClassUniform, structTy)
		v := b.AddVariable(ptrTy, spirv.StorageClassUniform)
		b.AddName(v, name)
		b.AddDecorate(v, spirv.DecorationDescriptorSet, 0)
		b.AddDecorate(v, spirv.DecorationBinding, 0)
		return v
	}

	first := makeStorageBuffer("First")
	second := makeStorageBuffer("Second")

	fn := b.AddFunction(fnType, void, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelGLCompute, fn, "main", first, second)
	b.AddExecutionMode(fn, spirv.ExecutionModeLocalSize, 1, 1, 1)
	return b, fn
}

// buildInputAttachmentModule declares a single subpass-input descriptor
// carrying an explicit InputAttachmentIndex decoration.
func buildInputAttachmentModule() (b *spirv.Builder, attachmentIndex uint32) {
	b = spirv.NewBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.AddTypeVoid()
	f32 := b.AddTypeFloat(32)
	fnType := b.AddTypeFunction(void)

	imgType := b.AddTypeImage(f32, spirv.DimSubpassData, 0, 0, 0, 2, spirv.ImageFormatUnknown)
	imgPtr := b.AddTypePointer(spirv.StorageClassUniformConstant, imgType)
	imgVar := b.AddVariable(imgPtr, spirv.StorageClassUniformConstant)
	b.AddName(imgVar, "inputColor")
	b.AddDecorate(imgVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(imgVar, spirv.DecorationBinding, 0)
	attachmentIndex = 3
	b.AddDecorate(imgVar, spirv.DecorationInputAttachmentIndex, attachmentIndex)

	fn := b.AddFunction(fnType, void, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelFragment, fn, "main", imgVar)
	b.AddExecutionMode(fn, spirv.ExecutionModeOriginUpperLeft)
	return b, attachmentIndex
}

// buildHLSLSeparateTextureModule builds a module where a texture and a
// sampler are declared as two separate UniformConstant variables
// sharing (set=0, binding=0) — the DXC-via-HLSL idiom
// CombineImageSamplers is meant to fold back together.
func buildHLSLSeparateTextureModule() (b *spirv.Builder, entryFn uint32) {
	b = spirv.NewBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.AddTypeVoid()
	f32 := b.AddTypeFloat(32)
	fnType := b.AddTypeFunction(void)

	imgType := b.AddTypeImage(f32, spirv.Dim2D, 0, 0, 0, 1, spirv.ImageFormatUnknown)
	imgPtr := b.AddTypePointer(spirv.StorageClassUniformConstant, imgType)
	imgVar := b.AddVariable(imgPtr, spirv.StorageClassUniformConstant)
	b.AddName(imgVar, "tex")
	b.AddDecorate(imgVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(imgVar, spirv.DecorationBinding, 0)

	samplerType := b.AddTypeSampler()
	samplerPtr := b.AddTypePointer(spirv.StorageClassUniformConstant, samplerType)
	samplerVar := b.AddVariable(samplerPtr, spirv.StorageClassUniformConstant)
	b.AddName(samplerVar, "samp")
	b.AddDecorate(samplerVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(samplerVar, spirv.DecorationBinding, 0)

	fn := b.AddFunction(fnType, void, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddImageOp(spirv.OpImageRead, f32, imgVar)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelFragment, fn, "main", imgVar, samplerVar)
	b.AddExecutionMode(fn, spirv.ExecutionModeOriginUpperLeft)
	return b, fn
}
