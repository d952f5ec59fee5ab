package spirv

// StorageClass is the SPIR-V storage class of a pointer or variable.
type StorageClass uint32

// Storage classes used by shader interfaces (SPIR-V spec §3.7).
const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration is a SPIR-V annotation attached to an id or struct member.
type Decoration uint32

// Decorations this engine inspects. Unrecognized decorations are stored
// verbatim in the name table's decoration map and simply never matched.
const (
	DecorationRelaxedPrecision   Decoration = 0
	DecorationSpecId             Decoration = 1
	DecorationBlock              Decoration = 2
	DecorationBufferBlock        Decoration = 3
	DecorationRowMajor           Decoration = 4
	DecorationColMajor           Decoration = 5
	DecorationArrayStride        Decoration = 6
	DecorationMatrixStride       Decoration = 7
	DecorationBuiltIn            Decoration = 11
	DecorationNoPerspective      Decoration = 13
	DecorationFlat               Decoration = 14
	DecorationPatch              Decoration = 15
	DecorationCentroid           Decoration = 16
	DecorationSample             Decoration = 17
	DecorationInvariant          Decoration = 18
	DecorationRestrict           Decoration = 19
	DecorationAliased            Decoration = 20
	DecorationVolatile           Decoration = 21
	DecorationCoherent           Decoration = 23
	DecorationNonWritable        Decoration = 24
	DecorationNonReadable        Decoration = 25
	DecorationUniform            Decoration = 26
	DecorationLocation           Decoration = 30
	DecorationComponent          Decoration = 31
	DecorationIndex              Decoration = 32
	DecorationBinding            Decoration = 33
	DecorationDescriptorSet      Decoration = 34
	DecorationOffset             Decoration = 35
	DecorationInputAttachmentIndex Decoration = 43
)

// GroupDecoration-related opcodes flatten into this table's target ids as if
// each member of a decoration group had been decorated individually. No
// dedicated Decoration values are needed for that.

// ExecutionModel is the shader pipeline stage of an OpEntryPoint.
type ExecutionModel uint32

const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
	ExecutionModelRayGenerationKHR       ExecutionModel = 5313
	ExecutionModelIntersectionKHR        ExecutionModel = 5314
	ExecutionModelAnyHitKHR              ExecutionModel = 5315
	ExecutionModelClosestHitKHR          ExecutionModel = 5316
	ExecutionModelMissKHR                ExecutionModel = 5317
	ExecutionModelCallableKHR            ExecutionModel = 5318
	ExecutionModelTaskEXT                ExecutionModel = 5364
	ExecutionModelMeshEXT                ExecutionModel = 5365
)

// String returns the Vulkan-facing name of the execution model.
func (m ExecutionModel) String() string {
	switch m {
	case ExecutionModelVertex:
		return "Vertex"
	case ExecutionModelTessellationControl:
		return "TessellationControl"
	case ExecutionModelTessellationEvaluation:
		return "TessellationEvaluation"
	case ExecutionModelGeometry:
		return "Geometry"
	case ExecutionModelFragment:
		return "Fragment"
	case ExecutionModelGLCompute:
		return "GLCompute"
	case ExecutionModelKernel:
		return "Kernel"
	case ExecutionModelRayGenerationKHR:
		return "RayGenerationKHR"
	case ExecutionModelIntersectionKHR:
		return "IntersectionKHR"
	case ExecutionModelAnyHitKHR:
		return "AnyHitKHR"
	case ExecutionModelClosestHitKHR:
		return "ClosestHitKHR"
	case ExecutionModelMissKHR:
		return "MissKHR"
	case ExecutionModelCallableKHR:
		return "CallableKHR"
	case ExecutionModelTaskEXT:
		return "TaskEXT"
	case ExecutionModelMeshEXT:
		return "MeshEXT"
	default:
		return "Unknown"
	}
}

// ExecutionMode configures an entry point (workgroup size, origin, etc).
type ExecutionMode uint32

const (
	ExecutionModeInvocations             ExecutionMode = 0
	ExecutionModeSpacingEqual            ExecutionMode = 1
	ExecutionModeVertexOrderCw           ExecutionMode = 4
	ExecutionModeVertexOrderCcw          ExecutionMode = 5
	ExecutionModePixelCenterInteger      ExecutionMode = 6
	ExecutionModeOriginUpperLeft         ExecutionMode = 7
	ExecutionModeOriginLowerLeft         ExecutionMode = 8
	ExecutionModeEarlyFragmentTests      ExecutionMode = 9
	ExecutionModeDepthReplacing          ExecutionMode = 12
	ExecutionModeDepthGreater            ExecutionMode = 14
	ExecutionModeDepthLess               ExecutionMode = 15
	ExecutionModeDepthUnchanged          ExecutionMode = 16
	ExecutionModeLocalSize               ExecutionMode = 17
	ExecutionModeOutputVertices          ExecutionMode = 26
	ExecutionModeOutputPrimitivesEXT     ExecutionMode = 5270
	ExecutionModeInputPoints             ExecutionMode = 19
	ExecutionModeInputLines              ExecutionMode = 20
	ExecutionModeTriangles               ExecutionMode = 22
	ExecutionModeOutputTriangleStrip     ExecutionMode = 29
	ExecutionModeLocalSizeId             ExecutionMode = 38
)

// AddressingModel is the SPIR-V memory addressing model (§3.3).
type AddressingModel uint32

const (
	AddressingModelLogical         AddressingModel = 0
	AddressingModelPhysical32      AddressingModel = 1
	AddressingModelPhysical64      AddressingModel = 2
	AddressingModelPhysicalStorageBuffer64 AddressingModel = 5348
)

// MemoryModel is the SPIR-V memory model (§3.4).
type MemoryModel uint32

const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

// Capability is a SPIR-V module capability declared with OpCapability.
type Capability uint32

const (
	CapabilityMatrix                 Capability = 0
	CapabilityShader                 Capability = 1
	CapabilityGeometry               Capability = 2
	CapabilityTessellation           Capability = 3
	CapabilityAddresses              Capability = 4
	CapabilityLinkage                Capability = 5
	CapabilityKernel                 Capability = 6
	CapabilityImageBasic             Capability = 13
	CapabilitySampled1D              Capability = 43
	CapabilityImage1D                Capability = 44
	CapabilitySampledCubeArray       Capability = 45
	CapabilitySampledBuffer          Capability = 46
	CapabilityImageBuffer            Capability = 47
	CapabilityImageMSArray           Capability = 48
	CapabilityStorageImageExtendedFormats Capability = 49
	CapabilityImageQuery             Capability = 50
	CapabilityDerivativeControl      Capability = 51
	CapabilityInterpolationFunction  Capability = 52
	CapabilityAtomicStorage          Capability = 21
	CapabilityInt64Atomics           Capability = 12
	CapabilityRuntimeDescriptorArrayEXT Capability = 5302
	CapabilityRayQueryKHR            Capability = 4472
	CapabilityRayTracingKHR          Capability = 4479
)

// Dim is the dimensionality of an OpTypeImage.
type Dim uint32

const (
	Dim1D        Dim = 0
	Dim2D        Dim = 1
	Dim3D        Dim = 2
	DimCube      Dim = 3
	DimRect      Dim = 4
	DimBuffer    Dim = 5
	DimSubpassData Dim = 6
)

// ImageFormat mirrors VkFormat-adjacent OpTypeImage format operands.
type ImageFormat uint32

const (
	ImageFormatUnknown ImageFormat = 0
	ImageFormatRgba32f ImageFormat = 1
	ImageFormatRgba16f ImageFormat = 2
	ImageFormatR32f    ImageFormat = 3
	ImageFormatRgba8   ImageFormat = 4
	ImageFormatRgba8Snorm ImageFormat = 5
	ImageFormatRg32f   ImageFormat = 6
	ImageFormatRg16f   ImageFormat = 7
	ImageFormatR11fG11fB10f ImageFormat = 8
	ImageFormatR16f    ImageFormat = 9
	ImageFormatRgba32i ImageFormat = 21
	ImageFormatRgba8i  ImageFormat = 23
	ImageFormatR32i    ImageFormat = 24
	ImageFormatRgba32ui ImageFormat = 30
	ImageFormatRgba8ui ImageFormat = 32
	ImageFormatR32ui   ImageFormat = 33
)

// AccessQualifier appears on OpTypePipe / OpTypeImage (OpenCL-only in
// practice); tracked for completeness of the operand grammar.
type AccessQualifier uint32

const (
	AccessQualifierReadOnly  AccessQualifier = 0
	AccessQualifierWriteOnly AccessQualifier = 1
	AccessQualifierReadWrite AccessQualifier = 2
)

// BuiltIn identifies a builtin variable or member (position, vertex index...).
type BuiltIn uint32

const (
	BuiltInPosition             BuiltIn = 0
	BuiltInPointSize            BuiltIn = 1
	BuiltInClipDistance         BuiltIn = 3
	BuiltInCullDistance         BuiltIn = 4
	BuiltInVertexId             BuiltIn = 5
	BuiltInInstanceId           BuiltIn = 6
	BuiltInPrimitiveId          BuiltIn = 7
	BuiltInFrontFacing          BuiltIn = 17
	BuiltInSampleId             BuiltIn = 18
	BuiltInSamplePosition       BuiltIn = 19
	BuiltInSampleMask           BuiltIn = 20
	BuiltInFragDepth            BuiltIn = 22
	BuiltInNumWorkgroups        BuiltIn = 24
	BuiltInWorkgroupSize        BuiltIn = 25
	BuiltInWorkgroupId          BuiltIn = 26
	BuiltInLocalInvocationId    BuiltIn = 27
	BuiltInGlobalInvocationId   BuiltIn = 28
	BuiltInLocalInvocationIndex BuiltIn = 29
	BuiltInVertexIndex          BuiltIn = 42
	BuiltInInstanceIndex        BuiltIn = 43
)

// FunctionControl, SelectionControl and LoopControl are bitmask operands on
// OpFunction / OpSelectionMerge / OpLoopMerge. This engine never branches on
// them, but the constants let the builder emit realistic fixtures.
type (
	FunctionControl  uint32
	SelectionControl uint32
	LoopControl      uint32
)

const FunctionControlNone FunctionControl = 0
