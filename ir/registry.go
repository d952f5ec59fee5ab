package ir

import (
	"fmt"
	"strconv"
)

// TypeRegistry maps SPIR-V result ids to their reflected Type, in
// declaration order: OpType* instructions are processed in the order
// they appear, and the registry is write-append, read-any-prior.
//
// Unlike a compiler's type table, this registry never deduplicates by
// structure — a SPIR-V module has already assigned each type its own
// id, and reflection must preserve that identity (two structurally
// identical struct types at different ids are still two descriptors).
// Structural comparison is available separately through CacheKey for
// callers that want it (tests asserting round-trip shape).
type TypeRegistry struct {
	byHandle map[TypeHandle]Type
	order    []TypeHandle
	keyBuf   []byte
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byHandle: make(map[TypeHandle]Type, 16),
		keyBuf:   make([]byte, 0, 64),
	}
}

// Define records the Type an OpType* instruction produced at id. SPIR-V
// forbids redefining a result id, so a second Define for the same id
// simply overwrites — callers that need to detect malformed input do so
// before calling Define, not after.
func (r *TypeRegistry) Define(id TypeHandle, t Type) {
	if _, exists := r.byHandle[id]; !exists {
		r.order = append(r.order, id)
	}
	r.byHandle[id] = t
}

// Lookup returns the Type registered at id.
func (r *TypeRegistry) Lookup(id TypeHandle) (Type, bool) {
	t, ok := r.byHandle[id]
	return t, ok
}

// Count returns the number of registered types.
func (r *TypeRegistry) Count() int { return len(r.byHandle) }

// TypeEntry pairs a registered id with its Type, as returned by Ordered.
type TypeEntry struct {
	ID   TypeHandle
	Type Type
}

// Ordered returns every registered type in declaration order.
func (r *TypeRegistry) Ordered() []TypeEntry {
	out := make([]TypeEntry, len(r.order))
	for i, id := range r.order {
		out[i] = TypeEntry{ID: id, Type: r.byHandle[id]}
	}
	return out
}

// CacheKey returns a stable, structurally-unique string for the type at
// id, recursing through the registry for handle-referenced children.
// Two ids whose types are structurally identical produce equal keys.
//
// Adapted from the teacher's TypeRegistry.normalizeType: same
// reusable-buffer fast path for scalars (the hottest case, one per
// vector/matrix element), same fmt.Sprintf fallback for the rarer
// struct/image cases — now recursing through ids instead of embedded
// values, since this registry stores handles rather than nested Type
// values.
func (r *TypeRegistry) CacheKey(id TypeHandle) string {
	t, ok := r.byHandle[id]
	if !ok {
		return "unknown:" + strconv.FormatUint(uint64(id), 10)
	}

	switch v := t.(type) {
	case Scalar:
		return r.scalarKey(v)

	case Vector:
		return "vec:" + strconv.FormatUint(uint64(v.N), 10) + ":" + r.scalarKey(v.Elem)

	case Matrix:
		strideKey := "none"
		if v.Stride != nil {
			strideKey = strconv.FormatUint(uint64(*v.Stride), 10)
		}
		majorKey := "unknown"
		if v.Major != nil {
			majorKey = strconv.FormatUint(uint64(*v.Major), 10)
		}
		return fmt.Sprintf("mat:%dx%d:%s:%s:%s", v.Cols, v.Col.N, r.scalarKey(v.Col.Elem), majorKey, strideKey)

	case Array:
		countKey := "runtime"
		if v.Count != nil {
			countKey = strconv.FormatUint(*v.Count, 10)
		}
		strideKey := "none"
		if v.Stride != nil {
			strideKey = strconv.FormatUint(uint64(*v.Stride), 10)
		}
		return "array:" + r.CacheKey(v.Elem) + ":" + countKey + ":" + strideKey

	case Struct:
		key := fmt.Sprintf("struct:%d", len(v.Members))
		for _, m := range v.Members {
			offsetKey := "unknown"
			if m.Offset != nil {
				offsetKey = strconv.FormatUint(uint64(*m.Offset), 10)
			}
			key += fmt.Sprintf(":m(%s,%s,%s)", m.Name, r.CacheKey(m.Type), offsetKey)
		}
		return key

	case Pointer:
		return "ptr:" + strconv.FormatUint(uint64(v.StorageClass), 10) + ":" + r.CacheKey(v.Pointee)

	case Sampler:
		return "sampler"

	case Image:
		return fmt.Sprintf("image:%d:%d:%v:%v:%d:%d", v.Dim, v.Depth, v.Arrayed, v.Multisampled, v.Sampled, v.Format)

	case SampledImage:
		return "sampledimage:" + r.CacheKey(v.Image)

	case AccelerationStructure:
		return "accelstruct"

	case RayQuery:
		return "rayquery"

	default:
		return fmt.Sprintf("unknown:%T", t)
	}
}

func (r *TypeRegistry) scalarKey(s Scalar) string {
	b := r.keyBuf[:0]
	b = append(b, "scalar:"...)
	b = strconv.AppendInt(b, int64(s.Kind), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(s.Bits), 10)
	if s.Kind == ScalarInt {
		b = append(b, ':')
		b = strconv.AppendBool(b, s.Signed)
	}
	r.keyBuf = b
	return string(b)
}

// MinSize computes t's storage size in bytes, resolving handle-typed
// children through this registry. Ported from spirq-core's
// SpirvType::min_size (ty/mod.rs); the original recurses through
// embedded values, this recurses through registry lookups instead.
func (r *TypeRegistry) MinSize(t Type) uint32 {
	switch v := t.(type) {
	case Scalar:
		return v.MinSize()
	case Vector:
		return v.MinSize()
	case Matrix:
		return v.MinSize()
	case Array:
		if v.Count == nil {
			return 0
		}
		var elemSize uint32
		if v.Stride != nil {
			elemSize = *v.Stride
		} else if elem, ok := r.Lookup(v.Elem); ok {
			elemSize = r.MinSize(elem)
		}
		return uint32(*v.Count) * elemSize
	case Struct:
		var maxEnd uint32
		for _, m := range v.Members {
			if m.Offset == nil {
				continue
			}
			memberTy, ok := r.Lookup(m.Type)
			if !ok {
				continue
			}
			if end := *m.Offset + r.MinSize(memberTy); end > maxEnd {
				maxEnd = end
			}
		}
		return maxEnd
	default:
		return 0 // opaque/handle types (Pointer, Sampler, Image, SampledImage, AccelerationStructure, RayQuery)
	}
}

// IsSized reports whether t's size is fully determined — false for
// runtime arrays, Void, unlayouted structs, and every opaque/handle
// type.
func (r *TypeRegistry) IsSized(t Type) bool {
	switch v := t.(type) {
	case Scalar:
		return v.IsSized()
	case Vector:
		return v.Elem.IsSized()
	case Matrix:
		return v.Col.Elem.IsSized()
	case Array:
		if v.Count == nil {
			return false
		}
		elem, ok := r.Lookup(v.Elem)
		return ok && r.IsSized(elem)
	case Struct:
		for _, m := range v.Members {
			if m.Offset == nil {
				return false
			}
		}
		return true
	default:
		return false
	}
}
