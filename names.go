package spirq

import "github.com/gogpu/spirq/spirv"

// memberKey addresses one member of an aggregate type or struct id.
type memberKey struct {
	id     uint32
	member uint32
}

// nameTable holds the debug name and decoration tables, with
// OpDecorationGroup/OpGroupDecorate already expanded so every later
// pass can treat a group-decorated id exactly like a directly-decorated
// one.
type nameTable struct {
	names             map[uint32]string
	memberNames       map[memberKey]string
	decorations       map[uint32]map[spirv.Decoration][]uint32
	memberDecorations map[memberKey]map[spirv.Decoration][]uint32
}

func buildNameTable(instrs []spirv.Instr) (*nameTable, *Error) {
	nt := &nameTable{
		names:             make(map[uint32]string),
		memberNames:       make(map[memberKey]string),
		decorations:       make(map[uint32]map[spirv.Decoration][]uint32),
		memberDecorations: make(map[memberKey]map[spirv.Decoration][]uint32),
	}

	type groupTarget struct {
		group   uint32
		targets []uint32
	}
	var groupTargets []groupTarget

	for _, in := range instrs {
		ops := in.Operands()
		switch in.Op {
		case spirv.OpName:
			id, err := ops.Id()
			if err != nil {
				return nil, wrapDecodeError(err)
			}
			s, err := ops.String()
			if err != nil {
				return nil, wrapDecodeError(err)
			}
			nt.names[id] = s
		case spirv.OpMemberName:
			id, _ := ops.Id()
			member, _ := ops.U32()
			s, err := ops.String()
			if err != nil {
				return nil, wrapDecodeError(err)
			}
			nt.memberNames[memberKey{id, member}] = s
		case spirv.OpDecorate:
			id, _ := ops.Id()
			dec, err := ops.U32()
			if err != nil {
				return nil, wrapDecodeError(err)
			}
			nt.addDecoration(id, spirv.Decoration(dec), ops.Remainder())
		case spirv.OpMemberDecorate:
			id, _ := ops.Id()
			member, _ := ops.U32()
			dec, err := ops.U32()
			if err != nil {
				return nil, wrapDecodeError(err)
			}
			nt.addMemberDecoration(id, member, spirv.Decoration(dec), ops.Remainder())
		case spirv.OpGroupDecorate:
			group, _ := ops.Id()
			groupTargets = append(groupTargets, groupTarget{group: group, targets: ops.Remainder()})
		}
	}

	// A decoration group is just an id that collects OpDecorate entries
	// like any other; OpGroupDecorate copies that id's whole decoration
	// set onto every target.
	for _, gt := range groupTargets {
		for dec, params := range nt.decorations[gt.group] {
			for _, target := range gt.targets {
				nt.addDecoration(target, dec, params)
			}
		}
	}

	return nt, nil
}

func (nt *nameTable) addDecoration(id uint32, dec spirv.Decoration, params []uint32) {
	if nt.decorations[id] == nil {
		nt.decorations[id] = make(map[spirv.Decoration][]uint32)
	}
	nt.decorations[id][dec] = params
}

func (nt *nameTable) addMemberDecoration(id, member uint32, dec spirv.Decoration, params []uint32) {
	k := memberKey{id, member}
	if nt.memberDecorations[k] == nil {
		nt.memberDecorations[k] = make(map[spirv.Decoration][]uint32)
	}
	nt.memberDecorations[k][dec] = params
}

func hasDecoration(names *nameTable, id uint32, dec spirv.Decoration) bool {
	decos, ok := names.decorations[id]
	if !ok {
		return false
	}
	_, ok = decos[dec]
	return ok
}

func decorationU32(names *nameTable, id uint32, dec spirv.Decoration) *uint32 {
	decos, ok := names.decorations[id]
	if !ok {
		return nil
	}
	params, ok := decos[dec]
	if !ok || len(params) == 0 {
		return nil
	}
	v := params[0]
	return &v
}

func decorationMemberU32(names *nameTable, id, member uint32, dec spirv.Decoration) *uint32 {
	decos, ok := names.memberDecorations[memberKey{id, member}]
	if !ok {
		return nil
	}
	params, ok := decos[dec]
	if !ok || len(params) == 0 {
		return nil
	}
	v := params[0]
	return &v
}
