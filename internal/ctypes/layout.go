package ctypes

import (
	"sort"

	"codeberg.org/saruga/ctypectx/internal/cast"
	"codeberg.org/saruga/ctypectx/internal/consteval"
	"codeberg.org/saruga/ctypectx/internal/diagnostic"
)

// LayoutComputer computes and memoizes struct/union layouts against a
// TypeMap. It is Component D, the struct layout engine: the direct
// descendant of the WGSL LayoutComputer this module's teacher ships, now
// computing byte offsets, bitfield packing, and flattened nested-aggregate
// field tables for C instead of std140-style WGSL memory layout.
type LayoutComputer struct {
	tm *TypeMap
}

// NewLayoutComputer creates a layout engine that reads from, and caches
// results into, tm.
func NewLayoutComputer(tm *TypeMap) *LayoutComputer {
	return &LayoutComputer{tm: tm}
}

// getCachedStruct returns the previously computed layout for node, if any.
// Named aggregates are looked up by name (so that two distinct node
// instances referencing the same tag share one cached Struct); anonymous
// aggregates are looked up by NodeID.
func (lc *LayoutComputer) getCachedStruct(node *cast.StructOrUnion) *Struct {
	if node.Name != "" {
		return lc.tm.NamedStructs[node.Name]
	}
	return lc.tm.AnonStructs[node.ID()]
}

func (lc *LayoutComputer) cacheStruct(node *cast.StructOrUnion, s *Struct) {
	if node.Name != "" {
		lc.tm.NamedStructs[node.Name] = s
	} else {
		lc.tm.AnonStructs[node.ID()] = s
	}
}

// ParseStruct returns the layout for a struct/union definition, computing
// and memoizing it on first encounter. It fails if node was only ever
// referenced, never defined (node.Decls == nil).
func (lc *LayoutComputer) ParseStruct(node *cast.StructOrUnion) (*Struct, error) {
	if existing := lc.getCachedStruct(node); existing != nil {
		return existing, nil
	}
	if node.Decls == nil {
		return nil, diagnostic.Newf("Tried to use struct %s before it is defined.", node.Name).At(node)
	}
	ret, err := lc.doParseStruct(node)
	if err != nil {
		return nil, err
	}
	lc.cacheStruct(node, ret)
	return ret, nil
}

// memberSizeAlign returns (size, align, substructure?) for a struct/union
// member's type. fieldName is used only in error messages. Arrays without
// a declared dimension are rejected; a function type can never legally
// appear here.
func (lc *LayoutComputer) memberSizeAlign(t cast.Type, fieldName string) (int, int, *Struct, error) {
	t = ResolveTypedefs(t, lc.tm)
	switch v := t.(type) {
	case *cast.PtrDecl:
		return 4, 4, nil, nil

	case *cast.ArrayDecl:
		if v.Dim == nil {
			return 0, 0, nil, diagnostic.Newf("Array field %s must have a size", fieldName)
		}
		dim, err := consteval.Eval(v.Dim)
		if err != nil {
			return 0, 0, nil, err
		}
		elemSize, elemAlign, _, err := lc.memberSizeAlign(v.Inner, fieldName)
		if err != nil {
			return 0, 0, nil, err
		}
		return elemSize * int(dim), elemAlign, nil, nil

	case *cast.FuncDecl:
		panic("Struct can not contain a function")

	case *cast.TypeDecl:
		switch inner := v.Inner.(type) {
		case *cast.StructOrUnion:
			sub, err := lc.ParseStruct(inner)
			if err != nil {
				return 0, 0, nil, err
			}
			return sub.Size, sub.Align, sub, nil
		default:
			size := PrimitiveSize(inner)
			return size, size, nil, nil
		}

	default:
		panic("unrecognized type shape in struct member")
	}
}

// FunctionArgSizeAlign is parse_struct_member's by-value function-argument
// counterpart: arrays decay to pointer size/align instead of requiring a
// declared dimension, bitfields never appear, and returning a struct
// substructure is not needed (callers only want size/align for ABI
// purposes). It cannot look through a typedef whose definition is an
// anonymous struct type; that limitation is preserved from the original
// (see DESIGN.md Open Question O2).
func FunctionArgSizeAlign(t cast.Type, tm *TypeMap) (int, int, error) {
	real := ResolveTypedefs(t, tm)
	switch v := real.(type) {
	case *cast.PtrDecl:
		return 4, 4, nil
	case *cast.ArrayDecl:
		return 4, 4, nil
	case *cast.FuncDecl:
		panic("Function argument can not be a function")
	case *cast.TypeDecl:
		switch inner := v.Inner.(type) {
		case *cast.StructOrUnion:
			if inner.Name == "" {
				panic("Function argument cannot be of anonymous struct type")
			}
			s, ok := tm.NamedStructs[inner.Name]
			if !ok {
				panic("Function argument can not be of an incomplete struct")
			}
			return s.Size, s.Align, nil
		default:
			size := PrimitiveSize(inner)
			return size, size, nil
		}
	default:
		panic("unrecognized type shape in function argument")
	}
}

// VarSizeAlign returns the size and alignment of an ordinary (non-member)
// variable's type.
func VarSizeAlign(t cast.Type, tm *TypeMap) (int, int, error) {
	lc := NewLayoutComputer(tm)
	size, align, _, err := lc.memberSizeAlign(t, "")
	return size, align, err
}

// doParseStruct implements the field layout algorithm: running offset,
// bit_offset (0-7), align, and union_size, walked once over the
// declaration list in order.
func (lc *LayoutComputer) doParseStruct(node *cast.StructOrUnion) (*Struct, error) {
	isUnion := node.Kind == cast.KindUnion
	if len(node.Decls) == 0 {
		panic("Empty structs are not valid C")
	}

	fields := make(map[int][]StructField)
	addField := func(offset int, f StructField) {
		fields[offset] = append(fields[offset], f)
	}

	unionSize := 0
	align := 1
	offset := 0
	bitOffset := 0

	for _, item := range node.Decls {
		decl, ok := item.(*cast.Decl)
		if !ok {
			// Tag-only declaration, nested enum used only to name a tag, etc.
			continue
		}
		fieldName := node.Name + "." + decl.Name
		t := decl.Type

		if decl.Bitsize != nil {
			ssize, salign, sub, err := lc.memberSizeAlign(t, fieldName)
			if err != nil {
				return nil, err
			}
			align = max(align, salign)

			width, err := consteval.Eval(decl.Bitsize)
			if err != nil {
				return nil, err
			}
			if width == 0 {
				// A zero-width bitfield allocates no storage of its own, but
				// it closes off whatever storage unit is currently open: the
				// next bitfield must start in a fresh ssize-aligned unit,
				// even when offset already happens to be a multiple of
				// ssize (the in-progress unit still owns that slot).
				if !isUnion && bitOffset != 0 {
					offset = (offset/ssize + 1) * ssize
					bitOffset = 0
				}
				continue
			}
			if ssize != salign || sub != nil {
				return nil, diagnostic.Newf("Bitfield %s is not of primitive type", fieldName).At(decl)
			}
			if width > int64(ssize*8) {
				return nil, diagnostic.Newf("Width of bitfield %s exceeds its type", fieldName).At(decl)
			}

			if isUnion {
				unionSize = max(unionSize, ssize)
			} else {
				lastBit := bitOffset + int(width) - 1
				if offset/ssize != (offset+lastBit/8)/ssize {
					bitOffset = 0
					offset = (offset + ssize) &^ (ssize - 1)
				}
				bitOffset += int(width)
				offset += bitOffset / 8
				bitOffset &= 7
			}
			continue
		}

		if !isUnion && bitOffset != 0 {
			bitOffset = 0
			offset++
		}

		if decl.Name != "" {
			ssize, salign, sub, err := lc.memberSizeAlign(t, fieldName)
			if err != nil {
				return nil, err
			}
			align = max(align, salign)
			offset = roundUp(offset, salign)
			addField(offset, StructField{Type: t, Name: decl.Name})
			if sub != nil {
				for _, off := range sortedOffsets(sub.Fields) {
					for _, f := range sub.Fields[off] {
						addField(offset+off, StructField{Type: f.Type, Name: decl.Name + "." + f.Name})
					}
				}
			}
			if isUnion {
				unionSize = max(unionSize, ssize)
			} else {
				offset += ssize
			}
			continue
		}

		// Anonymous aggregate member: decl.Name == "" and the type is a
		// struct/union definition (not a forward reference).
		if td, ok := t.(*cast.TypeDecl); ok {
			if sou, ok := td.Inner.(*cast.StructOrUnion); ok && sou.Decls != nil {
				sub, err := lc.ParseStruct(sou)
				if err != nil {
					return nil, err
				}
				if sou.Name != "" {
					// Tagged struct defined within another: silly but valid
					// C. ParseStruct already registered it globally.
					continue
				}
				// C extension: anonymous struct/union, members flattened.
				align = max(align, sub.Align)
				offset = roundUp(offset, sub.Align)
				for _, off := range sortedOffsets(sub.Fields) {
					for _, f := range sub.Fields[off] {
						addField(offset+off, f)
					}
				}
				if isUnion {
					unionSize = max(unionSize, sub.Size)
				} else {
					offset += sub.Size
				}
			}
		}
	}

	if !isUnion && bitOffset != 0 {
		offset++
	}

	size := unionSize
	if !isUnion {
		size = roundUp(offset, align)
	}
	return &Struct{Fields: fields, Size: size, Align: align}, nil
}

func sortedOffsets(fields map[int][]StructField) []int {
	offs := make([]int, 0, len(fields))
	for o := range fields {
		offs = append(offs, o)
	}
	sort.Ints(offs)
	return offs
}
