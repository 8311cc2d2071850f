// Package typetest provides hand-buildable NativeType implementations for
// exercising the normalizer without a live decompiler backend.
package typetest

import (
	"fmt"

	"github.com/binharvest/typelib"
)

type kind uint8

const (
	kindPrimitive kind = iota
	kindVoid
	kindPointer
	kindArray
	kindStruct
	kindUnion
)

// Type is a scriptable NativeType. Fields are wired by the builder
// functions; AddMember mutates the type in place so tests can construct
// cyclic graphs (a struct containing a pointer to itself).
type Type struct {
	sig     string
	size    uint64
	kind    kind
	pointee *Type
	elem    *Type
	count   uint64
	members []typelib.NativeMember
}

var _ typelib.NativeType = (*Type)(nil)

// Primitive builds a leaf type with the given signature and byte size.
func Primitive(sig string, size uint64) *Type {
	return &Type{sig: sig, size: size, kind: kindPrimitive}
}

// Void builds the void type.
func Void() *Type {
	return &Type{sig: "void", kind: kindVoid}
}

// Ptr builds a pointer to target.
func Ptr(target *Type) *Type {
	return &Type{
		sig:     target.sig + " *",
		size:    8,
		kind:    kindPointer,
		pointee: target,
	}
}

// ArrayOf builds a fixed-count array of elem.
func ArrayOf(elem *Type, count uint64) *Type {
	return &Type{
		sig:   fmt.Sprintf("%s[%d]", elem.sig, count),
		size:  elem.size * count,
		kind:  kindArray,
		elem:  elem,
		count: count,
	}
}

// StructOf builds a struct with the given declared byte size. Members are
// added with AddMember.
func StructOf(sig string, size uint64) *Type {
	return &Type{sig: sig, size: size, kind: kindStruct}
}

// UnionOf builds a union with the given declared byte size.
func UnionOf(sig string, size uint64) *Type {
	return &Type{sig: sig, size: size, kind: kindUnion}
}

// AddMember appends a member at the given bit offset, spanning the member
// type's full width. It returns the receiver for chaining.
func (t *Type) AddMember(name string, mt *Type, bitOffset uint64) *Type {
	t.members = append(t.members, typelib.NativeMember{
		Type:      mt,
		Name:      name,
		BitOffset: bitOffset,
		BitSize:   mt.size * 8,
	})
	return t
}

// AddBitfield appends a member with an explicit bit width.
func (t *Type) AddBitfield(name string, mt *Type, bitOffset, bitSize uint64) *Type {
	t.members = append(t.members, typelib.NativeMember{
		Type:      mt,
		Name:      name,
		BitOffset: bitOffset,
		BitSize:   bitSize,
	})
	return t
}

func (t *Type) Signature() string { return t.sig }
func (t *Type) ByteSize() uint64  { return t.size }

func (t *Type) IsVoid() bool    { return t.kind == kindVoid }
func (t *Type) IsPointer() bool { return t.kind == kindPointer }
func (t *Type) IsArray() bool   { return t.kind == kindArray }
func (t *Type) IsUDT() bool     { return t.kind == kindStruct || t.kind == kindUnion }
func (t *Type) IsUnion() bool   { return t.kind == kindUnion }

func (t *Type) Pointee() typelib.NativeType { return t.pointee }
func (t *Type) Element() typelib.NativeType { return t.elem }
func (t *Type) ElementCount() uint64        { return t.count }

func (t *Type) Members() []typelib.NativeMember { return t.members }
