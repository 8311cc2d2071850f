package types

import (
	"fmt"
	"math"

	"github.com/binharvest/typelib/errors"
)

// PointerWidth is the byte size of every pointer node, regardless of the
// target type. Targets are 64-bit.
const PointerWidth = 8

// Node is one normalized type. Nodes are immutable once constructed and
// reference other types by catalog name only, never by embedding, so cyclic
// type graphs stay finite.
//
// The variant set is closed: Primitive, Array, Pointer, Field, Padding,
// Struct, Union, and Void.
type Node interface {
	Kind() Kind

	// Size returns the derived size in bytes.
	Size() uint64

	// Equal reports structural equality over the variant's semantic fields.
	Equal(other Node) bool

	// String renders the node the way a C header would spell it.
	String() string

	sealed()
}

// Member is a node that only appears inside a struct or union layout:
// Field or Padding.
type Member interface {
	Node
	member()
}

// Primitive is a leaf type with a source-reported size, e.g. "unsigned int".
type Primitive struct {
	Name     string
	ByteSize uint64
}

func NewPrimitive(name string, size uint64) *Primitive {
	return &Primitive{Name: name, ByteSize: size}
}

func (p *Primitive) Kind() Kind   { return KindPrimitive }
func (p *Primitive) Size() uint64 { return p.ByteSize }

func (p *Primitive) Equal(other Node) bool {
	o, ok := other.(*Primitive)
	return ok && p.Name == o.Name && p.ByteSize == o.ByteSize
}

func (p *Primitive) String() string { return p.Name }
func (p *Primitive) sealed()        {}

// Pointer references its target type by name. The reference is a name rather
// than an embedded node so that self-referential structures terminate.
type Pointer struct {
	TargetName string
}

func NewPointer(targetName string) *Pointer {
	return &Pointer{TargetName: targetName}
}

func (p *Pointer) Kind() Kind   { return KindPointer }
func (p *Pointer) Size() uint64 { return PointerWidth }

func (p *Pointer) Equal(other Node) bool {
	o, ok := other.(*Pointer)
	return ok && p.TargetName == o.TargetName
}

func (p *Pointer) String() string { return p.TargetName + " *" }
func (p *Pointer) sealed()        {}

// Array is a fixed-count sequence of one element type, referenced by name.
type Array struct {
	ElementName string
	Count       uint64

	elemSize uint64
	size     uint64
}

// NewArray resolves the element type in cat and derives the array size as
// element size times count. Counts whose product overflows uint64 are
// rejected rather than saturated or widened.
func NewArray(cat *Catalog, elementName string, count uint64) (*Array, error) {
	elem, err := cat.Get(elementName)
	if err != nil {
		return nil, err
	}
	elemSize := elem.Size()
	if count > 0 && elemSize > math.MaxUint64/count {
		return nil, errors.Overflow(errors.PhaseLookup, "array size %d * %d overflows", elemSize, count)
	}
	return &Array{
		ElementName: elementName,
		Count:       count,
		elemSize:    elemSize,
		size:        elemSize * count,
	}, nil
}

func (a *Array) Kind() Kind   { return KindArray }
func (a *Array) Size() uint64 { return a.size }

// ElementSize returns the resolved size of one element in bytes.
func (a *Array) ElementSize() uint64 { return a.elemSize }

func (a *Array) Equal(other Node) bool {
	o, ok := other.(*Array)
	return ok && a.ElementName == o.ElementName && a.Count == o.Count
}

func (a *Array) String() string {
	return fmt.Sprintf("%s[%d]", a.ElementName, a.Count)
}

func (a *Array) sealed() {}

// Void terminates traversal. It has size zero and is never registered in a
// catalog under a name.
type Void struct{}

func (Void) Kind() Kind   { return KindVoid }
func (Void) Size() uint64 { return 0 }

func (Void) Equal(other Node) bool {
	_, ok := other.(Void)
	return ok
}

func (Void) String() string { return "void" }
func (Void) sealed()        {}
