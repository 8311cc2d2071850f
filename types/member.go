package types

import "fmt"

// Field is a named member of a struct or union. Its type is referenced by
// catalog name; the size is resolved at construction time.
type Field struct {
	Name     string
	TypeName string

	size uint64
}

// NewField resolves the field's type in cat to derive its size. The type must
// already be registered; a Field for an unresolvable name is a provider or
// decode-order inconsistency.
func NewField(cat *Catalog, name, typeName string) (*Field, error) {
	typ, err := cat.Get(typeName)
	if err != nil {
		return nil, err
	}
	return &Field{Name: name, TypeName: typeName, size: typ.Size()}, nil
}

func (f *Field) Kind() Kind   { return KindField }
func (f *Field) Size() uint64 { return f.size }

func (f *Field) Equal(other Node) bool {
	o, ok := other.(*Field)
	return ok && f.Name == o.Name && f.TypeName == o.TypeName
}

func (f *Field) String() string {
	return fmt.Sprintf("%s %s", f.TypeName, f.Name)
}

func (f *Field) sealed() {}
func (f *Field) member() {}

// Padding is an explicit run of unused alignment bytes inside a layout.
type Padding struct {
	ByteSize uint64
}

func NewPadding(size uint64) *Padding {
	return &Padding{ByteSize: size}
}

func (p *Padding) Kind() Kind   { return KindPadding }
func (p *Padding) Size() uint64 { return p.ByteSize }

func (p *Padding) Equal(other Node) bool {
	o, ok := other.(*Padding)
	return ok && p.ByteSize == o.ByteSize
}

func (p *Padding) String() string {
	return fmt.Sprintf("PADDING (%d)", p.ByteSize)
}

func (p *Padding) sealed() {}
func (p *Padding) member() {}
