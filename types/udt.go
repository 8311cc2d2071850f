package types

import "strings"

// Struct is an ordered layout of Fields and explicit Paddings. Its size is
// the literal sum of the layout entries; it is not recomputed from the
// provider's declared total extent, so trailing padding after the last
// member is not represented.
type Struct struct {
	// Name is empty for anonymous structs.
	Name   string
	Layout []Member

	size uint64
}

func NewStruct(name string, layout []Member) *Struct {
	var size uint64
	for _, m := range layout {
		size += m.Size()
	}
	return &Struct{Name: name, Layout: layout, size: size}
}

func (s *Struct) Kind() Kind   { return KindStruct }
func (s *Struct) Size() uint64 { return s.size }

func (s *Struct) Equal(other Node) bool {
	o, ok := other.(*Struct)
	if !ok || s.Name != o.Name || len(s.Layout) != len(o.Layout) {
		return false
	}
	for i, m := range s.Layout {
		if !m.Equal(o.Layout[i]) {
			return false
		}
	}
	return true
}

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString("struct ")
	if s.Name != "" {
		b.WriteString(s.Name)
		b.WriteByte(' ')
	}
	b.WriteString("{ ")
	for _, m := range s.Layout {
		b.WriteString(m.String())
		b.WriteString("; ")
	}
	b.WriteByte('}')
	return b.String()
}

func (s *Struct) sealed() {}

// Union is an overlapping set of member Fields, sized by its largest member
// plus optional trailing padding. Normalization never produces the padding;
// only the wire format models it.
type Union struct {
	// Name is empty for anonymous unions.
	Name    string
	Members []*Field
	Padding *Padding

	size uint64
}

func NewUnion(name string, members []*Field, padding *Padding) *Union {
	var size uint64
	for _, m := range members {
		if m.Size() > size {
			size = m.Size()
		}
	}
	if padding != nil {
		size += padding.Size()
	}
	return &Union{Name: name, Members: members, Padding: padding, size: size}
}

func (u *Union) Kind() Kind   { return KindUnion }
func (u *Union) Size() uint64 { return u.size }

func (u *Union) Equal(other Node) bool {
	o, ok := other.(*Union)
	if !ok || u.Name != o.Name || len(u.Members) != len(o.Members) {
		return false
	}
	for i, m := range u.Members {
		if !m.Equal(o.Members[i]) {
			return false
		}
	}
	if (u.Padding == nil) != (o.Padding == nil) {
		return false
	}
	if u.Padding != nil && !u.Padding.Equal(o.Padding) {
		return false
	}
	return true
}

func (u *Union) String() string {
	var b strings.Builder
	b.WriteString("union ")
	if u.Name != "" {
		b.WriteString(u.Name)
		b.WriteByte(' ')
	}
	b.WriteString("{ ")
	for _, m := range u.Members {
		b.WriteString(m.String())
		b.WriteString("; ")
	}
	if u.Padding != nil {
		b.WriteString(u.Padding.String())
		b.WriteString("; ")
	}
	b.WriteByte('}')
	return b.String()
}

func (u *Union) sealed() {}
