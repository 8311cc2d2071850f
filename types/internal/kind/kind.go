package kind

// Kind identifies one variant of the type-node hierarchy. The numeric values
// are the wire discriminants and must never be reordered: serialized catalogs
// depend on them.
type Kind uint8

const (
	Primitive Kind = iota
	Array
	Pointer
	Field
	Padding
	Struct
	Union
	Void
)

var kindNames = [...]string{
	Primitive: "primitive",
	Array:     "array",
	Pointer:   "pointer",
	Field:     "field",
	Padding:   "padding",
	Struct:    "struct",
	Union:     "union",
	Void:      "void",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsMember reports whether the kind only appears inside a struct or union
// layout, never as a standalone catalog entry.
func (k Kind) IsMember() bool {
	return k == Field || k == Padding
}

// IsUDT reports whether the kind is a user-defined type.
func (k Kind) IsUDT() bool {
	return k == Struct || k == Union
}

// Valid reports whether a decoded discriminant names a known variant.
func Valid(disc int) bool {
	return disc >= 0 && disc < len(kindNames)
}
