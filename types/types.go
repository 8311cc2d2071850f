package types

import (
	"github.com/binharvest/typelib/types/internal/kind"
)

// Kind identifies a node variant. The numeric values double as the wire
// discriminants.
type Kind = kind.Kind

const (
	KindPrimitive = kind.Primitive
	KindArray     = kind.Array
	KindPointer   = kind.Pointer
	KindField     = kind.Field
	KindPadding   = kind.Padding
	KindStruct    = kind.Struct
	KindUnion     = kind.Union
	KindVoid      = kind.Void
)
