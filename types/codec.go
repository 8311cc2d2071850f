package types

import (
	"bytes"
	"encoding/json"

	"github.com/binharvest/typelib/errors"
)

// Wire format: one compact JSON object per node, tagged with its integer
// discriminant under "T". The remaining keys keep the original artifacts'
// single-letter abbreviations for compatibility with previously encoded
// catalogs: n (name/count), s (size), b (element type), t (referenced type),
// l (layout), m (members), p (padding).

type wirePrimitive struct {
	T int     `json:"T"`
	N *string `json:"n"`
	S uint64  `json:"s"`
}

type wireArray struct {
	T int    `json:"T"`
	B string `json:"b"`
	N uint64 `json:"n"`
}

type wirePointer struct {
	T  int    `json:"T"`
	TN string `json:"t"`
}

type wireField struct {
	T  int    `json:"T"`
	N  string `json:"n"`
	TN string `json:"t"`
}

type wirePadding struct {
	T int    `json:"T"`
	S uint64 `json:"s"`
}

type wireStruct struct {
	T int               `json:"T"`
	N *string           `json:"n"`
	L []json.RawMessage `json:"l"`
}

type wireUnion struct {
	T int               `json:"T"`
	N *string           `json:"n"`
	M []json.RawMessage `json:"m"`
	P json.RawMessage   `json:"p"`
}

type wireVoid struct {
	T int `json:"T"`
}

// Encode serializes a node to compact JSON. Referenced types appear by name
// only; encoding a node never pulls in its dependency closure. Use
// EncodeCatalog when the closure must travel with the node.
func Encode(n Node) ([]byte, error) {
	if n == nil {
		return nil, errors.Malformed(errors.PhaseEncode, "nil node")
	}
	v, err := wireValue(n)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "marshal node")
	}
	return data, nil
}

func wireValue(n Node) (any, error) {
	switch t := n.(type) {
	case *Primitive:
		return wirePrimitive{T: int(KindPrimitive), N: optName(t.Name), S: t.ByteSize}, nil

	case *Array:
		return wireArray{T: int(KindArray), B: t.ElementName, N: t.Count}, nil

	case *Pointer:
		return wirePointer{T: int(KindPointer), TN: t.TargetName}, nil

	case *Field:
		return wireField{T: int(KindField), N: t.Name, TN: t.TypeName}, nil

	case *Padding:
		return wirePadding{T: int(KindPadding), S: t.ByteSize}, nil

	case *Struct:
		w := wireStruct{T: int(KindStruct), N: optName(t.Name), L: []json.RawMessage{}}
		for _, m := range t.Layout {
			data, err := Encode(m)
			if err != nil {
				return nil, err
			}
			w.L = append(w.L, data)
		}
		return w, nil

	case *Union:
		w := wireUnion{T: int(KindUnion), N: optName(t.Name), M: []json.RawMessage{}}
		for _, m := range t.Members {
			data, err := Encode(m)
			if err != nil {
				return nil, err
			}
			w.M = append(w.M, data)
		}
		if t.Padding != nil {
			data, err := Encode(t.Padding)
			if err != nil {
				return nil, err
			}
			w.P = data
		}
		return w, nil

	case Void:
		return wireVoid{T: int(KindVoid)}, nil

	default:
		return nil, errors.Unsupported(errors.PhaseEncode, "node variant")
	}
}

func optName(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

// Decode reconstructs a node from wire JSON, registering named results in
// cat. Array and Field reconstruction resolve their referenced names in cat
// to derive sizes, and struct/union layouts resolve every member, so decode
// order is part of the contract: leaves must be decoded (or pre-registered)
// before the nodes that reference them. Registration order of an encoded
// catalog satisfies this; see DecodeCatalog.
func Decode(data []byte, cat *Catalog) (Node, error) {
	n, err := decodeNode(data, cat)
	if err != nil {
		return nil, err
	}
	switch t := n.(type) {
	case *Primitive:
		cat.Put(t.Name, t)
	case *Array:
		cat.Put(t.String(), t)
	case *Pointer:
		cat.Put(t.String(), t)
	case *Struct:
		cat.Put(t.Name, t)
	case *Union:
		cat.Put(t.Name, t)
	}
	return n, nil
}

func decodeNode(data []byte, cat *Catalog) (Node, error) {
	var probe struct {
		T *int `json:"T"`
		// Absorbs the lowercase "t" key (referenced type name) so it
		// cannot case-insensitively bind to T.
		TN json.RawMessage `json:"t"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "parse node object")
	}
	if probe.T == nil {
		return nil, errors.FieldMissing(errors.PhaseDecode, "T")
	}

	switch *probe.T {
	case int(KindPrimitive):
		var w struct {
			N *string `json:"n"`
			S *uint64 `json:"s"`
		}
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		if w.S == nil {
			return nil, errors.FieldMissing(errors.PhaseDecode, "s")
		}
		return NewPrimitive(deref(w.N), *w.S), nil

	case int(KindArray):
		var w struct {
			B *string `json:"b"`
			N *uint64 `json:"n"`
		}
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		if w.B == nil {
			return nil, errors.FieldMissing(errors.PhaseDecode, "b")
		}
		if w.N == nil {
			return nil, errors.FieldMissing(errors.PhaseDecode, "n")
		}
		return NewArray(cat, *w.B, *w.N)

	case int(KindPointer):
		var w struct {
			// Absorbs the "T" discriminant so it cannot
			// case-insensitively bind to TN.
			T  int     `json:"T"`
			TN *string `json:"t"`
		}
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		if w.TN == nil {
			return nil, errors.FieldMissing(errors.PhaseDecode, "t")
		}
		return NewPointer(*w.TN), nil

	case int(KindField):
		var w struct {
			// Absorbs the "T" discriminant so it cannot
			// case-insensitively bind to TN.
			T  int     `json:"T"`
			N  *string `json:"n"`
			TN *string `json:"t"`
		}
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		if w.N == nil {
			return nil, errors.FieldMissing(errors.PhaseDecode, "n")
		}
		if w.TN == nil {
			return nil, errors.FieldMissing(errors.PhaseDecode, "t")
		}
		return NewField(cat, *w.N, *w.TN)

	case int(KindPadding):
		var w struct {
			S *uint64 `json:"s"`
		}
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		if w.S == nil {
			return nil, errors.FieldMissing(errors.PhaseDecode, "s")
		}
		return NewPadding(*w.S), nil

	case int(KindStruct):
		var w struct {
			N *string            `json:"n"`
			L *[]json.RawMessage `json:"l"`
		}
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		if w.L == nil {
			return nil, errors.FieldMissing(errors.PhaseDecode, "l")
		}
		layout := make([]Member, 0, len(*w.L))
		for _, raw := range *w.L {
			m, err := decodeMember(raw, cat)
			if err != nil {
				return nil, err
			}
			layout = append(layout, m)
		}
		return NewStruct(deref(w.N), layout), nil

	case int(KindUnion):
		var w struct {
			N *string            `json:"n"`
			M *[]json.RawMessage `json:"m"`
			P json.RawMessage    `json:"p"`
		}
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		if w.M == nil {
			return nil, errors.FieldMissing(errors.PhaseDecode, "m")
		}
		members := make([]*Field, 0, len(*w.M))
		for _, raw := range *w.M {
			m, err := decodeMember(raw, cat)
			if err != nil {
				return nil, err
			}
			f, ok := m.(*Field)
			if !ok {
				return nil, errors.Malformed(errors.PhaseDecode, "union member is not a Field")
			}
			members = append(members, f)
		}
		var padding *Padding
		if !isWireNull(w.P) {
			m, err := decodeMember(w.P, cat)
			if err != nil {
				return nil, err
			}
			p, ok := m.(*Padding)
			if !ok {
				return nil, errors.Malformed(errors.PhaseDecode, "union padding is not a Padding")
			}
			padding = p
		}
		return NewUnion(deref(w.N), members, padding), nil

	case int(KindVoid):
		return Void{}, nil

	default:
		return nil, errors.InvalidDiscriminant(errors.PhaseDecode, *probe.T)
	}
}

func decodeMember(data []byte, cat *Catalog) (Member, error) {
	n, err := decodeNode(data, cat)
	if err != nil {
		return nil, err
	}
	m, ok := n.(Member)
	if !ok {
		return nil, errors.Malformed(errors.PhaseDecode, "member object is not a Field or Padding")
	}
	return m, nil
}

func unmarshalWire(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "parse node object")
	}
	return nil
}

func isWireNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// catalogVersion tags whole-catalog envelopes.
const catalogVersion = 1

type wireCatalogEntry struct {
	K string          `json:"k"`
	D json.RawMessage `json:"d"`
}

type wireCatalog struct {
	V int                `json:"v"`
	C []wireCatalogEntry `json:"c"`
}

// EncodeCatalog serializes every entry in first-registration order, which is
// a dependency-safe decode order: the normalizer registers referenced types
// before the nodes whose sizes depend on them, and pointers decode without
// resolving their targets.
func EncodeCatalog(cat *Catalog) ([]byte, error) {
	w := wireCatalog{V: catalogVersion, C: []wireCatalogEntry{}}
	for _, name := range cat.Names() {
		node, err := cat.Get(name)
		if err != nil {
			return nil, err
		}
		data, err := Encode(node)
		if err != nil {
			return nil, err
		}
		w.C = append(w.C, wireCatalogEntry{K: name, D: data})
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "marshal catalog")
	}
	return data, nil
}

// DecodeCatalog rebuilds a catalog from an EncodeCatalog envelope, decoding
// entries in stored order so every reference resolves when needed.
func DecodeCatalog(data []byte) (*Catalog, error) {
	var w wireCatalog
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "parse catalog envelope")
	}
	if w.V != catalogVersion {
		return nil, errors.Malformed(errors.PhaseDecode, "unsupported catalog version %d", w.V)
	}
	cat := NewCatalog()
	for _, e := range w.C {
		node, err := Decode(e.D, cat)
		if err != nil {
			return nil, err
		}
		cat.Put(e.K, node)
	}
	return cat, nil
}
