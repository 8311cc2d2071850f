package types

import (
	"errors"
	"testing"

	liberr "github.com/binharvest/typelib/errors"
)

func TestEncodeWireShape(t *testing.T) {
	cat := newTestCatalog(t)

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"primitive", NewPrimitive("int", 4), `{"T":0,"n":"int","s":4}`},
		{"array", mustArray(t, cat, "int", 10), `{"T":1,"b":"int","n":10}`},
		{"pointer", NewPointer("int"), `{"T":2,"t":"int"}`},
		{"field", mustField(t, cat, "x", "int"), `{"T":3,"n":"x","t":"int"}`},
		{"padding", NewPadding(4), `{"T":4,"s":4}`},
		{
			"struct",
			NewStruct("gapped", []Member{
				mustField(t, cat, "a", "int"),
				NewPadding(4),
				mustField(t, cat, "b", "int"),
			}),
			`{"T":5,"n":"gapped","l":[{"T":3,"n":"a","t":"int"},{"T":4,"s":4},{"T":3,"n":"b","t":"int"}]}`,
		},
		{
			"anonymous struct",
			NewStruct("", []Member{mustField(t, cat, "a", "int")}),
			`{"T":5,"n":null,"l":[{"T":3,"n":"a","t":"int"}]}`,
		},
		{
			"union without padding",
			NewUnion("u", []*Field{mustField(t, cat, "a", "int")}, nil),
			`{"T":6,"n":"u","m":[{"T":3,"n":"a","t":"int"}],"p":null}`,
		},
		{
			"union with padding",
			NewUnion("u", []*Field{mustField(t, cat, "a", "int")}, NewPadding(4)),
			`{"T":6,"n":"u","m":[{"T":3,"n":"a","t":"int"}],"p":{"T":4,"s":4}}`,
		},
		{"void", Void{}, `{"T":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.node)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Encode = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	cat := newTestCatalog(t)

	nodes := []Node{
		NewPrimitive("int", 4),
		mustArray(t, cat, "int", 10),
		NewPointer("int"),
		mustField(t, cat, "x", "int"),
		NewPadding(4),
		NewStruct("gapped", []Member{
			mustField(t, cat, "a", "int"),
			NewPadding(4),
			mustField(t, cat, "b", "int"),
		}),
		NewUnion("u", []*Field{
			mustField(t, cat, "a", "int"),
			mustField(t, cat, "b", "long"),
		}, NewPadding(8)),
		Void{},
	}

	for _, node := range nodes {
		t.Run(node.Kind().String(), func(t *testing.T) {
			data, err := Encode(node)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			// Decode into a catalog pre-populated with the dependency
			// closure, per the decode-order contract.
			dst := newTestCatalog(t)
			got, err := Decode(data, dst)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !got.Equal(node) {
				t.Errorf("round trip = %v, want %v", got, node)
			}
			if got.Size() != node.Size() {
				t.Errorf("round trip Size() = %d, want %d", got.Size(), node.Size())
			}
		})
	}
}

func TestDecodeRegistersNamedNodes(t *testing.T) {
	cat := newTestCatalog(t)

	data, err := Encode(mustArray(t, cat, "int", 10))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dst := newTestCatalog(t)
	if _, err := Decode(data, dst); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !dst.Contains("int[10]") {
		t.Error("decoded array should be registered under its rendered name")
	}

	ptr, err := Encode(NewPointer("int"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(ptr, dst); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !dst.Contains("int *") {
		t.Error("decoded pointer should be registered under its rendered name")
	}
}

// Round-tripping a dependent node without its closure present must fail:
// decode order is a contract, not a detail.
func TestDecodeWithoutClosureFails(t *testing.T) {
	cat := newTestCatalog(t)

	dependents := []Node{
		mustArray(t, cat, "int", 10),
		mustField(t, cat, "x", "int"),
		NewStruct("s", []Member{mustField(t, cat, "x", "int")}),
	}

	for _, node := range dependents {
		t.Run(node.Kind().String(), func(t *testing.T) {
			data, err := Encode(node)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			_, err = Decode(data, NewCatalog())
			if !errors.Is(err, &liberr.Error{Phase: liberr.PhaseLookup, Kind: liberr.KindNotFound}) {
				t.Errorf("Decode without closure = %v, want not_found", err)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{"T":`},
		{"missing discriminant", `{"n":"int","s":4}`},
		{"unknown discriminant", `{"T":42}`},
		{"negative discriminant", `{"T":-1}`},
		{"primitive missing size", `{"T":0,"n":"int"}`},
		{"array missing element", `{"T":1,"n":10}`},
		{"array missing count", `{"T":1,"b":"int"}`},
		{"pointer missing target", `{"T":2}`},
		{"field missing type", `{"T":3,"n":"x"}`},
		{"padding missing size", `{"T":4}`},
		{"struct missing layout", `{"T":5,"n":"s"}`},
		{"struct layout holds non-member", `{"T":5,"n":"s","l":[{"T":7}]}`},
		{"union missing members", `{"T":6,"n":"u","p":null}`},
		{"union member not a field", `{"T":6,"n":"u","m":[{"T":4,"s":2}],"p":null}`},
		{"union padding not a padding", `{"T":6,"n":"u","m":[],"p":{"T":7}}`},
		{"size has wrong type", `{"T":4,"s":"four"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), newTestCatalog(t))
			if !errors.Is(err, &liberr.Error{Phase: liberr.PhaseDecode, Kind: liberr.KindMalformed}) {
				t.Errorf("Decode(%s) = %v, want malformed", tt.input, err)
			}
		})
	}
}

func TestDecodeAcceptsNullNames(t *testing.T) {
	cat := newTestCatalog(t)

	node, err := Decode([]byte(`{"T":5,"n":null,"l":[{"T":3,"n":"x","t":"int"}]}`), cat)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s, ok := node.(*Struct)
	if !ok {
		t.Fatalf("Decode = %T, want *Struct", node)
	}
	if s.Name != "" {
		t.Errorf("Name = %q, want empty", s.Name)
	}
	// Anonymous nodes are never registered.
	if cat.Len() != 5 {
		t.Errorf("Len() = %d, want 5 (no registration for anonymous struct)", cat.Len())
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	cat := NewCatalog()
	cat.Put("int", NewPrimitive("int", 4))
	cat.Put("char", NewPrimitive("char", 1))

	arr := mustArray(t, cat, "char", 16)
	cat.Put(arr.String(), arr)

	s := NewStruct("struct packet", []Member{
		mustField(t, cat, "kind", "int"),
		mustField(t, cat, "body", "char[16]"),
		NewPadding(4),
	})
	cat.Put(s.Name, s)
	cat.Put("struct packet *", NewPointer("struct packet"))

	data, err := EncodeCatalog(cat)
	if err != nil {
		t.Fatalf("EncodeCatalog: %v", err)
	}

	got, err := DecodeCatalog(data)
	if err != nil {
		t.Fatalf("DecodeCatalog: %v", err)
	}

	if got.Len() != cat.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), cat.Len())
	}
	for i, name := range cat.Names() {
		if got.Names()[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, got.Names()[i], name)
		}
		want, _ := cat.Get(name)
		decoded, err := got.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if !decoded.Equal(want) {
			t.Errorf("entry %q = %v, want %v", name, decoded, want)
		}
	}
}

func TestDecodeCatalogRejectsBadEnvelope(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{`},
		{"wrong version", `{"v":9,"c":[]}`},
		{"entry out of order", `{"v":1,"c":[{"k":"int[2]","d":{"T":1,"b":"int","n":2}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCatalog([]byte(tt.input)); err == nil {
				t.Error("DecodeCatalog should fail")
			}
		})
	}
}

func TestEncodeCompactness(t *testing.T) {
	cat := newTestCatalog(t)
	s := NewStruct("s", []Member{mustField(t, cat, "x", "int")})

	data, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, c := range data {
		if c == ' ' || c == '\n' || c == '\t' {
			t.Fatalf("encoded form contains whitespace: %s", data)
		}
	}
}
