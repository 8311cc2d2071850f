package types

import (
	"errors"
	"testing"

	liberr "github.com/binharvest/typelib/errors"
)

func TestCatalogPutIsFirstWriteWins(t *testing.T) {
	cat := NewCatalog()

	first := NewPrimitive("int", 4)
	second := NewPrimitive("int", 8)

	cat.Put("int", first)
	cat.Put("int", second)

	got, err := cat.Get("int")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Equal(first) {
		t.Errorf("Get = %v, want the first registration", got)
	}
	if cat.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cat.Len())
	}
}

func TestCatalogGetNotFound(t *testing.T) {
	cat := NewCatalog()
	_, err := cat.Get("struct nope")
	if !errors.Is(err, &liberr.Error{Phase: liberr.PhaseLookup, Kind: liberr.KindNotFound}) {
		t.Errorf("Get on empty catalog = %v, want not_found", err)
	}
}

func TestCatalogContains(t *testing.T) {
	cat := NewCatalog()
	if cat.Contains("int") {
		t.Error("empty catalog should not contain int")
	}
	cat.Put("int", NewPrimitive("int", 4))
	if !cat.Contains("int") {
		t.Error("catalog should contain int after Put")
	}
}

func TestCatalogIgnoresEmptyName(t *testing.T) {
	cat := NewCatalog()
	cat.Put("", NewStruct("", nil))
	if cat.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after empty-name Put", cat.Len())
	}
}

func TestCatalogNamesKeepRegistrationOrder(t *testing.T) {
	cat := NewCatalog()
	cat.Put("int", NewPrimitive("int", 4))
	cat.Put("char", NewPrimitive("char", 1))
	cat.Put("int", NewPrimitive("int", 8)) // no-op, must not reorder
	cat.Put("long", NewPrimitive("long", 8))

	want := []string{"int", "char", "long"}
	got := cat.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCatalogString(t *testing.T) {
	cat := NewCatalog()
	cat.Put("int", NewPrimitive("int", 4))
	cat.Put("long", NewPrimitive("long", 8))

	want := "4: int\n8: long\n"
	if got := cat.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
