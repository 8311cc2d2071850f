package types

import (
	"fmt"
	"strings"

	"github.com/binharvest/typelib/errors"
)

// Catalog is a name-keyed registry of normalized nodes. Insertion is
// first-write-wins: a name, once registered, is never overwritten, and
// entries are never deleted.
//
// A catalog is mutable only while a normalization session populates it and
// should be treated as read-only afterwards. It has no internal locking;
// concurrent use requires external serialization or one catalog per worker.
type Catalog struct {
	entries map[string]Node

	// order records first registration order. Because the normalizer
	// registers referenced types before the nodes that need their sizes,
	// this order is a dependency-safe decode order.
	order []string
}

func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Node)}
}

// Contains reports whether name is registered.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Get returns the node registered under name.
func (c *Catalog) Get(name string) (Node, error) {
	n, ok := c.entries[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLookup, "type", name)
	}
	return n, nil
}

// Put registers node under name. If the name is already present the call is
// a no-op and the existing entry wins. The empty name is ignored: anonymous
// nodes and Void are never registered.
func (c *Catalog) Put(name string, node Node) {
	if name == "" {
		return
	}
	if _, ok := c.entries[name]; ok {
		return
	}
	c.entries[name] = node
	c.order = append(c.order, name)
}

// Len returns the number of registered entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Names returns the registered names in first-registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

func (c *Catalog) String() string {
	var b strings.Builder
	for _, name := range c.order {
		fmt.Fprintf(&b, "%d: %s\n", c.entries[name].Size(), name)
	}
	return b.String()
}
