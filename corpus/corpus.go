package corpus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/binharvest/typelib/types"
)

// Entry is one indexed type with its observation count.
type Entry struct {
	Name  string
	Node  types.Node
	Count uint64
}

// Index accumulates harvested types across many binaries, keyed by byte
// size and ranked by how often each type was seen. The index owns a backing
// catalog holding the dependency closure of everything indexed, so its
// contents stay decodable.
type Index struct {
	cat    *types.Catalog
	counts map[string]uint64
	bySize map[uint64][]string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		cat:    types.NewCatalog(),
		counts: make(map[string]uint64),
		bySize: make(map[uint64][]string),
	}
}

// Add records one observation of n under name. It reports whether the name
// was already indexed.
func (x *Index) Add(name string, n types.Node) bool {
	return x.AddN(name, n, 1)
}

// AddN records count observations of n under name.
func (x *Index) AddN(name string, n types.Node, count uint64) bool {
	if name == "" {
		return false
	}
	existed := x.counts[name] > 0
	if !x.cat.Contains(name) {
		x.bySize[n.Size()] = append(x.bySize[n.Size()], name)
	}
	x.cat.Put(name, n)
	x.counts[name] += count
	return existed
}

// AddCatalog records one observation of every entry in cat, in catalog
// order, so the index's backing catalog preserves dependency order.
func (x *Index) AddCatalog(cat *types.Catalog) error {
	for _, name := range cat.Names() {
		n, err := cat.Get(name)
		if err != nil {
			return err
		}
		x.AddN(name, n, 1)
	}
	return nil
}

// Merge folds other into x, summing counts.
func (x *Index) Merge(other *Index) error {
	for _, name := range other.cat.Names() {
		n, err := other.cat.Get(name)
		if err != nil {
			return err
		}
		x.AddN(name, n, other.counts[name])
	}
	return nil
}

// Catalog returns the backing catalog holding every indexed node.
func (x *Index) Catalog() *types.Catalog { return x.cat }

// Len returns the number of distinct indexed names.
func (x *Index) Len() int { return len(x.counts) }

// Count returns how many times name was observed.
func (x *Index) Count(name string) uint64 { return x.counts[name] }

// Sizes returns every byte size with at least one indexed type, ascending.
func (x *Index) Sizes() []uint64 {
	sizes := make([]uint64, 0, len(x.bySize))
	for size := range x.bySize {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	return sizes
}

// Entries returns the types of the given byte size, most frequently
// observed first. Ties break by name so the order is deterministic.
func (x *Index) Entries(size uint64) []Entry {
	names := x.bySize[size]
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		n, err := x.cat.Get(name)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: name, Node: n, Count: x.counts[name]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func (x *Index) String() string {
	var b strings.Builder
	for _, size := range x.Sizes() {
		fmt.Fprintf(&b, "%d:\n", size)
		for _, e := range x.Entries(size) {
			fmt.Fprintf(&b, "\t%d\t%s\n", e.Count, e.Name)
		}
	}
	return b.String()
}
