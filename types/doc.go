// Package types defines the normalized type-node hierarchy, the name-keyed
// catalog that stores it, and the compact JSON wire codec.
//
// All sizes are in 8-bit bytes. Cross-references between nodes (pointer
// targets, array elements, field types) are catalog names, never embedded
// nodes, which keeps cyclic type graphs representable in finite space. The
// wire format tags each node with a stable integer discriminant; see the
// Kind constants.
package types
