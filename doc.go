// Package typelib is the shared type-representation layer of a pipeline that
// harvests native type information from decompiler backends and serializes it
// for machine-learning consumption.
//
// A decompiler reports types as an arbitrarily nested, potentially
// self-referential graph. This library flattens that graph into a name-keyed
// catalog of immutable nodes, with all cross-references stored by name so that
// cyclic structures (a struct holding a pointer to itself, mutually
// referential structs) need neither infinite recursion nor infinite storage.
// The catalog serializes to compact discriminant-tagged JSON.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	typelib/       Root package with the NativeType capability interface
//	├── types/     Type nodes, the name-keyed catalog, and the wire codec
//	├── normalize/ Traversal of a NativeType graph into a catalog
//	├── corpus/    Frequency-counted aggregation of catalogs across binaries
//	├── typetest/  Fake NativeType implementations for tests
//	└── errors/    Structured error types for debugging
//
// # Quick Start
//
// Harvest every type reachable from a backend handle and serialize the result:
//
//	sess := normalize.NewSession()
//
//	if err := sess.Add(handle); err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := types.EncodeCatalog(sess.Catalog())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding reverses the process. Note that decode order is a contract, not a
// detail: a node referencing other types by name can only be decoded into a
// catalog that already resolves those names. EncodeCatalog emits entries in
// registration order, which satisfies the contract by construction.
package typelib
