// Package normalize converts backend type handles into catalog entries.
//
// A Session walks a NativeType and its dependency closure, translating each
// distinct signature into exactly one normalized node: struct layouts gain
// explicit padding members, pointers and arrays become name references, and
// void vanishes. The resulting catalog is self-contained and serializable.
package normalize
