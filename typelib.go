package typelib

// NativeType describes one type exposed by a decompiler backend.
//
// Implementations wrap the backend's opaque type handle. All sizes are in
// 8-bit bytes except member offsets and sizes, which the backends report
// in bits.
type NativeType interface {
	// Signature returns the canonical textual form of the type, e.g.
	// "unsigned int" or "struct foo". Signatures identify types during
	// traversal: two handles with the same signature are the same type.
	Signature() string

	// ByteSize returns the total size of the type in bytes.
	ByteSize() uint64

	IsVoid() bool
	IsPointer() bool
	IsArray() bool

	// IsUDT reports whether the type is user-defined (struct or union).
	IsUDT() bool

	// IsUnion distinguishes union from struct layout among UDTs.
	IsUnion() bool

	// Pointee returns the referenced type of a pointer.
	Pointee() NativeType

	// Element returns the element type of an array.
	Element() NativeType

	// ElementCount returns the number of elements in an array.
	ElementCount() uint64

	// Members returns the declared members of a UDT in declaration order.
	Members() []NativeMember
}

// NativeMember is one declared member of a user-defined type.
// Offset and size are in bits, as reported by decompiler backends.
type NativeMember struct {
	Type      NativeType
	Name      string
	BitOffset uint64
	BitSize   uint64
}
