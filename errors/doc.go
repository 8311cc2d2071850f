// Package errors provides structured error types for the typelib library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: member path, offending value, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMalformed).
//		Path("layout", "x").
//		Detail("member object is not a Field or Padding").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseLookup, "type", "struct foo")
//	err := errors.InvalidDiscriminant(errors.PhaseDecode, 42)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
