// Package errors provides structured error types for the charstream library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the failing operation name and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindDecodeFailed).
//		Op("ReadLine").
//		Detail("decode as utf-16le").
//		Cause(cause).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Closed("ReadRune")
//	err := errors.InProgress("ReadToEnd")
//
// All errors implement the standard error interface and support errors.Is/As.
// End of input is never a structured error; it is reported as io.EOF.
package errors
