// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// input validation, classification, etc.) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Types that carry a cause implement Unwrap() to support errors.Is() and errors.As().
//
// The number-theory core itself never returns errors; these types belong to
// the layers that parse input and coordinate work around it.
package apperrors
