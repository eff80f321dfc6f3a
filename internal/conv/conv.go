// Package conv provides checked integer narrowing for the engine's internal
// indices. Overflow panics: it means a pattern blew past internal limits,
// which is a programming error rather than user input to recover from.
package conv

import "math"

// IntToUint32 converts an int to uint32, panicking if the value does not fit.
func IntToUint32(n int) uint32 {
	// Compare as uint so the bound is correct on 32-bit platforms too.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
