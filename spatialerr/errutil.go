// Package spatialerr holds the contract-violation helpers shared by the
// spatial-sort packages. A violation here is a programming error (a
// degenerate bounding box, an invalid NodeKey), not a runtime fault, so it
// is reported by panicking rather than by returning an error.
package spatialerr

import "fmt"

// Check panics with the formatted message if cond is true. Use it to guard
// preconditions that must never be violated by correct callers, e.g. a
// bounding box with Max <= Min on some axis.
func Check(cond bool, format string, args ...any) {
	if cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// First returns the first non-nil error in errs, or nil if all are nil.
func First(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
