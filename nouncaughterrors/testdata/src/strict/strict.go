package strict

// LookupError reports a missing record.
type LookupError struct{}

// find locates a record through an arbitrary lookup.
// @throws {error} on any failure
func find(lookup func() int) int { // want `non-specific error type "error" declared by find; use concrete error types`
	return lookup()
}

// findExact locates a record by key.
// @throws {LookupError} when the key is absent
func findExact() {
	panic(LookupError{})
}

// locate mixes generic and concrete declarations.
// @throws {error} on any failure
// @throws {LookupError} when the key is absent
func locate() { // want `non-specific error type "error" declared by locate; use concrete error types` "warning: declared error type error is never thrown by locate"
	panic(LookupError{})
}
