package errmode

// apply invokes the callback.
// @throws {never}
func apply(cb func()) {
	cb() // want "call to unresolved function cb may throw undeclared error types"
}
