package handlers

// QueryError reports a failed lookup.
type QueryError struct{}

// query runs a lookup.
// @throws {QueryError} when the lookup fails
func query() int {
	panic(QueryError{})
}

// safeCall invokes fn and absorbs its panic.
// @throws {never}
func safeCall(fn func()) {
	defer func() {
		recover()
	}()
	fn()
}

// runSafely executes the risky lookup under the handler.
// @throws {never}
func runSafely() {
	safeCall(func() {
		query()
	})
}

// capture records a value, absorbing panics raised while computing it.
// @throws {never}
func capture(v int) {
	println(v)
}

// logResult prints the outcome of a lookup through the handler.
// @throws {never}
func logResult() {
	capture(query())
}

// unguarded calls the lookup outside any handler.
// @throws {never}
func unguarded() { // want `undeclared error type QueryError \(propagated from call to query\)`
	query()
}
