package warn

var handlers = map[string]func(){}

// apply invokes the callback.
// @throws {never}
func apply(cb func()) {
	cb() // want "warning: call to unresolved function cb may throw undeclared error types"
}

// runWith executes fn.
// @throws {never}
func runWith(fn func()) {
	fn() // want "warning: call to unresolved function fn may throw undeclared error types"
}

// dispatch runs a handler from the table.
// @throws {never}
func dispatch(name string) {
	runWith(handlers[name]) // want "warning: cannot resolve error contract of argument to wrapper runWith"
}
