package off

// apply invokes the callback.
// @throws {never}
func apply(cb func()) {
	cb()
}
