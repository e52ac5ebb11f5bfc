package never

// MarshalError reports a failed encoding.
type MarshalError struct{}

// encode writes the payload.
// @throws {MarshalError} when the payload cannot be encoded
func encode() {
	panic(MarshalError{})
}

// mustEncode promises not to throw but calls a throwing function.
// @throws {never}
func mustEncode() { // want `undeclared error type MarshalError \(propagated from call to encode\)`
	encode()
}

// throwsDirectly promises not to throw but panics itself.
// @throws {never}
func throwsDirectly() { // want `undeclared error type MarshalError \(thrown in function body\)`
	panic(MarshalError{})
}

// silent does nothing.
// @throws {never}
func silent() {}

// throwsPointer constructs the error by reference.
// @throws {MarshalError} when encoding fails
func throwsPointer() {
	panic(&MarshalError{})
}

// rethrow panics with an opaque value; the error type cannot be named, so
// no declaration is demanded.
func rethrow(err error) {
	panic(err)
}
