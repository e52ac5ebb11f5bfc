package annotations

// ValidationError reports an invalid value.
type ValidationError struct{}

// RangeError reports an out-of-range value.
type RangeError struct{}

// checkBoth validates value and range.
// @throws {ValidationError | RangeError} when the value is out of bounds
func checkBoth(n int) { // want "warning: union @throws tag should be expanded into one tag per type"
	if n < 0 {
		panic(ValidationError{})
	}
	if n > 100 {
		panic(RangeError{})
	}
}

// missingBrace has a tag without a type list.
// @throws ValidationError
func missingBrace() {} // want "malformed @throws tag: missing '\\{' after @throws"

// unclosed never closes its type list.
// @throws {ValidationError
func unclosed() {} // want "malformed @throws tag: missing '\\}' in @throws tag"

// emptyType declares nothing.
// @throws {}
func emptyType() {} // want "malformed @throws tag: empty error type in @throws tag"

// badName uses a non-identifier.
// @throws {Not-A-Name}
func badName() {} // want `malformed @throws tag: invalid error type name "Not-A-Name"`

// neverAndMore mixes never with a concrete type.
// @throws {never}
// @throws {ValidationError} when validation fails
func neverAndMore() {} // want "@throws \\{never\\} cannot be combined with other error types"

// overDeclared promises more than it does.
// @throws {ValidationError} when the value is invalid
// @throws {RangeError} when the value is out of range
func overDeclared(n int) { // want "warning: declared error type RangeError is never thrown by overDeclared"
	if n < 0 {
		panic(ValidationError{})
	}
}

/*
multiTag documents its contract in a block comment.
@throws {ValidationError} when the value is invalid
*/
func multiTag() {
	panic(ValidationError{})
}
