package fix

// ParseError reports malformed input.
type ParseError struct{}

// IOError reports a failed read.
type IOError struct{}

func load() { // want "missing @throws declaration; inferred error types: ParseError"
	panic(ParseError{})
}

func noop() { // want "missing @throws \\{never\\} declaration"
}

// process parses then writes.
// @throws {ParseError | IOError} when a stage fails
func process(stage int) { // want "warning: union @throws tag should be expanded into one tag per type"
	if stage == 0 {
		panic(ParseError{})
	}
	panic(IOError{})
}
