package basic

import "strconv"

// ParseError reports malformed input.
type ParseError struct {
	msg string
}

// IOError reports a failed read.
type IOError struct {
	msg string
}

// parseDigits converts raw input.
// @throws {ParseError} when the input is not numeric
func parseDigits(raw string) int {
	if raw == "" {
		panic(ParseError{msg: "empty input"})
	}
	return len(raw)
}

func readCount(raw string) int { // want "missing @throws declaration; inferred error types: ParseError"
	return parseDigits(raw)
}

// reportTotal prints the count.
// @throws {ParseError} when the input is not numeric
func reportTotal(raw string) {
	println(readCount(raw))
}

// discard ignores its input.
// @throws {never}
func discard(string) {}

func double(n int) int { // want "missing @throws \\{never\\} declaration"
	return n * 2
}

// total sums parsed values.
// @throws {IOError} when the source cannot be read
func total(raw string) int { // want `undeclared error type ParseError \(propagated from call to parseDigits\)` `warning: declared error type IOError is never thrown by total`
	return parseDigits(raw)
}

// describe formats a label.
// @throws {never}
func describe(n int) string {
	return strconv.Itoa(n)
}
