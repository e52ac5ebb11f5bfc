package recursion

// DepthError reports exhausted nesting depth.
type DepthError struct{}

// SyntaxError reports malformed input.
type SyntaxError struct{}

func parseExpr(depth int) { // want "missing @throws declaration; inferred error types: DepthError, SyntaxError"
	if depth > 100 {
		panic(DepthError{})
	}
	parseTerm(depth + 1)
}

func parseTerm(depth int) { // want "missing @throws declaration; inferred error types: SyntaxError, DepthError"
	if depth%2 == 0 {
		panic(SyntaxError{})
	}
	parseExpr(depth + 1)
}

// countdown recurses to zero.
// @throws {DepthError} when the depth is exhausted
func countdown(n int) {
	if n < 0 {
		panic(DepthError{})
	}
	countdown(n - 1)
}
