package method

// DecodeError reports a malformed field.
type DecodeError struct {
	field string
}

// Decoder reads records field by field.
type Decoder struct {
	strict bool
}

// decodeField reads one field.
// @throws {DecodeError} when the field is malformed
func (d *Decoder) decodeField(name string) string {
	if d.strict {
		panic(DecodeError{field: name})
	}
	return name
}

func (d *Decoder) decodeAll(names []string) []string { // want "missing @throws declaration; inferred error types: DecodeError"
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, d.decodeField(n))
	}
	return out
}

// reset clears accumulated state.
// @throws {never}
func (d *Decoder) reset() {
	d.strict = false
}

// decodeStrict promises too much for a strict decoder.
// @throws {never}
func (d *Decoder) decodeStrict(name string) string { // want `undeclared error type DecodeError \(propagated from call to d.decodeField\)`
	return d.decodeField(name)
}
