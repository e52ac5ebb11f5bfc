// Package annotation parses @throws declarations from doc comments and
// defines the error-type set model shared by the analyzer.
package annotation

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// Distinguished error-type names.
const (
	// Never marks a declared no-throw contract. It is only valid as the
	// sole member of a declaration.
	Never = "never"

	// Unknown stands in for the error types of a callee that could not be
	// resolved within the analyzed packages.
	Unknown = "unknown-error"

	// GenericBase is the non-specific base error name rejected in strict
	// mode.
	GenericBase = "error"
)

// ErrorType is one declared or inferred error kind. Two ErrorTypes are equal
// iff their names are equal; the description is informational only.
type ErrorType struct {
	Name        string
	Description string
}

// ErrorSet is an ordered set of ErrorType keyed by name. Insertion order is
// preserved so that generated fixes keep the first-seen order of types.
// The zero value is an empty set ready for use.
type ErrorSet struct {
	types []ErrorType
}

// NewErrorSet builds a set from the given types, deduplicating by name.
func NewErrorSet(types ...ErrorType) ErrorSet {
	var s ErrorSet
	for _, t := range types {
		s.Add(t)
	}
	return s
}

// Len returns the number of distinct error types in the set.
func (s *ErrorSet) Len() int { return len(s.types) }

// Types returns the members in insertion order. The caller must not mutate
// the returned slice.
func (s *ErrorSet) Types() []ErrorType { return s.types }

// Names returns the member names in insertion order.
func (s *ErrorSet) Names() []string {
	names := make([]string, len(s.types))
	for i, t := range s.types {
		names[i] = t.Name
	}
	return names
}

// Contains reports whether the set has a member with the given name.
func (s *ErrorSet) Contains(name string) bool {
	for _, t := range s.types {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Add inserts a type, deduplicating by name. On a duplicate the last
// description wins. It reports whether the set grew.
func (s *ErrorSet) Add(t ErrorType) bool {
	for i, existing := range s.types {
		if existing.Name == t.Name {
			if t.Description != "" {
				s.types[i].Description = t.Description
			}
			return false
		}
	}
	s.types = append(s.types, t)
	return true
}

// AddAll unions another set into this one and reports whether the set grew.
func (s *ErrorSet) AddAll(other ErrorSet) bool {
	grew := false
	for _, t := range other.types {
		if s.Add(t) {
			grew = true
		}
	}
	return grew
}

// Clone returns an independent copy of the set.
func (s *ErrorSet) Clone() ErrorSet {
	var c ErrorSet
	c.types = append(c.types, s.types...)
	return c
}

// IsNever reports whether the set is the sole-never contract.
func (s *ErrorSet) IsNever() bool {
	return len(s.types) == 1 && s.types[0].Name == Never
}

func (s *ErrorSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, t := range s.types {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.Name)
	}
	b.WriteByte(']')
	return b.String()
}

// Tag is one @throws tag as written in a doc comment. A union tag carries one
// ErrorType per member, all sharing the tag's description.
type Tag struct {
	Types []ErrorType
	Union bool
	// Pos and End span the tag text from '@' to the end of the line,
	// excluding the comment marker. Used by fix synthesis.
	Pos, End token.Pos
}

// Declaration is the parsed @throws contract of one construct.
type Declaration struct {
	Set  ErrorSet
	Tags []Tag
	// Conflict is set when a never tag is combined with other error types.
	Conflict    bool
	ConflictPos token.Pos
}

// ParseError describes a malformed @throws tag. The construct is treated as
// undocumented when any tag fails to parse.
type ParseError struct {
	Pos    token.Pos
	Reason string
}

const throwsMarker = "@throws"

// Parse extracts the declared contract from a doc comment group. It returns
// (nil, nil) when the group carries no @throws tags, and (nil, errs) when a
// tag is malformed.
func Parse(doc *ast.CommentGroup) (*Declaration, []ParseError) {
	if doc == nil {
		return nil, nil
	}

	decl := &Declaration{}
	var errs []ParseError
	sawNever := false

	for _, comment := range doc.List {
		for _, line := range commentLines(comment) {
			idx := strings.Index(line.text, throwsMarker)
			if idx < 0 {
				continue
			}

			tag, perr := parseTag(line.text[idx:], line.pos+token.Pos(idx))
			if perr != nil {
				errs = append(errs, *perr)
				continue
			}

			decl.Tags = append(decl.Tags, *tag)
			for _, t := range tag.Types {
				if t.Name == Never {
					sawNever = true
					if decl.ConflictPos == token.NoPos {
						decl.ConflictPos = tag.Pos
					}
					continue
				}
				decl.Set.Add(t)
			}
		}
	}

	if len(decl.Tags) == 0 && len(errs) == 0 {
		return nil, nil
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if sawNever {
		if decl.Set.Len() > 0 {
			decl.Conflict = true
			return decl, nil
		}
		decl.Set = NewErrorSet(ErrorType{Name: Never})
	}
	return decl, nil
}

// parseTag parses one "@throws {A | B} description" tag. pos is the position
// of the '@' rune.
func parseTag(text string, pos token.Pos) (*Tag, *ParseError) {
	rest := text[len(throwsMarker):]
	trimmed := strings.TrimLeft(rest, " \t")

	if !strings.HasPrefix(trimmed, "{") {
		return nil, &ParseError{Pos: pos, Reason: "missing '{' after @throws"}
	}
	closing := strings.IndexByte(trimmed, '}')
	if closing < 0 {
		return nil, &ParseError{Pos: pos, Reason: "missing '}' in @throws tag"}
	}

	body := trimmed[1:closing]
	description := strings.TrimSpace(trimmed[closing+1:])

	members := strings.Split(body, "|")
	tag := &Tag{
		Union: len(members) > 1,
		Pos:   pos,
		End:   pos + token.Pos(len(text)),
	}
	for _, member := range members {
		name := strings.TrimSpace(member)
		if name == "" {
			return nil, &ParseError{Pos: pos, Reason: "empty error type in @throws tag"}
		}
		if !validTypeName(name) {
			return nil, &ParseError{Pos: pos, Reason: fmt.Sprintf("invalid error type name %q", name)}
		}
		tag.Types = append(tag.Types, ErrorType{Name: name, Description: description})
	}
	return tag, nil
}

func validTypeName(name string) bool {
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// commentLine is one physical line of a comment with the position of its
// first character.
type commentLine struct {
	text string
	pos  token.Pos
}

// commentLines splits a comment into physical lines, stripping the comment
// markers while keeping positions accurate for the remaining text.
func commentLines(c *ast.Comment) []commentLine {
	text := c.Text
	pos := c.Slash

	if strings.HasPrefix(text, "//") {
		return []commentLine{{text: text[2:], pos: pos + 2}}
	}

	// Block comment: strip the delimiters, then split on newlines keeping
	// byte offsets so tag positions map back into the file.
	if strings.HasPrefix(text, "/*") {
		text = text[:len(text)-2]
		var lines []commentLine
		offset := 2
		for _, raw := range strings.SplitAfter(text[2:], "\n") {
			line := strings.TrimSuffix(raw, "\n")
			lines = append(lines, commentLine{text: line, pos: pos + token.Pos(offset)})
			offset += len(raw)
		}
		return lines
	}
	return []commentLine{{text: text, pos: pos}}
}
