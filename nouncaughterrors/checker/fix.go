package checker

import (
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/annotation"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/callgraph"
)

// tagLine renders one "@throws {Name} description" tag body without the
// comment marker.
func tagLine(name, description string) string {
	if description == "" {
		return "@throws {" + name + "}"
	}
	return "@throws {" + name + "} " + description
}

// insertTagsFix inserts one @throws tag per inferred type on its own comment
// line directly above the declaration, using the propagation origin as the
// tag description.
func insertTagsFix(node *callgraph.FunctionNode, types []annotation.ErrorType) analysis.SuggestedFix {
	var b strings.Builder
	for _, t := range types {
		b.WriteString("// ")
		b.WriteString(tagLine(t.Name, node.Origins[t.Name]))
		b.WriteString("\n")
	}
	return analysis.SuggestedFix{
		Message: "add @throws declaration",
		TextEdits: []analysis.TextEdit{{
			Pos:     node.FixPos,
			End:     node.FixPos,
			NewText: []byte(b.String()),
		}},
	}
}

// insertNeverFix declares an explicit no-throw contract.
func insertNeverFix(node *callgraph.FunctionNode) analysis.SuggestedFix {
	return analysis.SuggestedFix{
		Message: "declare @throws {never}",
		TextEdits: []analysis.TextEdit{{
			Pos:     node.FixPos,
			End:     node.FixPos,
			NewText: []byte("// @throws {never}\n"),
		}},
	}
}

// expandUnionFix rewrites "@throws {A | B} desc" into one tag per member.
// The shared description is duplicated onto every expanded tag. The edit
// replaces only the tag text, so the comment marker of the original line is
// reused for the first member and new "// " markers are emitted for the rest.
func expandUnionFix(tag annotation.Tag) analysis.SuggestedFix {
	var b strings.Builder
	for i, t := range tag.Types {
		if i > 0 {
			b.WriteString("\n// ")
		}
		b.WriteString(tagLine(t.Name, t.Description))
	}
	return analysis.SuggestedFix{
		Message: "expand union into one tag per type",
		TextEdits: []analysis.TextEdit{{
			Pos:     tag.Pos,
			End:     tag.End,
			NewText: []byte(b.String()),
		}},
	}
}
