// Package checker compares declared @throws contracts against inferred
// error sets and reports the mismatches, with suggested fixes where the
// correction is unambiguous.
package checker

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/annotation"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/callgraph"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/config"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/propagate"
)

// Diagnostic categories.
const (
	CategoryParseError    = "parse-error"
	CategoryConflict      = "declaration-conflict"
	CategoryUndeclared    = "undeclared-error"
	CategoryUnused        = "declared-but-unused"
	CategoryMissing       = "missing-declaration"
	CategoryMissingNever  = "missing-never-declaration"
	CategoryNonSpecific   = "non-specific-error-type"
	CategoryUnsafeCall    = "unsafe-call"
	CategoryUnhandledCall = "unhandled-call"
	CategoryUnionTag      = "union-tag"
)

type severity int

const (
	sevError severity = iota
	sevWarn
)

// Checker reports contract diagnostics for one analysis run.
type Checker struct {
	pass *analysis.Pass
	cfg  *config.Config
}

func New(pass *analysis.Pass, cfg *config.Config) *Checker {
	return &Checker{pass: pass, cfg: cfg}
}

// Check walks the propagated graph and reports every contract mismatch.
func (c *Checker) Check(g *callgraph.Graph) {
	for _, node := range g.Nodes {
		if node.Construct {
			c.checkContract(node)
		}
		c.checkCallSites(node)
	}
}

func (c *Checker) checkContract(node *callgraph.FunctionNode) {
	// Doc-comment problems are reported at the construct name so the
	// finding lands on the code a reader will edit.
	for _, perr := range node.ParseErrs {
		c.report(node.Pos, sevError, CategoryParseError, "malformed @throws tag: "+perr.Reason)
	}

	if node.Declared != nil && node.Declared.Conflict {
		c.report(node.Pos, sevError, CategoryConflict,
			"@throws {never} cannot be combined with other error types")
		return
	}

	if node.Documented() {
		c.checkDeclared(node)
		return
	}
	c.checkUndocumented(node)
}

func (c *Checker) checkDeclared(node *callgraph.FunctionNode) {
	declared := &node.Declared.Set

	if c.cfg.StrictMode {
		for _, t := range declared.Types() {
			if t.Name == annotation.GenericBase {
				c.report(node.Pos, sevError, CategoryNonSpecific,
					fmt.Sprintf("non-specific error type %q declared by %s; use concrete error types", t.Name, node.Name))
			}
		}
	}

	for _, tag := range node.Declared.Tags {
		if tag.Union {
			c.reportWithFix(node.Pos, sevWarn, CategoryUnionTag,
				"union @throws tag should be expanded into one tag per type",
				expandUnionFix(tag))
		}
	}

	isNever := declared.IsNever()
	for _, t := range node.Inferred.Types() {
		if t.Name == annotation.Unknown || (!isNever && declared.Contains(t.Name)) {
			continue
		}
		msg := fmt.Sprintf("undeclared error type %s (%s)", t.Name, node.Origins[t.Name])
		if isNever {
			// Adding a tag next to a never declaration would create a
			// conflict, so no fix is offered.
			c.report(node.Pos, sevError, CategoryUndeclared, msg)
			continue
		}
		c.reportWithFix(node.Pos, sevError, CategoryUndeclared, msg,
			insertTagsFix(node, []annotation.ErrorType{t}))
	}

	// An unknown contribution could realize any declared type, so unused
	// declarations are only reported when the inferred set is fully known.
	if !isNever && !node.Inferred.Contains(annotation.Unknown) {
		for _, t := range declared.Types() {
			if !node.Inferred.Contains(t.Name) {
				c.report(node.Pos, sevWarn, CategoryUnused,
					fmt.Sprintf("declared error type %s is never thrown by %s", t.Name, node.Name))
			}
		}
	}
}

func (c *Checker) checkUndocumented(node *callgraph.FunctionNode) {
	var inferred []annotation.ErrorType
	for _, t := range node.Inferred.Types() {
		if t.Name != annotation.Unknown {
			inferred = append(inferred, t)
		}
	}

	if len(inferred) > 0 {
		names := make([]string, len(inferred))
		for i, t := range inferred {
			names[i] = t.Name
		}
		c.reportWithFix(node.Pos, sevError, CategoryMissing,
			"missing @throws declaration; inferred error types: "+strings.Join(names, ", "),
			insertTagsFix(node, inferred))
		return
	}

	if node.Inferred.Len() == 0 && c.cfg.RequireNever {
		c.reportWithFix(node.Pos, sevError, CategoryMissingNever,
			"missing @throws {never} declaration",
			insertNeverFix(node))
	}
}

func (c *Checker) checkCallSites(node *callgraph.FunctionNode) {
	for _, cs := range node.Calls {
		if cs.Handled {
			continue
		}

		switch cs.Kind {
		case callgraph.CalleeUnresolved:
			c.unsafe(cs.Pos(), fmt.Sprintf("call to unresolved function %s may throw undeclared error types", cs.Name))
		case callgraph.CalleeWrapper:
			for _, arg := range cs.Args {
				if arg.Target == nil && arg.Nested == nil && arg.External == nil {
					c.unsafe(arg.Pos, fmt.Sprintf("cannot resolve error contract of argument to wrapper %s", cs.Name))
				}
			}
		}

		if !c.cfg.AllowErrorBubbling {
			contribution := propagate.Contribution(cs)
			var names []string
			for _, t := range contribution.Types() {
				if t.Name != annotation.Unknown {
					names = append(names, t.Name)
				}
			}
			if len(names) > 0 {
				c.report(cs.Pos(), sevError, CategoryUnhandledCall,
					fmt.Sprintf("errors from call to %s must be handled locally: %s", cs.Name, strings.Join(names, ", ")))
			}
		}
	}
}

func (c *Checker) unsafe(pos token.Pos, msg string) {
	switch c.cfg.UnsafeCalls {
	case config.UnsafeCallsOff:
	case config.UnsafeCallsWarn:
		c.report(pos, sevWarn, CategoryUnsafeCall, msg)
	case config.UnsafeCallsError:
		c.report(pos, sevError, CategoryUnsafeCall, msg)
	}
}

func (c *Checker) report(pos token.Pos, sev severity, category, msg string) {
	c.reportWithFix(pos, sev, category, msg)
}

func (c *Checker) reportWithFix(pos token.Pos, sev severity, category, msg string, fixes ...analysis.SuggestedFix) {
	if sev == sevWarn {
		msg = "warning: " + msg
	}
	c.pass.Report(analysis.Diagnostic{
		Pos:            pos,
		Category:       category,
		Message:        msg,
		SuggestedFixes: fixes,
	})
}
