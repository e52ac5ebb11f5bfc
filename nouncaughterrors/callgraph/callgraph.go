// Package callgraph builds the per-package call graph the propagation engine
// runs on: one FunctionNode per function-like construct, with its declared
// contract, direct throws, and classified call sites.
package callgraph

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/annotation"
)

// CalleeKind tags the resolution outcome of a call site.
type CalleeKind int

const (
	// CalleeUnresolved marks a callee outside the analyzed packages or a
	// dynamic call that name resolution cannot follow.
	CalleeUnresolved CalleeKind = iota
	// CalleeLocal marks a callee resolved to a FunctionNode in the same
	// package.
	CalleeLocal
	// CalleeExternal marks a cross-package callee resolved through an
	// imported contract fact.
	CalleeExternal
	// CalleeHandler marks a call to a configured error handler.
	CalleeHandler
	// CalleeWrapper marks a call to a configured generic wrapper.
	CalleeWrapper
)

// Throw is one panic statement with a statically apparent error type, or
// annotation.Unknown when the panic operand is not a direct construction of
// a named type.
type Throw struct {
	Type annotation.ErrorType
	Pos  token.Pos
}

// WrapperArg is one function-valued argument of a wrapper call. Exactly one
// of Target, Nested, or External is set; otherwise the argument is
// unresolvable and contributes the unknown error type.
type WrapperArg struct {
	Target   *FunctionNode
	Nested   *CallSite
	External *annotation.ErrorSet
	Pos      token.Pos
}

// CallSite is one call expression performed directly by a FunctionNode,
// excluding calls inside nested function literals.
type CallSite struct {
	Call *ast.CallExpr
	// Name is the callee as written, for diagnostics.
	Name string
	Kind CalleeKind
	// Target is the resolved node for CalleeLocal, and for CalleeWrapper
	// the wrapper's own node when it is declared in this package.
	Target *FunctionNode
	// External carries the imported contract for CalleeExternal, and for
	// CalleeWrapper the wrapper's own cross-package contract.
	External *annotation.ErrorSet
	// Args lists the function-valued arguments of a wrapper call.
	Args []WrapperArg
	// Handled is set when the call is inside a recovery scope or is a
	// direct argument of a configured handler call.
	Handled bool
}

// Pos returns the call position for diagnostics.
func (cs *CallSite) Pos() token.Pos { return cs.Call.Pos() }

// FunctionNode is one analyzable construct: a declared function or method,
// or a function literal (which is a checked construct only when bound to a
// documented binding).
type FunctionNode struct {
	// Obj is the function object for declared functions and methods, nil
	// for function literals.
	Obj *types.Func
	Lit *ast.FuncLit

	Name string
	// Pos is the report position: the declaration name, the binding name,
	// or the literal itself.
	Pos token.Pos
	// FixPos is the insertion point for generated @throws tags: the start
	// of the enclosing declaration line.
	FixPos token.Pos
	Doc    *ast.CommentGroup

	// Construct marks nodes subject to contract checking. Function
	// literals without an @throws-carrying doc comment participate in
	// propagation only.
	Construct bool

	Declared  *annotation.Declaration
	ParseErrs []annotation.ParseError

	Throws []Throw
	Calls  []*CallSite

	// Inferred is (re)computed wholesale by the propagation engine.
	Inferred annotation.ErrorSet
	// Origins maps each inferred type name to a human-readable provenance
	// used in generated fix descriptions.
	Origins map[string]string

	body *ast.BlockStmt
}

// Documented reports whether the node carries a usable declared contract.
// Conflicting declarations are treated as absent for propagation.
func (n *FunctionNode) Documented() bool {
	return n.Declared != nil && !n.Declared.Conflict
}

// Contract returns the error set the node contributes to its callers: the
// declared set when documented (empty for a never contract), otherwise the
// current inferred set.
func (n *FunctionNode) Contract() annotation.ErrorSet {
	if n.Documented() {
		if n.Declared.Set.IsNever() {
			return annotation.ErrorSet{}
		}
		return n.Declared.Set
	}
	return n.Inferred
}

// Graph is the package call graph, consulted read-only by the propagation
// engine.
type Graph struct {
	Nodes []*FunctionNode

	byObj map[*types.Func]*FunctionNode
	byVar map[*types.Var]*FunctionNode
	byLit map[*ast.FuncLit]*FunctionNode
}

func newGraph() *Graph {
	return &Graph{
		byObj: make(map[*types.Func]*FunctionNode),
		byVar: make(map[*types.Var]*FunctionNode),
		byLit: make(map[*ast.FuncLit]*FunctionNode),
	}
}

func (g *Graph) add(n *FunctionNode) *FunctionNode {
	g.Nodes = append(g.Nodes, n)
	if n.Obj != nil {
		g.byObj[n.Obj] = n
	}
	if n.Lit != nil {
		g.byLit[n.Lit] = n
	}
	return n
}

// NodeFor returns the node of a declared function or method.
func (g *Graph) NodeFor(fn *types.Func) *FunctionNode { return g.byObj[fn] }

// NodeForVar returns the node of a function literal bound to a variable.
func (g *Graph) NodeForVar(v *types.Var) *FunctionNode { return g.byVar[v] }

// NodeForLit returns the node of a function literal.
func (g *Graph) NodeForLit(lit *ast.FuncLit) *FunctionNode { return g.byLit[lit] }
