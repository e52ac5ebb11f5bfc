package callgraph

import (
	"go/ast"
	"go/token"
)

// span is a half-open source range in which call sites are handled.
type span struct {
	from, to token.Pos
}

func inSpans(pos token.Pos, spans []span) bool {
	for _, s := range spans {
		if pos >= s.from && pos < s.to {
			return true
		}
	}
	return false
}

// recoverScopes collects the ranges protected by defer-recover statements in
// a function body. A deferred recover protects the remainder of its
// enclosing block, including nested blocks, unless the deferred body
// re-panics with the recovered value. Deferred recover calls found either
// way are recorded in recoverDefers so their function literals are not
// treated as ordinary call sites.
func recoverScopes(body *ast.BlockStmt, recoverDefers map[*ast.CallExpr]bool) []span {
	var spans []span

	var walkList func(list []ast.Stmt, end token.Pos)
	var walkStmt func(stmt ast.Stmt, listEnd token.Pos)

	walkStmt = func(stmt ast.Stmt, listEnd token.Pos) {
		switch s := stmt.(type) {
		case *ast.DeferStmt:
			lit, ok := s.Call.Fun.(*ast.FuncLit)
			if !ok || !callsRecover(lit.Body) {
				return
			}
			recoverDefers[s.Call] = true
			if !rethrowsRecovered(lit.Body) {
				spans = append(spans, span{from: s.End(), to: listEnd})
			}
		case *ast.BlockStmt:
			walkList(s.List, s.End())
		case *ast.IfStmt:
			walkStmt(s.Body, s.Body.End())
			if s.Else != nil {
				walkStmt(s.Else, s.Else.End())
			}
		case *ast.ForStmt:
			walkStmt(s.Body, s.Body.End())
		case *ast.RangeStmt:
			walkStmt(s.Body, s.Body.End())
		case *ast.SwitchStmt:
			walkStmt(s.Body, s.Body.End())
		case *ast.TypeSwitchStmt:
			walkStmt(s.Body, s.Body.End())
		case *ast.SelectStmt:
			walkStmt(s.Body, s.Body.End())
		case *ast.CaseClause:
			walkList(s.Body, s.End())
		case *ast.CommClause:
			walkList(s.Body, s.End())
		case *ast.LabeledStmt:
			walkStmt(s.Stmt, listEnd)
		}
	}

	walkList = func(list []ast.Stmt, end token.Pos) {
		for _, stmt := range list {
			walkStmt(stmt, end)
		}
	}

	walkList(body.List, body.End())
	return spans
}

// callsRecover reports whether the block calls recover, not counting nested
// function literals. The check is syntactic; shadowing the recover builtin
// defeats it.
func callsRecover(body *ast.BlockStmt) bool {
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		if _, ok := n.(*ast.FuncLit); ok {
			return false
		}
		if call, ok := n.(*ast.CallExpr); ok && isIdentCall(call, "recover") {
			found = true
		}
		return !found
	})
	return found
}

// rethrowsRecovered reports whether the recovery body panics with the
// recovered value again, which makes the scope transparent: the original
// error still reaches the caller.
func rethrowsRecovered(body *ast.BlockStmt) bool {
	recovered := make(map[string]bool)
	ast.Inspect(body, func(n ast.Node) bool {
		if _, ok := n.(*ast.FuncLit); ok {
			return false
		}
		assign, ok := n.(*ast.AssignStmt)
		if !ok {
			return true
		}
		for i, rhs := range assign.Rhs {
			if call, ok := rhs.(*ast.CallExpr); ok && isIdentCall(call, "recover") && i < len(assign.Lhs) {
				if ident, ok := assign.Lhs[i].(*ast.Ident); ok {
					recovered[ident.Name] = true
				}
			}
		}
		return true
	})

	rethrows := false
	ast.Inspect(body, func(n ast.Node) bool {
		if _, ok := n.(*ast.FuncLit); ok {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok || !isIdentCall(call, "panic") || len(call.Args) != 1 {
			return true
		}
		switch arg := ast.Unparen(call.Args[0]).(type) {
		case *ast.CallExpr:
			if isIdentCall(arg, "recover") {
				rethrows = true
			}
		case *ast.Ident:
			if recovered[arg.Name] {
				rethrows = true
			}
		}
		return !rethrows
	})
	return rethrows
}

func isIdentCall(call *ast.CallExpr, name string) bool {
	ident, ok := ast.Unparen(call.Fun).(*ast.Ident)
	return ok && ident.Name == name
}
