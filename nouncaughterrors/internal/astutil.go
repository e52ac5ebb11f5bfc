// Package internal provides AST and type helpers shared by the analyzer
// packages.
package internal

import (
	"go/ast"
	"go/types"
)

// NamedTypeName returns the name of the named type underlying t, looking
// through pointers. It returns "" when t has no named type.
func NamedTypeName(t types.Type) string {
	if t == nil {
		return ""
	}
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}

// CompositeLitTypeName returns the named type of a composite literal
// expression, looking through a leading &.
func CompositeLitTypeName(info *types.Info, expr ast.Expr) string {
	if unary, ok := expr.(*ast.UnaryExpr); ok && unary.Op.String() == "&" {
		expr = unary.X
	}
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return ""
	}
	tv := info.Types[lit]
	if !tv.IsValue() {
		return ""
	}
	return NamedTypeName(tv.Type)
}

// CalleeObject resolves the object a call expression invokes, when its
// callee is a plain identifier or selector.
func CalleeObject(info *types.Info, call *ast.CallExpr) types.Object {
	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		return info.Uses[fun]
	case *ast.SelectorExpr:
		return info.Uses[fun.Sel]
	}
	return nil
}

// IsTypeConversion reports whether the call expression is a type conversion
// rather than a function call.
func IsTypeConversion(info *types.Info, call *ast.CallExpr) bool {
	tv, ok := info.Types[ast.Unparen(call.Fun)]
	return ok && tv.IsType()
}
