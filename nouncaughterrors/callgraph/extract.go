package callgraph

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/annotation"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/config"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/internal"
)

// ExternalResolver looks up the exported contract of a function outside the
// current package. It reports false when no contract fact is available.
type ExternalResolver func(*types.Func) (annotation.ErrorSet, bool)

type builder struct {
	pass     *analysis.Pass
	cfg      *config.Config
	external ExternalResolver

	graph     *Graph
	extracted map[*FunctionNode]bool
	// docIndex finds doc comments of := bindings: filename -> end line of
	// a comment group -> the group.
	docIndex map[string]map[int]*ast.CommentGroup
}

// Build assembles the call graph for the package under analysis. The graph
// is built in full before propagation runs; visitation order of the host
// never implies dependency order.
func Build(pass *analysis.Pass, cfg *config.Config, external ExternalResolver) *Graph {
	b := &builder{
		pass:      pass,
		cfg:       cfg,
		external:  external,
		graph:     newGraph(),
		extracted: make(map[*FunctionNode]bool),
		docIndex:  make(map[string]map[int]*ast.CommentGroup),
	}

	b.indexComments()
	b.collect()

	// Nodes discovered during extraction (function literals) are appended
	// to the slice and picked up by the index loop.
	for i := 0; i < len(b.graph.Nodes); i++ {
		b.extract(b.graph.Nodes[i])
	}
	return b.graph
}

func (b *builder) indexComments() {
	for _, file := range b.pass.Files {
		for _, cg := range file.Comments {
			pos := b.pass.Fset.Position(cg.End())
			byLine := b.docIndex[pos.Filename]
			if byLine == nil {
				byLine = make(map[int]*ast.CommentGroup)
				b.docIndex[pos.Filename] = byLine
			}
			byLine[pos.Line] = cg
		}
	}
}

// collect creates a node per function declaration and per function literal
// bound to a variable, so that name resolution during extraction sees the
// whole package regardless of declaration order.
func (b *builder) collect() {
	insp := b.pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.GenDecl)(nil),
		(*ast.AssignStmt)(nil),
	}
	insp.Preorder(nodeFilter, func(n ast.Node) {
		switch decl := n.(type) {
		case *ast.FuncDecl:
			b.collectFuncDecl(decl)
		case *ast.GenDecl:
			if decl.Tok == token.VAR {
				b.collectVarDecl(decl)
			}
		case *ast.AssignStmt:
			b.collectAssign(decl)
		}
	})
}

func (b *builder) collectFuncDecl(decl *ast.FuncDecl) {
	if decl.Body == nil {
		return
	}
	fn, ok := b.pass.TypesInfo.Defs[decl.Name].(*types.Func)
	if !ok {
		return
	}

	node := &FunctionNode{
		Obj:       fn,
		Name:      declDisplayName(decl),
		Pos:       decl.Name.Pos(),
		FixPos:    decl.Pos(),
		Doc:       decl.Doc,
		Construct: true,
		body:      decl.Body,
	}
	node.Declared, node.ParseErrs = annotation.Parse(decl.Doc)
	b.graph.add(node)
}

func (b *builder) collectVarDecl(decl *ast.GenDecl) {
	for _, spec := range decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		doc := vs.Doc
		if doc == nil {
			doc = decl.Doc
		}
		for i, value := range vs.Values {
			lit, ok := value.(*ast.FuncLit)
			if !ok || i >= len(vs.Names) {
				continue
			}
			b.addBinding(vs.Names[i], lit, doc, decl.Pos())
		}
	}
}

func (b *builder) collectAssign(stmt *ast.AssignStmt) {
	var doc *ast.CommentGroup
	pos := b.pass.Fset.Position(stmt.Pos())
	if byLine := b.docIndex[pos.Filename]; byLine != nil {
		doc = byLine[pos.Line-1]
	}
	for i, rhs := range stmt.Rhs {
		lit, ok := rhs.(*ast.FuncLit)
		if !ok || i >= len(stmt.Lhs) {
			continue
		}
		ident, ok := stmt.Lhs[i].(*ast.Ident)
		if !ok || ident.Name == "_" {
			continue
		}
		b.addBinding(ident, lit, doc, stmt.Pos())
	}
}

// addBinding registers a function literal assigned to a named binding. The
// binding becomes a checked construct only when its doc comment carries
// @throws tags; otherwise it participates in propagation only.
func (b *builder) addBinding(ident *ast.Ident, lit *ast.FuncLit, doc *ast.CommentGroup, fixPos token.Pos) {
	if b.graph.NodeForLit(lit) != nil {
		return
	}

	node := &FunctionNode{
		Lit:    lit,
		Name:   ident.Name,
		Pos:    ident.Pos(),
		FixPos: fixPos,
		Doc:    doc,
		body:   lit.Body,
	}
	node.Declared, node.ParseErrs = annotation.Parse(doc)
	node.Construct = node.Declared != nil || len(node.ParseErrs) > 0

	obj := b.pass.TypesInfo.Defs[ident]
	if obj == nil {
		obj = b.pass.TypesInfo.Uses[ident]
	}
	if v, ok := obj.(*types.Var); ok {
		b.graph.byVar[v] = node
	}
	b.graph.add(node)
}

// ensureLit returns the node of a function literal, creating an anonymous
// propagation-only node when the literal is not a documented binding.
func (b *builder) ensureLit(lit *ast.FuncLit) *FunctionNode {
	if node := b.graph.NodeForLit(lit); node != nil {
		return node
	}
	node := &FunctionNode{
		Lit:  lit,
		Name: "function literal",
		Pos:  lit.Pos(),
		body: lit.Body,
	}
	return b.graph.add(node)
}

// extract walks one function body and records its throws and call sites,
// excluding the bodies of nested function literals.
func (b *builder) extract(node *FunctionNode) {
	if b.extracted[node] || node.body == nil {
		return
	}
	b.extracted[node] = true

	skip := make(map[*ast.CallExpr]bool)
	spans := recoverScopes(node.body, skip)
	handlerArgs := make(map[*ast.CallExpr]bool)

	ast.Inspect(node.body, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.FuncLit:
			b.ensureLit(x)
			return false
		case *ast.CallExpr:
			b.visitCall(node, x, spans, skip, handlerArgs)
		}
		return true
	})
}

func (b *builder) visitCall(node *FunctionNode, call *ast.CallExpr, spans []span, skip, handlerArgs map[*ast.CallExpr]bool) {
	info := b.pass.TypesInfo
	if skip[call] || internal.IsTypeConversion(info, call) {
		return
	}

	obj := internal.CalleeObject(info, call)
	if builtin, ok := obj.(*types.Builtin); ok {
		// A panic inside a recovery scope never escapes the function.
		if builtin.Name() == "panic" && len(call.Args) == 1 && !inSpans(call.Pos(), spans) {
			node.Throws = append(node.Throws, b.throwFrom(call))
		}
		return
	}

	// Immediately invoked function literal.
	if lit, ok := ast.Unparen(call.Fun).(*ast.FuncLit); ok {
		node.Calls = append(node.Calls, &CallSite{
			Call:    call,
			Name:    "function literal",
			Kind:    CalleeLocal,
			Target:  b.ensureLit(lit),
			Handled: b.handled(call, spans, handlerArgs),
		})
		return
	}

	name := displayCallee(call)
	candidates := callCandidates(call, obj)

	if b.cfg.ErrorHandlers.Match(candidates...) {
		for _, arg := range call.Args {
			if argCall, ok := ast.Unparen(arg).(*ast.CallExpr); ok {
				handlerArgs[argCall] = true
			}
		}
		node.Calls = append(node.Calls, &CallSite{
			Call:    call,
			Name:    name,
			Kind:    CalleeHandler,
			Handled: true,
		})
		return
	}

	if b.cfg.GenericWrappers.Match(candidates...) {
		cs := b.wrapperCallSite(call, name, skip)
		cs.Handled = b.handled(call, spans, handlerArgs)
		node.Calls = append(node.Calls, cs)
		return
	}

	cs := &CallSite{
		Call:    call,
		Name:    name,
		Handled: b.handled(call, spans, handlerArgs),
	}

	switch callee := obj.(type) {
	case *types.Func:
		pkg := callee.Pkg()
		switch {
		case pkg == nil:
			// Universe-scope methods such as error.Error cannot throw.
			return
		case pkg == b.pass.Pkg:
			if target := b.graph.NodeFor(callee); target != nil {
				cs.Kind = CalleeLocal
				cs.Target = target
			}
		case internal.IsStandardLibrary(pkg.Path()):
			// The standard library carries no contracts; its panics are
			// programmer errors outside the analyzed discipline.
			return
		default:
			if set, ok := b.external(callee); ok {
				cs.Kind = CalleeExternal
				cs.External = &set
			}
		}
	case *types.Var:
		if target := b.graph.NodeForVar(callee); target != nil {
			cs.Kind = CalleeLocal
			cs.Target = target
		}
	}

	node.Calls = append(node.Calls, cs)
}

func (b *builder) handled(call *ast.CallExpr, spans []span, handlerArgs map[*ast.CallExpr]bool) bool {
	return inSpans(call.Pos(), spans) || handlerArgs[call]
}

// throwFrom records the statically apparent error type of a panic: the
// named type of a directly constructed operand, or unknown otherwise.
func (b *builder) throwFrom(call *ast.CallExpr) Throw {
	name := internal.CompositeLitTypeName(b.pass.TypesInfo, ast.Unparen(call.Args[0]))
	if name == "" {
		name = annotation.Unknown
	}
	return Throw{Type: annotation.ErrorType{Name: name}, Pos: call.Pos()}
}

// wrapperCallSite resolves a call to a configured generic wrapper: its
// contribution is the union of its function-valued arguments' contracts plus
// the wrapper's own declared contract.
func (b *builder) wrapperCallSite(call *ast.CallExpr, name string, skip map[*ast.CallExpr]bool) *CallSite {
	info := b.pass.TypesInfo
	cs := &CallSite{Call: call, Name: name, Kind: CalleeWrapper}

	if fn, ok := internal.CalleeObject(info, call).(*types.Func); ok {
		switch {
		case fn.Pkg() == b.pass.Pkg:
			cs.Target = b.graph.NodeFor(fn)
		case fn.Pkg() != nil && !internal.IsStandardLibrary(fn.Pkg().Path()):
			if set, ok := b.external(fn); ok {
				cs.External = &set
			}
		}
	}

	for _, arg := range call.Args {
		tv, ok := info.Types[arg]
		if !ok || tv.Type == nil {
			continue
		}
		if _, ok := types.Unalias(tv.Type).Underlying().(*types.Signature); !ok {
			continue
		}
		cs.Args = append(cs.Args, b.wrapperArg(arg, skip))
	}
	return cs
}

func (b *builder) wrapperArg(arg ast.Expr, skip map[*ast.CallExpr]bool) WrapperArg {
	info := b.pass.TypesInfo
	wa := WrapperArg{Pos: arg.Pos()}

	switch a := ast.Unparen(arg).(type) {
	case *ast.FuncLit:
		wa.Target = b.ensureLit(a)

	case *ast.Ident, *ast.SelectorExpr:
		switch obj := usedObject(info, a).(type) {
		case *types.Func:
			pkg := obj.Pkg()
			switch {
			case pkg == b.pass.Pkg:
				wa.Target = b.graph.NodeFor(obj)
			case pkg == nil || internal.IsStandardLibrary(pkg.Path()):
				// No contract to propagate.
				empty := annotation.ErrorSet{}
				wa.External = &empty
			default:
				if set, ok := b.external(obj); ok {
					wa.External = &set
				}
			}
		case *types.Var:
			wa.Target = b.graph.NodeForVar(obj)
		}

	case *ast.CallExpr:
		candidates := callCandidates(a, internal.CalleeObject(info, a))
		if b.cfg.GenericWrappers.Match(candidates...) {
			skip[a] = true
			wa.Nested = b.wrapperCallSite(a, displayCallee(a), skip)
		}
	}
	return wa
}

func usedObject(info *types.Info, expr ast.Expr) types.Object {
	switch e := expr.(type) {
	case *ast.Ident:
		return info.Uses[e]
	case *ast.SelectorExpr:
		return info.Uses[e.Sel]
	}
	return nil
}

// callCandidates lists every identity a call site exposes for matching
// against configured handler and wrapper names.
func callCandidates(call *ast.CallExpr, obj types.Object) []string {
	var cands []string

	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		cands = append(cands, fun.Name)
	case *ast.SelectorExpr:
		cands = append(cands, types.ExprString(fun), fun.Sel.Name)
	}

	fn, ok := obj.(*types.Func)
	if !ok {
		return cands
	}
	name := fn.Name()
	cands = append(cands, name)
	pkg := fn.Pkg()
	if pkg == nil {
		return cands
	}
	cands = append(cands, pkg.Name()+"."+name, pkg.Path()+"."+name)
	if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
		if recv := internal.NamedTypeName(sig.Recv().Type()); recv != "" {
			cands = append(cands,
				recv+"."+name,
				pkg.Name()+"."+recv+"."+name,
				pkg.Path()+"."+recv+"."+name)
		}
	}
	return cands
}

func displayCallee(call *ast.CallExpr) string {
	return types.ExprString(ast.Unparen(call.Fun))
}

func declDisplayName(decl *ast.FuncDecl) string {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return decl.Name.Name
	}
	recv := decl.Recv.List[0].Type
	if star, ok := recv.(*ast.StarExpr); ok {
		recv = star.X
	}
	if ident, ok := recv.(*ast.Ident); ok {
		return ident.Name + "." + decl.Name.Name
	}
	if idx, ok := recv.(*ast.IndexExpr); ok {
		if ident, ok := idx.X.(*ast.Ident); ok {
			return ident.Name + "." + decl.Name.Name
		}
	}
	return decl.Name.Name
}
