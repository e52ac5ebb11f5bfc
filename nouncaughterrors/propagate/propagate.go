// Package propagate computes each function's inferred error set as a fixed
// point over the package call graph.
package propagate

import (
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/annotation"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/callgraph"
)

// Run computes the inferred error set of every node in the graph. All sets
// start empty and are recomputed wholesale until a full pass changes
// nothing. Each recomputation is a monotone union, so iteration terminates
// once every reachable error type name has been absorbed; cyclic call
// graphs (mutual or self recursion) converge instead of diverging.
func Run(g *callgraph.Graph) {
	for _, node := range g.Nodes {
		node.Inferred = annotation.ErrorSet{}
		node.Origins = nil
	}

	for {
		changed := false
		for _, node := range g.Nodes {
			set, origins := compute(node)
			if set.Len() > node.Inferred.Len() {
				node.Inferred = set
				node.Origins = origins
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

// compute derives a node's error set from its current call-site
// contributions: direct throws, unhandled calls, and wrapper calls.
func compute(node *callgraph.FunctionNode) (annotation.ErrorSet, map[string]string) {
	var set annotation.ErrorSet
	origins := make(map[string]string)

	record := func(contribution annotation.ErrorSet, origin string) {
		for _, t := range contribution.Types() {
			if set.Add(t) {
				origins[t.Name] = origin
			}
		}
	}

	for _, throw := range node.Throws {
		if set.Add(throw.Type) {
			origins[throw.Type.Name] = "thrown in function body"
		}
	}

	for _, cs := range node.Calls {
		if cs.Handled {
			continue
		}
		record(Contribution(cs), "propagated from call to "+cs.Name)
	}

	return set, origins
}

// Contribution returns the error set an unhandled call site feeds into its
// enclosing function.
func Contribution(cs *callgraph.CallSite) annotation.ErrorSet {
	switch cs.Kind {
	case callgraph.CalleeHandler:
		return annotation.ErrorSet{}
	case callgraph.CalleeLocal:
		return cs.Target.Contract()
	case callgraph.CalleeExternal:
		return *cs.External
	case callgraph.CalleeWrapper:
		return wrapperContribution(cs)
	default:
		return annotation.NewErrorSet(annotation.ErrorType{Name: annotation.Unknown})
	}
}

// wrapperContribution unions the contracts of a wrapper call's
// function-valued arguments, resolving nested wrapper calls recursively,
// and adds the wrapper's own declared contract when it has one.
func wrapperContribution(cs *callgraph.CallSite) annotation.ErrorSet {
	var set annotation.ErrorSet

	for _, arg := range cs.Args {
		switch {
		case arg.Target != nil:
			set.AddAll(arg.Target.Contract())
		case arg.Nested != nil:
			set.AddAll(wrapperContribution(arg.Nested))
		case arg.External != nil:
			set.AddAll(*arg.External)
		default:
			set.Add(annotation.ErrorType{Name: annotation.Unknown})
		}
	}

	// The wrapper's own declared contract covers errors it introduces
	// itself, such as a timeout type. Its inferred set is not used: the
	// wrapper's body merely invokes the callbacks already accounted for.
	switch {
	case cs.Target != nil && cs.Target.Documented():
		if !cs.Target.Declared.Set.IsNever() {
			set.AddAll(cs.Target.Declared.Set)
		}
	case cs.External != nil:
		set.AddAll(*cs.External)
	}
	return set
}
