// Package nouncaughterrors checks that every function declares the error
// types it can panic with, using JSDoc-style @throws tags in doc comments.
package nouncaughterrors

import (
	"flag"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"

	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/annotation"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/callgraph"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/checker"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/config"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/internal"
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/propagate"
)

const doc = `check that every function declares the error types it can panic with

Functions document their error contract with @throws tags in doc comments:

	// Load reads the state file.
	// @throws {ParseError} when the file is malformed
	func Load(path string) State

The analyzer infers each function's thrown error types from its panic
statements and unhandled calls, propagates them through the package call
graph to a fixed point, and reports every mismatch between declared and
inferred contracts, with suggested fixes where the correction is
unambiguous.`

// Analyzer is the default instance, configured through flags and the
// module-level configuration file.
var Analyzer = New(nil)

// New builds an analyzer instance. With a nil config the instance exposes
// flags and discovers a .nouncaughterrors.yaml file at the module root;
// a non-nil config is used as-is.
func New(cfg *config.Config) *analysis.Analyzer {
	r := &runner{explicit: cfg}
	a := &analysis.Analyzer{
		Name:      "nouncaughterrors",
		Doc:       doc,
		Run:       r.run,
		Requires:  []*analysis.Analyzer{inspect.Analyzer},
		FactTypes: []analysis.Fact{(*ThrowsFact)(nil)},
	}
	r.flags = &a.Flags
	if cfg == nil {
		d := config.Default()
		a.Flags.StringVar(&r.configPath, "config", "",
			"path to a configuration file; overrides "+internal.ConfigFileName+" discovery")
		a.Flags.BoolVar(&r.requireNever, "require-never", d.RequireNever,
			"require an explicit @throws {never} tag on functions that throw nothing")
		a.Flags.BoolVar(&r.allowBubbling, "allow-error-bubbling", d.AllowErrorBubbling,
			"let unhandled calls contribute their errors to the caller's contract")
		a.Flags.BoolVar(&r.strict, "strict-mode", d.StrictMode,
			"reject the non-specific \"error\" type in declarations")
		a.Flags.TextVar(&r.unsafeCalls, "unsafe-calls", d.UnsafeCalls,
			"reporting mode for calls with unresolvable contracts: warn, error, or off")
		a.Flags.Var(&r.handlers, "error-handlers",
			"comma-separated names of functions that absorb the errors of their callback arguments")
		a.Flags.Var(&r.wrappers, "generic-wrappers",
			"comma-separated names of functions whose errors are the union of their callback arguments'")
	}
	return a
}

type runner struct {
	explicit *config.Config
	flags    *flag.FlagSet

	configPath    string
	requireNever  bool
	allowBubbling bool
	strict        bool
	unsafeCalls   config.UnsafeCallsMode
	handlers      config.NameSet
	wrappers      config.NameSet
}

func (r *runner) run(pass *analysis.Pass) (any, error) {
	cfg, err := r.resolveConfig(pass)
	if err != nil {
		return nil, err
	}

	external := func(fn *types.Func) (annotation.ErrorSet, bool) {
		var fact ThrowsFact
		if pass.ImportObjectFact(fn, &fact) {
			return fact.Set(), true
		}
		return annotation.ErrorSet{}, false
	}

	g := callgraph.Build(pass, cfg, external)
	propagate.Run(g)
	checker.New(pass, cfg).Check(g)

	// Export the contracts of documented exported functions so dependent
	// packages resolve calls into this one instead of flagging them unsafe.
	for _, node := range g.Nodes {
		if node.Obj == nil || !node.Obj.Exported() || !node.Documented() {
			continue
		}
		contract := node.Contract()
		pass.ExportObjectFact(node.Obj, &ThrowsFact{Types: contract.Types()})
	}
	return nil, nil
}

// resolveConfig picks the run configuration: an explicit config wins
// outright; an explicit -config file replaces the flag configuration
// wholesale; otherwise a discovered module-root file supplies the base and
// flags set on the command line override it.
func (r *runner) resolveConfig(pass *analysis.Pass) (*config.Config, error) {
	if r.explicit != nil {
		return r.explicit, nil
	}
	if r.configPath != "" {
		return config.Load(r.configPath)
	}

	cfg := config.Default()
	if path, ok := internal.FindConfigFile(pass); ok {
		c, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	r.flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "require-never":
			cfg.RequireNever = r.requireNever
		case "allow-error-bubbling":
			cfg.AllowErrorBubbling = r.allowBubbling
		case "strict-mode":
			cfg.StrictMode = r.strict
		case "unsafe-calls":
			cfg.UnsafeCalls = r.unsafeCalls
		case "error-handlers":
			cfg.ErrorHandlers = r.handlers
		case "generic-wrappers":
			cfg.GenericWrappers = r.wrappers
		}
	})
	return cfg, nil
}
