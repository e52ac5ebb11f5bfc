package internal

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/analysis"
)

// ConfigFileName is the per-module configuration file looked up at the
// module root when no -config flag is given.
const ConfigFileName = ".nouncaughterrors.yaml"

var (
	moduleRootCache = make(map[string]string)
	moduleRootMutex sync.RWMutex
)

// FindConfigFile locates the module-root configuration file for the package
// under analysis. It reports false when the package has no enclosing module
// or the module carries no configuration file.
func FindConfigFile(pass *analysis.Pass) (string, bool) {
	for _, file := range pass.Files {
		pos := pass.Fset.Position(file.Pos())
		if pos.Filename == "" {
			continue
		}
		root := findModuleRoot(filepath.Dir(pos.Filename))
		if root == "" {
			return "", false
		}
		path := filepath.Join(root, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		return "", false
	}
	return "", false
}

// findModuleRoot walks up from dir until it finds a parsable go.mod.
func findModuleRoot(dir string) string {
	moduleRootMutex.RLock()
	if cached, ok := moduleRootCache[dir]; ok {
		moduleRootMutex.RUnlock()
		return cached
	}
	moduleRootMutex.RUnlock()

	root := ""
	for d := dir; ; {
		goModPath := filepath.Join(d, "go.mod")
		if data, err := os.ReadFile(goModPath); err == nil {
			if _, err := modfile.Parse(goModPath, data, nil); err == nil {
				root = d
				break
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}

	moduleRootMutex.Lock()
	moduleRootCache[dir] = root
	moduleRootMutex.Unlock()
	return root
}

// IsStandardLibrary reports whether a package path belongs to the Go
// standard library. Calls into the standard library are never recorded as
// call sites: the standard library carries no @throws contracts and its
// panics are programmer errors, not contract errors.
func IsStandardLibrary(pkgPath string) bool {
	first, _, _ := strings.Cut(pkgPath, "/")
	return stdlibRoots[first]
}

var stdlibRoots = map[string]bool{
	"archive": true, "bufio": true, "bytes": true, "cmp": true,
	"compress": true, "container": true, "context": true, "crypto": true,
	"database": true, "debug": true, "embed": true, "encoding": true,
	"errors": true, "expvar": true, "flag": true, "fmt": true, "go": true,
	"hash": true, "html": true, "image": true, "index": true, "io": true,
	"iter": true, "log": true, "maps": true, "math": true, "mime": true,
	"net": true, "os": true, "path": true, "plugin": true, "reflect": true,
	"regexp": true, "runtime": true, "slices": true, "sort": true,
	"strconv": true, "strings": true, "structs": true, "sync": true,
	"syscall": true, "testing": true, "text": true, "time": true,
	"unicode": true, "unique": true, "unsafe": true,
}
