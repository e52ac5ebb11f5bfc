package nouncaughterrors

import (
	"encoding/gob"

	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/annotation"
)

func init() {
	gob.Register(&ThrowsFact{})
}

// ThrowsFact is the exported error contract of a documented function.
// Attached to *types.Func objects and consumed when resolving call sites
// into already-analyzed packages. A never contract exports an empty list.
type ThrowsFact struct {
	Types []annotation.ErrorType
}

func (*ThrowsFact) AFact() {}

func (f *ThrowsFact) String() string {
	set := f.Set()
	return set.String()
}

// Set rebuilds the contract as an error set.
func (f *ThrowsFact) Set() annotation.ErrorSet {
	return annotation.NewErrorSet(f.Types...)
}
