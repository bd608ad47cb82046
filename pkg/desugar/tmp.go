package desugar

import (
	"fmt"
	"sync/atomic"

	"github.com/ashlang/ashc/pkg/ident"
)

// TmpFactory mints identifiers guaranteed unique within a compilation,
// used for the auxiliary temporaries every desugaring introduces (the
// for-loop's iterator and Maybe-holder, list comprehensions' generator
// instance, wrapper objects, ...).
//
// A counter per *TmpFactory* rather than a package-level global keeps
// multiple builders from cross-talking.
type TmpFactory struct {
	counter uint64
}

// NewTmpFactory returns a fresh, independent temporary-identifier source.
func NewTmpFactory() *TmpFactory {
	return &TmpFactory{}
}

// Next mints a new, never-before-returned identifier from this factory.
func (f *TmpFactory) Next() *ident.Identifier {
	n := atomic.AddUint64(&f.counter, 1)
	return ident.New(fmt.Sprintf("$tmp%d", n))
}

// NextNamed mints a temporary identifier carrying a hint for readability in
// dumped IR (e.g. "$tmp3.iter"), without affecting uniqueness.
func (f *TmpFactory) NextNamed(hint string) *ident.Identifier {
	n := atomic.AddUint64(&f.counter, 1)
	return ident.New(fmt.Sprintf("$tmp%d.%s", n, hint))
}
