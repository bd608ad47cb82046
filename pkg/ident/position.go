// Package ident implements the identifier and source-position model shared
// by every later stage of the compiler.
package ident

import "fmt"

// Position anchors an AST node to a location in a source file. Nodes
// synthesized by desugaring carry the zero Position.
type Position struct {
	File   string
	Line   int
	Column int
}

// IsSynthetic reports whether p was never derived from real source text.
func (p Position) IsSynthetic() bool {
	return p == Position{}
}

func (p Position) String() string {
	if p.IsSynthetic() {
		return "<synthetic>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
