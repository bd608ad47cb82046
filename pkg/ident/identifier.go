package ident

import "strings"

// Identifier is a symbolic name plus an ordered list of generic-argument
// identifiers, some of which may still be unresolved. Two identifiers match
// iff their name and argument lists match structurally.
type Identifier struct {
	Name     string
	Generics []*Identifier
}

// New builds a plain, non-generic identifier.
func New(name string) *Identifier {
	return &Identifier{Name: name}
}

// NewGeneric builds an identifier carrying generic-argument identifiers.
func NewGeneric(name string, generics ...*Identifier) *Identifier {
	return &Identifier{Name: name, Generics: generics}
}

// Equal reports structural equality: same name, same generic arguments in
// order, recursively. A nil generic argument (used as a placeholder, e.g.
// the pattern-matched element type of `Just<T>` in a cast) matches any
// identifier.
func (id *Identifier) Equal(other *Identifier) bool {
	if id == nil || other == nil {
		return id == other
	}
	if id.Name != other.Name || len(id.Generics) != len(other.Generics) {
		return false
	}
	for i := range id.Generics {
		if id.Generics[i] == nil || other.Generics[i] == nil {
			continue
		}
		if !id.Generics[i].Equal(other.Generics[i]) {
			return false
		}
	}
	return true
}

// String renders the identifier in surface syntax, e.g. "Box<Int>".
func (id *Identifier) String() string {
	if id == nil {
		return "<nil>"
	}
	if len(id.Generics) == 0 {
		return id.Name
	}
	parts := make([]string, len(id.Generics))
	for i, g := range id.Generics {
		parts[i] = g.String()
	}
	return id.Name + "<" + strings.Join(parts, ",") + ">"
}

// Resolvable marks an Identifier that the resolver will bind to a
// declaration. It is a thin wrapper rather than a new field on Identifier so
// that unresolved and resolved identifiers can share equality/printing.
type Resolvable struct {
	*Identifier
	// Resolved is filled in by the (out-of-scope) resolver; nil until then.
	Resolved any
}

// NewResolvable wraps an identifier as one awaiting resolution.
func NewResolvable(id *Identifier) *Resolvable {
	return &Resolvable{Identifier: id}
}
