// Package ast implements the canonical AST node catalogue that the builder
// (pkg/builder) produces and the code generator (pkg/codegen) consumes.
//
// Design: a closed sum type. Node, Declaration, Statement and Expression each
// carry an unexported marker method, so every concrete node lives in this
// package and every consumer switches over concrete types exhaustively —
// there is no open class hierarchy to extend, unlike a double-dispatch
// visitor over an unsealed set of node kinds.
package ast

import "github.com/ashlang/ashc/pkg/ident"

// Node is implemented by every AST node.
type Node interface {
	Pos() ident.Position
	node()
}

// AccessModifier controls visibility of a Declaration.
type AccessModifier int

const (
	// Package is the default access modifier for a declaration inside a class.
	Package AccessModifier = iota
	Public
	Protected
	Private
)

func (a AccessModifier) String() string {
	switch a {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "package"
	}
}

// Declaration is implemented by every node that introduces a name.
type Declaration interface {
	Node
	Ident() *ident.Identifier
	Access() AccessModifier
	SetAccess(AccessModifier)
	decl()
}

// Statement is implemented by every executable statement node.
type Statement interface {
	Node
	stmt()
}

// Expression is implemented by every node that produces a value. Every
// Expression carries its resolved type and whether it denotes an assignable
// location.
type Expression interface {
	Node
	// ResolvedType returns the class the (out-of-scope) resolver bound to
	// this expression. Nil only for expressions the resolver never reaches
	// (e.g. malformed trees fed to unit tests directly).
	ResolvedType() *ClassDeclaration
	SetResolvedType(*ClassDeclaration)
	// IsLValue reports whether this expression denotes an assignable
	// location (used to decide whether a dereference is needed on access).
	IsLValue() bool
	expr()
}

// declBase implements the common Declaration bookkeeping.
type declBase struct {
	Position ident.Position
	Id       *ident.Identifier
	Acc      AccessModifier
}

func (d *declBase) Pos() ident.Position       { return d.Position }
func (d *declBase) Ident() *ident.Identifier  { return d.Id }
func (d *declBase) Access() AccessModifier    { return d.Acc }
func (d *declBase) SetAccess(a AccessModifier) { d.Acc = a }
func (d *declBase) decl()                     {}
func (d *declBase) node()                     {}

// exprBase implements the common Expression bookkeeping.
type exprBase struct {
	Position ident.Position
	Typ      *ClassDeclaration
	LValue   bool
}

func (e *exprBase) Pos() ident.Position               { return e.Position }
func (e *exprBase) ResolvedType() *ClassDeclaration   { return e.Typ }
func (e *exprBase) SetResolvedType(c *ClassDeclaration) { e.Typ = c }
func (e *exprBase) IsLValue() bool                    { return e.LValue }
func (e *exprBase) expr()                             {}
func (e *exprBase) node()                             {}

// stmtBase implements the common Statement bookkeeping.
type stmtBase struct {
	Position ident.Position
}

func (s *stmtBase) Pos() ident.Position { return s.Position }
func (s *stmtBase) stmt()               {}
func (s *stmtBase) node()               {}
