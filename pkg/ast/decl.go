package ast

import "github.com/ashlang/ashc/pkg/ident"

// Block is an ordered list of declarations followed by an ordered list of
// statements. Blocks establish lexical scopes; declarations in a block are
// emitted before any of its statements run.
type Block struct {
	Position     ident.Position
	Declarations []Declaration
	Statements   []Statement
}

func (b *Block) Pos() ident.Position { return b.Position }
func (b *Block) node()               {}

// AddDeclaration appends a declaration synthesized by desugaring.
func (b *Block) AddDeclaration(d Declaration) { b.Declarations = append(b.Declarations, d) }

// AddStatement appends a statement synthesized by desugaring.
func (b *Block) AddStatement(s Statement) { b.Statements = append(b.Statements, s) }

// PrependStatement inserts a statement at the front of the block, used by
// desugarings (e.g. the for-loop lowering) that must run before the caller's
// own statements.
func (b *Block) PrependStatement(s Statement) {
	b.Statements = append([]Statement{s}, b.Statements...)
}

// Import is a single module import line.
type Import struct {
	Position ident.Position
	Module   *ident.Identifier
}

func (i *Import) Pos() ident.Position { return i.Position }
func (i *Import) node()               {}

// Module is a declaration containing an import list and a top-level block.
// A native module declares bodies without emitting them; calls to its
// functions become external symbols.
type Module struct {
	declBase
	Imports []*Import
	Body    *Block
	Native  bool
}

// PackageDecl groups modules; a native package treats every contained module
// as native regardless of each module's own flag.
type PackageDecl struct {
	Modules       []*Module
	NativePackage bool
}

// VariableKind distinguishes the three declaration contexts a builder
// tracks as the "current variable context".
type VariableKind int

const (
	VarVariable VariableKind = iota
	VarParameter
	VarAttribute
)

// VariableDeclaration models a local variable, a parameter, or a class
// attribute. AttributeIndex is meaningful only when Kind == VarAttribute; it
// is assigned by the (out-of-scope) resolver and is stable per class.
type VariableDeclaration struct {
	declBase
	Type           *ident.Identifier
	ResolvedClass  *ClassDeclaration
	Kind           VariableKind
	IsGlobal       bool
	AttributeIndex int
}

func (v *VariableDeclaration) IsAttribute() bool { return v.Kind == VarAttribute }
func (v *VariableDeclaration) IsParameter() bool { return v.Kind == VarParameter }

// FunctionKind distinguishes unbound functions, methods and initializers.
type FunctionKind int

const (
	FuncUnbound FunctionKind = iota
	FuncMethod
	FuncInitializer
)

// FunctionDeclaration models a function, method or initializer. An
// initializer returns no value; an abstract function has an empty Body and a
// synthesized default return; default-argument variants are synthesized as
// sibling declarations that forward to the maximal-arity version.
type FunctionDeclaration struct {
	declBase
	Params             []*VariableDeclaration
	Body               *Block
	ReturnType         *ident.Identifier
	ReturnClass        *ClassDeclaration
	Kind               FunctionKind
	Abstract           bool
	NativeDerived      bool
	DefaultInitializer bool
	// DefiningClass is a non-owning back-pointer, resolved after construction.
	DefiningClass *ClassDeclaration

	// Set only for functions the builder rewrote into a first-class value:
	// the synthesized wrapper class, the object declaration holding an
	// instance of it, and the assignment binding that object.
	WrapperClass      *ClassDeclaration
	WrapperObject     *VariableDeclaration
	WrapperAssignment *Assignment
}

func (f *FunctionDeclaration) IsFunction() bool    { return f.ReturnType != nil }
func (f *FunctionDeclaration) IsProcedure() bool   { return f.ReturnType == nil }
func (f *FunctionDeclaration) IsMethod() bool      { return f.Kind == FuncMethod }
func (f *FunctionDeclaration) IsInitializer() bool { return f.Kind == FuncInitializer }
func (f *FunctionDeclaration) IsUnbound() bool     { return f.Kind == FuncUnbound }

// IsWrapped reports whether this unbound function was also lowered into a
// callable wrapper-class instance.
func (f *FunctionDeclaration) IsWrapped() bool { return f.WrapperClass != nil }

// GeneratorFunctionDeclaration is a function declaration annotated with its
// ordered yield statements; each carries a stable zero-based index used for
// resume-label synthesis.
type GeneratorFunctionDeclaration struct {
	FunctionDeclaration
	YieldStatements []*YieldStatement
}

// AbstractGenericType is a type parameter bound to its defining class.
type AbstractGenericType struct {
	Owner    *ClassDeclaration
	Position ident.Position
	Id       *ident.Identifier
}

func (g *AbstractGenericType) Pos() ident.Position { return g.Position }
func (g *AbstractGenericType) node()               {}

// ClassDeclaration models a class. A class with non-empty Generics emits no
// code directly — only its Variations do. A generator class owns exactly one
// generator-iterator inner class, referenced via IteratorClass.
type ClassDeclaration struct {
	declBase
	SuperClasses []*ident.Identifier
	SuperDecls   []*ClassDeclaration
	Block        *Block
	Abstract     bool
	Generics     []*AbstractGenericType
	Variations   []*ClassDeclarationVariation

	IsGenerator      bool
	IsFunctionWrapper bool
	IteratorClass    *ClassDeclaration

	// Core is set for the fixed registry of built-in classes; codegen
	// special-cases these by identity, never by name lookup.
	Core CoreClassID
}

// IsGeneric reports whether this template requires monomorphization before
// any code can be emitted for it.
func (c *ClassDeclaration) IsGeneric() bool { return len(c.Generics) > 0 }

// IsCore reports whether c is one of the fixed built-in classes.
func (c *ClassDeclaration) IsCore() bool { return c.Core != NotCore }

// DefaultInitializerFn returns the class's zero-argument initializer, the one
// invoked on every fresh allocation before any non-default initializer.
// Returns nil if none was
// declared — codegen requires the resolver to have synthesized one.
func (c *ClassDeclaration) DefaultInitializerFn() *FunctionDeclaration {
	for _, d := range c.Block.Declarations {
		if fn, ok := d.(*FunctionDeclaration); ok && fn.IsInitializer() && fn.DefaultInitializer {
			return fn
		}
	}
	return nil
}

// Methods returns every method (not initializer, not unbound function)
// declared directly on c, in declaration order. A generator iterator's
// getNext is stored as a *GeneratorFunctionDeclaration, a distinct concrete
// type from plain *FunctionDeclaration despite embedding one, so both are
// matched here; callers that need the yield bookkeeping should walk
// c.Block.Declarations directly instead of going through this method.
func (c *ClassDeclaration) Methods() []*FunctionDeclaration {
	var out []*FunctionDeclaration
	for _, d := range c.Block.Declarations {
		switch fn := d.(type) {
		case *FunctionDeclaration:
			if fn.IsMethod() {
				out = append(out, fn)
			}
		case *GeneratorFunctionDeclaration:
			if fn.IsMethod() {
				out = append(out, &fn.FunctionDeclaration)
			}
		}
	}
	return out
}

// Attributes returns every ATTRIBUTE-kind variable declared directly on c,
// in attribute-index order.
func (c *ClassDeclaration) Attributes() []*VariableDeclaration {
	var out []*VariableDeclaration
	for _, d := range c.Block.Declarations {
		if v, ok := d.(*VariableDeclaration); ok && v.IsAttribute() {
			out = append(out, v)
		}
	}
	return out
}

// ClassDeclarationVariation is a monomorphized clone of a generic class for
// one concrete substitution of its generic parameters. It shares identity
// with the template for lookup purposes but owns distinct layout and
// mangled symbols.
type ClassDeclarationVariation struct {
	ClassDeclaration
	Template     *ClassDeclaration
	Substitution map[string]*ident.Identifier
}
