// Package runtime builds the fixed set of classes every compilation links
// against without the surface language ever declaring them: the core
// boxed-primitive registry, the Maybe/Just/Nothing/Iterator contract the
// builder's for-in and generator desugarings assume, and a List<T>/Box<T>
// generic pair exercising monomorphization end to end. Every class here is
// assembled directly as an ast.ClassDeclaration tree, the same way
// pkg/desugar's factories synthesize one — there is no separate source file
// for the code generator to parse.
package runtime

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// Registry holds every class this package builds, constructed once per
// compilation and shared by the builder and the code generator alike.
type Registry struct {
	Int, Float, Bool, Char, String, Array, Object, Void, BoolBox *ast.ClassDeclaration
	Maybe, Just, Nothing, Iterator                               *ast.ClassDeclaration
	List, Box                                                     *ast.ClassDeclaration
}

// New builds an independent registry. Two calls never share class identity,
// matching the rest of the compiler's rule that nothing is ambient or
// global — a test can build two registries and never see them collide.
func New() *Registry {
	r := &Registry{
		Int:     coreClass("Int", ast.CoreInt),
		Float:   coreClass("Float", ast.CoreFloat),
		Bool:    coreClass("Bool", ast.CoreBool),
		Char:    coreClass("Char", ast.CoreChar),
		String:  coreClass("String", ast.CoreString),
		Array:   coreClass("Array", ast.CoreArray),
		Object:  coreClass("Object", ast.CoreObject),
		Void:    coreClass("Void", ast.CoreVoid),
		BoolBox: coreClass("BoolBox", ast.CoreBoolBox),
	}
	addOperators(r.Int, r.Float, r.Bool, r.String)
	r.Maybe = buildMaybe(r.Bool)
	r.Just = buildJust(r.Maybe, r.Bool)
	r.Nothing = buildNothing(r.Maybe, r.Bool)
	r.Iterator = buildIterator(r.Maybe)
	r.List, r.Box = buildList(r.Iterator, r.Array, r.Int, r.Bool), buildBox()
	return r
}

// Classes returns every class in the registry, in the fixed order codegen
// should emit them (core classes first, since nothing else can reference
// them before they exist).
func (r *Registry) Classes() []*ast.ClassDeclaration {
	return []*ast.ClassDeclaration{
		r.Int, r.Float, r.Bool, r.Char, r.String, r.Array, r.Object, r.Void, r.BoolBox,
		r.Maybe, r.Just, r.Nothing, r.Iterator, r.List, r.Box,
	}
}

// Lookup returns the registry class declared under name, or nil if none
// matches — the minimum a monomorphization pass needs to resolve a generic
// template's non-generic-typed fields (List<T>'s fixed Array and Int
// attributes, for instance) against concrete classes.
func (r *Registry) Lookup(name string) *ast.ClassDeclaration {
	for _, c := range r.Classes() {
		if c.Ident().Name == name {
			return c
		}
	}
	return nil
}

// findMethod returns the method named name declared directly on c, or nil.
// Used to wire a synthesized body against an already-declared operator
// (addOperators) or built-in method rather than fabricating a second,
// unregistered FunctionDeclaration for the same symbol.
func findMethod(c *ast.ClassDeclaration, name string) *ast.FunctionDeclaration {
	for _, m := range c.Methods() {
		if m.Ident().Name == name {
			return m
		}
	}
	return nil
}

func coreClass(name string, id ast.CoreClassID) *ast.ClassDeclaration {
	c := &ast.ClassDeclaration{Block: &ast.Block{}, Core: id}
	c.Id = ident.New(name)
	return c
}

func initializer(class *ast.ClassDeclaration, params []*ast.VariableDeclaration, defaultInit bool) *ast.FunctionDeclaration {
	init := &ast.FunctionDeclaration{
		Kind:               ast.FuncInitializer,
		DefaultInitializer: defaultInit,
		DefiningClass:      class,
		Params:             params,
	}
	init.Id = ident.New("initializer")
	return init
}

func selfAttr(attr *ast.VariableDeclaration) *ast.MemberAccess {
	return &ast.MemberAccess{
		Left:  &ast.SelfExpression{},
		Right: &ast.VariableAccess{Name: attr.Ident(), Declaration: attr},
	}
}

func paramAccess(p *ast.VariableDeclaration) *ast.VariableAccess {
	return &ast.VariableAccess{Name: p.Ident(), Declaration: p}
}
