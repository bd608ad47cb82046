// Package mono implements generic-class monomorphization: given a template
// class carrying exactly one generic parameter (pkg/runtime's Box<T> and
// List<T> are the fixed examples every compilation links against) and a
// concrete argument class, it produces the ast.ClassDeclarationVariation the
// code generator can emit real code for — its own attribute/parameter
// declarations, fully resolved, and its own deep-cloned method bodies
// rewritten to reference them. ast.ClassDeclarationVariation's own doc
// comment is the contract this package implements: "shares identity with
// the template for lookup purposes but owns distinct layout and mangled
// symbols".
package mono

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// Resolver looks up a class by its bare (non-generic) name — the minimum a
// monomorphization pass needs to resolve a template field whose declared
// type isn't the generic parameter itself (List<T>'s fixed Array and Int
// fields, for instance, never mention T at all).
type Resolver func(name string) *ast.ClassDeclaration

// Variation returns the monomorphized clone of template substituting its
// sole generic parameter for arg, memoizing on template.Variations so two
// requests for the same concrete argument (Box<Int> asked for twice) return
// the same variation and never emit a duplicate, distinctly-mangled copy.
func Variation(template *ast.ClassDeclaration, arg *ast.ClassDeclaration, resolve Resolver) *ast.ClassDeclarationVariation {
	if !template.IsGeneric() {
		panic("mono.Variation: template " + template.Ident().Name + " declares no generic parameter")
	}
	param := template.Generics[0].Id.Name
	for _, v := range template.Variations {
		if sub, ok := v.Substitution[param]; ok && sub.Name == arg.Ident().Name {
			return v
		}
	}
	v := build(template, param, arg, resolve)
	template.Variations = append(template.Variations, v)
	return v
}

func build(template *ast.ClassDeclaration, param string, arg *ast.ClassDeclaration, resolve Resolver) *ast.ClassDeclarationVariation {
	clone := *template
	clone.Id = ident.NewGeneric(template.Ident().Name, arg.Ident())
	clone.Generics = nil
	clone.Variations = nil
	clone.Block = &ast.Block{Position: template.Block.Position}

	resolveType := func(t *ident.Identifier) *ast.ClassDeclaration {
		switch {
		case t == nil:
			return nil
		case t.Name == param:
			return arg
		default:
			return resolve(t.Name)
		}
	}

	subst := make(map[*ast.VariableDeclaration]*ast.VariableDeclaration)

	// First pass: clone every attribute, so cloneFunc's body rewriting below
	// can resolve a selfAttr(...) reference against the finished map
	// regardless of declaration order.
	for _, d := range template.Block.Declarations {
		if v, ok := d.(*ast.VariableDeclaration); ok {
			nv := *v
			nv.ResolvedClass = resolveType(v.Type)
			subst[v] = &nv
		}
	}
	for _, d := range template.Block.Declarations {
		switch decl := d.(type) {
		case *ast.VariableDeclaration:
			clone.Block.AddDeclaration(subst[decl])
		case *ast.FunctionDeclaration:
			clone.Block.AddDeclaration(cloneFunc(decl, &clone, resolveType, subst))
		}
	}

	return &ast.ClassDeclarationVariation{
		ClassDeclaration: clone,
		Template:         template,
		Substitution:     map[string]*ident.Identifier{param: arg.Ident()},
	}
}

func cloneFunc(fn *ast.FunctionDeclaration, owner *ast.ClassDeclaration, resolveType func(*ident.Identifier) *ast.ClassDeclaration,
	subst map[*ast.VariableDeclaration]*ast.VariableDeclaration) *ast.FunctionDeclaration {

	nf := *fn
	nf.DefiningClass = owner
	nf.ReturnClass = resolveType(fn.ReturnType)
	nf.Params = make([]*ast.VariableDeclaration, len(fn.Params))
	for i, p := range fn.Params {
		np := *p
		np.ResolvedClass = resolveType(p.Type)
		nf.Params[i] = &np
		subst[p] = &np
	}
	nf.Body = cloneBlock(fn.Body, subst)
	return &nf
}
