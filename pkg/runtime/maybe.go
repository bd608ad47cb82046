package runtime

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// buildMaybe constructs the abstract Maybe<T> contract the for-in
// desugaring's `_i.hasValue()` check and every generator's getNext return
// type assume: a single abstract hasValue() -> Bool method, satisfied by
// Just<T> and Nothing<T>.
func buildMaybe(boolClass *ast.ClassDeclaration) *ast.ClassDeclaration {
	maybe := &ast.ClassDeclaration{Abstract: true, Block: &ast.Block{}}
	maybe.Id = ident.New("Maybe")
	t := ident.New("T")
	maybe.Generics = []*ast.AbstractGenericType{{Owner: maybe, Id: t}}

	hasValue := &ast.FunctionDeclaration{
		Kind: ast.FuncMethod, Abstract: true, DefiningClass: maybe,
		ReturnType: ident.New("Bool"), ReturnClass: boolClass, Body: &ast.Block{},
	}
	hasValue.Id = ident.New("hasValue")
	maybe.Block.AddDeclaration(hasValue)
	return maybe
}

// buildJust constructs Just<T>: a one-attribute carrier of the present
// value. `Just(e)` is how `yield e` desugars; `(_i as Just<T>).getValue()`
// is how the for-in loop extracts the bound value after checking hasValue().
func buildJust(maybe, boolClass *ast.ClassDeclaration) *ast.ClassDeclaration {
	just := &ast.ClassDeclaration{Block: &ast.Block{}}
	just.Id = ident.New("Just")
	t := ident.New("T")
	just.Generics = []*ast.AbstractGenericType{{Owner: just, Id: t}}
	just.SuperClasses = []*ident.Identifier{ident.NewGeneric("Maybe", t)}
	just.SuperDecls = []*ast.ClassDeclaration{maybe}

	value := &ast.VariableDeclaration{Type: t, Kind: ast.VarAttribute, AttributeIndex: 0}
	value.Id = ident.New("value")
	just.Block.AddDeclaration(value)

	param := &ast.VariableDeclaration{Type: t, Kind: ast.VarParameter}
	param.Id = ident.New("v")
	init := initializer(just, []*ast.VariableDeclaration{param}, false)
	initBody := &ast.Block{}
	initBody.AddStatement(&ast.Assignment{Left: selfAttr(value), Right: paramAccess(param)})
	initBody.AddStatement(&ast.ReturnStatement{})
	init.Body = initBody
	just.Block.AddDeclaration(init)

	hasValue := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: just, ReturnType: ident.New("Bool"), ReturnClass: boolClass}
	hasValue.Id = ident.New("hasValue")
	hvBody := &ast.Block{}
	hvBody.AddStatement(&ast.ReturnStatement{Parameter: &ast.BoolLiteral{Value: true}})
	hasValue.Body = hvBody
	just.Block.AddDeclaration(hasValue)

	getValue := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: just, ReturnType: t}
	getValue.Id = ident.New("getValue")
	gvBody := &ast.Block{}
	gvBody.AddStatement(&ast.ReturnStatement{Parameter: selfAttr(value)})
	getValue.Body = gvBody
	just.Block.AddDeclaration(getValue)

	return just
}

// buildNothing constructs Nothing<T>: the zero-argument sentinel a
// generator's implicit trailing return becomes once its body falls off the
// end, and what a fourth call to an exhausted iterator's getNext() yields.
func buildNothing(maybe, boolClass *ast.ClassDeclaration) *ast.ClassDeclaration {
	nothing := &ast.ClassDeclaration{Block: &ast.Block{}}
	nothing.Id = ident.New("Nothing")
	t := ident.New("T")
	nothing.Generics = []*ast.AbstractGenericType{{Owner: nothing, Id: t}}
	nothing.SuperClasses = []*ident.Identifier{ident.NewGeneric("Maybe", t)}
	nothing.SuperDecls = []*ast.ClassDeclaration{maybe}

	init := initializer(nothing, nil, true)
	initBody := &ast.Block{}
	initBody.AddStatement(&ast.ReturnStatement{})
	init.Body = initBody
	nothing.Block.AddDeclaration(init)

	hasValue := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: nothing, ReturnType: ident.New("Bool"), ReturnClass: boolClass}
	hasValue.Id = ident.New("hasValue")
	hvBody := &ast.Block{}
	hvBody.AddStatement(&ast.ReturnStatement{Parameter: &ast.BoolLiteral{Value: false}})
	hasValue.Body = hvBody
	nothing.Block.AddDeclaration(hasValue)

	return nothing
}

// buildIterator constructs the abstract Iterator<T> contract `for v in E`
// desugars against: `r := E.getIterator()` assumes E exposes
// getIterator() -> Iterator<T>, and the loop body's `r.getNext()` assumes
// exactly this one abstract method.
func buildIterator(maybe *ast.ClassDeclaration) *ast.ClassDeclaration {
	iterator := &ast.ClassDeclaration{Abstract: true, Block: &ast.Block{}}
	iterator.Id = ident.New("Iterator")
	t := ident.New("T")
	iterator.Generics = []*ast.AbstractGenericType{{Owner: iterator, Id: t}}

	getNext := &ast.FunctionDeclaration{
		Kind: ast.FuncMethod, Abstract: true, DefiningClass: iterator,
		ReturnType: ident.NewGeneric("Maybe", t), Body: &ast.Block{},
	}
	getNext.Id = ident.New("getNext")
	iterator.Block.AddDeclaration(getNext)
	_ = maybe // documents the contract's return type; no structural dependency needed
	return iterator
}
