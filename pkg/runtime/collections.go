package runtime

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// buildBox constructs the generic Box<T>: one attribute holding a value of
// the class's own type parameter, a one-argument initializer, and get/set
// accessors. Instantiating it as Box<Int> and Box<String> is the canonical
// monomorphization exercise: the code generator must emit two distinct
// constructors with distinct mangled names sharing no code.
func buildBox() *ast.ClassDeclaration {
	box := &ast.ClassDeclaration{Block: &ast.Block{}}
	box.Id = ident.New("Box")
	t := ident.New("T")
	box.Generics = []*ast.AbstractGenericType{{Owner: box, Id: t}}

	value := &ast.VariableDeclaration{Type: t, Kind: ast.VarAttribute, AttributeIndex: 0}
	value.Id = ident.New("value")
	box.Block.AddDeclaration(value)

	param := &ast.VariableDeclaration{Type: t, Kind: ast.VarParameter}
	param.Id = ident.New("v")
	init := initializer(box, []*ast.VariableDeclaration{param}, false)
	initBody := &ast.Block{}
	initBody.AddStatement(&ast.Assignment{Left: selfAttr(value), Right: paramAccess(param)})
	initBody.AddStatement(&ast.ReturnStatement{})
	init.Body = initBody
	box.Block.AddDeclaration(init)

	get := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: box, ReturnType: t}
	get.Id = ident.New("get")
	getBody := &ast.Block{}
	getBody.AddStatement(&ast.ReturnStatement{Parameter: selfAttr(value)})
	get.Body = getBody
	box.Block.AddDeclaration(get)

	setParam := &ast.VariableDeclaration{Type: t, Kind: ast.VarParameter}
	setParam.Id = ident.New("v")
	set := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: box, Params: []*ast.VariableDeclaration{setParam}}
	set.Id = ident.New("set")
	setBody := &ast.Block{}
	setBody.AddStatement(&ast.Assignment{Left: selfAttr(value), Right: paramAccess(setParam)})
	setBody.AddStatement(&ast.ReturnStatement{})
	set.Body = setBody
	box.Block.AddDeclaration(set)

	return box
}

// buildList constructs a generic List<T> backed by a core Array and an
// element count, giving monomorphization a second, differently-shaped
// generic class to exercise beyond Box<T>. It stops short of exposing
// indexed element access or a getIterator(), since both would need an
// indexing expression the AST catalogue deliberately does not carry.
func buildList(iterator, arrayClass, intClass, boolClass *ast.ClassDeclaration) *ast.ClassDeclaration {
	list := &ast.ClassDeclaration{Block: &ast.Block{}}
	list.Id = ident.New("List")
	t := ident.New("T")
	list.Generics = []*ast.AbstractGenericType{{Owner: list, Id: t}}

	items := &ast.VariableDeclaration{Type: ident.New("Array"), ResolvedClass: arrayClass, Kind: ast.VarAttribute, AttributeIndex: 0}
	items.Id = ident.New("items")
	list.Block.AddDeclaration(items)

	count := &ast.VariableDeclaration{Type: ident.New("Int"), ResolvedClass: intClass, Kind: ast.VarAttribute, AttributeIndex: 1}
	count.Id = ident.New("count")
	list.Block.AddDeclaration(count)

	init := initializer(list, nil, true)
	initBody := &ast.Block{}
	initBody.AddStatement(&ast.Assignment{Left: selfAttr(items), Right: &ast.ArrayLiteral{}})
	initBody.AddStatement(&ast.Assignment{Left: selfAttr(count), Right: &ast.IntegerLiteral{Value: 0}})
	initBody.AddStatement(&ast.ReturnStatement{})
	init.Body = initBody
	list.Block.AddDeclaration(init)

	size := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: list, ReturnType: ident.New("Int"), ReturnClass: intClass}
	size.Id = ident.New("size")
	sizeBody := &ast.Block{}
	sizeBody.AddStatement(&ast.ReturnStatement{Parameter: selfAttr(count)})
	size.Body = sizeBody
	list.Block.AddDeclaration(size)

	isEmpty := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: list, ReturnType: ident.New("Bool"), ReturnClass: boolClass}
	isEmpty.Id = ident.New("isEmpty")
	eqDecl := findMethod(intClass, "_eq_")
	eqCall := &ast.MemberAccess{
		Left: selfAttr(count),
		Right: &ast.FunctionCall{
			Name:        ident.New("_eq_"),
			Declaration: eqDecl,
			Arguments:   []ast.Expression{&ast.IntegerLiteral{Value: 0}},
		},
	}
	isEmptyBody := &ast.Block{}
	isEmptyBody.AddStatement(&ast.ReturnStatement{Parameter: eqCall})
	isEmpty.Body = isEmptyBody
	list.Block.AddDeclaration(isEmpty)

	_ = iterator // List<T> does not yet implement Iterator<T> itself; documented above.
	return list
}
