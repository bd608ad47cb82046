package desugar

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// JumpFieldName is the name given to the generator-iterator's reserved
// attribute-index-0 field, the indirect-branch target codegen resumes at
// when getNext is called again.
const JumpFieldName = "$jump"

// JumpFieldType is the sentinel type identifier codegen recognizes as "an
// opaque code address", used only for the jump field.
var JumpFieldType = ident.New("$Address")

// GeneratorFactory synthesizes, for one generator declaration, a plain
// generator (factory) class and its generator-iterator class: the factory
// captures the generator's arguments and exposes getIterator(); the
// iterator holds the indirect-branch jump field plus every local hoisted out
// of the body, and exposes getNext().
type GeneratorFactory struct {
	tmp *TmpFactory
}

// NewGeneratorFactory ties a generator factory to a temporary-name source.
func NewGeneratorFactory(tmp *TmpFactory) *GeneratorFactory {
	return &GeneratorFactory{tmp: tmp}
}

// Result bundles the two classes and the getNext method the caller may need
// to attach yield-statement bookkeeping to before it is finalized.
type Result struct {
	Generator *ast.ClassDeclaration
	Iterator  *ast.ClassDeclaration
	GetNext   *ast.GeneratorFunctionDeclaration
}

// Generate builds the factory/iterator pair for a generator whose body has
// already had every `yield`/`return` lowered by the builder. hoisted is the
// full, ordered list of local variables and parameters the body references
// that must survive suspension in the iterator's state record — the caller
// (pkg/builder) walks the body to collect it, in first-use order, prefixed
// by params.
func (g *GeneratorFactory) Generate(pos ident.Position, className *ident.Identifier, returnType *ident.Identifier,
	params []*ast.VariableDeclaration, hoisted []*ast.VariableDeclaration, body *ast.Block, yields []*ast.YieldStatement) Result {

	iterName := g.tmp.NextNamed(className.Name + "Iterator")
	iterator := buildIteratorClass(pos, iterName, returnType, params, hoisted, body, yields)
	generator := buildGeneratorClass(pos, className, iterator, params)

	var getNextFn *ast.GeneratorFunctionDeclaration
	for _, m := range iterator.Block.Declarations {
		if gf, ok := m.(*ast.GeneratorFunctionDeclaration); ok {
			getNextFn = gf
			break
		}
	}
	return Result{Generator: generator, Iterator: iterator, GetNext: getNextFn}
}

func buildIteratorClass(pos ident.Position, name, returnType *ident.Identifier, params, hoisted []*ast.VariableDeclaration,
	body *ast.Block, yields []*ast.YieldStatement) *ast.ClassDeclaration {

	block := &ast.Block{Position: pos}
	iterator := &ast.ClassDeclaration{Block: block, IsGenerator: true}
	iterator.Position = pos
	iterator.Id = name

	jump := &ast.VariableDeclaration{Type: JumpFieldType, Kind: ast.VarAttribute, AttributeIndex: 0}
	jump.Position = pos
	jump.Id = ident.New(JumpFieldName)
	block.AddDeclaration(jump)

	idx := 1
	relocate := func(decls []*ast.VariableDeclaration) {
		for _, d := range decls {
			d.Kind = ast.VarAttribute
			d.AttributeIndex = idx
			idx++
			block.AddDeclaration(d)
		}
	}
	relocate(params)
	relocate(hoisted)

	init := &ast.FunctionDeclaration{
		Kind:               ast.FuncInitializer,
		DefaultInitializer: true,
		DefiningClass:      iterator,
	}
	init.Position = pos
	init.Id = ident.New("initializer")
	init.Params = cloneParams(params)
	initBody := &ast.Block{Position: pos}
	for i, p := range init.Params {
		target := params[i]
		lhs := &ast.MemberAccess{
			Left:  &ast.SelfExpression{},
			Right: &ast.VariableAccess{Name: target.Ident(), Declaration: target},
		}
		rhs := &ast.VariableAccess{Name: p.Ident(), Declaration: p}
		initBody.AddStatement(&ast.Assignment{Left: lhs, Right: rhs})
	}
	initBody.AddStatement(&ast.ReturnStatement{})
	init.Body = initBody
	block.AddDeclaration(init)

	getNext := &ast.GeneratorFunctionDeclaration{
		FunctionDeclaration: ast.FunctionDeclaration{
			Kind:          ast.FuncMethod,
			ReturnType:    ident.NewGeneric("Maybe", returnType),
			Body:          body,
			DefiningClass: iterator,
		},
		YieldStatements: yields,
	}
	getNext.FunctionDeclaration.Position = pos
	getNext.FunctionDeclaration.Id = ident.New("getNext")
	block.AddDeclaration(getNext)

	return iterator
}

func buildGeneratorClass(pos ident.Position, name *ident.Identifier, iterator *ast.ClassDeclaration,
	params []*ast.VariableDeclaration) *ast.ClassDeclaration {

	block := &ast.Block{Position: pos}
	generator := &ast.ClassDeclaration{Block: block}
	generator.Position = pos
	generator.Id = name

	for i, p := range params {
		attr := &ast.VariableDeclaration{Type: p.Type, ResolvedClass: p.ResolvedClass, Kind: ast.VarAttribute, AttributeIndex: i}
		attr.Position = pos
		attr.Id = p.Ident()
		block.AddDeclaration(attr)
	}

	init := &ast.FunctionDeclaration{
		Kind:               ast.FuncInitializer,
		DefaultInitializer: true,
		DefiningClass:      generator,
	}
	init.Position = pos
	init.Id = ident.New("initializer")
	init.Params = cloneParams(params)
	initBody := &ast.Block{Position: pos}
	attrs := generator.Attributes()
	for i, p := range init.Params {
		lhs := &ast.MemberAccess{
			Left:  &ast.SelfExpression{},
			Right: &ast.VariableAccess{Name: attrs[i].Ident(), Declaration: attrs[i]},
		}
		initBody.AddStatement(&ast.Assignment{Left: lhs, Right: &ast.VariableAccess{Name: p.Ident(), Declaration: p}})
	}
	initBody.AddStatement(&ast.ReturnStatement{})
	init.Body = initBody
	block.AddDeclaration(init)

	getIterator := &ast.FunctionDeclaration{
		Kind:          ast.FuncMethod,
		ReturnType:    iterator.Ident(),
		ReturnClass:   iterator,
		DefiningClass: generator,
	}
	getIterator.Position = pos
	getIterator.Id = ident.New("getIterator")
	ctor := &ast.FunctionCall{Name: iterator.Ident(), Declaration: iterator.DefaultInitializerFn()}
	for _, a := range attrs {
		ctor.Arguments = append(ctor.Arguments, &ast.MemberAccess{
			Left:  &ast.SelfExpression{},
			Right: &ast.VariableAccess{Name: a.Ident(), Declaration: a},
		})
	}
	giBody := &ast.Block{Position: pos}
	giBody.AddStatement(&ast.ReturnStatement{Parameter: ctor})
	getIterator.Body = giBody
	block.AddDeclaration(getIterator)

	return generator
}
