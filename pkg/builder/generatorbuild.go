package builder

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/desugar"
	"github.com/ashlang/ashc/pkg/ident"
)

// BuildGeneratorDecl lowers a generator declaration into its factory/iterator
// class pair. Default parameters on a generator are folded into its plain
// parameter list rather than gaining synthesized overloads — a generator
// with default arguments has exactly one arity.
func (b *Builder) BuildGeneratorDecl(f RawFunctionDecl) desugar.Result {
	returnType := b.convertType(*f.ReturnType)
	className := ident.New(f.Name)

	b.Ctx.PushGenerator(returnType)
	b.Ctx.PushVariableKind(ast.VarParameter)
	params := make([]*ast.VariableDeclaration, 0, len(f.Params)+len(f.DefaultParams))
	for _, p := range f.Params {
		params = append(params, b.newVarDecl(f.Position, p.Name, p.Type))
	}
	for _, p := range f.DefaultParams {
		params = append(params, b.newVarDecl(f.Position, p.Name, p.Type))
	}
	b.Ctx.PopVariableKind()

	body := b.buildBlock(f.Body, nil)
	b.Ctx.PopGenerator()

	if len(body.Statements) == 0 || !isReturn(body.Statements[len(body.Statements)-1]) {
		nothing := &ast.FunctionCall{Name: ident.NewGeneric("Nothing", returnType)}
		body.AddStatement(&ast.ReturnStatement{Parameter: nothing})
	}

	hoisted := collectLocals(body)
	yields := collectYields(body)

	return b.Ctx.Generators.Generate(f.Position.toIdent(), className, returnType, params, hoisted, body, yields)
}

// collectLocals walks a generator body's block tree collecting every
// VARIABLE-kind declaration in the order first encountered, so the caller
// can relocate them into the generator-iterator's state record.
func collectLocals(block *ast.Block) []*ast.VariableDeclaration {
	var out []*ast.VariableDeclaration
	for _, d := range block.Declarations {
		if v, ok := d.(*ast.VariableDeclaration); ok && v.Kind == ast.VarVariable {
			out = append(out, v)
		}
	}
	for _, s := range block.Statements {
		out = append(out, collectLocalsStmt(s)...)
	}
	return out
}

func collectLocalsStmt(s ast.Statement) []*ast.VariableDeclaration {
	switch v := s.(type) {
	case *ast.ConditionalStatement:
		var out []*ast.VariableDeclaration
		out = append(out, collectLocals(v.Then)...)
		out = append(out, collectLocals(v.Else)...)
		return out
	case *ast.WhileLoop:
		return collectLocals(v.Body)
	case *ast.TryStatement:
		var out []*ast.VariableDeclaration
		out = append(out, v.Handle)
		out = append(out, collectLocals(v.TryBlock)...)
		out = append(out, collectLocals(v.HandleBlock)...)
		return out
	default:
		return nil
	}
}

// collectYields walks a generator body's block tree collecting its yield
// statements in source order, without descending into any nested
// generator/lambda declaration's own body (that class already collected its
// own yields when it was built).
func collectYields(block *ast.Block) []*ast.YieldStatement {
	var out []*ast.YieldStatement
	for _, s := range block.Statements {
		out = append(out, collectYieldsStmt(s)...)
	}
	return out
}

func collectYieldsStmt(s ast.Statement) []*ast.YieldStatement {
	switch v := s.(type) {
	case *ast.YieldStatement:
		return []*ast.YieldStatement{v}
	case *ast.ConditionalStatement:
		var out []*ast.YieldStatement
		out = append(out, collectYields(v.Then)...)
		out = append(out, collectYields(v.Else)...)
		return out
	case *ast.WhileLoop:
		return collectYields(v.Body)
	case *ast.TryStatement:
		var out []*ast.YieldStatement
		out = append(out, collectYields(v.TryBlock)...)
		out = append(out, collectYields(v.HandleBlock)...)
		return out
	default:
		return nil
	}
}
