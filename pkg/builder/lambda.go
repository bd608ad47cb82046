package builder

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// buildLambda lowers a lambda expression into a synthesized single-statement
// function, wraps it as a first-class value, and returns a reference to the
// wrapper object — a lambda is never itself an ast.Expression node.
func (b *Builder) buildLambda(v RawLambda) ast.Expression {
	fn := &ast.FunctionDeclaration{Kind: ast.FuncUnbound}
	fn.Id = b.Ctx.Tmp.Next()

	b.Ctx.PushVariableKind(ast.VarParameter)
	for _, p := range v.Params {
		fn.Params = append(fn.Params, b.newVarDecl(RawPosition{}, p.Name, p.Type))
	}
	b.Ctx.PopVariableKind()

	body := &ast.Block{}
	b.Ctx.PushBlock(body)
	result := b.BuildExpr(v.Body)
	b.Ctx.PopBlock()
	body.AddStatement(&ast.ReturnStatement{Parameter: result})
	fn.Body = body
	// A lambda always produces a value; its exact return type is left for the
	// resolver to infer from the body, but ReturnType must be non-nil here so
	// IsFunction() routes wrapper-class generation down the function (not
	// procedure) path.
	fn.ReturnType = ident.New("$Infer")

	b.Ctx.CurrentBlock().AddDeclaration(fn)
	b.Ctx.Wrappers.Generate(fn)
	b.Ctx.CurrentBlock().AddDeclaration(fn.WrapperClass)
	b.Ctx.CurrentBlock().AddDeclaration(fn.WrapperObject)
	b.Ctx.CurrentBlock().AddStatement(fn.WrapperAssignment)

	return &ast.VariableAccess{Name: fn.WrapperObject.Ident(), Declaration: fn.WrapperObject}
}
