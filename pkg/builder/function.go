package builder

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// BuildFunction lowers a non-generator function/method declaration,
// synthesizing default-argument overloads and, for unbound functions, a
// callable wrapper class.
func (b *Builder) BuildFunction(f RawFunctionDecl, kind ast.FunctionKind, definingClass *ast.ClassDeclaration) *ast.FunctionDeclaration {
	b.Ctx.PushGenerator(nil)
	defer b.Ctx.PopGenerator()

	b.Ctx.PushVariableKind(ast.VarParameter)
	params := make([]*ast.VariableDeclaration, len(f.Params))
	for i, p := range f.Params {
		params[i] = b.newVarDecl(f.Position, p.Name, p.Type)
	}
	defaultDecls := make([]*ast.VariableDeclaration, len(f.DefaultParams))
	defaultVals := make([]ast.Expression, len(f.DefaultParams))
	for i, p := range f.DefaultParams {
		defaultDecls[i] = b.newVarDecl(f.Position, p.Name, p.Type)
	}
	b.Ctx.PopVariableKind()
	for i, p := range f.DefaultParams {
		defaultVals[i] = b.BuildExpr(p.Default)
	}

	all := append(append([]*ast.VariableDeclaration{}, params...), defaultDecls...)

	b.buildDefaultOverloads(f, kind, definingClass, all, params, defaultVals, defaultDecls)

	fn := &ast.FunctionDeclaration{
		Kind:          kind,
		Params:        all,
		Abstract:      f.Abstract,
		DefiningClass: definingClass,
	}
	fn.Position = f.Position.toIdent()
	fn.Id = ident.New(f.Name)
	fn.SetAccess(accessModifier(f.AccessModifier))

	if f.ReturnType != nil {
		fn.ReturnType = b.convertType(*f.ReturnType)
	}

	if f.Abstract {
		fn.Body = &ast.Block{}
		return fn
	}

	body := b.buildBlock(f.Body, nil)
	if f.ReturnType == nil {
		if len(body.Statements) == 0 || !isReturn(body.Statements[len(body.Statements)-1]) {
			body.AddStatement(&ast.ReturnStatement{})
		}
	}
	fn.Body = body

	if fn.IsUnbound() {
		b.Ctx.Wrappers.Generate(fn)
	}
	return fn
}

// buildDefaultOverloads synthesizes, for each default parameter in turn, a
// sibling declaration of one greater arity that forwards to the maximal-arity
// version, supplying the remaining defaults verbatim.
func (b *Builder) buildDefaultOverloads(f RawFunctionDecl, kind ast.FunctionKind, definingClass *ast.ClassDeclaration,
	all, params []*ast.VariableDeclaration, defaultVals []ast.Expression, defaultDecls []*ast.VariableDeclaration) {

	for i := range defaultDecls {
		block := &ast.Block{}
		var args []ast.Expression
		for j := range all {
			switch {
			case j >= len(params)+i:
				args = append(args, defaultVals[j-len(params)])
			case j < len(params):
				args = append(args, &ast.VariableAccess{Name: params[j].Ident(), Declaration: params[j]})
			default:
				d := defaultDecls[j-len(params)]
				args = append(args, &ast.VariableAccess{Name: d.Ident(), Declaration: d})
			}
		}

		var call ast.Expression = &ast.FunctionCall{Name: ident.New(f.Name), Arguments: args}
		if kind == ast.FuncMethod {
			call = &ast.MemberAccess{Left: &ast.SelfExpression{}, Right: call}
		}

		var overload *ast.FunctionDeclaration
		subParams := append([]*ast.VariableDeclaration{}, all[:len(params)+i]...)
		if f.ReturnType != nil {
			block.AddStatement(&ast.ReturnStatement{Parameter: call})
			overload = &ast.FunctionDeclaration{
				Kind: kind, Params: subParams, DefiningClass: definingClass,
				ReturnType: b.convertType(*f.ReturnType),
			}
		} else {
			block.AddStatement(&ast.WrappedFunctionCall{Call: call})
			block.AddStatement(&ast.ReturnStatement{})
			overload = &ast.FunctionDeclaration{Kind: kind, Params: subParams, DefiningClass: definingClass}
		}
		overload.Position = f.Position.toIdent()
		overload.Id = ident.New(f.Name)
		overload.Body = block
		b.Ctx.CurrentBlock().AddDeclaration(overload)
	}
}

func accessModifier(s string) ast.AccessModifier {
	switch s {
	case "public":
		return ast.Public
	case "protected":
		return ast.Protected
	case "private":
		return ast.Private
	default:
		return ast.Package
	}
}
