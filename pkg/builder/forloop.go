package builder

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// buildForLoop lowers `for x in expr: body` by appending `.getIterator()` to
// the source expression and delegating to forLoopCore.
func (b *Builder) buildForLoop(v RawFor) ast.Statement {
	source := b.BuildExpr(v.In)
	iterableExpr := &ast.MemberAccess{Left: source, Right: &ast.FunctionCall{Name: ident.New("getIterator")}}

	loop := &ast.WhileLoop{Condition: &ast.BoolLiteral{Value: true}}
	b.Ctx.PushLoop(loop)
	thenBlock := b.buildBlock(v.Body, nil)
	b.Ctx.PopLoop()

	b.forLoopCore(loop, v.Var, iterableExpr, thenBlock)
	return loop
}

// forLoopCore lowers the documented Maybe/iterator while-loop given an
// iterable expression that already yields an Iterator<T> (i.e. `.getIterator()`
// has already been applied by the caller), an index-variable name, and a
// pre-built body block:
//
//	tmp := iterableExpr
//	while true:
//	    Maybe<T> _m := tmp.getNext()
//	    if _m.hasValue():
//	        T x := (_m as Just<T>).getValue()
//	        <body>
//	    else:
//	        break
//
// loop.Body is set on return; the caller supplies loop so break/skip
// statements built inside thenBlock could already reference it.
func (b *Builder) forLoopCore(loop *ast.WhileLoop, varName string, iterableExpr ast.Expression, thenBlock *ast.Block) {
	iterDecl := &ast.VariableDeclaration{Kind: ast.VarVariable}
	iterDecl.Id = b.Ctx.Tmp.NextNamed("iter")
	b.Ctx.CurrentBlock().AddDeclaration(iterDecl)
	b.Ctx.CurrentBlock().AddStatement(&ast.Assignment{
		Left:  &ast.VariableAccess{Name: iterDecl.Ident(), Declaration: iterDecl},
		Right: iterableExpr,
	})

	whileBlock := &ast.Block{}

	callGetNext := &ast.MemberAccess{
		Left:  &ast.VariableAccess{Name: iterDecl.Ident(), Declaration: iterDecl},
		Right: &ast.FunctionCall{Name: ident.New("getNext")},
	}
	maybeDecl := &ast.VariableDeclaration{Kind: ast.VarVariable}
	maybeDecl.Id = b.Ctx.Tmp.NextNamed("maybe")
	whileBlock.AddDeclaration(maybeDecl)
	whileBlock.AddStatement(&ast.Assignment{
		Left:  &ast.VariableAccess{Name: maybeDecl.Ident(), Declaration: maybeDecl},
		Right: callGetNext,
	})

	elseBlock := &ast.Block{}
	elseBlock.AddStatement(&ast.BreakStatement{Loop: loop})

	indexDecl := &ast.VariableDeclaration{Kind: ast.VarVariable}
	indexDecl.Id = ident.New(varName)
	getValueExpr := &ast.MemberAccess{
		Left: &ast.CastExpression{
			Value:  &ast.VariableAccess{Name: maybeDecl.Ident(), Declaration: maybeDecl},
			ToType: ident.NewGeneric("Just", nil),
		},
		Right: &ast.FunctionCall{Name: ident.New("getValue")},
	}
	thenBlock.Declarations = append([]ast.Declaration{indexDecl}, thenBlock.Declarations...)
	thenBlock.Statements = append([]ast.Statement{&ast.Assignment{
		Left:  &ast.VariableAccess{Name: indexDecl.Ident(), Declaration: indexDecl},
		Right: getValueExpr,
	}}, thenBlock.Statements...)

	whileBlock.AddStatement(&ast.ConditionalStatement{
		Condition: &ast.MemberAccess{
			Left:  &ast.VariableAccess{Name: maybeDecl.Ident(), Declaration: maybeDecl},
			Right: &ast.FunctionCall{Name: ident.New("hasValue")},
		},
		Then: thenBlock,
		Else: elseBlock,
	})

	loop.Body = whileBlock
}
