package builder

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// newVarDecl builds a VariableDeclaration tagged with the context's current
// variable kind (local/parameter/attribute).
func (b *Builder) newVarDecl(pos RawPosition, name string, t RawType) *ast.VariableDeclaration {
	v := &ast.VariableDeclaration{Type: b.convertType(t), Kind: b.Ctx.CurrentVariableKind()}
	v.Position = pos.toIdent()
	v.Id = ident.New(name)
	return v
}

// BuildStmt lowers one surface statement onto the context's current block,
// returning the resulting Statement (nil if the surface form only adds
// declarations, e.g. an initializer-less variable declaration).
func (b *Builder) BuildStmt(s RawStmt) ast.Statement {
	switch v := s.(type) {
	case RawExprStmt:
		call := b.buildCall(v.Call)
		st := &ast.WrappedFunctionCall{Call: call}
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawAssignment:
		st := &ast.Assignment{Left: b.BuildExpr(v.Left), Right: b.BuildExpr(v.Right)}
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawCompoundAssignment:
		rhs := b.binaryExpression(RawBinary{Operator: v.Operator, Left: v.Left, Right: v.Right})
		st := &ast.Assignment{Left: b.BuildExpr(v.Left), Right: rhs}
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawUnpackAssignment:
		return b.buildUnpackAssignment(v)
	case RawIndependentDecl:
		return b.buildIndependentDecl(v)
	case RawIf:
		st := b.buildIf(v)
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawWhile:
		st := &ast.WhileLoop{Condition: b.BuildExpr(v.Cond)}
		st.Body = b.buildBlock(v.Body, st)
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawFor:
		st := b.buildForLoop(v)
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawTry:
		st := b.buildTry(v)
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawReturn:
		st := b.buildReturn(v)
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawYield:
		st := b.buildYield(v)
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawRaise:
		var val ast.Expression
		if v.Value != nil {
			val = b.BuildExpr(v.Value)
		}
		st := &ast.RaiseStatement{Value: val}
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawBreak:
		st := &ast.BreakStatement{Loop: b.Ctx.CurrentLoop()}
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	case RawSkip:
		st := &ast.SkipStatement{Loop: b.Ctx.CurrentLoop()}
		b.Ctx.CurrentBlock().AddStatement(st)
		return st
	default:
		return nil
	}
}

// buildBlock builds a nested statement list into its own block, pushing it
// (and, if loop is non-nil, the loop it belongs to) onto the context first.
func (b *Builder) buildBlock(stmts []RawStmt, loop *ast.WhileLoop) *ast.Block {
	block := &ast.Block{}
	b.Ctx.PushBlock(block)
	if loop != nil {
		b.Ctx.PushLoop(loop)
	}
	for _, s := range stmts {
		b.BuildStmt(s)
	}
	if loop != nil {
		b.Ctx.PopLoop()
	}
	b.Ctx.PopBlock()
	return block
}

func (b *Builder) buildUnpackAssignment(v RawUnpackAssignment) ast.Statement {
	right := b.BuildExpr(v.Right)
	left := make([]ast.Expression, len(v.Left))
	for i, t := range v.Left {
		if t.Decl != nil {
			decl := b.newVarDecl(RawPosition{}, t.Decl.Name, t.Decl.Type)
			b.Ctx.CurrentBlock().AddDeclaration(decl)
			left[i] = &ast.VariableAccess{Name: decl.Ident(), Declaration: decl}
		} else {
			left[i] = b.BuildExpr(t.Expr)
		}
	}
	tmp := &ast.VariableDeclaration{Kind: ast.VarVariable}
	tmp.Id = b.Ctx.Tmp.Next()
	st := &ast.UnpackAssignment{Left: left, Right: right, TmpDecl: tmp}
	b.Ctx.CurrentBlock().AddDeclaration(tmp)
	b.Ctx.CurrentBlock().AddStatement(st)
	return st
}

func (b *Builder) buildIndependentDecl(v RawIndependentDecl) ast.Statement {
	if v.Fn != nil {
		if v.Fn.IsGenerator {
			res := b.BuildGeneratorDecl(*v.Fn)
			b.Ctx.CurrentBlock().AddDeclaration(res.Iterator)
			b.Ctx.CurrentBlock().AddDeclaration(res.Generator)
			return nil
		}
		fn := b.BuildFunction(*v.Fn, ast.FuncUnbound, nil)
		b.Ctx.CurrentBlock().AddDeclaration(fn)
		if fn.IsWrapped() {
			b.Ctx.CurrentBlock().AddDeclaration(fn.WrapperClass)
			b.Ctx.CurrentBlock().AddDeclaration(fn.WrapperObject)
			b.Ctx.CurrentBlock().AddStatement(fn.WrapperAssignment)
		}
		return nil
	}
	decl := b.newVarDecl(RawPosition{}, v.Var.Name, v.Var.Type)
	b.Ctx.CurrentBlock().AddDeclaration(decl)
	if v.Init == nil {
		return nil
	}
	st := &ast.Assignment{
		Left:  &ast.VariableAccess{Name: decl.Ident(), Declaration: decl},
		Right: b.BuildExpr(v.Init),
	}
	b.Ctx.CurrentBlock().AddStatement(st)
	return st
}

func (b *Builder) buildIf(v RawIf) ast.Statement {
	elseBlock := &ast.Block{}
	if len(v.Else) > 0 {
		elseBlock = b.buildBlock(v.Else, nil)
	}
	first := elseBlock
	if len(v.Elif) > 0 {
		last := &ast.Block{}
		first = last
		for i, elif := range v.Elif {
			var branchElse *ast.Block
			if i == len(v.Elif)-1 {
				branchElse = elseBlock
			} else {
				branchElse = &ast.Block{}
			}
			cond := b.BuildExpr(elif.Cond)
			body := b.buildBlock(elif.Body, nil)
			last.AddStatement(&ast.ConditionalStatement{Condition: cond, Then: body, Else: branchElse})
			last = branchElse
		}
	}
	return &ast.ConditionalStatement{
		Condition: b.BuildExpr(v.Cond),
		Then:      b.buildBlock(v.Then, nil),
		Else:      first,
	}
}

func (b *Builder) buildTry(v RawTry) ast.Statement {
	handle := b.newVarDecl(RawPosition{}, v.Handle.Name, v.Handle.Type)
	return &ast.TryStatement{
		Handle:      handle,
		TryBlock:    b.buildBlock(v.TryBody, nil),
		HandleBlock: b.buildBlock(v.HandleBody, nil),
	}
}

// buildReturn lowers `return e` (or a bare `return`), forcing "Nothing<T>"
// whenever this statement is being built inside a generator, regardless of
// what the surface syntax wrote.
func (b *Builder) buildReturn(v RawReturn) ast.Statement {
	if b.Ctx.InGenerator() {
		nothing := &ast.FunctionCall{Name: ident.NewGeneric("Nothing", b.Ctx.GeneratorReturnType())}
		return &ast.ReturnStatement{Parameter: nothing}
	}
	var val ast.Expression
	if v.Value != nil {
		val = b.BuildExpr(v.Value)
	}
	return &ast.ReturnStatement{Parameter: val}
}

// buildYield lowers `yield e` to `return Just<T>(e)`, tagging the result
// with the generator's next resume-label index.
func (b *Builder) buildYield(v RawYield) ast.Statement {
	expr := b.BuildExpr(v.Value)
	just := &ast.FunctionCall{
		Name:      ident.NewGeneric("Just", b.Ctx.GeneratorReturnType()),
		Arguments: []ast.Expression{expr},
	}
	y := &ast.YieldStatement{YieldIndex: b.Ctx.NextYieldIndex()}
	y.Parameter = just
	return y
}
