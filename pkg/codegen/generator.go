package codegen

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/diag"
	"github.com/ashlang/ashc/pkg/ir"
)

// generateGeneratorIterator emits the two functions pkg/desugar's
// buildIteratorClass gives a generator-iterator class: its default
// initializer (with an added reset of the jump field no ordinary
// initializer needs to touch) and getNext, lowered to an indirect-branch
// resume state machine.
func (g *Generator) generateGeneratorIterator(c *ast.ClassDeclaration) error {
	var getNext *ast.GeneratorFunctionDeclaration
	for _, d := range c.Block.Declarations {
		if gf, ok := d.(*ast.GeneratorFunctionDeclaration); ok {
			getNext = gf
		}
	}
	init := c.DefaultInitializerFn()
	jumpAttr := jumpField(c)
	if init == nil || getNext == nil || jumpAttr == nil {
		return diag.NewInternal(c.Pos(), "generator iterator %s missing initializer, getNext, or jump field", c.Ident().Name)
	}
	if err := g.generateGeneratorInit(init, jumpAttr); err != nil {
		return err
	}
	return g.generateGetNext(c, getNext, jumpAttr)
}

// jumpField returns the $jump attribute pkg/desugar.JumpFieldName reserves
// at attribute index 0 on every generator-iterator class.
func jumpField(c *ast.ClassDeclaration) *ast.VariableDeclaration {
	attrs := c.Attributes()
	if len(attrs) == 0 {
		return nil
	}
	return attrs[0]
}

// generateGeneratorInit emits the iterator's default initializer exactly
// like an ordinary one (binding self/params, running every statement but
// the trailing bare return), then resets the jump field to null before
// that return — the sentinel getNext's entry block checks to tell a fresh
// iterator's first call from a resumed one.
func (g *Generator) generateGeneratorInit(decl *ast.FunctionDeclaration, jumpAttr *ast.VariableDeclaration) error {
	f := g.Module.DeclareFunction(decl)
	fn := ir.NewFunc(g.Module, f)
	cx := newCtx(fn)
	fn.BindSelf(f.Params[0], decl.DefiningClass)
	for i, p := range decl.Params {
		fn.StoreLocal(p, f.Params[i+1])
	}

	stmts := decl.Body.Statements
	if len(stmts) == 0 || !isBareReturn(stmts[len(stmts)-1]) {
		return diag.NewInternal(decl.Pos(), "generator iterator initializer must end in a bare return")
	}
	body := &ast.Block{Declarations: decl.Body.Declarations, Statements: stmts[:len(stmts)-1]}
	if err := g.generateBlock(cx, body); err != nil {
		return err
	}

	obj, class := fn.Self()
	addr := fn.MemberAddress(class, obj, jumpAttr)
	fn.ClearJump(addr)
	fn.Ret(nil)
	return nil
}

func isBareReturn(s ast.Statement) bool {
	r, ok := s.(*ast.ReturnStatement)
	return ok && r.Parameter == nil
}

// generateGetNext lowers the generator's (already yield-desugared) body
// into a single function with one resume block per yield: the entry block
// tells a fresh call (jump field still null, set that way by
// generateGeneratorInit) from a resumed one (jump field holds a prior
// suspension's block address) and either falls into the first segment or
// indirect-branches into the segment the last suspension left off at.
//
// Splitting recognizes a yield at the top level of the body or nested
// inside an if/else arm or a while loop, at any depth and in any
// combination — each such construct's own control flow is rebuilt by
// emitGeneratorBody/emitGeneratorConditional/emitGeneratorWhile rather than
// the ordinary generateBlock/generateStmt path, so a suspension point
// anywhere inside it still resumes into the right segment. A YieldStatement
// that still reaches generateStmt's generic dispatch (some other
// compound-statement shape nesting it) is an internal-invariant error
// rather than a silently wrong lowering.
func (g *Generator) generateGetNext(c *ast.ClassDeclaration, getNext *ast.GeneratorFunctionDeclaration, jumpAttr *ast.VariableDeclaration) error {
	f := g.Module.DeclareFunction(&getNext.FunctionDeclaration)
	fn := ir.NewFunc(g.Module, f)
	cx := newCtx(fn)
	fn.BindSelf(f.Params[0], c)

	obj, _ := fn.Self()
	jumpAddr := fn.MemberAddress(c, obj, jumpAttr)
	loaded := fn.LoadJump(jumpAddr)

	n := len(getNext.YieldStatements)
	segments := make([]*ir.Block, n+1)
	for i := range segments {
		segments[i] = fn.NewBlock(fn.Label("resume"))
	}
	dispatch := fn.NewBlock(fn.Label("resume.dispatch"))
	fn.CondBr(fn.Eq(loaded, fn.NullPtr()), segments[0], dispatch)

	fn.Enter(dispatch)
	fn.IndirectBr(loaded, segments[1:])

	fn.Enter(segments[0])
	bindBlockLocals(fn, getNext.Body)
	if err := g.emitGeneratorBody(cx, getNext.Body.Statements, jumpAddr, segments); err != nil {
		return err
	}
	if fn.Block.Term == nil {
		return diag.NewInternal(getNext.Pos(), "generator body falls off its end without a return")
	}
	return nil
}

// bindBlockLocals allocates storage for every local a block declares,
// matching generateBlock's own declaration pass — duplicated here because
// emitGeneratorBody walks a generator body's statements directly instead
// of going through generateBlock, to keep control of the current segment.
func bindBlockLocals(fn *ir.Func, b *ast.Block) {
	for _, d := range b.Declarations {
		if v, ok := d.(*ast.VariableDeclaration); ok {
			fn.Local(v)
		}
	}
}

// emitGeneratorBody walks stmts in the current segment, suspending to the
// resume block segments[st.YieldIndex+1] (the stable index the builder
// assigned each yield when it desugared `yield e` into `return Just<T>(e)`)
// each time it crosses a YieldStatement, and recursing into
// ConditionalStatement arms so a yield nested inside an if/else still
// suspends correctly.
func (g *Generator) emitGeneratorBody(cx *ctx, stmts []ast.Statement, jumpAddr ir.Value, segments []*ir.Block) error {
	for _, s := range stmts {
		if cx.fn.Block.Term != nil {
			break
		}
		switch st := s.(type) {
		case *ast.YieldStatement:
			if err := g.generateExpr(cx, st.Parameter); err != nil {
				return err
			}
			v, err := cx.fn.Pop(st.Pos())
			if err != nil {
				return err
			}
			next := segments[st.YieldIndex+1]
			cx.fn.StoreJump(jumpAddr, cx.fn.BlockAddressToken(next))
			cx.fn.Ret(v.Value)
			cx.fn.Enter(next)
		case *ast.ConditionalStatement:
			if err := g.emitGeneratorConditional(cx, st, jumpAddr, segments); err != nil {
				return err
			}
		case *ast.WhileLoop:
			if err := g.emitGeneratorWhile(cx, st, jumpAddr, segments); err != nil {
				return err
			}
		default:
			if err := g.generateStmt(cx, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) emitGeneratorConditional(cx *ctx, st *ast.ConditionalStatement, jumpAddr ir.Value, segments []*ir.Block) error {
	cond, err := g.evalBool(cx, st.Condition)
	if err != nil {
		return err
	}

	thenBlock := cx.fn.NewBlock(cx.fn.Label("gen.if.then"))
	joinBlock := cx.fn.NewBlock(cx.fn.Label("gen.if.end"))
	elseBlock := joinBlock
	if st.Else != nil {
		elseBlock = cx.fn.NewBlock(cx.fn.Label("gen.if.else"))
	}
	cx.fn.CondBr(cond.Value, thenBlock, elseBlock)

	cx.fn.Enter(thenBlock)
	bindBlockLocals(cx.fn, st.Then)
	if err := g.emitGeneratorBody(cx, st.Then.Statements, jumpAddr, segments); err != nil {
		return err
	}
	if cx.fn.Block.Term == nil {
		cx.fn.Br(joinBlock)
	}

	if st.Else != nil {
		cx.fn.Enter(elseBlock)
		bindBlockLocals(cx.fn, st.Else)
		if err := g.emitGeneratorBody(cx, st.Else.Statements, jumpAddr, segments); err != nil {
			return err
		}
		if cx.fn.Block.Term == nil {
			cx.fn.Br(joinBlock)
		}
	}

	cx.fn.Enter(joinBlock)
	return nil
}

// emitGeneratorWhile mirrors generateWhileLoop's cond/body/end wiring, but
// walks the body through emitGeneratorBody instead of generateBlock so a
// yield anywhere inside it — including inside the for-in-desugared
// conditional a list comprehension's generator nests here — still suspends
// correctly. The loop's own break/skip statements still resolve through
// cx.loops exactly as they do outside a generator, since they fall to the
// ordinary generateStmt dispatch.
func (g *Generator) emitGeneratorWhile(cx *ctx, st *ast.WhileLoop, jumpAddr ir.Value, segments []*ir.Block) error {
	cond := cx.fn.NewBlock(cx.fn.Label("gen.while.cond"))
	body := cx.fn.NewBlock(cx.fn.Label("gen.while.body"))
	end := cx.fn.NewBlock(cx.fn.Label("gen.while.end"))
	cx.loops[st] = loopLabels{cond: cond, end: end}

	cx.fn.Br(cond)
	cx.fn.Enter(cond)
	cv, err := g.evalBool(cx, st.Condition)
	if err != nil {
		return err
	}
	cx.fn.CondBr(cv.Value, body, end)

	cx.fn.Enter(body)
	bindBlockLocals(cx.fn, st.Body)
	if err := g.emitGeneratorBody(cx, st.Body.Statements, jumpAddr, segments); err != nil {
		return err
	}
	if cx.fn.Block.Term == nil {
		cx.fn.Br(cond)
	}

	cx.fn.Enter(end)
	return nil
}
