package codegen

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/diag"
	"github.com/ashlang/ashc/pkg/ir"
)

func (g *Generator) generateStmt(c *ctx, s ast.Statement) error {
	switch st := s.(type) {
	case *ast.Assignment:
		return g.generateAssignment(c, st)
	case *ast.UnpackAssignment:
		return g.generateUnpackAssignment(c, st)
	case *ast.ConditionalStatement:
		return g.generateConditional(c, st)
	case *ast.WhileLoop:
		return g.generateWhileLoop(c, st)
	case *ast.BreakStatement:
		labels, ok := c.loops[st.Loop]
		if !ok {
			return diag.NewInternal(st.Pos(), "break statement outside a tracked loop")
		}
		c.fn.Br(labels.end)
		return nil
	case *ast.SkipStatement:
		labels, ok := c.loops[st.Loop]
		if !ok {
			return diag.NewInternal(st.Pos(), "skip statement outside a tracked loop")
		}
		c.fn.Br(labels.cond)
		return nil
	case *ast.YieldStatement:
		// A generator's yields are lowered by emitGeneratorBody's own
		// statement walk, which intercepts them at the top level and inside
		// if/else arms and while loops before they ever reach this dispatch.
		// Reaching here means a yield sits inside some other statement shape
		// that walk doesn't recurse into, where this compiler's state-machine
		// lowering doesn't split a resume point.
		return diag.NewInternal(st.Pos(), "yield statement outside a recognized generator resume point")
	case *ast.ReturnStatement:
		return g.generateReturn(c, st)
	case *ast.WrappedFunctionCall:
		return g.generateWrappedCall(c, st)
	case *ast.TryStatement:
		return g.generateTry(c, st)
	case *ast.RaiseStatement:
		return g.generateRaise(c, st)
	default:
		return diag.NewInternal(s.Pos(), "codegen: unhandled statement %T", s)
	}
}

func (g *Generator) generateAssignment(c *ctx, st *ast.Assignment) error {
	if err := g.generateExpr(c, st.Right); err != nil {
		return err
	}
	rhs, err := c.fn.Pop(st.Pos())
	if err != nil {
		return err
	}
	return g.storeInto(c, st.Left, rhs)
}

// storeInto emits the store half of an assignment for every l-value shape
// the builder produces: a bare name (global, implicit self attribute, local
// or parameter) or an explicit member access on some other expression.
func (g *Generator) storeInto(c *ctx, target ast.Expression, rhs ir.StackValue) error {
	switch t := target.(type) {
	case *ast.VariableAccess:
		switch {
		case t.Declaration.IsGlobal:
			c.fn.StoreGlobal(t.Declaration, rhs.Value)
		case t.Declaration.IsAttribute():
			obj, class := c.fn.Self()
			c.fn.StoreMember(class, obj, t.Declaration, rhs.Value)
		default:
			c.fn.StoreLocal(t.Declaration, rhs.Value)
		}
		return nil
	case *ast.MemberAccess:
		if err := g.generateExpr(c, t.Left); err != nil {
			return err
		}
		base, err := c.fn.Pop(t.Pos())
		if err != nil {
			return err
		}
		attr, ok := t.Right.(*ast.VariableAccess)
		if !ok {
			return diag.NewInternal(t.Pos(), "assignment target member access must read an attribute, got %T", t.Right)
		}
		c.fn.StoreMember(base.Class, base.Value, attr.Declaration, rhs.Value)
		return nil
	default:
		return diag.NewInternal(target.Pos(), "codegen: unsupported assignment target %T", target)
	}
}

// generateUnpackAssignment lowers `a, b = pair` through the builder's
// TmpDecl: pair is stored once into a fresh local (backfilling its
// ResolvedClass, since the temporary is codegen-owned and no resolver ever
// touches it), then each left-hand target reads the matching attribute off
// it in declaration order.
func (g *Generator) generateUnpackAssignment(c *ctx, st *ast.UnpackAssignment) error {
	if err := g.generateExpr(c, st.Right); err != nil {
		return err
	}
	rhs, err := c.fn.Pop(st.Pos())
	if err != nil {
		return err
	}
	st.TmpDecl.ResolvedClass = rhs.Class
	c.fn.StoreLocal(st.TmpDecl, rhs.Value)

	attrs := rhs.Class.Attributes()
	if len(attrs) < len(st.Left) {
		return diag.NewInternal(st.Pos(), "unpack assignment expects %d attributes on %s, found %d",
			len(st.Left), rhs.Class.Ident().Name, len(attrs))
	}
	for i, target := range st.Left {
		loaded := c.fn.LoadMember(rhs.Class, c.fn.LoadLocal(st.TmpDecl), attrs[i])
		if err := g.storeInto(c, target, ir.StackValue{Value: loaded, Class: attrs[i].ResolvedClass}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateConditional(c *ctx, st *ast.ConditionalStatement) error {
	cond, err := g.evalBool(c, st.Condition)
	if err != nil {
		return err
	}

	thenBlock := c.fn.NewBlock(c.fn.Label("if.then"))
	joinBlock := c.fn.NewBlock(c.fn.Label("if.end"))
	elseBlock := joinBlock
	if st.Else != nil {
		elseBlock = c.fn.NewBlock(c.fn.Label("if.else"))
	}
	c.fn.CondBr(cond.Value, thenBlock, elseBlock)

	c.fn.Enter(thenBlock)
	if err := g.generateBlock(c, st.Then); err != nil {
		return err
	}
	if c.fn.Block.Term == nil {
		c.fn.Br(joinBlock)
	}

	if st.Else != nil {
		c.fn.Enter(elseBlock)
		if err := g.generateBlock(c, st.Else); err != nil {
			return err
		}
		if c.fn.Block.Term == nil {
			c.fn.Br(joinBlock)
		}
	}

	c.fn.Enter(joinBlock)
	return nil
}

func (g *Generator) generateWhileLoop(c *ctx, st *ast.WhileLoop) error {
	cond := c.fn.NewBlock(c.fn.Label("while.cond"))
	body := c.fn.NewBlock(c.fn.Label("while.body"))
	end := c.fn.NewBlock(c.fn.Label("while.end"))
	c.loops[st] = loopLabels{cond: cond, end: end}

	c.fn.Br(cond)
	c.fn.Enter(cond)
	cv, err := g.evalBool(c, st.Condition)
	if err != nil {
		return err
	}
	c.fn.CondBr(cv.Value, body, end)

	c.fn.Enter(body)
	if err := g.generateBlock(c, st.Body); err != nil {
		return err
	}
	if c.fn.Block.Term == nil {
		c.fn.Br(cond)
	}

	c.fn.Enter(end)
	return nil
}

func (g *Generator) generateReturn(c *ctx, st *ast.ReturnStatement) error {
	if st.Parameter == nil {
		c.fn.Ret(nil)
		return nil
	}
	if err := g.generateExpr(c, st.Parameter); err != nil {
		return err
	}
	v, err := c.fn.Pop(st.Pos())
	if err != nil {
		return err
	}
	c.fn.Ret(v.Value)
	return nil
}

// generateWrappedCall evaluates a call used in statement position and
// discards the value it leaves behind, if any — a procedure call leaves
// nothing (generateCall never pushes for a void callee), so there is
// nothing to balance in that case.
func (g *Generator) generateWrappedCall(c *ctx, st *ast.WrappedFunctionCall) error {
	before := c.fn.Depth()
	if err := g.generateExpr(c, st.Call); err != nil {
		return err
	}
	if c.fn.Depth() > before {
		if _, err := c.fn.Pop(st.Pos()); err != nil {
			return err
		}
	}
	return nil
}

// generateTry lowers `try/handle` to the only shape this IR can express
// without landing pads or unwind tables: a raise reachable directly within
// the try block (not across a call boundary) jumps straight to the handle
// block. A raise inside a called function can never reach a caller's
// handler under this model: there is no unwinding across a call boundary,
// and no full exception mechanism to provide one.
func (g *Generator) generateTry(c *ctx, st *ast.TryStatement) error {
	handleBlock := c.fn.NewBlock(c.fn.Label("try.handle"))
	joinBlock := c.fn.NewBlock(c.fn.Label("try.end"))

	c.handlers = append(c.handlers, tryHandler{handle: st.Handle, block: handleBlock})
	err := g.generateBlock(c, st.TryBlock)
	c.handlers = c.handlers[:len(c.handlers)-1]
	if err != nil {
		return err
	}
	if c.fn.Block.Term == nil {
		c.fn.Br(joinBlock)
	}

	c.fn.Enter(handleBlock)
	if err := g.generateBlock(c, st.HandleBlock); err != nil {
		return err
	}
	if c.fn.Block.Term == nil {
		c.fn.Br(joinBlock)
	}

	c.fn.Enter(joinBlock)
	return nil
}

// generateRaise stores the raised value into the innermost handler's bound
// name and jumps to its block. With no enclosing handler in the current
// function, the raise is unhandled under this model and aborts the
// process via the native ash_abort hook rather than silently falling
// through.
func (g *Generator) generateRaise(c *ctx, st *ast.RaiseStatement) error {
	if st.Value != nil {
		if err := g.generateExpr(c, st.Value); err != nil {
			return err
		}
	}
	var raised ir.StackValue
	var err error
	if st.Value != nil {
		raised, err = c.fn.Pop(st.Pos())
		if err != nil {
			return err
		}
	}

	if len(c.handlers) == 0 {
		c.fn.CallNative("ash_abort")
		c.fn.Ret(nil)
		return nil
	}
	h := c.handlers[len(c.handlers)-1]
	if h.handle != nil && st.Value != nil {
		c.fn.StoreLocal(h.handle, raised.Value)
	}
	c.fn.Br(h.block)
	return nil
}
