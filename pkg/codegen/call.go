package codegen

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/diag"
	"github.com/ashlang/ashc/pkg/ir"
)

// generateCall evaluates a resolved call — an initializer invocation
// (construction), a direct call to a statically known method or unbound
// function, or a virtually dispatched call through an abstract or
// overridden supertype reference — and pushes its result, if any. receiver
// is nil for a bare, unbound call; non-nil for a call reached through a
// MemberAccess, already evaluated and popped by the caller.
func (g *Generator) generateCall(c *ctx, call *ast.FunctionCall, receiver *ir.StackValue) error {
	decl := call.Declaration
	if decl == nil {
		return diag.NewInternal(call.Pos(), "call to %q has no resolved declaration", call.Name.Name)
	}

	if operatorIntrinsics[decl.Ident().Name] && decl.Body == nil && !decl.Abstract && decl.DefiningClass != nil && decl.DefiningClass.IsCore() {
		return g.generateIntrinsicCall(c, call, receiver)
	}

	args, err := g.evalArgs(c, call.Arguments)
	if err != nil {
		return err
	}

	switch {
	case decl.IsInitializer() && decl.DefiningClass != nil && decl.DefiningClass.Core.TreatedSpecial():
		// Int/Float/Bool/Char/String/Array's own initializer takes a single
		// already-boxed argument of that same class — push it unchanged
		// rather than allocating a second box and calling into it.
		c.fn.Push(ir.StackValue{Value: args[0], Class: decl.DefiningClass})
		return nil
	case decl.IsInitializer():
		return g.generateConstruction(c, decl, args, receiver)
	case receiver != nil && decl.DefiningClass != nil && decl.DefiningClass.Abstract:
		return g.generateVirtualCall(c, call, *receiver, decl, args)
	case receiver != nil:
		full := append([]ir.Value{receiver.Value}, args...)
		return g.pushCallResult(c, decl, c.fn.Call(decl, full))
	default:
		return g.pushCallResult(c, decl, c.fn.Call(decl, args))
	}
}

// generateConstruction initializes an instance with decl, one of two ways.
// Reached through a MemberAccess, receiver is an already-evaluated existing
// instance — re-run decl against it, no allocation. Otherwise this is the
// fresh-object path: allocate with New, then, unless decl itself is the
// class's default initializer, call the default initializer first so
// whatever base/field setup it does has already run by the time decl's own
// body executes.
func (g *Generator) generateConstruction(c *ctx, decl *ast.FunctionDeclaration, args []ir.Value, receiver *ir.StackValue) error {
	if receiver != nil {
		full := append([]ir.Value{receiver.Value}, args...)
		c.fn.Call(decl, full)
		c.fn.Push(*receiver)
		return nil
	}

	obj := c.fn.New(decl.DefiningClass)
	if !decl.DefaultInitializer {
		if def := decl.DefiningClass.DefaultInitializerFn(); def != nil {
			c.fn.Call(def, []ir.Value{obj})
		}
	}
	full := append([]ir.Value{obj}, args...)
	c.fn.Call(decl, full)
	c.fn.Push(ir.StackValue{Value: obj, Class: decl.DefiningClass})
	return nil
}

// generateVirtualCall dispatches through recv's vtable rather than calling
// decl directly: decl names the abstract method the receiver's static type
// carries, but the override that actually runs depends on recv's runtime
// class identity, unknowable at this call site.
//
// The slot index comes from decl's OWN abstract class's Methods() list, not
// recv's (unknowable) runtime class — every concrete override this
// registry builds (Just.hasValue, Nothing.hasValue, a generator's getNext)
// happens to sit at the same name-matched position in its own class's
// vtable as the abstract method does in its class's, since none of these
// classes declare any other method ahead of it. A receiver hierarchy where
// that position could drift between an abstract class and one of its
// concrete implementors is outside this simplification; DESIGN.md records
// it as a known limitation of the per-class (non-merged) vtable layout.
func (g *Generator) generateVirtualCall(c *ctx, call *ast.FunctionCall, recv ir.StackValue, decl *ast.FunctionDeclaration, args []ir.Value) error {
	slot := g.slotOf(decl)
	if slot < 0 {
		return diag.NewInternal(call.Pos(), "no vtable slot for %q on %s", decl.Ident().Name, decl.DefiningClass.Ident().Name)
	}
	st := g.Module.Types.StructType(recv.Class)
	sigType := g.Module.FuncSig(decl)
	full := append([]ir.Value{recv.Value}, args...)
	result := c.fn.CallVirtual(recv.Value, st, slot, sigType, full)
	return g.pushCallResult(c, decl, result)
}

// slotOf returns the index of decl within its own defining class's
// Methods() list — see generateVirtualCall's doc comment for why this, and
// not the runtime receiver's class, is the lookup this compiler can
// actually perform at a virtual call site.
func (g *Generator) slotOf(decl *ast.FunctionDeclaration) int {
	name := decl.Ident().Name
	for i, m := range decl.DefiningClass.Methods() {
		if m.Ident().Name == name {
			return i
		}
	}
	return -1
}

// pushCallResult pushes result onto the stack tagged with decl's return
// class, unless decl is a procedure (no value to push).
func (g *Generator) pushCallResult(c *ctx, decl *ast.FunctionDeclaration, result ir.Value) error {
	if decl.IsProcedure() {
		return nil
	}
	c.fn.Push(ir.StackValue{Value: result, Class: decl.ReturnClass})
	return nil
}

func (g *Generator) evalArgs(c *ctx, args []ast.Expression) ([]ir.Value, error) {
	out := make([]ir.Value, len(args))
	for i, a := range args {
		if err := g.generateExpr(c, a); err != nil {
			return nil, err
		}
		v, err := c.fn.Pop(a.Pos())
		if err != nil {
			return nil, err
		}
		out[i] = v.Value
	}
	return out, nil
}
