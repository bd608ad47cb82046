package codegen

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/diag"
	"github.com/ashlang/ashc/pkg/ir"
)

// generateExpr walks one expression node, leaving exactly one StackValue on
// c.fn's evaluation stack for its consumer to pop.
func (g *Generator) generateExpr(c *ctx, e ast.Expression) error {
	switch ex := e.(type) {
	case *ast.IntegerLiteral:
		c.fn.Push(ir.StackValue{Value: ir.ConstInt(ex.Value), Class: g.Runtime.Int})
	case *ast.FloatLiteral:
		c.fn.Push(ir.StackValue{Value: ir.ConstFloat(ex.Value), Class: g.Runtime.Float})
	case *ast.BoolLiteral:
		c.fn.Push(ir.StackValue{Value: ir.ConstBool(ex.Value), Class: g.Runtime.Bool})
	case *ast.CharLiteral:
		c.fn.Push(ir.StackValue{Value: ir.ConstChar(ex.Value), Class: g.Runtime.Char})
	case *ast.StringLiteral:
		boxed := c.fn.Box(g.Runtime.String, g.Module.StringConstant(ex.Value))
		c.fn.Push(ir.StackValue{Value: boxed, Class: g.Runtime.String})
	case *ast.ArrayLiteral:
		return g.generateArrayLiteral(c, ex)
	case *ast.TupleLiteral:
		return g.generateTupleLiteral(c, ex)
	case *ast.VariableAccess:
		return g.generateVariableAccess(c, ex)
	case *ast.MemberAccess:
		return g.generateMemberAccess(c, ex)
	case *ast.SelfExpression:
		obj, class := c.fn.Self()
		c.fn.Push(ir.StackValue{Value: obj, Class: class})
	case *ast.ParentExpression:
		return g.generateParentExpr(c, ex)
	case *ast.FunctionCall:
		return g.generateCall(c, ex, nil)
	case *ast.CastExpression:
		return g.generateCastExpr(c, ex)
	case *ast.IsExpression:
		return g.generateIsExpr(c, ex)
	case *ast.ConditionalExpression:
		return g.generateConditionalExpr(c, ex)
	default:
		return diag.NewInternal(e.Pos(), "codegen: unhandled expression %T", e)
	}
	return nil
}

// evalBool evaluates e and returns its raw i1 value. Bool is one of the core
// scalar classes LLVMType maps to an unboxed representation, so every Bool
// result already sitting on the stack is the raw i1 a branch needs — no
// unboxing step is ever required here.
func (g *Generator) evalBool(c *ctx, e ast.Expression) (ir.StackValue, error) {
	if err := g.generateExpr(c, e); err != nil {
		return ir.StackValue{}, err
	}
	return c.fn.Pop(e.Pos())
}

func (g *Generator) generateVariableAccess(c *ctx, va *ast.VariableAccess) error {
	d := va.Declaration
	if d == nil {
		return diag.NewInternal(va.Pos(), "variable access to %q has no resolved declaration", va.Name.Name)
	}
	switch {
	case d.IsGlobal:
		c.fn.Push(ir.StackValue{Value: c.fn.LoadGlobal(d), Class: d.ResolvedClass})
	case d.IsAttribute():
		obj, class := c.fn.Self()
		c.fn.Push(ir.StackValue{Value: c.fn.LoadMember(class, obj, d), Class: d.ResolvedClass})
	default:
		c.fn.Push(ir.StackValue{Value: c.fn.LoadLocal(d), Class: d.ResolvedClass})
	}
	return nil
}

// generateMemberAccess evaluates the left side, then resolves the right
// side against it: an attribute read, or a method call dispatched with the
// left side as receiver.
func (g *Generator) generateMemberAccess(c *ctx, ma *ast.MemberAccess) error {
	if err := g.generateExpr(c, ma.Left); err != nil {
		return err
	}
	base, err := c.fn.Pop(ma.Left.Pos())
	if err != nil {
		return err
	}
	switch right := ma.Right.(type) {
	case *ast.VariableAccess:
		loaded := c.fn.LoadMember(base.Class, base.Value, right.Declaration)
		c.fn.Push(ir.StackValue{Value: loaded, Class: right.Declaration.ResolvedClass})
		return nil
	case *ast.FunctionCall:
		return g.generateCall(c, right, &base)
	default:
		return diag.NewInternal(ma.Pos(), "codegen: unsupported member access right side %T", ma.Right)
	}
}

func (g *Generator) generateParentExpr(c *ctx, pe *ast.ParentExpression) error {
	target := g.lookupClass(pe.SelfType, pe.ToType.Name)
	if target == nil {
		return diag.NewInternal(pe.Pos(), "parent(%s): no resolvable supertype from %s", pe.ToType.Name, pe.SelfType.Ident().Name)
	}
	obj, _ := c.fn.Self()
	c.fn.Push(ir.StackValue{Value: c.fn.Cast(obj, target), Class: target})
	return nil
}

// generateCastExpr lowers `x as T`: an unchecked bitcast to T's
// struct-pointer layout. ResolvedType() reliably names T here (unlike
// IsExpression, whose own ResolvedType() is always Bool), so no class-name
// lookup is needed.
func (g *Generator) generateCastExpr(c *ctx, ce *ast.CastExpression) error {
	if err := g.generateExpr(c, ce.Value); err != nil {
		return err
	}
	v, err := c.fn.Pop(ce.Pos())
	if err != nil {
		return err
	}
	target := ce.ResolvedType()
	if target == nil {
		return diag.NewInternal(ce.Pos(), "cast to %q has no resolved target class", ce.ToType.Name)
	}
	c.fn.Push(ir.StackValue{Value: c.fn.Cast(v.Value, target), Class: target})
	return nil
}

// generateIsExpr lowers `x is T`. T is recovered by name lookup, since an
// IsExpression's own ResolvedType() is always Bool (the check's own result
// type), never the comparison target. Against a core scalar's exact static
// type the check is a compile-time constant — core scalars carry no
// class-identity field to compare at runtime; against anything else it's
// the usual identity-field comparison.
func (g *Generator) generateIsExpr(c *ctx, ie *ast.IsExpression) error {
	if err := g.generateExpr(c, ie.Value); err != nil {
		return err
	}
	v, err := c.fn.Pop(ie.Pos())
	if err != nil {
		return err
	}
	target := g.lookupClass(v.Class, ie.ToType.Name)
	if target == nil {
		return diag.NewInternal(ie.Pos(), "is-check against %q has no resolvable class", ie.ToType.Name)
	}

	var result ir.Value
	if v.Class != nil && isCoreScalar(v.Class) {
		result = ir.ConstBool(v.Class == target)
	} else {
		st := g.Module.Types.StructType(v.Class)
		result = c.fn.IsInstance(v.Value, st, target)
	}
	c.fn.Push(ir.StackValue{Value: result, Class: g.Runtime.Bool})
	return nil
}

// generateConditionalExpr lowers the ternary to two labeled arms joined by
// a phi, each arm computing its own value in whatever block it ends up in
// once its own control flow (if any) settles.
func (g *Generator) generateConditionalExpr(c *ctx, ce *ast.ConditionalExpression) error {
	cond, err := g.evalBool(c, ce.Condition)
	if err != nil {
		return err
	}

	thenBlock := c.fn.NewBlock(c.fn.Label("cond.then"))
	elseBlock := c.fn.NewBlock(c.fn.Label("cond.else"))
	joinBlock := c.fn.NewBlock(c.fn.Label("cond.end"))
	c.fn.CondBr(cond.Value, thenBlock, elseBlock)

	c.fn.Enter(thenBlock)
	if err := g.generateExpr(c, ce.Then); err != nil {
		return err
	}
	thenVal, err := c.fn.Pop(ce.Then.Pos())
	if err != nil {
		return err
	}
	thenPred := c.fn.Block
	c.fn.Br(joinBlock)

	c.fn.Enter(elseBlock)
	if err := g.generateExpr(c, ce.Else); err != nil {
		return err
	}
	elseVal, err := c.fn.Pop(ce.Else.Pos())
	if err != nil {
		return err
	}
	elsePred := c.fn.Block
	c.fn.Br(joinBlock)

	c.fn.Enter(joinBlock)
	resultClass := thenVal.Class
	if ce.ResolvedType() != nil {
		resultClass = ce.ResolvedType()
	}
	result := c.fn.PhiValue(resultClass, map[*ir.Block]ir.StackValue{
		thenPred: thenVal,
		elsePred: elseVal,
	})
	c.fn.Push(result)
	return nil
}

// generateArrayLiteral evaluates each element, boxing any unboxed core
// scalar so every slot in the buffer is a uniform pointer-sized value, then
// builds and boxes the array aggregate.
func (g *Generator) generateArrayLiteral(c *ctx, al *ast.ArrayLiteral) error {
	elems := make([]ir.Value, len(al.Elements))
	for i, e := range al.Elements {
		if err := g.generateExpr(c, e); err != nil {
			return err
		}
		v, err := c.fn.Pop(e.Pos())
		if err != nil {
			return err
		}
		elems[i] = g.boxForStorage(c, v)
	}
	arrClass := al.ResolvedType()
	if arrClass == nil {
		arrClass = g.Runtime.Array
	}
	result := c.fn.NewArray(arrClass, elems)
	c.fn.Push(ir.StackValue{Value: result, Class: arrClass})
	return nil
}

// generateTupleLiteral constructs an instance of the tuple literal's
// resolved TupleN class directly: New followed by one StoreMember per
// element, positionally matched to the class's own Attributes() — exactly
// what calling that class's synthesized initializer would do, without
// depending on the initializer declaration being resolved.
func (g *Generator) generateTupleLiteral(c *ctx, tl *ast.TupleLiteral) error {
	tc := tl.ResolvedType()
	if tc == nil {
		return diag.NewInternal(tl.Pos(), "tuple literal has no resolved class")
	}
	attrs := tc.Attributes()
	if len(attrs) < len(tl.Elements) {
		return diag.NewInternal(tl.Pos(), "tuple class %s has %d attributes, literal has %d elements",
			tc.Ident().Name, len(attrs), len(tl.Elements))
	}
	obj := c.fn.New(tc)
	for i, e := range tl.Elements {
		if err := g.generateExpr(c, e); err != nil {
			return err
		}
		v, err := c.fn.Pop(e.Pos())
		if err != nil {
			return err
		}
		c.fn.StoreMember(tc, obj, attrs[i], v.Value)
	}
	c.fn.Push(ir.StackValue{Value: obj, Class: tc})
	return nil
}

// boxForStorage returns sv's value in the pointer-sized, uniformly-typed
// form an Array's buffer slot stores: an unboxed core scalar is boxed first,
// then (boxed or not) bitcast to i8*.
func (g *Generator) boxForStorage(c *ctx, sv ir.StackValue) ir.Value {
	v := sv.Value
	if sv.Class != nil && isCoreScalar(sv.Class) {
		v = c.fn.Box(sv.Class, v)
	}
	return c.fn.Opaque(v)
}

func isCoreScalar(c *ast.ClassDeclaration) bool {
	switch c.Core {
	case ast.CoreInt, ast.CoreFloat, ast.CoreBool, ast.CoreChar:
		return true
	default:
		return false
	}
}

// lookupClass resolves name to a class declaration: first against the
// fixed registry (covers every core and built-in class an is-check or
// parent() call names), falling back to a walk up start's own supertype
// chain for a user-defined name the registry doesn't carry — this compiler
// has no broader module-wide class-name table available to codegen.
func (g *Generator) lookupClass(start *ast.ClassDeclaration, name string) *ast.ClassDeclaration {
	if c := g.Runtime.Lookup(name); c != nil {
		return c
	}
	seen := make(map[*ast.ClassDeclaration]bool)
	var walk func(*ast.ClassDeclaration) *ast.ClassDeclaration
	walk = func(c *ast.ClassDeclaration) *ast.ClassDeclaration {
		if c == nil || seen[c] {
			return nil
		}
		seen[c] = true
		if c.Ident().Name == name {
			return c
		}
		for _, s := range c.SuperDecls {
			if found := walk(s); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(start)
}
