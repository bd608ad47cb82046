package codegen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/diag"
	"github.com/ashlang/ashc/pkg/ir"
)

// operatorIntrinsics names the operator methods pkg/runtime declares with no
// Body: core scalars have no binary-operator expression to bottom a real
// method body out on, so the code generator recognizes these by name and
// DefiningClass.IsCore() and emits the operation directly instead of
// calling a declared function.
var operatorIntrinsics = map[string]bool{
	"_eq_":       true,
	"_add_":      true,
	"_contains_": true,
}

// generateIntrinsicCall emits one of the operator intrinsics directly,
// bypassing the normal call-dispatch path entirely — there is no declared
// function body to call.
func (g *Generator) generateIntrinsicCall(c *ctx, call *ast.FunctionCall, receiver *ir.StackValue) error {
	if receiver == nil {
		return diag.NewInternal(call.Pos(), "operator %q called with no receiver", call.Name.Name)
	}
	if len(call.Arguments) != 1 {
		return diag.NewInternal(call.Pos(), "operator %q expects exactly one argument", call.Name.Name)
	}
	if err := g.generateExpr(c, call.Arguments[0]); err != nil {
		return err
	}
	arg, err := c.fn.Pop(call.Pos())
	if err != nil {
		return err
	}

	switch call.Name.Name {
	case "_eq_":
		result := c.fn.Eq(receiver.Value, arg.Value)
		c.fn.Push(ir.StackValue{Value: result, Class: g.Runtime.Bool})
	case "_add_":
		var result ir.Value
		if receiver.Class != nil && receiver.Class.Core == ast.CoreFloat {
			result = c.fn.FloatAdd(receiver.Value, arg.Value)
		} else {
			result = c.fn.IntAdd(receiver.Value, arg.Value)
		}
		c.fn.Push(ir.StackValue{Value: result, Class: receiver.Class})
	case "_contains_":
		i8ptr := types.NewPointer(types.I8)
		haystack := c.fn.Unbox(receiver.Class, receiver.Value, i8ptr)
		needle := c.fn.Unbox(arg.Class, arg.Value, i8ptr)
		result := c.fn.CallNative("ash_strcontains", haystack, needle)
		c.fn.Push(ir.StackValue{Value: result, Class: g.Runtime.Bool})
	default:
		return diag.NewInternal(call.Pos(), "unrecognized operator intrinsic %q", call.Name.Name)
	}
	return nil
}
