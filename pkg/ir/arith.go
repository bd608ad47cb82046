package ir

import (
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/ashlang/ashc/pkg/ast"
)

// Eq emits an icmp eq between two operands of the same type — valid for two
// integers, two i1s, or two pointers, covering every operator-intrinsic
// equality this package's callers need.
func (fn *Func) Eq(a, b Value) Value { return fn.Block.NewICmp(enum.IPredEQ, a, b) }

// IntAdd emits an integer add.
func (fn *Func) IntAdd(a, b Value) Value { return fn.Block.NewAdd(a, b) }

// FloatAdd emits a floating-point add.
func (fn *Func) FloatAdd(a, b Value) Value { return fn.Block.NewFAdd(a, b) }

// ArrayElementAt loads the pointer-sized slot at index i out of a boxed
// Array instance's buffer. This is the one indexing primitive this package
// exposes; the surface AST carries no general indexing expression, so no
// source-level subscript lowers to it, and pkg/codegen's operator
// intrinsics do not call it either.
func (fn *Func) ArrayElementAt(arrayClass *ast.ClassDeclaration, arrayObj Value, i Value) Value {
	i8ptr := types.NewPointer(types.I8)
	buf := fn.Unbox(arrayClass, arrayObj, i8ptr)
	slots := fn.Block.NewBitCast(buf, types.NewPointer(i8ptr))
	addr := fn.Block.NewGetElementPtr(i8ptr, slots, i)
	return fn.Block.NewLoad(i8ptr, addr)
}
