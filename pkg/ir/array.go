package ir

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ashlang/ashc/pkg/ast"
)

// NewArray allocates a pointer-sized-slot buffer big enough for elems, fills
// it, and boxes the result as a fresh instance of arrayClass. It expects
// every element already boxed to a pointer — boxing an unboxed core scalar
// before the call is the caller's job, since only the visitor in pkg/codegen
// knows an element's static class.
func (fn *Func) NewArray(arrayClass *ast.ClassDeclaration, elems []value.Value) value.Value {
	i8ptr := types.NewPointer(types.I8)
	n := int64(len(elems))
	if n == 0 {
		n = 1
	}
	size := n * 8
	raw := fn.Block.NewCall(fn.Module.Natives["ash_alloc"], constant.NewInt(types.I64, size))
	slots := fn.Block.NewBitCast(raw, types.NewPointer(i8ptr))
	for i, el := range elems {
		addr := fn.Block.NewGetElementPtr(i8ptr, slots, constant.NewInt(types.I64, int64(i)))
		fn.Block.NewStore(el, addr)
	}
	return fn.Box(arrayClass, raw)
}
