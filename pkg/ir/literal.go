package ir

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// ConstInt returns the i64 constant an integer literal lowers to.
func ConstInt(v int64) value.Value { return constant.NewInt(types.I64, v) }

// ConstFloat returns the double constant a float literal lowers to.
func ConstFloat(v float64) value.Value { return constant.NewFloat(types.Double, v) }

// ConstBool returns the i1 constant a bool literal lowers to.
func ConstBool(v bool) value.Value {
	if v {
		return constant.NewInt(types.I1, 1)
	}
	return constant.NewInt(types.I1, 0)
}

// ConstChar returns the i8 constant a char literal lowers to.
func ConstChar(r rune) value.Value { return constant.NewInt(types.I8, int64(r)) }

// StringConstant returns a pointer to a module-level, null-terminated char
// array holding s, memoized so two occurrences of the same literal text
// share one global.
func (m *Module) StringConstant(s string) value.Value {
	if g, ok := m.strings[s]; ok {
		return stringPtr(g)
	}
	data := append([]byte(s), 0)
	arr := constant.NewCharArray(data)
	g := m.M.NewGlobalDef(fmt.Sprintf("ash_str_%d", len(m.strings)), arr)
	g.Immutable = true
	m.strings[s] = g
	return stringPtr(g)
}

func stringPtr(g *ir.Global) value.Value {
	zero := constant.NewInt(types.I32, 0)
	return constant.NewGetElementPtr(g.ContentType, g, zero, zero)
}
