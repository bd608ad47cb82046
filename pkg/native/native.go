// Package native implements the catalogue of externally-linked declarations
// a native module's calls become: signature-only, bodyless functions with
// C-style linkage, resolved by the downstream assembler/linker rather than
// emitted by this compiler.
package native

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"github.com/ashlang/ashc/pkg/mangle"
)

// Decl describes one native symbol: its linker-visible name, verbatim
// (native calls use the mangled name verbatim with C-style linkage, so
// Symbol is never run through pkg/mangle), and its LLVM signature.
type Decl struct {
	Symbol string
	Params []mangle.Type
	Return mangle.Type
}

// Catalogue is the fixed set of native declarations every compilation can
// call into without the source ever declaring them, covering the handful of
// operations a boxed-primitive-only language needs from its host: console
// output and raw heap allocation for boxing/object construction.
func Catalogue() []Decl {
	i8ptr := types.NewPointer(types.I8)
	return []Decl{
		{Symbol: "ash_alloc", Params: []mangle.Type{types.I64}, Return: i8ptr},
		{Symbol: "ash_print_int", Params: []mangle.Type{types.I64}, Return: types.Void},
		{Symbol: "ash_print_float", Params: []mangle.Type{types.Double}, Return: types.Void},
		{Symbol: "ash_print_bool", Params: []mangle.Type{types.I1}, Return: types.Void},
		{Symbol: "ash_print_char", Params: []mangle.Type{types.I8}, Return: types.Void},
		{Symbol: "ash_print_string", Params: []mangle.Type{i8ptr}, Return: types.Void},
		{Symbol: "ash_abort", Params: nil, Return: types.Void},
		{Symbol: "ash_strcontains", Params: []mangle.Type{i8ptr, i8ptr}, Return: types.I1},
	}
}

// Declare emits d as an external (bodyless) *ir.Func on m. A native
// signature carries no parameter names of its own, so every parameter is
// declared anonymous; codegen calls the function by Symbol, verbatim, never
// by a parameter name.
func Declare(m *ir.Module, d Decl) *ir.Func {
	params := make([]*ir.Param, len(d.Params))
	for i, t := range d.Params {
		params[i] = ir.NewParam("", t)
	}
	fn := m.NewFunc(d.Symbol, d.Return, params...)
	return fn
}

// DeclareAll emits every Catalogue entry onto m and returns them indexed by
// symbol, so the code generator can look up a native call's target by name
// without re-declaring it per call site.
func DeclareAll(m *ir.Module) map[string]*ir.Func {
	out := make(map[string]*ir.Func)
	for _, d := range Catalogue() {
		out[d.Symbol] = Declare(m, d)
	}
	return out
}
