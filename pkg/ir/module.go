// Package ir implements the stateful half of code generation: a per-module
// emission context wrapping an *ir.Module (github.com/llir/llvm), the class
// layout/vtable/boxing services the visitor in pkg/codegen drives, and a
// per-function emission context carrying the explicit evaluation-value
// stack. pkg/mangle supplies the pure name-mangling and type-mapping
// functions this package builds on; nothing here re-derives them.
package ir

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/diag"
	"github.com/ashlang/ashc/pkg/ident"
	"github.com/ashlang/ashc/pkg/mangle"
	"github.com/ashlang/ashc/pkg/native"
)

// Block re-exports llir/llvm's basic-block type so pkg/codegen can name a
// branch target (a loop's condition block, a generator's resume block)
// without importing llir/llvm directly.
type Block = ir.Block

// Value re-exports llir/llvm's value type for the same reason as Block: so
// pkg/codegen can build an argument slice or hold an intermediate result
// without importing llir/llvm directly.
type Value = value.Value

// Module is the top-level emission context: one per compilation. It owns
// the llir/llvm module every function and class layout is emitted into, the
// class-layout/type cache, and the class-identity vtable globals that double
// as both a class's dispatch table and its runtime identity token.
type Module struct {
	M       *ir.Module
	Types   *mangle.TypeMapper
	Natives map[string]*ir.Func

	vtables map[*ast.ClassDeclaration]*ir.Global
	funcs   map[*ast.FunctionDeclaration]*ir.Func
	globals map[*ast.VariableDeclaration]*ir.Global
	strings map[string]*ir.Global
}

// NewModule returns a fresh emission context with every native declaration
// pre-registered, ready for the code-generation visitor to emit classes and
// functions into.
func NewModule() *Module {
	m := ir.NewModule()
	ctx := &Module{
		M:       m,
		Types:   mangle.NewTypeMapper(),
		vtables: make(map[*ast.ClassDeclaration]*ir.Global),
		funcs:   make(map[*ast.FunctionDeclaration]*ir.Func),
		globals: make(map[*ast.VariableDeclaration]*ir.Global),
		strings: make(map[string]*ir.Global),
	}
	ctx.Natives = native.DeclareAll(m)
	return ctx
}

// String renders the single textual IR document: constants, declarations,
// and function bodies, concatenated in that order — llir/llvm's own
// (*ir.Module).String already emits a module in exactly that layout (global
// declarations, including the vtable constants and native declarations
// this package adds, ahead of function bodies), so this is a direct
// pass-through kept as a named method for callers that only hold a *Module.
func (m *Module) String() string { return m.M.String() }

// DeclareFunction returns the *ir.Func mangle.Function names fn as,
// creating and memoizing it on first reference so a call site that runs
// ahead of the function's own emission (a forward reference, or a recursive
// call) still gets a stable, single declaration to call.
func (m *Module) DeclareFunction(fn *ast.FunctionDeclaration) *ir.Func {
	if err := diag.Assert(fn != nil, ident.Position{}, "DeclareFunction called with a nil declaration"); err != nil {
		panic(err)
	}
	if f, ok := m.funcs[fn]; ok {
		return f
	}
	retType := m.Types.LLVMType(fn.ReturnClass)
	if fn.IsInitializer() {
		retType = types.Void
	}
	var params []*ir.Param
	if fn.DefiningClass != nil && (fn.IsMethod() || fn.IsInitializer()) {
		params = append(params, ir.NewParam("self", m.Types.LLVMType(fn.DefiningClass)))
	}
	for _, p := range fn.Params {
		params = append(params, ir.NewParam(mangle.Variable(p), m.Types.LLVMType(p.ResolvedClass)))
	}
	f := m.M.NewFunc(mangle.Function(fn), retType, params...)
	m.funcs[fn] = f
	return f
}

// FuncSig returns the LLVM function-signature type fn's own declaration was
// given, so a virtual call can bitcast a vtable slot's raw function pointer
// to the concrete override's signature rather than the abstract
// declaration's, without pkg/codegen ever naming *types.FuncType itself.
func (m *Module) FuncSig(fn *ast.FunctionDeclaration) *types.FuncType {
	return m.DeclareFunction(fn).Sig
}

// VTable returns (building and memoizing on first use) the global constant
// array of method-pointer bitcasts serving as c's class-identity / vtable
// pointer — the field every instance's struct reserves at field index
// mangle.ClassIDFieldIndex. Method order is c.Methods() order, matching the
// virtual-call dispatch this package's CallVirtual helper indexes into.
func (m *Module) VTable(c *ast.ClassDeclaration) *ir.Global {
	if g, ok := m.vtables[c]; ok {
		return g
	}
	methods := c.Methods()
	i8ptr := types.NewPointer(types.I8)
	elems := make([]constant.Constant, len(methods))
	for i, meth := range methods {
		f := m.DeclareFunction(meth)
		elems[i] = constant.NewBitCast(f, i8ptr)
	}
	arrType := types.NewArray(uint64(len(elems)), i8ptr)
	init := constant.NewArray(arrType, elems...)
	g := m.M.NewGlobalDef("ash_vtable_"+classTag(c), init)
	m.vtables[c] = g
	return g
}

// ClassIdentity returns the constant used both to stamp a fresh instance's
// class-identity field and to compare against in an is-check: the address of
// c's vtable global, truncated to an integer via ptrtoint so it fits the
// i64 class-identity field every struct layout reserves at field 0 — an
// icmp eq on two i64s rather than on two pointers, avoiding a second bitcast
// at every load site.
func (m *Module) ClassIdentity(c *ast.ClassDeclaration) constant.Constant {
	return constant.NewPtrToInt(m.VTable(c), types.I64)
}

// Global returns the module-level storage backing a global variable,
// creating it zero-initialized on first reference regardless of which
// function reaches it first.
func (m *Module) Global(v *ast.VariableDeclaration) *ir.Global {
	if g, ok := m.globals[v]; ok {
		return g
	}
	t := m.Types.LLVMType(v.ResolvedClass)
	g := m.M.NewGlobalDef(mangle.Variable(v), constant.NewZeroInitializer(t))
	m.globals[v] = g
	return g
}

// classTag names a class for use inside a generated global symbol. It
// flattens the class's identifier plus its generic arguments recursively —
// mangle.Function's own rule for a parameter's type tag — so the vtable for
// Box<Int> and the one for Box<String> never collide.
func classTag(c *ast.ClassDeclaration) string {
	return tag(c.Ident())
}

func tag(id *ident.Identifier) string {
	if id == nil {
		return "v"
	}
	s := sanitizeIdent(id.Name)
	for _, g := range id.Generics {
		s += "_" + tag(g)
	}
	return s
}

func sanitizeIdent(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b = append(b, byte(r))
		default:
			b = append(b, '_')
		}
	}
	return string(b)
}
