package ir

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/diag"
	"github.com/ashlang/ashc/pkg/ident"
	"github.com/ashlang/ashc/pkg/mangle"
)

// StackValue is one entry on a Func's explicit evaluation stack: the emitted
// value together with the resolved class it was produced as, so a later
// consumer (a call's argument slot, an assignment's right-hand side, a
// member access's base) never has to re-derive a type from raw IR.
type StackValue struct {
	Value value.Value
	Class *ast.ClassDeclaration
}

// Func is the per-function emission context: the current insertion block,
// the explicit value stack the visitor in pkg/codegen pushes onto and pops
// from as it walks an expression tree, and the local-variable address table
// every load/store of a parameter or local goes through.
type Func struct {
	Module *Module
	F      *ir.Func
	Block  *ir.Block

	stack  []StackValue
	locals map[*ast.VariableDeclaration]value.Value // alloca'd address, not value

	labels int

	self      value.Value
	selfClass *ast.ClassDeclaration
}

// BindSelf records the receiver value a method or initializer was called
// through, so SelfExpression and an implicit attribute access (a bare
// attribute name referenced without an explicit self.) both have something
// to read.
func (fn *Func) BindSelf(v value.Value, class *ast.ClassDeclaration) {
	fn.self, fn.selfClass = v, class
}

// Self returns the receiver bound via BindSelf and the class it was bound
// as. Both are nil/zero outside a method or initializer body.
func (fn *Func) Self() (value.Value, *ast.ClassDeclaration) { return fn.self, fn.selfClass }

// NewFunc opens an emission context over f's entry block. The caller is
// responsible for populating locals for f's parameters via Local/StoreLocal
// before the visitor starts walking f's body.
func NewFunc(m *Module, f *ir.Func) *Func {
	entry := f.NewBlock("entry")
	return &Func{
		Module: m,
		F:      f,
		Block:  entry,
		locals: make(map[*ast.VariableDeclaration]value.Value),
	}
}

// Label returns a fresh, function-unique block name built from prefix and a
// per-function counter ({prefix}.N), used to build the stable
// while.cond / while.body / while.end triples a loop needs, or a generator's
// resume blocks, without colliding with a sibling loop of the same kind
// elsewhere in the same function.
func (fn *Func) Label(prefix string) string {
	fn.labels++
	return prefix + "." + strconv.Itoa(fn.labels)
}

// Push places v on the evaluation stack.
func (fn *Func) Push(v StackValue) { fn.stack = append(fn.stack, v) }

// Pop removes and returns the top of the evaluation stack. Popping an empty
// stack is an internal-invariant violation: every expression the visitor
// walks must leave exactly one value behind for its consumer to pop.
func (fn *Func) Pop(pos ident.Position) (StackValue, error) {
	if err := diag.Assert(len(fn.stack) > 0, pos, "evaluation stack underflow"); err != nil {
		return StackValue{}, err
	}
	v := fn.stack[len(fn.stack)-1]
	fn.stack = fn.stack[:len(fn.stack)-1]
	return v, nil
}

// Depth reports the current stack size, used by the visitor to assert a
// statement left the stack balanced once its effects are emitted.
func (fn *Func) Depth() int { return len(fn.stack) }

// Local declares a new local (or binds a parameter's incoming value): it
// allocates stack storage once, at function-entry granularity, and
// memoizes the address so every later reference loads/stores through the
// same alloca regardless of which lexical block it appears in.
func (fn *Func) Local(v *ast.VariableDeclaration) value.Value {
	if addr, ok := fn.locals[v]; ok {
		return addr
	}
	t := fn.Module.Types.LLVMType(v.ResolvedClass)
	addr := fn.F.Blocks[0].NewAlloca(t)
	fn.locals[v] = addr
	return addr
}

// LoadLocal emits a load of v's current value.
func (fn *Func) LoadLocal(v *ast.VariableDeclaration) value.Value {
	return fn.Block.NewLoad(fn.Module.Types.LLVMType(v.ResolvedClass), fn.Local(v))
}

// StoreLocal emits a store of val into v's address.
func (fn *Func) StoreLocal(v *ast.VariableDeclaration, val value.Value) {
	fn.Block.NewStore(val, fn.Local(v))
}

// LoadGlobal emits a load of a global variable's current value.
func (fn *Func) LoadGlobal(v *ast.VariableDeclaration) value.Value {
	g := fn.Module.Global(v)
	return fn.Block.NewLoad(fn.Module.Types.LLVMType(v.ResolvedClass), g)
}

// StoreGlobal emits a store of val into a global variable.
func (fn *Func) StoreGlobal(v *ast.VariableDeclaration, val value.Value) {
	fn.Block.NewStore(val, fn.Module.Global(v))
}

// New emits allocation and class-identity stamping for a fresh boxed
// instance of c: a call into the ash_alloc native sized to c's struct
// layout, a bitcast of the returned i8* to c's struct-pointer type, and a
// store of c's vtable address into the class-identity field every struct
// layout reserves at mangle.ClassIDFieldIndex. It returns the bitcast
// pointer; the caller still owes c's matching initializer a call.
func (fn *Func) New(c *ast.ClassDeclaration) value.Value {
	st := fn.Module.Types.StructType(c)
	size := sizeOf(st)
	raw := fn.Block.NewCall(fn.Module.Natives["ash_alloc"], constant.NewInt(types.I64, size))
	ptrType := types.NewPointer(st)
	obj := fn.Block.NewBitCast(raw, ptrType)
	fn.storeClassID(obj, st, fn.Module.ClassIdentity(c))
	return obj
}

// storeClassID writes id into the struct-identity field of obj via a
// zero/zero GEP into field mangle.ClassIDFieldIndex.
func (fn *Func) storeClassID(obj value.Value, st *types.StructType, id constant.Constant) {
	zero := constant.NewInt(types.I32, 0)
	idx := constant.NewInt(types.I32, mangle.ClassIDFieldIndex)
	addr := fn.Block.NewGetElementPtr(st, obj, zero, idx)
	fn.Block.NewStore(id, addr)
}

// MemberAddress computes the address of attribute attr on instance obj
// (a pointer to c's struct type): a GEP to field
// mangle.ClassIDFieldIndex+1+attr.AttributeIndex, the layout StructType
// reserves for class attributes one-for-one in declaration order.
func (fn *Func) MemberAddress(c *ast.ClassDeclaration, obj value.Value, attr *ast.VariableDeclaration) value.Value {
	st := fn.Module.Types.StructType(c)
	zero := constant.NewInt(types.I32, 0)
	idx := constant.NewInt(types.I32, int64(mangle.ClassIDFieldIndex+1+attr.AttributeIndex))
	return fn.Block.NewGetElementPtr(st, obj, zero, idx)
}

// LoadMember emits a load of attr on obj.
func (fn *Func) LoadMember(c *ast.ClassDeclaration, obj value.Value, attr *ast.VariableDeclaration) value.Value {
	addr := fn.MemberAddress(c, obj, attr)
	return fn.Block.NewLoad(fn.Module.Types.LLVMType(attr.ResolvedClass), addr)
}

// StoreMember emits a store of val into attr on obj.
func (fn *Func) StoreMember(c *ast.ClassDeclaration, obj value.Value, attr *ast.VariableDeclaration, val value.Value) {
	addr := fn.MemberAddress(c, obj, attr)
	fn.Block.NewStore(val, addr)
}

// Box wraps an unboxed scalar (an i64/double/i1/i8 produced by arithmetic or
// a literal) into a fresh boxed instance of its core class: New followed by
// a store of raw into the class's single payload field (the field
// mangle.TypeMapper.StructType reserves at index 1 for every core scalar).
func (fn *Func) Box(core *ast.ClassDeclaration, raw value.Value) value.Value {
	obj := fn.New(core)
	st := fn.Module.Types.StructType(core)
	zero := constant.NewInt(types.I32, 0)
	one := constant.NewInt(types.I32, 1)
	addr := fn.Block.NewGetElementPtr(st, obj, zero, one)
	fn.Block.NewStore(raw, addr)
	return obj
}

// Unbox emits a load of a boxed core instance's payload field, the inverse
// of Box, used wherever the visitor needs the raw scalar back for an
// arithmetic or comparison operator.
func (fn *Func) Unbox(core *ast.ClassDeclaration, obj value.Value, payload types.Type) value.Value {
	st := fn.Module.Types.StructType(core)
	zero := constant.NewInt(types.I32, 0)
	one := constant.NewInt(types.I32, 1)
	addr := fn.Block.NewGetElementPtr(st, obj, zero, one)
	return fn.Block.NewLoad(payload, addr)
}

// IsInstance emits the runtime comparison an is-check lowers to: the
// class-identity field loaded from obj (every boxed value's field 0 is the
// same i64-sized identity slot, regardless of its static class) compared
// for equality against target's vtable address. The *ir.InstICmp itself is
// the i1 result; boxing it to Bool is the caller's job, matching how every
// other comparison in this package returns an unboxed i1.
func (fn *Func) IsInstance(obj value.Value, objStruct *types.StructType, target *ast.ClassDeclaration) value.Value {
	zero := constant.NewInt(types.I32, 0)
	idx := constant.NewInt(types.I32, mangle.ClassIDFieldIndex)
	addr := fn.Block.NewGetElementPtr(objStruct, obj, zero, idx)
	loaded := fn.Block.NewLoad(types.I64, addr)
	return fn.Block.NewICmp(enum.IPredEQ, loaded, fn.Module.ClassIdentity(target))
}

// Cast emits an unchecked bitcast of obj to target's struct-pointer type —
// correct for an upcast (target is a supertype of obj's static type, so the
// layouts already agree on every field the cast site can observe) and used
// as the mechanical half of a checked downcast once the visitor has already
// emitted an IsInstance guard around it.
func (fn *Func) Cast(obj value.Value, target *ast.ClassDeclaration) value.Value {
	return fn.Block.NewBitCast(obj, types.NewPointer(fn.Module.Types.StructType(target)))
}

// Call emits a direct call to fn's own mangled declaration with args in
// declaration order, matching the non-virtual call-dispatch path: a method
// invoked on a statically known class, an initializer, or an unbound
// function.
func (fn *Func) Call(target *ast.FunctionDeclaration, args []value.Value) value.Value {
	callee := fn.Module.DeclareFunction(target)
	return fn.Block.NewCall(callee, args...)
}

// CallVirtual emits a vtable-indexed call for a method invoked through an
// abstract or overridden supertype reference, where the static receiver
// class can't name the override that actually runs. It loads the
// class-identity field back as a pointer to c's vtable array, indexes to
// slot, loads the bitcast function pointer, and bitcasts it to sig before
// calling — the dynamic-dispatch counterpart to Call's direct path.
func (fn *Func) CallVirtual(obj value.Value, objStruct *types.StructType, slot int, sig *types.FuncType, args []value.Value) value.Value {
	zero := constant.NewInt(types.I32, 0)
	idField := constant.NewInt(types.I32, mangle.ClassIDFieldIndex)
	idAddr := fn.Block.NewGetElementPtr(objStruct, obj, zero, idField)
	idInt := fn.Block.NewLoad(types.I64, idAddr)
	vtable := fn.Block.NewIntToPtr(idInt, types.NewPointer(types.NewPointer(types.I8)))
	slotAddr := fn.Block.NewGetElementPtr(types.NewPointer(types.I8), vtable, constant.NewInt(types.I64, int64(slot)))
	raw := fn.Block.NewLoad(types.NewPointer(types.I8), slotAddr)
	callee := fn.Block.NewBitCast(raw, types.NewPointer(sig))
	return fn.Block.NewCall(callee, args...)
}

// Opaque bitcasts a pointer value to i8*, the uniform element type an
// Array's buffer slots are stored as regardless of what class the element's
// pointer actually points to.
func (fn *Func) Opaque(v value.Value) value.Value {
	return fn.Block.NewBitCast(v, types.NewPointer(types.I8))
}

// Concrete is Opaque's inverse: bitcasts an i8* (an Array slot just loaded
// via ArrayElementAt) back to a pointer to class's struct layout.
func (fn *Func) Concrete(v value.Value, class *ast.ClassDeclaration) value.Value {
	return fn.Block.NewBitCast(v, types.NewPointer(fn.Module.Types.StructType(class)))
}

// CallNative emits a call to one of the natives pkg/native.Catalogue
// declared, looked up by its linker symbol.
func (fn *Func) CallNative(symbol string, args ...value.Value) value.Value {
	return fn.Block.NewCall(fn.Module.Natives[symbol], args...)
}

// sizeOf computes a struct's allocation size in bytes from its field types,
// used to size the ash_alloc call a fresh instance's construction issues.
// It assumes the natural (unpacked) layout llir/llvm's own printer assumes:
// 8 bytes for every pointer or i64 field, 8 for double, 1 for i1/i8 — enough
// precision for this compiler's own allocator, which never interops with a
// foreign struct layout.
func sizeOf(st *types.StructType) int64 {
	var total int64
	for _, f := range st.Fields {
		total += fieldSize(f)
	}
	if total == 0 {
		total = 8
	}
	return total
}

func fieldSize(t types.Type) int64 {
	switch t {
	case types.I1, types.I8:
		return 1
	case types.I32:
		return 4
	case types.I64, types.Double:
		return 8
	default:
		if _, ok := t.(*types.PointerType); ok {
			return 8
		}
		return 8
	}
}
