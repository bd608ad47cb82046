package ir

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ashlang/ashc/pkg/ast"
)

// NewBlock opens and returns a fresh basic block in the current function
// without switching the insertion point to it — callers that need to wire
// up a branch before moving in (a loop's condition block, referenced by
// both the entry branch and the loop body's back-edge) create every block
// up front, then call Enter once each is ready to receive instructions.
func (fn *Func) NewBlock(name string) *ir.Block { return fn.F.NewBlock(name) }

// Enter switches the insertion point to b; every subsequent NewXxx call on
// fn's helpers emits into b until the next Enter.
func (fn *Func) Enter(b *ir.Block) { fn.Block = b }

// Br emits an unconditional branch to target, terminating the current
// block.
func (fn *Func) Br(target *ir.Block) { fn.Block.NewBr(target) }

// CondBr emits a conditional branch on an i1 cond, terminating the current
// block.
func (fn *Func) CondBr(cond value.Value, whenTrue, whenFalse *ir.Block) {
	fn.Block.NewCondBr(cond, whenTrue, whenFalse)
}

// Ret emits a return terminator. A nil x emits a bare ret void, the
// terminator an initializer or a procedure's implicit fall-through return
// uses.
func (fn *Func) Ret(x value.Value) {
	if x == nil {
		fn.Block.NewRet(nil)
		return
	}
	fn.Block.NewRet(x)
}

// Phi emits a phi node merging one value per predecessor block, the
// lowering a ternary expression's two arms converge through: each arm
// computes its own value in its own block, then both branch to a join
// block whose first instruction is this phi.
func (fn *Func) Phi(incoming map[*ir.Block]value.Value) *ir.InstPhi {
	incs := make([]*ir.Incoming, 0, len(incoming))
	for pred, val := range incoming {
		incs = append(incs, ir.NewIncoming(val, pred))
	}
	return fn.Block.NewPhi(incs...)
}

// PhiValue is Phi's class-carrying counterpart: it merges one StackValue per
// predecessor block and returns the result tagged with cls, so a
// conditional expression's join point never has to re-derive the merged
// value's class from either arm.
func (fn *Func) PhiValue(cls *ast.ClassDeclaration, incoming map[*ir.Block]StackValue) StackValue {
	raw := make(map[*ir.Block]value.Value, len(incoming))
	for pred, sv := range incoming {
		raw[pred] = sv.Value
	}
	return StackValue{Value: fn.Phi(raw), Class: cls}
}

// ResumePoint is one suspension point in a generator's state machine: the
// block code resumes into, and the constant token identifying it in the
// generator object's jump field.
type ResumePoint struct {
	Block *ir.Block
	Token constant.Constant
}

// BlockAddressToken returns the constant token a resume point's jump field
// stores: the address of b within fn's own function, usable only with an
// indirect branch inside that same function (llir/llvm's blockaddress
// constant is meaningless across function boundaries, matching the
// underlying IR's own restriction).
func (fn *Func) BlockAddressToken(b *ir.Block) constant.Constant {
	return constant.NewBlockAddress(fn.F, b)
}

// IndirectBr emits an indirect branch through addr (a value produced by
// loading a generator's jump field) to one of targets — the generator
// resume dispatch every call to getNext() on a generator's iterator performs
// after its first.
func (fn *Func) IndirectBr(addr value.Value, targets []*ir.Block) {
	fn.Block.NewIndirectBr(addr, targets...)
}

// StoreJump records resume point token into the generator instance's jump
// field (the attribute pkg/desugar's JumpFieldName/JumpFieldType sentinel
// identifies), so the next call to the iterator's getNext() resumes exactly
// where this one left off.
func (fn *Func) StoreJump(addr value.Value, token constant.Constant) {
	fn.Block.NewStore(token, addr)
}

// LoadJump reads the generator instance's jump field back as an i8* ready
// for IndirectBr.
func (fn *Func) LoadJump(addr value.Value) value.Value {
	return fn.Block.NewLoad(types.NewPointer(types.I8), addr)
}

// NullPtr is the i8* null constant a fresh generator's jump field holds
// before its first suspension, letting getNext's entry block tell a first
// call from a resumed one.
func (fn *Func) NullPtr() value.Value {
	return constant.NewNull(types.NewPointer(types.I8))
}

// ClearJump resets a generator instance's jump field to NullPtr, the state
// its default initializer leaves it in.
func (fn *Func) ClearJump(addr value.Value) {
	fn.Block.NewStore(fn.NullPtr(), addr)
}
