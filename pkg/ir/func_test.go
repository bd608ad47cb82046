package ir

import (
	"testing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

func newFunc(t *testing.T) *Func {
	t.Helper()
	m := NewModule()
	class := newClass("Sample", ast.NotCore)
	decl := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: class}
	decl.Id = ident.New("run")
	f := m.DeclareFunction(decl)
	return NewFunc(m, f)
}

func TestPushPopRoundTrips(t *testing.T) {
	fn := newFunc(t)
	want := StackValue{Value: constant.NewInt(types.I64, 7)}
	fn.Push(want)
	got, err := fn.Pop(ident.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value != want.Value {
		t.Errorf("expected to pop back the pushed value")
	}
}

func TestPopOnEmptyStackReturnsInternalError(t *testing.T) {
	fn := newFunc(t)
	_, err := fn.Pop(ident.Position{})
	if err == nil {
		t.Fatal("expected popping an empty stack to error")
	}
}

func TestDepthTracksPushesAndPops(t *testing.T) {
	fn := newFunc(t)
	if fn.Depth() != 0 {
		t.Fatalf("expected a fresh Func to start with depth 0, got %d", fn.Depth())
	}
	fn.Push(StackValue{Value: constant.NewInt(types.I64, 1)})
	fn.Push(StackValue{Value: constant.NewInt(types.I64, 2)})
	if fn.Depth() != 2 {
		t.Fatalf("expected depth 2 after two pushes, got %d", fn.Depth())
	}
	if _, err := fn.Pop(ident.Position{}); err != nil {
		t.Fatal(err)
	}
	if fn.Depth() != 1 {
		t.Errorf("expected depth 1 after one pop, got %d", fn.Depth())
	}
}

func TestLocalMemoizesTheSameAllocaAcrossReferences(t *testing.T) {
	fn := newFunc(t)
	v := &ast.VariableDeclaration{Kind: ast.VarVariable, ResolvedClass: newClass("Int", ast.CoreInt)}
	v.Id = ident.New("x")
	first := fn.Local(v)
	second := fn.Local(v)
	if first != second {
		t.Error("expected two Local calls for the same declaration to return the same address")
	}
}

func TestStoreLocalThenLoadLocalRoundTrips(t *testing.T) {
	fn := newFunc(t)
	v := &ast.VariableDeclaration{Kind: ast.VarVariable, ResolvedClass: newClass("Int", ast.CoreInt)}
	v.Id = ident.New("x")
	fn.StoreLocal(v, constant.NewInt(types.I64, 42))
	loaded := fn.LoadLocal(v)
	if loaded == nil {
		t.Fatal("expected a non-nil loaded value")
	}
}

func TestLabelProducesDistinctNamesAcrossCalls(t *testing.T) {
	fn := newFunc(t)
	a := fn.Label("while")
	b := fn.Label("while")
	if a == b {
		t.Errorf("expected successive labels to differ, got %q twice", a)
	}
}

func TestSizeOfAccountsForEveryField(t *testing.T) {
	st := &types.StructType{Fields: []types.Type{types.I64, types.Double, types.I1}}
	if got := sizeOf(st); got != 17 {
		t.Errorf("expected i64(8) + double(8) + i1(1) = 17 bytes, got %d", got)
	}
}

func TestSizeOfNeverReturnsZero(t *testing.T) {
	st := &types.StructType{}
	if got := sizeOf(st); got == 0 {
		t.Error("expected a struct with no fields to still size to a nonzero allocation")
	}
}

func TestNewStampsClassIdentity(t *testing.T) {
	fn := newFunc(t)
	class := newClass("Sample", ast.NotCore)
	obj := fn.New(class)
	if obj == nil {
		t.Fatal("expected New to return a non-nil pointer value")
	}
	var _ value.Value = obj
}
