package mangle

import (
	"testing"

	"github.com/llir/llvm/ir/types"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/desugar"
	"github.com/ashlang/ashc/pkg/ident"
)

func newClass(name string) *ast.ClassDeclaration {
	c := &ast.ClassDeclaration{Block: &ast.Block{}}
	c.Id = ident.New(name)
	return c
}

func newFn(name string, class *ast.ClassDeclaration, paramTypes ...*ident.Identifier) *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{DefiningClass: class, Kind: ast.FuncMethod}
	fn.Id = ident.New(name)
	for _, t := range paramTypes {
		p := &ast.VariableDeclaration{Type: t, Kind: ast.VarParameter}
		p.Id = ident.New("p")
		fn.Params = append(fn.Params, p)
	}
	return fn
}

func TestFunctionDistinguishesOverloadsByParameterType(t *testing.T) {
	class := newClass("Ab")
	intInit := newFn("initializer", class, ident.New("Int"))
	floatInit := newFn("initializer", class, ident.New("Float"))

	if Function(intInit) == Function(floatInit) {
		t.Errorf("expected distinct mangled symbols for overloads differing only in parameter type, got %q for both",
			Function(intInit))
	}
}

func TestFunctionDistinguishesMonomorphizedVariations(t *testing.T) {
	boxInt := newClass("Box")
	boxInt.Id = ident.NewGeneric("Box", ident.New("Int"))
	boxString := newClass("Box")
	boxString.Id = ident.NewGeneric("Box", ident.New("String"))

	ctorInt := newFn("initializer", boxInt)
	ctorString := newFn("initializer", boxString)

	if Function(ctorInt) == Function(ctorString) {
		t.Error("expected Box<Int> and Box<String> constructors to mangle to distinct symbols")
	}
}

func TestVariableDistinguishesGlobalFromLocal(t *testing.T) {
	global := &ast.VariableDeclaration{Kind: ast.VarVariable, IsGlobal: true}
	global.Id = ident.New("counter")
	local := &ast.VariableDeclaration{Kind: ast.VarVariable}
	local.Id = ident.New("counter")

	if Variable(global) == Variable(local) {
		t.Error("expected a global and a same-named local to mangle differently")
	}
}

func TestLLVMTypeMapsScalarsUnboxed(t *testing.T) {
	m := NewTypeMapper()
	cases := []struct {
		core ast.CoreClassID
		want Type
	}{
		{ast.CoreInt, types.I64},
		{ast.CoreFloat, types.Double},
		{ast.CoreBool, types.I1},
		{ast.CoreChar, types.I8},
		{ast.CoreVoid, types.Void},
	}
	for _, c := range cases {
		class := &ast.ClassDeclaration{Block: &ast.Block{}, Core: c.core}
		class.Id = ident.New(c.core.String())
		if got := m.LLVMType(class); got != c.want {
			t.Errorf("LLVMType(%s) = %v, want %v", c.core, got, c.want)
		}
	}
}

func TestLLVMTypeMapsOrdinaryClassToPointerToStruct(t *testing.T) {
	m := NewTypeMapper()
	class := newClass("Widget")
	got := m.LLVMType(class)
	ptr, ok := got.(*types.PointerType)
	if !ok {
		t.Fatalf("expected a pointer type, got %T", got)
	}
	if _, ok := ptr.ElemType.(*types.StructType); !ok {
		t.Fatalf("expected pointer-to-struct, got pointer to %T", ptr.ElemType)
	}
}

func TestStructTypeMemoizesByClassIdentity(t *testing.T) {
	m := NewTypeMapper()
	class := newClass("Widget")
	first := m.StructType(class)
	second := m.StructType(class)
	if first != second {
		t.Error("expected the same class to reuse one struct type across calls")
	}
}

func TestStructTypePlacesJumpFieldAsOpaqueAddress(t *testing.T) {
	m := NewTypeMapper()
	iterator := &ast.ClassDeclaration{Block: &ast.Block{}, IsGenerator: true}
	iterator.Id = ident.New("CountIterator")
	jump := &ast.VariableDeclaration{Type: desugar.JumpFieldType, Kind: ast.VarAttribute, AttributeIndex: 0}
	jump.Id = ident.New(desugar.JumpFieldName)
	iterator.Block.AddDeclaration(jump)

	st := m.StructType(iterator)
	if len(st.Fields) != 2 {
		t.Fatalf("expected [classid, jump], got %d fields", len(st.Fields))
	}
	ptr, ok := st.Fields[1].(*types.PointerType)
	if !ok || ptr.ElemType != types.I8 {
		t.Errorf("expected the jump field to be i8*, got %v", st.Fields[1])
	}
}

func TestStructTypeCoreClassReservesPayloadField(t *testing.T) {
	m := NewTypeMapper()
	class := &ast.ClassDeclaration{Block: &ast.Block{}, Core: ast.CoreInt}
	class.Id = ident.New("Int")
	st := m.StructType(class)
	if len(st.Fields) != 2 || st.Fields[1] != types.I64 {
		t.Errorf("expected [classid, i64 payload], got %v", st.Fields)
	}
}
