package ir

import (
	"testing"

	"github.com/llir/llvm/ir/types"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/diag"
	"github.com/ashlang/ashc/pkg/ident"
)

func newClass(name string, core ast.CoreClassID) *ast.ClassDeclaration {
	c := &ast.ClassDeclaration{Block: &ast.Block{}, Core: core}
	c.Id = ident.New(name)
	return c
}

func newMethod(name string, defining *ast.ClassDeclaration) *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: defining, Body: &ast.Block{}}
	fn.Id = ident.New(name)
	return fn
}

func TestNewModuleRegistersEveryNativeDeclaration(t *testing.T) {
	m := NewModule()
	for _, sym := range []string{"ash_alloc", "ash_print_int", "ash_print_float", "ash_print_bool", "ash_print_char", "ash_print_string"} {
		if _, ok := m.Natives[sym]; !ok {
			t.Errorf("expected native %s to be declared", sym)
		}
	}
}

func TestDeclareFunctionMemoizesByDeclarationIdentity(t *testing.T) {
	m := NewModule()
	fn := newMethod("area", newClass("Shape", ast.NotCore))
	first := m.DeclareFunction(fn)
	second := m.DeclareFunction(fn)
	if first != second {
		t.Error("expected two declarations of the same function to return the same *ir.Func")
	}
}

func TestDeclareFunctionUsesVoidReturnForInitializer(t *testing.T) {
	m := NewModule()
	class := newClass("Point", ast.NotCore)
	init := &ast.FunctionDeclaration{Kind: ast.FuncInitializer, DefiningClass: class}
	init.Id = ident.New("Point")
	f := m.DeclareFunction(init)
	if f.Sig.RetType != types.Void {
		t.Errorf("expected an initializer to return void, got %v", f.Sig.RetType)
	}
}

func TestDeclareFunctionMapsParameterCountOntoSignature(t *testing.T) {
	m := NewModule()
	class := newClass("Point", ast.NotCore)
	x := &ast.VariableDeclaration{Kind: ast.VarParameter, ResolvedClass: newClass("Int", ast.CoreInt)}
	x.Id = ident.New("x")
	fn := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: class, Params: []*ast.VariableDeclaration{x}, ReturnType: ident.New("Int"), ReturnClass: newClass("Int", ast.CoreInt)}
	fn.Id = ident.New("getX")
	f := m.DeclareFunction(fn)
	if len(f.Params) != 2 {
		t.Fatalf("expected a leading self parameter plus 1 declared parameter, got %d", len(f.Params))
	}
}

func TestVTableMemoizesByClassIdentity(t *testing.T) {
	m := NewModule()
	class := newClass("Shape", ast.NotCore)
	class.Block.AddDeclaration(newMethod("area", class))
	first := m.VTable(class)
	second := m.VTable(class)
	if first != second {
		t.Error("expected two VTable calls for the same class to return the same global")
	}
}

func TestTwoDistinctClassesGetDistinctVTables(t *testing.T) {
	m := NewModule()
	a := newClass("Shape", ast.NotCore)
	b := newClass("Animal", ast.NotCore)
	if m.VTable(a) == m.VTable(b) {
		t.Error("expected distinct classes to get distinct vtable globals")
	}
}

func TestClassTagDistinguishesGenericVariationsByArgument(t *testing.T) {
	box := newClass("Box", ast.NotCore)
	boxOfInt := newClass("Box", ast.NotCore)
	boxOfInt.Id = ident.NewGeneric("Box", ident.New("Int"))
	if classTag(box) == classTag(boxOfInt) {
		t.Error("expected Box and Box<Int> to tag differently")
	}
}

func TestAssertProducesAnInternalKindError(t *testing.T) {
	err := diag.Assert(false, ident.Position{}, "stack underflow")
	de, ok := err.(*diag.Error)
	if !ok || de.Kind != diag.Internal {
		t.Fatalf("expected an Internal diag.Error, got %#v", err)
	}
}

func TestAssertIsNilWhenConditionHolds(t *testing.T) {
	if err := diag.Assert(true, ident.Position{}, "unreachable"); err != nil {
		t.Errorf("expected a true condition to assert cleanly, got %v", err)
	}
}
