package runtime

import (
	"testing"

	"github.com/ashlang/ashc/pkg/ast"
)

func TestNewRegistryPopulatesEveryCoreClass(t *testing.T) {
	r := New()
	tests := []struct {
		name  string
		class *ast.ClassDeclaration
		core  ast.CoreClassID
	}{
		{"Int", r.Int, ast.CoreInt},
		{"Float", r.Float, ast.CoreFloat},
		{"Bool", r.Bool, ast.CoreBool},
		{"Char", r.Char, ast.CoreChar},
		{"String", r.String, ast.CoreString},
		{"Array", r.Array, ast.CoreArray},
		{"Object", r.Object, ast.CoreObject},
		{"Void", r.Void, ast.CoreVoid},
		{"BoolBox", r.BoolBox, ast.CoreBoolBox},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.class.IsCore() || tt.class.Core != tt.core {
				t.Errorf("expected %s to be core class %v, got %v", tt.name, tt.core, tt.class.Core)
			}
		})
	}
}

func TestTwoRegistriesDoNotShareClassIdentity(t *testing.T) {
	a, b := New(), New()
	if a.Int == b.Int {
		t.Error("expected two independent registries to build distinct Int class values")
	}
}

func TestJustImplementsHasValueTrue(t *testing.T) {
	r := New()
	var hasValue *ast.FunctionDeclaration
	for _, d := range r.Just.Block.Declarations {
		if fn, ok := d.(*ast.FunctionDeclaration); ok && fn.Ident().Name == "hasValue" {
			hasValue = fn
		}
	}
	if hasValue == nil {
		t.Fatal("expected Just<T> to declare hasValue()")
	}
	ret, ok := hasValue.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected hasValue's body to start with a return, got %T", hasValue.Body.Statements[0])
	}
	lit, ok := ret.Parameter.(*ast.BoolLiteral)
	if !ok || !lit.Value {
		t.Errorf("expected Just.hasValue() to return literal true, got %#v", ret.Parameter)
	}
}

func TestNothingImplementsHasValueFalse(t *testing.T) {
	r := New()
	var hasValue *ast.FunctionDeclaration
	for _, d := range r.Nothing.Block.Declarations {
		if fn, ok := d.(*ast.FunctionDeclaration); ok && fn.Ident().Name == "hasValue" {
			hasValue = fn
		}
	}
	if hasValue == nil {
		t.Fatal("expected Nothing<T> to declare hasValue()")
	}
	ret := hasValue.Body.Statements[0].(*ast.ReturnStatement)
	lit, ok := ret.Parameter.(*ast.BoolLiteral)
	if !ok || lit.Value {
		t.Errorf("expected Nothing.hasValue() to return literal false, got %#v", ret.Parameter)
	}
}

func TestNothingHasAZeroArgumentDefaultInitializer(t *testing.T) {
	r := New()
	init := r.Nothing.DefaultInitializerFn()
	if init == nil {
		t.Fatal("expected Nothing<T> to carry a default initializer")
	}
	if len(init.Params) != 0 {
		t.Errorf("expected Nothing()'s initializer to take no arguments, got %d", len(init.Params))
	}
}

func TestIteratorDeclaresAbstractGetNext(t *testing.T) {
	r := New()
	if !r.Iterator.Abstract {
		t.Fatal("expected Iterator<T> to be abstract")
	}
	var getNext *ast.FunctionDeclaration
	for _, d := range r.Iterator.Block.Declarations {
		if fn, ok := d.(*ast.FunctionDeclaration); ok && fn.Ident().Name == "getNext" {
			getNext = fn
		}
	}
	if getNext == nil || !getNext.Abstract {
		t.Fatal("expected Iterator<T> to declare an abstract getNext()")
	}
}

func TestBoxCarriesOneAttributeAndInitializer(t *testing.T) {
	r := New()
	attrs := r.Box.Attributes()
	if len(attrs) != 1 || attrs[0].AttributeIndex != 0 {
		t.Fatalf("expected Box<T> to carry exactly one attribute at index 0, got %d", len(attrs))
	}
	if r.Box.DefaultInitializerFn() != nil {
		t.Error("expected Box<T>'s one-argument initializer to not be the default initializer")
	}
}

func TestClassesReturnsEveryRegisteredClass(t *testing.T) {
	r := New()
	if got := len(r.Classes()); got != 15 {
		t.Errorf("expected 15 registered classes, got %d", got)
	}
}
