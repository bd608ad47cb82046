package mono

import (
	"testing"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/runtime"
)

func TestVariationGivesBoxIntAndBoxStringDistinctAttributeClasses(t *testing.T) {
	rt := runtime.New()

	boxInt := Variation(rt.Box, rt.Int, rt.Lookup)
	boxString := Variation(rt.Box, rt.String, rt.Lookup)

	if boxInt == boxString {
		t.Fatalf("Box<Int> and Box<String> must be distinct variations")
	}

	attrInt := boxInt.ClassDeclaration.Attributes()[0]
	attrString := boxString.ClassDeclaration.Attributes()[0]
	if attrInt.ResolvedClass != rt.Int {
		t.Fatalf("Box<Int>.value resolved to %v, want Int", attrInt.ResolvedClass)
	}
	if attrString.ResolvedClass != rt.String {
		t.Fatalf("Box<String>.value resolved to %v, want String", attrString.ResolvedClass)
	}
}

func TestVariationMemoizesByArgument(t *testing.T) {
	rt := runtime.New()

	a := Variation(rt.Box, rt.Int, rt.Lookup)
	b := Variation(rt.Box, rt.Int, rt.Lookup)
	if a != b {
		t.Fatalf("requesting Box<Int> twice must return the same variation")
	}
	if len(rt.Box.Variations) != 1 {
		t.Fatalf("memoized request must not append a second variation, got %d", len(rt.Box.Variations))
	}
}

func TestVariationGivesEachMethodItsOwnParamClone(t *testing.T) {
	rt := runtime.New()

	boxInt := Variation(rt.Box, rt.Int, rt.Lookup)
	boxString := Variation(rt.Box, rt.String, rt.Lookup)

	var setInt, setString *ast.FunctionDeclaration
	for _, m := range boxInt.ClassDeclaration.Methods() {
		if m.Ident().Name == "set" {
			setInt = m
		}
	}
	for _, m := range boxString.ClassDeclaration.Methods() {
		if m.Ident().Name == "set" {
			setString = m
		}
	}
	if setInt == nil || setString == nil {
		t.Fatalf("expected a set() method on both variations")
	}
	if setInt.Params[0].ResolvedClass != rt.Int {
		t.Fatalf("Box<Int>.set(v) param resolved to %v, want Int", setInt.Params[0].ResolvedClass)
	}
	if setString.Params[0].ResolvedClass != rt.String {
		t.Fatalf("Box<String>.set(v) param resolved to %v, want String", setString.Params[0].ResolvedClass)
	}
	if setInt.Params[0] == setString.Params[0] {
		t.Fatalf("the two variations must not share a parameter declaration")
	}
}

func TestVariationBodyReferencesItsOwnClonedAttribute(t *testing.T) {
	rt := runtime.New()
	boxInt := Variation(rt.Box, rt.Int, rt.Lookup)

	attr := boxInt.ClassDeclaration.Attributes()[0]
	var get *ast.FunctionDeclaration
	for _, m := range boxInt.ClassDeclaration.Methods() {
		if m.Ident().Name == "get" {
			get = m
		}
	}
	if get == nil {
		t.Fatalf("expected a get() method")
	}
	ret, ok := get.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected get()'s body to be a single return, got %T", get.Body.Statements[0])
	}
	member, ok := ret.Parameter.(*ast.MemberAccess)
	if !ok {
		t.Fatalf("expected return self.value, got %T", ret.Parameter)
	}
	access, ok := member.Right.(*ast.VariableAccess)
	if !ok || access.Declaration != attr {
		t.Fatalf("get() must read the variation's own cloned attribute, not the template's")
	}
}

func TestVariationListFieldsResolveAgainstFixedCoreClasses(t *testing.T) {
	rt := runtime.New()
	listInt := Variation(rt.List, rt.Int, rt.Lookup)

	attrs := listInt.ClassDeclaration.Attributes()
	if attrs[0].ResolvedClass != rt.Array {
		t.Fatalf("List<Int>.items must resolve to Array regardless of the argument, got %v", attrs[0].ResolvedClass)
	}
	if attrs[1].ResolvedClass != rt.Int {
		t.Fatalf("List<Int>.count must resolve to Int regardless of the argument, got %v", attrs[1].ResolvedClass)
	}
}

func TestVariationOnNonGenericTemplatePanics(t *testing.T) {
	rt := runtime.New()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic when monomorphizing a non-generic class")
		}
	}()
	Variation(rt.Int, rt.String, rt.Lookup)
}
