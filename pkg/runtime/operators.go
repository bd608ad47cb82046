package runtime

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// addOperators declares the handful of operator methods core classes need
// (`a == b`, `a + b`, `s.contains(sub)`) with no Body at all. A core scalar's
// self is the raw unboxed value itself, not a struct pointer, so these can't
// be written against the AST the way Box<T>/List<T>'s methods are — there is
// no binary-operator expression node to bottom out on. The code generator
// recognizes a non-abstract method with a nil Body on one of these classes
// and emits the operation directly rather than looking for a declared
// function to call; DESIGN.md records this as the operator-intrinsic
// boundary.
func addOperators(intClass, floatClass, boolClass, stringClass *ast.ClassDeclaration) {
	declareOperator(intClass, "_eq_", intClass, boolClass)
	declareOperator(intClass, "_add_", intClass, intClass)
	declareOperator(floatClass, "_eq_", floatClass, boolClass)
	declareOperator(floatClass, "_add_", floatClass, floatClass)
	declareOperator(stringClass, "_contains_", stringClass, boolClass)
}

func declareOperator(owner *ast.ClassDeclaration, name string, argClass, retClass *ast.ClassDeclaration) {
	param := &ast.VariableDeclaration{Type: argClass.Ident(), ResolvedClass: argClass, Kind: ast.VarParameter}
	param.Id = ident.New("other")
	fn := &ast.FunctionDeclaration{
		Kind:          ast.FuncMethod,
		DefiningClass: owner,
		ReturnType:    retClass.Ident(),
		ReturnClass:   retClass,
		Params:        []*ast.VariableDeclaration{param},
	}
	fn.Id = ident.New(name)
	owner.Block.AddDeclaration(fn)
}
