package desugar

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// WrapperFactory synthesizes the function-wrapper class that gives an
// unbound function or lambda a first-class value representation: a class
// whose single "call" method forwards to the function, an object
// declaration holding an instance of that class, and the assignment that
// constructs it.
type WrapperFactory struct {
	tmp *TmpFactory
}

// NewWrapperFactory ties a wrapper factory to the given temporary-name
// source so synthesized wrapper classes and objects get unique names.
func NewWrapperFactory(tmp *TmpFactory) *WrapperFactory {
	return &WrapperFactory{tmp: tmp}
}

// Generate builds the wrapper class/object/assignment triad for fn and
// records them on fn itself, so later builder stages (and codegen) can find
// them via fn.WrapperClass / fn.WrapperObject / fn.WrapperAssignment.
func (w *WrapperFactory) Generate(fn *ast.FunctionDeclaration) {
	pos := fn.Pos()
	className := w.tmp.NextNamed("Wrapper")

	block := &ast.Block{Position: pos}
	class := &ast.ClassDeclaration{Block: block, IsFunctionWrapper: true}
	class.Position = pos
	class.Id = className

	callMethod := &ast.FunctionDeclaration{
		Kind:          ast.FuncMethod,
		DefiningClass: class,
		ReturnType:    fn.ReturnType,
		ReturnClass:   fn.ReturnClass,
	}
	callMethod.Position = pos
	callMethod.Id = ident.New("call")
	callMethod.Params = cloneParams(fn.Params)

	call := &ast.FunctionCall{
		Name:        fn.Ident(),
		Declaration: fn,
	}
	for _, p := range callMethod.Params {
		call.Arguments = append(call.Arguments, &ast.VariableAccess{Name: p.Ident(), Declaration: p})
	}

	body := &ast.Block{Position: pos}
	if fn.IsFunction() {
		body.AddStatement(&ast.ReturnStatement{Parameter: call})
	} else {
		body.AddStatement(&ast.WrappedFunctionCall{Call: call})
		body.AddStatement(&ast.ReturnStatement{})
	}
	callMethod.Body = body
	block.AddDeclaration(callMethod)

	wrapperObj := &ast.VariableDeclaration{Type: className, Kind: ast.VarVariable}
	wrapperObj.Position = pos
	wrapperObj.Id = w.tmp.NextNamed("wrapperObj")

	ctorCall := &ast.FunctionCall{Name: className}
	assign := &ast.Assignment{
		Left:  &ast.VariableAccess{Name: wrapperObj.Ident(), Declaration: wrapperObj},
		Right: ctorCall,
	}

	fn.WrapperClass = class
	fn.WrapperObject = wrapperObj
	fn.WrapperAssignment = assign
}

func cloneParams(params []*ast.VariableDeclaration) []*ast.VariableDeclaration {
	out := make([]*ast.VariableDeclaration, len(params))
	for i, p := range params {
		np := &ast.VariableDeclaration{Type: p.Type, ResolvedClass: p.ResolvedClass, Kind: ast.VarParameter}
		np.Position = p.Pos()
		np.Id = p.Ident()
		out[i] = np
	}
	return out
}
