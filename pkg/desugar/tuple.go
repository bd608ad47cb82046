package desugar

import (
	"fmt"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// TupleFactory synthesizes and memoizes the fixed-arity TupleN classes the
// builder needs whenever surface syntax mentions a tuple type or literal
// (e.g. `(Int,Int)` or `(1,2)`). One TupleN class is shared by every tuple
// literal/type of that arity in a compilation.
type TupleFactory struct {
	made map[int]*ast.ClassDeclaration
}

// NewTupleFactory returns an empty, independent tuple-class cache.
func NewTupleFactory() *TupleFactory {
	return &TupleFactory{made: make(map[int]*ast.ClassDeclaration)}
}

// TupleTypeName is the identifier name used for the N-ary tuple class.
func TupleTypeName(arity int) string {
	return fmt.Sprintf("Tuple%d", arity)
}

// ClassFor returns the (possibly newly synthesized) TupleN class for the
// given arity, memoized across calls on this factory.
func (f *TupleFactory) ClassFor(arity int) *ast.ClassDeclaration {
	if c, ok := f.made[arity]; ok {
		return c
	}
	c := buildTupleClass(arity)
	f.made[arity] = c
	return c
}

// CheckTupleType registers the TupleN class implied by id if id names one
// (i.e. id.Name matches "TupleN"), so the class exists in the current
// compilation's declaration set even if no literal of that arity is ever
// constructed — only a variable of that tuple type declared.
func (f *TupleFactory) CheckTupleType(id *ident.Identifier) {
	if id == nil {
		return
	}
	var arity int
	if n, err := fmt.Sscanf(id.Name, "Tuple%d", &arity); err != nil || n != 1 {
		return
	}
	f.ClassFor(arity)
}

func buildTupleClass(arity int) *ast.ClassDeclaration {
	pos := ident.Position{}
	name := TupleTypeName(arity)
	block := &ast.Block{Position: pos}
	class := &ast.ClassDeclaration{Block: block}
	class.Position = pos
	class.Id = ident.New(name)

	generics := make([]*ast.AbstractGenericType, arity)
	params := make([]*ast.VariableDeclaration, arity)
	for i := 0; i < arity; i++ {
		typeParam := ident.New(fmt.Sprintf("T%d", i))
		generics[i] = &ast.AbstractGenericType{Owner: class, Position: pos, Id: typeParam}

		attr := &ast.VariableDeclaration{
			Type:           typeParam,
			Kind:           ast.VarAttribute,
			AttributeIndex: i,
		}
		attr.Position = pos
		attr.Id = ident.New(fmt.Sprintf("item%d", i))
		block.AddDeclaration(attr)

		param := &ast.VariableDeclaration{Type: typeParam, Kind: ast.VarParameter}
		param.Position = pos
		param.Id = ident.New(fmt.Sprintf("v%d", i))
		params[i] = param
	}
	class.Generics = generics

	init := &ast.FunctionDeclaration{
		Params:             params,
		Kind:               ast.FuncInitializer,
		DefaultInitializer: arity == 0,
		DefiningClass:      class,
	}
	init.Position = pos
	init.Id = ident.New("initializer")
	initBody := &ast.Block{Position: pos}
	for i := 0; i < arity; i++ {
		lhs := &ast.MemberAccess{
			Left: &ast.SelfExpression{},
			Right: &ast.VariableAccess{
				Name:        ident.New(fmt.Sprintf("item%d", i)),
				Declaration: block.Declarations[i].(*ast.VariableDeclaration),
			},
		}
		rhs := &ast.VariableAccess{Name: params[i].Ident(), Declaration: params[i]}
		initBody.AddStatement(&ast.Assignment{Left: lhs, Right: rhs})
	}
	initBody.AddStatement(&ast.ReturnStatement{})
	init.Body = initBody
	block.AddDeclaration(init)

	return class
}
