package builder

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// BuildClass lowers a class declaration, attaching its generic parameters,
// attributes, and methods, and turning each attribute's inline initializer
// into a `self.attr := value` assignment on the class block. A later
// resolution pass is expected to fold these assignments into the default
// initializer's body.
func (b *Builder) BuildClass(c RawClassDecl) *ast.ClassDeclaration {
	block := &ast.Block{}
	class := &ast.ClassDeclaration{Block: block, Abstract: c.Abstract}
	class.Position = c.Position.toIdent()
	class.Id = ident.New(c.Name)

	for _, s := range c.SuperTypes {
		class.SuperClasses = append(class.SuperClasses, b.convertType(s))
	}
	for _, g := range c.Generics {
		class.Generics = append(class.Generics, &ast.AbstractGenericType{Owner: class, Id: ident.New(g)})
	}

	b.Ctx.PushClass(class)
	b.Ctx.PushBlock(block)
	b.Ctx.PushVariableKind(ast.VarAttribute)

	attrIdx := 0
	for _, a := range c.Attributes {
		attr := &ast.VariableDeclaration{Type: b.convertType(a.Type), Kind: ast.VarAttribute, AttributeIndex: attrIdx}
		attr.Position = a.Position.toIdent()
		attr.Id = ident.New(a.Name)
		attr.SetAccess(accessModifier(a.AccessModifier))
		attrIdx++
		block.AddDeclaration(attr)

		if a.Init != nil {
			block.AddStatement(&ast.Assignment{
				Left:  &ast.MemberAccess{Left: &ast.SelfExpression{}, Right: &ast.VariableAccess{Name: attr.Ident(), Declaration: attr}},
				Right: b.BuildExpr(a.Init),
			})
		}
	}

	for _, m := range c.Methods {
		if m.IsGenerator {
			res := b.BuildGeneratorDecl(m)
			block.AddDeclaration(res.Generator)
			block.AddDeclaration(res.Iterator)
			continue
		}
		fn := b.BuildFunction(m, ast.FuncMethod, class)
		if m.Name == "initializer" {
			fn.Kind = ast.FuncInitializer
			fn.DefaultInitializer = len(fn.Params) == 0
		}
		block.AddDeclaration(fn)
	}

	b.Ctx.PopVariableKind()
	b.Ctx.PopBlock()
	b.Ctx.PopClass()

	return class
}
