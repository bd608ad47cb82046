package builder

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
)

// buildListComprehension lowers `[target for a in sa if fa for b in sb if fb]`
// into a nested-generator class whose body is the equivalent nested for/if
// statements around a single `yield target`, then returns a call
// constructing an instance of it. Generators/filters/target are resolved
// in the surrounding scope, exactly as a plain expression would be, before
// any of the comprehension's own blocks are pushed.
func (b *Builder) buildListComprehension(v RawListComprehension) ast.Expression {
	sources := make([]ast.Expression, len(v.Generators))
	filters := make([]ast.Expression, len(v.Generators))
	for i, g := range v.Generators {
		sources[i] = b.BuildExpr(g.Source)
		if g.Filter != nil {
			filters[i] = b.BuildExpr(g.Filter)
		}
	}
	elemType := b.convertType(v.ElementType)
	target := b.BuildExpr(v.Target)

	innermost := &ast.Block{}
	b.Ctx.PushBlock(innermost)
	b.Ctx.PushGenerator(elemType)
	y := b.yieldValue(target)
	innermost.AddStatement(y)
	b.Ctx.PopGenerator()
	b.Ctx.PopBlock()

	currentBlock := innermost
	for i := len(v.Generators) - 1; i >= 0; i-- {
		gen := v.Generators[i]
		if filters[i] != nil {
			ifBlock := &ast.Block{}
			ifBlock.AddStatement(&ast.ConditionalStatement{Condition: filters[i], Then: currentBlock, Else: &ast.Block{}})
			currentBlock = ifBlock
		}

		iterableExpr := &ast.MemberAccess{Left: sources[i], Right: &ast.FunctionCall{Name: ident.New("getIterator")}}
		forBlock := &ast.Block{}
		b.Ctx.PushBlock(forBlock)
		loop := &ast.WhileLoop{Condition: &ast.BoolLiteral{Value: true}}
		b.forLoopCore(loop, gen.Var, iterableExpr, currentBlock)
		forBlock.AddStatement(loop)
		b.Ctx.PopBlock()
		currentBlock = forBlock
	}

	className := b.Ctx.Tmp.NextNamed("Comprehension")
	result := b.Ctx.Generators.Generate(ident.Position{}, className, elemType, nil, nil, currentBlock, []*ast.YieldStatement{y})

	b.Ctx.CurrentBlock().AddDeclaration(result.Iterator)
	b.Ctx.CurrentBlock().AddDeclaration(result.Generator)

	return &ast.FunctionCall{Name: result.Generator.Ident()}
}

// yieldValue builds a `return Just<T>(expr)` yield statement for the
// innermost generator on the context's stack, for callers (like the list
// comprehension lowering) that already hold a built Expression rather than a
// RawExpr.
func (b *Builder) yieldValue(expr ast.Expression) *ast.YieldStatement {
	just := &ast.FunctionCall{
		Name:      ident.NewGeneric("Just", b.Ctx.GeneratorReturnType()),
		Arguments: []ast.Expression{expr},
	}
	y := &ast.YieldStatement{YieldIndex: b.Ctx.NextYieldIndex()}
	y.Parameter = just
	return y
}
