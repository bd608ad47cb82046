// Package builder implements the AST-construction front end: it walks a
// resolved parse tree and produces the pkg/ast catalogue, desugaring surface
// constructs via pkg/desugar's factories as it goes.
package builder

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/desugar"
	"github.com/ashlang/ashc/pkg/ident"
)

// Context threads every piece of state a traversal needs explicitly, rather
// than through ambient global stacks, so tests can run multiple independent
// builders without cross-talk. One Context serves exactly one Module; each
// one owns its own temp/tuple/wrapper/generator factories.
type Context struct {
	Tmp        *desugar.TmpFactory
	Tuples     *desugar.TupleFactory
	Wrappers   *desugar.WrapperFactory
	Generators *desugar.GeneratorFactory

	blocks              []*ast.Block
	generatorReturnType []*ident.Identifier
	yieldCounter        []int
	loops               []*ast.WhileLoop
	classes             []*ast.ClassDeclaration
	variableKind        []ast.VariableKind
}

// NewContext returns a fresh, independent builder context.
func NewContext() *Context {
	tmp := desugar.NewTmpFactory()
	return &Context{
		Tmp:                 tmp,
		Tuples:              desugar.NewTupleFactory(),
		Wrappers:            desugar.NewWrapperFactory(tmp),
		Generators:          desugar.NewGeneratorFactory(tmp),
		generatorReturnType: []*ident.Identifier{nil},
		variableKind:        []ast.VariableKind{ast.VarVariable},
	}
}

// PushBlock/PopBlock/CurrentBlock manage the block a declaration or
// statement being built should attach to.

func (c *Context) PushBlock(b *ast.Block) { c.blocks = append(c.blocks, b) }

func (c *Context) PopBlock() {
	c.blocks = c.blocks[:len(c.blocks)-1]
}

func (c *Context) CurrentBlock() *ast.Block {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// PushGenerator/PopGenerator/InGenerator/GeneratorReturnType manage the
// generator-element-type stack.

func (c *Context) PushGenerator(elementType *ident.Identifier) {
	c.generatorReturnType = append(c.generatorReturnType, elementType)
	c.yieldCounter = append(c.yieldCounter, 0)
}

func (c *Context) PopGenerator() {
	c.generatorReturnType = c.generatorReturnType[:len(c.generatorReturnType)-1]
	c.yieldCounter = c.yieldCounter[:len(c.yieldCounter)-1]
}

func (c *Context) InGenerator() bool {
	return c.generatorReturnType[len(c.generatorReturnType)-1] != nil
}

func (c *Context) GeneratorReturnType() *ident.Identifier {
	return c.generatorReturnType[len(c.generatorReturnType)-1]
}

// NextYieldIndex returns the next zero-based resume-label index for a yield
// statement in the innermost generator being built, then advances it.
func (c *Context) NextYieldIndex() int {
	top := len(c.yieldCounter) - 1
	idx := c.yieldCounter[top]
	c.yieldCounter[top] = idx + 1
	return idx
}

// PushLoop/PopLoop/CurrentLoop track the innermost enclosing loop so break
// and skip statements can bind to it without a separate resolver pass.

func (c *Context) PushLoop(w *ast.WhileLoop) { c.loops = append(c.loops, w) }

func (c *Context) PopLoop() { c.loops = c.loops[:len(c.loops)-1] }

func (c *Context) CurrentLoop() *ast.WhileLoop {
	if len(c.loops) == 0 {
		return nil
	}
	return c.loops[len(c.loops)-1]
}

// PushClass/PopClass/CurrentClass track the innermost enclosing class, used
// to resolve `self`'s static type and to attach synthesized methods.

func (c *Context) PushClass(cl *ast.ClassDeclaration) { c.classes = append(c.classes, cl) }

func (c *Context) PopClass() { c.classes = c.classes[:len(c.classes)-1] }

func (c *Context) CurrentClass() *ast.ClassDeclaration {
	if len(c.classes) == 0 {
		return nil
	}
	return c.classes[len(c.classes)-1]
}

// PushVariableKind/PopVariableKind/CurrentVariableKind track whether a
// variable declaration being built right now denotes a local, a parameter,
// or an attribute.

func (c *Context) PushVariableKind(k ast.VariableKind) { c.variableKind = append(c.variableKind, k) }

func (c *Context) PopVariableKind() { c.variableKind = c.variableKind[:len(c.variableKind)-1] }

func (c *Context) CurrentVariableKind() ast.VariableKind {
	return c.variableKind[len(c.variableKind)-1]
}
