// Package codegen implements the AST-walking visitor that drives pkg/ir's
// emission context: one pass over a resolved *ast.Module that emits every
// class layout, vtable, and function body the module declares, plus the
// monomorphization loop that expands a generic class's recorded Variations
// before any of them emit code. The visitor never constructs llir/llvm
// values directly — every emission goes through a *ir.Func or *ir.Module
// method, which is where the actual IR vocabulary lives.
package codegen

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/diag"
	"github.com/ashlang/ashc/pkg/ir"
	"github.com/ashlang/ashc/pkg/logger"
	"github.com/ashlang/ashc/pkg/runtime"
)

// Generator holds the emission context (pkg/ir.Module) and the fixed
// registry of built-in classes every compilation links against.
type Generator struct {
	Module  *ir.Module
	Runtime *runtime.Registry
}

// New returns a fresh generator with an empty emission context and its own
// independent core-class registry.
func New() *Generator {
	return &Generator{Module: ir.NewModule(), Runtime: runtime.New()}
}

// ctx threads per-function bookkeeping the bare *ir.Func doesn't carry: the
// label targets a break/skip statement resolves its enclosing *ast.WhileLoop
// pointer to.
type ctx struct {
	fn       *ir.Func
	loops    map[*ast.WhileLoop]loopLabels
	handlers []tryHandler
}

type loopLabels struct {
	cond, end *ir.Block
}

// tryHandler is one entry of the enclosing-handler stack generateTry/
// generateRaise thread through a function body — see generateRaise's doc
// comment for the limitation this models around.
type tryHandler struct {
	handle *ast.VariableDeclaration
	block  *ir.Block
}

func newCtx(fn *ir.Func) *ctx {
	return &ctx{fn: fn, loops: make(map[*ast.WhileLoop]loopLabels)}
}

// Generate emits the runtime registry's classes first, then walks every
// top-level declaration in mod in declaration order. Class layouts are built
// lazily by pkg/ir on first reference, so a function declared ahead of a
// class it names as a return or parameter type still finds its layout.
func (g *Generator) Generate(mod *ast.Module) (*ir.Module, error) {
	logger.LogPhase("codegen")
	for _, c := range g.Runtime.Classes() {
		if err := g.generateClass(c); err != nil {
			return nil, err
		}
	}
	for _, d := range mod.Body.Declarations {
		switch decl := d.(type) {
		case *ast.ClassDeclaration:
			if err := g.generateClass(decl); err != nil {
				return nil, err
			}
		case *ast.FunctionDeclaration:
			if err := g.generateFunction(decl); err != nil {
				return nil, err
			}
		}
	}
	logger.LogPhaseComplete("codegen")
	return g.Module, nil
}

// generateClass emits every concrete method and initializer c declares,
// skipping abstract and bodyless ones. A generic template emits nothing
// itself — only its monomorphized Variations carry real layouts and symbols.
// An abstract class is not special-cased: its abstract methods emit no body,
// its other methods and initializers are emitted like any class's, and its
// struct layout and vtable are built lazily by pkg/ir on first reference.
func (g *Generator) generateClass(c *ast.ClassDeclaration) error {
	if c.IsGeneric() {
		for _, v := range c.Variations {
			logger.LogVariation(c.Ident().Name, v.Ident().Name)
			if err := g.generateClass(&v.ClassDeclaration); err != nil {
				return err
			}
		}
		return nil
	}
	if c.IsGenerator {
		return g.generateGeneratorIterator(c)
	}
	for _, d := range c.Block.Declarations {
		fn, ok := d.(*ast.FunctionDeclaration)
		if !ok || fn.Abstract || fn.Body == nil {
			continue
		}
		if err := g.generateFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

// generateFunction emits one non-abstract function, method, or initializer
// body: parameter/self binding into fresh allocas, the body's statements,
// and a trailing safety-net return for a procedure whose body's last
// statement isn't itself a return (an internal-invariant violation for a
// function, since the resolver is expected to guarantee one).
func (g *Generator) generateFunction(decl *ast.FunctionDeclaration) error {
	f := g.Module.DeclareFunction(decl)
	fn := ir.NewFunc(g.Module, f)
	c := newCtx(fn)

	offset := 0
	if decl.DefiningClass != nil && (decl.IsMethod() || decl.IsInitializer()) {
		fn.BindSelf(f.Params[0], decl.DefiningClass)
		offset = 1
	}
	for i, p := range decl.Params {
		fn.StoreLocal(p, f.Params[i+offset])
	}

	if decl.Body != nil {
		if err := g.generateBlock(c, decl.Body); err != nil {
			return err
		}
	}

	if fn.Block.Term == nil {
		if decl.IsProcedure() || decl.IsInitializer() {
			fn.Ret(nil)
		} else {
			return diag.NewInternal(decl.Pos(), "function %s falls off its end without a return", decl.Ident().Name)
		}
	}

	logger.LogIRFunction(f.Name(), len(f.Blocks))
	return nil
}

// generateBlock allocates storage for every local the block declares ahead
// of its statements, matching the source-level rule that a block's
// declarations are all in scope before any of its statements run, then
// walks the statements in order.
func (g *Generator) generateBlock(c *ctx, b *ast.Block) error {
	for _, d := range b.Declarations {
		if v, ok := d.(*ast.VariableDeclaration); ok {
			c.fn.Local(v)
		}
	}
	for _, s := range b.Statements {
		if err := g.generateStmt(c, s); err != nil {
			return err
		}
		if c.fn.Block.Term != nil {
			// A return/break/skip already closed this block; anything the
			// source placed after it is unreachable and desugaring should
			// never have produced it, so stop rather than emit into a
			// terminated block.
			break
		}
	}
	return nil
}
