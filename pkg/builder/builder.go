package builder

import (
	"fmt"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/ident"
	"github.com/ashlang/ashc/pkg/logger"
)

// Builder lowers one RawModule into an *ast.Module, applying every
// desugaring in turn. Each Builder owns an independent *Context, so
// building two modules concurrently never cross-talks.
type Builder struct {
	Ctx *Context
}

// New returns a Builder ready to build one module.
func New() *Builder {
	return &Builder{Ctx: NewContext()}
}

// convertType turns surface type syntax into a plain identifier, resolving
// tuple- and function-type sugar and registering any tuple arity seen along
// the way.
func (b *Builder) convertType(t RawType) *ident.Identifier {
	var name string
	var params []RawType
	switch {
	case t.IsFunction:
		name = "Function"
		params = t.Params
	case t.Name == "":
		name = fmt.Sprintf("Tuple%d", len(t.Params))
		params = t.Params
	default:
		name = t.Name
		params = t.Params
	}
	generics := make([]*ident.Identifier, len(params))
	for i, p := range params {
		generics[i] = b.convertType(p)
	}
	id := &ident.Identifier{Name: name, Generics: generics}
	b.Ctx.Tuples.CheckTupleType(id)
	return id
}

// BuildModule lowers a full RawModule.
func (b *Builder) BuildModule(m RawModule) *ast.Module {
	logger.LogPhase("build:" + m.Name)
	defer logger.LogPhaseComplete("build:" + m.Name)

	mod := &ast.Module{Native: m.Native}
	mod.Id = ident.New(m.Name)

	body := &ast.Block{}
	b.Ctx.PushBlock(body)
	defer b.Ctx.PopBlock()

	for _, imp := range m.Imports {
		mod.Imports = append(mod.Imports, &ast.Import{Module: ident.New(imp.Module)})
	}

	for _, c := range m.Classes {
		body.AddDeclaration(b.BuildClass(c))
		logger.LogBuild("class", c.Name)
	}

	for _, f := range m.Functions {
		if f.IsGenerator {
			res := b.BuildGeneratorDecl(f)
			body.AddDeclaration(res.Iterator)
			body.AddDeclaration(res.Generator)
			logger.LogBuild("generator", f.Name)
			continue
		}
		fn := b.BuildFunction(f, ast.FuncUnbound, nil)
		body.AddDeclaration(fn)
		logger.LogBuild("function", f.Name)
		if fn.IsWrapped() {
			body.AddDeclaration(fn.WrapperClass)
			body.AddDeclaration(fn.WrapperObject)
			body.AddStatement(fn.WrapperAssignment)
		}
	}

	if len(m.TopLevel) > 0 {
		body.AddDeclaration(b.buildMain(m.TopLevel))
	}

	mod.Body = body
	return mod
}

// buildMain gathers a module's top-level statements into a synthesized
// `main` procedure.
func (b *Builder) buildMain(stmts []RawStmt) *ast.FunctionDeclaration {
	main := &ast.FunctionDeclaration{Kind: ast.FuncUnbound}
	main.Id = ident.New("main")

	block := &ast.Block{}
	b.Ctx.PushBlock(block)
	b.Ctx.PushGenerator(nil)
	for _, s := range stmts {
		b.BuildStmt(s)
	}
	b.Ctx.PopGenerator()
	b.Ctx.PopBlock()

	if len(block.Statements) == 0 || !isReturn(block.Statements[len(block.Statements)-1]) {
		block.AddStatement(&ast.ReturnStatement{})
	}
	main.Body = block
	return main
}

func isReturn(s ast.Statement) bool {
	_, ok := s.(*ast.ReturnStatement)
	return ok
}
