package mono

import "github.com/ashlang/ashc/pkg/ast"

// cloneBlock deep-clones a method body, rewriting every VariableAccess whose
// Declaration is a substituted attribute or parameter to point at its clone
// instead of the template's original. Everything else is copied
// structurally so the clone shares no mutable state with the template.
//
// Coverage is bounded to the node kinds the registry's own generic
// templates (Box<T>, List<T>, Just<T>, Nothing<T>) actually use. An
// unrecognized expression or statement kind is returned unchanged, which is
// only safe as long as it carries no VariableDeclaration pointer that needs
// rewriting — true for every literal and for SelfExpression.
func cloneBlock(b *ast.Block, subst map[*ast.VariableDeclaration]*ast.VariableDeclaration) *ast.Block {
	if b == nil {
		return nil
	}
	nb := &ast.Block{Position: b.Position}
	for _, d := range b.Declarations {
		if v, ok := d.(*ast.VariableDeclaration); ok {
			nv := *v
			nb.AddDeclaration(&nv)
		} else {
			nb.AddDeclaration(d)
		}
	}
	for _, s := range b.Statements {
		nb.AddStatement(cloneStmt(s, subst))
	}
	return nb
}

func cloneStmt(s ast.Statement, subst map[*ast.VariableDeclaration]*ast.VariableDeclaration) ast.Statement {
	switch st := s.(type) {
	case *ast.Assignment:
		ns := *st
		ns.Left = cloneExpr(st.Left, subst)
		ns.Right = cloneExpr(st.Right, subst)
		return &ns
	case *ast.ReturnStatement:
		ns := *st
		ns.Parameter = cloneExpr(st.Parameter, subst)
		return &ns
	case *ast.YieldStatement:
		ns := *st
		ns.Parameter = cloneExpr(st.Parameter, subst)
		return &ns
	case *ast.ConditionalStatement:
		ns := *st
		ns.Condition = cloneExpr(st.Condition, subst)
		ns.Then = cloneBlock(st.Then, subst)
		ns.Else = cloneBlock(st.Else, subst)
		return &ns
	case *ast.WhileLoop:
		ns := *st
		ns.Condition = cloneExpr(st.Condition, subst)
		ns.Body = cloneBlock(st.Body, subst)
		return &ns
	case *ast.WrappedFunctionCall:
		ns := *st
		ns.Call = cloneExpr(st.Call, subst)
		return &ns
	default:
		return s
	}
}

func cloneExpr(e ast.Expression, subst map[*ast.VariableDeclaration]*ast.VariableDeclaration) ast.Expression {
	switch ex := e.(type) {
	case nil:
		return nil
	case *ast.VariableAccess:
		ne := *ex
		if r, ok := subst[ex.Declaration]; ok {
			ne.Declaration = r
		}
		return &ne
	case *ast.MemberAccess:
		ne := *ex
		ne.Left = cloneExpr(ex.Left, subst)
		ne.Right = cloneExpr(ex.Right, subst)
		return &ne
	case *ast.FunctionCall:
		ne := *ex
		ne.Arguments = make([]ast.Expression, len(ex.Arguments))
		for i, a := range ex.Arguments {
			ne.Arguments[i] = cloneExpr(a, subst)
		}
		return &ne
	case *ast.ArrayLiteral:
		ne := *ex
		ne.Elements = make([]ast.Expression, len(ex.Elements))
		for i, el := range ex.Elements {
			ne.Elements[i] = cloneExpr(el, subst)
		}
		return &ne
	case *ast.TupleLiteral:
		ne := *ex
		ne.Elements = make([]ast.Expression, len(ex.Elements))
		for i, el := range ex.Elements {
			ne.Elements[i] = cloneExpr(el, subst)
		}
		return &ne
	case *ast.ConditionalExpression:
		ne := *ex
		ne.Condition = cloneExpr(ex.Condition, subst)
		ne.Then = cloneExpr(ex.Then, subst)
		ne.Else = cloneExpr(ex.Else, subst)
		return &ne
	case *ast.CastExpression:
		ne := *ex
		ne.Value = cloneExpr(ex.Value, subst)
		return &ne
	case *ast.IsExpression:
		ne := *ex
		ne.Value = cloneExpr(ex.Value, subst)
		return &ne
	default:
		// SelfExpression, ParentExpression, and every literal kind carry no
		// VariableDeclaration reference, so the template node is shared as-is.
		return e
	}
}
