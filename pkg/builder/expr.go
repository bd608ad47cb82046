package builder

import (
	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/desugar"
	"github.com/ashlang/ashc/pkg/ident"
)

// BuildExpr lowers one surface expression, applying the operator-to-method,
// lambda, and list-comprehension desugarings inline.
func (b *Builder) BuildExpr(e RawExpr) ast.Expression {
	switch v := e.(type) {
	case RawIntLit:
		return &ast.IntegerLiteral{Value: v.Value}
	case RawFloatLit:
		return &ast.FloatLiteral{Value: v.Value}
	case RawBoolLit:
		return &ast.BoolLiteral{Value: v.Value}
	case RawCharLit:
		return &ast.CharLiteral{Value: v.Value}
	case RawStringLit:
		return &ast.StringLiteral{Value: v.Value}
	case RawArrayLit:
		return &ast.ArrayLiteral{Elements: b.buildExprList(v.Elements)}
	case RawTupleLit:
		elems := b.buildExprList(v.Elements)
		b.Ctx.Tuples.ClassFor(len(elems))
		return &ast.TupleLiteral{Elements: elems}
	case RawRangeLit:
		return &ast.FunctionCall{Name: ident.New("Range"), Arguments: b.buildExprList(v.Args)}
	case RawIdentifierExpr:
		return &ast.VariableAccess{Name: ident.New(v.Name)}
	case RawSelfExpr:
		return &ast.SelfExpression{}
	case RawParentExpr:
		return &ast.ParentExpression{ToType: b.convertType(v.ToType)}
	case RawTernary:
		return &ast.ConditionalExpression{
			Condition: b.BuildExpr(v.Cond),
			Then:      b.BuildExpr(v.Then),
			Else:      b.BuildExpr(v.Else),
		}
	case RawMemberAccess:
		return &ast.MemberAccess{Left: b.BuildExpr(v.Left), Right: b.BuildExpr(v.Right)}
	case RawUnary:
		return b.unaryExpression(v)
	case RawBinary:
		return b.binaryExpression(v)
	case RawCast:
		return &ast.CastExpression{Value: b.BuildExpr(v.Value), ToType: b.convertType(v.ToType)}
	case RawIs:
		return &ast.IsExpression{Value: b.BuildExpr(v.Value), ToType: ident.New(v.ToType)}
	case RawCall:
		return b.buildCall(v)
	case RawLambda:
		return b.buildLambda(v)
	case RawListComprehension:
		return b.buildListComprehension(v)
	default:
		return nil
	}
}

func (b *Builder) buildExprList(es []RawExpr) []ast.Expression {
	out := make([]ast.Expression, len(es))
	for i, e := range es {
		out[i] = b.BuildExpr(e)
	}
	return out
}

// buildCall lowers a call to its resolved-name form, registering any tuple
// arity a constructor call implies.
func (b *Builder) buildCall(v RawCall) ast.Expression {
	name := b.convertType(v.Callee)
	return &ast.FunctionCall{Name: name, Arguments: b.buildExprList(v.Arguments)}
}

// unaryExpression lowers `-x`/`not x` to `x._neg_()` / `x._not_()`.
func (b *Builder) unaryExpression(v RawUnary) ast.Expression {
	self := b.BuildExpr(v.Operand)
	method, ok := desugar.UnaryOperatorMethod[v.Operator]
	if !ok {
		method = v.Operator
	}
	call := &ast.FunctionCall{Name: ident.New(method)}
	return &ast.MemberAccess{Left: self, Right: call}
}

// binaryExpression lowers `a OP b` to a method call, inverting operand order
// for `in`.
func (b *Builder) binaryExpression(v RawBinary) ast.Expression {
	method, ok := desugar.BinaryOperatorMethod[v.Operator]
	if !ok {
		method = v.Operator
	}
	if method == desugar.ContainsMethod {
		self := b.BuildExpr(v.Left)
		right := b.BuildExpr(v.Right)
		call := &ast.FunctionCall{Name: ident.New(method), Arguments: []ast.Expression{self}}
		return &ast.MemberAccess{Left: right, Right: call}
	}
	self := b.BuildExpr(v.Left)
	right := b.BuildExpr(v.Right)
	call := &ast.FunctionCall{Name: ident.New(method), Arguments: []ast.Expression{right}}
	return &ast.MemberAccess{Left: self, Right: call}
}
