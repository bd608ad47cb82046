package ast

import "github.com/ashlang/ashc/pkg/ident"

// IntegerLiteral is an integer constant; codegen pushes it as an unboxed i64
// constant tagged with the Int class and does not box it.
type IntegerLiteral struct {
	exprBase
	Value int64
}

// FloatLiteral is a floating-point constant.
type FloatLiteral struct {
	exprBase
	Value float64
}

// BoolLiteral is a boolean constant.
type BoolLiteral struct {
	exprBase
	Value bool
}

// CharLiteral is a single-character constant.
type CharLiteral struct {
	exprBase
	Value rune
}

// StringLiteral is a string constant.
type StringLiteral struct {
	exprBase
	Value string
}

// ArrayLiteral evaluates its elements left to right, popping each one right
// after it is evaluated so the slots stay in source order, then builds and
// boxes an array aggregate.
type ArrayLiteral struct {
	exprBase
	Elements []Expression
}

// TupleLiteral evaluates its elements and constructs an instance of the
// synthesized TupleN class matching its arity (pkg/desugar tuple factory).
type TupleLiteral struct {
	exprBase
	Elements []Expression
}

// VariableAccess reads (or, as an l-value, addresses) a variable, parameter,
// attribute, or global. Which of the four cases applies is determined at
// codegen time from Declaration.
type VariableAccess struct {
	exprBase
	Name        *ident.Identifier
	Declaration *VariableDeclaration
}

// MemberAccess is `left.right`; codegen defers all effect to how it visits
// the right operand once left's value is on the stack.
type MemberAccess struct {
	exprBase
	Left  Expression
	Right Expression
}

// SelfExpression pushes the current function's first parameter.
type SelfExpression struct {
	exprBase
}

// ParentExpression is `parent(T)`: a checked upcast of self to a supertype.
type ParentExpression struct {
	exprBase
	SelfType *ClassDeclaration
	ToType   *ident.Identifier
}

// FunctionCall is a call to a resolved function/method/initializer with a
// fixed argument list.
type FunctionCall struct {
	exprBase
	Name        *ident.Identifier
	Arguments   []Expression
	Declaration *FunctionDeclaration
}

// WrappedFunctionCall marks a call used in statement position (its pushed
// value, if any, is discarded). Call is either a bare *FunctionCall (an
// unbound-function call) or a *MemberAccess whose Right is a *FunctionCall
// (a method call dispatched on Left) — codegen unwraps either shape the same
// way it does for a call in expression position.
type WrappedFunctionCall struct {
	stmtBase
	Call Expression
}

// CastExpression is `x as T`: a checked upcast/downcast producing a typed
// pointer.
type CastExpression struct {
	exprBase
	Value Expression
	ToType *ident.Identifier
}

// IsExpression is `x is T`: a class-identity test, boxed to Bool.
type IsExpression struct {
	exprBase
	Value  Expression
	ToType *ident.Identifier
}

// ConditionalExpression is the ternary `cond ? then : else`, lowered by
// codegen to two labeled arms joined by a phi.
type ConditionalExpression struct {
	exprBase
	Condition Expression
	Then      Expression
	Else      Expression
}
