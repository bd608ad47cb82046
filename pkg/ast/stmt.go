package ast

// Assignment evaluates its right operand, then its left operand, and stores
// right into left's address. Codegen must evaluate in that order so the
// right side never observes mutation performed while addressing the left
// side.
type Assignment struct {
	stmtBase
	Left  Expression
	Right Expression
}

// UnpackAssignment destructures Right into each expression in Left,
// left-to-right, via an auxiliary synthesized temporary.
type UnpackAssignment struct {
	stmtBase
	Left    []Expression
	Right   Expression
	TmpDecl *VariableDeclaration
}

// ConditionalStatement is `if cond: thenBlock else: elseBlock`. elif chains
// are desugared by the builder into nested ConditionalStatements, so this is
// the only conditional-statement shape codegen ever sees.
type ConditionalStatement struct {
	stmtBase
	Condition Expression
	Then      *Block
	Else      *Block
}

// WhileLoop is the sole looping primitive after desugaring; `for`-in loops
// are lowered to a WhileLoop by pkg/builder before codegen ever sees them.
type WhileLoop struct {
	stmtBase
	Condition Expression
	Body      *Block
}

// BreakStatement jumps to the enclosing loop's `.end` label.
type BreakStatement struct {
	stmtBase
	Loop *WhileLoop
}

// SkipStatement jumps to the enclosing loop's `.condition` label (the
// language's `continue`).
type SkipStatement struct {
	stmtBase
	Loop *WhileLoop
}

// ReturnStatement returns from the enclosing function, optionally with a
// value; Parameter is nil for a bare `return`.
type ReturnStatement struct {
	stmtBase
	Parameter Expression
}

// YieldStatement is a ReturnStatement that also records the stable
// zero-based resume-label index the builder assigned it when it desugared
// `yield e` into `return Just<T>(e)`.
type YieldStatement struct {
	ReturnStatement
	YieldIndex int
}

// TryStatement is `try: tryBlock handle e: handleBlock`.
type TryStatement struct {
	stmtBase
	Handle    *VariableDeclaration
	TryBlock  *Block
	HandleBlock *Block
}

// RaiseStatement raises an exception value, or re-raises the current one if
// Value is nil.
type RaiseStatement struct {
	stmtBase
	Value Expression
}
