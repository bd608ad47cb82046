package builder

import "github.com/ashlang/ashc/pkg/ident"

// This file documents the minimal parse-tree contract pkg/builder consumes.
// Parsing itself is out of scope — RawModule and friends are the
// already-typed Go values a real parser would hand off after building its
// own concrete syntax tree, shaped closely enough to the grammar this
// compiler's surface language uses that each Build* function below is a
// direct, line-for-line translation of the corresponding grammar rule.

// RawType is surface type syntax before tuple/function-type sugar is
// resolved to a plain identifier.
type RawType struct {
	Name       string // empty for tuple/function-type sugar
	Params     []RawType
	IsFunction bool // `(A,B)->C` sugar; Name is ignored, Params holds A,B,C in order... last is return
}

// RawPosition carries source location; the zero value is synthetic.
type RawPosition struct {
	File   string
	Line   int
	Column int
}

func (p RawPosition) toIdent() ident.Position {
	return ident.Position{File: p.File, Line: p.Line, Column: p.Column}
}

// RawParam is one entry of a parameter list.
type RawParam struct {
	Name string
	Type RawType
}

// RawDefaultParam is one entry of a parameter list carrying a default value.
type RawDefaultParam struct {
	Name    string
	Type    RawType
	Default RawExpr
}

// RawExpr is the closed set of expression productions.
type RawExpr interface{ rawExpr() }

type RawIntLit struct{ Value int64 }
type RawFloatLit struct{ Value float64 }
type RawBoolLit struct{ Value bool }
type RawCharLit struct{ Value rune }
type RawStringLit struct{ Value string }
type RawArrayLit struct{ Elements []RawExpr }
type RawTupleLit struct{ Elements []RawExpr }
type RawRangeLit struct{ Args []RawExpr }
type RawIdentifierExpr struct{ Name string }
type RawSelfExpr struct{}
type RawParentExpr struct{ ToType RawType }
type RawTernary struct{ Cond, Then, Else RawExpr }
type RawMemberAccess struct{ Left, Right RawExpr }
type RawUnary struct {
	Operator string
	Operand  RawExpr
}
type RawBinary struct {
	Operator    string
	Left, Right RawExpr
}
type RawCast struct {
	Value  RawExpr
	ToType RawType
}
type RawIs struct {
	Value  RawExpr
	ToType string
}
type RawCall struct {
	Callee    RawType // Identifier() case: Callee.Name set, Params empty
	Arguments []RawExpr
}
type RawLambda struct {
	Params []RawParam
	Body   RawExpr
}
type RawListComprehension struct {
	Target      RawExpr
	ElementType RawType
	Generators  []RawListGenerator
}
type RawListGenerator struct {
	Var    string
	Source RawExpr
	Filter RawExpr // nil if none
}

func (RawIntLit) rawExpr()            {}
func (RawFloatLit) rawExpr()          {}
func (RawBoolLit) rawExpr()           {}
func (RawCharLit) rawExpr()           {}
func (RawStringLit) rawExpr()         {}
func (RawArrayLit) rawExpr()          {}
func (RawTupleLit) rawExpr()          {}
func (RawRangeLit) rawExpr()          {}
func (RawIdentifierExpr) rawExpr()    {}
func (RawSelfExpr) rawExpr()          {}
func (RawParentExpr) rawExpr()        {}
func (RawTernary) rawExpr()           {}
func (RawMemberAccess) rawExpr()      {}
func (RawUnary) rawExpr()             {}
func (RawBinary) rawExpr()            {}
func (RawCast) rawExpr()              {}
func (RawIs) rawExpr()                {}
func (RawCall) rawExpr()              {}
func (RawLambda) rawExpr()            {}
func (RawListComprehension) rawExpr() {}

// RawStmt is the closed set of statement productions.
type RawStmt interface{ rawStmt() }

type RawExprStmt struct{ Call RawCall }
type RawAssignment struct{ Left, Right RawExpr }
type RawCompoundAssignment struct {
	Operator    string
	Left, Right RawExpr
}
type RawVarDecl struct {
	Name string
	Type RawType
}
type RawUnpackTarget struct {
	Decl *RawVarDecl // set if this target declares a fresh variable
	Expr RawExpr     // set otherwise
}
type RawUnpackAssignment struct {
	Left  []RawUnpackTarget
	Right RawExpr
}
type RawIndependentDecl struct {
	Var  *RawVarDecl
	Fn   *RawFunctionDecl
	Init RawExpr // nil if the variable decl has no initializer
}
type RawIf struct {
	Cond RawExpr
	Then []RawStmt
	Elif []RawElif
	Else []RawStmt
}
type RawElif struct {
	Cond RawExpr
	Body []RawStmt
}
type RawWhile struct {
	Cond RawExpr
	Body []RawStmt
}
type RawFor struct {
	Var  string
	In   RawExpr
	Body []RawStmt
}
type RawTry struct {
	Handle    RawVarDecl
	TryBody   []RawStmt
	HandleBody []RawStmt
}
type RawReturn struct{ Value RawExpr }
type RawYield struct{ Value RawExpr }
type RawRaise struct{ Value RawExpr }
type RawBreak struct{}
type RawSkip struct{}

func (RawExprStmt) rawStmt()           {}
func (RawAssignment) rawStmt()         {}
func (RawCompoundAssignment) rawStmt() {}
func (RawUnpackAssignment) rawStmt()   {}
func (RawIndependentDecl) rawStmt()    {}
func (RawIf) rawStmt()                 {}
func (RawWhile) rawStmt()              {}
func (RawFor) rawStmt()                {}
func (RawTry) rawStmt()                {}
func (RawReturn) rawStmt()             {}
func (RawYield) rawStmt()              {}
func (RawRaise) rawStmt()              {}
func (RawBreak) rawStmt()              {}
func (RawSkip) rawStmt()               {}

// RawFunctionDecl covers unbound functions, methods, and generator
// declarations (IsGenerator selects the latter). One position covers the
// whole declaration, which is enough for diagnostics.
type RawFunctionDecl struct {
	Position       RawPosition
	Name           string
	Params         []RawParam
	DefaultParams  []RawDefaultParam
	ReturnType     *RawType // nil for a procedure
	Body           []RawStmt
	Abstract       bool
	IsGenerator    bool
	AccessModifier string // "", "public", "protected", "private"
}

// RawClassDecl covers a class declaration; Generics names its type
// parameters (empty for a non-generic class). Attributes lists the attribute
// members (each optionally with an initializer, RawClassAttribute); Methods
// lists the method declarations and the initializer declarations (a
// RawFunctionDecl named "initializer").
type RawClassDecl struct {
	Position   RawPosition
	Name       string
	Generics   []string
	SuperTypes []RawType
	Abstract   bool
	Attributes []RawClassAttribute
	Methods    []RawFunctionDecl
}

// RawClassAttribute is one attribute member, with an optional initializer
// expression (desugared to a `self.x := ...` assignment in the class's
// initializers).
type RawClassAttribute struct {
	Position       RawPosition
	Name           string
	Type           RawType
	Init           RawExpr // nil if none
	AccessModifier string
}

// RawImport names one imported module.
type RawImport struct{ Module string }

// RawModule is the top-level unit pkg/builder consumes: an import list, a
// set of class declarations, and top-level statements/declarations that get
// gathered into `main`.
type RawModule struct {
	Name       string
	Native     bool
	Imports    []RawImport
	Classes    []RawClassDecl
	Functions  []RawFunctionDecl
	TopLevel   []RawStmt
}
