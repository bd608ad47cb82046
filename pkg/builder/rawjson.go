package builder

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// This file is the JSON half of the parse-tree input contract documented in
// parsetree.go: cmd/ashc reads a module as a tagged-union JSON document
// (the form a real parser's own serializer would emit after building its
// concrete syntax tree) and DecodeModule turns it into the RawModule values
// BuildModule already knows how to lower. No Ash-source parsing happens
// here — this only deserializes an already-structured tree.

// DecodeModule reads one JSON-encoded module document from r.
func DecodeModule(r io.Reader) (RawModule, error) {
	var jm jsonModule
	if err := json.NewDecoder(r).Decode(&jm); err != nil {
		return RawModule{}, errors.Wrap(err, "decode module JSON")
	}
	return jm.toRaw()
}

type jsonPosition struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (p jsonPosition) toRaw() RawPosition {
	return RawPosition{File: p.File, Line: p.Line, Column: p.Column}
}

type jsonType struct {
	Name       string     `json:"name,omitempty"`
	Params     []jsonType `json:"params,omitempty"`
	IsFunction bool       `json:"isFunction,omitempty"`
}

func (t jsonType) toRaw() RawType {
	params := make([]RawType, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.toRaw()
	}
	return RawType{Name: t.Name, Params: params, IsFunction: t.IsFunction}
}

type jsonParam struct {
	Name    string    `json:"name"`
	Type    jsonType  `json:"type"`
	Default *jsonExpr `json:"default,omitempty"`
}

func (p jsonParam) toRawParam() RawParam { return RawParam{Name: p.Name, Type: p.Type.toRaw()} }

func (p jsonParam) toRawDefaultParam() (RawDefaultParam, error) {
	var def RawExpr
	if p.Default != nil {
		var err error
		def, err = p.Default.toRaw()
		if err != nil {
			return RawDefaultParam{}, err
		}
	}
	return RawDefaultParam{Name: p.Name, Type: p.Type.toRaw(), Default: def}, nil
}

type jsonListGenerator struct {
	Var    string    `json:"var"`
	Source jsonExpr  `json:"source"`
	Filter *jsonExpr `json:"filter,omitempty"`
}

// jsonExpr is the tagged-union envelope for every RawExpr production. Kind
// selects which fields are meaningful; unused fields are left zero.
type jsonExpr struct {
	Kind string `json:"kind"`

	IntValue   *int64   `json:"int,omitempty"`
	FloatValue *float64 `json:"float,omitempty"`
	BoolValue  *bool    `json:"bool,omitempty"`
	CharValue  string   `json:"char,omitempty"`
	StrValue   string   `json:"str,omitempty"`

	Name string `json:"name,omitempty"`

	Elements []jsonExpr `json:"elements,omitempty"`
	Args     []jsonExpr `json:"args,omitempty"`

	ToType   *jsonType `json:"toType,omitempty"`
	Cond     *jsonExpr `json:"cond,omitempty"`
	Then     *jsonExpr `json:"then,omitempty"`
	Else     *jsonExpr `json:"else,omitempty"`
	Left     *jsonExpr `json:"left,omitempty"`
	Right    *jsonExpr `json:"right,omitempty"`
	Operator string    `json:"operator,omitempty"`
	Operand  *jsonExpr `json:"operand,omitempty"`
	Value    *jsonExpr `json:"value,omitempty"`

	Callee    *jsonType  `json:"callee,omitempty"`
	Arguments []jsonExpr `json:"arguments,omitempty"`

	Params []jsonParam `json:"params,omitempty"`
	Body   *jsonExpr   `json:"body,omitempty"`

	Target      *jsonExpr           `json:"target,omitempty"`
	ElementType *jsonType           `json:"elementType,omitempty"`
	Generators  []jsonListGenerator `json:"generators,omitempty"`
}

func (e *jsonExpr) toRaw() (RawExpr, error) {
	if e == nil {
		return nil, nil
	}
	switch e.Kind {
	case "int":
		return RawIntLit{Value: derefInt(e.IntValue)}, nil
	case "float":
		return RawFloatLit{Value: derefFloat(e.FloatValue)}, nil
	case "bool":
		return RawBoolLit{Value: derefBool(e.BoolValue)}, nil
	case "char":
		return RawCharLit{Value: firstRune(e.CharValue)}, nil
	case "string":
		return RawStringLit{Value: e.StrValue}, nil
	case "array":
		els, err := toRawExprList(e.Elements)
		return RawArrayLit{Elements: els}, err
	case "tuple":
		els, err := toRawExprList(e.Elements)
		return RawTupleLit{Elements: els}, err
	case "range":
		args, err := toRawExprList(e.Args)
		return RawRangeLit{Args: args}, err
	case "ident":
		return RawIdentifierExpr{Name: e.Name}, nil
	case "self":
		return RawSelfExpr{}, nil
	case "parent":
		if e.ToType == nil {
			return nil, errors.New("parent expression missing toType")
		}
		return RawParentExpr{ToType: e.ToType.toRaw()}, nil
	case "ternary":
		cond, err := e.Cond.toRaw()
		if err != nil {
			return nil, err
		}
		then, err := e.Then.toRaw()
		if err != nil {
			return nil, err
		}
		els, err := e.Else.toRaw()
		if err != nil {
			return nil, err
		}
		return RawTernary{Cond: cond, Then: then, Else: els}, nil
	case "member":
		left, err := e.Left.toRaw()
		if err != nil {
			return nil, err
		}
		right, err := e.Right.toRaw()
		if err != nil {
			return nil, err
		}
		return RawMemberAccess{Left: left, Right: right}, nil
	case "unary":
		operand, err := e.Operand.toRaw()
		if err != nil {
			return nil, err
		}
		return RawUnary{Operator: e.Operator, Operand: operand}, nil
	case "binary":
		left, err := e.Left.toRaw()
		if err != nil {
			return nil, err
		}
		right, err := e.Right.toRaw()
		if err != nil {
			return nil, err
		}
		return RawBinary{Operator: e.Operator, Left: left, Right: right}, nil
	case "cast":
		if e.ToType == nil {
			return nil, errors.New("cast expression missing toType")
		}
		v, err := e.Value.toRaw()
		if err != nil {
			return nil, err
		}
		return RawCast{Value: v, ToType: e.ToType.toRaw()}, nil
	case "is":
		if e.ToType == nil {
			return nil, errors.New("is expression missing toType")
		}
		v, err := e.Value.toRaw()
		if err != nil {
			return nil, err
		}
		return RawIs{Value: v, ToType: e.ToType.Name}, nil
	case "call":
		if e.Callee == nil {
			return nil, errors.New("call expression missing callee")
		}
		args, err := toRawExprList(e.Arguments)
		if err != nil {
			return nil, err
		}
		return RawCall{Callee: e.Callee.toRaw(), Arguments: args}, nil
	case "lambda":
		params := make([]RawParam, len(e.Params))
		for i, p := range e.Params {
			params[i] = p.toRawParam()
		}
		body, err := e.Body.toRaw()
		if err != nil {
			return nil, err
		}
		return RawLambda{Params: params, Body: body}, nil
	case "listcomp":
		if e.Target == nil || e.ElementType == nil {
			return nil, errors.New("list comprehension missing target or elementType")
		}
		target, err := e.Target.toRaw()
		if err != nil {
			return nil, err
		}
		gens := make([]RawListGenerator, len(e.Generators))
		for i, g := range e.Generators {
			src, err := g.Source.toRaw()
			if err != nil {
				return nil, err
			}
			filter, err := g.Filter.toRaw()
			if err != nil {
				return nil, err
			}
			gens[i] = RawListGenerator{Var: g.Var, Source: src, Filter: filter}
		}
		return RawListComprehension{Target: target, ElementType: e.ElementType.toRaw(), Generators: gens}, nil
	default:
		return nil, fmt.Errorf("unrecognized expression kind %q", e.Kind)
	}
}

func toRawExprList(js []jsonExpr) ([]RawExpr, error) {
	out := make([]RawExpr, len(js))
	for i := range js {
		e, err := js[i].toRaw()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// jsonStmt is the tagged-union envelope for every RawStmt production.
type jsonStmt struct {
	Kind string `json:"kind"`

	Call *jsonExpr `json:"call,omitempty"`

	Left     *jsonExpr  `json:"left,omitempty"`
	Right    *jsonExpr  `json:"right,omitempty"`
	Operator string     `json:"operator,omitempty"`
	Targets  []jsonUnpackTarget `json:"targets,omitempty"`

	Var  *jsonVarDecl     `json:"var,omitempty"`
	Fn   *jsonFunctionDecl `json:"fn,omitempty"`
	Init *jsonExpr        `json:"init,omitempty"`

	Cond *jsonExpr   `json:"cond,omitempty"`
	Then []jsonStmt  `json:"then,omitempty"`
	Elif []jsonElif  `json:"elif,omitempty"`
	Else []jsonStmt  `json:"else,omitempty"`
	Body []jsonStmt  `json:"body,omitempty"`

	ForVar string    `json:"forVar,omitempty"`
	In     *jsonExpr `json:"in,omitempty"`

	Handle     *jsonVarDecl `json:"handle,omitempty"`
	TryBody    []jsonStmt   `json:"tryBody,omitempty"`
	HandleBody []jsonStmt   `json:"handleBody,omitempty"`

	Value *jsonExpr `json:"value,omitempty"`
}

type jsonElif struct {
	Cond *jsonExpr  `json:"cond"`
	Body []jsonStmt `json:"body"`
}

type jsonVarDecl struct {
	Name string   `json:"name"`
	Type jsonType `json:"type"`
}

func (v jsonVarDecl) toRaw() RawVarDecl { return RawVarDecl{Name: v.Name, Type: v.Type.toRaw()} }

type jsonUnpackTarget struct {
	Decl *jsonVarDecl `json:"decl,omitempty"`
	Expr *jsonExpr    `json:"expr,omitempty"`
}

func (t jsonUnpackTarget) toRaw() (RawUnpackTarget, error) {
	if t.Decl != nil {
		d := t.Decl.toRaw()
		return RawUnpackTarget{Decl: &d}, nil
	}
	e, err := t.Expr.toRaw()
	if err != nil {
		return RawUnpackTarget{}, err
	}
	return RawUnpackTarget{Expr: e}, nil
}

func (s *jsonStmt) toRaw() (RawStmt, error) {
	switch s.Kind {
	case "exprstmt":
		call, err := s.Call.toRaw()
		if err != nil {
			return nil, err
		}
		rc, ok := call.(RawCall)
		if !ok {
			return nil, errors.New("exprstmt call did not decode to a RawCall")
		}
		return RawExprStmt{Call: rc}, nil
	case "assign":
		left, err := s.Left.toRaw()
		if err != nil {
			return nil, err
		}
		right, err := s.Right.toRaw()
		if err != nil {
			return nil, err
		}
		return RawAssignment{Left: left, Right: right}, nil
	case "compoundassign":
		left, err := s.Left.toRaw()
		if err != nil {
			return nil, err
		}
		right, err := s.Right.toRaw()
		if err != nil {
			return nil, err
		}
		return RawCompoundAssignment{Operator: s.Operator, Left: left, Right: right}, nil
	case "unpackassign":
		targets := make([]RawUnpackTarget, len(s.Targets))
		for i, t := range s.Targets {
			rt, err := t.toRaw()
			if err != nil {
				return nil, err
			}
			targets[i] = rt
		}
		right, err := s.Right.toRaw()
		if err != nil {
			return nil, err
		}
		return RawUnpackAssignment{Left: targets, Right: right}, nil
	case "decl":
		decl := RawIndependentDecl{}
		if s.Var != nil {
			v := s.Var.toRaw()
			decl.Var = &v
		}
		if s.Fn != nil {
			fn, err := s.Fn.toRaw()
			if err != nil {
				return nil, err
			}
			decl.Fn = &fn
		}
		if s.Init != nil {
			init, err := s.Init.toRaw()
			if err != nil {
				return nil, err
			}
			decl.Init = init
		}
		return decl, nil
	case "if":
		cond, err := s.Cond.toRaw()
		if err != nil {
			return nil, err
		}
		then, err := toRawStmtList(s.Then)
		if err != nil {
			return nil, err
		}
		els, err := toRawStmtList(s.Else)
		if err != nil {
			return nil, err
		}
		elifs := make([]RawElif, len(s.Elif))
		for i, el := range s.Elif {
			c, err := el.Cond.toRaw()
			if err != nil {
				return nil, err
			}
			b, err := toRawStmtList(el.Body)
			if err != nil {
				return nil, err
			}
			elifs[i] = RawElif{Cond: c, Body: b}
		}
		return RawIf{Cond: cond, Then: then, Elif: elifs, Else: els}, nil
	case "while":
		cond, err := s.Cond.toRaw()
		if err != nil {
			return nil, err
		}
		body, err := toRawStmtList(s.Body)
		if err != nil {
			return nil, err
		}
		return RawWhile{Cond: cond, Body: body}, nil
	case "for":
		in, err := s.In.toRaw()
		if err != nil {
			return nil, err
		}
		body, err := toRawStmtList(s.Body)
		if err != nil {
			return nil, err
		}
		return RawFor{Var: s.ForVar, In: in, Body: body}, nil
	case "try":
		tryBody, err := toRawStmtList(s.TryBody)
		if err != nil {
			return nil, err
		}
		handleBody, err := toRawStmtList(s.HandleBody)
		if err != nil {
			return nil, err
		}
		var handle RawVarDecl
		if s.Handle != nil {
			handle = s.Handle.toRaw()
		}
		return RawTry{Handle: handle, TryBody: tryBody, HandleBody: handleBody}, nil
	case "return":
		v, err := s.Value.toRaw()
		if err != nil {
			return nil, err
		}
		return RawReturn{Value: v}, nil
	case "yield":
		v, err := s.Value.toRaw()
		if err != nil {
			return nil, err
		}
		return RawYield{Value: v}, nil
	case "raise":
		v, err := s.Value.toRaw()
		if err != nil {
			return nil, err
		}
		return RawRaise{Value: v}, nil
	case "break":
		return RawBreak{}, nil
	case "skip":
		return RawSkip{}, nil
	default:
		return nil, fmt.Errorf("unrecognized statement kind %q", s.Kind)
	}
}

func toRawStmtList(js []jsonStmt) ([]RawStmt, error) {
	out := make([]RawStmt, len(js))
	for i := range js {
		st, err := js[i].toRaw()
		if err != nil {
			return nil, err
		}
		out[i] = st
	}
	return out, nil
}

type jsonFunctionDecl struct {
	Position       jsonPosition      `json:"position,omitempty"`
	Name           string            `json:"name"`
	Params         []jsonParam       `json:"params,omitempty"`
	DefaultParams  []jsonParam       `json:"defaultParams,omitempty"`
	ReturnType     *jsonType         `json:"returnType,omitempty"`
	Body           []jsonStmt        `json:"body,omitempty"`
	Abstract       bool              `json:"abstract,omitempty"`
	IsGenerator    bool              `json:"isGenerator,omitempty"`
	AccessModifier string            `json:"accessModifier,omitempty"`
}

func (f jsonFunctionDecl) toRaw() (RawFunctionDecl, error) {
	params := make([]RawParam, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.toRawParam()
	}
	defaults := make([]RawDefaultParam, len(f.DefaultParams))
	for i, p := range f.DefaultParams {
		dp, err := p.toRawDefaultParam()
		if err != nil {
			return RawFunctionDecl{}, err
		}
		defaults[i] = dp
	}
	body, err := toRawStmtList(f.Body)
	if err != nil {
		return RawFunctionDecl{}, err
	}
	var ret *RawType
	if f.ReturnType != nil {
		t := f.ReturnType.toRaw()
		ret = &t
	}
	return RawFunctionDecl{
		Position:       f.Position.toRaw(),
		Name:           f.Name,
		Params:         params,
		DefaultParams:  defaults,
		ReturnType:     ret,
		Body:           body,
		Abstract:       f.Abstract,
		IsGenerator:    f.IsGenerator,
		AccessModifier: f.AccessModifier,
	}, nil
}

type jsonClassAttribute struct {
	Position       jsonPosition `json:"position,omitempty"`
	Name           string       `json:"name"`
	Type           jsonType     `json:"type"`
	Init           *jsonExpr    `json:"init,omitempty"`
	AccessModifier string       `json:"accessModifier,omitempty"`
}

func (a jsonClassAttribute) toRaw() (RawClassAttribute, error) {
	init, err := a.Init.toRaw()
	if err != nil {
		return RawClassAttribute{}, err
	}
	return RawClassAttribute{
		Position:       a.Position.toRaw(),
		Name:           a.Name,
		Type:           a.Type.toRaw(),
		Init:           init,
		AccessModifier: a.AccessModifier,
	}, nil
}

type jsonClassDecl struct {
	Position   jsonPosition         `json:"position,omitempty"`
	Name       string               `json:"name"`
	Generics   []string             `json:"generics,omitempty"`
	SuperTypes []jsonType           `json:"superTypes,omitempty"`
	Abstract   bool                 `json:"abstract,omitempty"`
	Attributes []jsonClassAttribute `json:"attributes,omitempty"`
	Methods    []jsonFunctionDecl   `json:"methods,omitempty"`
}

func (c jsonClassDecl) toRaw() (RawClassDecl, error) {
	supers := make([]RawType, len(c.SuperTypes))
	for i, s := range c.SuperTypes {
		supers[i] = s.toRaw()
	}
	attrs := make([]RawClassAttribute, len(c.Attributes))
	for i, a := range c.Attributes {
		ra, err := a.toRaw()
		if err != nil {
			return RawClassDecl{}, err
		}
		attrs[i] = ra
	}
	methods := make([]RawFunctionDecl, len(c.Methods))
	for i, m := range c.Methods {
		rm, err := m.toRaw()
		if err != nil {
			return RawClassDecl{}, err
		}
		methods[i] = rm
	}
	return RawClassDecl{
		Position:   c.Position.toRaw(),
		Name:       c.Name,
		Generics:   c.Generics,
		SuperTypes: supers,
		Abstract:   c.Abstract,
		Attributes: attrs,
		Methods:    methods,
	}, nil
}

type jsonModule struct {
	Name      string             `json:"name"`
	Native    bool               `json:"native,omitempty"`
	Imports   []string           `json:"imports,omitempty"`
	Classes   []jsonClassDecl    `json:"classes,omitempty"`
	Functions []jsonFunctionDecl `json:"functions,omitempty"`
	TopLevel  []jsonStmt         `json:"topLevel,omitempty"`
}

func (m jsonModule) toRaw() (RawModule, error) {
	imports := make([]RawImport, len(m.Imports))
	for i, name := range m.Imports {
		imports[i] = RawImport{Module: name}
	}
	classes := make([]RawClassDecl, len(m.Classes))
	for i, c := range m.Classes {
		rc, err := c.toRaw()
		if err != nil {
			return RawModule{}, err
		}
		classes[i] = rc
	}
	funcs := make([]RawFunctionDecl, len(m.Functions))
	for i, f := range m.Functions {
		rf, err := f.toRaw()
		if err != nil {
			return RawModule{}, err
		}
		funcs[i] = rf
	}
	top, err := toRawStmtList(m.TopLevel)
	if err != nil {
		return RawModule{}, err
	}
	return RawModule{
		Name:      m.Name,
		Native:    m.Native,
		Imports:   imports,
		Classes:   classes,
		Functions: funcs,
		TopLevel:  top,
	}, nil
}

func derefInt(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
