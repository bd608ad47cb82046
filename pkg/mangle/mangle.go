// Package mangle implements the two pure functions the code generator
// consumes as an already-resolved interface: deterministic symbol naming for
// functions and variables, and the mapping from a resolved class to its LLVM
// IR representation. Nothing here touches an *ir.Module or *ir.Func — those
// belong to pkg/ir, which calls into this package rather than duplicating it.
package mangle

import (
	"strings"

	"github.com/llir/llvm/ir/types"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/desugar"
	"github.com/ashlang/ashc/pkg/ident"
)

// Type is the concrete LLVM IR type every later stage targets; re-exported
// here so callers spell it as mangle.Type instead of reaching past this
// package into llir/llvm directly.
type Type = types.Type

// ClassIDFieldIndex is the struct field every class layout reserves for its
// class-identity / vtable pointer.
const ClassIDFieldIndex = 0

// Function mangles a function/method/initializer declaration into a
// deterministic symbol: its owning class (if any), its own name, then one
// tag per parameter type, so two overloads or two generic variations never
// collide.
func Function(fn *ast.FunctionDeclaration) string {
	var b strings.Builder
	b.WriteString("ash")
	if fn.DefiningClass != nil {
		b.WriteByte('_')
		b.WriteString(typeTag(fn.DefiningClass.Ident()))
	}
	b.WriteByte('_')
	b.WriteString(sanitize(fn.Ident().Name))
	for _, p := range fn.Params {
		b.WriteByte('_')
		b.WriteString(typeTag(p.Type))
	}
	return b.String()
}

// Variable mangles a global or attribute declaration. Locals and parameters
// never leave the function they're declared in, so they mangle to their bare
// sanitized name — uniqueness within one function body is the builder's
// temp-naming responsibility (pkg/desugar.TmpFactory), not this function's.
func Variable(v *ast.VariableDeclaration) string {
	switch {
	case v.IsGlobal:
		return "ash_g_" + sanitize(v.Ident().Name)
	case v.IsAttribute():
		return "ash_a_" + sanitize(v.Ident().Name)
	default:
		return sanitize(v.Ident().Name)
	}
}

// typeTag flattens an identifier (including its generic arguments,
// recursively) into a mangling-safe fragment. A nil identifier — an
// unresolved or synthetic parameter type slipping through a hand-built test
// tree — mangles to "v" rather than panicking.
func typeTag(id *ident.Identifier) string {
	if id == nil {
		return "v"
	}
	s := sanitize(id.Name)
	for _, g := range id.Generics {
		s += "_" + typeTag(g)
	}
	return s
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// TypeMapper implements mapToLLVMType and the class-layout computation it
// depends on, memoizing one types.StructType per class so every reference to
// the same class (a field type, a cast target, a constructor call) shares
// one struct identity — llir/llvm structs compare by pointer, not shape.
type TypeMapper struct {
	structs map[*ast.ClassDeclaration]*types.StructType
}

// NewTypeMapper returns an empty, independent class-layout cache.
func NewTypeMapper() *TypeMapper {
	return &TypeMapper{structs: make(map[*ast.ClassDeclaration]*types.StructType)}
}

// LLVMType maps a class to its IR type: the core scalar classes (Int, Float,
// Bool, Char) map to their unboxed IR type (i64, double, i1, i8), which is
// what every parameter, return value and attribute field of that class
// carries; void (or a nil class) maps to the IR void type; every other class,
// the remaining core classes included, maps to pointer-to-struct (the boxed
// layout StructType builds).
func (m *TypeMapper) LLVMType(c *ast.ClassDeclaration) Type {
	if c == nil {
		return types.Void
	}
	switch c.Core {
	case ast.CoreInt:
		return types.I64
	case ast.CoreFloat:
		return types.Double
	case ast.CoreBool:
		return types.I1
	case ast.CoreChar:
		return types.I8
	case ast.CoreVoid:
		return types.Void
	default:
		return types.NewPointer(m.StructType(c))
	}
}

// StructType returns the boxed layout of c: field 0 is always the
// class-identity/vtable pointer; core scalar classes reserve field 1 for
// their unboxed payload; every other class instead carries one field per
// declared attribute, in attribute-index order. The jump field a generator
// iterator reserves at attribute index 0 is recognized by its sentinel type
// (pkg/desugar.JumpFieldType) and mapped to an opaque code-address pointer
// rather than recursing into LLVMType, since "$Address" never resolves to a
// class.
func (m *TypeMapper) StructType(c *ast.ClassDeclaration) *types.StructType {
	if st, ok := m.structs[c]; ok {
		return st
	}
	st := &types.StructType{}
	m.structs[c] = st // reserved before recursing: breaks self-referential layouts
	fields := []Type{types.I64}
	if payload := payloadType(c); payload != nil {
		fields = append(fields, payload)
	} else {
		for _, attr := range c.Attributes() {
			if attr.Type != nil && attr.Type.Equal(desugar.JumpFieldType) {
				fields = append(fields, types.NewPointer(types.I8))
				continue
			}
			fields = append(fields, m.LLVMType(attr.ResolvedClass))
		}
	}
	st.Fields = fields
	return st
}

func payloadType(c *ast.ClassDeclaration) Type {
	switch c.Core {
	case ast.CoreInt:
		return types.I64
	case ast.CoreFloat:
		return types.Double
	case ast.CoreBool, ast.CoreBoolBox:
		return types.I1
	case ast.CoreChar:
		return types.I8
	case ast.CoreString:
		return types.NewPointer(types.I8)
	case ast.CoreArray:
		return types.NewPointer(types.I8)
	default:
		return nil
	}
}
