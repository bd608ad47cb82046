// Package desugar implements the synthesis factories the AST builder
// (pkg/builder) calls into when it lowers a surface construct into the
// primitive AST catalogue defined by pkg/ast: operator-to-method-name
// mapping, function-wrapper classes, generator/generator-iterator classes,
// tuple types, and temporary-identifier minting.
package desugar

// BinaryOperatorMethod maps a surface binary operator token to the method
// name it desugars to, e.g. `a + b` -> `a._add_(b)`. `in` is handled
// separately by the caller because it also inverts operand order.
var BinaryOperatorMethod = map[string]string{
	"+":   "_add_",
	"-":   "_sub_",
	"*":   "_mul_",
	"/":   "_div_",
	"%":   "_mod_",
	"^":   "_pow_",
	"=":   "_eq_",
	"!=":  "_neq_",
	"<":   "_lt_",
	">":   "_gt_",
	"<=":  "_leq_",
	">=":  "_geq_",
	"in":  "_contains_",
	"and": "_and_",
	"or":  "_or_",
	"xor": "_xor_",
}

// UnaryOperatorMethod maps a surface unary operator token to its method
// name, e.g. `-x` -> `x._neg_()`.
var UnaryOperatorMethod = map[string]string{
	"-":   "_neg_",
	"not": "_not_",
}

// ContainsMethod is the method name the `in` operator inverts to; it is
// exported separately because callers need to special-case operand order
// for it (`a in x` becomes `x._contains_(a)`, not `a._contains_(x)`).
const ContainsMethod = "_contains_"
