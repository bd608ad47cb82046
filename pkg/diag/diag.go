// Package diag implements the compiler's five-kind error taxonomy. Kinds
// 1-4 are reported with a source position and abort compilation; kind 5 is
// an internal-invariant assertion that must never fire on well-resolved
// input and is itself a test target, so it carries a stack trace via
// github.com/pkg/errors for post-mortem debugging.
package diag

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ashlang/ashc/pkg/ident"
)

// Kind distinguishes the five error kinds the propagation rule switches on.
type Kind int

const (
	// Syntax marks a malformed parse tree handed to the core by the
	// (out-of-scope) parser; the core never constructs this kind itself, only
	// relays it.
	Syntax Kind = iota + 1
	// Resolution marks an unknown identifier, ambiguous overload, or
	// undeclared type.
	Resolution
	// TypeMismatch marks a type mismatch at assignment, return, or argument
	// position.
	TypeMismatch
	// Semantic marks a violated language invariant: break/skip outside a
	// loop, yield outside a generator, return-with-value inside a procedure.
	Semantic
	// Internal marks a violated compiler invariant: stack underflow during
	// emission, a missing attribute index, imbalanced emission scopes. It
	// must never fire on well-resolved input.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax error"
	case Resolution:
		return "resolution error"
	case TypeMismatch:
		return "type error"
	case Semantic:
		return "semantic error"
	case Internal:
		return "internal invariant violation"
	default:
		return "error"
	}
}

// Error is one compilation diagnostic, anchored to a source position (the
// zero Position for a synthesized node). It wraps an optional cause via
// github.com/pkg/errors so %+v on an Internal error prints a stack trace.
type Error struct {
	Kind     Kind
	Position ident.Position
	Message  string
	cause    error
}

func (e *Error) Error() string {
	if e.Position.IsSynthetic() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Position, e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause (if any) to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// StackTrace exposes the stack captured when e was constructed via
// NewInternal (or via Wrap, of any kind), so a test asserting a kind-5 error
// carries one doesn't have to know the wrapping scheme. Returns nil for an
// error from any other New* constructor, which carries no cause.
func (e *Error) StackTrace() errors.StackTrace {
	type tracer interface{ StackTrace() errors.StackTrace }
	if t, ok := e.cause.(tracer); ok {
		return t.StackTrace()
	}
	return nil
}

func newf(k Kind, pos ident.Position, format string, args ...any) *Error {
	return &Error{Kind: k, Position: pos, Message: fmt.Sprintf(format, args...)}
}

// NewSyntax wraps a malformed-parse-tree report from the upstream parser.
func NewSyntax(pos ident.Position, format string, args ...any) *Error {
	return newf(Syntax, pos, format, args...)
}

// NewResolution reports an unknown identifier, ambiguous overload, or
// undeclared type.
func NewResolution(pos ident.Position, format string, args ...any) *Error {
	return newf(Resolution, pos, format, args...)
}

// NewType reports a type mismatch at assignment, return, or argument
// position.
func NewType(pos ident.Position, format string, args ...any) *Error {
	return newf(TypeMismatch, pos, format, args...)
}

// NewSemantic reports a violated language invariant (break outside a loop,
// yield outside a generator, return-with-value inside a procedure).
func NewSemantic(pos ident.Position, format string, args ...any) *Error {
	return newf(Semantic, pos, format, args...)
}

// NewInternal reports a violated compiler invariant and attaches a stack
// trace via errors.WithStack, since this kind is an assertion that must
// never fire on well-resolved input and is a test target when it does.
func NewInternal(pos ident.Position, format string, args ...any) *Error {
	e := newf(Internal, pos, format, args...)
	e.cause = errors.WithStack(errors.New(e.Message))
	return e
}

// Assert returns an Internal error (with the usual stack trace) if cond is
// false, nil otherwise — the shape every stack-underflow and
// imbalanced-emission-scope check in pkg/ir uses.
func Assert(cond bool, pos ident.Position, format string, args ...any) error {
	if cond {
		return nil
	}
	return NewInternal(pos, format, args...)
}

// Wrap attaches kind/position context to an error surfaced by an
// out-of-scope collaborator (the parser, the resolver), preserving it as the
// cause via errors.Wrap so the original message and, if present, its own
// stack trace survive.
func Wrap(k Kind, pos ident.Position, cause error, msg string) *Error {
	e := newf(k, pos, "%s: %s", msg, cause)
	e.cause = errors.Wrap(cause, msg)
	return e
}
