package diag

import (
	"errors"
	"testing"

	"github.com/ashlang/ashc/pkg/ident"
)

func TestConstructorsSetKind(t *testing.T) {
	pos := ident.Position{File: "a.ash", Line: 3, Column: 1}
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"syntax", NewSyntax(pos, "unexpected token"), Syntax},
		{"resolution", NewResolution(pos, "unknown identifier %q", "x"), Resolution},
		{"type", NewType(pos, "expected Int, got %s", "Float"), TypeMismatch},
		{"semantic", NewSemantic(pos, "break outside a loop"), Semantic},
		{"internal", NewInternal(pos, "stack underflow"), Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("got kind %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Position != pos {
				t.Errorf("got position %v, want %v", tt.err.Position, pos)
			}
		})
	}
}

func TestErrorAnchorsMessageToPosition(t *testing.T) {
	pos := ident.Position{File: "a.ash", Line: 3, Column: 1}
	err := NewResolution(pos, "unknown identifier %q", "x")
	want := `a.ash:3:1: resolution error: unknown identifier "x"`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestErrorOmitsPositionWhenSynthetic(t *testing.T) {
	err := NewInternal(ident.Position{}, "imbalanced scope")
	if err.Error() != "internal invariant violation: imbalanced scope" {
		t.Errorf("got %q", err.Error())
	}
}

func TestInternalCarriesStackTrace(t *testing.T) {
	err := NewInternal(ident.Position{}, "stack underflow during emission")
	if st := err.StackTrace(); len(st) == 0 {
		t.Error("expected an Internal error to carry a non-empty stack trace")
	}
}

func TestNonInternalKindsCarryNoStackTrace(t *testing.T) {
	err := NewSemantic(ident.Position{}, "yield outside a generator")
	if st := err.StackTrace(); st != nil {
		t.Errorf("expected no stack trace on a non-Internal error, got %v", st)
	}
}

func TestAssertReturnsNilWhenTrue(t *testing.T) {
	if err := Assert(true, ident.Position{}, "never fires"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestAssertReturnsInternalWhenFalse(t *testing.T) {
	err := Assert(false, ident.Position{}, "attribute index missing for %s", "x")
	if err == nil {
		t.Fatal("expected a non-nil error")
	}
	de, ok := err.(*Error)
	if !ok || de.Kind != Internal {
		t.Fatalf("expected an *Error of kind Internal, got %#v", err)
	}
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("malformed tree")
	wrapped := Wrap(Syntax, ident.Position{}, cause, "parser reported a failure")
	if !errors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}
