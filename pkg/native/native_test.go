package native

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

func TestDeclareAllRegistersEverySymbolOnce(t *testing.T) {
	m := ir.NewModule()
	fns := DeclareAll(m)
	for _, d := range Catalogue() {
		fn, ok := fns[d.Symbol]
		if !ok {
			t.Errorf("expected %s to be declared", d.Symbol)
			continue
		}
		if fn.Name() != d.Symbol {
			t.Errorf("expected the declared function to carry the symbol %q, got %q", d.Symbol, fn.Name())
		}
		if len(fn.Params) != len(d.Params) {
			t.Errorf("%s: expected %d params, got %d", d.Symbol, len(d.Params), len(fn.Params))
		}
	}
}

func TestDeclareEmitsNoBody(t *testing.T) {
	m := ir.NewModule()
	fn := Declare(m, Decl{Symbol: "ash_noop", Return: types.Void})
	if len(fn.Blocks) != 0 {
		t.Errorf("expected a native declaration to carry no basic blocks, got %d", len(fn.Blocks))
	}
}
