package codegen

import (
	"strings"
	"testing"

	"github.com/ashlang/ashc/pkg/ast"
	"github.com/ashlang/ashc/pkg/desugar"
	"github.com/ashlang/ashc/pkg/ident"
	"github.com/ashlang/ashc/pkg/mangle"
	"github.com/ashlang/ashc/pkg/mono"
)

// defaultInit returns the initializer on c marked DefaultInitializer, the
// shape every zero-argument construction (Nothing<T>, a generator's own
// iterator) relies on.
func defaultInit(c *ast.ClassDeclaration) *ast.FunctionDeclaration {
	return c.DefaultInitializerFn()
}

// soleInit returns the one initializer declared directly on c when a class
// carries exactly one (Just<T>, Box<T> — neither marks DefaultInitializer).
func soleInit(c *ast.ClassDeclaration) *ast.FunctionDeclaration {
	for _, d := range c.Block.Declarations {
		if fn, ok := d.(*ast.FunctionDeclaration); ok && fn.IsInitializer() {
			return fn
		}
	}
	return nil
}

func methodOf(c *ast.ClassDeclaration, name string) *ast.FunctionDeclaration {
	for _, m := range c.Methods() {
		if m.Ident().Name == name {
			return m
		}
	}
	return nil
}

// TestInitializerOverloadingMangleDistinctly builds a class with nine
// distinctly-shaped initializers (arity and parameter-type combinations)
// and checks codegen emits nine declarations with nine distinct, stable
// mangled symbols.
func TestInitializerOverloadingMangleDistinctly(t *testing.T) {
	g := New()
	rt := g.Runtime

	ab := &ast.ClassDeclaration{Block: &ast.Block{}}
	ab.Id = ident.New("Ab")

	shapes := [][]*ast.ClassDeclaration{
		{},
		{rt.Int},
		{rt.Float},
		{rt.Bool},
		{rt.Int, rt.Int},
		{rt.Int, rt.Float},
		{rt.Float, rt.Int},
		{rt.Int, rt.Int, rt.Int},
		{rt.String},
	}

	var decls []*ast.FunctionDeclaration
	for i, shape := range shapes {
		params := make([]*ast.VariableDeclaration, len(shape))
		for j, cls := range shape {
			p := &ast.VariableDeclaration{Type: cls.Ident(), ResolvedClass: cls, Kind: ast.VarParameter}
			p.Id = ident.New("p")
			params[j] = p
		}
		init := &ast.FunctionDeclaration{
			Kind:               ast.FuncInitializer,
			DefiningClass:      ab,
			Params:             params,
			DefaultInitializer: i == 0,
		}
		init.Id = ident.New("initializer")
		body := &ast.Block{}
		body.AddStatement(&ast.ReturnStatement{})
		init.Body = body
		ab.Block.AddDeclaration(init)
		decls = append(decls, init)
	}

	mod := &ast.Module{Body: &ast.Block{Declarations: []ast.Declaration{ab}}}
	out, err := g.Generate(mod)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	seen := make(map[string]bool)
	ir := out.String()
	for i, init := range decls {
		name := mangle.Function(init)
		if seen[name] {
			t.Errorf("initializer %d (%v) produced a mangled name %q shared with an earlier overload", i, shapes[i], name)
		}
		seen[name] = true
		if !strings.Contains(ir, name) {
			t.Errorf("expected emitted IR to define %q for initializer %d", name, i)
		}
	}
	if len(seen) != len(shapes) {
		t.Errorf("expected %d distinct mangled initializer symbols, got %d", len(shapes), len(seen))
	}
}

// buildGenerator assembles a hand-resolved getNext body that yields 1, 2,
// then 3 before falling through to the trailing Nothing<Int> return a
// generator's desugaring always appends, and runs it through the real
// generator/iterator factory (pkg/desugar) the same way pkg/builder's
// BuildGeneratorDecl does.
func buildGenerator(g *Generator) desugar.Result {
	rt := g.Runtime
	intIdent := ident.New("Int")

	justIntVar := mono.Variation(rt.Just, rt.Int, rt.Lookup)
	nothingIntVar := mono.Variation(rt.Nothing, rt.Int, rt.Lookup)
	justInit := soleInit(&justIntVar.ClassDeclaration)
	nothingInit := defaultInit(&nothingIntVar.ClassDeclaration)

	mkYield := func(idx int, v int64) *ast.YieldStatement {
		y := &ast.YieldStatement{YieldIndex: idx}
		y.Parameter = &ast.FunctionCall{
			Name:        ident.NewGeneric("Just", intIdent),
			Declaration: justInit,
			Arguments:   []ast.Expression{&ast.IntegerLiteral{Value: v}},
		}
		return y
	}

	y0, y1, y2 := mkYield(0, 1), mkYield(1, 2), mkYield(2, 3)

	body := &ast.Block{}
	body.AddStatement(y0)
	body.AddStatement(y1)
	body.AddStatement(y2)
	body.AddStatement(&ast.ReturnStatement{Parameter: &ast.FunctionCall{
		Name:        ident.NewGeneric("Nothing", intIdent),
		Declaration: nothingInit,
	}})

	tmp := desugar.NewTmpFactory()
	factory := desugar.NewGeneratorFactory(tmp)
	return factory.Generate(ident.Position{}, ident.New("count"), intIdent, nil, nil, body,
		[]*ast.YieldStatement{y0, y1, y2})
}

// TestGeneratorYieldsThreeValuesThenExhausts checks that a generator body
// yielding three values lowers to exactly one indirectbr dispatching among
// four resume segments, and that every Just<Int>/Nothing<Int> construction
// it performs reaches the emitted IR.
func TestGeneratorYieldsThreeValuesThenExhausts(t *testing.T) {
	g := New()
	res := buildGenerator(g)

	mod := &ast.Module{Body: &ast.Block{Declarations: []ast.Declaration{res.Iterator, res.Generator}}}
	out, err := g.Generate(mod)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	text := out.String()

	if got := strings.Count(text, "indirectbr"); got != 1 {
		t.Errorf("expected exactly one indirectbr in the emitted getNext, got %d", got)
	}
	if len(res.GetNext.YieldStatements) != 3 {
		t.Fatalf("expected 3 yield statements collected, got %d", len(res.GetNext.YieldStatements))
	}

	getNextName := mangle.Function(&res.GetNext.FunctionDeclaration)
	if !strings.Contains(text, getNextName) {
		t.Errorf("expected emitted IR to define getNext as %q", getNextName)
	}

	justIntVar := mono.Variation(g.Runtime.Just, g.Runtime.Int, g.Runtime.Lookup)
	nothingIntVar := mono.Variation(g.Runtime.Nothing, g.Runtime.Int, g.Runtime.Lookup)
	justName := mangle.Function(soleInit(&justIntVar.ClassDeclaration))
	nothingName := mangle.Function(defaultInit(&nothingIntVar.ClassDeclaration))
	if got := strings.Count(text, justName); got < 4 {
		t.Errorf("expected Just<Int>'s initializer (defined once, called 3 times) to appear at least 4 times, got %d", got)
	}
	if got := strings.Count(text, nothingName); got < 2 {
		t.Errorf("expected Nothing<Int>'s initializer (defined once, called once) to appear at least 2 times, got %d", got)
	}

	resumeBlocks := strings.Count(text, "resume.")
	if resumeBlocks == 0 {
		t.Error("expected resume-block labels in the emitted getNext")
	}
}

// buildComprehensionLikeGenerator hand-assembles the exact control shape
// pkg/builder's list-comprehension desugaring nests a yield inside: a
// source iterator driven by a `while true { m := iter.getNext(); if
// m.hasValue() { ...; yield } else { break } }` loop, matching
// forLoopCore's documented lowering. Src stands in for whatever expression
// a real comprehension iterates; its getNext always has a value so the
// test only needs one trip around the loop to observe the yield.
func buildComprehensionLikeGenerator(g *Generator) (*ast.ClassDeclaration, desugar.Result) {
	rt := g.Runtime
	intIdent := ident.New("Int")
	justIdent := ident.NewGeneric("Just", intIdent)

	justIntVar := mono.Variation(rt.Just, rt.Int, rt.Lookup)
	nothingIntVar := mono.Variation(rt.Nothing, rt.Int, rt.Lookup)
	justInit := soleInit(&justIntVar.ClassDeclaration)
	nothingInit := defaultInit(&nothingIntVar.ClassDeclaration)
	hasValueAbstract := methodOf(rt.Maybe, "hasValue")
	getValue := methodOf(&justIntVar.ClassDeclaration, "getValue")

	// class Src { getNext() -> Maybe<Int> { return Just<Int>(1) } }
	src := &ast.ClassDeclaration{Block: &ast.Block{}}
	src.Id = ident.New("Src")
	srcInit := &ast.FunctionDeclaration{Kind: ast.FuncInitializer, DefaultInitializer: true, DefiningClass: src}
	srcInit.Id = ident.New("initializer")
	srcInitBody := &ast.Block{}
	srcInitBody.AddStatement(&ast.ReturnStatement{})
	srcInit.Body = srcInitBody
	src.Block.AddDeclaration(srcInit)

	getNextOnSrc := &ast.FunctionDeclaration{
		Kind: ast.FuncMethod, DefiningClass: src,
		ReturnType: ident.NewGeneric("Maybe", intIdent), ReturnClass: rt.Maybe,
	}
	getNextOnSrc.Id = ident.New("getNext")
	gnBody := &ast.Block{}
	gnBody.AddStatement(&ast.ReturnStatement{Parameter: &ast.FunctionCall{
		Name: justIdent, Declaration: justInit, Arguments: []ast.Expression{&ast.IntegerLiteral{Value: 1}},
	}})
	getNextOnSrc.Body = gnBody
	src.Block.AddDeclaration(getNextOnSrc)

	iterDecl := &ast.VariableDeclaration{Type: src.Ident(), ResolvedClass: src, Kind: ast.VarVariable}
	iterDecl.Id = ident.New("iter")
	mDecl := &ast.VariableDeclaration{Type: ident.NewGeneric("Maybe", intIdent), ResolvedClass: rt.Maybe, Kind: ast.VarVariable}
	mDecl.Id = ident.New("m")
	xDecl := &ast.VariableDeclaration{Type: intIdent, ResolvedClass: rt.Int, Kind: ast.VarVariable}
	xDecl.Id = ident.New("x")

	va := func(d *ast.VariableDeclaration) *ast.VariableAccess {
		return &ast.VariableAccess{Name: d.Ident(), Declaration: d}
	}

	y := &ast.YieldStatement{YieldIndex: 0}
	y.Parameter = &ast.FunctionCall{Name: justIdent, Declaration: justInit, Arguments: []ast.Expression{va(xDecl)}}

	// justInit.DefiningClass is the exact class identity getValue's own
	// DefiningClass shares, so a cast result typed this way lines up with
	// what the member-access call below expects its receiver to be.
	cast := &ast.CastExpression{Value: va(mDecl), ToType: ident.NewGeneric("Just", intIdent)}
	cast.SetResolvedType(justInit.DefiningClass)

	thenBlock := &ast.Block{}
	thenBlock.AddDeclaration(xDecl)
	thenBlock.AddStatement(&ast.Assignment{
		Left: va(xDecl),
		Right: &ast.MemberAccess{Left: cast, Right: &ast.FunctionCall{Declaration: getValue}},
	})
	thenBlock.AddStatement(y)

	whileLoop := &ast.WhileLoop{}
	elseBlock := &ast.Block{}
	elseBlock.AddStatement(&ast.BreakStatement{Loop: whileLoop})

	conditional := &ast.ConditionalStatement{
		Condition: &ast.MemberAccess{Left: va(mDecl), Right: &ast.FunctionCall{Declaration: hasValueAbstract}},
		Then:      thenBlock,
		Else:      elseBlock,
	}

	whileBody := &ast.Block{}
	whileBody.AddDeclaration(mDecl)
	whileBody.AddStatement(&ast.Assignment{
		Left:  va(mDecl),
		Right: &ast.MemberAccess{Left: va(iterDecl), Right: &ast.FunctionCall{Declaration: getNextOnSrc}},
	})
	whileBody.AddStatement(conditional)
	whileLoop.Condition = &ast.BoolLiteral{Value: true}
	whileLoop.Body = whileBody

	topBody := &ast.Block{}
	topBody.AddDeclaration(iterDecl)
	topBody.AddStatement(&ast.Assignment{Left: va(iterDecl), Right: &ast.FunctionCall{Declaration: srcInit}})
	topBody.AddStatement(whileLoop)
	topBody.AddStatement(&ast.ReturnStatement{Parameter: &ast.FunctionCall{
		Name: ident.NewGeneric("Nothing", intIdent), Declaration: nothingInit,
	}})

	// iter/m/x are all read on both sides of the yield's suspension point
	// (iter and m are written before it and read after the resumed call
	// re-enters the loop; x is itself the value the yield carries), so they
	// must be hoisted into the iterator's own attribute record rather than
	// left as this function's per-call stack locals — matching the order
	// pkg/builder's own collectLocals would discover them in.
	tmp := desugar.NewTmpFactory()
	factory := desugar.NewGeneratorFactory(tmp)
	hoisted := []*ast.VariableDeclaration{iterDecl, mDecl, xDecl}
	res := factory.Generate(ident.Position{}, ident.New("Comprehension"), intIdent, nil, hoisted, topBody,
		[]*ast.YieldStatement{y})
	return src, res
}

// TestListComprehensionYieldNestedInWhileAndIf proves the generator-body
// lowering recognizes a yield nested inside a while loop's if/else arm —
// the exact shape a list comprehension's desugared generator nests its
// yield in — rather than falling through to the unconditional internal
// error a plain for-loop-unaware lowering would hit.
func TestListComprehensionYieldNestedInWhileAndIf(t *testing.T) {
	g := New()
	src, res := buildComprehensionLikeGenerator(g)

	mod := &ast.Module{Body: &ast.Block{Declarations: []ast.Declaration{src, res.Iterator, res.Generator}}}
	out, err := g.Generate(mod)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	text := out.String()

	if got := strings.Count(text, "indirectbr"); got != 1 {
		t.Errorf("expected exactly one indirectbr, got %d", got)
	}
	for _, want := range []string{"gen.while.cond", "gen.while.body", "gen.while.end", "gen.if.then", "gen.if.else"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected a block labeled %q in the emitted IR", want)
		}
	}
	// The abstract hasValue() call dispatches virtually since m's static
	// class is the abstract Maybe, not Just — confirms the new while-loop
	// lowering still reaches the ordinary generateStmt/generateMemberAccess
	// path for everything that isn't the yield itself.
	if !strings.Contains(text, "getelementptr") {
		t.Error("expected virtual dispatch through hasValue() to emit a vtable GEP")
	}
}

// TestOperatorLoweringDispatchesAddAndContains exercises both lowering
// shapes pkg/builder's binaryExpression produces: `a + b` on a user class
// (a non-core defining class, so codegen must emit a real call rather than
// inline arithmetic) and `x in s` on a core String (which the compiler does
// intercept as an intrinsic, hitting the native ash_strcontains call).
func TestOperatorLoweringDispatchesAddAndContains(t *testing.T) {
	g := New()
	rt := g.Runtime

	myNum := &ast.ClassDeclaration{Block: &ast.Block{}}
	myNum.Id = ident.New("MyNum")
	addParam := &ast.VariableDeclaration{Type: myNum.Ident(), ResolvedClass: myNum, Kind: ast.VarParameter}
	addParam.Id = ident.New("other")
	add := &ast.FunctionDeclaration{Kind: ast.FuncMethod, DefiningClass: myNum, Params: []*ast.VariableDeclaration{addParam}, ReturnType: myNum.Ident(), ReturnClass: myNum}
	add.Id = ident.New("_add_")
	addBody := &ast.Block{}
	addBody.AddStatement(&ast.ReturnStatement{Parameter: &ast.SelfExpression{}})
	add.Body = addBody
	myNum.Block.AddDeclaration(add)

	aParam := &ast.VariableDeclaration{Type: myNum.Ident(), ResolvedClass: myNum, Kind: ast.VarParameter}
	aParam.Id = ident.New("a")
	bParam := &ast.VariableDeclaration{Type: myNum.Ident(), ResolvedClass: myNum, Kind: ast.VarParameter}
	bParam.Id = ident.New("b")
	va := func(d *ast.VariableDeclaration) *ast.VariableAccess { return &ast.VariableAccess{Name: d.Ident(), Declaration: d} }

	sumAB := &ast.FunctionDeclaration{Kind: ast.FuncUnbound, Params: []*ast.VariableDeclaration{aParam, bParam}, ReturnType: myNum.Ident(), ReturnClass: myNum}
	sumAB.Id = ident.New("sumAB")
	sumCall := &ast.MemberAccess{Left: va(aParam), Right: &ast.FunctionCall{Name: ident.New("_add_"), Declaration: add, Arguments: []ast.Expression{va(bParam)}}}
	sumBody := &ast.Block{}
	sumBody.AddStatement(&ast.ReturnStatement{Parameter: sumCall})
	sumAB.Body = sumBody

	containsDecl := methodOf(rt.String, "_contains_")
	if containsDecl == nil {
		t.Fatal("expected String to declare _contains_")
	}
	strParam := &ast.VariableDeclaration{Type: ident.New("String"), ResolvedClass: rt.String, Kind: ast.VarParameter}
	strParam.Id = ident.New("s")
	hasThree := &ast.FunctionDeclaration{Kind: ast.FuncUnbound, Params: []*ast.VariableDeclaration{strParam}, ReturnType: ident.New("Bool"), ReturnClass: rt.Bool}
	hasThree.Id = ident.New("hasThree")
	containsCall := &ast.MemberAccess{
		Left:  va(strParam),
		Right: &ast.FunctionCall{Name: ident.New("_contains_"), Declaration: containsDecl, Arguments: []ast.Expression{&ast.StringLiteral{Value: "x"}}},
	}
	htBody := &ast.Block{}
	htBody.AddStatement(&ast.ReturnStatement{Parameter: containsCall})
	hasThree.Body = htBody

	mod := &ast.Module{Body: &ast.Block{Declarations: []ast.Declaration{myNum, sumAB, hasThree}}}
	out, err := g.Generate(mod)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	text := out.String()

	addName := mangle.Function(add)
	if !strings.Contains(text, "call") || !strings.Contains(text, addName) {
		t.Errorf("expected a_add_ on a non-core class to lower to a real call to %q", addName)
	}
	if !strings.Contains(text, "ash_strcontains") {
		t.Error("expected `in` on a core String to lower to the ash_strcontains intrinsic")
	}
}

// TestBoxedCoreInitializerPushesArgumentUnchanged checks dispatch rule 1:
// calling a treated-special core class's own initializer (Int, Float, Bool,
// Char, String, Array) never allocates a second box or emits a call — the
// already-boxed argument is pushed back unchanged.
func TestBoxedCoreInitializerPushesArgumentUnchanged(t *testing.T) {
	g := New()
	rt := g.Runtime

	initParam := &ast.VariableDeclaration{Type: rt.Int.Ident(), ResolvedClass: rt.Int, Kind: ast.VarParameter}
	initParam.Id = ident.New("v")
	intInit := &ast.FunctionDeclaration{Kind: ast.FuncInitializer, DefiningClass: rt.Int, Params: []*ast.VariableDeclaration{initParam}}
	intInit.Id = ident.New("initializer")

	xParam := &ast.VariableDeclaration{Type: rt.Int.Ident(), ResolvedClass: rt.Int, Kind: ast.VarParameter}
	xParam.Id = ident.New("x")
	call := &ast.FunctionCall{Name: rt.Int.Ident(), Declaration: intInit, Arguments: []ast.Expression{
		&ast.VariableAccess{Name: xParam.Ident(), Declaration: xParam},
	}}

	identity := &ast.FunctionDeclaration{Kind: ast.FuncUnbound, Params: []*ast.VariableDeclaration{xParam}, ReturnType: rt.Int.Ident(), ReturnClass: rt.Int}
	identity.Id = ident.New("identity")
	body := &ast.Block{}
	body.AddStatement(&ast.ReturnStatement{Parameter: call})
	identity.Body = body

	mod := &ast.Module{Body: &ast.Block{Declarations: []ast.Declaration{identity}}}
	out, err := g.Generate(mod)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	text := out.String()

	identityName := mangle.Function(identity)
	var identityLines []string
	inIdentity := false
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "define") && strings.Contains(line, identityName) {
			inIdentity = true
		}
		if inIdentity {
			identityLines = append(identityLines, line)
			if strings.TrimSpace(line) == "}" {
				break
			}
		}
	}
	if len(identityLines) == 0 {
		t.Fatalf("expected to find identity's own definition %q in the emitted IR", identityName)
	}
	identityBody := strings.Join(identityLines, "\n")
	if strings.Contains(identityBody, "call") {
		t.Errorf("expected Int(x) to push x unchanged with no call, got:\n%s", identityBody)
	}

	unwantedInitName := mangle.Function(intInit)
	if strings.Contains(text, unwantedInitName) {
		t.Errorf("expected Int's own initializer %q never to be referenced", unwantedInitName)
	}
}

// TestConstructionCallsDefaultInitializerFirst checks dispatch rule 4: on
// the fresh-object path, constructing via a non-default initializer first
// allocates, then calls the class's default initializer, then calls the
// chosen initializer — never the other order, and never skipping the
// default initializer call just because a different overload was chosen.
func TestConstructionCallsDefaultInitializerFirst(t *testing.T) {
	g := New()
	rt := g.Runtime

	ab := &ast.ClassDeclaration{Block: &ast.Block{}}
	ab.Id = ident.New("Ab")
	attr := &ast.VariableDeclaration{Type: rt.Int.Ident(), ResolvedClass: rt.Int, Kind: ast.VarAttribute, AttributeIndex: 0}
	attr.Id = ident.New("attr")
	ab.Block.AddDeclaration(attr)
	selfAttr := func() *ast.MemberAccess {
		return &ast.MemberAccess{Left: &ast.SelfExpression{}, Right: &ast.VariableAccess{Name: attr.Ident(), Declaration: attr}}
	}

	defaultInit := &ast.FunctionDeclaration{Kind: ast.FuncInitializer, DefiningClass: ab, DefaultInitializer: true}
	defaultInit.Id = ident.New("initializer")
	defBody := &ast.Block{}
	defBody.AddStatement(&ast.Assignment{Left: selfAttr(), Right: &ast.IntegerLiteral{Value: 0}})
	defBody.AddStatement(&ast.ReturnStatement{})
	defaultInit.Body = defBody
	ab.Block.AddDeclaration(defaultInit)

	vParam := &ast.VariableDeclaration{Type: rt.Int.Ident(), ResolvedClass: rt.Int, Kind: ast.VarParameter}
	vParam.Id = ident.New("v")
	intInit := &ast.FunctionDeclaration{Kind: ast.FuncInitializer, DefiningClass: ab, Params: []*ast.VariableDeclaration{vParam}}
	intInit.Id = ident.New("initializer")
	intBody := &ast.Block{}
	intBody.AddStatement(&ast.Assignment{Left: selfAttr(), Right: &ast.VariableAccess{Name: vParam.Ident(), Declaration: vParam}})
	intBody.AddStatement(&ast.ReturnStatement{})
	intInit.Body = intBody
	ab.Block.AddDeclaration(intInit)

	caller := &ast.FunctionDeclaration{Kind: ast.FuncUnbound, ReturnType: ab.Ident(), ReturnClass: ab}
	caller.Id = ident.New("makeAb")
	ctor := &ast.FunctionCall{Name: ab.Ident(), Declaration: intInit, Arguments: []ast.Expression{&ast.IntegerLiteral{Value: 7}}}
	callerBody := &ast.Block{}
	callerBody.AddStatement(&ast.ReturnStatement{Parameter: ctor})
	caller.Body = callerBody

	mod := &ast.Module{Body: &ast.Block{Declarations: []ast.Declaration{ab, caller}}}
	out, err := g.Generate(mod)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	text := out.String()

	defName := mangle.Function(defaultInit)
	intName := mangle.Function(intInit)

	defLine, intLine := -1, -1
	for i, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "call") || strings.Contains(line, "define") {
			continue
		}
		if defLine < 0 && strings.Contains(line, defName) {
			defLine = i
		}
		if intLine < 0 && strings.Contains(line, intName) {
			intLine = i
		}
	}
	if defLine < 0 {
		t.Fatalf("expected makeAb to call the default initializer %q before the chosen one", defName)
	}
	if intLine < 0 {
		t.Fatalf("expected makeAb to call the chosen initializer %q", intName)
	}
	if defLine > intLine {
		t.Errorf("expected the default initializer call (line %d) to precede the chosen initializer's call (line %d)", defLine, intLine)
	}
}

// TestGenericMonomorphizationProducesDistinctConstructors checks that
// requesting Box<Int> and Box<String> variations of the same generic
// template yields two constructors with distinct mangled names, neither
// colliding with the template's own (unemitted) symbol.
func TestGenericMonomorphizationProducesDistinctConstructors(t *testing.T) {
	g := New()
	rt := g.Runtime

	boxInt := mono.Variation(rt.Box, rt.Int, rt.Lookup)
	boxString := mono.Variation(rt.Box, rt.String, rt.Lookup)

	mod := &ast.Module{Body: &ast.Block{}}
	out, err := g.Generate(mod)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	text := out.String()

	intInit := soleInit(&boxInt.ClassDeclaration)
	strInit := soleInit(&boxString.ClassDeclaration)
	if intInit == nil || strInit == nil {
		t.Fatal("expected both variations to carry their own initializer")
	}
	intName := mangle.Function(intInit)
	strName := mangle.Function(strInit)
	if intName == strName {
		t.Fatalf("expected Box<Int> and Box<String> initializers to mangle distinctly, both got %q", intName)
	}
	if !strings.Contains(text, intName) {
		t.Errorf("expected emitted IR to define %q", intName)
	}
	if !strings.Contains(text, strName) {
		t.Errorf("expected emitted IR to define %q", strName)
	}

	// Asking for the same substitution twice must memoize rather than emit
	// a second, differently-mangled copy.
	again := mono.Variation(rt.Box, rt.Int, rt.Lookup)
	if again != boxInt {
		t.Error("expected a repeated Box<Int> request to return the memoized variation")
	}
}

// TestOverloadResolutionTrustsPreResolvedDeclaration documents the
// boundary this compiler draws around overload resolution: nothing in
// pkg/codegen picks an overload by argument type or generic-parameter
// distance (that is an out-of-scope resolver's job) — codegen only trusts
// and dispatches through whatever *ast.FunctionDeclaration a call already
// names. This builds two same-named, different-arity initializers and
// checks that a call pre-resolved to the two-argument one emits a call to
// that overload's own mangled symbol, never the other.
func TestOverloadResolutionTrustsPreResolvedDeclaration(t *testing.T) {
	g := New()
	rt := g.Runtime

	pt := &ast.ClassDeclaration{Block: &ast.Block{}}
	pt.Id = ident.New("Point")

	oneArgParam := &ast.VariableDeclaration{Type: rt.Int.Ident(), ResolvedClass: rt.Int, Kind: ast.VarParameter}
	oneArgParam.Id = ident.New("x")
	oneArg := &ast.FunctionDeclaration{Kind: ast.FuncInitializer, DefiningClass: pt, Params: []*ast.VariableDeclaration{oneArgParam}, DefaultInitializer: true}
	oneArg.Id = ident.New("initializer")
	oneArgBody := &ast.Block{}
	oneArgBody.AddStatement(&ast.ReturnStatement{})
	oneArg.Body = oneArgBody
	pt.Block.AddDeclaration(oneArg)

	xParam := &ast.VariableDeclaration{Type: rt.Int.Ident(), ResolvedClass: rt.Int, Kind: ast.VarParameter}
	xParam.Id = ident.New("x")
	yParam := &ast.VariableDeclaration{Type: rt.Int.Ident(), ResolvedClass: rt.Int, Kind: ast.VarParameter}
	yParam.Id = ident.New("y")
	twoArg := &ast.FunctionDeclaration{Kind: ast.FuncInitializer, DefiningClass: pt, Params: []*ast.VariableDeclaration{xParam, yParam}}
	twoArg.Id = ident.New("initializer")
	twoArgBody := &ast.Block{}
	twoArgBody.AddStatement(&ast.ReturnStatement{})
	twoArg.Body = twoArgBody
	pt.Block.AddDeclaration(twoArg)

	caller := &ast.FunctionDeclaration{Kind: ast.FuncUnbound, ReturnType: pt.Ident(), ReturnClass: pt}
	caller.Id = ident.New("makePoint")
	ctor := &ast.FunctionCall{
		Name:        pt.Ident(),
		Declaration: twoArg,
		Arguments:   []ast.Expression{&ast.IntegerLiteral{Value: 1}, &ast.IntegerLiteral{Value: 2}},
	}
	callerBody := &ast.Block{}
	callerBody.AddStatement(&ast.ReturnStatement{Parameter: ctor})
	caller.Body = callerBody

	mod := &ast.Module{Body: &ast.Block{Declarations: []ast.Declaration{pt, caller}}}
	out, err := g.Generate(mod)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	text := out.String()

	oneName := mangle.Function(oneArg)
	twoName := mangle.Function(twoArg)
	if oneName == twoName {
		t.Fatal("expected the two overloads to mangle distinctly")
	}
	makeName := mangle.Function(caller)
	callLine := ""
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "call") && strings.Contains(line, twoName) && !strings.Contains(line, "define") {
			callLine = line
		}
	}
	if callLine == "" {
		t.Errorf("expected makePoint (%q) to emit a call to the pre-resolved two-argument initializer %q", makeName, twoName)
	}
}
