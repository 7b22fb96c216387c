package mildew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Block {
	t.Helper()
	tokens, lexErrors := Tokenize(src)
	require.Empty(t, lexErrors, "lex errors for %q", src)
	program, err := Parse(tokens)
	require.NoError(t, err, "parse error for %q", src)
	return program
}

func mustParseError(t *testing.T, src string) error {
	t.Helper()
	tokens, lexErrors := Tokenize(src)
	require.Empty(t, lexErrors, "lex errors for %q", src)
	_, err := Parse(tokens)
	require.Error(t, err, "expected compile error for %q", src)
	var compileErr *ScriptCompileError
	require.ErrorAs(t, err, &compileErr)
	return err
}

func firstExpression(t *testing.T, src string) Expression {
	t.Helper()
	program := mustParse(t, src)
	require.NotEmpty(t, program.StatementNodes)
	stmt, ok := program.StatementNodes[0].(*ExpressionStatement)
	require.True(t, ok, "first statement of %q is %T", src, program.StatementNodes[0])
	return stmt.ExpressionNode
}

func TestParsePrecedence(t *testing.T) {
	testCases := []struct {
		src  string
		want string
	}{
		// associativity laws
		{"a ** b ** c;", "(a ** (b ** c))"},
		{"a = b = c;", "(a = (b = c))"},
		{"a + b + c;", "((a + b) + c)"},
		{"a - b - c;", "((a - b) - c)"},
		// binding-strength pairs from the frozen table
		{"a + b * c;", "(a + (b * c))"},
		{"a * b + c;", "((a * b) + c)"},
		{"a * b ** c;", "(a * (b ** c))"},
		{"a + b << c;", "((a + b) << c)"},
		{"a << b < c;", "((a << b) < c)"},
		{"a < b == c;", "((a < b) == c)"},
		{"a == b & c;", "((a == b) & c)"},
		{"a & b ^ c;", "((a & b) ^ c)"},
		{"a ^ b | c;", "((a ^ b) | c)"},
		{"a | b && c;", "((a | b) && c)"},
		{"a && b || c;", "((a && b) || c)"},
		{"a || b ?? c;", "((a || b) ?? c)"},
		{"a += b || c;", "(a += (b || c))"},
		// unary and postfix
		{"!a + b;", "((!a) + b)"},
		{"-a * b;", "((-a) * b)"},
		{"typeof a == b;", "((typeof a) == b)"},
		{"a instanceof b == c;", "((a instanceof b) == c)"},
		{"x++;", "(x++)"},
		{"-x++;", "(-(x++))"},
		{"(-x)++;", "(-(x++))"},
		// ternary is right-associative
		{"a ? b : c ? d : e;", "(a ? b : (c ? d : e))"},
		// member/index/call bind tightest
		{"-a.b;", "(-a.b)"},
		{"a.b.c;", "a.b.c"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		expr := firstExpression(t, tc.src)
		assert.Equal(tc.want, expr.String(), "src %q", tc.src)
	}
}

func TestParseVarDeclaration(t *testing.T) {
	program := mustParse(t, "let x = 1 + 2 * 3;")
	require.Len(t, program.StatementNodes, 1)
	decl, ok := program.StatementNodes[0].(*VarDeclaration)
	require.True(t, ok)
	assert.Equal(t, "let", decl.QualifierToken.Text)
	require.Len(t, decl.AssignmentNodes, 1)
	binop, ok := decl.AssignmentNodes[0].(*BinaryOp)
	require.True(t, ok)
	assert.Equal(t, ASSIGN, binop.OpToken.Type)
	access, ok := binop.LeftNode.(*VarAccess)
	require.True(t, ok)
	assert.Equal(t, "x", access.VarToken.Text)
	assert.Equal(t, "(1 + (2 * 3))", binop.RightNode.String())
}

func TestParseVarDeclarationMultiple(t *testing.T) {
	program := mustParse(t, "var a, b = 2, c;")
	decl := program.StatementNodes[0].(*VarDeclaration)
	require.Len(t, decl.AssignmentNodes, 3)
	_, isAccess := decl.AssignmentNodes[0].(*VarAccess)
	assert.True(t, isAccess)
	_, isAssign := decl.AssignmentNodes[1].(*BinaryOp)
	assert.True(t, isAssign)
}

func TestParseDestructuringDeclaration(t *testing.T) {
	program := mustParse(t, "let [a, b, ...r] = rhs;")
	decl := program.StatementNodes[0].(*VarDeclaration)
	require.Len(t, decl.AssignmentNodes, 1)
	binop := decl.AssignmentNodes[0].(*BinaryOp)
	access := binop.LeftNode.(*VarAccess)
	assert.Equal(t, "[a, b, ...r]", access.VarToken.Text)

	program = mustParse(t, "const {x, y} = point;")
	decl = program.StatementNodes[0].(*VarDeclaration)
	binop = decl.AssignmentNodes[0].(*BinaryOp)
	access = binop.LeftNode.(*VarAccess)
	assert.Equal(t, "{x, y}", access.VarToken.Text)
}

func TestParseDestructuringErrors(t *testing.T) {
	mustParseError(t, "let [...r, a] = rhs;")
	mustParseError(t, "let [] = rhs;")
}

func TestParseAssignmentTargets(t *testing.T) {
	firstExpression(t, "a = 1;")
	firstExpression(t, "a.b = 1;")
	firstExpression(t, "a[0] += 2;")
	err := mustParseError(t, "1 = 2;")
	assert.Contains(t, err.Error(), "assignment")
}

func TestParseMemberAccessRequiresIdentifier(t *testing.T) {
	mustParseError(t, "a.1;")
	mustParseError(t, "a.class;")
	// lexer-degraded keywords stay member accesses
	expr := firstExpression(t, "x.return;")
	member, ok := expr.(*MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "x.return", member.String())
}

func TestParseTemplateString(t *testing.T) {
	expr := firstExpression(t, "`hi ${name}`;")
	template, ok := expr.(*TemplateString)
	require.True(t, ok)
	require.Len(t, template.Nodes, 2)
	lit, ok := template.Nodes[0].(*Literal)
	require.True(t, ok)
	assert.Equal(t, "hi ", lit.LiteralToken.Text)
	access, ok := template.Nodes[1].(*VarAccess)
	require.True(t, ok)
	assert.Equal(t, "name", access.VarToken.Text)
}

func TestParseTemplateStringExpressionAndTail(t *testing.T) {
	expr := firstExpression(t, "`a${x + 1}b`;")
	template := expr.(*TemplateString)
	require.Len(t, template.Nodes, 3)
	assert.Equal(t, "(x + 1)", template.Nodes[1].String())
	tail := template.Nodes[2].(*Literal)
	assert.Equal(t, "b", tail.LiteralToken.Text)
}

func TestParseTemplateStringErrors(t *testing.T) {
	mustParseError(t, "`${x`;")
	mustParseError(t, "`${x y}`;")
}

func TestParseRegexLiteral(t *testing.T) {
	program := mustParse(t, "let r = /ab+c/gi;")
	decl := program.StatementNodes[0].(*VarDeclaration)
	binop := decl.AssignmentNodes[0].(*BinaryOp)
	lit, ok := binop.RightNode.(*Literal)
	require.True(t, ok)
	assert.Equal(t, REGEX, lit.LiteralToken.Type)
	assert.Equal(t, "/ab+c/gi", lit.LiteralToken.Text)
}

func TestParseObjectLiteral(t *testing.T) {
	program := mustParse(t, "let o = {a: 1, 'b c': 2, d : 3};")
	decl := program.StatementNodes[0].(*VarDeclaration)
	binop := decl.AssignmentNodes[0].(*BinaryOp)
	object, ok := binop.RightNode.(*ObjectLiteral)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b c", "d"}, object.Keys)
	require.Len(t, object.ValueNodes, 3)
}

func TestParseArrayLiteral(t *testing.T) {
	program := mustParse(t, "let a = [1, 2, 3]; let e = [];")
	decl := program.StatementNodes[0].(*VarDeclaration)
	binop := decl.AssignmentNodes[0].(*BinaryOp)
	array := binop.RightNode.(*ArrayLiteral)
	assert.Len(t, array.ValueNodes, 3)

	decl = program.StatementNodes[1].(*VarDeclaration)
	binop = decl.AssignmentNodes[0].(*BinaryOp)
	array = binop.RightNode.(*ArrayLiteral)
	assert.Empty(t, array.ValueNodes)
}

func TestParseLambdaForms(t *testing.T) {
	expr := firstExpression(t, "x => x + 1;")
	lambda, ok := expr.(*Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, lambda.ArgumentList)
	require.NotNil(t, lambda.ReturnExpression)

	expr = firstExpression(t, "(a, b) => a;")
	lambda = expr.(*Lambda)
	assert.Equal(t, []string{"a", "b"}, lambda.ArgumentList)

	expr = firstExpression(t, "() => { return 1; };")
	lambda = expr.(*Lambda)
	assert.Empty(t, lambda.ArgumentList)
	assert.Nil(t, lambda.ReturnExpression)
	assert.Len(t, lambda.Statements, 1)
}

func TestParseFunctionLiteralDefaults(t *testing.T) {
	expr := firstExpression(t, "(function f(a, b = 1, c = 2) { return a; });")
	fn, ok := expr.(*FunctionLiteral)
	require.True(t, ok)
	assert.Equal(t, "f", fn.OptionalName)
	assert.Equal(t, []string{"a", "b", "c"}, fn.ArgList)
	assert.Len(t, fn.DefaultArguments, 2)

	err := mustParseError(t, "function f(a = 1, b) { return a; }")
	assert.Contains(t, err.Error(), "default arguments must be last")
}

func TestParseGeneratorFunction(t *testing.T) {
	program := mustParse(t, "function *g(){ yield 1; yield 2; }")
	decl, ok := program.StatementNodes[0].(*FunctionDeclaration)
	require.True(t, ok)
	assert.True(t, decl.IsGenerator)
	assert.Equal(t, "g", decl.Name)
	require.Len(t, decl.StatementNodes, 2)
	for _, stmt := range decl.StatementNodes {
		es := stmt.(*ExpressionStatement)
		_, isYield := es.ExpressionNode.(*Yield)
		assert.True(t, isYield)
	}
}

func TestParseYieldScoping(t *testing.T) {
	mustParseError(t, "yield 1;")
	err := mustParseError(t, "function g(){ yield 1; }")
	assert.Contains(t, err.Error(), "yield")
	// a nested non-generator function inside a generator cannot yield
	mustParseError(t, "function *g(){ function h(){ yield 1; } }")
}

func TestParseNewExpression(t *testing.T) {
	expr := firstExpression(t, "new Foo(1, 2);")
	newExpr, ok := expr.(*NewExpression)
	require.True(t, ok)
	assert.True(t, newExpr.FunctionCallNode.ReturnThis)
	assert.Len(t, newExpr.FunctionCallNode.ArgumentNodes, 2)

	expr = firstExpression(t, "new Foo;")
	newExpr = expr.(*NewExpression)
	assert.True(t, newExpr.FunctionCallNode.ReturnThis)
	assert.Empty(t, newExpr.FunctionCallNode.ArgumentNodes)
}

func TestParseClassDeclaration(t *testing.T) {
	program := mustParse(t, `
		class Point {
			constructor(x, y) { this.x = x; this.y = y; }
			norm() { return this.x; }
			get size() { return 2; }
			set size(v) { this.x = v; }
			static origin() { return new Point(0, 0); }
		}`)
	decl, ok := program.StatementNodes[0].(*ClassDeclaration)
	require.True(t, ok)
	def := decl.ClassDefinition
	assert.Equal(t, "Point", def.ClassName)
	require.NotNil(t, def.Constructor)
	assert.Equal(t, []string{"x", "y"}, def.Constructor.ArgList)
	assert.Equal(t, []string{"norm"}, def.MethodNames)
	assert.Equal(t, []string{"size"}, def.GetMethodNames)
	assert.Equal(t, []string{"size"}, def.SetMethodNames)
	assert.Equal(t, []string{"origin"}, def.StaticMethodNames)
	assert.Nil(t, def.BaseClass)
	for _, m := range def.Methods {
		assert.True(t, m.IsClass)
	}
}

func TestParseClassLiteral(t *testing.T) {
	program := mustParse(t, "let C = class { run() { return 1; } };")
	decl := program.StatementNodes[0].(*VarDeclaration)
	binop := decl.AssignmentNodes[0].(*BinaryOp)
	lit, ok := binop.RightNode.(*ClassLiteral)
	require.True(t, ok)
	assert.Equal(t, "<anonymous class>", lit.ClassDefinition.ClassName)
}

func TestParseClassErrors(t *testing.T) {
	err := mustParseError(t, "class C { f() { } f() { } }")
	assert.Contains(t, err.Error(), "duplicate method")
	err = mustParseError(t, "class C { constructor() { } constructor() { } }")
	assert.Contains(t, err.Error(), "constructor")
	err = mustParseError(t, "class C { static constructor() { } }")
	assert.Contains(t, err.Error(), "constructor")
}

func TestParseSuperScoping(t *testing.T) {
	mustParse(t, "class B extends A { constructor() { super(); } }")
	mustParse(t, "class B extends A { }")

	err := mustParseError(t, "super();")
	assert.Contains(t, err.Error(), "super")
	err = mustParseError(t, "class B { constructor() { super(); } }")
	assert.Contains(t, err.Error(), "super")
	err = mustParseError(t, "class B extends A { constructor() { } }")
	assert.Contains(t, err.Error(), "super")
	err = mustParseError(t, "class B extends A { constructor() { super(); super(); } }")
	assert.Contains(t, err.Error(), "super")
}

func TestParseSwitch(t *testing.T) {
	program := mustParse(t, `
		switch (n) {
			case 0x10: a(); break;
			case 'one': b(); break;
			default: c();
		}`)
	sw, ok := program.StatementNodes[0].(*Switch)
	require.True(t, ok)
	assert.Equal(t, 2, sw.JumpTable.Len())
	// 0x10 folded in radix 16
	index, found := sw.JumpTable.Lookup(NewInt(16))
	require.True(t, found)
	assert.Equal(t, 0, index)
	index, found = sw.JumpTable.Lookup(NewStringAny(NewScriptString("one")))
	require.True(t, found)
	assert.Equal(t, 2, index)
	assert.Equal(t, 4, sw.DefaultStatementID)
	assert.Len(t, sw.StatementNodes, 5)
}

func TestParseSwitchDuplicateCase(t *testing.T) {
	err := mustParseError(t, "switch(n) { case 1: foo(); break; case 1: bar(); break; }")
	assert.Contains(t, err.Error(), "duplicate case")
	// equal after radix folding
	err = mustParseError(t, "switch(n) { case 0x10: a(); case 16: b(); }")
	assert.Contains(t, err.Error(), "duplicate case")
	err = mustParseError(t, "switch(n) { case 'a': x(); case 'a': y(); }")
	assert.Contains(t, err.Error(), "duplicate case")
}

func TestParseSwitchErrors(t *testing.T) {
	err := mustParseError(t, "switch (n) { case x: a(); }")
	assert.Contains(t, err.Error(), "literal")
	err = mustParseError(t, "switch (n) { default: a(); default: b(); }")
	assert.Contains(t, err.Error(), "default")
}

func TestParseLoops(t *testing.T) {
	mustParse(t, "while (a) { b(); }")
	mustParse(t, "do { a(); } while (b);")
	mustParse(t, "for (let i = 0; i < 10; i++) { total += i; }")
	mustParse(t, "for (;;) break;")

	program := mustParse(t, "do ; while (x);")
	doWhile, ok := program.StatementNodes[0].(*DoWhile)
	require.True(t, ok)
	assert.Equal(t, "x", doWhile.ConditionNode.String())
}

func TestParseForOf(t *testing.T) {
	program := mustParse(t, "for (let a of arr) { use(a); }")
	forOf, ok := program.StatementNodes[0].(*ForOf)
	require.True(t, ok)
	assert.Equal(t, "let", forOf.QualifierToken.Text)
	require.Len(t, forOf.VarAccessNodes, 1)
	assert.Equal(t, "a", forOf.VarAccessNodes[0].VarToken.Text)

	program = mustParse(t, "for (const k, v in obj) ;")
	forOf = program.StatementNodes[0].(*ForOf)
	assert.Equal(t, "in", forOf.OfInToken.Text)
	assert.Len(t, forOf.VarAccessNodes, 2)
}

func TestParseForOfErrors(t *testing.T) {
	err := mustParseError(t, "for (var a of arr) ;")
	assert.Contains(t, err.Error(), "let or const")
	err = mustParseError(t, "for (let a, b, c of arr) ;")
	assert.Contains(t, err.Error(), "two bindings")
	err = mustParseError(t, "for (let a = 1 of arr) ;")
	assert.Contains(t, err.Error(), "initializers")
}

func TestParseBreakContinueScoping(t *testing.T) {
	mustParse(t, "while (a) { break; }")
	mustParse(t, "while (a) { continue; }")
	mustParse(t, "switch (n) { case 1: break; }")

	mustParseError(t, "break;")
	mustParseError(t, "continue;")
	err := mustParseError(t, "switch (n) { case 1: continue; }")
	assert.Contains(t, err.Error(), "continue")
	// a function body does not inherit the enclosing loop
	mustParseError(t, "while (a) { function f() { break; } }")
}

func TestParseLabels(t *testing.T) {
	program := mustParse(t, "outer: while (a) { break outer; }")
	loop, ok := program.StatementNodes[0].(*While)
	require.True(t, ok)
	assert.Equal(t, "outer", loop.Label)

	mustParse(t, "outer: while (a) { inner: while (b) { continue outer; } }")

	err := mustParseError(t, "while (a) { break missing; }")
	assert.Contains(t, err.Error(), "undefined label")
	// a label is dead once its loop has closed
	mustParseError(t, "outer: while (a) ; while (b) { break outer; }")
	err = mustParseError(t, "foo: x = 1;")
	assert.Contains(t, err.Error(), "loop")
}

func TestParseTryBlock(t *testing.T) {
	program := mustParse(t, "try { a(); } catch (e) { b(); }")
	try, ok := program.StatementNodes[0].(*TryBlock)
	require.True(t, ok)
	assert.Equal(t, "e", try.ExceptionName)
	assert.NotNil(t, try.CatchBlockNode)
	assert.Nil(t, try.FinallyBlockNode)

	program = mustParse(t, "try { a(); } finally { c(); }")
	try = program.StatementNodes[0].(*TryBlock)
	assert.Nil(t, try.CatchBlockNode)
	assert.NotNil(t, try.FinallyBlockNode)

	mustParse(t, "try { } catch { } finally { }")

	err := mustParseError(t, "try { a(); }")
	assert.Contains(t, err.Error(), "catch or finally")
}

func TestParseDelete(t *testing.T) {
	program := mustParse(t, "delete a.b; delete a[0];")
	del, ok := program.StatementNodes[0].(*Delete)
	require.True(t, ok)
	_, isMember := del.AccessNode.(*MemberAccess)
	assert.True(t, isMember)

	err := mustParseError(t, "delete a;")
	assert.Contains(t, err.Error(), "member or index")
}

func TestParseThrowAndReturn(t *testing.T) {
	program := mustParse(t, "function f() { if (bad) throw 'no'; return 1; } return;")
	require.Len(t, program.StatementNodes, 2)
	ret, ok := program.StatementNodes[1].(*Return)
	require.True(t, ok)
	assert.Nil(t, ret.ExpressionNode)
}

func TestParseEmptyStatement(t *testing.T) {
	program := mustParse(t, ";")
	stmt, ok := program.StatementNodes[0].(*ExpressionStatement)
	require.True(t, ok)
	assert.Nil(t, stmt.ExpressionNode)
}

func TestParseStatementLines(t *testing.T) {
	program := mustParse(t, "let a = 1;\nlet b = 2;")
	assert.Equal(t, 1, program.StatementNodes[0].Line())
	assert.Equal(t, 2, program.StatementNodes[1].Line())
}

func TestParseExpressionStandalone(t *testing.T) {
	tokens, lexErrors := Tokenize("1 + 2 * 3")
	require.Empty(t, lexErrors)
	parser := NewParser(tokens)
	expr := parser.ParseExpression(0)
	assert.Equal(t, "(1 + (2 * 3))", expr.String())
}

func TestParseNoPartialAST(t *testing.T) {
	tokens, lexErrors := Tokenize("let a = 1; let b = ;")
	require.Empty(t, lexErrors)
	program, err := Parse(tokens)
	require.Error(t, err)
	assert.Nil(t, program)
}

func TestAstPrinterRendersProgram(t *testing.T) {
	program := mustParse(t, "let x = 1 + 2;")
	printer := &AstPrinter{}
	assert.Equal(t, "(let (= x (+ 1 2)))", printer.PrintProgram(program))
}
