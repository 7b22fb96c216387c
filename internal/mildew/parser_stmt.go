package mildew

import "strings"

// parseStatements parses statements up to (not consuming) a token of
// type stop.
func (p *Parser) parseStatements(stop TokenType) []Statement {
	var statements []Statement
	for p.current.Type != stop {
		if p.current.Type == EOF && stop != EOF {
			panic(NewScriptCompileError(p.current, "unexpected end of input in statement list"))
		}
		statements = append(statements, p.parseStatement())
	}
	return statements
}

// parseStatement dispatches on the statement's head token.
func (p *Parser) parseStatement() Statement {
	tok := p.current
	line := tok.Pos.Line
	switch tok.Type {
	case SEMICOLON:
		p.nextToken()
		return NewExpressionStatement(line, nil)
	case LBRACE:
		return p.parseBlock()
	case LABEL:
		label := p.nextToken().Text
		if !isLoopKeyword(p.current) {
			panic(NewScriptCompileError(p.current, "label '%s' may only precede a loop statement", label))
		}
		return p.parseLoopStatement(label)
	case KEYWORD:
		switch tok.Text {
		case "var", "let", "const":
			return p.parseVarDeclaration(true)
		case "if":
			return p.parseIfStatement()
		case "switch":
			return p.parseSwitchStatement()
		case "while", "do", "for":
			return p.parseLoopStatement("")
		case "break", "continue":
			return p.parseBreakOrContinue()
		case "return":
			return p.parseReturnStatement()
		case "function":
			return p.parseFunctionDeclaration()
		case "throw":
			return p.parseThrowStatement()
		case "try":
			return p.parseTryBlockStatement()
		case "delete":
			return p.parseDeleteStatement()
		case "class":
			return p.parseClassDeclaration()
		}
	}
	expr := p.ParseExpression(0)
	p.consume(SEMICOLON, "expected ';' after expression statement")
	return NewExpressionStatement(line, expr)
}

func isLoopKeyword(tok *Token) bool {
	return tok.IsKeyword("while") || tok.IsKeyword("do") || tok.IsKeyword("for")
}

// parseVarDeclaration parses `var|let|const declarator (, declarator)*`.
// Each declarator is a bare name (or a destructuring shape collapsed into
// a single textual key) optionally rooted in an `=` assignment, so every
// payload element is either a *VarAccess or an ASSIGN *BinaryOp whose
// left operand is a *VarAccess.
func (p *Parser) parseVarDeclaration(consumeSemicolon bool) *VarDeclaration {
	qualifier := p.nextToken()
	line := qualifier.Pos.Line
	var assignments []Expression
	for {
		target := p.parseDeclarationTarget()
		if p.check(ASSIGN) {
			opToken := p.nextToken()
			rhs := p.ParseExpression(0)
			assignments = append(assignments, NewBinaryOp(opToken, target, rhs))
		} else {
			assignments = append(assignments, target)
		}
		if !p.matchType(COMMA) {
			break
		}
	}
	if consumeSemicolon {
		p.consume(SEMICOLON, "expected ';' after variable declaration")
	}
	return NewVarDeclaration(line, qualifier, assignments)
}

// parseDeclarationTarget parses one declared name: a plain identifier or
// a `[...]`/`{...}` destructuring shape. The shape is preserved as a
// single textual key — opening bracket, comma-separated identifiers with
// at most one trailing `...rest`, closing bracket — for later stages to
// re-parse.
func (p *Parser) parseDeclarationTarget() *VarAccess {
	tok := p.current
	switch tok.Type {
	case IDENTIFIER:
		p.nextToken()
		return NewVarAccess(tok)
	case LBRACKET, LBRACE:
		return p.parseDestructureTarget()
	default:
		panic(NewScriptCompileError(tok, "expected variable name in declaration"))
	}
}

func (p *Parser) parseDestructureTarget() *VarAccess {
	openToken := p.nextToken()
	openSym, closeSym, closeType := "[", "]", RBRACKET
	if openToken.Type == LBRACE {
		openSym, closeSym, closeType = "{", "}", RBRACE
	}
	var parts []string
	sawSpread := false
	for p.current.Type != closeType {
		p.checkEOF()
		if sawSpread {
			panic(NewScriptCompileError(p.current, "rest element must be last in destructuring declaration"))
		}
		spread := p.matchType(TDOT)
		nameToken := p.current
		p.consume(IDENTIFIER, "expected identifier in destructuring declaration")
		if spread {
			sawSpread = true
			parts = append(parts, "..."+nameToken.Text)
		} else {
			parts = append(parts, nameToken.Text)
		}
		if !p.matchType(COMMA) && p.current.Type != closeType {
			panic(NewScriptCompileError(p.current, "destructured names must be separated by ','"))
		}
	}
	p.nextToken() // closing bracket
	if len(parts) == 0 {
		panic(NewScriptCompileError(openToken, "empty destructuring declaration"))
	}
	shape := openSym + strings.Join(parts, ", ") + closeSym
	return NewVarAccess(NewToken(IDENTIFIER, openToken.Pos, shape))
}

func (p *Parser) parseBlock() *Block {
	line := p.current.Pos.Line
	p.consume(LBRACE, "expected '{' to open block")
	statements := p.parseStatements(RBRACE)
	p.consume(RBRACE, "expected '}' to close block")
	return NewBlock(line, statements)
}

func (p *Parser) parseIfStatement() Statement {
	line := p.current.Pos.Line
	p.nextToken() // if
	p.consume(LPAREN, "expected '(' after if")
	condition := p.ParseExpression(0)
	p.consume(RPAREN, "expected ')' after if condition")
	onTrue := p.parseStatement()
	var onFalse Statement
	if p.current.IsKeyword("else") {
		p.nextToken()
		onFalse = p.parseStatement()
	}
	return NewIf(line, condition, onTrue, onFalse)
}

// parseSwitchStatement parses a switch with constant-folded case keys.
// All arm bodies land in one flat statement vector; each case key maps,
// through the jump table, to the index of the first statement it covers.
// A key that does not fold, a duplicate key, or a second default is a
// compile error.
func (p *Parser) parseSwitchStatement() Statement {
	switchToken := p.nextToken()
	line := switchToken.Pos.Line
	p.consume(LPAREN, "expected '(' after switch")
	subject := p.ParseExpression(0)
	p.consume(RPAREN, "expected ')' after switch expression")
	p.consume(LBRACE, "expected '{' to open switch body")

	ctx := p.currentFunctionContext()
	ctx.switchDepth++
	defer func() { ctx.switchDepth-- }()

	jumpTable := NewAnyJumpTable()
	var statements []Statement
	defaultStatementID := -1
	for p.current.Type != RBRACE {
		p.checkEOF()
		switch {
		case p.current.IsKeyword("case"):
			caseToken := p.nextToken()
			if p.check(LABEL) {
				// `case x:` lexes as one LABEL token; an identifier key never folds.
				panic(NewScriptCompileError(caseToken, "case expression must be a literal"))
			}
			keyExpr := p.ParseExpression(0)
			p.consume(COLON, "expected ':' after case expression")
			key, folded := p.evaluateCTFE(keyExpr)
			if !folded {
				panic(NewScriptCompileError(caseToken, "case expression must be a literal"))
			}
			if _, exists := jumpTable.Lookup(key); exists {
				panic(NewScriptCompileError(caseToken, "duplicate case %s in switch", key.ToUTF8String()))
			}
			jumpTable.Insert(key, len(statements))
		case p.current.IsKeyword("default"):
			defaultToken := p.nextToken()
			p.consume(COLON, "expected ':' after default")
			if defaultStatementID != -1 {
				panic(NewScriptCompileError(defaultToken, "switch may have at most one default"))
			}
			defaultStatementID = len(statements)
		default:
			statements = append(statements, p.parseStatement())
		}
	}
	p.nextToken() // }
	return NewSwitch(line, subject, statements, defaultStatementID, jumpTable)
}

// parseLoopStatement dispatches while/do/for with an optional label. The
// label is live on the context frame's label stack only while the loop
// body parses, so break/continue label validation sees exactly the
// enclosing labels.
func (p *Parser) parseLoopStatement(label string) Statement {
	switch p.current.Text {
	case "while":
		return p.parseWhileStatement(label)
	case "do":
		return p.parseDoWhileStatement(label)
	case "for":
		return p.parseForStatement(label)
	default:
		panic(NewScriptCompileError(p.current, "expected loop statement"))
	}
}

func (p *Parser) enterLoop(label string) func() {
	ctx := p.currentFunctionContext()
	ctx.loopDepth++
	ctx.pushLabel(label)
	return func() {
		ctx.popLabel(label)
		ctx.loopDepth--
	}
}

func (p *Parser) parseWhileStatement(label string) Statement {
	line := p.current.Pos.Line
	p.nextToken() // while
	p.consume(LPAREN, "expected '(' after while")
	condition := p.ParseExpression(0)
	p.consume(RPAREN, "expected ')' after while condition")
	leave := p.enterLoop(label)
	body := p.parseStatement()
	leave()
	return NewWhile(line, condition, body, label)
}

func (p *Parser) parseDoWhileStatement(label string) Statement {
	line := p.current.Pos.Line
	p.nextToken() // do
	leave := p.enterLoop(label)
	body := p.parseStatement()
	leave()
	p.consumeText("while", "expected 'while' after do body")
	p.consume(LPAREN, "expected '(' after do-while")
	condition := p.ParseExpression(0)
	p.consume(RPAREN, "expected ')' after do-while condition")
	p.consume(SEMICOLON, "expected ';' after do-while")
	return NewDoWhile(line, body, condition, label)
}

// parseForStatement parses both the C-style three-clause for and the
// for-of/for-in form. The two are told apart after the init clause: a
// declaration followed by `of` or `in` switches to the iteration form.
func (p *Parser) parseForStatement(label string) Statement {
	line := p.current.Pos.Line
	p.nextToken() // for
	p.consume(LPAREN, "expected '(' after for")

	var initStatement Statement
	if p.check(SEMICOLON) {
		p.nextToken()
	} else if p.current.IsKeyword("var") || p.current.IsKeyword("let") || p.current.IsKeyword("const") {
		decl := p.parseVarDeclaration(false)
		if p.current.IsIdentifier("of") || p.current.IsKeyword("in") {
			return p.parseForOfStatement(line, label, decl)
		}
		p.consume(SEMICOLON, "expected ';' after for initializer")
		initStatement = decl
	} else {
		expr := p.ParseExpression(0)
		p.consume(SEMICOLON, "expected ';' after for initializer")
		initStatement = NewExpressionStatement(line, expr)
	}

	var condition Expression
	if !p.check(SEMICOLON) {
		condition = p.ParseExpression(0)
	}
	p.consume(SEMICOLON, "expected ';' after for condition")
	var increment Expression
	if !p.check(RPAREN) {
		increment = p.ParseExpression(0)
	}
	p.consume(RPAREN, "expected ')' after for clauses")

	leave := p.enterLoop(label)
	body := p.parseStatement()
	leave()
	return NewFor(line, initStatement, condition, increment, body, label)
}

// parseForOfStatement finishes `for (let a[, b] of|in obj) body` from the
// already-parsed declaration: at most two bindings, all bare names,
// qualifier let or const.
func (p *Parser) parseForOfStatement(line int, label string, decl *VarDeclaration) Statement {
	qualifier := decl.QualifierToken
	if qualifier.Text != "let" && qualifier.Text != "const" {
		panic(NewScriptCompileError(qualifier, "for-of declaration qualifier must be let or const"))
	}
	if len(decl.AssignmentNodes) > 2 {
		panic(NewScriptCompileError(qualifier, "for-of declares at most two bindings"))
	}
	var bindings []*VarAccess
	for _, node := range decl.AssignmentNodes {
		va, ok := node.(*VarAccess)
		if !ok {
			panic(NewScriptCompileError(qualifier, "for-of bindings may not have initializers"))
		}
		bindings = append(bindings, va)
	}
	ofInToken := p.nextToken()
	objectToIterate := p.ParseExpression(0)
	p.consume(RPAREN, "expected ')' after for-of expression")
	leave := p.enterLoop(label)
	body := p.parseStatement()
	leave()
	return NewForOf(line, qualifier, ofInToken, bindings, objectToIterate, body, label)
}

// parseBreakOrContinue parses `break label?;` / `continue label?;`. A
// bare break needs an enclosing loop or switch, a bare continue an
// enclosing loop, and a label must name an enclosing labelled loop on
// the current frame's label stack.
func (p *Parser) parseBreakOrContinue() Statement {
	tok := p.nextToken()
	line := tok.Pos.Line
	ctx := p.currentFunctionContext()
	label := ""
	if p.check(IDENTIFIER) {
		label = p.nextToken().Text
		if ctx == nil || !ctx.hasLabel(label) {
			panic(NewScriptCompileError(tok, "undefined label '%s'", label))
		}
	} else if tok.Text == "break" {
		if ctx == nil || !ctx.canBreak() {
			panic(NewScriptCompileError(tok, "break may only be used inside a loop or switch"))
		}
	} else {
		if ctx == nil || !ctx.canContinue() {
			panic(NewScriptCompileError(tok, "continue may only be used inside a loop"))
		}
	}
	p.consume(SEMICOLON, "expected ';' after "+tok.Text)
	return NewBreakOrContinue(line, tok, label)
}

func (p *Parser) parseReturnStatement() Statement {
	tok := p.nextToken()
	var expr Expression
	if !p.check(SEMICOLON) {
		expr = p.ParseExpression(0)
	}
	p.consume(SEMICOLON, "expected ';' after return")
	return NewReturn(tok.Pos.Line, expr)
}

func (p *Parser) parseFunctionDeclaration() Statement {
	fnToken := p.nextToken()
	isGenerator := p.matchType(STAR)
	nameToken := p.current
	p.consume(IDENTIFIER, "expected function name in declaration")
	p.consume(LPAREN, "expected '(' after function name")
	argList, defaults := p.parseArgumentList()
	p.consume(RPAREN, "expected ')' after argument list")
	p.consume(LBRACE, "expected '{' before function body")
	kind := contextNormal
	if isGenerator {
		kind = contextGenerator
	}
	p.pushFunctionContext(kind)
	statements := p.parseStatements(RBRACE)
	p.popFunctionContext()
	p.consume(RBRACE, "expected '}' after function body")
	return NewFunctionDeclaration(fnToken.Pos.Line, nameToken.Text, argList, defaults, statements, isGenerator)
}

func (p *Parser) parseThrowStatement() Statement {
	tok := p.nextToken()
	expr := p.ParseExpression(0)
	p.consume(SEMICOLON, "expected ';' after throw expression")
	return NewThrow(tok.Pos.Line, expr)
}

// parseTryBlockStatement parses try with catch and finally blocks each
// independently optional, at least one required.
func (p *Parser) parseTryBlockStatement() Statement {
	tryToken := p.nextToken()
	tryBlock := p.parseBlock()
	exceptionName := ""
	var catchBlock, finallyBlock Statement
	if p.current.IsKeyword("catch") {
		p.nextToken()
		if p.matchType(LPAREN) {
			nameToken := p.current
			p.consume(IDENTIFIER, "expected exception name in catch clause")
			exceptionName = nameToken.Text
			p.consume(RPAREN, "expected ')' after exception name")
		}
		catchBlock = p.parseBlock()
	}
	if p.current.IsKeyword("finally") {
		p.nextToken()
		finallyBlock = p.parseBlock()
	}
	if catchBlock == nil && finallyBlock == nil {
		panic(NewScriptCompileError(tryToken, "try requires a catch or finally block"))
	}
	return NewTryBlock(tryToken.Pos.Line, tryBlock, exceptionName, catchBlock, finallyBlock)
}

func (p *Parser) parseDeleteStatement() Statement {
	tok := p.nextToken()
	expr := p.ParseExpression(0)
	switch expr.(type) {
	case *MemberAccess, *ArrayIndex:
	default:
		panic(NewScriptCompileError(tok, "delete operand must be a member or index expression"))
	}
	p.consume(SEMICOLON, "expected ';' after delete expression")
	return NewDelete(tok.Pos.Line, tok, expr)
}

func (p *Parser) parseClassDeclaration() Statement {
	classToken := p.nextToken()
	nameToken := p.current
	p.consume(IDENTIFIER, "expected class name in declaration")
	classDef := p.parseClassDefinitionWithBase(classToken, nameToken.Text)
	return NewClassDeclaration(classToken.Pos.Line, classToken, classDef)
}
