package mildew

import (
	"strconv"
	"strings"
)

// parsePrimary parses one syntactic atom: a literal, a grouped or lambda
// expression, an object/array/class/function literal, a variable access,
// or one of the keyword primaries (new, super, yield, the value
// keywords).
func (p *Parser) parsePrimary() Expression {
	p.checkEOF()
	tok := p.current
	switch tok.Type {
	case LPAREN:
		// 3-token lookahead disambiguates a parenthesized lambda
		// parameter list from a grouped expression: `()=>`, `(a)=>`, and
		// `(a, ...` all begin a lambda.
		la0 := p.peekTokens(1)
		la1 := p.peekTokens(2)
		la2 := p.peekTokens(3)
		if la0.Type != LPAREN &&
			(la1.Type == COMMA || la1.Type == ARROW || la2.Type == ARROW) {
			return p.parseLambda(true)
		}
		p.nextToken()
		inner := p.ParseExpression(0)
		p.consume(RPAREN, "expected ')' after parenthesized expression")
		return inner
	case LBRACE:
		return p.parseObjectLiteral()
	case INTEGER, DOUBLE, REGEX:
		p.nextToken()
		return NewLiteral(tok)
	case STRING:
		if tok.LiteralFlag == LiteralTemplate {
			node := p.parseTemplateString(tok)
			p.nextToken()
			return node
		}
		p.nextToken()
		return NewLiteral(tok)
	case KEYWORD:
		switch tok.Text {
		case "true", "false", "null", "undefined":
			p.nextToken()
			return NewLiteral(tok)
		case "function":
			return p.parseFunctionLiteral()
		case "class":
			return p.parseClassExpression()
		case "new":
			return p.parseNewExpression()
		case "super":
			return p.parseSuper()
		case "yield":
			return p.parseYield()
		default:
			panic(NewScriptCompileError(tok, "unexpected keyword '%s' in primary expression", tok.Text))
		}
	case IDENTIFIER:
		if p.peekTokens(1).Type == ARROW {
			return p.parseLambda(false)
		}
		p.nextToken()
		return NewVarAccess(tok)
	case LBRACKET:
		p.nextToken()
		values := p.parseCommaSeparatedExpressions(RBRACKET)
		p.consume(RBRACKET, "expected ']' after array literal")
		return NewArrayLiteral(values)
	default:
		panic(NewScriptCompileError(tok, "unexpected token in primary expression"))
	}
}

// parseArgumentList parses a function/method/lambda parameter list up to
// (not consuming) the closing ')'. A parameter with a default value may
// not be followed by one without — the (name, default) pairing the
// FunctionLiteral carries cannot be populated otherwise.
func (p *Parser) parseArgumentList() ([]string, []Expression) {
	var argList []string
	var defaults []Expression
	for p.current.Type != RPAREN && p.current.Type != EOF {
		name := p.current.Text
		p.consume(IDENTIFIER, "expected parameter name in argument list")
		argList = append(argList, name)
		if p.check(ASSIGN) {
			p.nextToken()
			defaults = append(defaults, p.ParseExpression(0))
		} else if len(defaults) != 0 {
			panic(NewScriptCompileError(p.current, "default arguments must be last"))
		}
		if p.check(COMMA) {
			p.nextToken()
		} else if p.current.Type != RPAREN {
			panic(NewScriptCompileError(p.current, "arguments must be separated by ','"))
		}
	}
	return argList, defaults
}

// parseFunctionLiteral parses `function *? name? ( params ) { body }` as
// an expression. A '*' after the function keyword marks a generator,
// which switches the pushed context frame so yield becomes legal inside
// the body.
func (p *Parser) parseFunctionLiteral() Expression {
	fnToken := p.nextToken()
	isGenerator := p.matchType(STAR)
	optName := ""
	if p.check(IDENTIFIER) {
		optName = p.nextToken().Text
	}
	p.consume(LPAREN, "expected '(' after function")
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
	return NewFunctionLiteral(fnToken, argList, defaults, statements, optName, false, isGenerator)
}

// parseLambda parses an arrow function, either `(a, b = 1) => ...` when
// hasParentheses or the single-parameter `a => ...` form.
func (p *Parser) parseLambda(hasParentheses bool) Expression {
	var argList []string
	var defaults []Expression
	if hasParentheses {
		p.nextToken() // (
		argList, defaults = p.parseArgumentList()
		p.consume(RPAREN, "expected ')' after lambda parameter list")
	} else {
		name := p.current.Text
		p.consume(IDENTIFIER, "expected parameter name in lambda expression")
		argList = append(argList, name)
	}
	arrow := p.current
	p.consume(ARROW, "expected '=>' in lambda expression")
	if p.check(LBRACE) {
		p.nextToken()
		p.pushFunctionContext(contextNormal)
		statements := p.parseStatements(RBRACE)
		p.popFunctionContext()
		p.consume(RBRACE, "expected '}' after lambda body")
		return NewLambdaBlock(arrow, argList, defaults, statements)
	}
	return NewLambdaExpr(arrow, argList, defaults, p.ParseExpression(0))
}

// parseNewExpression parses `new expr`. When the parsed expression is
// already a call its ReturnThis flag is rewritten; a bare `new Ctor` gets
// an implicit zero-argument call.
func (p *Parser) parseNewExpression() Expression {
	p.nextToken() // new
	expr := p.ParseExpression(0)
	fcn, ok := expr.(*FunctionCall)
	if !ok {
		fcn = NewFunctionCall(expr, nil, true)
	} else {
		fcn = NewFunctionCall(fcn.FunctionToCall, fcn.ArgumentNodes, true)
	}
	return NewNewExpression(fcn)
}

// parseSuper parses the `super` primary, legal only while the base-class
// stack is non-empty, i.e. lexically inside a derived class body.
func (p *Parser) parseSuper() Expression {
	tok := p.current
	if len(p.baseClassStack) == 0 {
		panic(NewScriptCompileError(tok, "super expression only allowed in derived classes"))
	}
	p.nextToken()
	return NewSuper(tok, p.baseClassStack[len(p.baseClassStack)-1])
}

// parseYield parses `yield expr?`, legal only when the innermost function
// context frame is a generator.
func (p *Parser) parseYield() Expression {
	ctx := p.currentFunctionContext()
	if ctx == nil || !ctx.canYield() {
		panic(NewScriptCompileError(p.current, "yield may only be used in generator functions"))
	}
	tok := p.nextToken()
	var expr Expression
	if p.current.Type != RBRACE && p.current.Type != SEMICOLON {
		expr = p.ParseExpression(0)
	}
	return NewYield(tok, expr)
}

// parseObjectLiteral parses `{ key: value, ... }`. Keys may be
// identifiers, strings, or labels (whose ':' the lexer already folded
// into the token).
func (p *Parser) parseObjectLiteral() Expression {
	startToken := p.nextToken() // {
	var keys []string
	var values []Expression
	for p.current.Type != RBRACE {
		p.checkEOF()
		keyToken := p.current
		if keyToken.Type != IDENTIFIER && keyToken.Type != STRING && keyToken.Type != LABEL {
			panic(NewScriptCompileError(keyToken, "invalid key for object literal"))
		}
		keys = append(keys, keyToken.Text)
		p.nextToken()
		if keyToken.Type != LABEL {
			p.consume(COLON, "expected ':' after object literal key")
		}
		values = append(values, p.ParseExpression(0))
		if p.check(COMMA) {
			p.nextToken()
		} else if p.current.Type != RBRACE {
			panic(NewScriptCompileError(p.current, "key value pairs must be separated by ','"))
		}
	}
	p.nextToken() // }
	if len(keys) != len(values) {
		panic(NewScriptCompileError(startToken, "malformed object literal"))
	}
	return NewObjectLiteral(keys, values)
}

// parseClassExpression parses `class name? (extends expr)? { members }`
// as an expression. Both the class primary and class declarations route
// through the shared parseClassDefinition.
func (p *Parser) parseClassExpression() Expression {
	classToken := p.nextToken()
	className := "<anonymous class>"
	if p.check(IDENTIFIER) {
		className = p.nextToken().Text
	}
	classDef := p.parseClassDefinitionWithBase(classToken, className)
	return NewClassLiteral(classToken, classDef)
}

// parseClassDefinitionWithBase handles the optional `extends` clause,
// keeping the base-class stack balanced around the member parse so
// nested class bodies see the correct super target.
func (p *Parser) parseClassDefinitionWithBase(classToken *Token, className string) *ClassDefinition {
	var baseClass Expression
	if p.current.IsKeyword("extends") {
		p.nextToken()
		baseClass = p.ParseExpression(0)
		p.baseClassStack = append(p.baseClassStack, baseClass)
		defer func() {
			p.baseClassStack = p.baseClassStack[:len(p.baseClassStack)-1]
		}()
	}
	return p.parseClassDefinition(classToken, className, baseClass)
}

// parseClassDefinition parses the `{ members }` body shared by class
// literals and class declarations. Each member is classified by a
// one-token prefix (get, set, static, or nothing); `constructor` names
// the constructor and forbids prefixes.
func (p *Parser) parseClassDefinition(classToken *Token, className string, baseClass Expression) *ClassDefinition {
	p.consume(LBRACE, "expected '{' before class body")
	var constructor *FunctionLiteral
	var methodNames, getNames, setNames, staticNames []string
	var methods, getters, setters, statics []*FunctionLiteral
	for p.current.Type != RBRACE {
		p.checkEOF()
		prefix := ""
		if p.check(IDENTIFIER) && p.peekTokens(1).Type != LPAREN {
			switch p.current.Text {
			case "get", "set", "static":
				prefix = p.nextToken().Text
			default:
				panic(NewScriptCompileError(p.current, "invalid class member prefix '%s'", p.current.Text))
			}
		}
		nameToken := p.current
		p.consume(IDENTIFIER, "expected method name in class body")
		name := nameToken.Text
		isConstructor := name == "constructor"
		if isConstructor && prefix != "" {
			panic(NewScriptCompileError(nameToken, "constructor may not be declared %s", prefix))
		}
		kind := contextMethod
		if isConstructor {
			kind = contextConstructor
		}
		method := p.parseClassMethod(nameToken, name, kind)
		switch {
		case isConstructor:
			if constructor != nil {
				panic(NewScriptCompileError(nameToken, "class may have at most one constructor"))
			}
			constructor = method
		case prefix == "get":
			checkDuplicateMethod(nameToken, getNames, name)
			getNames = append(getNames, name)
			getters = append(getters, method)
		case prefix == "set":
			checkDuplicateMethod(nameToken, setNames, name)
			setNames = append(setNames, name)
			setters = append(setters, method)
		case prefix == "static":
			checkDuplicateMethod(nameToken, staticNames, name)
			staticNames = append(staticNames, name)
			statics = append(statics, method)
		default:
			checkDuplicateMethod(nameToken, methodNames, name)
			methodNames = append(methodNames, name)
			methods = append(methods, method)
		}
	}
	p.nextToken() // }
	if baseClass != nil && constructor != nil {
		if countSuperCalls(constructor.Statements) != 1 {
			panic(NewScriptCompileError(classToken, "derived class constructor must contain exactly one super call"))
		}
	}
	return NewClassDefinition(className, constructor,
		methodNames, methods, getNames, getters, setNames, setters,
		staticNames, statics, baseClass)
}

func checkDuplicateMethod(tok *Token, names []string, name string) {
	for _, existing := range names {
		if existing == name {
			panic(NewScriptCompileError(tok, "duplicate method name '%s' in class body", name))
		}
	}
}

// parseClassMethod parses `( params ) { body }` for one class member,
// with the context frame kind chosen by the caller.
func (p *Parser) parseClassMethod(nameToken *Token, name string, kind functionContextKind) *FunctionLiteral {
	p.consume(LPAREN, "expected '(' after method name")
	argList, defaults := p.parseArgumentList()
	p.consume(RPAREN, "expected ')' after method parameter list")
	p.consume(LBRACE, "expected '{' before method body")
	p.pushFunctionContext(kind)
	statements := p.parseStatements(RBRACE)
	p.popFunctionContext()
	p.consume(RBRACE, "expected '}' after method body")
	return NewFunctionLiteral(nameToken, argList, defaults, statements, name, true, false)
}

// countSuperCalls counts the constructor-body statements that are an
// expression statement whose expression is a call to super.
func countSuperCalls(statements []Statement) int {
	count := 0
	for _, stmt := range statements {
		es, ok := stmt.(*ExpressionStatement)
		if !ok {
			continue
		}
		fc, ok := es.ExpressionNode.(*FunctionCall)
		if !ok {
			continue
		}
		if _, ok := fc.FunctionToCall.(*Super); ok {
			count++
		}
	}
	return count
}

// parseTemplateString rescans a template token's body in two states,
// literal and expression. `${` opens expression state and a matching `}`
// at brace depth zero closes it; each closed expression substring is fed
// through a fresh Lexer and Parser. The caller consumes the template
// token itself.
func (p *Parser) parseTemplateString(tok *Token) Expression {
	text := tok.Text
	litState := true
	textIndex := 0
	var currentExpr, currentLit strings.Builder
	var nodes []Expression
	bracketStack := 0

	flushLit := func() {
		if currentLit.Len() > 0 {
			lit := NewToken(STRING, tok.Pos, currentLit.String())
			nodes = append(nodes, NewLiteral(lit))
		}
	}

	for textIndex < len(text) {
		if litState {
			if strings.HasPrefix(text[textIndex:], "${") {
				currentExpr.Reset()
				textIndex += 2
				litState = false
				flushLit()
			} else {
				currentLit.WriteByte(text[textIndex])
				textIndex++
			}
		} else {
			switch {
			case text[textIndex] == '}' && bracketStack == 0:
				currentLit.Reset()
				textIndex++
				litState = true
				if currentExpr.Len() > 0 {
					nodes = append(nodes, p.parseTemplateExpression(tok, currentExpr.String()))
				}
			case text[textIndex] == '}':
				currentExpr.WriteByte(text[textIndex])
				textIndex++
				bracketStack--
			default:
				if text[textIndex] == '{' {
					bracketStack++
				}
				currentExpr.WriteByte(text[textIndex])
				textIndex++
			}
		}
	}
	if !litState {
		panic(NewScriptCompileError(tok, "unclosed template expression"))
	}
	flushLit()
	return NewTemplateString(nodes)
}

// parseTemplateExpression runs one extracted `${...}` substring through a
// fresh lexer and parser. Lex errors, leftover tokens, or a nested
// compile error all abort the outer parse.
func (p *Parser) parseTemplateExpression(tok *Token, src string) Expression {
	lexer := NewLexer(src)
	tokens := lexer.Tokenize()
	if lexer.HasErrors() {
		panic(NewScriptCompileError(tok, "invalid characters in template expression"))
	}
	sub := NewParser(tokens)
	expr := sub.ParseExpression(0)
	if sub.current.Type != EOF {
		panic(NewScriptCompileError(tok, "unexpected token %s in template expression", sub.current))
	}
	return expr
}

// evaluateCTFE folds a case-key expression to a static value. Only
// literal tokens fold: the value keywords, integers in any radix,
// doubles, and strings. The second return reports whether the expression
// folded at all.
func (p *Parser) evaluateCTFE(expr Expression) (ScriptAny, bool) {
	literal, ok := expr.(*Literal)
	if !ok {
		return Undefined(), false
	}
	tok := literal.LiteralToken
	switch {
	case tok.IsKeyword("true"):
		return NewBool(true), true
	case tok.IsKeyword("false"):
		return NewBool(false), true
	case tok.IsKeyword("null"):
		return Null(), true
	case tok.IsKeyword("undefined"):
		return Undefined(), true
	case tok.Type == DOUBLE:
		d, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			panic(NewScriptCompileError(tok, "malformed double literal"))
		}
		return NewFloat(d), true
	case tok.Type == STRING:
		return NewStringAny(NewScriptString(tok.Text)), true
	case tok.Type == INTEGER:
		base := 10
		body := tok.Text
		switch tok.LiteralFlag {
		case LiteralBinary:
			base, body = 2, tok.Text[2:]
		case LiteralOctal:
			base, body = 8, tok.Text[2:]
		case LiteralHexadecimal:
			base, body = 16, tok.Text[2:]
		}
		i, err := strconv.ParseInt(body, base, 64)
		if err != nil {
			panic(NewScriptCompileError(tok, "malformed integer literal"))
		}
		return NewInt(i), true
	default:
		return Undefined(), false
	}
}
