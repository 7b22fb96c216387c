package mildew

// precedence tables, frozen. Higher number binds tighter.
const (
	precMemberIndexCall = 20
	precPostfix         = 18
	precPrefix          = 17
	precPow             = 16
	precMulDivMod       = 15
	precAddSub          = 14
	precShift           = 13
	precCompare         = 12
	precEquality        = 11
	precBitAnd          = 10
	precBitXor          = 9
	precBitOr           = 8
	precLogicalAnd      = 7
	precLogicalOr       = 6
	precNullish         = 5
	precTernary         = 4
	precAssignment      = 3
)

var binaryPrecedence = map[TokenType]int{
	DOT: precMemberIndexCall, LBRACKET: precMemberIndexCall, LPAREN: precMemberIndexCall,
	POW: precPow,
	STAR: precMulDivMod, FSLASH: precMulDivMod, PERCENT: precMulDivMod,
	PLUS: precAddSub, DASH: precAddSub,
	BITLSHIFT: precShift, BITRSHIFT: precShift, BITURSHIFT: precShift,
	LT: precCompare, LE: precCompare, GT: precCompare, GE: precCompare,
	EQUALS: precEquality, NEQUALS: precEquality, STRICTEQUALS: precEquality, STRICTNEQUALS: precEquality,
	BITAND: precBitAnd,
	BITXOR: precBitXor,
	BITOR: precBitOr,
	AND: precLogicalAnd,
	OR: precLogicalOr,
	NULLC: precNullish,
	QUESTION: precTernary,
	ASSIGN: precAssignment, POWASSIGN: precAssignment, STARASSIGN: precAssignment,
	FSLASHASSIGN: precAssignment, PERCENTASSIGN: precAssignment, PLUSASSIGN: precAssignment,
	DASHASSIGN: precAssignment, BANDASSIGN: precAssignment, BXORASSIGN: precAssignment,
	BORASSIGN: precAssignment, BLSASSIGN: precAssignment, BRSASSIGN: precAssignment,
	BURSASSIGN: precAssignment,
}

// leftAssocOps collects every binary operator that associates leftward;
// everything absent from this set (**, ?:, and the assignment family) is
// right-associative.
var leftAssocOps = map[TokenType]bool{
	DOT: true, LBRACKET: true, LPAREN: true,
	STAR: true, FSLASH: true, PERCENT: true,
	PLUS: true, DASH: true,
	BITLSHIFT: true, BITRSHIFT: true, BITURSHIFT: true,
	LT: true, LE: true, GT: true, GE: true,
	EQUALS: true, NEQUALS: true, STRICTEQUALS: true, STRICTNEQUALS: true,
	BITAND: true, BITXOR: true, BITOR: true,
	AND: true, OR: true, NULLC: true,
}

// instanceof shares precCompare and typeof shares precPrefix; both are
// KEYWORD tokens, so binaryOpPrecedence and unaryOpPrecedence look them
// up by text rather than TokenType.

func unaryOpPrecedence(tok *Token) (int, bool) {
	switch tok.Type {
	case PLUS, DASH, NOT, BITNOT, INC, DEC:
		return precPrefix, true
	case KEYWORD:
		if tok.Text == "typeof" {
			return precPrefix, true
		}
	}
	return 0, false
}

func binaryOpPrecedence(tok *Token) (int, bool) {
	if tok.Type == KEYWORD && tok.Text == "instanceof" {
		return precCompare, true
	}
	prec, ok := binaryPrecedence[tok.Type]
	return prec, ok
}

func isBinaryOpLeftAssoc(tok *Token) bool {
	if tok.Type == KEYWORD && tok.Text == "instanceof" {
		return true
	}
	return leftAssocOps[tok.Type]
}

// Parser consumes a token vector produced by Lexer and emits one Block
// statement, the "program". It pre-reads the first token at construction
// and looks ahead at most three tokens, matching the single-pass
// recursive-descent shape of the grammar in doc.go.
type Parser struct {
	tokens  []*Token
	pos     int
	current *Token

	baseClassStack   []Expression
	functionContexts []*functionContext
}

// NewParser constructs a Parser over tokens, which must be non-empty and
// end with an EOF token (as Lexer.Tokenize always produces).
func NewParser(tokens []*Token) *Parser {
	p := &Parser{tokens: tokens}
	p.current = p.tokens[0]
	return p
}

func (p *Parser) peekTokens(n int) *Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) nextToken() *Token {
	tok := p.current
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.current = p.tokens[p.pos]
	return tok
}

func (p *Parser) checkEOF() {
	if p.current.Type == EOF {
		panic(NewScriptCompileError(p.current, "unexpected end of input"))
	}
}

// consume requires the current token to have type typ, advancing past it.
func (p *Parser) consume(typ TokenType, message string) *Token {
	if p.current.Type != typ {
		panic(NewScriptCompileError(p.current, "%s", message))
	}
	return p.nextToken()
}

// consumeText requires the current token to be the KEYWORD or
// IDENTIFIER spelled text.
func (p *Parser) consumeText(text string, message string) *Token {
	if p.current.Text != text {
		panic(NewScriptCompileError(p.current, "%s", message))
	}
	return p.nextToken()
}

func (p *Parser) check(typ TokenType) bool { return p.current.Type == typ }

func (p *Parser) matchType(typ TokenType) bool {
	if p.check(typ) {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) currentFunctionContext() *functionContext {
	if len(p.functionContexts) == 0 {
		return nil
	}
	return p.functionContexts[len(p.functionContexts)-1]
}

func (p *Parser) pushFunctionContext(kind functionContextKind) *functionContext {
	ctx := newFunctionContext(kind)
	p.functionContexts = append(p.functionContexts, ctx)
	return ctx
}

func (p *Parser) popFunctionContext() {
	p.functionContexts = p.functionContexts[:len(p.functionContexts)-1]
}

// ParseProgram consumes the entire token vector and returns one Block
// statement. Every compile-error site in this package raises a
// *ScriptCompileError via panic so the deeply nested recursive descent
// doesn't thread an error return through every call; ParseProgram
// recovers it into the returned error and discards any partially-built
// statement list.
func (p *Parser) ParseProgram() (prog *Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*ScriptCompileError); ok {
				err = ce
				prog = nil
				return
			}
			panic(r)
		}
	}()
	// The program body acts as an implicit normal-function frame so
	// break/continue/yield legality checks have a frame to consult.
	p.pushFunctionContext(contextNormal)
	defer p.popFunctionContext()
	statements := p.parseStatements(EOF)
	return NewBlock(1, statements), nil
}

// ParseExpression parses one expression starting at min_prec, used both
// by the top-level statement grammar and by the template sub-parser.
func (p *Parser) ParseExpression(minPrec int) Expression {
	left := p.parseUnary(minPrec)
	for {
		tok := p.current
		if (tok.Type == INC || tok.Type == DEC) && precPostfix >= minPrec {
			p.nextToken()
			left = p.applyPostfixRotation(left, tok)
			continue
		}
		prec, isBinary := binaryOpPrecedence(tok)
		if !isBinary || prec < minPrec {
			break
		}
		switch tok.Type {
		case QUESTION:
			p.nextToken()
			onTrue := p.ParseExpression(0)
			p.consume(COLON, "expected ':' in ternary expression")
			onFalse := p.ParseExpression(precTernary)
			left = NewTerniaryOp(left, onTrue, onFalse)
		case DOT:
			p.nextToken()
			member := p.parsePrimaryIdentifierOnly()
			left = NewMemberAccess(left, tok, member)
		case LBRACKET:
			p.nextToken()
			index := p.ParseExpression(0)
			p.consume(RBRACKET, "expected ']' after index expression")
			left = NewArrayIndex(left, index)
		case LPAREN:
			p.nextToken()
			args := p.parseCommaSeparatedExpressions(RPAREN)
			p.consume(RPAREN, "expected ')' after argument list")
			left = NewFunctionCall(left, args, false)
		default:
			if tok.IsAssignmentOperator() {
				if !isAssignable(left) {
					panic(NewScriptCompileError(tok, "left-hand side of assignment must be a variable, member, or index expression"))
				}
			}
			p.nextToken()
			nextMinPrec := prec
			if isBinaryOpLeftAssoc(tok) {
				nextMinPrec = prec + 1
			}
			right := p.ParseExpression(nextMinPrec)
			left = NewBinaryOp(tok, left, right)
		}
	}
	return left
}

func isAssignable(expr Expression) bool {
	switch expr.(type) {
	case *VarAccess, *MemberAccess, *ArrayIndex:
		return true
	default:
		return false
	}
}

// applyPostfixRotation implements the precedence-18 postfix/prefix
// rotation. When left is itself a prefix UnaryOp, the postfix operator
// binds to the prefix's operand instead of to the whole prefix
// expression, so `(-x)++` parses as `-(x++)`. Any other shape of left
// takes the postfix operator directly.
func (p *Parser) applyPostfixRotation(left Expression, opTok *Token) Expression {
	if u, ok := left.(*UnaryOp); ok && !u.IsPostfix {
		u.OperandNode = NewUnaryOp(opTok, u.OperandNode, true)
		return u
	}
	return NewUnaryOp(opTok, left, true)
}

// parseUnary handles the prefix-operator half of ParseExpression: either
// a prefix unary application or a primary expression.
func (p *Parser) parseUnary(minPrec int) Expression {
	tok := p.current
	if prec, ok := unaryOpPrecedence(tok); ok && prec >= minPrec {
		p.nextToken()
		operand := p.ParseExpression(prec)
		return NewUnaryOp(tok, operand, false)
	}
	return p.parsePrimary()
}

// parseCommaSeparatedExpressions parses a comma-separated expression list
// up to (not consuming) a token of type end.
func (p *Parser) parseCommaSeparatedExpressions(end TokenType) []Expression {
	var exprs []Expression
	if p.check(end) {
		return exprs
	}
	exprs = append(exprs, p.ParseExpression(0))
	for p.matchType(COMMA) {
		if p.check(end) {
			break
		}
		exprs = append(exprs, p.ParseExpression(0))
	}
	return exprs
}

// parsePrimaryIdentifierOnly parses the right operand of `.`, which the
// grammar requires to be a VarAccessNode. The lexer already degrades
// return/throw/delete/catch/finally to IDENTIFIER after a DOT, so any
// KEYWORD arriving here is a genuine error.
func (p *Parser) parsePrimaryIdentifierOnly() Expression {
	tok := p.current
	if tok.Type != IDENTIFIER {
		panic(NewScriptCompileError(tok, "right hand side of '.' operator must be an identifier"))
	}
	p.nextToken()
	return NewVarAccess(tok)
}
