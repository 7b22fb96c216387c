package mildew

// Expression is the base of every expression-node variant. Unlike
// Statement, no expression needs its own line number — the token(s) each
// variant carries already pin a position when diagnostics need one.
type Expression interface {
	Accept(visitor ExpressionVisitor) ScriptAny
	String() string
}

// ExpressionVisitor answers one method per Expression variant.
type ExpressionVisitor interface {
	VisitLiteral(node *Literal) ScriptAny
	VisitFunctionLiteral(node *FunctionLiteral) ScriptAny
	VisitLambda(node *Lambda) ScriptAny
	VisitTemplateString(node *TemplateString) ScriptAny
	VisitArrayLiteral(node *ArrayLiteral) ScriptAny
	VisitObjectLiteral(node *ObjectLiteral) ScriptAny
	VisitClassLiteral(node *ClassLiteral) ScriptAny
	VisitBinaryOp(node *BinaryOp) ScriptAny
	VisitUnaryOp(node *UnaryOp) ScriptAny
	VisitTerniaryOp(node *TerniaryOp) ScriptAny
	VisitVarAccess(node *VarAccess) ScriptAny
	VisitFunctionCall(node *FunctionCall) ScriptAny
	VisitArrayIndex(node *ArrayIndex) ScriptAny
	VisitMemberAccess(node *MemberAccess) ScriptAny
	VisitNewExpression(node *NewExpression) ScriptAny
	VisitSuper(node *Super) ScriptAny
	VisitYield(node *Yield) ScriptAny
}

// Literal wraps a single literal token (number, string, regex, or the
// value keywords true/false/null/undefined).
type Literal struct {
	LiteralToken *Token
}

func NewLiteral(literalToken *Token) *Literal { return &Literal{LiteralToken: literalToken} }

func (n *Literal) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitLiteral(n) }

func (n *Literal) String() string { return n.LiteralToken.Symbol() }

// FunctionLiteral is a function/method/constructor/generator body.
// OptionalName is "" for an anonymous function expression; IsClass marks
// a method parsed as part of a ClassDefinition.
type FunctionLiteral struct {
	Token              *Token
	ArgList            []string
	DefaultArguments   []Expression
	Statements         []Statement
	OptionalName       string
	IsClass            bool
	IsGenerator        bool
}

func NewFunctionLiteral(token *Token, argList []string, defaultArguments []Expression, statements []Statement, optionalName string, isClass, isGenerator bool) *FunctionLiteral {
	return &FunctionLiteral{
		Token: token, ArgList: argList, DefaultArguments: defaultArguments,
		Statements: statements, OptionalName: optionalName, IsClass: isClass, IsGenerator: isGenerator,
	}
}

func (n *FunctionLiteral) Accept(visitor ExpressionVisitor) ScriptAny {
	return visitor.VisitFunctionLiteral(n)
}

func (n *FunctionLiteral) String() string {
	name := n.OptionalName
	if name == "" {
		name = "<anonymous>"
	}
	return "function " + name + "(...)"
}

// Lambda is an arrow function; exactly one of Statements or
// ReturnExpression is populated, mirroring the block-body vs.
// expression-body arrow forms.
type Lambda struct {
	ArrowToken       *Token
	ArgumentList     []string
	DefaultArguments []Expression
	Statements       []Statement
	ReturnExpression Expression
}

func NewLambdaBlock(arrowToken *Token, argumentList []string, defaultArguments []Expression, statements []Statement) *Lambda {
	return &Lambda{ArrowToken: arrowToken, ArgumentList: argumentList, DefaultArguments: defaultArguments, Statements: statements}
}

func NewLambdaExpr(arrowToken *Token, argumentList []string, defaultArguments []Expression, returnExpression Expression) *Lambda {
	return &Lambda{ArrowToken: arrowToken, ArgumentList: argumentList, DefaultArguments: defaultArguments, ReturnExpression: returnExpression}
}

func (n *Lambda) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitLambda(n) }

func (n *Lambda) String() string { return "(...) => ..." }

// TemplateString alternates literal-string children with evaluated
// sub-expression children, produced by the template sub-parser.
type TemplateString struct {
	Nodes []Expression
}

func NewTemplateString(nodes []Expression) *TemplateString { return &TemplateString{Nodes: nodes} }

func (n *TemplateString) Accept(visitor ExpressionVisitor) ScriptAny {
	return visitor.VisitTemplateString(n)
}

func (n *TemplateString) String() string { return "`template`" }

// ArrayLiteral is an array literal (empty allowed).
type ArrayLiteral struct {
	ValueNodes []Expression
}

func NewArrayLiteral(valueNodes []Expression) *ArrayLiteral { return &ArrayLiteral{ValueNodes: valueNodes} }

func (n *ArrayLiteral) Accept(visitor ExpressionVisitor) ScriptAny {
	return visitor.VisitArrayLiteral(n)
}

func (n *ArrayLiteral) String() string { return "[...]" }

// ObjectLiteral pairs Keys[i] with ValueNodes[i] in declaration order.
type ObjectLiteral struct {
	Keys       []string
	ValueNodes []Expression
}

func NewObjectLiteral(keys []string, valueNodes []Expression) *ObjectLiteral {
	return &ObjectLiteral{Keys: keys, ValueNodes: valueNodes}
}

func (n *ObjectLiteral) Accept(visitor ExpressionVisitor) ScriptAny {
	return visitor.VisitObjectLiteral(n)
}

func (n *ObjectLiteral) String() string { return "{...}" }

// ClassDefinition is shared by ClassLiteral and ClassDeclaration: a name,
// an optional constructor, parallel (name, literal) lists for ordinary /
// get-accessor / set-accessor / static methods, and an optional base
// class expression.
type ClassDefinition struct {
	ClassName        string
	Constructor      *FunctionLiteral
	MethodNames      []string
	Methods          []*FunctionLiteral
	GetMethodNames   []string
	GetMethods       []*FunctionLiteral
	SetMethodNames   []string
	SetMethods       []*FunctionLiteral
	StaticMethodNames []string
	StaticMethods    []*FunctionLiteral
	BaseClass        Expression
}

func NewClassDefinition(
	className string,
	constructor *FunctionLiteral,
	methodNames []string, methods []*FunctionLiteral,
	getMethodNames []string, getMethods []*FunctionLiteral,
	setMethodNames []string, setMethods []*FunctionLiteral,
	staticMethodNames []string, staticMethods []*FunctionLiteral,
	baseClass Expression,
) *ClassDefinition {
	return &ClassDefinition{
		ClassName: className, Constructor: constructor,
		MethodNames: methodNames, Methods: methods,
		GetMethodNames: getMethodNames, GetMethods: getMethods,
		SetMethodNames: setMethodNames, SetMethods: setMethods,
		StaticMethodNames: staticMethodNames, StaticMethods: staticMethods,
		BaseClass: baseClass,
	}
}

func (d *ClassDefinition) String() string { return "class " + d.ClassName + " {...}" }

// ClassLiteral is the `class` primary expression.
type ClassLiteral struct {
	ClassToken      *Token
	ClassDefinition *ClassDefinition
}

func NewClassLiteral(classToken *Token, classDefinition *ClassDefinition) *ClassLiteral {
	return &ClassLiteral{ClassToken: classToken, ClassDefinition: classDefinition}
}

func (n *ClassLiteral) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitClassLiteral(n) }

func (n *ClassLiteral) String() string { return n.ClassDefinition.String() }

// BinaryOp is any precedence-3-through-16 infix operator application.
type BinaryOp struct {
	OpToken   *Token
	LeftNode  Expression
	RightNode Expression
}

func NewBinaryOp(opToken *Token, leftNode, rightNode Expression) *BinaryOp {
	return &BinaryOp{OpToken: opToken, LeftNode: leftNode, RightNode: rightNode}
}

func (n *BinaryOp) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitBinaryOp(n) }

func (n *BinaryOp) String() string {
	return "(" + n.LeftNode.String() + " " + n.OpToken.Symbol() + " " + n.RightNode.String() + ")"
}

// UnaryOp is a prefix or (IsPostfix) postfix unary operator application.
type UnaryOp struct {
	OpToken     *Token
	OperandNode Expression
	IsPostfix   bool
}

func NewUnaryOp(opToken *Token, operandNode Expression, isPostfix bool) *UnaryOp {
	return &UnaryOp{OpToken: opToken, OperandNode: operandNode, IsPostfix: isPostfix}
}

func (n *UnaryOp) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitUnaryOp(n) }

func (n *UnaryOp) String() string {
	if n.IsPostfix {
		return "(" + n.OperandNode.String() + n.OpToken.Symbol() + ")"
	}
	sym := n.OpToken.Symbol()
	if n.OpToken.Type == KEYWORD {
		sym += " "
	}
	return "(" + sym + n.OperandNode.String() + ")"
}

// TerniaryOp is the `cond ? a : b` expression.
type TerniaryOp struct {
	ConditionNode Expression
	OnTrueNode    Expression
	OnFalseNode   Expression
}

func NewTerniaryOp(conditionNode, onTrueNode, onFalseNode Expression) *TerniaryOp {
	return &TerniaryOp{ConditionNode: conditionNode, OnTrueNode: onTrueNode, OnFalseNode: onFalseNode}
}

func (n *TerniaryOp) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitTerniaryOp(n) }

func (n *TerniaryOp) String() string {
	return "(" + n.ConditionNode.String() + " ? " + n.OnTrueNode.String() + " : " + n.OnFalseNode.String() + ")"
}

// VarAccess references a bound name.
type VarAccess struct {
	VarToken *Token
}

func NewVarAccess(varToken *Token) *VarAccess { return &VarAccess{VarToken: varToken} }

func (n *VarAccess) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitVarAccess(n) }

func (n *VarAccess) String() string { return n.VarToken.Text }

// FunctionCall applies ArgumentNodes to FunctionToCall. ReturnThis is set
// when this node was produced as the inner call of a `new` expression.
type FunctionCall struct {
	FunctionToCall Expression
	ArgumentNodes  []Expression
	ReturnThis     bool
}

func NewFunctionCall(functionToCall Expression, argumentNodes []Expression, returnThis bool) *FunctionCall {
	return &FunctionCall{FunctionToCall: functionToCall, ArgumentNodes: argumentNodes, ReturnThis: returnThis}
}

func (n *FunctionCall) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitFunctionCall(n) }

func (n *FunctionCall) String() string { return n.FunctionToCall.String() + "(...)" }

// ArrayIndex is the `obj[index]` expression.
type ArrayIndex struct {
	ObjectNode Expression
	IndexNode  Expression
}

func NewArrayIndex(objectNode, indexNode Expression) *ArrayIndex {
	return &ArrayIndex{ObjectNode: objectNode, IndexNode: indexNode}
}

func (n *ArrayIndex) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitArrayIndex(n) }

func (n *ArrayIndex) String() string { return n.ObjectNode.String() + "[" + n.IndexNode.String() + "]" }

// MemberAccess is the `obj.member` expression; MemberNode is always a
// *VarAccess, enforced by the parser.
type MemberAccess struct {
	ObjectNode Expression
	DotToken   *Token
	MemberNode Expression
}

func NewMemberAccess(objectNode Expression, dotToken *Token, memberNode Expression) *MemberAccess {
	return &MemberAccess{ObjectNode: objectNode, DotToken: dotToken, MemberNode: memberNode}
}

func (n *MemberAccess) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitMemberAccess(n) }

func (n *MemberAccess) String() string { return n.ObjectNode.String() + "." + n.MemberNode.String() }

// NewExpression wraps the FunctionCall produced for a `new Ctor(...)`
// expression, whose ReturnThis flag is always true.
type NewExpression struct {
	FunctionCallNode *FunctionCall
}

func NewNewExpression(functionCallNode *FunctionCall) *NewExpression {
	return &NewExpression{FunctionCallNode: functionCallNode}
}

func (n *NewExpression) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitNewExpression(n) }

func (n *NewExpression) String() string { return "new " + n.FunctionCallNode.String() }

// Super is the `super` primary, legal only inside a derived class body.
type Super struct {
	SuperToken *Token
	BaseClass  Expression
}

func NewSuper(superToken *Token, baseClass Expression) *Super {
	return &Super{SuperToken: superToken, BaseClass: baseClass}
}

func (n *Super) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitSuper(n) }

func (n *Super) String() string { return "super" }

// Yield is the `yield expr` primary, legal only inside a generator body.
type Yield struct {
	YieldToken          *Token
	YieldExpressionNode Expression
}

func NewYield(yieldToken *Token, yieldExpressionNode Expression) *Yield {
	return &Yield{YieldToken: yieldToken, YieldExpressionNode: yieldExpressionNode}
}

func (n *Yield) Accept(visitor ExpressionVisitor) ScriptAny { return visitor.VisitYield(n) }

func (n *Yield) String() string {
	if n.YieldExpressionNode == nil {
		return "yield"
	}
	return "yield " + n.YieldExpressionNode.String()
}
