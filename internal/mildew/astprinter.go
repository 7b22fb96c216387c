package mildew

import (
	"fmt"
	"strings"
)

// AstPrinter renders a parsed tree as nested s-expressions, one per
// statement. It exercises both visitor interfaces; the `parse` debug
// subcommand is its main consumer.
type AstPrinter struct{}

func (printer *AstPrinter) PrintExpression(expr Expression) string {
	return expr.Accept(printer).ToUTF8String()
}

func (printer *AstPrinter) PrintStatement(stmt Statement) string {
	return stmt.Accept(printer).ToUTF8String()
}

// PrintProgram renders every top-level statement of a program block on
// its own line.
func (printer *AstPrinter) PrintProgram(program *Block) string {
	lines := make([]string, len(program.StatementNodes))
	for i, stmt := range program.StatementNodes {
		lines[i] = printer.PrintStatement(stmt)
	}
	return strings.Join(lines, "\n")
}

func sexpr(parts ...string) ScriptAny {
	return NewStringAny(NewScriptString("(" + strings.Join(parts, " ") + ")"))
}

func (printer *AstPrinter) render(expr Expression) string {
	if expr == nil {
		return "<nil>"
	}
	return expr.Accept(printer).ToUTF8String()
}

func (printer *AstPrinter) renderStmt(stmt Statement) string {
	if stmt == nil {
		return "<nil>"
	}
	return stmt.Accept(printer).ToUTF8String()
}

func (printer *AstPrinter) VisitLiteral(node *Literal) ScriptAny {
	return NewStringAny(NewScriptString(node.LiteralToken.Symbol()))
}

func (printer *AstPrinter) VisitFunctionLiteral(node *FunctionLiteral) ScriptAny {
	name := node.OptionalName
	if name == "" {
		name = "<anonymous>"
	}
	head := "function"
	if node.IsGenerator {
		head = "function*"
	}
	return sexpr(head, name, "("+strings.Join(node.ArgList, " ")+")", printer.renderBody(node.Statements))
}

func (printer *AstPrinter) VisitLambda(node *Lambda) ScriptAny {
	params := "(" + strings.Join(node.ArgumentList, " ") + ")"
	if node.ReturnExpression != nil {
		return sexpr("lambda", params, printer.render(node.ReturnExpression))
	}
	return sexpr("lambda", params, printer.renderBody(node.Statements))
}

func (printer *AstPrinter) VisitTemplateString(node *TemplateString) ScriptAny {
	parts := make([]string, len(node.Nodes))
	for i, child := range node.Nodes {
		parts[i] = printer.render(child)
	}
	return sexpr(append([]string{"template"}, parts...)...)
}

func (printer *AstPrinter) VisitArrayLiteral(node *ArrayLiteral) ScriptAny {
	parts := make([]string, len(node.ValueNodes))
	for i, value := range node.ValueNodes {
		parts[i] = printer.render(value)
	}
	return sexpr(append([]string{"array"}, parts...)...)
}

func (printer *AstPrinter) VisitObjectLiteral(node *ObjectLiteral) ScriptAny {
	parts := make([]string, len(node.Keys))
	for i, key := range node.Keys {
		parts[i] = key + ":" + printer.render(node.ValueNodes[i])
	}
	return sexpr(append([]string{"object"}, parts...)...)
}

func (printer *AstPrinter) VisitClassLiteral(node *ClassLiteral) ScriptAny {
	return printer.renderClass(node.ClassDefinition)
}

func (printer *AstPrinter) renderClass(def *ClassDefinition) ScriptAny {
	parts := []string{"class", def.ClassName}
	if def.BaseClass != nil {
		parts = append(parts, "extends", printer.render(def.BaseClass))
	}
	if def.Constructor != nil {
		parts = append(parts, printer.render(def.Constructor))
	}
	for _, m := range def.Methods {
		parts = append(parts, printer.render(m))
	}
	for _, m := range def.GetMethods {
		parts = append(parts, "get:"+printer.render(m))
	}
	for _, m := range def.SetMethods {
		parts = append(parts, "set:"+printer.render(m))
	}
	for _, m := range def.StaticMethods {
		parts = append(parts, "static:"+printer.render(m))
	}
	return sexpr(parts...)
}

func (printer *AstPrinter) VisitBinaryOp(node *BinaryOp) ScriptAny {
	return sexpr(node.OpToken.Symbol(), printer.render(node.LeftNode), printer.render(node.RightNode))
}

func (printer *AstPrinter) VisitUnaryOp(node *UnaryOp) ScriptAny {
	if node.IsPostfix {
		return sexpr("post"+node.OpToken.Symbol(), printer.render(node.OperandNode))
	}
	return sexpr(node.OpToken.Symbol(), printer.render(node.OperandNode))
}

func (printer *AstPrinter) VisitTerniaryOp(node *TerniaryOp) ScriptAny {
	return sexpr("?:", printer.render(node.ConditionNode),
		printer.render(node.OnTrueNode), printer.render(node.OnFalseNode))
}

func (printer *AstPrinter) VisitVarAccess(node *VarAccess) ScriptAny {
	return NewStringAny(NewScriptString(node.VarToken.Text))
}

func (printer *AstPrinter) VisitFunctionCall(node *FunctionCall) ScriptAny {
	parts := []string{"call", printer.render(node.FunctionToCall)}
	for _, arg := range node.ArgumentNodes {
		parts = append(parts, printer.render(arg))
	}
	return sexpr(parts...)
}

func (printer *AstPrinter) VisitArrayIndex(node *ArrayIndex) ScriptAny {
	return sexpr("index", printer.render(node.ObjectNode), printer.render(node.IndexNode))
}

func (printer *AstPrinter) VisitMemberAccess(node *MemberAccess) ScriptAny {
	return sexpr(".", printer.render(node.ObjectNode), printer.render(node.MemberNode))
}

func (printer *AstPrinter) VisitNewExpression(node *NewExpression) ScriptAny {
	return sexpr("new", printer.render(node.FunctionCallNode))
}

func (printer *AstPrinter) VisitSuper(node *Super) ScriptAny {
	return NewStringAny(NewScriptString("super"))
}

func (printer *AstPrinter) VisitYield(node *Yield) ScriptAny {
	if node.YieldExpressionNode == nil {
		return sexpr("yield")
	}
	return sexpr("yield", printer.render(node.YieldExpressionNode))
}

func (printer *AstPrinter) renderBody(statements []Statement) string {
	parts := make([]string, len(statements))
	for i, stmt := range statements {
		parts[i] = printer.renderStmt(stmt)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func (printer *AstPrinter) VisitVarDeclaration(node *VarDeclaration) ScriptAny {
	parts := []string{node.QualifierToken.Text}
	for _, assignment := range node.AssignmentNodes {
		parts = append(parts, printer.render(assignment))
	}
	return sexpr(parts...)
}

func (printer *AstPrinter) VisitBlock(node *Block) ScriptAny {
	return NewStringAny(NewScriptString(printer.renderBody(node.StatementNodes)))
}

func (printer *AstPrinter) VisitIf(node *If) ScriptAny {
	if node.OnFalseStatement == nil {
		return sexpr("if", printer.render(node.ConditionNode), printer.renderStmt(node.OnTrueStatement))
	}
	return sexpr("if", printer.render(node.ConditionNode),
		printer.renderStmt(node.OnTrueStatement), printer.renderStmt(node.OnFalseStatement))
}

func (printer *AstPrinter) VisitSwitch(node *Switch) ScriptAny {
	parts := []string{"switch", printer.render(node.ExpressionNode),
		fmt.Sprintf("cases=%d", node.JumpTable.Len())}
	if node.DefaultStatementID != -1 {
		parts = append(parts, fmt.Sprintf("default@%d", node.DefaultStatementID))
	}
	for _, stmt := range node.StatementNodes {
		parts = append(parts, printer.renderStmt(stmt))
	}
	return sexpr(parts...)
}

func (printer *AstPrinter) VisitWhile(node *While) ScriptAny {
	return sexpr("while", printer.render(node.ConditionNode), printer.renderStmt(node.BodyNode))
}

func (printer *AstPrinter) VisitDoWhile(node *DoWhile) ScriptAny {
	return sexpr("do-while", printer.renderStmt(node.BodyNode), printer.render(node.ConditionNode))
}

func (printer *AstPrinter) VisitFor(node *For) ScriptAny {
	return sexpr("for", printer.renderStmt(node.InitStatement),
		printer.render(node.ConditionNode), printer.render(node.IncrementNode),
		printer.renderStmt(node.BodyNode))
}

func (printer *AstPrinter) VisitForOf(node *ForOf) ScriptAny {
	names := make([]string, len(node.VarAccessNodes))
	for i, va := range node.VarAccessNodes {
		names[i] = va.VarToken.Text
	}
	return sexpr("for-"+node.OfInToken.Symbol(), node.QualifierToken.Text,
		strings.Join(names, ","), printer.render(node.ObjectToIterate),
		printer.renderStmt(node.BodyNode))
}

func (printer *AstPrinter) VisitBreakOrContinue(node *BreakOrContinue) ScriptAny {
	if node.Label == "" {
		return sexpr(node.BreakOrContinueToken.Text)
	}
	return sexpr(node.BreakOrContinueToken.Text, node.Label)
}

func (printer *AstPrinter) VisitReturn(node *Return) ScriptAny {
	if node.ExpressionNode == nil {
		return sexpr("return")
	}
	return sexpr("return", printer.render(node.ExpressionNode))
}

func (printer *AstPrinter) VisitFunctionDeclaration(node *FunctionDeclaration) ScriptAny {
	head := "defun"
	if node.IsGenerator {
		head = "defun*"
	}
	return sexpr(head, node.Name, "("+strings.Join(node.ArgumentNames, " ")+")",
		printer.renderBody(node.StatementNodes))
}

func (printer *AstPrinter) VisitThrow(node *Throw) ScriptAny {
	return sexpr("throw", printer.render(node.ExpressionNode))
}

func (printer *AstPrinter) VisitTryBlock(node *TryBlock) ScriptAny {
	parts := []string{"try", printer.renderStmt(node.TryBlockNode)}
	if node.CatchBlockNode != nil {
		parts = append(parts, "catch("+node.ExceptionName+")", printer.renderStmt(node.CatchBlockNode))
	}
	if node.FinallyBlockNode != nil {
		parts = append(parts, "finally", printer.renderStmt(node.FinallyBlockNode))
	}
	return sexpr(parts...)
}

func (printer *AstPrinter) VisitDelete(node *Delete) ScriptAny {
	return sexpr("delete", printer.render(node.AccessNode))
}

func (printer *AstPrinter) VisitClassDeclaration(node *ClassDeclaration) ScriptAny {
	return printer.renderClass(node.ClassDefinition)
}

func (printer *AstPrinter) VisitExpressionStatement(node *ExpressionStatement) ScriptAny {
	if node.ExpressionNode == nil {
		return sexpr("empty")
	}
	return sexpr("expr", printer.render(node.ExpressionNode))
}
