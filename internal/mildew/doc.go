/*
Package mildew implements the lexer, parser, AST, and dynamic value model
for the front end of the Mildew scripting language — a dynamically typed,
JavaScript-flavored language.

Grammar (informal, precedence omitted — see the operator-precedence
table in parser.go):

	program     --> stmt* EOF ;
	stmt        --> varDecl | block | ifStmt | switchStmt | whileStmt
	              | doWhileStmt | forStmt | forOfStmt | breakStmt
	              | continueStmt | returnStmt | funDecl | throwStmt
	              | tryStmt | deleteStmt | classDecl | labelStmt | exprStmt ;
	varDecl     --> ("var"|"let"|"const") declarator ("," declarator)* ";" ;
	declarator  --> IDENT ("=" expr)? | destructure ("=" expr)? ;
	destructure --> "[" IDENT ("," IDENT)* (","? "..." IDENT)? "]"
	              | "{" IDENT ("," IDENT)* (","? "..." IDENT)? "}" ;
	block       --> "{" stmt* "}" ;
	classDecl   --> "class" IDENT ("extends" expr)? classBody ;
	classBody   --> "{" classMember* "}" ;
	classMember --> ("get"|"set"|"static")? IDENT "(" params? ")" block ;
	funDecl     --> "function" "*"? IDENT "(" params? ")" block ;
	expr        --> assignment ;
	assignment  --> ternary ( assignOp assignment )? ;
	ternary     --> nullish ( "?" expr ":" expr )? ;
	primary     --> NUMBER | STRING | TEMPLATE | REGEX | IDENT
	              | "true" | "false" | "null" | "undefined"
	              | "function" | "class" | "new" | "super" | "yield"
	              | "(" expr ")" | "[" elements? "]" | "{" properties? "}" ;

Parsing combines hand-written recursive descent with Pratt precedence
climbing: a single expression parser keyed on a frozen
operator-precedence table, and a statement parser
that dispatches on the leading token. Every node answers Accept for its
visitor interface; String renders a short form used for diagnostics.
Literals, variable accesses, member/index access and operator
applications print their source form, but function, lambda, template,
array, object, call and most statement nodes print elided placeholders
such as "[...]" or "{...}", so String output is not re-parseable in
general.
*/
package mildew
