package mildew

import (
	pkgerrors "github.com/pkg/errors"
)

// Tokenize scans text and returns the token vector (always terminated
// with an EOF token) plus every accumulated lex error.
func Tokenize(text string) ([]*Token, []*LexError) {
	lexer := NewLexer(text)
	tokens := lexer.Tokenize()
	return tokens, lexer.Errors()
}

// Parse consumes a token vector and returns the program block, or the
// ScriptCompileError that aborted the parse.
func Parse(tokens []*Token) (*Block, error) {
	return NewParser(tokens).ParseProgram()
}

// Engine is the front-end pipeline the REPL driver calls: it tokenizes,
// reports lex errors, and parses, routing every diagnostic through its
// Reporter. It performs no execution.
type Engine struct {
	reporter Reporter
}

func NewEngine(reporter Reporter) *Engine {
	return &Engine{reporter: reporter}
}

// Reporter exposes the engine's error sink so drivers can inspect
// HadError after an Evaluate round.
func (e *Engine) Reporter() Reporter { return e.reporter }

// Evaluate runs code through the full front end under the given program
// name. Lex errors are always reported first and the parse is skipped
// when any are present; a parse failure reports the single compile
// error. The parsed program is returned on success, nil otherwise.
func (e *Engine) Evaluate(code, name string) *Block {
	tokens, lexErrors := Tokenize(code)
	if len(lexErrors) > 0 {
		for _, lexErr := range lexErrors {
			e.reporter.Report(pkgerrors.Wrap(lexErr, name))
		}
		return nil
	}
	program, err := Parse(tokens)
	if err != nil {
		e.reporter.Report(pkgerrors.Wrap(err, name))
		return nil
	}
	return program
}
