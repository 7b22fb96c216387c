package mildew

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// LexError is one accumulated diagnostic produced during tokenization. The
// Lexer never aborts on one of these; it emits an INVALID token and keeps
// scanning.
type LexError struct {
	Pos     Position
	Message string
}

// NewLexError builds a LexError at pos from a formatted message.
func NewLexError(pos Position, format string, args ...interface{}) *LexError {
	return &LexError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// NewLexErrorFromCause builds a LexError at pos from a lower-level cause
// (e.g. a regexp2 compile failure) wrapped with context via
// github.com/pkg/errors; only the wrapped message text is kept.
func NewLexErrorFromCause(pos Position, cause error, context string) *LexError {
	wrapped := pkgerrors.Wrap(cause, context)
	return &LexError{Pos: pos, Message: wrapped.Error()}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Pos, e.Message)
}

// ScriptCompileError is the single structural failure the parser raises.
// Unlike LexError it aborts the parse: any partially-built AST is
// discarded by the caller.
type ScriptCompileError struct {
	Token   *Token
	Message string
}

// NewScriptCompileError builds a ScriptCompileError anchored at tok.
func NewScriptCompileError(tok *Token, format string, args ...interface{}) *ScriptCompileError {
	return &ScriptCompileError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *ScriptCompileError) Error() string {
	if e.Token == nil || e.Token.Type == EOF {
		return fmt.Sprintf("Error at end: %s", e.Message)
	}
	return fmt.Sprintf("[%s] Error at '%s': %s", e.Token.Pos, e.Token.Symbol(), e.Message)
}

// UnimplementedFeatureError is declared for downstream stages but is never
// raised by a complete implementation of this front end.
type UnimplementedFeatureError struct {
	Feature string
}

func NewUnimplementedFeatureError(feature string) *UnimplementedFeatureError {
	return &UnimplementedFeatureError{Feature: feature}
}

func (e *UnimplementedFeatureError) Error() string {
	return fmt.Sprintf("unimplemented feature: %s", e.Feature)
}
