package mildew

import "github.com/dlclark/regexp2"

// validateRegex compiles pattern once using regexp2, whose syntax
// (unlike the standard library's RE2-based regexp) supports the
// backreferences and lookaround that regex literals may carry. It
// returns a non-nil error when the pattern is invalid, never the
// compiled *regexp2.Regexp itself; the lexer only needs the
// compile-or-reject verdict.
func validateRegex(pattern string, caseInsensitive, multiline bool) error {
	opts := regexp2.None
	if caseInsensitive {
		opts |= regexp2.IgnoreCase
	}
	if multiline {
		opts |= regexp2.Multiline
	}
	_, err := regexp2.Compile(pattern, opts)
	return err
}
