// Package nixlex implements a hand-written lexer for Nix source text. Every
// whitespace run and every comment is emitted as its own token instead of
// being skipped, so the parser can attach trivia losslessly to the CST.
//
// Grounded on grammar/lexical/parser/lexer.go's bufio.Reader-backed,
// lookahead-buffered, mode-stacked hand lexer.
package nixlex

import (
	"github.com/nihei9/nixfmt/nixerr"
	"github.com/nihei9/nixfmt/synkind"
)

// Token is one lexeme: a kind, its literal text, and its starting position.
type Token struct {
	Kind synkind.Kind
	Text string
	Pos  nixerr.Position
}

var keywords = map[string]synkind.Kind{
	"if":      synkind.TokenKwIf,
	"then":    synkind.TokenKwThen,
	"else":    synkind.TokenKwElse,
	"assert":  synkind.TokenKwAssert,
	"with":    synkind.TokenKwWith,
	"let":     synkind.TokenKwLet,
	"in":      synkind.TokenKwIn,
	"rec":     synkind.TokenKwRec,
	"inherit": synkind.TokenKwInherit,
	"or":      synkind.TokenKwOr,
}
