package nixlex

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/nihei9/nixfmt/nixerr"
	"github.com/nihei9/nixfmt/synkind"
)

type lexMode int

const (
	modeDefault lexMode = iota
	modeDQuote
	modeIndented
	modeInterp // inside a ${ } that was opened from modeDQuote/modeIndented
)

type modeFrame struct {
	mode  lexMode
	depth int // brace depth, only meaningful for modeInterp
}

// Lexer scans Nix source text into a flat token stream.
type Lexer struct {
	path string
	src  []rune
	pos  int
	row  int
	col  int

	modes []modeFrame
}

// New creates a Lexer over the full contents of src.
func New(path string, src io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		path:  path,
		src:   []rune(string(data)),
		row:   1,
		col:   1,
		modes: []modeFrame{{mode: modeDefault}},
	}, nil
}

func (l *Lexer) curMode() lexMode {
	return l.modes[len(l.modes)-1].mode
}

func (l *Lexer) pushMode(m lexMode) {
	l.modes = append(l.modes, modeFrame{mode: m})
}

func (l *Lexer) popMode() {
	l.modes = l.modes[:len(l.modes)-1]
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peekAt(offset int) (rune, bool) {
	i := l.pos + offset
	if i < 0 || i >= len(l.src) {
		return 0, false
	}
	return l.src[i], true
}

func (l *Lexer) peek() (rune, bool) { return l.peekAt(0) }

func (l *Lexer) advance() rune {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) posHere() nixerr.Position {
	return nixerr.Position{Row: l.row, Col: l.col}
}

func (l *Lexer) errf(pos nixerr.Position, format string, args ...interface{}) error {
	return &nixerr.SyntaxError{Path: l.path, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Next returns the next token. At end of input it returns an infinite
// stream of synkind.TokenEOF tokens so callers can always peek past the
// last real token without a separate "done" signal.
func (l *Lexer) Next() (Token, error) {
	switch l.curMode() {
	case modeDQuote:
		return l.lexStringBody('"', false)
	case modeIndented:
		return l.lexStringBody(0, true)
	default:
		return l.lexDefault()
	}
}

// LexAll scans path's full contents into a token slice terminated by a
// single TokenEOF. The whole file is lexed up front (rather than streamed
// token-by-token into the parser) so the parser can backtrack over plain
// integer indices when it needs unbounded lookahead to disambiguate a
// lambda pattern `{...}:` from an attribute-set literal `{...}` — the
// lexer's own mode stack only depends on the token content already
// consumed, never on parser feedback, so lexing ahead of the parser changes
// nothing about how later tokens are lexed.
func LexAll(path string, src io.Reader) ([]Token, error) {
	lex, err := New(path, src)
	if err != nil {
		return nil, err
	}
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == synkind.TokenEOF {
			return toks, nil
		}
	}
}

func (l *Lexer) lexDefault() (Token, error) {
	if l.eof() {
		return Token{Kind: synkind.TokenEOF, Pos: l.posHere()}, nil
	}

	start := l.posHere()
	c, _ := l.peek()

	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		return l.lexWhitespace(start), nil
	case c == '#':
		return l.lexLineComment(start), nil
	case c == '/' && peekIs(l, 1, '*'):
		return l.lexBlockComment(start)
	case isIdentStart(c):
		return l.lexIdentOrPathOrKeyword(start)
	case c == '/' && isPathStart(l):
		return l.lexPath(start)
	case c == '~':
		return l.lexPath(start)
	case c == '<':
		if tok, ok := l.trySearchPath(start); ok {
			return tok, nil
		}
		return l.lexOperator(start)
	case unicode.IsDigit(c):
		return l.lexNumber(start), nil
	case c == '"':
		l.advance()
		l.pushMode(modeDQuote)
		return Token{Kind: synkind.TokenStringStart, Text: "\"", Pos: start}, nil
	case c == '\'' && peekIs(l, 1, '\''):
		l.advance()
		l.advance()
		l.pushMode(modeIndented)
		return Token{Kind: synkind.TokenIndentedStringStart, Text: "''", Pos: start}, nil
	case c == '}' && l.curMode() == modeInterp:
		return l.closeInterpOrBrace(start), nil
	default:
		return l.lexOperator(start)
	}
}

func (l *Lexer) closeInterpOrBrace(start nixerr.Position) Token {
	top := &l.modes[len(l.modes)-1]
	if top.depth == 0 {
		l.advance()
		l.popMode() // pop the modeInterp frame, returning to the enclosing string mode
		return Token{Kind: synkind.TokenCurlyClose, Text: "}", Pos: start}
	}
	top.depth--
	l.advance()
	return Token{Kind: synkind.TokenCurlyClose, Text: "}", Pos: start}
}

func peekIs(l *Lexer, offset int, r rune) bool {
	c, ok := l.peekAt(offset)
	return ok && c == r
}

func (l *Lexer) lexWhitespace(start nixerr.Position) Token {
	var b strings.Builder
	for {
		c, ok := l.peek()
		if !ok || !(c == ' ' || c == '\t' || c == '\r' || c == '\n') {
			break
		}
		b.WriteRune(l.advance())
	}
	return Token{Kind: synkind.TokenWhitespace, Text: b.String(), Pos: start}
}

func (l *Lexer) lexLineComment(start nixerr.Position) Token {
	var b strings.Builder
	for {
		c, ok := l.peek()
		if !ok || c == '\n' {
			break
		}
		b.WriteRune(l.advance())
	}
	return Token{Kind: synkind.TokenComment, Text: b.String(), Pos: start}
}

func (l *Lexer) lexBlockComment(start nixerr.Position) (Token, error) {
	var b strings.Builder
	b.WriteRune(l.advance()) // /
	b.WriteRune(l.advance()) // *
	for {
		if l.eof() {
			return Token{}, l.errf(start, "unclosed block comment")
		}
		if peekIs(l, 0, '*') && peekIs(l, 1, '/') {
			b.WriteRune(l.advance())
			b.WriteRune(l.advance())
			break
		}
		b.WriteRune(l.advance())
	}
	return Token{Kind: synkind.TokenComment, Text: b.String(), Pos: start}, nil
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentCont(c rune) bool {
	return c == '_' || c == '\'' || c == '-' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func (l *Lexer) lexIdentOrPathOrKeyword(start nixerr.Position) (Token, error) {
	var b strings.Builder
	for {
		c, ok := l.peek()
		if !ok || !isIdentCont(c) {
			break
		}
		b.WriteRune(l.advance())
	}
	text := b.String()

	// An identifier is never extended into a path here: `a/b` lexes as the
	// identifier `a` followed by whatever the `/` starts (see isPathStart),
	// and a relative path such as `./foo` lexes as a `.` token followed by
	// the path `/foo`, not as one path token.
	if kw, ok := keywords[text]; ok {
		return Token{Kind: kw, Text: text, Pos: start}, nil
	}
	return Token{Kind: synkind.TokenIdent, Text: text, Pos: start}, nil
}

func isPathStart(l *Lexer) bool {
	// `/` begins a path only when followed directly by another path
	// character (not whitespace, not EOF), so spaced division `a / b` lexes
	// as an operator. Unspaced `a/b` lexes as the identifier `a` followed by
	// the path `/b`.
	c, ok := l.peekAt(1)
	return ok && (c == '/' || isPathChar(c))
}

func isPathChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '.' || c == '_' || c == '-' || c == '/'
}

func (l *Lexer) lexPath(start nixerr.Position) (Token, error) {
	var b strings.Builder
	if c, _ := l.peek(); c == '~' {
		b.WriteRune(l.advance())
	}
	sawSlash := false
	for {
		c, ok := l.peek()
		if !ok {
			break
		}
		if c == '/' {
			sawSlash = true
			b.WriteRune(l.advance())
			continue
		}
		if isPathChar(c) {
			b.WriteRune(l.advance())
			continue
		}
		if c == '$' && peekIs(l, 1, '{') {
			// Path interpolation is rare; the whole `${...}`, up to its
			// matching `}`, is kept as opaque text inside the path token
			// for simplicity, matching NodePathWithInterpol's default
			// (pass-through) rule.
			depth := 0
			for !l.eof() {
				r := l.advance()
				b.WriteRune(r)
				if r == '{' {
					depth++
				} else if r == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			continue
		}
		break
	}
	if !sawSlash {
		return Token{}, l.errf(start, "malformed path literal")
	}
	return Token{Kind: synkind.TokenPath, Text: b.String(), Pos: start}, nil
}

func (l *Lexer) trySearchPath(start nixerr.Position) (Token, bool) {
	save := l.pos
	saveRow, saveCol := l.row, l.col
	var b strings.Builder
	b.WriteRune(l.advance()) // <
	for {
		c, ok := l.peek()
		if !ok || c == '>' || c == ' ' || c == '\t' || c == '\n' {
			break
		}
		b.WriteRune(l.advance())
	}
	if c, ok := l.peek(); !ok || c != '>' {
		l.pos, l.row, l.col = save, saveRow, saveCol
		return Token{}, false
	}
	b.WriteRune(l.advance()) // >
	return Token{Kind: synkind.TokenPath, Text: b.String(), Pos: start}, true
}

func (l *Lexer) lexNumber(start nixerr.Position) Token {
	var b strings.Builder
	for {
		c, ok := l.peek()
		if !ok || !unicode.IsDigit(c) {
			break
		}
		b.WriteRune(l.advance())
	}
	isFloat := false
	if c, ok := l.peek(); ok && c == '.' {
		if d, ok2 := l.peekAt(1); ok2 && unicode.IsDigit(d) {
			isFloat = true
			b.WriteRune(l.advance())
			for {
				c, ok := l.peek()
				if !ok || !unicode.IsDigit(c) {
					break
				}
				b.WriteRune(l.advance())
			}
		}
	}
	if c, ok := l.peek(); ok && (c == 'e' || c == 'E') {
		if d, ok2 := l.peekAt(1); ok2 && (unicode.IsDigit(d) || ((d == '+' || d == '-') && func() bool {
			e, ok3 := l.peekAt(2)
			return ok3 && unicode.IsDigit(e)
		}())) {
			isFloat = true
			b.WriteRune(l.advance())
			if c, ok := l.peek(); ok && (c == '+' || c == '-') {
				b.WriteRune(l.advance())
			}
			for {
				c, ok := l.peek()
				if !ok || !unicode.IsDigit(c) {
					break
				}
				b.WriteRune(l.advance())
			}
		}
	}
	kind := synkind.TokenInt
	if isFloat {
		kind = synkind.TokenFloat
	}
	return Token{Kind: kind, Text: b.String(), Pos: start}
}

// lexStringBody lexes one chunk of string content: either up to the next
// `${` or the closing quote; escape sequences stay inside the chunk. It returns
// TokenStringContent/TokenStringStart-adjacent tokens one piece at a time so
// the parser can interleave TokenDollarCurlyOpen and nested expression
// tokens naturally.
func (l *Lexer) lexStringBody(closeQuote rune, indented bool) (Token, error) {
	start := l.posHere()

	if !indented && closeQuote != 0 {
		if c, ok := l.peek(); ok && c == closeQuote {
			l.advance()
			l.popMode()
			return Token{Kind: synkind.TokenStringEnd, Text: "\"", Pos: start}, nil
		}
	}
	if indented {
		if peekIs(l, 0, '\'') && peekIs(l, 1, '\'') && !peekIs(l, 2, '$') && !peekIs(l, 2, '\'') {
			l.advance()
			l.advance()
			l.popMode()
			return Token{Kind: synkind.TokenIndentedStringEnd, Text: "''", Pos: start}, nil
		}
	}
	if c, ok := l.peek(); ok && c == '$' && peekIs(l, 1, '{') {
		l.advance()
		l.advance()
		l.pushMode(modeInterp)
		return Token{Kind: synkind.TokenDollarCurlyOpen, Text: "${", Pos: start}, nil
	}

	var b strings.Builder
	for {
		if l.eof() {
			return Token{}, l.errf(start, "unterminated string literal")
		}
		c, _ := l.peek()
		if !indented && c == closeQuote {
			break
		}
		if !indented && c == '\\' {
			b.WriteRune(l.advance())
			if l.eof() {
				return Token{}, l.errf(start, "incomplete escape sequence")
			}
			b.WriteRune(l.advance())
			continue
		}
		if indented && c == '\'' && peekIs(l, 1, '\'') && peekIs(l, 2, '\'') {
			// ''' escapes a literal ''.
			b.WriteRune(l.advance())
			b.WriteRune(l.advance())
			b.WriteRune(l.advance())
			continue
		}
		if indented && c == '\'' && peekIs(l, 1, '\'') && (peekIs(l, 2, '$') || peekIs(l, 2, '\\')) {
			b.WriteRune(l.advance())
			b.WriteRune(l.advance())
			b.WriteRune(l.advance())
			continue
		}
		if indented && c == '\'' && peekIs(l, 1, '\'') {
			break
		}
		if c == '$' && peekIs(l, 1, '{') {
			break
		}
		b.WriteRune(l.advance())
	}
	if b.Len() == 0 {
		// Shouldn't happen: one of the break conditions above should have
		// consumed something first, but guard against an infinite loop.
		return Token{}, l.errf(start, "empty string chunk")
	}
	return Token{Kind: synkind.TokenStringContent, Text: b.String(), Pos: start}, nil
}

var operators = []struct {
	text string
	kind synkind.Kind
}{
	{"...", synkind.TokenEllipsis},
	{"++", synkind.TokenOpConcat},
	{"//", synkind.TokenOpUpdate},
	{"==", synkind.TokenOpEq},
	{"!=", synkind.TokenOpNeq},
	{"<=", synkind.TokenOpLeq},
	{">=", synkind.TokenOpGeq},
	{"&&", synkind.TokenOpAnd},
	{"||", synkind.TokenOpOr},
	{"->", synkind.TokenOpImplies},
	{"?", synkind.TokenOpHasAttr},
	{"@", synkind.TokenAt},
	{".", synkind.TokenDot},
	{",", synkind.TokenComma},
	{";", synkind.TokenSemicolon},
	{":", synkind.TokenColon},
	{"=", synkind.TokenEquals},
	{"(", synkind.TokenParenOpen},
	{")", synkind.TokenParenClose},
	{"[", synkind.TokenBracketOpen},
	{"]", synkind.TokenBracketClose},
	{"{", synkind.TokenCurlyOpen},
	{"}", synkind.TokenCurlyClose},
	{"<", synkind.TokenOpLt},
	{">", synkind.TokenOpGt},
	{"!", synkind.TokenOpNot},
	{"+", synkind.TokenOpPlus},
	{"-", synkind.TokenOpMinus},
	{"*", synkind.TokenOpMul},
	{"/", synkind.TokenOpDiv},
}

func (l *Lexer) lexOperator(start nixerr.Position) (Token, error) {
	for _, op := range operators {
		if l.matchAt(op.text) {
			for range op.text {
				l.advance()
			}
			if op.kind == synkind.TokenCurlyOpen {
				if len(l.modes) > 0 && l.modes[len(l.modes)-1].mode == modeInterp {
					l.modes[len(l.modes)-1].depth++
				}
			}
			return Token{Kind: op.kind, Text: op.text, Pos: start}, nil
		}
	}
	c := l.advance()
	return Token{}, l.errf(start, "unexpected character %q", c)
}

func (l *Lexer) matchAt(s string) bool {
	for i, r := range []rune(s) {
		c, ok := l.peekAt(i)
		if !ok || c != r {
			return false
		}
	}
	return true
}
