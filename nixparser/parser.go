// Package nixparser implements a recursive-descent, precedence-climbing
// parser that turns a Nix source file into a lossless concrete syntax tree
// (syntax.SyntaxNode rooted at synkind.NodeRoot).
//
// Grounded on spec/grammar/parser/parser.go and spec/parser.go: the same
// consume/expect/peek shape, the same panic-with-*SyntaxError recovery
// caught once at the top of run, the same Position bookkeeping.
// Whitespace and comment tokens the lexer produced between two significant
// tokens are appended to the builder as ordinary children in source order —
// the parser never drops or reorders trivia, satisfying the CST's
// lossless-round-trip invariant (spec.md §3 invariants 1-2).
package nixparser

import (
	"fmt"
	"io"

	"github.com/nihei9/nixfmt/nixerr"
	"github.com/nihei9/nixfmt/nixlex"
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// Parse reads all of src, lexes and parses it as a Nix expression, and
// returns the root of the resulting lossless syntax tree.
func Parse(path string, src io.Reader) (root *syntax.SyntaxNode, retErr error) {
	toks, err := nixlex.LexAll(path, src)
	if err != nil {
		return nil, err
	}
	p := &parser{
		path: path,
		toks: toks,
		b:    syntax.NewGreenNodeBuilder(),
	}
	return p.run()
}

type parser struct {
	path string
	toks []nixlex.Token
	idx  int
	b    *syntax.GreenNodeBuilder
}

func (p *parser) run() (root *syntax.SyntaxNode, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*nixerr.SyntaxError); ok {
				retErr = se
				return
			}
			panic(r)
		}
	}()

	p.b.StartNode(synkind.NodeRoot)
	p.bumpTrivia()
	p.parseExpr()
	p.bumpTrivia()
	if p.curKind() != synkind.TokenEOF {
		p.fail("expected end of input")
	}
	p.b.FinishNode()

	green, ok := p.b.Finish()
	if !ok {
		panic(&nixerr.FormatError{Path: p.path, Msg: "unbalanced StartNode/FinishNode calls"})
	}
	return syntax.NewRoot(green), nil
}

func (p *parser) fail(format string, args ...interface{}) {
	panic(&nixerr.SyntaxError{
		Path: p.path,
		Pos:  p.curTok().Pos,
		Msg:  fmt.Sprintf(format, args...),
	})
}

func (p *parser) curTok() nixlex.Token {
	if p.idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.idx]
}

func (p *parser) curKind() synkind.Kind { return p.curTok().Kind }

func (p *parser) advanceRaw() nixlex.Token {
	tok := p.curTok()
	p.b.Token(tok.Kind, tok.Text)
	if p.idx < len(p.toks)-1 {
		p.idx++
	}
	return tok
}

// bumpTrivia emits every whitespace/comment token at the current position
// as a plain child of whichever node is being built.
func (p *parser) bumpTrivia() {
	for p.curKind().IsTrivia() {
		p.advanceRaw()
	}
}

// peekSig returns the kind of the n'th significant (non-trivia) token from
// the current position without consuming anything.
func (p *parser) peekSig(n int) synkind.Kind {
	i, seen := p.idx, 0
	for {
		if i >= len(p.toks) {
			return synkind.TokenEOF
		}
		k := p.toks[i].Kind
		if !k.IsTrivia() {
			if seen == n {
				return k
			}
			seen++
		}
		if k == synkind.TokenEOF {
			return synkind.TokenEOF
		}
		i++
	}
}

// bump consumes leading trivia, then the next significant token, which must
// have kind k; otherwise it raises a SyntaxError.
func (p *parser) bump(k synkind.Kind, what string) nixlex.Token {
	p.bumpTrivia()
	if p.curKind() != k {
		p.fail("expected %s, found %q", what, p.curTok().Text)
	}
	return p.advanceRaw()
}

// bumpAny consumes leading trivia, then the next significant token,
// whatever kind it is.
func (p *parser) bumpAny() nixlex.Token {
	p.bumpTrivia()
	return p.advanceRaw()
}

func (p *parser) atSig(k synkind.Kind) bool { return p.peekSig(0) == k }

// bumpIdentNode consumes one identifier token and wraps it in a NodeIdent,
// the shape every identifier occurrence in the tree shares whether it's an
// expression, an attribute key part, or a pattern argument name. Trivia
// ahead of the identifier goes to the enclosing node, not into the NodeIdent.
func (p *parser) bumpIdentNode() {
	p.bumpTrivia()
	p.b.StartNode(synkind.NodeIdent)
	p.bump(synkind.TokenIdent, "identifier")
	p.b.FinishNode()
}

// matchBraceClose scans forward from a TokenCurlyOpen/TokenDollarCurlyOpen
// at significant-token index 0, returning the significant-token index (0
// based, among significant tokens only) of its matching TokenCurlyClose.
// Used purely for lookahead; it does not consume anything.
func (p *parser) matchBraceClose() int {
	depth := 0
	i, seen := p.idx, -1
	for {
		if i >= len(p.toks) {
			return -1
		}
		k := p.toks[i].Kind
		if !k.IsTrivia() {
			seen++
			switch k {
			case synkind.TokenCurlyOpen, synkind.TokenDollarCurlyOpen:
				depth++
			case synkind.TokenCurlyClose:
				depth--
				if depth == 0 {
					return seen
				}
			case synkind.TokenEOF:
				return -1
			}
		}
		i++
	}
}

// looksLikeLambdaPattern reports whether the `{` at the current position
// begins a lambda parameter pattern (`{...}:` / `{...} @ ident:`) rather
// than an attribute-set literal.
func (p *parser) looksLikeLambdaPattern() bool {
	closeIdx := p.matchBraceClose()
	if closeIdx < 0 {
		return false
	}
	after := p.peekSig(closeIdx + 1)
	return after == synkind.TokenColon || after == synkind.TokenAt
}

// looksLikeLambdaStart reports whether the expression at the current
// position is the start of a lambda: `ident:`, `ident @ {`, or a pattern.
func (p *parser) looksLikeLambdaStart() bool {
	switch p.peekSig(0) {
	case synkind.TokenIdent:
		switch p.peekSig(1) {
		case synkind.TokenColon, synkind.TokenAt:
			return true
		}
		return false
	case synkind.TokenCurlyOpen:
		return p.looksLikeLambdaPattern()
	default:
		return false
	}
}

// parseExpr parses a full expression: the outer constructs (lambda,
// assert, with, let, if) or, failing those, an operator-precedence chain.
func (p *parser) parseExpr() {
	p.bumpTrivia()
	if p.looksLikeLambdaStart() {
		p.parseLambda()
		return
	}
	switch p.peekSig(0) {
	case synkind.TokenKwAssert:
		p.parseScoped(synkind.NodeAssert, synkind.TokenKwAssert)
	case synkind.TokenKwWith:
		p.parseScoped(synkind.NodeWith, synkind.TokenKwWith)
	case synkind.TokenKwLet:
		if p.peekSig(1) == synkind.TokenCurlyOpen {
			p.parseLegacyLet()
		} else {
			p.parseLetIn()
		}
	case synkind.TokenKwIf:
		p.parseIfElse()
	default:
		p.parseOp(0)
	}
}

// parseScoped parses `assert c; body` or `with e; body`.
func (p *parser) parseScoped(kind synkind.Kind, kw synkind.Kind) {
	p.b.StartNode(kind)
	p.bump(kw, kw.String())
	p.parseExpr()
	p.bump(synkind.TokenSemicolon, ";")
	p.parseExpr()
	p.b.FinishNode()
}

func (p *parser) parseIfElse() {
	p.b.StartNode(synkind.NodeIfElse)
	p.bump(synkind.TokenKwIf, "if")
	p.parseExpr()
	p.bump(synkind.TokenKwThen, "then")
	p.parseExpr()
	p.bump(synkind.TokenKwElse, "else")
	p.parseExpr()
	p.b.FinishNode()
}

func (p *parser) parseLegacyLet() {
	p.b.StartNode(synkind.NodeLegacyLet)
	p.bump(synkind.TokenKwLet, "let")
	p.bump(synkind.TokenCurlyOpen, "{")
	for !p.atSig(synkind.TokenCurlyClose) && !p.atSig(synkind.TokenEOF) {
		p.parseBinding()
	}
	p.bump(synkind.TokenCurlyClose, "}")
	p.b.FinishNode()
}

func (p *parser) parseLetIn() {
	p.b.StartNode(synkind.NodeLetIn)
	p.bump(synkind.TokenKwLet, "let")
	for !p.atSig(synkind.TokenKwIn) && !p.atSig(synkind.TokenEOF) {
		p.parseBinding()
	}
	p.bump(synkind.TokenKwIn, "in")
	p.parseExpr()
	p.b.FinishNode()
}

// parseBinding parses one `key = value;` or `inherit ...;` entry inside an
// attribute-set or let-in binding group.
func (p *parser) parseBinding() {
	p.bumpTrivia()
	if p.atSig(synkind.TokenKwInherit) {
		p.parseInherit()
		return
	}
	p.b.StartNode(synkind.NodeKeyValue)
	p.parseKey()
	p.bump(synkind.TokenEquals, "=")
	p.parseExpr()
	p.bump(synkind.TokenSemicolon, ";")
	p.b.FinishNode()
}

// parseKey parses a (possibly dotted, possibly interpolated) attribute
// path on the left of `=`, e.g. `a`, `a.b.${c}`.
func (p *parser) parseKey() {
	p.b.StartNode(synkind.NodeKey)
	p.parseKeyPart()
	for p.atSig(synkind.TokenDot) {
		p.bump(synkind.TokenDot, ".")
		p.parseKeyPart()
	}
	p.b.FinishNode()
}

func (p *parser) parseKeyPart() {
	switch p.peekSig(0) {
	case synkind.TokenDollarCurlyOpen:
		p.parseDynamic()
	case synkind.TokenStringStart:
		p.parseString(false)
	default:
		p.bumpIdentNode()
	}
}

func (p *parser) parseDynamic() {
	p.b.StartNode(synkind.NodeDynamic)
	p.bump(synkind.TokenDollarCurlyOpen, "${")
	p.parseExpr()
	p.bump(synkind.TokenCurlyClose, "}")
	p.b.FinishNode()
}

func (p *parser) parseInherit() {
	p.b.StartNode(synkind.NodeInherit)
	p.bump(synkind.TokenKwInherit, "inherit")
	if p.atSig(synkind.TokenParenOpen) {
		p.b.StartNode(synkind.NodeInheritFrom)
		p.bump(synkind.TokenParenOpen, "(")
		p.parseExpr()
		p.bump(synkind.TokenParenClose, ")")
		p.b.FinishNode()
	}
	for p.atSig(synkind.TokenIdent) || p.atSig(synkind.TokenStringStart) {
		if p.atSig(synkind.TokenStringStart) {
			p.parseString(false)
		} else {
			p.bumpIdentNode()
		}
	}
	p.bump(synkind.TokenSemicolon, ";")
	p.b.FinishNode()
}

// --- attribute sets and lists ---

func (p *parser) parseAttrSet() {
	p.b.StartNode(synkind.NodeAttrSet)
	if p.atSig(synkind.TokenKwRec) {
		p.bump(synkind.TokenKwRec, "rec")
	}
	p.bump(synkind.TokenCurlyOpen, "{")
	for !p.atSig(synkind.TokenCurlyClose) && !p.atSig(synkind.TokenEOF) {
		p.parseBinding()
	}
	p.bump(synkind.TokenCurlyClose, "}")
	p.b.FinishNode()
}

func (p *parser) parseList() {
	p.b.StartNode(synkind.NodeList)
	p.bump(synkind.TokenBracketOpen, "[")
	for !p.atSig(synkind.TokenBracketClose) && !p.atSig(synkind.TokenEOF) {
		p.parseSelect()
	}
	p.bump(synkind.TokenBracketClose, "]")
	p.b.FinishNode()
}

func (p *parser) parseParen() {
	p.b.StartNode(synkind.NodeParen)
	p.bump(synkind.TokenParenOpen, "(")
	p.parseExpr()
	p.bump(synkind.TokenParenClose, ")")
	p.b.FinishNode()
}

// --- lambdas and patterns ---

func (p *parser) parseLambda() {
	p.b.StartNode(synkind.NodeLambda)
	if p.atSig(synkind.TokenIdent) && p.peekSig(1) == synkind.TokenColon {
		p.bumpIdentNode()
	} else {
		p.parsePattern()
	}
	p.bump(synkind.TokenColon, ":")
	p.parseExpr()
	p.b.FinishNode()
}

func (p *parser) parsePattern() {
	p.b.StartNode(synkind.NodePattern)
	if p.atSig(synkind.TokenIdent) && p.peekSig(1) == synkind.TokenAt {
		p.bumpIdentNode()
		p.bump(synkind.TokenAt, "@")
	}
	p.bump(synkind.TokenCurlyOpen, "{")
	for !p.atSig(synkind.TokenCurlyClose) && !p.atSig(synkind.TokenEOF) {
		p.parsePatEntry()
		if p.atSig(synkind.TokenComma) {
			p.bump(synkind.TokenComma, ",")
		} else {
			break
		}
	}
	p.bump(synkind.TokenCurlyClose, "}")
	if p.atSig(synkind.TokenAt) {
		p.bump(synkind.TokenAt, "@")
		p.bumpIdentNode()
	}
	p.b.FinishNode()
}

func (p *parser) parsePatEntry() {
	p.bumpTrivia()
	p.b.StartNode(synkind.NodePatEntry)
	if p.atSig(synkind.TokenEllipsis) {
		p.bump(synkind.TokenEllipsis, "...")
	} else if p.peekSig(1) == synkind.TokenOpHasAttr {
		p.b.StartNode(synkind.NodePatBind)
		p.bumpIdentNode()
		p.bump(synkind.TokenOpHasAttr, "?")
		p.parseOp(0)
		p.b.FinishNode()
	} else {
		p.bumpIdentNode()
	}
	p.b.FinishNode()
}

// --- strings ---

func (p *parser) parseString(_ bool) {
	p.b.StartNode(synkind.NodeString)
	switch p.peekSig(0) {
	case synkind.TokenIndentedStringStart:
		p.bump(synkind.TokenIndentedStringStart, "''")
		for {
			switch p.peekSig(0) {
			case synkind.TokenStringContent:
				p.bump(synkind.TokenStringContent, "string content")
			case synkind.TokenDollarCurlyOpen:
				p.parseStringInterpol()
			default:
				p.bump(synkind.TokenIndentedStringEnd, "''")
				p.b.FinishNode()
				return
			}
		}
	default:
		p.bump(synkind.TokenStringStart, "\"")
		for {
			switch p.peekSig(0) {
			case synkind.TokenStringContent:
				p.bump(synkind.TokenStringContent, "string content")
			case synkind.TokenDollarCurlyOpen:
				p.parseStringInterpol()
			default:
				p.bump(synkind.TokenStringEnd, "\"")
				p.b.FinishNode()
				return
			}
		}
	}
}

func (p *parser) parseStringInterpol() {
	p.b.StartNode(synkind.NodeStringInterpol)
	p.bump(synkind.TokenDollarCurlyOpen, "${")
	p.parseExpr()
	p.bump(synkind.TokenCurlyClose, "}")
	p.b.FinishNode()
}

// --- operator-precedence chain: weakest to strongest ---
//
// `?` (has-attr), arithmetic, logical, list-concat, and update all fold
// into the same NodeBinOp shape; the bin_op rule (format package) lays
// them all out the same way, whatever the operator token is.
var binOpLevels = [][]synkind.Kind{
	{synkind.TokenOpImplies},
	{synkind.TokenOpOr},
	{synkind.TokenOpAnd},
	{synkind.TokenOpEq, synkind.TokenOpNeq},
	{synkind.TokenOpLt, synkind.TokenOpLeq, synkind.TokenOpGt, synkind.TokenOpGeq},
	{synkind.TokenOpHasAttr},
	{synkind.TokenOpUpdate},
	{synkind.TokenOpPlus, synkind.TokenOpMinus},
	{synkind.TokenOpMul, synkind.TokenOpDiv},
	{synkind.TokenOpConcat},
}

// rightAssocLevels holds the precedence levels (indices into binOpLevels)
// whose operator is right-associative: ->, //, and ++.
var rightAssocLevels = map[int]bool{0: true, 6: true, 9: true}

func kindIn(k synkind.Kind, ks []synkind.Kind) bool {
	for _, x := range ks {
		if k == x {
			return true
		}
	}
	return false
}

// parseOp implements precedence climbing over binOpLevels; level ==
// len(binOpLevels) bottoms out at unary/apply/select.
func (p *parser) parseOp(level int) {
	if level >= len(binOpLevels) {
		p.parseUnary()
		return
	}
	ops := binOpLevels[level]
	cp := p.b.Checkpoint()
	p.parseOp(level + 1)

	for {
		p.bumpTrivia()
		if !kindIn(p.curKind(), ops) {
			return
		}
		p.b.StartNodeAt(cp, synkind.NodeBinOp)
		p.advanceRaw()
		if rightAssocLevels[level] {
			p.parseOp(level)
		} else {
			p.parseOp(level + 1)
		}
		p.b.FinishNode()
		// Loop again so left-associative chains (`a + b + c`) keep
		// wrapping the same checkpoint instead of recursing.
		if rightAssocLevels[level] {
			return
		}
	}
}

// parseUnary handles the prefix operators `-` and `!`, which bind tighter
// than any binary operator but looser than application/select.
func (p *parser) parseUnary() {
	p.bumpTrivia()
	switch p.curKind() {
	case synkind.TokenOpMinus, synkind.TokenOpNot:
		p.b.StartNode(synkind.NodeUnaryOp)
		p.advanceRaw()
		p.parseUnary()
		p.b.FinishNode()
	default:
		p.parseApply()
	}
}

// parseApply folds a left-associative chain of juxtaposed operands
// (`f x y`) into nested NodeApply nodes; each operand is a select-level
// expression, matching real Nix's expr_app := expr_app expr_select.
func (p *parser) parseApply() {
	cp := p.b.Checkpoint()
	p.parseSelect()
	for p.startsApplyArg() {
		p.b.StartNodeAt(cp, synkind.NodeApply)
		p.parseSelect()
		p.b.FinishNode()
	}
}

// startsApplyArg reports whether the next significant token can begin a
// fresh application argument (a select-level expression), without
// consuming anything.
func (p *parser) startsApplyArg() bool {
	switch p.peekSig(0) {
	case synkind.TokenIdent, synkind.TokenInt, synkind.TokenFloat,
		synkind.TokenPath, synkind.TokenURI, synkind.TokenParenOpen,
		synkind.TokenCurlyOpen, synkind.TokenBracketOpen,
		synkind.TokenStringStart, synkind.TokenIndentedStringStart,
		synkind.TokenKwRec:
		return true
	default:
		return false
	}
}

// parseSelect parses a primary expression followed by an optional
// `.attrpath`, itself optionally followed by `or default`. NodeSelect is
// only created when a `.` is present; NodeOrDefault only when `or`
// follows a select.
func (p *parser) parseSelect() {
	cp := p.b.Checkpoint()
	p.parsePrimary()
	if !p.atSig(synkind.TokenDot) {
		return
	}
	p.b.StartNodeAt(cp, synkind.NodeSelect)
	p.bump(synkind.TokenDot, ".")
	p.parseKeyPart()
	for p.atSig(synkind.TokenDot) {
		p.bump(synkind.TokenDot, ".")
		p.parseKeyPart()
	}
	p.b.FinishNode()
	if p.atSig(synkind.TokenKwOr) {
		p.b.StartNodeAt(cp, synkind.NodeOrDefault)
		p.bump(synkind.TokenKwOr, "or")
		p.parseSelect()
		p.b.FinishNode()
	}
}

// parsePrimary parses an atomic expression: a literal, identifier, paren,
// attribute set, list, or string.
func (p *parser) parsePrimary() {
	p.bumpTrivia()
	switch p.curKind() {
	case synkind.TokenInt, synkind.TokenFloat, synkind.TokenPath, synkind.TokenURI:
		p.b.StartNode(synkind.NodeLiteral)
		p.advanceRaw()
		p.b.FinishNode()
	case synkind.TokenIdent:
		p.b.StartNode(synkind.NodeIdent)
		p.advanceRaw()
		p.b.FinishNode()
	case synkind.TokenParenOpen:
		p.parseParen()
	case synkind.TokenKwRec:
		p.parseAttrSet()
	case synkind.TokenCurlyOpen:
		p.parseAttrSet()
	case synkind.TokenBracketOpen:
		p.parseList()
	case synkind.TokenStringStart, synkind.TokenIndentedStringStart:
		p.parseString(false)
	default:
		p.fail("unexpected token %q", p.curTok().Text)
	}
}
