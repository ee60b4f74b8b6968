// Package synkind defines the closed set of syntax kinds shared by the
// lexer, parser, syntax tree, and layout engine.
package synkind

// Kind identifies the kind of a syntax node or token. Node kinds and token
// kinds are allocated from disjoint ranges so IsNode/IsToken are a simple
// range check.
type Kind int

const (
	nodeStart Kind = iota

	NodeRoot
	NodeApply
	NodeAssert
	NodeAttrSet
	NodeBinOp
	NodeDynamic
	NodeIdent
	NodeIfElse
	NodeInherit
	NodeInheritFrom
	NodeKey
	NodeKeyValue
	NodeLambda
	NodeLegacyLet
	NodeLetIn
	NodeList
	NodeLiteral
	NodeOrDefault
	NodeParen
	NodePatBind
	NodePattern
	NodePatEntry
	NodePathWithInterpol
	NodeSelect
	NodeString
	NodeStringInterpol
	NodeUnaryOp
	NodeWith

	nodeEnd

	tokenStart

	TokenWhitespace
	TokenComment
	TokenComma
	TokenEllipsis
	TokenCurlyOpen
	TokenCurlyClose
	TokenBracketOpen
	TokenBracketClose
	TokenParenOpen
	TokenParenClose
	TokenColon
	TokenSemicolon
	TokenEquals
	TokenAt
	TokenQuestion
	TokenDot
	TokenOr
	TokenIdent
	TokenInt
	TokenFloat
	TokenPath
	TokenURI
	TokenKwIf
	TokenKwThen
	TokenKwElse
	TokenKwAssert
	TokenKwWith
	TokenKwLet
	TokenKwIn
	TokenKwRec
	TokenKwInherit
	TokenKwOr
	TokenOpEq
	TokenOpNeq
	TokenOpLeq
	TokenOpGeq
	TokenOpLt
	TokenOpGt
	TokenOpAnd
	TokenOpOr
	TokenOpImplies
	TokenOpNot
	TokenOpConcat
	TokenOpUpdate
	TokenOpPlus
	TokenOpMinus
	TokenOpMul
	TokenOpDiv
	TokenOpHasAttr
	TokenDollarCurlyOpen
	TokenStringStart
	TokenStringContent
	TokenStringEnd
	TokenIndentedStringStart
	TokenIndentedStringEnd
	TokenError
	TokenEOF

	tokenEnd
)

// IsNode reports whether k identifies a node kind.
func (k Kind) IsNode() bool { return k > nodeStart && k < nodeEnd }

// IsToken reports whether k identifies a token kind.
func (k Kind) IsToken() bool { return k > tokenStart && k < tokenEnd }

var names = map[Kind]string{
	NodeRoot:             "Root",
	NodeApply:            "Apply",
	NodeAssert:           "Assert",
	NodeAttrSet:          "AttrSet",
	NodeBinOp:            "BinOp",
	NodeDynamic:          "Dynamic",
	NodeIdent:            "Ident",
	NodeIfElse:           "IfElse",
	NodeInherit:          "Inherit",
	NodeInheritFrom:      "InheritFrom",
	NodeKey:              "Key",
	NodeKeyValue:         "KeyValue",
	NodeLambda:           "Lambda",
	NodeLegacyLet:        "LegacyLet",
	NodeLetIn:            "LetIn",
	NodeList:             "List",
	NodeLiteral:          "Literal",
	NodeOrDefault:        "OrDefault",
	NodeParen:            "Paren",
	NodePatBind:          "PatBind",
	NodePattern:          "Pattern",
	NodePatEntry:         "PatEntry",
	NodePathWithInterpol: "PathWithInterpol",
	NodeSelect:           "Select",
	NodeString:           "String",
	NodeStringInterpol:   "StringInterpol",
	NodeUnaryOp:          "UnaryOp",
	NodeWith:             "With",

	TokenWhitespace:          "Whitespace",
	TokenComment:             "Comment",
	TokenComma:               "Comma",
	TokenEllipsis:            "Ellipsis",
	TokenCurlyOpen:           "CurlyOpen",
	TokenCurlyClose:          "CurlyClose",
	TokenBracketOpen:         "BracketOpen",
	TokenBracketClose:        "BracketClose",
	TokenParenOpen:           "ParenOpen",
	TokenParenClose:          "ParenClose",
	TokenColon:               "Colon",
	TokenSemicolon:           "Semicolon",
	TokenEquals:              "Equals",
	TokenAt:                  "At",
	TokenQuestion:            "Question",
	TokenDot:                 "Dot",
	TokenOr:                  "Or",
	TokenIdent:               "Ident",
	TokenInt:                 "Int",
	TokenFloat:               "Float",
	TokenPath:                "Path",
	TokenURI:                 "URI",
	TokenKwIf:                "KwIf",
	TokenKwThen:              "KwThen",
	TokenKwElse:              "KwElse",
	TokenKwAssert:            "KwAssert",
	TokenKwWith:              "KwWith",
	TokenKwLet:               "KwLet",
	TokenKwIn:                "KwIn",
	TokenKwRec:               "KwRec",
	TokenKwInherit:           "KwInherit",
	TokenKwOr:                "KwOr",
	TokenOpEq:                "OpEq",
	TokenOpNeq:               "OpNeq",
	TokenOpLeq:               "OpLeq",
	TokenOpGeq:               "OpGeq",
	TokenOpLt:                "OpLt",
	TokenOpGt:                "OpGt",
	TokenOpAnd:               "OpAnd",
	TokenOpOr:                "OpOr",
	TokenOpImplies:           "OpImplies",
	TokenOpNot:               "OpNot",
	TokenOpConcat:            "OpConcat",
	TokenOpUpdate:            "OpUpdate",
	TokenOpPlus:              "OpPlus",
	TokenOpMinus:             "OpMinus",
	TokenOpMul:               "OpMul",
	TokenOpDiv:               "OpDiv",
	TokenOpHasAttr:           "OpHasAttr",
	TokenDollarCurlyOpen:     "DollarCurlyOpen",
	TokenStringStart:         "StringStart",
	TokenStringContent:       "StringContent",
	TokenStringEnd:           "StringEnd",
	TokenIndentedStringStart: "IndentedStringStart",
	TokenIndentedStringEnd:   "IndentedStringEnd",
	TokenError:               "Error",
	TokenEOF:                 "EOF",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "Unknown"
}

// IsTrivia reports whether k is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenComment
}

// BlockShaped reports whether a node of this kind is considered "block
// shaped" by the apply rule: a form
// whose own layout already supplies visual structure, so the enclosing rule
// can place it right after a single space instead of indenting+newlining.
func BlockShaped(k Kind) bool {
	switch k {
	case NodeAttrSet, NodeList, NodeParen, NodeString:
		return true
	default:
		return false
	}
}
