package format

import (
	"strings"

	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// `(expr)`, `inherit (expr) a b;`'s source clause, and a string's `${expr}`
// interpolation all share one opener/expr/closer shape, and all three get
// the same loose/indent treatment in the original. Grounded on
// original_source/.../rules/paren.rs.
func init() {
	registerRule(synkind.NodeParen, ruleParen)
	registerRule(synkind.NodeInheritFrom, ruleParen)
	registerRule(synkind.NodeStringInterpol, ruleParen)
}

func ruleParen(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)
	if len(children) < 3 {
		var steps []Step
		for _, c := range children {
			steps = append(steps, Format(c.Elem))
		}
		return steps
	}
	opener, expr, closer := children[0], children[1], children[2]
	exprKind := expr.Elem.Kind()

	anyTrivia := opener.HasTrivialities() || expr.HasTrivialities() || closer.HasTrivialities()
	anyInline := opener.HasInlineComment || expr.HasInlineComment || closer.HasInlineComment
	anyComments := len(opener.Comments()) > 0 || len(expr.Comments()) > 0 || len(closer.Comments()) > 0
	shouldLooseIfTrivial := !parenNeverLoosesForTrivia(exprKind)

	var loose bool
	if exprKind == synkind.NodeLambda {
		loose = lambdaDefHasNewline(expr.Elem)
	} else {
		loose = anyInline || anyComments || exprKind == synkind.NodeIfElse || (anyTrivia && shouldLooseIfTrivial)
	}

	nodeCanIndent := parenCanIndent(exprKind)
	shouldIndent := nodeCanIndent && !secondThroughPenultimateLineIndented(ctx, expr.Elem, exprKind == synkind.NodeLambda)

	var steps []Step
	steps = append(steps, Format(opener.Elem))
	if shouldIndent {
		steps = append(steps, Indent())
	}

	if opener.HasInlineComment {
		steps = append(steps, Whitespace(), CommentStep(opener.InlineComment), NewLine(), Pad())
	} else if loose {
		steps = append(steps, NewLine(), Pad())
	}
	for _, t := range opener.Trivialities {
		if t.Kind == TriviaComment {
			steps = append(steps, CommentStep(t.Text), NewLine(), Pad())
		}
	}

	if loose {
		steps = append(steps, FormatWider(expr.Elem))
	} else {
		steps = append(steps, Format(expr.Elem))
	}

	if expr.HasInlineComment {
		steps = append(steps, Whitespace(), CommentStep(expr.InlineComment))
	}
	for _, t := range expr.Trivialities {
		if t.Kind == TriviaComment {
			steps = append(steps, NewLine(), Pad(), CommentStep(t.Text))
		}
	}

	if shouldIndent {
		steps = append(steps, Dedent())
	}
	if loose {
		steps = append(steps, NewLine(), Pad())
	}
	steps = append(steps, Format(closer.Elem))
	return steps
}

func parenNeverLoosesForTrivia(k synkind.Kind) bool {
	switch k {
	case synkind.NodeAttrSet, synkind.NodeLiteral, synkind.NodeList, synkind.NodeString, synkind.NodeUnaryOp:
		return true
	default:
		return false
	}
}

func parenCanIndent(k synkind.Kind) bool {
	switch k {
	case synkind.NodeApply, synkind.NodeAssert, synkind.NodeBinOp, synkind.NodeOrDefault,
		synkind.NodeLambda, synkind.NodeSelect, synkind.NodeWith:
		return true
	default:
		return false
	}
}

// lambdaDefHasNewline walks a curried lambda's parameter chain (NodeLambda /
// NodeIdent nodes only) looking for a newline before reaching the function
// body, the same bounded scan as paren.rs's look_for_newline_until_func_end.
func lambdaDefHasNewline(elem syntax.SyntaxElement) bool {
	found, done := scanLambdaDef(elem, false)
	_ = done
	return found
}

func scanLambdaDef(elem syntax.SyntaxElement, foundNewline bool) (bool, bool) {
	if tok, ok := elem.AsToken(); ok {
		if tok.Kind() == synkind.TokenWhitespace && strings.Contains(tok.Text(), "\n") {
			return true, true
		}
		return foundNewline, false
	}
	node, ok := elem.AsNode()
	if !ok {
		return foundNewline, false
	}
	if node.Kind() != synkind.NodeIdent && node.Kind() != synkind.NodeLambda {
		return foundNewline, true
	}
	for _, c := range node.ChildrenWithTokens() {
		found, done := scanLambdaDef(c, foundNewline)
		foundNewline = found
		if done {
			return foundNewline, true
		}
	}
	return foundNewline, false
}
