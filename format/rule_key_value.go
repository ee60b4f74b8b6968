package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// Grounded on original_source/.../rules/key_value.rs, including its
// superfluous-paren unwrap (spec.md §4.6) and its decision ladder for
// whether the value starts on the `=` line or is indented onto its own.
func init() {
	registerRule(synkind.NodeKeyValue, ruleKeyValue)
}

func ruleKeyValue(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)
	key, eq, exprChild, semi := children[0], children[1], children[2], children[3]

	vertical := ctx.Vertical || HasComments(node) || HasNewlines(node)

	var steps []Step
	if vertical {
		steps = append(steps, FormatWider(key.Elem))
	} else {
		steps = append(steps, Format(key.Elem))
	}

	keyComments := key.Comments()
	if len(keyComments) > 0 {
		for _, c := range keyComments {
			steps = append(steps, NewLine(), Pad(), CommentStep(c))
		}
		steps = append(steps, NewLine(), Pad())
	} else {
		steps = append(steps, Whitespace())
	}

	commentsBefore := eq.Comments()
	commentsAfter := exprChild.Comments()
	exprElem := unwrapSuperfluousParen(exprChild.Elem)

	steps = append(steps, Format(eq.Elem))

	dedent := false
	if vertical {
		nodeIsApply := exprElem.Kind() == synkind.NodeApply
		sndThruPenult := secondThroughPenultimateLineIndented(ctx, exprElem, false)

		switch {
		case len(commentsBefore) > 0 || len(commentsAfter) > 0:
			// For expanded values, allow starting the value on the same
			// line if it is a function: `foo = { some, args }:\n  body`.
			if exprElem.Kind() != synkind.NodeLambda {
				dedent = true
				steps = append(steps, Indent(), NewLine(), Pad())
			}
			steps = append(steps, Whitespace())
		case exprElem.Kind() == synkind.NodeLetIn:
			steps = append(steps, Indent())
		case keyValueInlineBody(exprElem.Kind()) || (nodeIsApply && sndThruPenult):
			steps = append(steps, Whitespace())
		default:
			dedent = true
			steps = append(steps, Indent(), NewLine(), Pad())
		}
	} else {
		steps = append(steps, Whitespace())
	}

	for _, c := range commentsBefore {
		steps = append(steps, CommentStep(c), NewLine(), Pad())
	}

	if vertical {
		steps = append(steps, FormatWider(exprElem))
		if len(commentsAfter) > 0 {
			steps = append(steps, NewLine(), Pad())
		}
	} else {
		steps = append(steps, Format(exprElem))
	}

	for _, c := range commentsAfter {
		steps = append(steps, CommentStep(c), NewLine(), Pad())
	}

	steps = append(steps, Format(semi.Elem))
	if dedent {
		steps = append(steps, Dedent())
	}

	return steps
}

func keyValueInlineBody(k synkind.Kind) bool {
	switch k {
	case synkind.NodeAssert, synkind.NodeAttrSet, synkind.NodeParen, synkind.NodeLambda,
		synkind.NodeLetIn, synkind.NodeList, synkind.NodeString, synkind.NodeWith:
		return true
	default:
		return false
	}
}

// unwrapSuperfluousParen implements spec.md §4.6: a value that is a paren
// wrapping exactly one expression, with no trivia attached to either
// delimiter, loses its parens.
func unwrapSuperfluousParen(elem syntax.SyntaxElement) syntax.SyntaxElement {
	node, ok := elem.AsNode()
	if !ok || node.Kind() != synkind.NodeParen {
		return elem
	}
	kids := Reify(node)
	if len(kids) != 3 || kids[0].HasTrivialities() || kids[0].HasInlineComment ||
		kids[1].HasTrivialities() || kids[1].HasInlineComment {
		return elem
	}
	return kids[1].Elem
}
