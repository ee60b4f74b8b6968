package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// Grounded on original_source/.../rules/lambda.rs.
func init() {
	registerRule(synkind.NodeLambda, ruleLambda)
}

func ruleLambda(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)
	param, colon, body := children[0], children[1], children[2]

	vertical := ctx.Vertical || HasComments(node) || HasNewlines(node)

	var steps []Step
	if vertical {
		steps = append(steps, FormatWider(param.Elem))
	} else {
		steps = append(steps, Format(param.Elem))
	}

	paramTrivia := param.AllTrivia()
	if len(paramTrivia) > 0 {
		steps = append(steps, NewLine(), Pad())
	}
	for _, t := range paramTrivia {
		if t.Kind == TriviaComment {
			steps = append(steps, CommentStep(t.Text), NewLine(), Pad())
		}
	}

	steps = append(steps, Format(colon.Elem))

	colonComments := colon.Comments()
	for _, c := range colonComments {
		steps = append(steps, NewLine(), Pad(), CommentStep(c))
	}

	if vertical {
		bodyShouldBreak := len(colonComments) > 0 || !lambdaBodyInline(body.Elem.Kind())
		if bodyShouldBreak {
			shouldIndent := !lambdaBodyInline(body.Elem.Kind()) && ctx.Indentation > 0
			if shouldIndent {
				steps = append(steps, Indent())
			}
			steps = append(steps, NewLine(), Pad(), FormatWider(body.Elem))
			if shouldIndent {
				steps = append(steps, Dedent())
			}
		} else {
			steps = append(steps, Whitespace(), FormatWider(body.Elem))
		}
	} else {
		steps = append(steps, Whitespace(), Format(body.Elem))
	}

	return steps
}

// lambdaBodyInline reports whether kind can follow `:` with a single space
// instead of a line break — block-shaped bodies and curried lambdas, which
// chain `a: b: body` without re-indenting for every parameter.
func lambdaBodyInline(k synkind.Kind) bool {
	switch k {
	case synkind.NodeAttrSet, synkind.NodeParen, synkind.NodeLambda, synkind.NodeLetIn,
		synkind.NodeList, synkind.NodeLiteral, synkind.NodeString:
		return true
	default:
		return false
	}
}
