package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// Grounded on original_source/.../rules/let_in.rs.
func init() {
	registerRule(synkind.NodeLetIn, ruleLetIn)
}

func ruleLetIn(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)
	letKw := children[0]
	inIdx := len(children) - 2
	inKw := children[inIdx]
	body := children[inIdx+1]
	bindings := children[1:inIdx]

	vertical := len(bindings) > 1 || ctx.Vertical || HasComments(node) || HasNewlines(node)

	var steps []Step
	if vertical {
		// For expanded `let`s, put the `let` on a new line.
		steps = append(steps, NewLine(), Pad())
	}
	steps = append(steps, Format(letKw.Elem))
	if vertical {
		steps = append(steps, Indent())
	}

	for idx, b := range bindings {
		if vertical {
			steps = append(steps, NewLine(), Pad(), FormatWider(b.Elem))
		} else {
			steps = append(steps, Whitespace(), Format(b.Elem))
		}
		if b.HasInlineComment {
			steps = append(steps, Whitespace(), CommentStep(b.InlineComment))
		}
		for _, t := range b.Trivialities {
			if t.Kind == TriviaComment {
				steps = append(steps, NewLine(), Pad(), CommentStep(t.Text))
			}
		}
		if idx < len(bindings)-1 && b.HasBlankLine() {
			steps = append(steps, NewLine())
		}
	}

	if vertical {
		steps = append(steps, Dedent(), NewLine(), Pad())
	} else {
		steps = append(steps, Whitespace())
	}
	steps = append(steps, Format(inKw.Elem))

	inComments := inKw.Comments()
	dedent := false
	if vertical {
		if len(inComments) == 0 && letInBodyInline(body.Elem.Kind()) {
			steps = append(steps, Whitespace())
		} else {
			dedent = true
			steps = append(steps, Indent(), NewLine(), Pad())
		}
	} else {
		steps = append(steps, Whitespace())
	}

	for _, c := range inComments {
		steps = append(steps, CommentStep(c), NewLine(), Pad())
	}

	if vertical {
		steps = append(steps, FormatWider(body.Elem))
		if dedent {
			steps = append(steps, Dedent())
		}
	} else {
		steps = append(steps, Format(body.Elem))
	}

	return steps
}

func letInBodyInline(k synkind.Kind) bool {
	switch k {
	case synkind.NodeAttrSet, synkind.NodeLetIn, synkind.NodeList, synkind.NodeParen, synkind.NodeString:
		return true
	default:
		return false
	}
}
