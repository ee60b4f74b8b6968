package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// Grounded on original_source/.../rules/apply.rs.
func init() {
	registerRule(synkind.NodeApply, ruleApply)
}

func ruleApply(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)
	first, second := children[0], children[1]

	vertical := ctx.Vertical || first.HasInlineComment || first.HasTrivialities() ||
		second.HasInlineComment || second.HasTrivialities()

	var steps []Step
	if vertical {
		steps = append(steps, FormatWider(first.Elem))
	} else {
		steps = append(steps, Format(first.Elem))
	}

	if first.HasInlineComment {
		steps = append(steps, Whitespace(), CommentStep(first.InlineComment), NewLine(), Pad())
	}
	for _, t := range first.Trivialities {
		if t.Kind == TriviaComment {
			steps = append(steps, NewLine(), Pad(), CommentStep(t.Text))
		}
	}

	if vertical {
		if !first.HasInlineComment && !first.HasTrivialities() && synkind.BlockShaped(second.Elem.Kind()) {
			steps = append(steps, Whitespace())
		} else {
			steps = append(steps, NewLine(), Pad())
		}
		steps = append(steps, FormatWider(second.Elem))
	} else {
		steps = append(steps, Whitespace(), Format(second.Elem))
	}

	return steps
}
