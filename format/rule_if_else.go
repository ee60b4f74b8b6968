package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// Grounded on spec.md §4.5's "if_else, scoped" prose: then/else sit at the
// same indent as if, each branch indented one level deeper.
func init() {
	registerRule(synkind.NodeIfElse, ruleIfElse)
}

func ruleIfElse(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	c := Reify(node)
	ifKw, cond, thenKw, thenExpr, elseKw, elseExpr := c[0], c[1], c[2], c[3], c[4], c[5]

	vertical := ctx.Vertical || HasComments(node) || HasNewlines(node)

	steps := []Step{Format(ifKw.Elem), Whitespace()}
	if vertical {
		steps = append(steps, FormatWider(cond.Elem))
	} else {
		steps = append(steps, Format(cond.Elem))
	}

	if vertical {
		steps = append(steps,
			NewLine(), Pad(), Format(thenKw.Elem), Indent(), NewLine(), Pad(), FormatWider(thenExpr.Elem), Dedent(),
			NewLine(), Pad(), Format(elseKw.Elem), Indent(), NewLine(), Pad(), FormatWider(elseExpr.Elem), Dedent(),
		)
	} else {
		steps = append(steps,
			Whitespace(), Format(thenKw.Elem), Whitespace(), Format(thenExpr.Elem),
			Whitespace(), Format(elseKw.Elem), Whitespace(), Format(elseExpr.Elem),
		)
	}
	return steps
}
