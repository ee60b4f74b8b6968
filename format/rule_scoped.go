package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// ruleScoped lays out `assert c; body` and `with e; body`, which share one
// shape: keyword, scope/condition expression, `;`, body. Grounded on
// spec.md §4.5's "if_else, scoped" prose (no Rust original survives in the
// retrieved pack for this rule).
func init() {
	registerRule(synkind.NodeAssert, ruleScoped)
	registerRule(synkind.NodeWith, ruleScoped)
}

func ruleScoped(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)
	kw, scope, semi, body := children[0], children[1], children[2], children[3]

	vertical := ctx.Vertical || HasComments(node) || HasNewlines(node)

	steps := []Step{Format(kw.Elem), Whitespace()}
	if vertical {
		steps = append(steps, FormatWider(scope.Elem))
	} else {
		steps = append(steps, Format(scope.Elem))
	}
	steps = append(steps, Format(semi.Elem))

	if vertical {
		steps = append(steps, NewLine(), Pad(), FormatWider(body.Elem))
	} else {
		steps = append(steps, Whitespace(), Format(body.Elem))
	}
	return steps
}
