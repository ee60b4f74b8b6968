package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// `inherit (from)? a b c;`. Grounded on spec.md §4.5's inherit prose.
func init() {
	registerRule(synkind.NodeInherit, ruleInherit)
}

func ruleInherit(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)
	kw := children[0]

	idx := 1
	var from *Child
	if idx < len(children) && children[idx].Elem.Kind() == synkind.NodeInheritFrom {
		from = &children[idx]
		idx++
	}
	semi := children[len(children)-1]
	idents := children[idx : len(children)-1]

	vertical := ctx.Vertical || HasComments(node) || len(idents) > 6

	steps := []Step{Format(kw.Elem)}
	if from != nil {
		steps = append(steps, Whitespace(), Format(from.Elem))
	}

	if !vertical {
		for _, id := range idents {
			steps = append(steps, Whitespace(), Format(id.Elem))
		}
		steps = append(steps, Format(semi.Elem))
		return steps
	}

	steps = append(steps, Indent())
	for _, id := range idents {
		steps = append(steps, NewLine(), Pad(), Format(id.Elem))
		for _, c := range id.Comments() {
			steps = append(steps, Whitespace(), CommentStep(c))
		}
	}
	steps = append(steps, Dedent())
	steps = append(steps, Format(semi.Elem))
	return steps
}
