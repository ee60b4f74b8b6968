package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// `a.b.c`: a head expression followed by one or more `.`-separated
// components. Grounded on spec.md §4.5's select prose (no surviving Rust
// original in the retrieved pack — rnix/alejandra fold select into a
// different node shape than this grammar's explicit NodeSelect).
func init() {
	registerRule(synkind.NodeSelect, ruleSelect)
}

func ruleSelect(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := node.ChildrenWithTokens()
	// Inside a probe the one-line form is the one being measured; probing
	// this same node again from here would never return.
	if ctx.ForceWide || FitsInSingleLine(ctx, syntax.NodeElement(node)) {
		steps := make([]Step, len(children))
		for i, c := range children {
			steps[i] = Format(c)
		}
		return steps
	}

	var steps []Step
	steps = append(steps, Format(children[0]))
	steps = append(steps, Indent())
	i := 1
	for i < len(children) {
		if children[i].Kind() == synkind.TokenDot {
			steps = append(steps, NewLine(), Pad())
		}
		steps = append(steps, Format(children[i]))
		i++
	}
	steps = append(steps, Dedent())
	return steps
}
