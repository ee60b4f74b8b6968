package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// `name ? default` inside a pattern. original_source/.../rules/pat_bind.rs
// survives only in an unfinished state (a stray dbg! call, and a default
// expression it parses but never actually emits), so this is built from
// spec.md's prose instead: a plain `ident ? default`, with the default
// widened exactly like any other binary operand.
func init() {
	registerRule(synkind.NodePatBind, rulePatBind)
}

func rulePatBind(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)
	name, question, def := children[0], children[1], children[2]

	steps := []Step{Format(name.Elem), Whitespace(), Format(question.Elem), Whitespace()}
	if ctx.Vertical {
		steps = append(steps, FormatWider(def.Elem))
	} else {
		steps = append(steps, Format(def.Elem))
	}
	return steps
}
