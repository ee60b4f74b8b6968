package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// A NodePatEntry always wraps exactly one child: `...`, a plain identifier,
// or a NodePatBind. There's no layout choice at this level — it just
// formats whichever one it holds. Grounded on
// original_source/.../rules/pat_entry.rs.
func init() {
	registerRule(synkind.NodePatEntry, rulePatEntry)
}

func rulePatEntry(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := node.ChildrenWithTokens()
	if len(children) == 0 {
		return nil
	}
	if ctx.Vertical {
		return []Step{FormatWider(children[0])}
	}
	return []Step{Format(children[0])}
}
