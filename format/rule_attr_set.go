package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// `{ a = 1; b = 2; }` and `[ a b c ]`. Grounded on spec.md §4.5's attr_set,
// list prose and its S1/boundary examples (no surviving Rust original in
// the retrieved pack): horizontal keeps everything on one line with
// `;`/space-separated items, vertical gives every item its own line and
// preserves at most one blank line between items.
func init() {
	registerRule(synkind.NodeAttrSet, ruleAttrSet)
	registerRule(synkind.NodeList, ruleList)
}

// KeyValue and Inherit bindings already carry their own trailing `;` (the
// parser folds it into the node), so attr_set never needs to add one; list
// elements are plain expressions with no separator at all.
func ruleAttrSet(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	return ruleBlock(ctx, node, true)
}

func ruleList(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	return ruleBlock(ctx, node, false)
}

func ruleBlock(ctx *BuildCtx, node *syntax.SyntaxNode, nonEmptyForcesVertical bool) []Step {
	children := Reify(node)

	idx := 0
	var recKw *Child
	if children[idx].Elem.Kind() == synkind.TokenKwRec {
		recKw = &children[idx]
		idx++
	}
	opener := children[idx]
	idx++
	closer := children[len(children)-1]
	items := children[idx : len(children)-1]

	// Any non-empty attr-set always explodes, one binding per line — spec.md's
	// S1 (multiple bindings) and S4 (`{ a = (1 + 2); }` single binding) both
	// expand, so the trigger is non-emptiness, not a binding count above one.
	// Lists have no such example in spec.md, so they follow its literal
	// attr_set/list prose (comments/blank-lines/ctx only) and stay horizontal
	// for any length that doesn't otherwise force a break.
	vertical := (nonEmptyForcesVertical && len(items) > 0) || ctx.Vertical || HasComments(node) || HasBlankLine(node)

	var steps []Step
	if recKw != nil {
		steps = append(steps, Format(recKw.Elem), Whitespace())
	}
	steps = append(steps, Format(opener.Elem))

	if !vertical {
		if len(items) > 0 {
			steps = append(steps, Whitespace())
		}
		for i, it := range items {
			steps = append(steps, Format(it.Elem))
			if i < len(items)-1 {
				steps = append(steps, Whitespace())
			}
		}
		if len(items) > 0 {
			steps = append(steps, Whitespace())
		}
		steps = append(steps, Format(closer.Elem))
		return steps
	}

	steps = append(steps, Indent())
	for _, c := range opener.Comments() {
		steps = append(steps, Whitespace(), CommentStep(c))
	}
	for i, it := range items {
		steps = append(steps, NewLine(), Pad(), FormatWider(it.Elem))
		if it.HasInlineComment {
			steps = append(steps, Whitespace(), CommentStep(it.InlineComment))
		}
		for _, t := range it.Trivialities {
			if t.Kind == TriviaComment {
				steps = append(steps, NewLine(), Pad(), CommentStep(t.Text))
			}
		}
		if i < len(items)-1 && it.HasBlankLine() {
			steps = append(steps, NewLine())
		}
	}
	steps = append(steps, Dedent(), NewLine(), Pad())
	steps = append(steps, Format(closer.Elem))
	return steps
}
