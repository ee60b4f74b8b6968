package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// Grounded on original_source/.../rules/pattern.rs: a lambda's `{ a, b ? d,
// ... }` or `{ ... } @ x` parameter list. Vertical whenever any entry
// carries a comment, or the pattern is simply too big to read on one line:
// its source text is longer than 80 columns, its source length plus the
// current indentation exceeds 120, or it has more than
// patternMaxInlineArgs entries.
func init() {
	registerRule(synkind.NodePattern, rulePattern)
}

// patternMaxInlineArgs is the largest entry count a pattern can have and
// still be laid out on one line.
const patternMaxInlineArgs = 6

func rulePattern(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)

	idx := 0
	var initialAt []Step
	if children[idx].Elem.Kind() == synkind.NodeIdent {
		initialAt = []Step{Format(children[idx].Elem), Format(children[idx+1].Elem)}
		idx += 2
	}

	curlyOpen := children[idx]
	idx++

	var entries []Child
	for {
		k := children[idx].Elem.Kind()
		if k == synkind.TokenComma && len(entries) > 0 {
			// Separating commas are re-emitted by this rule; the trivia
			// that followed one belongs to the entry before it.
			last := &entries[len(entries)-1]
			last.Trivialities = append(last.Trivialities, children[idx].AllTrivia()...)
		} else if k == synkind.NodePatEntry {
			entries = append(entries, children[idx])
		} else {
			break
		}
		idx++
	}
	curlyClose := children[idx]
	idx++

	var endAt []Step
	if idx < len(children) {
		endAt = []Step{Format(children[idx].Elem), Format(children[idx+1].Elem)}
	}

	anyComment := false
	for _, e := range entries {
		if len(e.Comments()) > 0 {
			anyComment = true
			break
		}
	}

	plainWidth := measureWidth(node)
	vertical := ctx.Vertical || anyComment || HasComments(node) ||
		plainWidth > 80 || plainWidth+ctx.Indentation*indentUnit > 120 || len(entries) > patternMaxInlineArgs

	var steps []Step
	steps = append(steps, initialAt...)
	steps = append(steps, Format(curlyOpen.Elem))

	curlyOpenComments := curlyOpen.Comments()

	if !vertical {
		steps = append(steps, Whitespace())
		for i, e := range entries {
			steps = append(steps, Format(e.Elem))
			if i < len(entries)-1 && !isEllipsisEntry(e.Elem) {
				steps = append(steps, TokenStep(synkind.TokenComma, ","), Whitespace())
			}
		}
		if len(entries) > 0 {
			steps = append(steps, Whitespace())
		}
		steps = append(steps, Format(curlyClose.Elem))
		steps = append(steps, endAt...)
		return steps
	}

	steps = append(steps, Indent())
	for _, c := range curlyOpenComments {
		steps = append(steps, Whitespace(), CommentStep(c))
	}
	for _, e := range entries {
		steps = append(steps, NewLine(), Pad(), FormatWider(e.Elem))
		if !isEllipsisEntry(e.Elem) {
			steps = append(steps, TokenStep(synkind.TokenComma, ","))
		}
		for _, c := range e.Comments() {
			steps = append(steps, Whitespace(), CommentStep(c))
		}
	}
	steps = append(steps, Dedent(), NewLine(), Pad())
	for _, c := range curlyClose.Comments() {
		// A comment attached to the closing brace itself (rare): keep it on
		// the same line just before the brace.
		steps = append(steps, CommentStep(c), NewLine(), Pad())
	}
	steps = append(steps, Format(curlyClose.Elem))
	steps = append(steps, endAt...)
	return steps
}

// isEllipsisEntry reports whether e is the NodePatEntry wrapping a bare `...`.
// Grounded on original_source/.../rules/pattern.rs's comma guard
// (`if !matches!(element_kind, TOKEN_ELLIPSIS)`): `...` never takes a
// trailing comma, vertical or horizontal.
func isEllipsisEntry(elem syntax.SyntaxElement) bool {
	node, ok := elem.AsNode()
	if !ok || node.Kind() != synkind.NodePatEntry {
		return false
	}
	children := node.ChildrenWithTokens()
	return len(children) > 0 && children[0].Kind() == synkind.TokenEllipsis
}

// measureWidth returns the length of node's source text; used only by
// pattern's own width-based vertical trigger (spec.md §4.5's pattern
// prose), which is specific to this rule and not part of the generic
// fits-in-single-line probe.
func measureWidth(node *syntax.SyntaxNode) int {
	return len(node.Text())
}
