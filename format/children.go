package format

import (
	"strings"

	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// TriviaKind distinguishes the two shapes of gap trivia a rule cares about.
type TriviaKind int

const (
	TriviaComment TriviaKind = iota
	TriviaNewlines
)

// Triviality is one item in the ordered gap between two significant
// children: either a comment or a run of blank lines.
type Triviality struct {
	Kind  TriviaKind
	Text  string // set when Kind == TriviaComment
	Count int    // newline count when Kind == TriviaNewlines
}

// Child is one significant (non-trivia) element of a node, annotated with
// the trivia that followed it and preceded the next significant sibling.
// Grounded on spec.md §4.3's child reifier description; this is the
// per-child-attached variant ("children2").
type Child struct {
	Elem             syntax.SyntaxElement
	HasInlineComment bool
	InlineComment    string
	Trivialities     []Triviality
}

func (c Child) HasTrivialities() bool { return len(c.Trivialities) > 0 }

// AllTrivia returns c's inline comment, if any, followed by its
// Trivialities, as one ordered sequence. Rules grounded on the original's
// generic drain-queue child walk (as opposed to the per-child-attached
// "children2" walk apply/paren use) never split an immediately-trailing
// comment out from the rest of the gap, so they read the gap through this
// instead of HasInlineComment/Trivialities separately.
func (c Child) AllTrivia() []Triviality {
	if !c.HasInlineComment {
		return c.Trivialities
	}
	return append([]Triviality{{Kind: TriviaComment, Text: c.InlineComment}}, c.Trivialities...)
}

// Comments returns just the comment texts from AllTrivia, in order.
func (c Child) Comments() []string {
	var out []string
	for _, t := range c.AllTrivia() {
		if t.Kind == TriviaComment {
			out = append(out, t.Text)
		}
	}
	return out
}

// HasBlankLine reports whether any gap after c contains a preserved blank
// line (≥2 newlines in one run).
func (c Child) HasBlankLine() bool {
	for _, t := range c.Trivialities {
		if t.Kind == TriviaNewlines && t.Count >= 2 {
			return true
		}
	}
	return false
}

// Reify partitions node's immediate children into significant elements,
// each carrying the trivia that trails it.
func Reify(node *syntax.SyntaxNode) []Child {
	all := node.ChildrenWithTokens()
	var out []Child
	i := 0
	for i < len(all) {
		el := all[i]
		if isTriviaElem(el) {
			// Leading trivia with no preceding significant sibling in this
			// node (e.g. a comment right after an opening brace) has
			// nowhere to attach; HasComments/HasBlankLine still see it via
			// their own direct scan of ChildrenWithTokens.
			i = attachGap(all, i, &out, true)
			continue
		}
		out = append(out, Child{Elem: el})
		i++
		i = attachGap(all, i, &out, false)
	}
	return out
}

// attachGap scans the run of trivia tokens starting at i, classifies an
// immediately-following same-line comment as the inline comment of the
// most recently appended child (when leading is false), and appends any
// remaining comments/blank-line runs as Trivialities on that child. It
// returns the index just past the trivia run.
func attachGap(all []syntax.SyntaxElement, i int, out *[]Child, leading bool) int {
	start := i
	for i < len(all) && isTriviaElem(all[i]) {
		i++
	}
	run := all[start:i]
	if leading || len(*out) == 0 {
		// No prior child to attach to in this node; nothing to do besides
		// having consumed the run (global HasComments/HasBlankLine scans
		// cover this case independently of per-child attachment).
		return i
	}
	last := &(*out)[len(*out)-1]
	j := 0
	idx := 0
	sameLine := true
	for idx < len(run) {
		tok, ok := run[idx].AsToken()
		if !ok || tok.Kind() != synkind.TokenWhitespace {
			break
		}
		if strings.Contains(tok.Text(), "\n") {
			sameLine = false
			break
		}
		idx++
	}
	if sameLine && idx < len(run) {
		if tok, ok := run[idx].AsToken(); ok && tok.Kind() == synkind.TokenComment && !strings.Contains(tok.Text(), "\n") {
			last.HasInlineComment = true
			last.InlineComment = tok.Text()
			j = idx + 1
		}
	}
	last.Trivialities = append(last.Trivialities, trivialitiesFrom(run[j:])...)
	return i
}

func trivialitiesFrom(run []syntax.SyntaxElement) []Triviality {
	var out []Triviality
	newlines := 0
	flush := func() {
		if newlines > 0 {
			out = append(out, Triviality{Kind: TriviaNewlines, Count: newlines})
			newlines = 0
		}
	}
	for _, el := range run {
		tok, ok := el.AsToken()
		if !ok {
			continue
		}
		switch tok.Kind() {
		case synkind.TokenComment:
			flush()
			out = append(out, Triviality{Kind: TriviaComment, Text: tok.Text()})
		case synkind.TokenWhitespace:
			newlines += strings.Count(tok.Text(), "\n")
		}
	}
	flush()
	return out
}

func isTriviaElem(el syntax.SyntaxElement) bool {
	tok, ok := el.AsToken()
	return ok && tok.Kind().IsTrivia()
}

// HasComments reports whether any immediate child of node is a comment
// token. Non-recursive: a child node's own internal comments are its own
// concern when it is formatted.
func HasComments(node *syntax.SyntaxNode) bool {
	for _, el := range node.ChildrenWithTokens() {
		if tok, ok := el.AsToken(); ok && tok.Kind() == synkind.TokenComment {
			return true
		}
	}
	return false
}

// HasBlankLine reports whether node has a preserved blank line (≥2
// newlines in one whitespace run) between any two immediate children.
func HasBlankLine(node *syntax.SyntaxNode) bool {
	for _, el := range node.ChildrenWithTokens() {
		if tok, ok := el.AsToken(); ok && tok.Kind() == synkind.TokenWhitespace {
			if strings.Count(tok.Text(), "\n") >= 2 {
				return true
			}
		}
	}
	return false
}

// HasNewlines reports whether node has any newline at all between
// immediate children (weaker than HasBlankLine).
func HasNewlines(node *syntax.SyntaxNode) bool {
	for _, el := range node.ChildrenWithTokens() {
		if tok, ok := el.AsToken(); ok && tok.Kind() == synkind.TokenWhitespace {
			if strings.Contains(tok.Text(), "\n") {
				return true
			}
		}
	}
	return false
}

// IsVertical computes the common "should this node lay out expanded"
// predicate shared by nearly every rule (spec.md §4.5's opening
// paragraph): the enclosing context already decided vertical, or this
// node's own immediate trivia carries a comment or a blank line.
func IsVertical(ctx *BuildCtx, node *syntax.SyntaxNode) bool {
	return ctx.Vertical || HasComments(node) || HasBlankLine(node)
}
