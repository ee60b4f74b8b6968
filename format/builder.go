// Package format's Build/step machinery: the interpreter that walks a Step
// stream (spec.md §4.1) into a freshly laid-out green tree.
//
// Grounded line for line on original_source/.../builder.rs's build/
// build_step/format/format_wider quartet.
package format

import (
	"fmt"
	"strings"

	"github.com/nihei9/nixfmt/nixerr"
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// indentUnit is the number of spaces one level of Indent renders as.
const indentUnit = 2

// builder drives a Step stream into a syntax.GreenNodeBuilder. It holds no
// BuildCtx itself: ctx is threaded explicitly through every call so a probe
// can run a throwaway builder/ctx pair without disturbing the caller's.
type builder struct {
	gb *syntax.GreenNodeBuilder
}

// Build walks elem under ctx, emitting a freshly laid-out green tree. ok is
// false either because a rule left StartNode/FinishNode unbalanced, or
// because ctx was a forced-single-line probe that hit a NewLine.
func Build(ctx *BuildCtx, elem syntax.SyntaxElement) (*syntax.GreenNode, bool) {
	b := &builder{gb: syntax.NewGreenNodeBuilder()}
	b.format(ctx, elem)

	tree, ok := b.gb.Finish()
	if !ok {
		return nil, false
	}
	if ctx.ForceWide && !ctx.ForceWideSuccess() {
		return nil, false
	}
	return tree, true
}

func (b *builder) step(ctx *BuildCtx, s Step) {
	if ctx.Exhausted() {
		return
	}
	switch s.Kind {
	case StepIndent:
		ctx.Indentation++
	case StepDedent:
		if ctx.Indentation == 0 {
			panic(&nixerr.FormatError{Path: ctx.Path, Msg: "Dedent below zero indentation"})
		}
		ctx.Indentation--
	case StepPad:
		if ctx.Indentation > 0 {
			b.emit(ctx, synkind.TokenWhitespace, indentText(ctx.Indentation))
		}
	case StepWhitespace:
		b.emit(ctx, synkind.TokenWhitespace, " ")
	case StepNewLine:
		ctx.FailForceWide()
		b.emit(ctx, synkind.TokenWhitespace, "\n")
	case StepToken:
		b.emit(ctx, s.TokKind, s.Text)
	case StepComment:
		b.emit(ctx, synkind.TokenComment, reindentComment(s.Text, ctx.Indentation))
	case StepFormat:
		b.format(ctx, s.Elem)
	case StepFormatWider:
		b.formatWider(ctx, s.Elem)
	default:
		panic(&nixerr.FormatError{Path: ctx.Path, Msg: fmt.Sprintf("unhandled step kind %d", s.Kind)})
	}
}

// format lays out elem: a token is emitted verbatim, a node dispatches to
// its registered Rule between a matching StartNode/FinishNode pair.
func (b *builder) format(ctx *BuildCtx, elem syntax.SyntaxElement) {
	if ctx.Exhausted() {
		return
	}
	if tok, ok := elem.AsToken(); ok {
		b.emit(ctx, tok.Kind(), tok.Text())
		return
	}
	node, ok := elem.AsNode()
	if !ok {
		panic(&nixerr.FormatError{Path: ctx.Path, Msg: "syntax element is neither a node nor a token"})
	}
	rule := ruleFor(node.Kind())
	b.gb.StartNode(node.Kind())
	for _, s := range rule(ctx, node) {
		b.step(ctx, s)
		if ctx.Exhausted() {
			break
		}
	}
	b.gb.FinishNode()
}

// formatWider decides, for a node element, via a fits_in_single_line probe,
// whether its own subtree should lay out vertically, then formats it under
// a ctx forked for that decision alone. A bare token has no layout choice
// to make and is formatted directly.
func (b *builder) formatWider(ctx *BuildCtx, elem syntax.SyntaxElement) {
	if _, ok := elem.AsToken(); ok {
		b.format(ctx, elem)
		return
	}
	fits := FitsInSingleLine(ctx, elem)
	clone := ctx.Clone()
	clone.Vertical = !fits
	b.format(clone, elem)
	ctx.PosOld = clone.PosOld
}

func (b *builder) emit(ctx *BuildCtx, kind synkind.Kind, text string) {
	b.gb.Token(kind, text)
	ctx.PosOld = ctx.PosOld.Advance(text)
}

func indentText(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*indentUnit)
}

// reindentComment re-pads every line of a (possibly multi-line) comment
// after the first to the current indentation, trimming trailing whitespace
// off each line; the first line keeps whatever leads it already (the Pad
// step preceding this Comment step in the rule's own output).
func reindentComment(text string, indentation int) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return strings.TrimRight(lines[0], " \t")
	}
	pad := indentText(indentation)
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if i > 0 && line != "" {
			line = pad + line
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
