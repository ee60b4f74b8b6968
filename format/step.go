// Package format is the layout engine CORE: it takes a lossless CST
// (syntax.SyntaxNode) and emits a reformatted green tree, by walking the
// tree and dispatching to one layout rule per synkind.Kind.
//
// Grounded on original_source/.../builder.rs's Step/BuildCtx/build_step
// triad, and on the teacher's own bottom-up walk in
// driver/semantic_action.go for the general shape of "walk a tree, drive a
// builder".
package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// StepKind identifies one instruction in the layout engine's output
// alphabet (spec.md §3, "Step").
type StepKind int

const (
	StepIndent StepKind = iota
	StepDedent
	StepPad
	StepNewLine
	StepWhitespace
	StepToken
	StepComment
	StepFormat
	StepFormatWider
)

// Step is one instruction emitted by a rule. Only the fields relevant to
// Kind are populated.
type Step struct {
	Kind    StepKind
	TokKind synkind.Kind
	Text    string
	Elem    syntax.SyntaxElement
}

func Indent() Step               { return Step{Kind: StepIndent} }
func Dedent() Step               { return Step{Kind: StepDedent} }
func Pad() Step                  { return Step{Kind: StepPad} }
func NewLine() Step              { return Step{Kind: StepNewLine} }
func Whitespace() Step           { return Step{Kind: StepWhitespace} }
func TokenStep(k synkind.Kind, text string) Step {
	return Step{Kind: StepToken, TokKind: k, Text: text}
}
func CommentStep(text string) Step { return Step{Kind: StepComment, Text: text} }
func Format(e syntax.SyntaxElement) Step { return Step{Kind: StepFormat, Elem: e} }
func FormatWider(e syntax.SyntaxElement) Step {
	return Step{Kind: StepFormatWider, Elem: e}
}

// BuildCtx is the mutable-per-walk state threaded through every rule
// invocation (spec.md §3, "BuildCtx").
//
// Indentation and Vertical are plain value fields: Clone copies them, so a
// FormatWider-forked subtree can mutate its own Indentation (balanced by
// its own Indent/Dedent pairs) without disturbing the caller's view once
// control returns. forceWideSuccess is instead a shared pointer: a probe's
// top-level BuildCtx and every ctx forked from it via Clone (as opposed to
// NewProbe) must observe the same success flag, because a NewLine anywhere
// in the subtree has to fail the *original* probe call, not just whichever
// locally-cloned ctx happened to be walking when it was emitted.
type BuildCtx struct {
	Indentation int
	Vertical    bool
	ForceWide   bool
	PosOld      Position

	Path string

	forceWideSuccess *bool
}

// NewBuildCtx creates the single top-level context for formatting path's
// contents, outside of any probe.
func NewBuildCtx(path string) *BuildCtx {
	ok := true
	return &BuildCtx{Path: path, PosOld: Position{Line: 1, Col: 1}, forceWideSuccess: &ok}
}

// Clone forks Vertical/Indentation for a FormatWider-sized subtree while
// keeping ForceWide, Path, and the shared force-wide-success flag.
func (c *BuildCtx) Clone() *BuildCtx {
	cp := *c
	return &cp
}

// NewProbe returns a fully independent context for fits_in_single_line: its
// own force-wide-success flag, ForceWide forced on, Vertical reset, and
// Indentation carried over so the probe measures fit at the current
// column, per spec.md §4.2.
func (c *BuildCtx) NewProbe() *BuildCtx {
	ok := true
	return &BuildCtx{
		Indentation:      c.Indentation,
		Vertical:         false,
		ForceWide:        true,
		Path:             c.Path,
		PosOld:           c.PosOld,
		forceWideSuccess: &ok,
	}
}

// ForceWideSuccess reports the running probe-success flag.
func (c *BuildCtx) ForceWideSuccess() bool { return *c.forceWideSuccess }

// FailForceWide marks the shared probe-success flag false; called when a
// NewLine step is emitted under ForceWide.
func (c *BuildCtx) FailForceWide() { *c.forceWideSuccess = false }

// Exhausted reports whether further steps under this ctx should be
// skipped: we're in a probe and it has already failed.
func (c *BuildCtx) Exhausted() bool { return c.ForceWide && !c.ForceWideSuccess() }
