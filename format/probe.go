package format

import "github.com/nihei9/nixfmt/syntax"

// FitsInSingleLine reports whether elem can be rendered, starting at ctx's
// current indentation, without any rule in its subtree being forced to emit
// a NewLine (which only happens for content that can never collapse to one
// line regardless of width, e.g. a node carrying a comment). Grounded on
// original_source/.../builder.rs's fits_in_single_line, which runs the same
// build machinery against a disposable tree under a forced-wide ctx rather
// than maintaining a separate measuring pass.
func FitsInSingleLine(ctx *BuildCtx, elem syntax.SyntaxElement) bool {
	_, ok := Build(ctx.NewProbe(), elem)
	log.Debugf("probe %s at indent %d: fits=%v", elem.Kind(), ctx.Indentation, ok)
	return ok
}
