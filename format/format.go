package format

import (
	"io"
	"strings"

	"github.com/nihei9/nixfmt/nixerr"
	"github.com/nihei9/nixfmt/nixparser"
	"github.com/nihei9/nixfmt/syntax"
)

// Format parses src as a Nix expression and returns its formatted text.
// path is used only for error messages. A syntax error from the parser is
// returned as-is; a FormatError raised by the layout engine (a programmer
// bug: an unmapped syntax kind or an Indent/Dedent imbalance) is recovered
// here and returned as an error rather than propagated as a panic, per
// spec.md §7.
func Format(path string, src io.Reader) (out string, retErr error) {
	root, err := nixparser.Parse(path, src)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*nixerr.FormatError); ok {
				if fe.Path == "" {
					fe.Path = path
				}
				retErr = fe
				return
			}
			panic(r)
		}
	}()

	ctx := NewBuildCtx(path)
	tree, ok := Build(ctx, syntax.NodeElement(root))
	if !ok {
		return "", &nixerr.FormatError{Path: path, Msg: "top-level format produced no output"}
	}

	text := strings.TrimLeft(tree.Text(), "\n")
	text = strings.TrimRight(text, "\n") + "\n"
	return text, nil
}
