package format

import (
	"strings"

	"github.com/nihei9/nixfmt/syntax"
)

func hasNewlines(s string) bool  { return strings.Contains(s, "\n") }
func countNewlines(s string) int { return strings.Count(s, "\n") }

// secondThroughPenultimateLineIndented renders elem under ctx with
// ForceWide off and reports whether every line but the first and last
// already starts at one indent level deeper than ctx's current
// indentation (empty lines, and lines starting with `}:` or `in` at the
// current indentation, also pass) — used by key_value/paren to decide whether an
// already-multi-line body needs an extra Indent/Dedent wrapped around it,
// or already supplies its own. Grounded on
// original_source/.../utils.rs's second_through_penultimate_line_are_indented.
func secondThroughPenultimateLineIndented(ctx *BuildCtx, elem syntax.SyntaxElement, ifLeqTwoLines bool) bool {
	plain := ctx.Clone()
	plain.ForceWide = false
	tree, ok := Build(plain, elem)
	if !ok {
		return ifLeqTwoLines
	}
	lines := strings.Split(tree.Text(), "\n")
	if len(lines) <= 2 {
		return ifLeqTwoLines
	}

	indented := indentText(ctx.Indentation + 1)
	lambdaClose := indentText(ctx.Indentation) + "}:"
	inKw := indentText(ctx.Indentation) + "in"
	for _, line := range lines[1 : len(lines)-1] {
		if line == "" || strings.HasPrefix(line, indented) || strings.HasPrefix(line, lambdaClose) || strings.HasPrefix(line, inKw) {
			continue
		}
		return false
	}
	return true
}
