package format

import (
	"strings"

	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// Grounded on spec.md §4.5's string prose. Double-quoted strings round-trip
// verbatim. Indented strings (`'' … ''`) have their common leading
// whitespace stripped and replaced with one level deeper than the current
// indentation, matching Nix's own indented-string dedent rule but driven by
// the formatter's own indentation instead of the raw source column.
func init() {
	registerRule(synkind.NodeString, ruleString)
}

func ruleString(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := node.ChildrenWithTokens()
	if len(children) == 0 {
		return nil
	}
	opener, ok := children[0].AsToken()
	if !ok || opener.Kind() != synkind.TokenIndentedStringStart {
		steps := make([]Step, len(children))
		for i, c := range children {
			steps[i] = Format(c)
		}
		return steps
	}

	dedent := commonIndent(children[1 : len(children)-1])
	newIndent := indentText(ctx.Indentation + 1)

	steps := []Step{Format(children[0])}
	for _, c := range children[1 : len(children)-1] {
		if tok, ok := c.AsToken(); ok && tok.Kind() == synkind.TokenStringContent {
			steps = append(steps, TokenStep(synkind.TokenStringContent, reindentStringContent(tok.Text(), dedent, newIndent)))
			continue
		}
		steps = append(steps, Format(c))
	}
	steps = append(steps, Format(children[len(children)-1]))
	return steps
}

// commonIndent returns the minimum leading-whitespace width shared by every
// non-blank line across body's StringContent tokens.
func commonIndent(body []syntax.SyntaxElement) int {
	min := -1
	for _, c := range body {
		tok, ok := c.AsToken()
		if !ok || tok.Kind() != synkind.TokenStringContent {
			continue
		}
		for _, line := range strings.Split(tok.Text(), "\n") {
			trimmed := strings.TrimLeft(line, " ")
			if trimmed == "" {
				continue
			}
			w := len(line) - len(trimmed)
			if min == -1 || w < min {
				min = w
			}
		}
	}
	if min == -1 {
		return 0
	}
	return min
}

func reindentStringContent(text string, dedent int, newIndent string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return text
	}
	for i, line := range lines {
		if i == 0 {
			continue
		}
		trimmed := line
		if len(trimmed) >= dedent {
			trimmed = trimmed[dedent:]
		} else {
			trimmed = strings.TrimLeft(trimmed, " ")
		}
		if strings.TrimSpace(trimmed) == "" {
			lines[i] = trimmed
		} else {
			lines[i] = newIndent + trimmed
		}
	}
	return strings.Join(lines, "\n")
}
