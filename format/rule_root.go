package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// The whole file: optional leading trivia, one expression, optional
// trailing trivia. Grounded on spec.md §4.5's root prose. The leading
// blank-line trim and the single-trailing-newline guarantee are both
// string-level cleanups applied once by format.Format after the whole tree
// is built, rather than steps here: a rule as deep as let_in can itself
// emit a NewLine before its first token when vertical (see rule_let_in.go,
// carried over from the original's own acknowledged "what will this do for
// a file that starts immediately with a `let`?" case), so only a final
// pass over the rendered text can guarantee no leading blank line survives.
func init() {
	registerRule(synkind.NodeRoot, ruleRoot)
}

func ruleRoot(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := node.ChildrenWithTokens()

	var steps []Step
	i := 0
	for i < len(children) && isTriviaElem(children[i]) {
		if tok, ok := children[i].AsToken(); ok {
			if tok.Kind() == synkind.TokenComment {
				steps = append(steps, CommentStep(tok.Text()), NewLine())
			}
		}
		i++
	}

	if i < len(children) {
		steps = append(steps, FormatWider(children[i]))
		i++
	}

	for i < len(children) {
		if tok, ok := children[i].AsToken(); ok && tok.Kind() == synkind.TokenComment {
			steps = append(steps, NewLine(), CommentStep(tok.Text()))
		}
		i++
	}

	return steps
}
