package format

import (
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

// Grounded on original_source/.../rules/bin_op.rs. Reused verbatim for
// NodeOrDefault: `a or b` has the same left/operator/right shape as any
// other binary operator, only the operator token's text differs.
func init() {
	registerRule(synkind.NodeBinOp, ruleBinOp)
	registerRule(synkind.NodeOrDefault, ruleBinOp)
}

func ruleBinOp(ctx *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := Reify(node)
	if len(children) < 3 {
		// A malformed or degenerate tree; fall back to plain concatenation
		// rather than panicking on an index that isn't there.
		steps := make([]Step, len(children))
		for i, c := range children {
			steps[i] = Format(c.Elem)
		}
		return steps
	}
	lhs, op, rhs := children[0], children[1], children[2]

	vertical := ctx.Vertical || HasComments(node) || HasNewlines(node)

	var steps []Step
	if vertical {
		steps = append(steps, FormatWider(lhs.Elem))
	} else {
		steps = append(steps, Format(lhs.Elem))
	}

	lhsComments := lhs.Comments()
	for _, c := range lhsComments {
		steps = append(steps, NewLine(), Pad(), CommentStep(c))
	}
	if len(lhsComments) > 0 {
		steps = append(steps, NewLine(), Pad())
	} else {
		steps = append(steps, Whitespace())
	}

	steps = append(steps, Format(op.Elem))

	opComments := op.Comments()
	for _, c := range opComments {
		steps = append(steps, NewLine(), Pad(), CommentStep(c))
	}

	dedent := false
	switch {
	case len(opComments) > 0:
		steps = append(steps, NewLine(), Pad())
	case binOpInlineBody(rhs.Elem.Kind()) || FitsInSingleLine(ctx, rhs.Elem):
		steps = append(steps, Whitespace())
	default:
		dedent = true
		steps = append(steps, Indent(), NewLine(), Pad())
	}

	if vertical {
		steps = append(steps, FormatWider(rhs.Elem))
	} else {
		steps = append(steps, Format(rhs.Elem))
	}
	if dedent {
		steps = append(steps, Dedent())
	}

	return steps
}

func binOpInlineBody(k synkind.Kind) bool {
	switch k {
	case synkind.NodeAttrSet, synkind.NodeIdent, synkind.NodeParen, synkind.NodeLambda,
		synkind.NodeLetIn, synkind.NodeList, synkind.NodeLiteral, synkind.NodeString:
		return true
	default:
		return false
	}
}
