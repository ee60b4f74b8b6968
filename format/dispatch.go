package format

import (
	"fmt"

	"github.com/nihei9/nixfmt/nixerr"
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "format")

// Rule produces the Step stream that lays out node's children. ctx reflects
// the context node is being formatted under (indentation, whether an
// enclosing rule already forced vertical layout); a rule may read it but
// only Indent/Dedent/FormatWider steps are allowed to change it.
type Rule func(ctx *BuildCtx, node *syntax.SyntaxNode) []Step

var rules = map[synkind.Kind]Rule{}

func registerRule(k synkind.Kind, r Rule) {
	rules[k] = r
}

// ruleFor looks up node's rule. A miss is a MalformedInvariant-class bug
// (spec.md §7, UnmappedKind): every node kind the parser can produce must
// have a registered rule, so this panics rather than returning an error.
func ruleFor(k synkind.Kind) Rule {
	if r, ok := rules[k]; ok {
		return r
	}
	log.Errorf("no layout rule registered for %s", k)
	panic(&nixerr.FormatError{Msg: fmt.Sprintf("no layout rule registered for %s", k)})
}

// defaultRule formats every child, trivia included, verbatim in source
// order: it makes no layout choice of its own, matching
// original_source/.../rules/mod.rs's default. Used by kinds with no layout
// choice to make: Ident, Key, Literal, UnaryOp, LegacyLet,
// PathWithInterpol, Dynamic.
func defaultRule(_ *BuildCtx, node *syntax.SyntaxNode) []Step {
	children := node.ChildrenWithTokens()
	steps := make([]Step, len(children))
	for i, c := range children {
		steps[i] = Format(c)
	}
	return steps
}

func init() {
	registerRule(synkind.NodeIdent, defaultRule)
	registerRule(synkind.NodeKey, defaultRule)
	registerRule(synkind.NodeLiteral, defaultRule)
	registerRule(synkind.NodeUnaryOp, defaultRule)
	registerRule(synkind.NodeLegacyLet, defaultRule)
	registerRule(synkind.NodePathWithInterpol, defaultRule)
	registerRule(synkind.NodeDynamic, defaultRule)
}
