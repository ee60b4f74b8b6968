package nixparser_test

import (
	"strings"
	"testing"

	"github.com/nihei9/nixfmt/nixparser"
	"github.com/nihei9/nixfmt/synkind"
	"github.com/nihei9/nixfmt/syntax"
)

func TestParseRootKindsOfTopLevelExpression(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		want    synkind.Kind
	}{
		{caption: "attr set literal", src: "{ a = 1; }", want: synkind.NodeAttrSet},
		{caption: "list literal", src: "[ 1 2 3 ]", want: synkind.NodeList},
		{caption: "let-in", src: "let x = 1; in x", want: synkind.NodeLetIn},
		{caption: "lambda", src: "x: x", want: synkind.NodeLambda},
		{caption: "if-else", src: "if true then 1 else 2", want: synkind.NodeIfElse},
		{caption: "apply", src: "f x", want: synkind.NodeApply},
		{caption: "select", src: "a.b.c", want: synkind.NodeSelect},
		{caption: "paren", src: "(1)", want: synkind.NodeParen},
		{caption: "with", src: "with a; b", want: synkind.NodeWith},
		{caption: "assert", src: "assert a; b", want: synkind.NodeAssert},
	}

	for _, test := range tests {
		t.Run(test.caption, func(t *testing.T) {
			root, err := nixparser.Parse("test.nix", strings.NewReader(test.src))
			if err != nil {
				t.Fatalf("Parse() returned an error: %v", err)
			}
			expr := findFirstNonTrivia(t, root)
			if expr.Kind() != test.want {
				t.Errorf("Parse() top-level expression kind = %v, want %v", expr.Kind(), test.want)
			}
		})
	}
}

func TestParseRejectsSyntaxErrors(t *testing.T) {
	tests := []string{
		"{ a = ",
		"let x = 1 in x",
		"(1",
		`"unterminated`,
	}
	for _, src := range tests {
		if _, err := nixparser.Parse("test.nix", strings.NewReader(src)); err == nil {
			t.Errorf("Parse(%q) returned no error", src)
		}
	}
}

func findFirstNonTrivia(t *testing.T, root *syntax.SyntaxNode) *syntax.SyntaxNode {
	t.Helper()
	for _, el := range root.ChildrenWithTokens() {
		if node, ok := el.AsNode(); ok {
			return node
		}
	}
	t.Fatal("root has no non-trivia child")
	return nil
}
