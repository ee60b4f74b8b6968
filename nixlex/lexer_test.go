package nixlex_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nihei9/nixfmt/nixlex"
	"github.com/nihei9/nixfmt/synkind"
)

func TestLexAll(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		want    []synkind.Kind
	}{
		{
			caption: "keywords are distinguished from identifiers",
			src:     "let x = 1; in x",
			want: []synkind.Kind{
				synkind.TokenKwLet, synkind.TokenWhitespace,
				synkind.TokenIdent, synkind.TokenWhitespace,
				synkind.TokenEquals, synkind.TokenWhitespace,
				synkind.TokenInt, synkind.TokenSemicolon, synkind.TokenWhitespace,
				synkind.TokenKwIn, synkind.TokenWhitespace,
				synkind.TokenIdent,
				synkind.TokenEOF,
			},
		},
		{
			caption: "line comment runs to end of line",
			src:     "1 # trailing\n2",
			want: []synkind.Kind{
				synkind.TokenInt, synkind.TokenWhitespace,
				synkind.TokenComment, synkind.TokenWhitespace,
				synkind.TokenInt,
				synkind.TokenEOF,
			},
		},
		{
			caption: "float with exponent",
			src:     "1.5e-3",
			want:    []synkind.Kind{synkind.TokenFloat, synkind.TokenEOF},
		},
		{
			caption: "search path",
			src:     "<nixpkgs>",
			want:    []synkind.Kind{synkind.TokenPath, synkind.TokenEOF},
		},
		{
			caption: "string with interpolation",
			src:     `"a${b}c"`,
			want: []synkind.Kind{
				synkind.TokenStringStart,
				synkind.TokenStringContent,
				synkind.TokenDollarCurlyOpen,
				synkind.TokenIdent,
				synkind.TokenCurlyClose,
				synkind.TokenStringContent,
				synkind.TokenStringEnd,
				synkind.TokenEOF,
			},
		},
		{
			caption: "indented string",
			src:     "''\n  hi\n''",
			want: []synkind.Kind{
				synkind.TokenIndentedStringStart,
				synkind.TokenStringContent,
				synkind.TokenIndentedStringEnd,
				synkind.TokenEOF,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.caption, func(t *testing.T) {
			toks, err := nixlex.LexAll("test.nix", strings.NewReader(test.src))
			if err != nil {
				t.Fatalf("LexAll() returned an error: %v", err)
			}
			var got []synkind.Kind
			for _, tok := range toks {
				got = append(got, tok.Kind)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("LexAll() kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexAllRejectsUnterminatedString(t *testing.T) {
	_, err := nixlex.LexAll("test.nix", strings.NewReader(`"unterminated`))
	if err == nil {
		t.Fatal("LexAll() on an unterminated string returned no error")
	}
}

func TestLexAllRejectsUnclosedBlockComment(t *testing.T) {
	_, err := nixlex.LexAll("test.nix", strings.NewReader("/* never closed"))
	if err == nil {
		t.Fatal("LexAll() on an unclosed block comment returned no error")
	}
}
