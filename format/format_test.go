package format_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nihei9/nixfmt/format"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		want    string
	}{
		{
			caption: "attr set expands one binding per line",
			src:     "{a=1;b=2;}",
			want:    "{\n  a = 1;\n  b = 2;\n}\n",
		},
		{
			caption: "curried lambda stays on one line",
			src:     "f: x: x + 1",
			want:    "f: x: x + 1\n",
		},
		{
			caption: "let-in expands",
			src:     "let x=1; y=2; in x+y",
			want:    "let\n  x = 1;\n  y = 2;\nin\n  x + y\n",
		},
		{
			caption: "empty attr set has no inner space",
			src:     "{}",
			want:    "{}\n",
		},
		{
			caption: "non-empty attr set always expands, even with a single binding",
			src:     "{ a = 1; }",
			want:    "{\n  a = 1;\n}\n",
		},
		{
			caption: "superfluous parens around a key_value's value are dropped",
			src:     "{ a = ( 1 + 2 ); }",
			want:    "{\n  a = 1 + 2;\n}\n",
		},
		{
			caption: "empty list has no inner space",
			src:     "[]",
			want:    "[]\n",
		},
		{
			caption: "if-else without comments or newlines stays on one line",
			src:     "if a then b else c",
			want:    "if a then b else c\n",
		},
	}

	for _, test := range tests {
		t.Run(test.caption, func(t *testing.T) {
			got, err := format.Format("test.nix", strings.NewReader(test.src))
			if err != nil {
				t.Fatalf("Format() returned an error: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	srcs := []string{
		"{a=1;b=2;}",
		"f: x: x + 1",
		"let x=1; y=2; in x+y",
		"{ a = ( 1 + 2 ); }",
	}
	for _, src := range srcs {
		once, err := format.Format("test.nix", strings.NewReader(src))
		if err != nil {
			t.Fatalf("first Format() returned an error: %v", err)
		}
		twice, err := format.Format("test.nix", strings.NewReader(once))
		if err != nil {
			t.Fatalf("second Format() returned an error: %v", err)
		}
		if once != twice {
			t.Errorf("Format() is not idempotent for %q:\nfirst:\n%s\nsecond:\n%s", src, once, twice)
		}
	}
}

func TestFormatRejectsSyntaxErrors(t *testing.T) {
	_, err := format.Format("test.nix", strings.NewReader("{ a = "))
	if err == nil {
		t.Fatal("Format() on unparseable input returned no error")
	}
}

func TestFormatEndsWithExactlyOneTrailingNewline(t *testing.T) {
	got, err := format.Format("test.nix", strings.NewReader("{a=1;}\n\n\n"))
	if err != nil {
		t.Fatalf("Format() returned an error: %v", err)
	}
	if !strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n") {
		t.Errorf("Format() output doesn't end with exactly one newline: %q", got)
	}
}
