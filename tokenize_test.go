package mdhtml

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizeMergesRuns(t *testing.T) {
	t.Parallel()
	got := Tokenize("ab12 34x\n")
	want := []Token{
		{Kind: TokenText, Text: "ab12"},
		{Kind: TokenSpace},
		{Kind: TokenNumber, Text: "34"},
		{Kind: TokenText, Text: "x"},
		{Kind: TokenNewLine},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeMarkers(t *testing.T) {
	t.Parallel()
	got := Tokenize("#!([{<>}])*-+=._`~\t")
	want := []Token{
		{Kind: TokenHash},
		{Kind: TokenBang},
		{Kind: TokenOpenBracket, Bracket: BracketParen},
		{Kind: TokenOpenBracket, Bracket: BracketSquare},
		{Kind: TokenOpenBracket, Bracket: BracketBrace},
		{Kind: TokenOpenBracket, Bracket: BracketAngle},
		{Kind: TokenCloseBracket, Bracket: BracketAngle},
		{Kind: TokenCloseBracket, Bracket: BracketBrace},
		{Kind: TokenCloseBracket, Bracket: BracketSquare},
		{Kind: TokenCloseBracket, Bracket: BracketParen},
		{Kind: TokenStar},
		{Kind: TokenDash},
		{Kind: TokenPlus},
		{Kind: TokenEquals},
		{Kind: TokenDot},
		{Kind: TokenUnderscore},
		{Kind: TokenBackTick},
		{Kind: TokenTilde},
		{Kind: TokenTab},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeEscapesPunctuation(t *testing.T) {
	t.Parallel()
	for _, r := range escapable {
		src := `\` + string(r)
		got := Tokenize(src)
		want := []Token{{Kind: TokenText, Text: string(r)}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Tokenize(%q) mismatch (-want +got):\n%s", src, diff)
		}
	}
}

func TestTokenizeKeepsEscapeBeforeOtherRunes(t *testing.T) {
	t.Parallel()
	for _, r := range []rune{'a', '1', ' ', 'é', '\t'} {
		src := `\` + string(r)
		got := Tokenize(src)
		want := append([]Token{{Kind: TokenEscape}}, Tokenize(string(r))...)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Tokenize(%q) mismatch (-want +got):\n%s", src, diff)
		}
	}
}

func TestTokenizeEscapeMergesWithText(t *testing.T) {
	t.Parallel()
	got := Tokenize(`a\*b 1\. c`)
	want := []Token{
		{Kind: TokenText, Text: "a*b"},
		{Kind: TokenSpace},
		{Kind: TokenNumber, Text: "1"},
		{Kind: TokenText, Text: "."},
		{Kind: TokenSpace},
		{Kind: TokenText, Text: "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeReplacesNUL(t *testing.T) {
	t.Parallel()
	got := Tokenize("a\x00b")
	want := []Token{{Kind: TokenText, Text: "a\uFFFDb"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeSurfaceRoundTrip(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"# Heading\n\n- item\n  1. nested\n",
		"> quote with [link](url) and <tag>\n",
		"\tcode\twith\ttabs\n",
		"unicode ὐ 世界 42nd\n",
		"",
	}
	for _, src := range inputs {
		tokens := Tokenize(src)
		surface := surfaceOf(tokens)
		if surface != src {
			t.Fatalf("surface mismatch\nwant: %q\n got: %q", src, surface)
		}
		if diff := cmp.Diff(tokens, Tokenize(surface)); diff != "" {
			t.Fatalf("retokenize mismatch for %q (-want +got):\n%s", src, diff)
		}
	}
}

func TestTokenizeCoversEveryRune(t *testing.T) {
	t.Parallel()
	src := strings.Repeat("a-1 ", 3) + "ñ"
	got := 0
	for _, tok := range Tokenize(src) {
		got += utf8.RuneCountInString(tok.Surface())
	}
	if want := utf8.RuneCountInString(src); got != want {
		t.Fatalf("surface covers %d runes, want %d", got, want)
	}
}

func TestNumberTokenValue(t *testing.T) {
	t.Parallel()
	tok := Tokenize("007")[0]
	if diff := cmp.Diff([]uint8{0, 0, 7}, tok.Digits()); diff != "" {
		t.Fatalf("digits mismatch (-want +got):\n%s", diff)
	}
	if v, ok := tok.Value(); !ok || v != 7 {
		t.Fatalf("Value() = %d, %v; want 7, true", v, ok)
	}
	big := Tokenize("99999999999999999999999")[0]
	if _, ok := big.Value(); ok {
		t.Fatalf("expected overflow to report !ok")
	}
	if _, ok := (Token{Kind: TokenText, Text: "1"}).Value(); ok {
		t.Fatalf("expected Text token to have no value")
	}
}

func TestTokenString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: TokenText, Text: "foo"}, `Text("foo")`},
		{Token{Kind: TokenNumber, Text: "12"}, `Number("12")`},
		{Token{Kind: TokenOpenBracket, Bracket: BracketAngle}, "OpenBracket(<)"},
		{Token{Kind: TokenHash}, "Hash"},
	}
	for _, tc := range tests {
		if got := tc.tok.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}
