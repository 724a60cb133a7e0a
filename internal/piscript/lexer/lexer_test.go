package lexer

import (
	"testing"

	"github.com/rolandbrake/piscript/internal/piscript/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	toks, err := Tokenize(`let x = 1 + 2;`)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	want := []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.NUMBER,
		token.PLUS, token.NUMBER, token.SEMI, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d kind = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeNumberForms(t *testing.T) {
	cases := []string{"0", "42", "3.14", "1e10", "1.5e-3", "0xFF", "0o17", "0b101"}
	for _, src := range cases {
		toks, err := Tokenize(src)
		if err != nil {
			t.Errorf("Tokenize(%q) returned error: %v", src, err)
			continue
		}
		if len(toks) != 2 || toks[0].Kind != token.NUMBER || toks[1].Kind != token.EOF {
			t.Errorf("Tokenize(%q) = %v, want a single NUMBER then EOF", src, kinds(toks))
		}
	}
}

func TestTokenizeLeadingZeroDecimalIsFatal(t *testing.T) {
	if _, err := Tokenize("007"); err == nil {
		t.Errorf("Tokenize(\"007\") returned no error, want a leading-zero lex error")
	}
}

func TestTokenizeStringLexeme(t *testing.T) {
	toks, err := Tokenize(`"hi there"`)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if toks[0].Kind != token.STRING {
		t.Fatalf("kind = %v, want STRING", toks[0].Kind)
	}
	if got := token.Lexeme(`"hi there"`, toks[0]); got != "hi there" {
		t.Errorf("Lexeme = %q, want %q", got, "hi there")
	}
}

func TestTokenizeUnterminatedStringFails(t *testing.T) {
	if _, err := Tokenize(`"never closed`); err == nil {
		t.Errorf("expected an unterminated-string error")
	}
}

func TestTokenizeUnclosedBlockCommentFails(t *testing.T) {
	if _, err := Tokenize("/* never closed"); err == nil {
		t.Errorf("expected an unclosed-block-comment error")
	}
}

func TestTokenizeNestedBlockComments(t *testing.T) {
	toks, err := Tokenize("/* outer /* inner */ still-comment */ 1")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if len(toks) != 2 || toks[0].Kind != token.NUMBER {
		t.Errorf("got %v, want a single NUMBER then EOF (comment fully skipped)", kinds(toks))
	}
}

func TestTokenizeLineComment(t *testing.T) {
	toks, err := Tokenize("1 // trailing comment\n+ 2")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	want := []token.Kind{token.NUMBER, token.PLUS, token.NUMBER, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d kind = %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestTokenizeBracketPairing(t *testing.T) {
	toks, err := Tokenize("([])")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	// indices: 0 '(' 1 '[' 2 ']' 3 ')' 4 EOF
	if toks[0].CloseAt != 3 {
		t.Errorf("outer '(' CloseAt = %d, want 3", toks[0].CloseAt)
	}
	if toks[1].CloseAt != 2 {
		t.Errorf("inner '[' CloseAt = %d, want 2", toks[1].CloseAt)
	}
	if toks[2].OpenAt != 1 {
		t.Errorf("inner ']' OpenAt = %d, want 1", toks[2].OpenAt)
	}
	if toks[3].OpenAt != 0 {
		t.Errorf("outer ')' OpenAt = %d, want 0", toks[3].OpenAt)
	}
}

func TestTokenizeMultiCharOperators(t *testing.T) {
	cases := map[string]token.Kind{
		"==": token.EQ, "!=": token.NEQ, "<=": token.LE, ">=": token.GE,
		"&&": token.ANDAND, "||": token.OROR, "**": token.STARSTAR,
		"++": token.INC, "--": token.DEC, "->": token.ARROW, "<-": token.WALRUS,
		"<<": token.SHL, ">>": token.SHR, ">>>": token.USHR, "..": token.DOTDOT,
	}
	for src, want := range cases {
		toks, err := Tokenize(src)
		if err != nil {
			t.Errorf("Tokenize(%q) returned error: %v", src, err)
			continue
		}
		if toks[0].Kind != want {
			t.Errorf("Tokenize(%q) kind = %v, want %v", src, toks[0].Kind, want)
		}
	}
}

func TestTokenizeStrayCharacterFails(t *testing.T) {
	if _, err := Tokenize("`"); err == nil {
		t.Errorf("expected a stray-character error for a backtick")
	}
}
