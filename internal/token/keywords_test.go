package token_test

import (
	"testing"

	"lotl/internal/token"
)

func TestLookupKeywordRecognizesReservedWords(t *testing.T) {
	cases := map[string]token.Kind{
		"func":   token.KwFunc,
		"if":     token.KwIf,
		"else":   token.KwElse,
		"let":    token.KwLet,
		"return": token.KwReturn,
		"while":  token.KwWhile,
		"for":    token.KwFor,
	}
	for ident, want := range cases {
		got, ok := token.LookupKeyword(ident)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = (%v, %v), want (%v, true)", ident, got, ok, want)
		}
	}
}

func TestLookupKeywordRejectsNamespace(t *testing.T) {
	if _, ok := token.LookupKeyword("namespace"); ok {
		t.Fatal("'namespace' is a contextual identifier, not a reserved keyword")
	}
}

func TestLookupPunct(t *testing.T) {
	if k, ok := token.LookupPunct('+'); !ok || k != token.Plus {
		t.Fatalf("expected '+' to map to Plus, got %v, %v", k, ok)
	}
	if _, ok := token.LookupPunct('~'); ok {
		t.Fatal("'~' is not in the punctuation set")
	}
}
