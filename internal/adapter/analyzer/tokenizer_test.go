package analyzer

import "testing"

func TestTokenizeLowercasesAndFilters(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("A bright streak flashes from your pointing finger!")

	for _, tk := range tokens {
		if tk != "" && tk[0] >= 'A' && tk[0] <= 'Z' {
			t.Errorf("expected lowercase token, got %q", tk)
		}
	}

	has := func(want string) bool {
		for _, tk := range tokens {
			if tk == want {
				return true
			}
		}
		return false
	}

	if !has("streak") || !has("finger") {
		t.Errorf("expected content words in tokens, got %v", tokens)
	}
	if has("a") || has("from") {
		t.Errorf("expected stopwords removed, got %v", tokens)
	}
}

func TestTokenizeShortAndEmpty(t *testing.T) {
	tok := NewTokenizer()

	if tokens := tok.Tokenize(""); len(tokens) != 0 {
		t.Errorf("expected no tokens for empty text, got %v", tokens)
	}

	// Single-rune words are dropped.
	tokens := tok.Tokenize("I x 5 fire")
	if len(tokens) != 1 || tokens[0] != "fire" {
		t.Errorf("expected only 'fire', got %v", tokens)
	}
}

func TestTokenizeWordBoundaries(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("bat-guano, sulfur (powdered)")
	want := []string{"bat", "guano", "sulfur", "powdered"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %v, got %v", want, tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], tokens[i])
		}
	}
}
