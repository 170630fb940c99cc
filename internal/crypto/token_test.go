package crypto

import "testing"

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(token) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(token))
	}

	for _, r := range token {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			t.Fatalf("unexpected character %q in token", r)
		}
	}

	other, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == other {
		t.Error("two generated tokens collided")
	}
}

func TestTokenPrefix(t *testing.T) {
	if got := TokenPrefix("0123456789abcdef"); got != "01234567" {
		t.Errorf("expected 8-char prefix, got %q", got)
	}
	if got := TokenPrefix("short"); got != "short" {
		t.Errorf("short tokens pass through, got %q", got)
	}
}
