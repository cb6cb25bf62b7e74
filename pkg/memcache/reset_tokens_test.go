package mem

import (
	"testing"
	"time"
)

func TestResetTokensConsumeIsSingleUse(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "user@example.com", time.Minute)

	if got := store.Consume("tok"); got != "user@example.com" {
		t.Fatalf("Consume = %q, want user@example.com", got)
	}
	if got := store.Consume("tok"); got != "" {
		t.Fatalf("second Consume = %q, want empty", got)
	}
}

func TestResetTokensExpiry(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "user@example.com", -time.Second)

	if _, ok := store.Peek("tok"); ok {
		t.Fatal("expired token should not peek")
	}
	if got := store.Consume("tok"); got != "" {
		t.Fatalf("expired Consume = %q, want empty", got)
	}
}

func TestResetTokensPeekDoesNotConsume(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "user@example.com", time.Minute)

	if email, ok := store.Peek("tok"); !ok || email != "user@example.com" {
		t.Fatalf("Peek = %q, %v", email, ok)
	}
	if got := store.Consume("tok"); got != "user@example.com" {
		t.Fatal("Peek must not consume the token")
	}
}

func TestResetTokensUnknownToken(t *testing.T) {
	store := NewResetTokens()
	if got := store.Consume("missing"); got != "" {
		t.Fatalf("Consume(missing) = %q", got)
	}
}
