package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("super-secret", time.Hour)
	userID := "68b1f2a3c4d5e6f708192a3b"

	tok, err := codec.Issue(userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != userID {
		t.Fatalf("user id mismatch: got %q want %q", got, userID)
	}
}

func TestIssue_FreshTokenEveryCall(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("super-secret", time.Hour)

	a, err := codec.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	b, err := codec.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if a == b {
		t.Fatal("two Issue calls returned the same token")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenCodec("right-secret", time.Hour).Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokenCodec("wrong-secret", time.Hour).Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("secret", -time.Second)
	tok, err := codec.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := codec.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("secret", time.Hour)
	if _, err := codec.Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
