package security

import (
	"context"
	"testing"
	"time"

	"github.com/quizforge/training-service/internal/ports"
)

func TestJWTSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	verifier := NewJWTVerifier("test-secret")
	token, err := verifier.Sign(ports.Identity{
		UserID: "user-1",
		Email:  "student@example.com",
		Name:   "Student One",
	}, time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	identity, err := verifier.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if identity.UserID != "user-1" || identity.Email != "student@example.com" || identity.Name != "Student One" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewJWTVerifier("secret-a").Sign(ports.Identity{UserID: "user-1"}, time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := NewJWTVerifier("secret-b").Verify(context.Background(), token); err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}

func TestJWTVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	verifier := NewJWTVerifier("test-secret")
	token, err := verifier.Sign(ports.Identity{UserID: "user-1"}, -time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected verification failure for expired token")
	}
}

func TestJWTVerifyRequiresSubject(t *testing.T) {
	t.Parallel()

	verifier := NewJWTVerifier("test-secret")
	token, err := verifier.Sign(ports.Identity{Email: "nobody@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected rejection of token without subject")
	}
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	verifier := NewJWTVerifier("test-secret")
	if _, err := verifier.Verify(context.Background(), "not.a.jwt"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
