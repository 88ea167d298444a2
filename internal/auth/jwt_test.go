package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret-key", time.Hour)

	token, err := m.GenerateAccessToken("2", "user@example.com", "user")

	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := m.VerifyAccessToken(token)

	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.UserID != "2" || claims.Email != "user@example.com" || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if claims.JTI == "" {
		t.Fatal("token should carry a jti")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateAccessToken("1", "a@example.com", "admin")

	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).VerifyAccessToken(token); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret-key", -time.Minute)

	token, err := m.GenerateAccessToken("1", "a@example.com", "user")

	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := m.VerifyAccessToken(token); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret-key", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.VerifyAccessToken(tok); err == nil {
			t.Fatalf("token %q must not verify", tok)
		}
	}
}
