package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, exp, err := tm.GenerateToken(7, "ana@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if remaining := time.Until(exp); remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Fatalf("unexpected expiry in %v", remaining)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).GenerateToken(7, "ana@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewTokenManager("secret-b", 30).ParseToken(token); err == nil {
		t.Fatal("expected verification failure with a different secret")
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("s", 0)
	if tm.ttl != time.Hour {
		t.Fatalf("expected one hour default, got %v", tm.ttl)
	}
}
