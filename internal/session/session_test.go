package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	claims := &jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestManager_TokenLifecycle(t *testing.T) {
	m := NewManager()

	if m.IsAuthenticated() {
		t.Fatalf("fresh session reports authenticated")
	}
	if _, err := m.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Token error = %v, want ErrNoToken", err)
	}

	raw := signedToken(t, time.Hour)
	if err := m.SetToken(raw); err != nil {
		t.Fatalf("SetToken error: %v", err)
	}

	got, err := m.Token()
	if err != nil {
		t.Fatalf("Token error: %v", err)
	}
	if got != raw {
		t.Fatalf("Token returned a different value than stored")
	}
	if !m.IsAuthenticated() {
		t.Fatalf("session not authenticated after SetToken")
	}

	m.Clear()
	if m.IsAuthenticated() {
		t.Fatalf("session still authenticated after Clear")
	}
}

func TestManager_ExpiredTokenRejected(t *testing.T) {
	m := NewManager()

	if err := m.SetToken(signedToken(t, -time.Minute)); err != nil {
		t.Fatalf("SetToken error: %v", err)
	}

	if _, err := m.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Token error = %v, want ErrNoToken for expired token", err)
	}
}

func TestManager_OpaqueTokenWithoutClaimsAccepted(t *testing.T) {
	m := NewManager()

	// Tokens that are not JWTs carry no expiry; the server decides.
	if err := m.SetToken("not-a-jwt"); err != nil {
		t.Fatalf("SetToken error: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Fatalf("opaque token not accepted")
	}
}

func TestManager_SetTokenRejectsEmpty(t *testing.T) {
	m := NewManager()
	if err := m.SetToken(""); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestManager_MnemonicStash(t *testing.T) {
	m := NewManager()

	if _, ok := m.PeekMnemonic(); ok {
		t.Fatalf("fresh session holds a mnemonic")
	}

	m.StashMnemonic("alpha beta gamma")

	if phrase, ok := m.PeekMnemonic(); !ok || phrase != "alpha beta gamma" {
		t.Fatalf("PeekMnemonic = %q, %v", phrase, ok)
	}
	// Peek does not consume.
	if _, ok := m.PeekMnemonic(); !ok {
		t.Fatalf("PeekMnemonic consumed the stash")
	}

	phrase, ok := m.TakeMnemonic()
	if !ok || phrase != "alpha beta gamma" {
		t.Fatalf("TakeMnemonic = %q, %v", phrase, ok)
	}
	if _, ok := m.TakeMnemonic(); ok {
		t.Fatalf("TakeMnemonic returned a phrase twice")
	}
}
