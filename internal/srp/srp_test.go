package srp

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func newServerFor(t *testing.T, email, password string) *Server {
	t.Helper()
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		t.Fatalf("read salt: %v", err)
	}
	return NewServer(salt, ComputeVerifier(email, password, salt))
}

func TestSession_FullExchange(t *testing.T) {
	const email, password = "user@example.com", "correct horse battery staple"

	server := newServerFor(t, email, password)

	session, clientA, err := NewSession(email)
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	salt, serverB, err := server.Challenge()
	if err != nil {
		t.Fatalf("Challenge error: %v", err)
	}

	m1, err := session.Complete(password, salt, serverB)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	m2, err := server.Verify(email, clientA, m1)
	if err != nil {
		t.Fatalf("server rejected a valid client proof: %v", err)
	}

	if err := session.VerifyServerProof(m2); err != nil {
		t.Fatalf("VerifyServerProof error: %v", err)
	}

	clientKey, err := session.Key()
	if err != nil {
		t.Fatalf("Key error: %v", err)
	}
	if !bytes.Equal(clientKey, server.Key()) {
		t.Fatalf("client and server derived different session keys")
	}
}

func TestSession_WrongPasswordRejectedByServer(t *testing.T) {
	const email = "user@example.com"

	server := newServerFor(t, email, "the real password")

	session, clientA, err := NewSession(email)
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	salt, serverB, err := server.Challenge()
	if err != nil {
		t.Fatalf("Challenge error: %v", err)
	}

	m1, err := session.Complete("a guessed password", salt, serverB)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	if _, err := server.Verify(email, clientA, m1); !errors.Is(err, ErrClientProofMismatch) {
		t.Fatalf("Verify error = %v, want ErrClientProofMismatch", err)
	}
}

func TestSession_TamperedServerProofRejected(t *testing.T) {
	const email, password = "user@example.com", "pw"

	server := newServerFor(t, email, password)

	session, clientA, err := NewSession(email)
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	salt, serverB, err := server.Challenge()
	if err != nil {
		t.Fatalf("Challenge error: %v", err)
	}
	m1, err := session.Complete(password, salt, serverB)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	m2, err := server.Verify(email, clientA, m1)
	if err != nil {
		t.Fatalf("server rejected a valid client proof: %v", err)
	}

	m2[0] ^= 0x01
	if err := session.VerifyServerProof(m2); !errors.Is(err, ErrServerProofMismatch) {
		t.Fatalf("VerifyServerProof error = %v, want ErrServerProofMismatch", err)
	}
}

func TestSession_RejectsZeroServerPublic(t *testing.T) {
	session, _, err := NewSession("user@example.com")
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	salt := make([]byte, 16)

	if _, err := session.Complete("pw", salt, make([]byte, 256)); !errors.Is(err, ErrBadServerPublic) {
		t.Fatalf("Complete error = %v, want ErrBadServerPublic", err)
	}

	// B == N is also zero mod N.
	if _, err := session.Complete("pw", salt, groupN.Bytes()); !errors.Is(err, ErrBadServerPublic) {
		t.Fatalf("Complete error = %v, want ErrBadServerPublic", err)
	}
}

func TestSession_KeyUnavailableBeforeComplete(t *testing.T) {
	session, _, err := NewSession("user@example.com")
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}
	if _, err := session.Key(); err == nil {
		t.Fatalf("expected error before the exchange completes")
	}
	if err := session.VerifyServerProof([]byte("m2")); err == nil {
		t.Fatalf("expected error before the exchange completes")
	}
}

func TestComputeVerifier_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x09}, 16)

	v1 := ComputeVerifier("a@b.c", "pw", salt)
	v2 := ComputeVerifier("a@b.c", "pw", salt)
	v3 := ComputeVerifier("a@b.c", "other", salt)

	if !bytes.Equal(v1, v2) {
		t.Fatalf("verifier is not deterministic")
	}
	if bytes.Equal(v1, v3) {
		t.Fatalf("different passwords produced the same verifier")
	}
	if len(v1) != 256 {
		t.Fatalf("verifier length = %d, want 256", len(v1))
	}
}
