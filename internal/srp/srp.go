// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

// Package srp implements the client side of SRP-6a over the RFC 5054
// 2048-bit group with SHA-256. The server never sees the password or
// anything derived from it other than the verifier, and a man in the
// middle learns nothing usable from the exchange.
package srp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
)

var (
	groupN *big.Int
	groupG = big.NewInt(2)

	// k = H(N | PAD(g)), the SRP-6a multiplier.
	multiplierK *big.Int
)

func init() {
	n, ok := new(big.Int).SetString(rfc5054Group2048, 16)
	if !ok {
		panic("srp: invalid group modulus")
	}
	groupN = n
	multiplierK = hashToInt(groupN.Bytes(), pad(groupG))
}

// rfc5054Group2048 is the prime from RFC 5054 Appendix A (2048-bit group).
const rfc5054Group2048 = "AC6BDB41324A9A9BF166DE5E1389582FAF72B6651987EE07FC3192943DB56050" +
	"A37329CBB4A099ED8193E0757767A13DD52312AB4B03310DCD7F48A9DA04FD50" +
	"E8083969EDB767B0CF6095179A163AB3661A05FBD5FAAAE82918A9962F0B93B8" +
	"55F97993EC975EEAA80D740ADBF4FF747359D041D5C33EA71D281E446B14773B" +
	"CA97B43A23FB801676BD207A436C6481F1D2B9078717461A5B9D32E688F87748" +
	"544523B524B0D57D5EA77A2775D2ECFA032CFBDBF52FB3786160279004E57AE6" +
	"AF874E7303CE53299CCC041C7BC308D82A5698F3A8D0C38271AE35F8E9DBFBB6" +
	"94B5C803D89F7AE435DE236D525F54759B65E372FCD68EF20FA7111F9E4AFF73"

// Session is the client half of one SRP-6a login exchange. It is single
// use: Start, then Complete, then VerifyServerProof, then discard.
type Session struct {
	email    string
	a        *big.Int // ephemeral client secret
	bigA     *big.Int
	key      []byte // K = H(S), the shared session key
	proofM1  []byte
	complete bool
}

var (
	// ErrBadServerPublic means B mod N == 0; per SRP-6a the client must
	// abort rather than continue with a degenerate exponent.
	ErrBadServerPublic = errors.New("srp: server public value is zero mod N")

	// ErrBadScrambler means u == 0, which would let the server cancel the
	// verifier out of the shared secret.
	ErrBadScrambler = errors.New("srp: scrambling parameter is zero")

	// ErrServerProofMismatch means M2 did not match; the server does not
	// hold the verifier it claims to hold.
	ErrServerProofMismatch = errors.New("srp: server proof mismatch")

	errNotComplete = errors.New("srp: session key not established")
)

// NewSession starts an exchange for the given identity and returns the
// session along with the client public value A to send to the server.
func NewSession(email string) (*Session, []byte, error) {
	a, err := rand.Int(rand.Reader, groupN)
	if err != nil {
		return nil, nil, fmt.Errorf("generate ephemeral secret: %w", err)
	}
	bigA := new(big.Int).Exp(groupG, a, groupN)
	s := &Session{email: email, a: a, bigA: bigA}
	return s, pad(bigA), nil
}

// Complete consumes the server's (salt, B) challenge and produces the
// client proof M1. The shared key is available via Key afterwards.
func (s *Session) Complete(password string, salt, serverB []byte) ([]byte, error) {
	bigB := new(big.Int).SetBytes(serverB)
	if new(big.Int).Mod(bigB, groupN).Sign() == 0 {
		return nil, ErrBadServerPublic
	}

	u := hashToInt(pad(s.bigA), pad(bigB))
	if u.Sign() == 0 {
		return nil, ErrBadScrambler
	}

	x := privateExponent(s.email, password, salt)

	// S = (B - k * g^x) ^ (a + u*x) mod N
	gx := new(big.Int).Exp(groupG, x, groupN)
	kgx := new(big.Int).Mul(multiplierK, gx)
	base := new(big.Int).Sub(bigB, kgx)
	base.Mod(base, groupN)

	exp := new(big.Int).Mul(u, x)
	exp.Add(exp, s.a)

	secret := new(big.Int).Exp(base, exp, groupN)

	kSum := sha256.Sum256(pad(secret))
	s.key = kSum[:]
	s.proofM1 = clientProof(s.email, salt, pad(s.bigA), pad(bigB), s.key)
	s.complete = true

	return s.proofM1, nil
}

// VerifyServerProof checks the server's M2 against the established key.
// A mismatch means the peer never knew the verifier and the login must
// abort before any token it issued is trusted.
func (s *Session) VerifyServerProof(serverM2 []byte) error {
	if !s.complete {
		return errNotComplete
	}
	want := hashConcat(pad(s.bigA), s.proofM1, s.key)
	if subtle.ConstantTimeCompare(want, serverM2) != 1 {
		return ErrServerProofMismatch
	}
	return nil
}

// Key returns the shared session key K once the exchange is complete.
func (s *Session) Key() ([]byte, error) {
	if !s.complete {
		return nil, errNotComplete
	}
	return append([]byte(nil), s.key...), nil
}

// ComputeVerifier derives the registration-time verifier v = g^x mod N for
// the given identity, password and salt. Sent to the server exactly once,
// at account setup.
func ComputeVerifier(email, password string, salt []byte) []byte {
	x := privateExponent(email, password, salt)
	v := new(big.Int).Exp(groupG, x, groupN)
	return pad(v)
}

// privateExponent computes x = H(salt | H(I ":" P)).
func privateExponent(email, password string, salt []byte) *big.Int {
	inner := sha256.Sum256([]byte(email + ":" + password))
	return hashToInt(salt, inner[:])
}

// clientProof computes M1 = H(H(N) xor H(g) | H(I) | salt | A | B | K).
func clientProof(email string, salt, bigA, bigB, key []byte) []byte {
	hn := sha256.Sum256(groupN.Bytes())
	hg := sha256.Sum256(groupG.Bytes())
	for i := range hn {
		hn[i] ^= hg[i]
	}
	hi := sha256.Sum256([]byte(email))
	return hashConcat(hn[:], hi[:], salt, bigA, bigB, key)
}

// pad left-pads the integer's big-endian bytes to the modulus length, as
// RFC 5054 requires before hashing public values.
func pad(v *big.Int) []byte {
	out := make([]byte, len(groupN.Bytes()))
	b := v.Bytes()
	copy(out[len(out)-len(b):], b)
	return out
}

func hashToInt(parts ...[]byte) *big.Int {
	return new(big.Int).SetBytes(hashConcat(parts...))
}

func hashConcat(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
