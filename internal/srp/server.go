package srp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
)

// ErrClientProofMismatch means M1 did not match: the client does not know
// the password behind the stored verifier.
var ErrClientProofMismatch = errors.New("srp: client proof mismatch")

// Server is the verifier-holder half of one SRP-6a exchange. The
// production verifier lives on the identity service; this implementation
// exists for integration tests and local development stubs, and doubles
// as executable documentation of the expected server math.
type Server struct {
	salt     []byte
	verifier *big.Int

	b    *big.Int
	bigB *big.Int
	key  []byte
}

// NewServer wraps a stored (salt, verifier) pair for one exchange.
func NewServer(salt, verifier []byte) *Server {
	return &Server{salt: salt, verifier: new(big.Int).SetBytes(verifier)}
}

// Challenge generates the server ephemeral and returns (salt, B) with
// B = k*v + g^b mod N.
func (s *Server) Challenge() (salt, serverB []byte, err error) {
	b, err := rand.Int(rand.Reader, groupN)
	if err != nil {
		return nil, nil, fmt.Errorf("generate server secret: %w", err)
	}
	s.b = b

	kv := new(big.Int).Mul(multiplierK, s.verifier)
	gb := new(big.Int).Exp(groupG, b, groupN)
	s.bigB = new(big.Int).Add(kv, gb)
	s.bigB.Mod(s.bigB, groupN)

	return s.salt, pad(s.bigB), nil
}

// Verify checks the client proof M1 and returns the server proof M2. The
// shared key is available via Key afterwards.
func (s *Server) Verify(email string, clientA, clientM1 []byte) ([]byte, error) {
	bigA := new(big.Int).SetBytes(clientA)
	if new(big.Int).Mod(bigA, groupN).Sign() == 0 {
		return nil, ErrBadServerPublic
	}

	u := hashToInt(pad(bigA), pad(s.bigB))

	// S = (A * v^u)^b mod N
	vu := new(big.Int).Exp(s.verifier, u, groupN)
	base := new(big.Int).Mul(bigA, vu)
	base.Mod(base, groupN)
	secret := new(big.Int).Exp(base, s.b, groupN)

	kSum := sha256.Sum256(pad(secret))
	s.key = kSum[:]

	want := clientProof(email, s.salt, pad(bigA), pad(s.bigB), s.key)
	if subtle.ConstantTimeCompare(want, clientM1) != 1 {
		return nil, ErrClientProofMismatch
	}

	return hashConcat(pad(bigA), clientM1, s.key), nil
}

// Key returns the shared session key established by Verify.
func (s *Server) Key() []byte {
	return append([]byte(nil), s.key...)
}
