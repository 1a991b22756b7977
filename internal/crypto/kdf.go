// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/text/unicode/norm"
)

const (
	// KeySize is the length of every symmetric key in the system: master
	// key, recovery key, RKEK and per-keypair keys.
	KeySize = 32

	// SaltSize is the length of the per-account Argon2id salt.
	SaltSize = 16
)

// rkekSaltLabel domain-separates the RKEK derivation from the password
// derivation. Changing it invalidates every recovery phrase ever issued.
const rkekSaltLabel = "zkvault/rkek-salt/v1"

// keyDeriver is the private implementation of [KeyDeriver].
type keyDeriver struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. mobile vs. desktop).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewKeyDeriver constructs a [KeyDeriver] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func NewKeyDeriver() KeyDeriver {
	return &keyDeriver{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
	}
}

// DeriveKey implements [KeyDeriver]. It derives a 256-bit key from password
// and salt using Argon2id. The result exists only in client memory and is
// never transmitted to the server.
func (k *keyDeriver) DeriveKey(password, salt []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptySecret
	}
	if len(salt) != SaltSize {
		return nil, ErrBadSaltSize
	}

	return argon2.IDKey(password, salt, k.argonTime, k.argonMemory, k.argonThreads, KeySize), nil
}

// DeriveRecoveryKEK implements [KeyDeriver]. The phrase is normalized first
// (lowercased, single spaces) so that formatting differences in user input
// do not change the derived key. The salt is a fixed label: stability across
// devices and time matters more here than per-account uniqueness, since the
// phrase itself carries 128 bits of entropy.
func (k *keyDeriver) DeriveRecoveryKEK(mnemonic string) ([]byte, error) {
	phrase := NormalizeMnemonic(mnemonic)
	if phrase == "" {
		return nil, ErrEmptySecret
	}

	sum := sha256.Sum256([]byte(rkekSaltLabel))
	salt := sum[:SaltSize]

	return argon2.IDKey([]byte(phrase), salt, k.argonTime, k.argonMemory, k.argonThreads, KeySize), nil
}

// GenerateSalt implements [KeyDeriver]. It reads SaltSize random bytes from
// the OS CSPRNG. Returns an error if the random read fails.
func (k *keyDeriver) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// GenerateKey implements [KeyDeriver]. It reads KeySize random bytes from
// the OS CSPRNG. Returns an error if the random read fails.
func (k *keyDeriver) GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// NormalizeMnemonic canonicalizes a recovery phrase: NFKD form, lowercase,
// words joined by single spaces, surrounding whitespace dropped. NFKD keeps
// phrases typed with composed accents on one keyboard and decomposed ones on
// another deriving the same key. Every consumer of a phrase (hashing, RKEK
// derivation, puzzle comparison) goes through this.
func NormalizeMnemonic(mnemonic string) string {
	decomposed := norm.NFKD.String(mnemonic)
	return strings.Join(strings.Fields(strings.ToLower(decomposed)), " ")
}
