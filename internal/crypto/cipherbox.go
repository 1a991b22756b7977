// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// cipherBox is the private implementation of [CipherBox], built on
// XChaCha20-Poly1305. The extended 24-byte nonce is large enough to draw
// from the CSPRNG for every call without bookkeeping.
type cipherBox struct{}

// NewCipherBox constructs the [CipherBox] used for all at-rest wrapping.
func NewCipherBox() CipherBox {
	return &cipherBox{}
}

// NonceSize is the XChaCha20-Poly1305 nonce length in bytes.
const NonceSize = chacha20poly1305.NonceSizeX

// sealOverhead is the Poly1305 tag length appended to every ciphertext.
const sealOverhead = chacha20poly1305.Overhead

// Seal implements [CipherBox]. Ciphertext and nonce are returned separately;
// the profile stores them as two fields rather than a concatenated blob.
func (c *cipherBox) Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != KeySize {
		return nil, nil, ErrBadKeySize
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, fmt.Errorf("create cipher: %w", err)
	}

	nonce = make([]byte, aead.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext = aead.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Open implements [CipherBox]. The AEAD verifies the authentication tag
// before producing a single plaintext byte; an error here almost always
// means the caller derived the wrong key from a wrong password or phrase.
func (c *cipherBox) Open(ciphertext, nonce, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrBadKeySize
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	if len(nonce) != aead.NonceSize() {
		return nil, ErrDecryptFailed
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	return plaintext, nil
}
