// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package crypto

import (
	"crypto/ecdh"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"

	"github.com/mkarpenko/zkvault/models"
)

// Packed key sizes for the schemes that do not export size constants.
const (
	x25519KeySize = 32
)

// maxPrivateKeySize caps the plaintext private-key length per algorithm.
// An encrypted field longer than this plus the AEAD overhead cannot have
// been produced by this client and indicates corruption.
var maxPrivateKeySize = map[models.KeypairAlgorithm]int{
	models.AlgEd25519:  ed25519.PrivateKeySize,
	models.AlgMLDSA65:  mldsa65.PrivateKeySize,
	models.AlgX25519:   x25519KeySize,
	models.AlgMLKEM768: mlkem768.Scheme().PrivateKeySize(),
}

// maxPublicKeySize caps the plaintext public-key length per algorithm.
var maxPublicKeySize = map[models.KeypairAlgorithm]int{
	models.AlgEd25519:  ed25519.PublicKeySize,
	models.AlgMLDSA65:  mldsa65.PublicKeySize,
	models.AlgX25519:   x25519KeySize,
	models.AlgMLKEM768: mlkem768.Scheme().PublicKeySize(),
}

// SessionKeyring holds the four decrypted keypairs for the lifetime of one
// authenticated session. It exists only in memory; the at-rest form is
// always the encrypted five-field records in the account profile.
type SessionKeyring struct {
	// Classical signing (Ed25519).
	SigningPublic  ed25519.PublicKey
	SigningPrivate ed25519.PrivateKey

	// Post-quantum signing (ML-DSA-65, FIPS 204).
	PQSigningPublic  *mldsa65.PublicKey
	PQSigningPrivate *mldsa65.PrivateKey

	// Classical key exchange (X25519).
	ExchangePublic  *ecdh.PublicKey
	ExchangePrivate *ecdh.PrivateKey

	// Post-quantum key encapsulation (ML-KEM-768, FIPS 203).
	PQExchangePublic  kem.PublicKey
	PQExchangePrivate kem.PrivateKey
}

// SignHybrid signs data with both signature schemes. Verifiers require both
// signatures to pass, so the construction stays secure if either scheme falls.
func (r *SessionKeyring) SignHybrid(data []byte) (edSig, mldsaSig []byte, err error) {
	edSig = ed25519.Sign(r.SigningPrivate, data)

	mldsaSig = make([]byte, mldsa65.SignatureSize)
	if err := mldsa65.SignTo(r.PQSigningPrivate, data, nil, false, mldsaSig); err != nil {
		return nil, nil, fmt.Errorf("ml-dsa signing: %w", err)
	}

	return edSig, mldsaSig, nil
}

// VerifyHybrid verifies both signatures produced by SignHybrid.
func (r *SessionKeyring) VerifyHybrid(data, edSig, mldsaSig []byte) bool {
	return ed25519.Verify(r.SigningPublic, data, edSig) &&
		mldsa65.Verify(r.PQSigningPublic, data, nil, mldsaSig)
}

// Decapsulate recovers a shared secret from an ML-KEM-768 ciphertext
// addressed to this keyring.
func (r *SessionKeyring) Decapsulate(ciphertext []byte) ([]byte, error) {
	ss, err := mlkem768.Scheme().Decapsulate(r.PQExchangePrivate, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("ml-kem decapsulate: %w", err)
	}
	return ss, nil
}

// keypairVault is the private implementation of [KeypairVault].
type keypairVault struct {
	deriver KeyDeriver
	box     CipherBox
}

// NewKeypairVault constructs a [KeypairVault] on top of the given key
// source and cipher.
func NewKeypairVault(deriver KeyDeriver, box CipherBox) KeypairVault {
	return &keypairVault{deriver: deriver, box: box}
}

// GenerateAll implements [KeypairVault]. Key separation is deliberate:
// compromising one per-keypair key exposes one private key, not all four,
// and rewrapping under a new master key never touches the private keys.
func (v *keypairVault) GenerateAll(masterKey []byte) ([]models.EncryptedKeypair, error) {
	if len(masterKey) != KeySize {
		return nil, ErrBadKeySize
	}

	out := make([]models.EncryptedKeypair, 0, len(models.KeypairAlgorithms))
	for _, alg := range models.KeypairAlgorithms {
		pub, priv, err := generateRawKeypair(alg)
		if err != nil {
			return nil, fmt.Errorf("generate %s keypair: %w", alg, err)
		}

		enc, err := v.encryptKeypair(alg, pub, priv, masterKey)
		if err != nil {
			return nil, fmt.Errorf("encrypt %s keypair: %w", alg, err)
		}

		out = append(out, enc)
	}

	return out, nil
}

// encryptKeypair seals one raw keypair into its five-field at-rest form.
func (v *keypairVault) encryptKeypair(alg models.KeypairAlgorithm, pub, priv, masterKey []byte) (models.EncryptedKeypair, error) {
	perKeypairKey, err := v.deriver.GenerateKey()
	if err != nil {
		return models.EncryptedKeypair{}, fmt.Errorf("generate per-keypair key: %w", err)
	}

	encPriv, privNonce, err := v.box.Seal(priv, perKeypairKey)
	if err != nil {
		return models.EncryptedKeypair{}, fmt.Errorf("seal private key: %w", err)
	}

	wrappedKey, keyNonce, err := v.box.Seal(perKeypairKey, masterKey)
	if err != nil {
		return models.EncryptedKeypair{}, fmt.Errorf("wrap per-keypair key: %w", err)
	}

	b64 := base64.StdEncoding.EncodeToString
	return models.EncryptedKeypair{
		Algorithm:           alg,
		PublicKey:           b64(pub),
		EncryptedPrivateKey: b64(encPriv),
		PrivateKeyNonce:     b64(privNonce),
		EncryptionKey:       b64(wrappedKey),
		EncryptionNonce:     b64(keyNonce),
	}, nil
}

// DecryptAll implements [KeypairVault].
func (v *keypairVault) DecryptAll(keypairs []models.EncryptedKeypair, masterKey []byte) (*SessionKeyring, error) {
	if len(masterKey) != KeySize {
		return nil, ErrBadKeySize
	}
	if err := v.ValidateBounds(keypairs); err != nil {
		return nil, err
	}

	ring := &SessionKeyring{}
	var failures error

	for _, alg := range models.KeypairAlgorithms {
		record, ok := findKeypair(keypairs, alg)
		if !ok {
			failures = errors.Join(failures, fmt.Errorf("%s: %w", alg, ErrMalformedKeypair))
			continue
		}

		pub, priv, err := v.decryptKeypair(record, masterKey)
		if err != nil {
			// Report per keypair: a single corrupted record must not mask
			// the state of the other three.
			failures = errors.Join(failures, fmt.Errorf("%s: %w", alg, err))
			continue
		}

		if err := ring.install(alg, pub, priv); err != nil {
			failures = errors.Join(failures, fmt.Errorf("%s: %w", alg, err))
		}
	}

	if failures != nil {
		return nil, failures
	}
	return ring, nil
}

// decryptKeypair unwraps the per-keypair key under the master key, then
// opens the private key under it.
func (v *keypairVault) decryptKeypair(record models.EncryptedKeypair, masterKey []byte) (pub, priv []byte, err error) {
	pub, err = base64.StdEncoding.DecodeString(record.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("decode public key: %w", ErrMalformedKeypair)
	}

	wrappedKey, err := base64.StdEncoding.DecodeString(record.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("decode wrapped key: %w", ErrMalformedKeypair)
	}
	keyNonce, err := base64.StdEncoding.DecodeString(record.EncryptionNonce)
	if err != nil {
		return nil, nil, fmt.Errorf("decode wrap nonce: %w", ErrMalformedKeypair)
	}

	perKeypairKey, err := v.box.Open(wrappedKey, keyNonce, masterKey)
	if err != nil {
		return nil, nil, fmt.Errorf("unwrap per-keypair key: %w", err)
	}

	encPriv, err := base64.StdEncoding.DecodeString(record.EncryptedPrivateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("decode private key: %w", ErrMalformedKeypair)
	}
	privNonce, err := base64.StdEncoding.DecodeString(record.PrivateKeyNonce)
	if err != nil {
		return nil, nil, fmt.Errorf("decode private key nonce: %w", ErrMalformedKeypair)
	}

	priv, err = v.box.Open(encPriv, privNonce, perKeypairKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open private key: %w", err)
	}

	return pub, priv, nil
}

// Rewrap implements [KeypairVault]. Only the wrap of each per-keypair key
// changes; the sealed private keys are never touched, so a password reset
// cannot corrupt them.
func (v *keypairVault) Rewrap(keypairs []models.EncryptedKeypair, oldMasterKey, newMasterKey []byte) ([]models.EncryptedKeypair, error) {
	if len(oldMasterKey) != KeySize || len(newMasterKey) != KeySize {
		return nil, ErrBadKeySize
	}
	if err := v.ValidateBounds(keypairs); err != nil {
		return nil, err
	}

	out := make([]models.EncryptedKeypair, 0, len(keypairs))
	for _, record := range keypairs {
		wrappedKey, err := base64.StdEncoding.DecodeString(record.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("%s: decode wrapped key: %w", record.Algorithm, ErrMalformedKeypair)
		}
		keyNonce, err := base64.StdEncoding.DecodeString(record.EncryptionNonce)
		if err != nil {
			return nil, fmt.Errorf("%s: decode wrap nonce: %w", record.Algorithm, ErrMalformedKeypair)
		}

		perKeypairKey, err := v.box.Open(wrappedKey, keyNonce, oldMasterKey)
		if err != nil {
			return nil, fmt.Errorf("%s: unwrap per-keypair key: %w", record.Algorithm, err)
		}

		rewrapped, newNonce, err := v.box.Seal(perKeypairKey, newMasterKey)
		if err != nil {
			return nil, fmt.Errorf("%s: rewrap per-keypair key: %w", record.Algorithm, err)
		}

		record.EncryptionKey = base64.StdEncoding.EncodeToString(rewrapped)
		record.EncryptionNonce = base64.StdEncoding.EncodeToString(newNonce)
		out = append(out, record)
	}

	return out, nil
}

// ValidateBounds implements [KeypairVault]. Checks run on the encoded form;
// base64 growth is accounted for, so any field that passes here decodes to
// at most its algorithm maximum plus the AEAD overhead.
func (v *keypairVault) ValidateBounds(keypairs []models.EncryptedKeypair) error {
	encLen := func(raw int) int { return base64.StdEncoding.EncodedLen(raw) }

	for _, kp := range keypairs {
		maxPriv, known := maxPrivateKeySize[kp.Algorithm]
		if !known {
			return fmt.Errorf("%s: unknown algorithm: %w", kp.Algorithm, ErrMalformedKeypair)
		}

		if kp.PublicKey == "" || kp.EncryptedPrivateKey == "" || kp.PrivateKeyNonce == "" ||
			kp.EncryptionKey == "" || kp.EncryptionNonce == "" {
			return fmt.Errorf("%s: missing field: %w", kp.Algorithm, ErrMalformedKeypair)
		}

		checks := []struct {
			name string
			got  int
			max  int
		}{
			{"public_key", len(kp.PublicKey), encLen(maxPublicKeySize[kp.Algorithm])},
			{"encrypted_private_key", len(kp.EncryptedPrivateKey), encLen(maxPriv + sealOverhead)},
			{"private_key_nonce", len(kp.PrivateKeyNonce), encLen(NonceSize)},
			{"encryption_key", len(kp.EncryptionKey), encLen(KeySize + sealOverhead)},
			{"encryption_nonce", len(kp.EncryptionNonce), encLen(NonceSize)},
		}
		for _, c := range checks {
			if c.got > c.max {
				return fmt.Errorf("%s %s (%d > %d): %w", kp.Algorithm, c.name, c.got, c.max, ErrFieldTooLong)
			}
		}
	}

	return nil
}

// generateRawKeypair produces the packed (public, private) bytes for one
// algorithm.
func generateRawKeypair(alg models.KeypairAlgorithm) (pub, priv []byte, err error) {
	switch alg {
	case models.AlgEd25519:
		edPub, edPriv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return edPub, edPriv, nil

	case models.AlgMLDSA65:
		dsaPub, dsaPriv, err := mldsa65.GenerateKey(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		pubBytes, err := dsaPub.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		privBytes, err := dsaPriv.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		return pubBytes, privBytes, nil

	case models.AlgX25519:
		xPriv, err := ecdh.X25519().GenerateKey(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return xPriv.PublicKey().Bytes(), xPriv.Bytes(), nil

	case models.AlgMLKEM768:
		kemPub, kemPriv, err := mlkem768.Scheme().GenerateKeyPair()
		if err != nil {
			return nil, nil, err
		}
		pubBytes, err := kemPub.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		privBytes, err := kemPriv.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		return pubBytes, privBytes, nil

	default:
		return nil, nil, fmt.Errorf("unknown algorithm %q", alg)
	}
}

// install parses the raw key bytes into their typed form on the keyring.
func (r *SessionKeyring) install(alg models.KeypairAlgorithm, pub, priv []byte) error {
	switch alg {
	case models.AlgEd25519:
		if len(pub) != ed25519.PublicKeySize || len(priv) != ed25519.PrivateKeySize {
			return ErrMalformedKeypair
		}
		r.SigningPublic = ed25519.PublicKey(pub)
		r.SigningPrivate = ed25519.PrivateKey(priv)

	case models.AlgMLDSA65:
		dsaPub := new(mldsa65.PublicKey)
		if err := dsaPub.UnmarshalBinary(pub); err != nil {
			return fmt.Errorf("unmarshal ml-dsa public key: %w", err)
		}
		dsaPriv := new(mldsa65.PrivateKey)
		if err := dsaPriv.UnmarshalBinary(priv); err != nil {
			return fmt.Errorf("unmarshal ml-dsa private key: %w", err)
		}
		r.PQSigningPublic = dsaPub
		r.PQSigningPrivate = dsaPriv

	case models.AlgX25519:
		xPriv, err := ecdh.X25519().NewPrivateKey(priv)
		if err != nil {
			return fmt.Errorf("parse x25519 private key: %w", err)
		}
		xPub, err := ecdh.X25519().NewPublicKey(pub)
		if err != nil {
			return fmt.Errorf("parse x25519 public key: %w", err)
		}
		r.ExchangePrivate = xPriv
		r.ExchangePublic = xPub

	case models.AlgMLKEM768:
		kemPub, err := mlkem768.Scheme().UnmarshalBinaryPublicKey(pub)
		if err != nil {
			return fmt.Errorf("unmarshal ml-kem public key: %w", err)
		}
		kemPriv, err := mlkem768.Scheme().UnmarshalBinaryPrivateKey(priv)
		if err != nil {
			return fmt.Errorf("unmarshal ml-kem private key: %w", err)
		}
		r.PQExchangePublic = kemPub
		r.PQExchangePrivate = kemPriv

	default:
		return fmt.Errorf("unknown algorithm %q", alg)
	}

	return nil
}

// findKeypair locates the record for one algorithm.
func findKeypair(keypairs []models.EncryptedKeypair, alg models.KeypairAlgorithm) (models.EncryptedKeypair, bool) {
	for _, kp := range keypairs {
		if kp.Algorithm == alg {
			return kp, true
		}
	}
	return models.EncryptedKeypair{}, false
}
