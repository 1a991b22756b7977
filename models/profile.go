// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package models

// KeypairAlgorithm identifies one of the four asymmetric schemes every
// account carries. The set is fixed: two signature schemes and two
// key-exchange/encapsulation schemes, one classical and one post-quantum
// per purpose.
type KeypairAlgorithm string

const (
	// AlgEd25519 is the classical signature scheme.
	AlgEd25519 KeypairAlgorithm = "ed25519"
	// AlgMLDSA65 is the post-quantum signature scheme (FIPS 204).
	AlgMLDSA65 KeypairAlgorithm = "ml-dsa-65"
	// AlgX25519 is the classical key-exchange scheme.
	AlgX25519 KeypairAlgorithm = "x25519"
	// AlgMLKEM768 is the post-quantum key-encapsulation scheme (FIPS 203).
	AlgMLKEM768 KeypairAlgorithm = "ml-kem-768"
)

// KeypairAlgorithms lists the four account algorithms in their canonical
// profile order. The order is a compatibility surface: the server stores
// keypairs as an array and both sides index it the same way.
var KeypairAlgorithms = [4]KeypairAlgorithm{AlgEd25519, AlgMLDSA65, AlgX25519, AlgMLKEM768}

// EncryptedKeypair is the at-rest form of one asymmetric keypair.
// All byte fields are base64 (standard encoding) strings so the blob can be
// stored and transported as JSON without further escaping.
//
// The private key is sealed under a random per-keypair symmetric key, and
// that key is itself sealed under the account master key. EncryptionKey is
// therefore a ciphertext, never plaintext key material.
type EncryptedKeypair struct {
	// Algorithm names the scheme this keypair belongs to.
	Algorithm KeypairAlgorithm `json:"algorithm"`

	// PublicKey is the plaintext public key.
	PublicKey string `json:"public_key"`

	// EncryptedPrivateKey is the private key sealed under the per-keypair key.
	EncryptedPrivateKey string `json:"encrypted_private_key"`

	// PrivateKeyNonce is the nonce used to seal EncryptedPrivateKey.
	PrivateKeyNonce string `json:"private_key_nonce"`

	// EncryptionKey is the per-keypair symmetric key sealed under the master key.
	EncryptionKey string `json:"encryption_key"`

	// EncryptionNonce is the nonce used to seal EncryptionKey.
	EncryptionNonce string `json:"encryption_nonce"`
}

// AccountCryptoProfile is the complete persisted cryptographic state of an
// account. It is opaque to the server: every secret in it is wrapped under a
// key the server never sees.
//
// AccountSalt is immutable once set. It must be byte-identical to the salt
// used when the keypairs were encrypted, otherwise every private key fails
// to decrypt (detected by the AEAD tag, never silent corruption).
type AccountCryptoProfile struct {
	// AccountSalt is the per-account Argon2id salt, base64. Empty means the
	// account has authenticated externally but never completed key setup.
	AccountSalt string `json:"account_salt"`

	// Keypairs holds the four account keypairs in KeypairAlgorithms order.
	Keypairs []EncryptedKeypair `json:"crypto_keypairs"`

	// EncryptedMasterKey is the master key wrapped under the recovery key.
	EncryptedMasterKey string `json:"encrypted_master_key"`
	// MasterKeyNonce is the nonce for EncryptedMasterKey.
	MasterKeyNonce string `json:"master_key_nonce"`

	// EncryptedRecoveryKey is the recovery key wrapped under the RKEK derived
	// from the recovery phrase.
	EncryptedRecoveryKey string `json:"encrypted_recovery_key"`
	// RecoveryKeyNonce is the nonce for EncryptedRecoveryKey.
	RecoveryKeyNonce string `json:"recovery_key_nonce"`

	// MnemonicHash is a one-way commitment to the recovery phrase, used to
	// sanity-check recovery attempts without ever storing the phrase.
	MnemonicHash string `json:"mnemonic_hash"`
}

// HasKeySetup reports whether the account has completed cryptographic
// bootstrap. A missing account salt is the "pending setup" sentinel for
// accounts created through an external identity provider.
func (p AccountCryptoProfile) HasKeySetup() bool {
	return p.AccountSalt != "" && len(p.Keypairs) > 0
}

// RecoveryArtifacts is the subset of the profile the recovery path needs.
type RecoveryArtifacts struct {
	EncryptedMasterKey   string `json:"encrypted_master_key"`
	MasterKeyNonce       string `json:"master_key_nonce"`
	EncryptedRecoveryKey string `json:"encrypted_recovery_key"`
	RecoveryKeyNonce     string `json:"recovery_key_nonce"`
	MnemonicHash         string `json:"mnemonic_hash"`
}

// Recovery extracts the recovery artifacts from the profile.
func (p AccountCryptoProfile) Recovery() RecoveryArtifacts {
	return RecoveryArtifacts{
		EncryptedMasterKey:   p.EncryptedMasterKey,
		MasterKeyNonce:       p.MasterKeyNonce,
		EncryptedRecoveryKey: p.EncryptedRecoveryKey,
		RecoveryKeyNonce:     p.RecoveryKeyNonce,
		MnemonicHash:         p.MnemonicHash,
	}
}
