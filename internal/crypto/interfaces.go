package crypto

import "github.com/mkarpenko/zkvault/models"

// KeyDeriver turns low-entropy secrets into fixed-length symmetric keys.
// Derivation is deterministic: the same (secret, salt) always yields the
// same key, in this process and any other. Any internal failure is a hard
// error, never a fallback to a weaker derivation.
type KeyDeriver interface {
	// DeriveKey derives a KeySize-byte key from password and salt using
	// Argon2id. Rejects an empty password or a salt of the wrong size
	// before touching the KDF.
	DeriveKey(password, salt []byte) ([]byte, error)

	// DeriveRecoveryKEK derives the recovery-key-encryption-key from a
	// 12-word recovery phrase. The derivation uses a fixed domain-separation
	// salt so the same phrase re-derives the same KEK during a later
	// recovery, on any device.
	DeriveRecoveryKEK(mnemonic string) ([]byte, error)

	// GenerateSalt returns SaltSize fresh random bytes from the OS CSPRNG.
	GenerateSalt() ([]byte, error)

	// GenerateKey returns KeySize fresh random bytes from the OS CSPRNG.
	GenerateKey() ([]byte, error)
}

// CipherBox is the single authenticated-encryption point for every
// "encrypted X + nonce" pair in the account profile.
type CipherBox interface {
	// Seal encrypts plaintext under key with a fresh random nonce and
	// returns (ciphertext, nonce). Nonces are never reused under a key.
	Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error)

	// Open authenticates and decrypts. It returns the plaintext only if the
	// authentication tag verifies; on any tamper or wrong key it returns
	// ErrDecryptFailed and no partial output.
	Open(ciphertext, nonce, key []byte) ([]byte, error)
}

// KeypairVault generates the four account keypairs and moves them between
// their at-rest encrypted form and an in-memory session keyring.
type KeypairVault interface {
	// GenerateAll creates the four account keypairs (Ed25519, ML-DSA-65,
	// X25519, ML-KEM-768). Each private key is sealed under its own random
	// per-keypair key, and each per-keypair key is sealed under masterKey.
	GenerateAll(masterKey []byte) ([]models.EncryptedKeypair, error)

	// DecryptAll reverses GenerateAll. Decrypt failures are reported
	// per-keypair so a partially corrupted profile does not hide the state
	// of the other three, but callers treat any failure as fatal for
	// session initialization.
	DecryptAll(keypairs []models.EncryptedKeypair, masterKey []byte) (*SessionKeyring, error)

	// Rewrap re-seals every per-keypair key under newMasterKey after a
	// password reset. The sealed private keys themselves are untouched.
	Rewrap(keypairs []models.EncryptedKeypair, oldMasterKey, newMasterKey []byte) ([]models.EncryptedKeypair, error)

	// ValidateBounds checks every encrypted field of every keypair against
	// its algorithm-specific maximum length. It runs before any decrypt is
	// attempted; a violation means local-storage corruption.
	ValidateBounds(keypairs []models.EncryptedKeypair) error
}

// RecoveryVault produces and consumes the disaster-recovery artifacts:
// mnemonic -> RKEK -> recovery key -> master key, each layer wrapping the next.
type RecoveryVault interface {
	// Generate creates the recovery phrase and the wrapped artifacts for a
	// just-created master key. The returned mnemonic is shown to the user
	// exactly once and is never persisted.
	Generate(masterKey []byte) (*RecoveryBundle, error)

	// Recover re-derives the master key from a user-supplied phrase and the
	// persisted artifacts. Any unwrap failure is reported as
	// ErrWrongMnemonic without revealing which layer failed.
	Recover(mnemonic string, artifacts models.RecoveryArtifacts) ([]byte, error)
}
