package crypto

import "errors"

var (
	// ErrEmptySecret is returned when a password or mnemonic is empty or
	// blank. Derivation never runs on malformed input.
	ErrEmptySecret = errors.New("empty secret provided for key derivation")

	// ErrBadSaltSize is returned when a salt is not exactly SaltSize bytes.
	ErrBadSaltSize = errors.New("invalid salt size")

	// ErrBadKeySize is returned when a symmetric key is not KeySize bytes.
	ErrBadKeySize = errors.New("invalid key size")

	// ErrDecryptFailed is returned when AEAD authentication fails: wrong key,
	// wrong nonce, or tampered ciphertext. No plaintext is ever returned
	// alongside it.
	ErrDecryptFailed = errors.New("decryption failed")

	// ErrInvalidMnemonic is returned when a phrase is not a valid 12-word
	// BIP-39 mnemonic.
	ErrInvalidMnemonic = errors.New("invalid recovery phrase")

	// ErrWrongMnemonic is returned when a syntactically valid phrase fails
	// to unwrap the recovery artifacts. It deliberately does not say which
	// unwrap layer failed.
	ErrWrongMnemonic = errors.New("wrong recovery phrase")

	// ErrFieldTooLong is returned by bounds validation when an encrypted
	// profile field exceeds its algorithm-specific maximum. It signals
	// local-storage corruption, not a credential problem.
	ErrFieldTooLong = errors.New("encrypted field exceeds maximum length")

	// ErrMalformedKeypair is returned when a persisted keypair is missing
	// one of its five fields or holds undecodable base64.
	ErrMalformedKeypair = errors.New("malformed keypair record")
)
