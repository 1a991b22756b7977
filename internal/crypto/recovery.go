// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/mkarpenko/zkvault/models"
)

// MnemonicWordCount is the length of the recovery phrase. 12 words encode
// 128 bits of entropy, the shortest phrase BIP-39 defines.
const MnemonicWordCount = 12

// mnemonicEntropyBits is the BIP-39 entropy size yielding a 12-word phrase.
const mnemonicEntropyBits = 128

// RecoveryBundle is the output of a signup-time recovery setup: the phrase
// for one-time display and the wrapped artifacts for persistence.
type RecoveryBundle struct {
	// Mnemonic is the 12-word phrase. Shown to the user exactly once and
	// discarded after backup confirmation. Never persisted.
	Mnemonic string

	// Artifacts are the server-safe wrapped forms.
	Artifacts models.RecoveryArtifacts
}

// recoveryVault is the private implementation of [RecoveryVault].
type recoveryVault struct {
	deriver KeyDeriver
	box     CipherBox
}

// NewRecoveryVault constructs a [RecoveryVault].
func NewRecoveryVault(deriver KeyDeriver, box CipherBox) RecoveryVault {
	return &recoveryVault{deriver: deriver, box: box}
}

// Generate implements [RecoveryVault]. The chain is
// mnemonic -> RKEK -> recovery key -> master key: each secret wraps the
// next, and only the outermost (the phrase) ever reaches the user.
func (r *recoveryVault) Generate(masterKey []byte) (*RecoveryBundle, error) {
	if len(masterKey) != KeySize {
		return nil, ErrBadKeySize
	}

	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("build mnemonic: %w", err)
	}

	rkek, err := r.deriver.DeriveRecoveryKEK(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("derive rkek: %w", err)
	}

	recoveryKey, err := r.deriver.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate recovery key: %w", err)
	}

	wrappedRecoveryKey, recoveryKeyNonce, err := r.box.Seal(recoveryKey, rkek)
	if err != nil {
		return nil, fmt.Errorf("wrap recovery key: %w", err)
	}

	wrappedMasterKey, masterKeyNonce, err := r.box.Seal(masterKey, recoveryKey)
	if err != nil {
		return nil, fmt.Errorf("wrap master key: %w", err)
	}

	b64 := base64.StdEncoding.EncodeToString
	return &RecoveryBundle{
		Mnemonic: mnemonic,
		Artifacts: models.RecoveryArtifacts{
			EncryptedMasterKey:   b64(wrappedMasterKey),
			MasterKeyNonce:       b64(masterKeyNonce),
			EncryptedRecoveryKey: b64(wrappedRecoveryKey),
			RecoveryKeyNonce:     b64(recoveryKeyNonce),
			MnemonicHash:         MnemonicHash(mnemonic),
		},
	}, nil
}

// Recover implements [RecoveryVault]. Every failure after syntactic phrase
// validation collapses into ErrWrongMnemonic: an attacker probing the
// recovery path must not learn whether the RKEK layer or the recovery-key
// layer rejected the attempt.
func (r *recoveryVault) Recover(mnemonic string, artifacts models.RecoveryArtifacts) ([]byte, error) {
	phrase := NormalizeMnemonic(mnemonic)
	if phrase == "" {
		return nil, ErrEmptySecret
	}
	if len(strings.Fields(phrase)) != MnemonicWordCount || !bip39.IsMnemonicValid(phrase) {
		return nil, ErrInvalidMnemonic
	}

	if artifacts.MnemonicHash != "" && artifacts.MnemonicHash != MnemonicHash(phrase) {
		return nil, ErrWrongMnemonic
	}

	rkek, err := r.deriver.DeriveRecoveryKEK(phrase)
	if err != nil {
		return nil, fmt.Errorf("derive rkek: %w", err)
	}

	wrappedRecoveryKey, err := base64.StdEncoding.DecodeString(artifacts.EncryptedRecoveryKey)
	if err != nil {
		return nil, ErrWrongMnemonic
	}
	recoveryKeyNonce, err := base64.StdEncoding.DecodeString(artifacts.RecoveryKeyNonce)
	if err != nil {
		return nil, ErrWrongMnemonic
	}

	recoveryKey, err := r.box.Open(wrappedRecoveryKey, recoveryKeyNonce, rkek)
	if err != nil {
		return nil, ErrWrongMnemonic
	}

	wrappedMasterKey, err := base64.StdEncoding.DecodeString(artifacts.EncryptedMasterKey)
	if err != nil {
		return nil, ErrWrongMnemonic
	}
	masterKeyNonce, err := base64.StdEncoding.DecodeString(artifacts.MasterKeyNonce)
	if err != nil {
		return nil, ErrWrongMnemonic
	}

	masterKey, err := r.box.Open(wrappedMasterKey, masterKeyNonce, recoveryKey)
	if err != nil {
		return nil, ErrWrongMnemonic
	}

	return masterKey, nil
}

// MnemonicHash computes the one-way commitment to a recovery phrase stored
// in the account profile: SHA-256 of the normalized phrase, hex-encoded.
func MnemonicHash(mnemonic string) string {
	sum := sha256.Sum256([]byte(NormalizeMnemonic(mnemonic)))
	return hex.EncodeToString(sum[:])
}
