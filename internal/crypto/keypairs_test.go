package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mkarpenko/zkvault/models"
)

func newTestVault(t *testing.T) (KeypairVault, []byte) {
	t.Helper()
	kd := NewKeyDeriver()
	masterKey, err := kd.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	return NewKeypairVault(kd, NewCipherBox()), masterKey
}

func TestKeypairVault_GenerateAll_ProducesFourCompleteRecords(t *testing.T) {
	vault, masterKey := newTestVault(t)

	keypairs, err := vault.GenerateAll(masterKey)
	if err != nil {
		t.Fatalf("GenerateAll error: %v", err)
	}
	if len(keypairs) != 4 {
		t.Fatalf("keypair count = %d, want 4", len(keypairs))
	}

	for i, alg := range models.KeypairAlgorithms {
		kp := keypairs[i]
		if kp.Algorithm != alg {
			t.Fatalf("keypair %d algorithm = %s, want %s", i, kp.Algorithm, alg)
		}
		if kp.PublicKey == "" || kp.EncryptedPrivateKey == "" || kp.PrivateKeyNonce == "" ||
			kp.EncryptionKey == "" || kp.EncryptionNonce == "" {
			t.Fatalf("keypair %s has an empty field", alg)
		}
	}
}

func TestKeypairVault_RoundTrip_AllFourDecrypt(t *testing.T) {
	vault, masterKey := newTestVault(t)

	keypairs, err := vault.GenerateAll(masterKey)
	if err != nil {
		t.Fatalf("GenerateAll error: %v", err)
	}

	ring, err := vault.DecryptAll(keypairs, masterKey)
	if err != nil {
		t.Fatalf("DecryptAll error: %v", err)
	}

	if ring.SigningPrivate == nil || ring.PQSigningPrivate == nil ||
		ring.ExchangePrivate == nil || ring.PQExchangePrivate == nil {
		t.Fatalf("keyring is missing a private key after decrypt")
	}
}

func TestKeypairVault_WrongMasterKeyFailsEveryKeypair(t *testing.T) {
	vault, masterKey := newTestVault(t)

	keypairs, err := vault.GenerateAll(masterKey)
	if err != nil {
		t.Fatalf("GenerateAll error: %v", err)
	}

	wrong := bytes.Repeat([]byte{0x13}, KeySize)
	_, err = vault.DecryptAll(keypairs, wrong)
	if err == nil {
		t.Fatalf("expected decrypt failure with wrong master key")
	}

	// Every keypair must be reported, not just the first.
	for _, alg := range models.KeypairAlgorithms {
		if !strings.Contains(err.Error(), string(alg)) {
			t.Fatalf("error does not mention %s: %v", alg, err)
		}
	}
}

func TestKeypairVault_SingleCorruptedKeypairReportedAlone(t *testing.T) {
	vault, masterKey := newTestVault(t)

	keypairs, err := vault.GenerateAll(masterKey)
	if err != nil {
		t.Fatalf("GenerateAll error: %v", err)
	}

	// Corrupt only the ML-DSA record's wrapped key.
	for i := range keypairs {
		if keypairs[i].Algorithm == models.AlgMLDSA65 {
			keypairs[i].EncryptionKey = keypairs[i].EncryptionNonce
		}
	}

	_, err = vault.DecryptAll(keypairs, masterKey)
	if err == nil {
		t.Fatalf("expected decrypt failure for corrupted keypair")
	}
	if !strings.Contains(err.Error(), string(models.AlgMLDSA65)) {
		t.Fatalf("error does not name the corrupted keypair: %v", err)
	}
	for _, alg := range [...]models.KeypairAlgorithm{models.AlgEd25519, models.AlgX25519, models.AlgMLKEM768} {
		if strings.Contains(err.Error(), string(alg)) {
			t.Fatalf("healthy keypair %s reported as failed: %v", alg, err)
		}
	}
}

func TestKeypairVault_ValidateBounds_OversizedFieldRejected(t *testing.T) {
	vault, masterKey := newTestVault(t)

	keypairs, err := vault.GenerateAll(masterKey)
	if err != nil {
		t.Fatalf("GenerateAll error: %v", err)
	}

	keypairs[0].EncryptedPrivateKey += strings.Repeat("A", 16*1024)

	err = vault.ValidateBounds(keypairs)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("ValidateBounds error = %v, want ErrFieldTooLong", err)
	}

	// DecryptAll must refuse before attempting any decrypt.
	if _, err := vault.DecryptAll(keypairs, masterKey); !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("DecryptAll error = %v, want ErrFieldTooLong", err)
	}
}

func TestKeypairVault_ValidateBounds_MissingFieldRejected(t *testing.T) {
	vault, masterKey := newTestVault(t)

	keypairs, err := vault.GenerateAll(masterKey)
	if err != nil {
		t.Fatalf("GenerateAll error: %v", err)
	}

	keypairs[2].PrivateKeyNonce = ""

	if err := vault.ValidateBounds(keypairs); !errors.Is(err, ErrMalformedKeypair) {
		t.Fatalf("ValidateBounds error = %v, want ErrMalformedKeypair", err)
	}
}

func TestKeypairVault_RewrapUnderNewMasterKey(t *testing.T) {
	vault, masterKey := newTestVault(t)

	keypairs, err := vault.GenerateAll(masterKey)
	if err != nil {
		t.Fatalf("GenerateAll error: %v", err)
	}

	newMaster := bytes.Repeat([]byte{0x2A}, KeySize)
	rewrapped, err := vault.Rewrap(keypairs, masterKey, newMaster)
	if err != nil {
		t.Fatalf("Rewrap error: %v", err)
	}

	// Sealed private keys must be byte-identical; only the wrap changed.
	for i := range keypairs {
		if rewrapped[i].EncryptedPrivateKey != keypairs[i].EncryptedPrivateKey ||
			rewrapped[i].PrivateKeyNonce != keypairs[i].PrivateKeyNonce {
			t.Fatalf("%s: sealed private key changed during rewrap", keypairs[i].Algorithm)
		}
		if rewrapped[i].EncryptionKey == keypairs[i].EncryptionKey {
			t.Fatalf("%s: wrapped key did not change during rewrap", keypairs[i].Algorithm)
		}
	}

	if _, err := vault.DecryptAll(rewrapped, newMaster); err != nil {
		t.Fatalf("DecryptAll under new master key: %v", err)
	}
	if _, err := vault.DecryptAll(rewrapped, masterKey); err == nil {
		t.Fatalf("old master key still decrypts after rewrap")
	}
}

func TestKeypairVault_RewrapWrongOldKeyRejected(t *testing.T) {
	vault, masterKey := newTestVault(t)

	keypairs, err := vault.GenerateAll(masterKey)
	if err != nil {
		t.Fatalf("GenerateAll error: %v", err)
	}

	wrong := bytes.Repeat([]byte{0x55}, KeySize)
	if _, err := vault.Rewrap(keypairs, wrong, masterKey); err == nil {
		t.Fatalf("expected rewrap failure with wrong old master key")
	}
}

func TestSessionKeyring_HybridSignAndVerify(t *testing.T) {
	vault, masterKey := newTestVault(t)

	keypairs, err := vault.GenerateAll(masterKey)
	if err != nil {
		t.Fatalf("GenerateAll error: %v", err)
	}
	ring, err := vault.DecryptAll(keypairs, masterKey)
	if err != nil {
		t.Fatalf("DecryptAll error: %v", err)
	}

	msg := []byte("attest this")
	edSig, dsaSig, err := ring.SignHybrid(msg)
	if err != nil {
		t.Fatalf("SignHybrid error: %v", err)
	}

	if !ring.VerifyHybrid(msg, edSig, dsaSig) {
		t.Fatalf("hybrid signature did not verify")
	}
	if ring.VerifyHybrid([]byte("other message"), edSig, dsaSig) {
		t.Fatalf("hybrid signature verified for wrong message")
	}
}
