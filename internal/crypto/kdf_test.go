package crypto

import (
	"bytes"
	"testing"
)

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	kd := NewKeyDeriver()

	s1, err := kd.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	s2, err := kd.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	if len(s1) != SaltSize {
		t.Fatalf("salt length = %d, want %d", len(s1), SaltSize)
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestGenerateKey_LengthAndRandomness(t *testing.T) {
	kd := NewKeyDeriver()

	k1, err := kd.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	k2, err := kd.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}

	if len(k1) != KeySize {
		t.Fatalf("key length = %d, want %d", len(k1), KeySize)
	}
	if bytes.Equal(k1, k2) {
		t.Fatalf("expected keys to differ, but they are equal")
	}
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	kd := NewKeyDeriver()

	password := []byte("correct-horse-battery")
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	k1, err := kd.DeriveKey(password, salt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, err := kd.DeriveKey(password, salt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if len(k1) != KeySize {
		t.Fatalf("key length = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected derived keys to match for same password+salt")
	}
}

func TestDeriveKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	kd := NewKeyDeriver()

	password := []byte("same password")
	salt1 := bytes.Repeat([]byte{0x01}, SaltSize)
	salt2 := bytes.Repeat([]byte{0x02}, SaltSize)

	k1, err := kd.DeriveKey(password, salt1)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, err := kd.DeriveKey(password, salt2)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if bytes.Equal(k1, k2) {
		t.Fatalf("expected different salts to produce different keys")
	}
}

func TestDeriveKey_RejectsBadInput(t *testing.T) {
	kd := NewKeyDeriver()

	if _, err := kd.DeriveKey(nil, bytes.Repeat([]byte{0x01}, SaltSize)); err == nil {
		t.Fatalf("expected error for empty password")
	}
	if _, err := kd.DeriveKey([]byte("pass"), []byte("short")); err == nil {
		t.Fatalf("expected error for undersized salt")
	}
}

func TestDeriveRecoveryKEK_StableAcrossFormatting(t *testing.T) {
	kd := NewKeyDeriver()

	phrase := "legal winner thank year wave sausage worth useful legal winner thank yellow"
	messy := "  Legal  WINNER thank year wave sausage worth useful legal winner thank Yellow "

	k1, err := kd.DeriveRecoveryKEK(phrase)
	if err != nil {
		t.Fatalf("DeriveRecoveryKEK error: %v", err)
	}
	k2, err := kd.DeriveRecoveryKEK(messy)
	if err != nil {
		t.Fatalf("DeriveRecoveryKEK error: %v", err)
	}

	if len(k1) != KeySize {
		t.Fatalf("rkek length = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected normalized phrases to derive the same rkek")
	}
}

func TestDeriveRecoveryKEK_RejectsEmptyPhrase(t *testing.T) {
	kd := NewKeyDeriver()

	if _, err := kd.DeriveRecoveryKEK("   "); err == nil {
		t.Fatalf("expected error for blank phrase")
	}
}

func TestNormalizeMnemonic(t *testing.T) {
	got := NormalizeMnemonic("  Abandon  ABILITY\table ")
	want := "abandon ability able"
	if got != want {
		t.Fatalf("NormalizeMnemonic = %q, want %q", got, want)
	}
}

func TestNormalizeMnemonic_UnicodeFormsAgree(t *testing.T) {
	// "déjà" typed with precomposed characters versus combining marks.
	composed := "déjà vu"
	decomposed := "de\u0301ja\u0300 vu"

	if NormalizeMnemonic(composed) != NormalizeMnemonic(decomposed) {
		t.Fatalf("composed and decomposed phrases normalize differently")
	}

	kd := NewKeyDeriver()
	k1, err := kd.DeriveRecoveryKEK(composed)
	if err != nil {
		t.Fatalf("DeriveRecoveryKEK error: %v", err)
	}
	k2, err := kd.DeriveRecoveryKEK(decomposed)
	if err != nil {
		t.Fatalf("DeriveRecoveryKEK error: %v", err)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("unicode forms of the same phrase derive different keys")
	}
}
