package encryption

import (
	"strings"
	"testing"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := NewWithKey(testKey())
	if err != nil {
		t.Fatalf("NewWithKey failed: %v", err)
	}

	plaintext := `{"api_key":"sk-very-secret"}`
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if strings.Contains(ciphertext, "secret") {
		t.Error("ciphertext must not contain the plaintext")
	}

	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("expected %q, got %q", plaintext, decrypted)
	}
}

func TestEncryptProducesUniqueNonces(t *testing.T) {
	enc, _ := NewWithKey(testKey())

	first, err := enc.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	second, err := enc.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if first == second {
		t.Error("two encryptions of the same plaintext must differ")
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	enc, _ := NewWithKey(testKey())

	if _, err := enc.Decrypt("not-base64!!"); err == nil {
		t.Error("expected error for invalid ciphertext")
	}
	if _, err := enc.Decrypt("c2hvcnQ"); err == nil {
		t.Error("expected error for truncated ciphertext")
	}

	other, _ := NewWithKey([]byte("fedcba9876543210fedcba9876543210"))
	ciphertext, _ := other.Encrypt("secret")
	if _, err := enc.Decrypt(ciphertext); err == nil {
		t.Error("expected error decrypting with the wrong key")
	}
}

func TestNewWithKeyRejectsBadLength(t *testing.T) {
	if _, err := NewWithKey([]byte("too short")); err == nil {
		t.Error("expected error for short key")
	}
}
