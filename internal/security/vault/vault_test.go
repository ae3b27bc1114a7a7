package vault

import (
	"crypto/rand"
	"reflect"
	"testing"
)

func TestVault_AES(t *testing.T) {
	key := make([]byte, 32)
	rand.Read(key)

	v, err := NewFactory(Config{Provider: "aes", AESKey: string(key)})
	if err != nil {
		t.Fatalf("Failed to create vault: %v", err)
	}

	originalText := []byte(`{"api_key":"sk_test_123"}`)

	encrypted, err := v.Encrypt(originalText)
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}
	if reflect.DeepEqual(encrypted, originalText) {
		t.Fatal("Encrypted payload should differ from plaintext")
	}

	decrypted, err := v.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Decryption failed: %v", err)
	}
	if !reflect.DeepEqual(originalText, decrypted) {
		t.Errorf("Decrypted text does not match original. Got %s, want %s", decrypted, originalText)
	}
}

func TestVault_AES_WrongKey(t *testing.T) {
	a, _ := NewFactory(Config{Provider: "aes", AESKey: "first"})
	b, _ := NewFactory(Config{Provider: "aes", AESKey: "second"})

	encrypted, err := a.Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}
	if _, err := b.Decrypt(encrypted); err != ErrDecryption {
		t.Errorf("Expected ErrDecryption, got %v", err)
	}
	if _, err := a.Decrypt([]byte("not-json")); err != ErrInvalidPayload {
		t.Errorf("Expected ErrInvalidPayload, got %v", err)
	}
}

func TestVault_Validation(t *testing.T) {
	if _, err := NewFactory(Config{Provider: "aes"}); err != ErrInvalidKey {
		t.Errorf("Expected ErrInvalidKey, got %v", err)
	}
	if _, err := NewFactory(Config{Provider: "kms"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	v, err := NewFactory(Config{Provider: "plaintext"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out, _ := v.Encrypt([]byte("data"))
	if string(out) != "data" {
		t.Errorf("Plaintext vault changed payload: %s", out)
	}
}
