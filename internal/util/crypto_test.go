package util

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hasher := NewBcryptHasher(10)
	password := "MyPassword123"

	hashed, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(hashed, "$2") {
		t.Errorf("expected bcrypt hash, got %q", hashed)
	}
	if hashed == password {
		t.Error("hash must not equal the plaintext")
	}

	// empty password is an error
	if _, err := hasher.Hash(""); err == nil {
		t.Error("empty password should return an error")
	}

	// same password hashes to different strings (random salt)
	hashed2, _ := hasher.Hash(password)
	if hashed == hashed2 {
		t.Error("same password should produce different hashes")
	}
}

func TestCheckPassword(t *testing.T) {
	hasher := NewBcryptHasher(10)
	password := "TestPass456"
	hashed, _ := hasher.Hash(password)

	if !hasher.Check(password, hashed) {
		t.Error("correct password should verify")
	}
	if hasher.Check("WrongPass", hashed) {
		t.Error("wrong password should not verify")
	}
	if hasher.Check("", hashed) {
		t.Error("empty password should not verify")
	}
	if hasher.Check(password, "") {
		t.Error("empty hash should not verify")
	}
	if hasher.Check(password, "not-a-bcrypt-hash") {
		t.Error("malformed hash should not verify")
	}
}

func TestHasherCostClamp(t *testing.T) {
	hasher := NewBcryptHasher(1)
	if hasher.Cost < 10 {
		t.Errorf("cost = %d, want at least 10", hasher.Cost)
	}
}
