package passwords_test

import (
	"encoding/hex"
	"testing"

	"github.com/dalemusser/tourhub/internal/app/system/passwords"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := passwords.Hash("s3cret-pw")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "s3cret-pw" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !passwords.Compare(hash, "s3cret-pw") {
		t.Error("expected matching password to compare true")
	}
	if passwords.Compare(hash, "wrong-pw") {
		t.Error("expected non-matching password to compare false")
	}
}

func TestGenerate(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pw, err := passwords.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if len(pw) != passwords.GeneratedLength {
			t.Errorf("password length: got %d, want %d", len(pw), passwords.GeneratedLength)
		}
		seen[pw] = true
	}
	if len(seen) < 2 {
		t.Error("expected generated passwords to vary")
	}
}

func TestGenerateResetToken(t *testing.T) {
	tok, err := passwords.GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("token length: got %d, want 64", len(tok))
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Errorf("token is not valid hex: %v", err)
	}

	tok2, err := passwords.GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}
	if tok == tok2 {
		t.Error("expected distinct tokens")
	}
}
