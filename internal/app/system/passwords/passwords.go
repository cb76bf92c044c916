// Package passwords covers credential generation and hashing: accounts get
// a system-generated password at registration (emailed once, never shown
// again) and password resets use single-use random tokens.
package passwords

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor for stored password hashes.
const Cost = 10

// GeneratedLength is the length of system-generated passwords.
const GeneratedLength = 8

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Hash returns the bcrypt hash of the plaintext password.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether plain matches the stored hash.
func Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Generate returns a new random password of GeneratedLength characters.
func Generate() (string, error) {
	buf := make([]byte, GeneratedLength)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GenerateResetToken returns a 32-byte random token as 64 hex characters.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
