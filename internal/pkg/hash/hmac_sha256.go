package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HMACSHA256 implements Hash with a keyed SHA-256 MAC, hex-encoded. It is
// deterministic, so the hash itself can be used in equality lookups.
type HMACSHA256 struct {
	secret []byte
}

// NewHMACSHA256 creates a hasher keyed with secret.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

// Hash returns the hex-encoded HMAC of plaintext.
func (s *HMACSHA256) Hash(plaintext string) ([]byte, error) {
	return s.gen(plaintext), nil
}

// Verify reports whether plaintext produces the given hash.
func (s *HMACSHA256) Verify(hashed, plaintext string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), s.gen(plaintext)) == 1
}

func (s *HMACSHA256) gen(plaintext string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(plaintext))
	sum := mac.Sum(nil)

	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)

	return out
}
