// Package hash provides keyed hashing for secrets that must be matched but
// never stored in the clear, such as one-time login codes.
package hash

// Hash hashes a plaintext value and verifies a candidate against a stored
// hash. Verify must run in constant time with respect to the hash bytes.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
