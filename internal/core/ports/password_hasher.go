package ports

// PasswordHasher produces one-way salted digests of plaintext passwords and
// verifies candidates against them in constant time.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
