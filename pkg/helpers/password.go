package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BcryptHasher adapts the functions above to a hasher value.
type BcryptHasher struct{}

func (BcryptHasher) Hash(plain string) (string, error) { return HashPassword(plain) }

func (BcryptHasher) Verify(plain, hash string) bool { return CompareHashAndPassword(hash, plain) }
