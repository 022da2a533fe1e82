package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with the configured cost.
// bcrypt salts every call, so hashing the same plaintext twice yields
// different digests that both verify.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// PasswordMatches reports whether plain produced hashed. Malformed digests
// verify as false rather than erroring.
func PasswordMatches(hashed, plain string) bool {
	return ComparePassword(hashed, plain) == nil
}
