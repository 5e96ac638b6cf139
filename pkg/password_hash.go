package pkg

import "golang.org/x/crypto/bcrypt"

// HashPassword is used out-of-band to produce the admin password hash
// that the running service only ever reads.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return BytesToString(bytes), err
}

// CheckPasswordHash returns true iff password matches hash. Any bcrypt
// error (malformed hash included) is a failed check, never an error.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
