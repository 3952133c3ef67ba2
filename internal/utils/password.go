package utils

import "golang.org/x/crypto/bcrypt"

// DefaultHashCost is deliberately expensive to slow offline guessing.
const DefaultHashCost = 12

// HashPassword derives a one-way, salted verification secret from a
// plaintext password at the given bcrypt cost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultHashCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches the stored secret.
// Only a match/no-match result ever leaves this function.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
