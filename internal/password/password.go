package password

import "golang.org/x/crypto/bcrypt"

const defaultCost = 12

// Hash derives a bcrypt digest for storing alongside the account.
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), defaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify checks a login attempt against the stored digest. A nil error means
// the candidate matches.
func Verify(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
