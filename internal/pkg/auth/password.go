package auth

import "golang.org/x/crypto/bcrypt"

// DefaultPasswordCost is the bcrypt work factor applied when none is configured.
const DefaultPasswordCost = 10

// bcrypt ignores input past this length, so longer candidates are never compared.
const maxPasswordBytes = 72

// PasswordHasher turns plaintext passwords into self-describing salted hashes
// and checks candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Matches reports whether password produces hash; any failure counts as a mismatch.
	Matches(hash string, password string) bool
}

// BcryptHasher uses bcrypt, which embeds salt and cost in its output.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultPasswordCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash fails for passwords longer than 72 bytes or an out-of-range cost.
func (h *BcryptHasher) Hash(password string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (h *BcryptHasher) Matches(hash string, password string) bool {
	if len(password) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
