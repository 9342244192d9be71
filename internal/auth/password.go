package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier abstracts how credentials are stored and checked. The
// external contract (authenticate by email plus secret) is the same for every
// implementation.
type CredentialVerifier interface {
	// Store prepares a plaintext credential for persistence.
	Store(plain string) (string, error)
	// Verify checks a plaintext credential against its stored form.
	Verify(stored, plain string) bool
}

// BcryptVerifier hashes credentials with bcrypt before storage.
type BcryptVerifier struct {
	Cost int
}

// NewBcryptVerifier builds a verifier with the given cost.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{Cost: cost}
}

func (v *BcryptVerifier) Store(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), v.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (v *BcryptVerifier) Verify(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// PlaintextVerifier stores credentials verbatim, reproducing the behavior of
// the system this one replaces. Only for legacy data.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Store(plain string) (string, error) {
	return plain, nil
}

func (PlaintextVerifier) Verify(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}
