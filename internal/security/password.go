package security

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier checks a presented password against the stored credential.
// Keep this small interface so the hashing scheme can change without touching callers.
type CredentialVerifier interface {
	Verify(stored, presented string) error
	Store(plain string) (string, error)
}

// PlaintextVerifier reproduces the fixture behaviour: stored credentials are the
// raw passwords and the check is exact string equality.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, presented string) error {
	if stored != presented {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return nil
}

func (PlaintextVerifier) Store(plain string) (string, error) {
	return plain, nil
}

// BcryptVerifier stores bcrypt hashes instead of raw passwords.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, presented string) error {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented))
}

func (BcryptVerifier) Store(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Hash password hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	return BcryptVerifier{}.Store(plain)
}

// helper that compares a bcrypt hash with a plaintext password.

func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
