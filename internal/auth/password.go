// Package auth — password hashing utilities.
//
// WHY BCRYPT?
// bcrypt is a password hashing function specifically designed to be slow.
// That slowness is a security feature: it makes brute-force attacks expensive.
//
// bcrypt automatically:
//   - Generates a random salt (two users with the same password get different hashes)
//   - Embeds the salt in the output hash (no separate salt column needed)
//   - Controls the work factor via "cost" (higher = slower = harder to crack)
//
// Never store passwords in plain text or with fast hashes (MD5, SHA-256).
//
// Hash format (the full output of bcrypt.GenerateFromPassword):
//
//	$2a$12$<22-char salt><31-char hash>
//	 ^   ^
//	 |   cost (12 rounds → 2^12 = 4096 iterations)
//	 version
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly ~250ms on a
// modern server — negligible for a login, brutal for an attacker.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct (not free functions) so that the cost can be injected —
// tests use the bcrypt minimum (4) to avoid the ~250ms per hash.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the given cost.
// Pass 0 to use the default (12).
func NewPasswordService(cost int) *PasswordService {
	if cost == 0 {
		cost = defaultCost
	}
	return &PasswordService{cost: cost}
}

// NewPasswordServiceForTest creates a PasswordService with bcrypt cost 4
// (the minimum allowed). Do NOT use in production — cost 4 is far too weak.
func NewPasswordServiceForTest() *PasswordService {
	return &PasswordService{cost: bcrypt.MinCost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// The output is a self-contained string — it embeds the salt and cost, so it
// can be stored directly and later handed to Verify without extra columns.
//
// Returns an error if the plaintext is too long (>72 bytes — a bcrypt limit;
// bcrypt would silently truncate, we reject explicitly instead).
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks whether a plaintext password matches a stored bcrypt hash.
// Returns nil on a match.
//
// bcrypt.CompareHashAndPassword compares in constant time, so this is safe
// against timing attacks — response time doesn't reveal how many leading
// bytes were right.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}

// DummyVerify burns one bcrypt comparison against a throwaway hash.
//
// The login path calls this when the email doesn't exist, so "unknown user"
// and "wrong password" take the same time — otherwise an attacker could
// enumerate registered emails by measuring response latency.
func (p *PasswordService) DummyVerify(plaintext string) {
	// A fixed cost-4 hash of an arbitrary string. The result is discarded.
	const throwaway = "$2a$04$Tn1Cu1tUVGK0Z0RMkqcI4.jD0S3Qm0DO8Fw9hFXFwWYZ5oYVVrOdS"
	_ = bcrypt.CompareHashAndPassword([]byte(throwaway), []byte(plaintext))
}
