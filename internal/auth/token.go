// Package auth — token generation and validation.
//
// Two token shapes exist side by side:
//
//   - Basic tokens ("Basic <base64(email:password)>") are just the caller's
//     credentials re-encoded. Presenting one triggers a full bcrypt check on
//     every request. BasicToken builds the string returned at login so the
//     client can paste it straight into an Authorization header.
//
//   - JWTs are signed, short-lived and stateless — the server verifies the
//     signature and expiry without touching the database. Issued at login as
//     a convenience so clients don't have to resend the password each time.
//
// JWT structure (three base64 parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: algorithm + type → {"alg":"HS256","typ":"JWT"}
//	- Payload: claims → {"sub":"<user id>","exp":1234567890}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "blogpessoal"

// BasicToken encodes email+password as an HTTP Basic Authorization value,
// "Basic " prefix included.
func BasicToken(email, password string) string {
	creds := base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
	return "Basic " + creds
}

// TokenService handles JWT creation and validation.
//
// It holds the HMAC secret used to sign and verify tokens. The same secret
// must be used for both operations.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims; the user id travels in "sub" (Subject),
// the standard claim for identifying who the token belongs to.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a new JWT access token for the given user id.
// Token lifetime: 15 minutes — after that the client logs in again.
func (s *TokenService) Generate(userID int64) (string, error) {
	return s.GenerateWithDuration(userID, 15*time.Minute)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used by tests that need an already-expired token.
func (s *TokenService) GenerateWithDuration(userID int64, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string and returns the user id from its
// "sub" claim.
//
// The jwt library checks the signature, the expiry, and the issuer. Passing
// jwt.WithValidMethods pins the algorithm to HS256 — without it, an attacker
// could try an algorithm-confusion attack (e.g. alg "none").
func (s *TokenService) Validate(tokenStr string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("auth: token expired")
		}
		return 0, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("auth: invalid token claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("auth: token has no valid subject")
	}

	return userID, nil
}
