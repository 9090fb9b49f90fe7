package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
// Using a package-private type (instead of a bare string) means only this
// package can read or write the userID value — no key collisions with other
// packages that also stuff values into the context.
type contextKey string

const userIDKey contextKey = "userID"

// CredentialVerifier checks an email+password pair against the user store and
// returns the account id on success. Implemented by the user service; the
// middleware takes the function type rather than the service itself so this
// package never imports the service layer.
type CredentialVerifier func(ctx context.Context, email, password string) (int64, error)

// RequireAuth is the per-request authentication gate for protected routes.
//
// Two stateless schemes are accepted on the Authorization header:
//
//   - "Basic <base64>" — credentials are decoded and verified against the
//     store (bcrypt compare) on every single request. No session is created.
//   - "Bearer <jwt>"   — a token issued at login; verified by signature and
//     expiry alone, no database round-trip.
//
// On success the resolved user id is stored in the request context for
// handlers to read. On failure the request stops here with 401 and a
// WWW-Authenticate challenge — the underlying operation never runs.
func RequireAuth(verify CredentialVerifier, tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := authenticate(r, verify, tokens)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="blogpessoal"`)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's id from the request
// context. Returns (0, false) if the request never passed through RequireAuth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// authenticate resolves the caller's identity from the Authorization header.
func authenticate(r *http.Request, verify CredentialVerifier, tokens *TokenService) (int64, bool) {
	// r.BasicAuth handles the "Basic " prefix and base64 decoding for us.
	if email, password, ok := r.BasicAuth(); ok {
		id, err := verify(r.Context(), email, password)
		if err != nil {
			return 0, false
		}
		return id, true
	}

	if raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && tokens != nil {
		id, err := tokens.Validate(raw)
		if err != nil {
			return 0, false
		}
		return id, true
	}

	return 0, false
}
