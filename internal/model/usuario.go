// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Usuario represents a registered user account.
//
// The Usuario field is the account's email address and doubles as the login
// name — the field is called "usuario" in the API, so we keep that name here
// rather than inventing a second one. The UNIQUE constraint on the usuario
// column in the DB guarantees one account per email.
//
// WHY Senha STAYS IN THE JSON OUTPUT?
// The stored value is a bcrypt hash, never the plaintext. The API contract
// returns the persisted record as-is after registration and update, hash
// included — the hash is one-way and embeds its own salt, so echoing it does
// not reveal the password.
type Usuario struct {
	ID      int64  `json:"id"`
	Nome    string `json:"nome"`    // display name
	Usuario string `json:"usuario"` // email address, unique across accounts
	Senha   string `json:"senha"`   // bcrypt hash in storage; plaintext only inside a request body
	Foto    string `json:"foto"`    // optional avatar reference
}

// UsuarioLogin is the ephemeral credential carrier for POST /usuarios/logar.
//
// It is never persisted. On the way in, only Usuario and Senha are read.
// On the way out, Senha carries the stored hash and the token fields carry
// the credentials the client can present on subsequent requests:
//
//   - Token:  "Basic <base64(usuario:senha)>" — ready to paste into an
//     Authorization header for per-request basic auth
//   - Bearer: a short-lived signed JWT, accepted as "Bearer <jwt>" so the
//     client doesn't have to resend the password every time
type UsuarioLogin struct {
	ID      int64  `json:"id"`
	Nome    string `json:"nome"`
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
	Foto    string `json:"foto"`
	Token   string `json:"token"`
	Bearer  string `json:"bearer,omitempty"`
}
