// Package service contains the business logic layer of the application.
//
// The code is organised into three layers:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services receive repository interfaces (not concrete sqlite types), so
// tests can pass an in-memory fake and the storage engine can change without
// touching business rules. Services know nothing about HTTP: they accept
// plain values and return domain errors; the handler maps those to statuses.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/Jeanine19/BlogPessoal/internal/apperror"
	"github.com/Jeanine19/BlogPessoal/internal/auth"
	"github.com/Jeanine19/BlogPessoal/internal/model"
	"github.com/Jeanine19/BlogPessoal/internal/repository"
)

const (
	// MinSenhaLength is the minimum accepted password length, in characters.
	MinSenhaLength = 8
)

// UsuarioService handles registration, profile updates and authentication.
type UsuarioService struct {
	repo      repository.UsuarioRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService // may be nil — bearer tokens are then not issued
	logger    *slog.Logger
}

// NewUsuarioService creates a UsuarioService. The caller decides which
// repository implementation and bcrypt cost to use — this is where
// dependency injection happens.
func NewUsuarioService(
	repo repository.UsuarioRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *UsuarioService {
	return &UsuarioService{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Cadastrar registers a new user account.
//
// The plaintext senha is validated, hashed, and only then written — the
// plaintext never reaches the store. Email uniqueness is enforced by the
// store's UNIQUE constraint, so a losing racer gets DuplicateEmail back even
// if both requests validated at the same instant. One hash computation, one
// store write; nothing is persisted if either step fails.
func (s *UsuarioService) Cadastrar(ctx context.Context, candidate *model.Usuario) (*model.Usuario, error) {
	if err := validarUsuario(candidate); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(candidate.Senha)
	if err != nil {
		return nil, apperror.ValidationFailed("senha", err.Error())
	}

	usuario := &model.Usuario{
		Nome:    strings.TrimSpace(candidate.Nome),
		Usuario: strings.TrimSpace(candidate.Usuario),
		Senha:   hash,
		Foto:    strings.TrimSpace(candidate.Foto),
	}

	if err := s.repo.CreateUsuario(ctx, usuario); err != nil {
		// DuplicateEmail is an expected outcome, not a server fault.
		if !isAppError(err) {
			s.logger.Error("failed to register usuario",
				slog.String("usuario", usuario.Usuario),
				slog.String("error", err.Error()),
			)
		}
		return nil, fmt.Errorf("registering usuario: %w", err)
	}

	s.logger.Info("usuario registered",
		slog.Int64("id", usuario.ID),
		slog.String("usuario", usuario.Usuario),
	)

	return usuario, nil
}

// Atualizar updates an existing account.
//
// Fails with NotFound if the id doesn't exist, and with DuplicateEmail if the
// new email already belongs to a different account (again decided by the
// store's UNIQUE constraint, never by a read-then-write check). The senha
// field is required and always re-validated and re-hashed — a bcrypt hash
// can't tell us whether the plaintext actually changed.
func (s *UsuarioService) Atualizar(ctx context.Context, candidate *model.Usuario) (*model.Usuario, error) {
	if candidate.ID <= 0 {
		return nil, apperror.ValidationFailed("id", "id is required")
	}
	if err := validarUsuario(candidate); err != nil {
		return nil, err
	}

	// Confirm the account exists before hashing — gives a clean 404 instead
	// of burning a bcrypt round on a nonexistent id.
	if _, err := s.repo.GetUsuarioByID(ctx, candidate.ID); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(candidate.Senha)
	if err != nil {
		return nil, apperror.ValidationFailed("senha", err.Error())
	}

	usuario := &model.Usuario{
		ID:      candidate.ID,
		Nome:    strings.TrimSpace(candidate.Nome),
		Usuario: strings.TrimSpace(candidate.Usuario),
		Senha:   hash,
		Foto:    strings.TrimSpace(candidate.Foto),
	}

	if err := s.repo.UpdateUsuario(ctx, usuario); err != nil {
		if !isAppError(err) {
			s.logger.Error("failed to update usuario",
				slog.Int64("id", usuario.ID),
				slog.String("error", err.Error()),
			)
		}
		return nil, fmt.Errorf("updating usuario: %w", err)
	}

	s.logger.Info("usuario updated", slog.Int64("id", usuario.ID))

	return usuario, nil
}

// BuscarPorID retrieves a user by id.
// Returns apperror.ErrNotFound if no account exists with that id.
func (s *UsuarioService) BuscarPorID(ctx context.Context, id int64) (*model.Usuario, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "id is required")
	}
	return s.repo.GetUsuarioByID(ctx, id)
}

// ListarTodos retrieves users with pagination (limit clamped by the store).
func (s *UsuarioService) ListarTodos(ctx context.Context, limit, offset int) ([]model.Usuario, error) {
	usuarios, err := s.repo.ListUsuarios(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error("failed to list usuarios", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing usuarios: %w", err)
	}
	return usuarios, nil
}

// Autenticar verifies an email+password pair and, on success, returns the
// login view: the account's public fields plus a ready-to-use Basic token
// and (when a token service is configured) a short-lived bearer JWT.
//
// The failure outcome is uniform: unknown email and wrong password produce
// the same error, and the unknown-email path still burns one bcrypt
// comparison so the two cases aren't distinguishable by timing either.
func (s *UsuarioService) Autenticar(ctx context.Context, email, senha string) (*model.UsuarioLogin, error) {
	email = strings.TrimSpace(email)

	usuario, err := s.repo.GetUsuarioByEmail(ctx, email)
	if err != nil {
		s.passwords.DummyVerify(senha)
		return nil, apperror.Unauthorized()
	}

	if err := s.passwords.Verify(usuario.Senha, senha); err != nil {
		return nil, apperror.Unauthorized()
	}

	login := &model.UsuarioLogin{
		ID:      usuario.ID,
		Nome:    usuario.Nome,
		Usuario: usuario.Usuario,
		Senha:   usuario.Senha,
		Foto:    usuario.Foto,
		Token:   auth.BasicToken(usuario.Usuario, senha),
	}

	if s.tokens != nil {
		bearer, err := s.tokens.Generate(usuario.ID)
		if err != nil {
			return nil, fmt.Errorf("generating bearer token for usuario %d: %w", usuario.ID, err)
		}
		login.Bearer = "Bearer " + bearer
	}

	s.logger.Info("usuario authenticated", slog.Int64("id", usuario.ID))

	return login, nil
}

// VerificarCredenciais adapts Autenticar to the auth.CredentialVerifier shape
// the middleware wants: credentials in, account id out.
func (s *UsuarioService) VerificarCredenciais(ctx context.Context, email, senha string) (int64, error) {
	login, err := s.Autenticar(ctx, email, senha)
	if err != nil {
		return 0, err
	}
	return login.ID, nil
}

// validarUsuario enforces the field rules shared by Cadastrar and Atualizar.
// Violations are reported before any store interaction.
func validarUsuario(u *model.Usuario) error {
	if u == nil {
		return apperror.ValidationFailed("usuario", "request body is required")
	}
	if strings.TrimSpace(u.Nome) == "" {
		return apperror.ValidationFailed("nome", "nome is required")
	}

	email := strings.TrimSpace(u.Usuario)
	if email == "" {
		return apperror.ValidationFailed("usuario", "usuario (email) is required")
	}
	// net/mail accepts "Name <a@b>" forms too; requiring the parsed address
	// to round-trip rejects anything but a bare address.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return apperror.ValidationFailed("usuario", "usuario must be a valid email address")
	}

	if len(u.Senha) < MinSenhaLength {
		return apperror.ValidationFailed("senha",
			fmt.Sprintf("senha must be at least %d characters", MinSenhaLength))
	}

	return nil
}

// isAppError reports whether err carries a domain error — those are expected
// request outcomes and shouldn't be logged at error level.
func isAppError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr)
}
