package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Jeanine19/BlogPessoal/internal/apperror"
	"github.com/Jeanine19/BlogPessoal/internal/model"
	"github.com/Jeanine19/BlogPessoal/internal/repository"
)

// Field bounds for posts. Counted in characters (runes), not bytes — a title
// full of accented characters shouldn't hit the limit early.
const (
	MinTituloLength = 5
	MaxTituloLength = 100
	MinTextoLength  = 10
	MaxTextoLength  = 1000
)

// PostagemService handles business logic for blog posts.
type PostagemService struct {
	repo   repository.PostagemRepository
	logger *slog.Logger
}

// NewPostagemService creates a PostagemService.
func NewPostagemService(repo repository.PostagemRepository, logger *slog.Logger) *PostagemService {
	return &PostagemService{
		repo:   repo,
		logger: logger,
	}
}

// Criar validates and saves a new post.
//
// Length violations are rejected outright — never truncated — and checked
// before the repository is touched. The data timestamp is assigned by the
// repository at write time; any client-supplied value is discarded.
func (s *PostagemService) Criar(ctx context.Context, titulo, texto string) (*model.Postagem, error) {
	titulo = strings.TrimSpace(titulo)
	texto = strings.TrimSpace(texto)

	if err := validarPostagem(titulo, texto); err != nil {
		return nil, err
	}

	postagem := &model.Postagem{
		Titulo: titulo,
		Texto:  texto,
	}

	if err := s.repo.Create(ctx, postagem); err != nil {
		s.logger.Error("failed to create postagem",
			slog.String("titulo", titulo),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating postagem: %w", err)
	}

	s.logger.Info("postagem created",
		slog.Int64("id", postagem.ID),
		slog.String("titulo", postagem.Titulo),
	)

	return postagem, nil
}

// BuscarPorID retrieves a post by its id.
// Returns apperror.ErrNotFound if the post doesn't exist.
func (s *PostagemService) BuscarPorID(ctx context.Context, id int64) (*model.Postagem, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// ListarTodas retrieves posts with pagination, newest first.
func (s *PostagemService) ListarTodas(ctx context.Context, limit, offset int) ([]model.Postagem, error) {
	postagens, err := s.repo.List(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error("failed to list postagens", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing postagens: %w", err)
	}
	return postagens, nil
}

// Atualizar rewrites an existing post's titulo and texto. The repository
// refreshes data to the current time and reports NotFound for a missing id.
func (s *PostagemService) Atualizar(ctx context.Context, id int64, titulo, texto string) (*model.Postagem, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "id is required")
	}

	titulo = strings.TrimSpace(titulo)
	texto = strings.TrimSpace(texto)

	if err := validarPostagem(titulo, texto); err != nil {
		return nil, err
	}

	postagem := &model.Postagem{
		ID:     id,
		Titulo: titulo,
		Texto:  texto,
	}

	if err := s.repo.Update(ctx, postagem); err != nil {
		if !isAppError(err) {
			s.logger.Error("failed to update postagem",
				slog.Int64("id", id),
				slog.String("error", err.Error()),
			)
		}
		return nil, fmt.Errorf("updating postagem: %w", err)
	}

	s.logger.Info("postagem updated", slog.Int64("id", postagem.ID))

	return postagem, nil
}

// Deletar removes a post by its id.
// Returns apperror.ErrNotFound if the post doesn't exist.
func (s *PostagemService) Deletar(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("postagem deleted", slog.Int64("id", id))
	return nil
}

// validarPostagem enforces the titulo/texto bounds.
func validarPostagem(titulo, texto string) error {
	if titulo == "" {
		return apperror.ValidationFailed("titulo", "titulo is required")
	}
	if n := utf8.RuneCountInString(titulo); n < MinTituloLength || n > MaxTituloLength {
		return apperror.ValidationFailed("titulo",
			fmt.Sprintf("titulo must be between %d and %d characters", MinTituloLength, MaxTituloLength))
	}

	if texto == "" {
		return apperror.ValidationFailed("texto", "texto is required")
	}
	if n := utf8.RuneCountInString(texto); n < MinTextoLength || n > MaxTextoLength {
		return apperror.ValidationFailed("texto",
			fmt.Sprintf("texto must be between %d and %d characters", MinTextoLength, MaxTextoLength))
	}

	return nil
}
