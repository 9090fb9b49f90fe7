// Package repository defines the storage interfaces the service layer depends
// on. Concrete implementations live in subpackages (sqlite). Services are
// written against these interfaces, so storage can be swapped (or faked in
// tests) without touching business logic.
package repository

import (
	"context"

	"github.com/Jeanine19/BlogPessoal/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

// UsuarioRepository is durable storage for user accounts.
//
// CreateUsuario must enforce email uniqueness at the store level — two
// concurrent registrations with the same email must not both succeed, so an
// application-level "check then insert" is not enough.
//
// The method names carry the entity: both repositories are implemented by the
// same sqlite type, and the post repository owns the plain CRUD names.
type UsuarioRepository interface {
	CreateUsuario(ctx context.Context, usuario *model.Usuario) error
	UpdateUsuario(ctx context.Context, usuario *model.Usuario) error
	GetUsuarioByID(ctx context.Context, id int64) (*model.Usuario, error)
	GetUsuarioByEmail(ctx context.Context, email string) (*model.Usuario, error)
	ListUsuarios(ctx context.Context, opts ListOptions) ([]model.Usuario, error)
}

type PostagemRepository interface {
	Create(ctx context.Context, postagem *model.Postagem) error
	GetByID(ctx context.Context, id int64) (*model.Postagem, error)
	List(ctx context.Context, opts ListOptions) ([]model.Postagem, error)
	Update(ctx context.Context, postagem *model.Postagem) error
	Delete(ctx context.Context, id int64) error
}
