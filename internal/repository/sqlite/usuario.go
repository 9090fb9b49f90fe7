package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jeanine19/BlogPessoal/internal/apperror"
	"github.com/Jeanine19/BlogPessoal/internal/model"
	"github.com/Jeanine19/BlogPessoal/internal/repository"
)

// Compile-time check that *DB implements repository.UsuarioRepository.
// `var _ X = (*Y)(nil)` assigns a nil *Y to an X — if *Y is missing a
// method, the compiler errors here instead of at some distant call site.
var _ repository.UsuarioRepository = (*DB)(nil)

// CreateUsuario inserts a new user. The id is assigned by SQLite's AUTOINCREMENT
// and written back into usuario.ID via LastInsertId.
//
// A duplicate email surfaces as a UNIQUE constraint violation here — not as
// an application-level check — so two concurrent registrations with the same
// address can never both succeed. The violation is translated to
// apperror.DuplicateEmail so the handler can map it to the right status.
func (db *DB) CreateUsuario(ctx context.Context, usuario *model.Usuario) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO tb_usuarios (nome, usuario, senha, foto)
		 VALUES (?, ?, ?, ?)`,
		usuario.Nome,
		usuario.Usuario,
		usuario.Senha,
		usuario.Foto,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return apperror.DuplicateEmail(usuario.Usuario)
		}
		return fmt.Errorf("sqlite: creating usuario: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading usuario id: %w", err)
	}
	usuario.ID = id

	return nil
}

// UpdateUsuario rewrites all mutable fields of an existing user.
//
// RowsAffected distinguishes "no such id" (→ NotFound) from a successful
// write; a UNIQUE violation means the new email is owned by another row.
func (db *DB) UpdateUsuario(ctx context.Context, usuario *model.Usuario) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE tb_usuarios
		 SET nome = ?, usuario = ?, senha = ?, foto = ?
		 WHERE id = ?`,
		usuario.Nome,
		usuario.Usuario,
		usuario.Senha,
		usuario.Foto,
		usuario.ID,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return apperror.DuplicateEmail(usuario.Usuario)
		}
		return fmt.Errorf("sqlite: updating usuario %d: %w", usuario.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("usuario", usuario.ID)
	}

	return nil
}

// GetUsuarioByID retrieves a user by id.
// Returns apperror.ErrNotFound if no user exists with that id.
func (db *DB) GetUsuarioByID(ctx context.Context, id int64) (*model.Usuario, error) {
	var u model.Usuario

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, nome, usuario, senha, foto
		 FROM tb_usuarios WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Nome, &u.Usuario, &u.Senha, &u.Foto)
	if err != nil {
		// sql.ErrNoRows is a sentinel, not a real failure — translate it to
		// the domain's NotFound so the handler knows to return 404.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("usuario", id)
		}
		return nil, fmt.Errorf("sqlite: getting usuario %d: %w", id, err)
	}

	return &u, nil
}

// GetUsuarioByEmail retrieves a user by their email address (the usuario column).
//
// The caller — the authentication path — must not leak whether the address
// exists, so the "not found" return here is a plain sql.ErrNoRows wrap, not
// an apperror. The service decides what the caller gets to see.
func (db *DB) GetUsuarioByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, nome, usuario, senha, foto
		 FROM tb_usuarios WHERE usuario = ?`,
		email,
	).Scan(&u.ID, &u.Nome, &u.Usuario, &u.Senha, &u.Foto)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sqlite: usuario %q: %w", email, sql.ErrNoRows)
		}
		return nil, fmt.Errorf("sqlite: getting usuario by email: %w", err)
	}

	return &u, nil
}

// ListUsuarios retrieves users ordered by id, with pagination.
func (db *DB) ListUsuarios(ctx context.Context, opts repository.ListOptions) ([]model.Usuario, error) {
	limit, offset := clampListOptions(opts)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, nome, usuario, senha, foto
		 FROM tb_usuarios
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing usuarios: %w", err)
	}
	defer rows.Close()

	usuarios := make([]model.Usuario, 0, limit)
	for rows.Next() {
		var u model.Usuario
		if err := rows.Scan(&u.ID, &u.Nome, &u.Usuario, &u.Senha, &u.Foto); err != nil {
			return nil, fmt.Errorf("sqlite: scanning usuario row: %w", err)
		}
		usuarios = append(usuarios, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating usuarios: %w", err)
	}

	return usuarios, nil
}

// clampListOptions applies the shared pagination defaults: at most 100 rows
// per page, 20 if unspecified, offset never negative.
func clampListOptions(opts repository.ListOptions) (limit, offset int) {
	limit = opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset = opts.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
