package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Jeanine19/BlogPessoal/internal/apperror"
	"github.com/Jeanine19/BlogPessoal/internal/model"
	"github.com/Jeanine19/BlogPessoal/internal/repository"
)

// compile-time check that *DB implements repository.PostagemRepository
var _ repository.PostagemRepository = (*DB)(nil)

// Create inserts a new post. The store assigns the id; Data is stamped with
// the current time here so the persisted value never comes from the client.
func (db *DB) Create(ctx context.Context, postagem *model.Postagem) error {
	postagem.Data = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO tb_postagens (titulo, texto, data)
		 VALUES (?, ?, ?)`,
		postagem.Titulo,
		postagem.Texto,
		postagem.Data,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating postagem: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading postagem id: %w", err)
	}
	postagem.ID = id

	return nil
}

// GetByID retrieves a single post by its id.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Postagem, error) {
	var p model.Postagem

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, titulo, texto, data
		 FROM tb_postagens
		 WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Titulo, &p.Texto, &p.Data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("postagem", id)
		}
		return nil, fmt.Errorf("sqlite: getting postagem %d: %w", id, err)
	}

	return &p, nil
}

// List retrieves posts newest-first, with pagination.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.Postagem, error) {
	limit, offset := clampListOptions(opts)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, titulo, texto, data
		 FROM tb_postagens
		 ORDER BY data DESC, id DESC
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing postagens: %w", err)
	}
	// Always close rows — they hold a pool connection until then.
	defer rows.Close()

	postagens := make([]model.Postagem, 0, limit)
	for rows.Next() {
		var p model.Postagem
		if err := rows.Scan(&p.ID, &p.Titulo, &p.Texto, &p.Data); err != nil {
			return nil, fmt.Errorf("sqlite: scanning postagem row: %w", err)
		}
		postagens = append(postagens, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating postagens: %w", err)
	}

	return postagens, nil
}

// Update rewrites titulo and texto and refreshes data to the current time.
// The id is immutable. RowsAffected == 0 means the post doesn't exist.
func (db *DB) Update(ctx context.Context, postagem *model.Postagem) error {
	postagem.Data = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE tb_postagens
		 SET titulo = ?, texto = ?, data = ?
		 WHERE id = ?`,
		postagem.Titulo,
		postagem.Texto,
		postagem.Data,
		postagem.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating postagem %d: %w", postagem.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("postagem", postagem.ID)
	}

	return nil
}

// Delete removes a post by id.
// Same pattern as Update — RowsAffected detects "not found".
func (db *DB) Delete(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM tb_postagens WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting postagem %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("postagem", id)
	}

	return nil
}
