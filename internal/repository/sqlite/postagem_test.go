package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jeanine19/BlogPessoal/internal/apperror"
	"github.com/Jeanine19/BlogPessoal/internal/model"
	"github.com/Jeanine19/BlogPessoal/internal/repository"
)

// createTestPostagem creates a post and fails the test if it errors.
func createTestPostagem(t *testing.T, db *DB, titulo, texto string) *model.Postagem {
	t.Helper()
	p := &model.Postagem{Titulo: titulo, Texto: texto}
	if err := db.Create(context.Background(), p); err != nil {
		t.Fatalf("failed to create test postagem: %v", err)
	}
	return p
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestPostagemCreate(t *testing.T) {
	db := newTestDB(t)

	p := &model.Postagem{
		Titulo: "Minha primeira postagem",
		Texto:  "Conteúdo da primeira postagem do blog.",
		// A client-supplied timestamp must be overwritten by the store.
		Data: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	before := time.Now()
	if err := db.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if p.ID <= 0 {
		t.Errorf("Create() did not set a positive id, got %d", p.ID)
	}
	if p.Data.Before(before.Add(-time.Second)) || p.Data.After(time.Now().Add(time.Second)) {
		t.Errorf("Create() Data = %v, want close to now", p.Data)
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestPostagemGetByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestPostagem(t, db, "Titulo de teste", "Texto de teste com conteudo.")

	found, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.Titulo != created.Titulo {
		t.Errorf("Titulo = %q, want %q", found.Titulo, created.Titulo)
	}
	if found.Texto != created.Texto {
		t.Errorf("Texto = %q, want %q", found.Texto, created.Texto)
	}
	// Round-tripping through SQLite must keep the timestamp (within driver
	// precision).
	if found.Data.Unix() != created.Data.Unix() {
		t.Errorf("Data = %v, want %v", found.Data, created.Data)
	}
}

func TestPostagemGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), 404)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestPostagemList(t *testing.T) {
	db := newTestDB(t)

	createTestPostagem(t, db, "Postagem um", "Texto da postagem numero um.")
	createTestPostagem(t, db, "Postagem dois", "Texto da postagem numero dois.")
	createTestPostagem(t, db, "Postagem tres", "Texto da postagem numero tres.")

	postagens, err := db.List(context.Background(), repository.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(postagens) != 3 {
		t.Fatalf("List() returned %d postagens, want 3", len(postagens))
	}
}

func TestPostagemList_Empty(t *testing.T) {
	db := newTestDB(t)

	postagens, err := db.List(context.Background(), repository.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// An empty result is an empty slice, not nil — it serializes as [].
	if postagens == nil {
		t.Error("List() returned nil, want empty slice")
	}
	if len(postagens) != 0 {
		t.Errorf("List() returned %d postagens, want 0", len(postagens))
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestPostagemUpdate_RefreshesData(t *testing.T) {
	db := newTestDB(t)
	created := createTestPostagem(t, db, "Titulo original", "Texto original da postagem.")
	originalData := created.Data

	time.Sleep(10 * time.Millisecond)

	created.Titulo = "Titulo atualizado"
	created.Texto = "Texto atualizado da postagem."
	if err := db.Update(context.Background(), created); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !created.Data.After(originalData) {
		t.Errorf("Update() did not refresh Data: was %v, now %v", originalData, created.Data)
	}

	found, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() after update error = %v", err)
	}
	if found.Titulo != "Titulo atualizado" {
		t.Errorf("Titulo = %q, want updated value", found.Titulo)
	}
}

func TestPostagemUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	ghost := &model.Postagem{ID: 777, Titulo: "Fantasma", Texto: "Nao existe no banco."}
	err := db.Update(context.Background(), ghost)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestPostagemDelete(t *testing.T) {
	db := newTestDB(t)
	created := createTestPostagem(t, db, "Para deletar", "Esta postagem sera removida.")

	if err := db.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := db.GetByID(context.Background(), created.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestPostagemDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Delete(context.Background(), 31337)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
