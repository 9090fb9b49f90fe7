package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Jeanine19/BlogPessoal/internal/apperror"
	"github.com/Jeanine19/BlogPessoal/internal/model"
	"github.com/Jeanine19/BlogPessoal/internal/repository"
)

// newTestDB returns a DB backed by an in-memory SQLite database.
// ":memory:" is fast, isolated per test, and destroyed on close.
// t.Helper() makes failures report the caller's line, and t.Cleanup closes
// the database even in subtests.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUsuario creates a user and fails the test if it errors.
// The senha value stands in for a hash — the repository stores whatever the
// service gives it.
func createTestUsuario(t *testing.T, db *DB, nome, email string) *model.Usuario {
	t.Helper()
	u := &model.Usuario{
		Nome:    nome,
		Usuario: email,
		Senha:   "$2a$04$fakehashfakehashfakehashfakehash",
		Foto:    "-",
	}
	if err := db.CreateUsuario(context.Background(), u); err != nil {
		t.Fatalf("failed to create test usuario: %v", err)
	}
	return u
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestUsuarioCreate(t *testing.T) {
	db := newTestDB(t)

	u := createTestUsuario(t, db, "Paulo Antunes", "paulo_antunes@email.com.br")

	// The store assigns the id and writes it back in-place.
	if u.ID <= 0 {
		t.Errorf("CreateUsuario() did not set a positive id, got %d", u.ID)
	}
}

func TestUsuarioCreate_AssignsIncreasingIDs(t *testing.T) {
	db := newTestDB(t)

	first := createTestUsuario(t, db, "Primeiro", "primeiro@email.com.br")
	second := createTestUsuario(t, db, "Segundo", "segundo@email.com.br")

	if second.ID <= first.ID {
		t.Errorf("ids not increasing: first=%d second=%d", first.ID, second.ID)
	}
}

func TestUsuarioCreate_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	createTestUsuario(t, db, "Maria da Silva", "maria_silva@email.com.br")

	duplicate := &model.Usuario{
		Nome:    "Outra Maria",
		Usuario: "maria_silva@email.com.br", // same email
		Senha:   "$2a$04$anotherfakehash",
	}
	err := db.CreateUsuario(context.Background(), duplicate)
	if err == nil {
		t.Fatal("CreateUsuario() should have failed for a duplicate email")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("CreateUsuario() error = %v, want ErrConflict", err)
	}
}

func TestUsuarioCreate_DuplicateEmailConcurrent(t *testing.T) {
	// The UNIQUE constraint — not application code — must arbitrate when two
	// registrations race: exactly one wins, no matter the interleaving.
	db := newTestDB(t)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := &model.Usuario{
				Nome:    "Racer",
				Usuario: "racer@email.com.br",
				Senha:   "$2a$04$fakehash",
			}
			errs[i] = db.CreateUsuario(context.Background(), u)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else if !errors.Is(err, apperror.ErrConflict) {
			t.Errorf("unexpected error kind: %v", err)
		}
	}
	if winners != 1 {
		t.Errorf("exactly one concurrent CreateUsuario() should win, got %d", winners)
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestUsuarioGetByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestUsuario(t, db, "Laura Santolia", "laura_santolia@email.com.br")

	found, err := db.GetUsuarioByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetUsuarioByID() error = %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Nome != "Laura Santolia" {
		t.Errorf("Nome = %q, want %q", found.Nome, "Laura Santolia")
	}
	if found.Usuario != "laura_santolia@email.com.br" {
		t.Errorf("Usuario = %q, want %q", found.Usuario, "laura_santolia@email.com.br")
	}
	if found.Senha != created.Senha {
		t.Errorf("Senha = %q, want stored hash %q", found.Senha, created.Senha)
	}
}

func TestUsuarioGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUsuarioByID(context.Background(), 9999)
	if err == nil {
		t.Fatal("GetUsuarioByID() should fail for a nonexistent id")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUsuarioByID() error = %v, want ErrNotFound", err)
	}
}

func TestUsuarioGetByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestUsuario(t, db, "Marisa Souza", "marisa_souza@email.com.br")

	found, err := db.GetUsuarioByEmail(context.Background(), "marisa_souza@email.com.br")
	if err != nil {
		t.Fatalf("GetUsuarioByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
}

func TestUsuarioGetByEmail_Unknown(t *testing.T) {
	db := newTestDB(t)

	// Deliberately NOT an apperror — the auth path decides what callers see.
	_, err := db.GetUsuarioByEmail(context.Background(), "nobody@email.com.br")
	if err == nil {
		t.Fatal("GetUsuarioByEmail() should fail for an unknown email")
	}
	if errors.Is(err, apperror.ErrNotFound) {
		t.Error("GetUsuarioByEmail() must not surface a domain NotFound for unknown emails")
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestUsuarioUpdate(t *testing.T) {
	db := newTestDB(t)
	created := createTestUsuario(t, db, "Juliana Andrews", "juliana_andrews@email.com.br")

	created.Nome = "Juliana Andrews Ramos"
	created.Usuario = "juliana_ramos@email.com.br"

	if err := db.UpdateUsuario(context.Background(), created); err != nil {
		t.Fatalf("UpdateUsuario() error = %v", err)
	}

	found, err := db.GetUsuarioByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetUsuarioByID() after update error = %v", err)
	}
	if found.Nome != "Juliana Andrews Ramos" {
		t.Errorf("Nome = %q, want updated value", found.Nome)
	}
	if found.Usuario != "juliana_ramos@email.com.br" {
		t.Errorf("Usuario = %q, want updated value", found.Usuario)
	}
}

func TestUsuarioUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	ghost := &model.Usuario{
		ID:      12345,
		Nome:    "Ghost",
		Usuario: "ghost@email.com.br",
		Senha:   "$2a$04$fakehash",
	}
	err := db.UpdateUsuario(context.Background(), ghost)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateUsuario() error = %v, want ErrNotFound", err)
	}
}

func TestUsuarioUpdate_EmailOwnedByAnotherUser(t *testing.T) {
	db := newTestDB(t)

	createTestUsuario(t, db, "Dona do Email", "taken@email.com.br")
	other := createTestUsuario(t, db, "Outra Pessoa", "other@email.com.br")

	other.Usuario = "taken@email.com.br"
	err := db.UpdateUsuario(context.Background(), other)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("UpdateUsuario() error = %v, want ErrConflict", err)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestUsuarioList(t *testing.T) {
	db := newTestDB(t)

	createTestUsuario(t, db, "Sabrina Sanches", "sabrina_sanches@email.com.br")
	createTestUsuario(t, db, "Ricardo Marques", "ricardo_marques@email.com.br")

	usuarios, err := db.ListUsuarios(context.Background(), repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListUsuarios() error = %v", err)
	}
	if len(usuarios) != 2 {
		t.Errorf("ListUsuarios() returned %d usuarios, want 2", len(usuarios))
	}
}

func TestUsuarioList_Pagination(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 5; i++ {
		createTestUsuario(t, db, "Usuario", string(rune('a'+i))+"@email.com.br")
	}

	page, err := db.ListUsuarios(context.Background(), repository.ListOptions{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("ListUsuarios() error = %v", err)
	}
	if len(page) != 2 {
		t.Errorf("ListUsuarios(limit=2, offset=2) returned %d rows, want 2", len(page))
	}
}
