// Package handler contains the HTTP layer: request parsing, response
// writing, and nothing else. Business rules live in internal/service.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Jeanine19/BlogPessoal/internal/model"
	"github.com/Jeanine19/BlogPessoal/internal/service"
)

// UsuarioHandler manages the user endpoints: registration, login, profile
// update and lookup.
type UsuarioHandler struct {
	usuarios *service.UsuarioService
	logger   *slog.Logger
}

// NewUsuarioHandler creates a UsuarioHandler.
func NewUsuarioHandler(usuarios *service.UsuarioService, logger *slog.Logger) *UsuarioHandler {
	return &UsuarioHandler{usuarios: usuarios, logger: logger}
}

// HandleCadastrar registers a new user.
//
// HTTP: POST /usuarios/cadastrar (no auth)
// BODY: {"nome":"Paulo Antunes","usuario":"paulo@email.com.br","senha":"13465278","foto":"-"}
//
// 201 with the stored record on success; 400 for validation failures and
// duplicate emails alike.
func (h *UsuarioHandler) HandleCadastrar(w http.ResponseWriter, r *http.Request) {
	var candidate model.Usuario
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		h.logger.Warn("invalid usuario JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	usuario, err := h.usuarios.Cadastrar(r.Context(), &candidate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, usuario)
}

// HandleAtualizar updates an existing user. The id travels in the body, not
// the path — the route is a fixed PUT /usuarios/atualizar.
//
// HTTP: PUT /usuarios/atualizar (auth required)
func (h *UsuarioHandler) HandleAtualizar(w http.ResponseWriter, r *http.Request) {
	var candidate model.Usuario
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		h.logger.Warn("invalid usuario JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	usuario, err := h.usuarios.Atualizar(r.Context(), &candidate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, usuario)
}

// HandleListar returns all users.
//
// HTTP: GET /usuarios/all (auth required)
// Optional ?limit= and ?offset= query params, clamped server-side.
func (h *UsuarioHandler) HandleListar(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	usuarios, err := h.usuarios.ListarTodos(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, usuarios)
}

// HandleBuscarPorID returns a single user.
//
// HTTP: GET /usuarios/{id} (auth required)
func (h *UsuarioHandler) HandleBuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	usuario, err := h.usuarios.BuscarPorID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, usuario)
}

// HandleLogar authenticates a user.
//
// HTTP: POST /usuarios/logar (no auth)
// BODY: {"usuario":"paulo@email.com.br","senha":"13465278"}
//
// 200 with the login view (tokens included) on success, 401 otherwise —
// the same 401 whether the email is unknown or the password wrong.
func (h *UsuarioHandler) HandleLogar(w http.ResponseWriter, r *http.Request) {
	var creds model.UsuarioLogin
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	login, err := h.usuarios.Autenticar(r.Context(), creds.Usuario, creds.Senha)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, login)
}

// paginationParams reads ?limit= and ?offset=, leaving zero for anything
// absent or malformed — the repository applies the defaults.
func paginationParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
