package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Jeanine19/BlogPessoal/internal/model"
	"github.com/Jeanine19/BlogPessoal/internal/service"
)

// PostagemHandler manages CRUD operations for blog posts. All routes sit
// behind the authentication gate; the handler itself never looks at
// credentials.
type PostagemHandler struct {
	postagens *service.PostagemService
	logger    *slog.Logger
}

// NewPostagemHandler creates a PostagemHandler.
func NewPostagemHandler(postagens *service.PostagemService, logger *slog.Logger) *PostagemHandler {
	return &PostagemHandler{postagens: postagens, logger: logger}
}

// HandleCriar saves a new post.
//
// HTTP: POST /postagens
// BODY: {"titulo":"...","texto":"..."}
//
// Any client-supplied id or data is ignored — the store assigns both.
func (h *PostagemHandler) HandleCriar(w http.ResponseWriter, r *http.Request) {
	var candidate model.Postagem
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		h.logger.Warn("invalid postagem JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	postagem, err := h.postagens.Criar(r.Context(), candidate.Titulo, candidate.Texto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, postagem)
}

// HandleListar returns posts, newest first.
//
// HTTP: GET /postagens
func (h *PostagemHandler) HandleListar(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	postagens, err := h.postagens.ListarTodas(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postagens)
}

// HandleBuscarPorID returns a single post.
//
// HTTP: GET /postagens/{id}
func (h *PostagemHandler) HandleBuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	postagem, err := h.postagens.BuscarPorID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postagem)
}

// HandleAtualizar rewrites an existing post.
//
// HTTP: PUT /postagens/{id}
func (h *PostagemHandler) HandleAtualizar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var candidate model.Postagem
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		h.logger.Warn("invalid postagem JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	postagem, err := h.postagens.Atualizar(r.Context(), id, candidate.Titulo, candidate.Texto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postagem)
}

// HandleDeletar removes a post.
//
// HTTP: DELETE /postagens/{id}
// 204 No Content on success — successful deletion, no body.
func (h *PostagemHandler) HandleDeletar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.postagens.Deletar(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID extracts the {id} path parameter. On a malformed id it writes the
// 400 itself and returns ok=false so the caller can just return.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "id must be an integer", Field: "id"})
		return 0, false
	}
	return id, true
}
