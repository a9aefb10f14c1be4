package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Vitinho0102/LoginDoGameRate/internal/respond"
)

const defaultTopLimit = 5

// Handler serves the game catalogue over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns the full catalogue snapshot.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.Games())
}

// Get returns a single game by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	game, ok := h.svc.GameByID(id)
	if !ok {
		respond.Error(w, http.StatusNotFound, "game not found")
		return
	}
	respond.JSON(w, http.StatusOK, game)
}

// Top returns the highest-rated games, ?limit=N, default 5.
func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	respond.JSON(w, http.StatusOK, h.svc.Top(limit))
}
