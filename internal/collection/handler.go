package collection

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"slices"

	"github.com/Vitinho0102/LoginDoGameRate/internal/middleware"
	"github.com/Vitinho0102/LoginDoGameRate/internal/respond"
	"github.com/Vitinho0102/LoginDoGameRate/internal/store"
)

// Store defines the atomic collection mutations. Membership checks live in
// the store-side filters, not here, so two concurrent calls can't race past
// each other.
type Store interface {
	AddToCollection(ctx context.Context, userID, gameID string) ([]string, error)
	RemoveFromCollection(ctx context.Context, userID, gameID string) ([]string, error)
}

// Handler holds the per-user game collection endpoints. All of them sit
// behind the auth middleware.
type Handler struct {
	store Store
}

func NewHandler(s Store) *Handler {
	return &Handler{store: s}
}

type gameRequest struct {
	GameID string `json:"gameId"`
}

// Add appends a game to the user's collection.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	gameID, ok := decodeGameID(w, r)
	if !ok {
		return
	}

	updated, err := h.store.AddToCollection(r.Context(), user.ID.Hex(), gameID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEntry) {
			respond.Error(w, http.StatusBadRequest, "game already in collection")
			return
		}
		log.Printf("collection add error: %v", err)
		respond.Error(w, http.StatusBadRequest, "failed to update collection")
		return
	}
	respond.JSON(w, http.StatusOK, map[string][]string{"collection": updated})
}

// Remove deletes a game from the user's collection.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	gameID, ok := decodeGameID(w, r)
	if !ok {
		return
	}

	updated, err := h.store.RemoveFromCollection(r.Context(), user.ID.Hex(), gameID)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			respond.Error(w, http.StatusBadRequest, "game not found in collection")
			return
		}
		log.Printf("collection remove error: %v", err)
		respond.Error(w, http.StatusBadRequest, "failed to update collection")
		return
	}
	respond.JSON(w, http.StatusOK, map[string][]string{"collection": updated})
}

// Check is a pure membership test against the user resolved by the auth
// middleware; it never touches the store.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	gameID, ok := decodeGameID(w, r)
	if !ok {
		return
	}
	inCollection := slices.Contains(user.Collection, gameID)
	respond.JSON(w, http.StatusOK, map[string]bool{"isInCollection": inCollection})
}

// List returns the full collection in insertion order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	games := user.Collection
	if games == nil {
		games = []string{}
	}
	respond.JSON(w, http.StatusOK, map[string][]string{"collection": games})
}

func decodeGameID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	if req.GameID == "" {
		respond.Error(w, http.StatusBadRequest, "gameId is required")
		return "", false
	}
	return req.GameID, true
}
