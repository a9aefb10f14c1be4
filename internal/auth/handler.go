package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vitinho0102/LoginDoGameRate/internal/middleware"
	"github.com/Vitinho0102/LoginDoGameRate/internal/models"
	"github.com/Vitinho0102/LoginDoGameRate/internal/respond"
	"github.com/Vitinho0102/LoginDoGameRate/internal/store"
)

const maxAvatarBytes = 5 << 20

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	SetProfileImage(ctx context.Context, id, url string) error
}

// AvatarStore defines the interface for profile image storage.
type AvatarStore interface {
	Upload(ctx context.Context, userID string, data []byte, contentType string) error
	Download(ctx context.Context, userID string) ([]byte, string, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users   UserStore
	avatars AvatarStore
	tokens  *TokenCodec
}

func NewHandler(users UserStore, avatars AvatarStore, tokens *TokenCodec) *Handler {
	return &Handler{users: users, avatars: avatars, tokens: tokens}
}

// Register creates a new user and returns its profile plus a fresh token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	username := normalize(req.Username)
	email := normalize(req.Email)
	if username == "" || email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username, email, and password are required")
		return
	}

	// Email is checked before username; the order is part of the contract.
	if h.exists(r.Context(), email, h.users.GetUserByEmail) {
		respond.Error(w, http.StatusBadRequest, "email already registered")
		return
	}
	if h.exists(r.Context(), username, h.users.GetUserByUsername) {
		respond.Error(w, http.StatusBadRequest, "username already taken")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to hash password")
		return
	}

	user := &models.User{
		Username:   username,
		Email:      email,
		Password:   string(hashed),
		Collection: []string{},
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		log.Printf("create user error: %v", err)
		respond.Error(w, http.StatusBadRequest, "failed to create user")
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to issue token")
		return
	}

	respond.JSON(w, http.StatusCreated, models.AuthResponse{
		Username:     user.Username,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
		Token:        token,
	})
}

// Login authenticates by email/password and returns a fresh token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), normalize(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "user not found")
			return
		}
		log.Printf("login lookup error: %v", err)
		respond.Error(w, http.StatusBadRequest, "failed to fetch user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "incorrect password")
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to issue token")
		return
	}

	respond.JSON(w, http.StatusOK, models.AuthResponse{
		Username:     user.Username,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
		Token:        token,
	})
}

// Me returns the authenticated user's public profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	respond.JSON(w, http.StatusOK, user.Profile())
}

// CheckEmail reports whether an email is already registered. Absence is a
// valid answer, never an error.
func (h *Handler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	exists := h.exists(r.Context(), normalize(req.Email), h.users.GetUserByEmail)
	respond.JSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// CheckUsername reports whether a username is already taken.
func (h *Handler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	exists := h.exists(r.Context(), normalize(req.Username), h.users.GetUserByUsername)
	respond.JSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// UploadAvatar stores a profile image for the authenticated user and points
// profileImage at the public avatar route.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to read image")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		respond.Error(w, http.StatusBadRequest, "file must be an image")
		return
	}

	id := user.ID.Hex()
	if err := h.avatars.Upload(r.Context(), id, data, contentType); err != nil {
		log.Printf("avatar upload error: %v", err)
		respond.Error(w, http.StatusBadRequest, "failed to store image")
		return
	}

	url := "/avatars/" + id
	if err := h.users.SetProfileImage(r.Context(), id, url); err != nil {
		log.Printf("set profile image error: %v", err)
		respond.Error(w, http.StatusBadRequest, "failed to update profile")
		return
	}

	user.ProfileImage = &url
	respond.JSON(w, http.StatusOK, user.Profile())
}

// Avatar streams a stored profile image.
func (h *Handler) Avatar(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	data, contentType, err := h.avatars.Download(r.Context(), userID)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "avatar not found")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

func (h *Handler) exists(ctx context.Context, key string, lookup func(context.Context, string) (*models.User, error)) bool {
	u, err := lookup(ctx, key)
	return err == nil && u != nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
