package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/PhotoShare/internal/usecase"
)

// UserHandler — пользователи и агрегированная активность.
type UserHandler struct {
	gallery usecase.GalleryUseCase
	users   usecase.UserUseCase
	logger  *slog.Logger
}

func NewUserHandler(gallery usecase.GalleryUseCase, users usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{gallery: gallery, users: users, logger: logger}
}

// ListUsers обрабатывает GET /user/list.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.gallery.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserList(users), h.logger)
}

// GetUser обрабатывает GET /user/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	user, err := h.gallery.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserDetail(user), h.logger)
}

// Register обрабатывает POST /user. Сессию не создаёт.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usecase.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, toAccount(user), h.logger)
}

// Counts обрабатывает GET /counts.
func (h *UserHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.gallery.ActivityCounts(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, toCounts(counts), h.logger)
}
