package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxJSONBody ограничивает тело JSON-запросов (вход, регистрация, комментарий).
const maxJSONBody = 1 << 20

var (
	errInvalidBody = &domain.ValidationError{Field: "body", Message: "Invalid request body"}
	errServerBusy  = errors.New("server busy")
	errTooLarge    = &domain.ValidationError{Field: "uploadedphoto", Message: "File too large"}
)

// SessionGuard — то, что HTTP-слою нужно от Session Guard.
type SessionGuard interface {
	Authenticate(ctx context.Context, loginName, password string) (*domain.User, domain.Session, error)
	Authorize(token string) (uuid.UUID, error)
	Invalidate(token string) error
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithText отправляет короткий текстовый ответ: клиентские ошибки и подтверждения.
func respondWithText(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(message)); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// writeError переводит ошибку в HTTP-ответ. Клиентские ошибки получают
// детерминированный текст, внутренние логируются и скрываются за общим сообщением.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	code, message := classify(err)
	if code == http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		respondWithError(w, code, "Internal server error", logger)
		return
	}

	logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", code, "reason", message)
	respondWithText(w, code, message, logger)
}

func classify(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrDuplicateLogin):
		return http.StatusBadRequest, "login_name already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid login_name or password"
	case errors.Is(err, domain.ErrNotLoggedIn):
		return http.StatusBadRequest, "Not logged in"
	case errors.Is(err, domain.ErrEmptyComment):
		return http.StatusBadRequest, "Comment cannot be empty"
	case errors.Is(err, domain.ErrPhotoNotFound):
		return http.StatusBadRequest, "Photo not found"
	case errors.Is(err, domain.ErrNoFile):
		return http.StatusBadRequest, "No file uploaded"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusBadRequest, "Not found"
	case errors.Is(err, errServerBusy):
		return http.StatusServiceUnavailable, "Server busy"
	default:
		return http.StatusInternalServerError, ""
	}
}

// decodeJSON читает тело запроса в dst. Любая ошибка разбора оборачивается в errInvalidBody.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

// pathUUID разбирает параметр пути. Нераспознанный id считается ненайденной сущностью.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}
