package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey int

const userIDKey ctxKey = iota

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			}
			if id, ok := UserIDFromContext(r.Context()); ok {
				attrs = append(attrs, "user_id", id)
			}
			logger.Info("http request", attrs...)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// SessionGate — единая проверка сессии до маршрутизации. Запросы вне allow-list
// без действующей сессии получают 401; для остальных id пользователя кладётся в контекст.
func SessionGate(guard SessionGuard, cookieName string, public map[string]bool, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public[r.Method+" "+r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token := sessionToken(r, cookieName)
			userID, err := guard.Authorize(token)
			if err != nil {
				writeError(w, r, domain.ErrUnauthorized, logger)
				return
			}

			// слот из withUserSlot виден и RequestLogger снаружи gate
			if slot, ok := r.Context().Value(userIDKey).(*uuid.UUID); ok {
				*slot = userID
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, &userID)))
		})
	}
}

// withUserSlot готовит в контексте место под id пользователя, которое заполнит SessionGate.
func withUserSlot(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id uuid.UUID
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, &id)))
	})
}

// UserIDFromContext возвращает id пользователя текущей сессии.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(*uuid.UUID)
	if !ok || id == nil || *id == uuid.Nil {
		return uuid.Nil, false
	}
	return *id, true
}

func sessionToken(r *http.Request, cookieName string) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
