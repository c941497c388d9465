package handler

import (
	"log/slog"
	"net/http"
	"time"
)

// AdminHandler — вход и выход.
type AdminHandler struct {
	guard        SessionGuard
	cookieName   string
	sessionTTL   time.Duration
	secureCookie bool
	logger       *slog.Logger
}

func NewAdminHandler(guard SessionGuard, cookieName string, sessionTTL time.Duration, secureCookie bool, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		guard:        guard,
		cookieName:   cookieName,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

type loginRequest struct {
	LoginName string `json:"login_name"`
	Password  string `json:"password"`
}

// Login обрабатывает POST /admin/login. При успехе выдаёт cookie сессии.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	user, sess, err := h.guard.Authenticate(r.Context(), req.LoginName, req.Password)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if !sess.ExpiresAt.IsZero() {
		cookie.Expires = sess.ExpiresAt
		cookie.MaxAge = int(h.sessionTTL.Seconds())
	}
	http.SetCookie(w, cookie)

	h.logger.Info("user logged in", "user_id", user.ID)
	respondWithJSON(w, http.StatusOK, toAccount(user), h.logger)
}

// Logout обрабатывает POST /admin/logout. Без действующей сессии отвечает 400 "Not logged in".
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.guard.Invalidate(sessionToken(r, h.cookieName)); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	respondWithText(w, http.StatusOK, "Logged out", h.logger)
}
