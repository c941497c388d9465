// Package auth реализует Session Guard: вход по login_name и паролю,
// проверку сессии каждого запроса и выход.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
)

// Guard сопоставляет запросы с аутентифицированными пользователями.
type Guard struct {
	users    ports.UserStorage
	sessions *SessionStore
	logger   *slog.Logger
}

// NewGuard создаёт Guard поверх Identity Store и таблицы сессий.
func NewGuard(users ports.UserStorage, sessions *SessionStore, logger *slog.Logger) *Guard {
	return &Guard{users: users, sessions: sessions, logger: logger}
}

// Authenticate проверяет login_name (точное совпадение с учётом регистра) и пароль
// и при успехе заводит новую сессию.
func (g *Guard) Authenticate(ctx context.Context, loginName, password string) (*domain.User, domain.Session, error) {
	if loginName == "" {
		return nil, domain.Session{}, domain.MissingField("login_name")
	}
	if password == "" {
		return nil, domain.Session{}, domain.MissingField("password")
	}

	user, err := g.users.FindUserByLoginName(ctx, loginName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			g.logger.Warn("login rejected", "login_name", loginName, "reason", "unknown login")
			return nil, domain.Session{}, domain.ErrInvalidCredentials
		}
		return nil, domain.Session{}, fmt.Errorf("auth: find user %q: %w", loginName, err)
	}

	ok, err := CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, domain.Session{}, fmt.Errorf("auth: check password for %q: %w", loginName, err)
	}
	if !ok {
		g.logger.Warn("login rejected", "login_name", loginName, "reason", "password mismatch")
		return nil, domain.Session{}, domain.ErrInvalidCredentials
	}

	sess := g.sessions.Create(user.ID)
	g.logger.Info("session created", "user_id", user.ID)
	return user, sess, nil
}

// Authorize возвращает id пользователя, которому принадлежит токен.
func (g *Guard) Authorize(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, domain.ErrUnauthorized
	}
	sess, ok := g.sessions.Get(token)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return sess.UserID, nil
}

// Invalidate уничтожает сессию.
func (g *Guard) Invalidate(token string) error {
	if token == "" || !g.sessions.Delete(token) {
		return domain.ErrNotLoggedIn
	}
	g.logger.Info("session destroyed")
	return nil
}

// ActiveSessions возвращает число действующих сессий.
func (g *Guard) ActiveSessions() int {
	return g.sessions.Len()
}
