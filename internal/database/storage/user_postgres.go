package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const userColumns = `id, login_name, password_hash, first_name, last_name, location, description, occupation, created_at`

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ ports.UserStorage = (*UserStorage)(nil)

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// FindUserByLoginName ищет пользователя по login_name с учётом регистра.
func (s *UserStorage) FindUserByLoginName(ctx context.Context, loginName string) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE login_name = $1`, loginName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to select user by login_name", "login_name", loginName, "error", err)
		return nil, fmt.Errorf("select user by login_name: %w", err)
	}

	s.logger.Debug("user found by login_name",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// FindUserByID получает пользователя по id
func (s *UserStorage) FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to select user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("select user %s: %w", id, err)
	}
	return &user, nil
}

// InsertUser сохраняет нового пользователя. Для занятого login_name возвращает domain.ErrDuplicateLogin.
func (s *UserStorage) InsertUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (:id, :login_name, :password_hash, :first_name, :last_name, :location, :description, :occupation, :created_at)
	`, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateLogin
		}
		s.logger.Error("failed to insert user", "login_name", user.LoginName, "error", err)
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user inserted",
		"user_id", user.ID,
		"login_name", user.LoginName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListUsers возвращает всех пользователей в порядке регистрации.
func (s *UserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	users := make([]domain.User, 0)
	if err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`); err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	s.logger.Debug("users listed",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}
