package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ ports.UserStorage = (*GormUserStorage)(nil)

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

func (s *GormUserStorage) FindUserByLoginName(ctx context.Context, loginName string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("login_name = ?", loginName).Take(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя по login_name с GORM: %w", result.Error)
	}
	return &user, nil
}

func (s *GormUserStorage) FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("id = ?", id).Take(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя %s с GORM: %w", id, result.Error)
	}
	return &user, nil
}

func (s *GormUserStorage) InsertUser(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	result := s.db.WithContext(ctx).Create(user)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateLogin
	}
	if result.Error != nil {
		return fmt.Errorf("ошибка при создании пользователя с GORM: %w", result.Error)
	}

	s.logger.Info("user inserted", "user_id", user.ID, "login_name", user.LoginName, "driver", "gorm")
	return nil
}

func (s *GormUserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	result := s.db.WithContext(ctx).Order("created_at, id").Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей с GORM: %w", result.Error)
	}
	return users, nil
}
