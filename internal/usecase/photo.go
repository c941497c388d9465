package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/snapshot"
	"github.com/google/uuid"
)

// GalleryUseCase — Aggregation Engine: только чтение рабочего набора.
type GalleryUseCase interface {
	// ListUsers возвращает всех пользователей в порядке добавления.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// GetUser возвращает профиль или domain.ErrNotFound.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// PhotosOfUser возвращает фото пользователя в порядке загрузки.
	// Для пользователя без фото возвращает пустой срез, для неизвестного id domain.ErrNotFound.
	PhotosOfUser(ctx context.Context, id uuid.UUID) ([]domain.Photo, error)

	// CommentsAuthoredBy просматривает все фото всех пользователей и возвращает
	// комментарии автора, отсортированные по возрастанию времени (стабильно).
	CommentsAuthoredBy(ctx context.Context, id uuid.UUID) ([]domain.AuthoredComment, error)

	// ActivityCounts за один проход считает число фото и авторских комментариев
	// для каждого известного пользователя.
	ActivityCounts(ctx context.Context) (map[uuid.UUID]domain.UserCounts, error)
}

// PhotoUseCase — мутации рабочего набора: загрузка фото и комментарии.
type PhotoUseCase interface {
	// UploadPhoto сохраняет файл в Blob Store и добавляет фото владельцу-сессии.
	UploadPhoto(ctx context.Context, userID uuid.UUID, file io.Reader, originalName, contentType string) (*domain.Photo, error)

	// AddComment добавляет комментарий к фото от имени пользователя сессии.
	AddComment(ctx context.Context, userID, photoID uuid.UUID, text string) (*domain.Comment, error)
}

// UserUseCase — регистрация и синхронизация пользователей между хранилищами.
type UserUseCase interface {
	// Register создаёт пользователя в Identity Store и делает его видимым в рабочем наборе.
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)

	// SyncSnapshot добавляет в рабочий набор всех пользователей Identity Store.
	SyncSnapshot(ctx context.Context) (int, error)

	// SeedIdentity заводит в Identity Store пользователей фикстуры, которых там ещё нет.
	SeedIdentity(ctx context.Context, f *snapshot.Fixture, password string) (int, error)
}

// RegisterRequest — поля регистрации.
type RegisterRequest struct {
	LoginName   string `json:"login_name" validate:"required,max=64"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"first_name" validate:"required,max=128"`
	LastName    string `json:"last_name" validate:"required,max=128"`
	Location    string `json:"location" validate:"max=256"`
	Description string `json:"description" validate:"max=4096"`
	Occupation  string `json:"occupation" validate:"max=256"`
}
