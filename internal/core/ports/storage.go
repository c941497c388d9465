package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
)

// UserStorage — Identity Store: долговременное хранилище учётных данных и профилей.
// Методы поиска возвращают domain.ErrNotFound, если пользователь не найден.
type UserStorage interface {
	FindUserByLoginName(ctx context.Context, loginName string) (*domain.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// InsertUser возвращает domain.ErrDuplicateLogin, если login_name уже занят.
	InsertUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// FileStorage — Blob Store для байтов загруженных изображений.
// Ключи плоские: без подкаталогов и адресации по содержимому.
type FileStorage interface {
	// UploadFile сохраняет содержимое reader под именем key и возвращает итоговое имя файла.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// GetFile открывает сохранённый файл. Возвращает domain.ErrNotFound, если файла нет.
	GetFile(ctx context.Context, key string) (io.ReadCloser, error)
}
