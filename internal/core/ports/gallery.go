package ports

import (
	"context"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
)

// UserRepository — таблица пользователей рабочего набора (Snapshot Store).
// Хранит только профильные поля, без секретов.
type UserRepository interface {
	// ListUsers возвращает пользователей в порядке добавления.
	ListUsers(ctx context.Context) ([]domain.User, error)
	// GetUser возвращает domain.ErrNotFound, если пользователя нет.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	// AddUser добавляет пользователя, если его id ещё не известен. Возвращает true при добавлении.
	AddUser(ctx context.Context, user domain.User) (bool, error)
}

// PhotoRepository — фотографии и комментарии рабочего набора.
type PhotoRepository interface {
	// PhotosOfUser возвращает фото владельца в порядке загрузки.
	PhotosOfUser(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error)
	// AddPhoto возвращает domain.ErrNotFound, если владелец фото неизвестен.
	AddPhoto(ctx context.Context, photo domain.Photo) error
	// AppendComment ищет фото полным просмотром и добавляет комментарий в конец.
	// Возвращает domain.ErrPhotoNotFound, если фото не найдено.
	AppendComment(ctx context.Context, photoID uuid.UUID, comment domain.Comment) (*domain.Photo, error)
	// ScanPhotos вызывает fn для каждого пользователя в порядке списка вместе с его фото.
	// Весь проход выполняется над согласованным состоянием. fn не должна сохранять
	// или изменять переданные слайсы.
	ScanPhotos(ctx context.Context, fn func(owner domain.User, photos []domain.Photo) error) error
}
