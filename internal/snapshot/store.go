// Package snapshot реализует Snapshot Store: рабочий набор пользователей,
// фотографий и комментариев в памяти процесса.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
)

// Store хранит рабочий набор под одной общей блокировкой.
// Чтения (включая полные проходы агрегаций) берут RLock, мутации берут Lock.
type Store struct {
	mu      sync.RWMutex
	users   []domain.User
	userIdx map[uuid.UUID]int
	photos  map[uuid.UUID][]domain.Photo
	logger  *slog.Logger
}

var (
	_ ports.UserRepository  = (*Store)(nil)
	_ ports.PhotoRepository = (*Store)(nil)
)

// New создаёт пустой Store.
func New(logger *slog.Logger) *Store {
	return &Store{
		userIdx: make(map[uuid.UUID]int),
		photos:  make(map[uuid.UUID][]domain.Photo),
		logger:  logger,
	}
}

// ListUsers возвращает копию списка пользователей в порядке добавления.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

// GetUser возвращает профиль пользователя по id.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.userIdx[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := s.users[i]
	return &u, nil
}

// UserExists проверяет наличие пользователя, не копируя профиль.
func (s *Store) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.userIdx[id]
	return ok, nil
}

// AddUser добавляет пользователя в конец списка. Повторное добавление того же id игнорируется.
func (s *Store) AddUser(ctx context.Context, user domain.User) (bool, error) {
	if user.ID == uuid.Nil {
		return false, fmt.Errorf("snapshot: user id is empty")
	}
	user.PasswordHash = ""

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userIdx[user.ID]; ok {
		return false, nil
	}
	s.userIdx[user.ID] = len(s.users)
	s.users = append(s.users, user)

	s.logger.Debug("snapshot user added", "user_id", user.ID)
	return true, nil
}

// PhotosOfUser возвращает копии фото пользователя в порядке загрузки.
// Для пользователя без фото возвращается пустой (не nil) слайс.
func (s *Store) PhotosOfUser(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.photos[userID]
	photos := make([]domain.Photo, 0, len(src))
	for _, p := range src {
		photos = append(photos, p.Clone())
	}
	return photos, nil
}

// AddPhoto добавляет фото в конец последовательности владельца.
func (s *Store) AddPhoto(ctx context.Context, photo domain.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userIdx[photo.UserID]; !ok {
		return fmt.Errorf("snapshot: owner %s: %w", photo.UserID, domain.ErrNotFound)
	}
	photo = photo.Clone()
	s.photos[photo.UserID] = append(s.photos[photo.UserID], photo)

	s.logger.Debug("snapshot photo added", "photo_id", photo.ID, "user_id", photo.UserID)
	return nil
}

// AppendComment находит фото полным проходом по фото всех пользователей
// и добавляет комментарий в конец его последовательности.
func (s *Store) AppendComment(ctx context.Context, photoID uuid.UUID, comment domain.Comment) (*domain.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		photos := s.photos[u.ID]
		for i := range photos {
			if photos[i].ID != photoID {
				continue
			}
			photos[i].Comments = append(photos[i].Comments, comment)
			updated := photos[i].Clone()

			s.logger.Debug("snapshot comment appended",
				"photo_id", photoID,
				"comment_id", comment.ID,
				"comments", len(updated.Comments),
			)
			return &updated, nil
		}
	}
	return nil, domain.ErrPhotoNotFound
}

// ScanPhotos проходит по всем пользователям в порядке списка под одной RLock.
// Ошибка fn прерывает проход и возвращается вызывающему.
func (s *Store) ScanPhotos(ctx context.Context, fn func(owner domain.User, photos []domain.Photo) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(u, s.photos[u.ID]); err != nil {
			return err
		}
	}
	return nil
}

// Stats возвращает размеры рабочего набора (пользователи, фото, комментарии).
func (s *Store) Stats() (users, photos, comments int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ps := range s.photos {
		photos += len(ps)
		for _, p := range ps {
			comments += len(p.Comments)
		}
	}
	return len(s.users), photos, comments
}
