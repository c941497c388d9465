package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
)

// galleryUseCase implements GalleryUseCase
type galleryUseCase struct {
	users  ports.UserRepository
	photos ports.PhotoRepository
	logger *slog.Logger
}

// NewGalleryUseCase создаёт Aggregation Engine поверх репозиториев рабочего набора.
func NewGalleryUseCase(users ports.UserRepository, photos ports.PhotoRepository, logger *slog.Logger) GalleryUseCase {
	return &galleryUseCase{users: users, photos: photos, logger: logger}
}

func (uc *galleryUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: list users: %w", err)
	}
	return users, nil
}

func (uc *galleryUseCase) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := uc.users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get user %s: %w", id, err)
	}
	return user, nil
}

func (uc *galleryUseCase) PhotosOfUser(ctx context.Context, id uuid.UUID) ([]domain.Photo, error) {
	exists, err := uc.users.UserExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: probe user %s: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("usecase: user %s: %w", id, domain.ErrNotFound)
	}

	photos, err := uc.photos.PhotosOfUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: photos of user %s: %w", id, err)
	}
	return photos, nil
}

// CommentsAuthoredBy сопоставляет комментарии по id автора, а не по имени:
// разные пользователи могут носить одинаковые имя и фамилию.
func (uc *galleryUseCase) CommentsAuthoredBy(ctx context.Context, id uuid.UUID) ([]domain.AuthoredComment, error) {
	start := time.Now()

	result := make([]domain.AuthoredComment, 0)
	scanned := 0
	err := uc.photos.ScanPhotos(ctx, func(_ domain.User, photos []domain.Photo) error {
		for _, p := range photos {
			scanned += len(p.Comments)
			for _, c := range p.Comments {
				if c.User.ID != id {
					continue
				}
				result = append(result, domain.AuthoredComment{Comment: c, Photo: p.Ref()})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("usecase: scan comments of %s: %w", id, err)
	}

	// порядок просмотра сохраняется для равных времён
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DateTime.Before(result[j].DateTime)
	})

	uc.logger.Debug("comments of user computed",
		"user_id", id,
		"scanned", scanned,
		"matched", len(result),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (uc *galleryUseCase) ActivityCounts(ctx context.Context) (map[uuid.UUID]domain.UserCounts, error) {
	start := time.Now()

	counts := make(map[uuid.UUID]domain.UserCounts)
	authored := make(map[uuid.UUID]int)
	err := uc.photos.ScanPhotos(ctx, func(owner domain.User, photos []domain.Photo) error {
		counts[owner.ID] = domain.UserCounts{PhotoCount: len(photos)}
		for _, p := range photos {
			for _, c := range p.Comments {
				authored[c.User.ID]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("usecase: scan activity: %w", err)
	}

	// авторы, которых нет среди пользователей, в результат не попадают
	for id, n := range authored {
		if c, ok := counts[id]; ok {
			c.CommentCount = n
			counts[id] = c
		}
	}

	uc.logger.Debug("activity counts computed",
		"users", len(counts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return counts, nil
}
