package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"
	"github.com/google/uuid"
)

// photoUseCase implements PhotoUseCase
type photoUseCase struct {
	users       ports.UserRepository
	photos      ports.PhotoRepository
	identity    ports.UserStorage
	fileStorage ports.FileStorage
	publisher   ports.ActivityPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewPhotoUseCase создает новый экземпляр PhotoUseCase
func NewPhotoUseCase(
	users ports.UserRepository,
	photos ports.PhotoRepository,
	identity ports.UserStorage,
	fileStorage ports.FileStorage,
	publisher ports.ActivityPublisher,
	logger *slog.Logger,
) PhotoUseCase {
	return &photoUseCase{
		users:       users,
		photos:      photos,
		identity:    identity,
		fileStorage: fileStorage,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// UploadPhoto сохраняет файл и добавляет фото в рабочий набор.
// Имя файла строится из метки времени и исходного имени; уникальность не проверяется.
func (uc *photoUseCase) UploadPhoto(ctx context.Context, userID uuid.UUID, file io.Reader, originalName, contentType string) (*domain.Photo, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if file == nil {
		return nil, domain.ErrNoFile
	}

	if err := uc.ensureOwner(ctx, userID); err != nil {
		return nil, err
	}

	now := uc.now()
	key := fileName(now, originalName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stored, err := uc.fileStorage.UploadFile(ctx, key, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("usecase: store blob %s: %w", key, err)
	}

	photo := domain.Photo{
		ID:       uuid.New(),
		UserID:   userID,
		FileName: stored,
		DateTime: now,
		Comments: []domain.Comment{},
	}
	if err := uc.photos.AddPhoto(ctx, photo); err != nil {
		// файл уже записан и остаётся в Blob Store без ссылки на него
		uc.logger.Error("photo not added, blob left orphaned",
			"photo_id", photo.ID,
			"user_id", userID,
			"file_name", stored,
			"error", err,
		)
		return nil, fmt.Errorf("usecase: add photo %s: %w", photo.ID, err)
	}

	uc.logger.Info("photo uploaded", "photo_id", photo.ID, "user_id", userID, "file_name", stored)
	uc.publish(ctx, payloads.ActivityPayload{
		Kind:    domain.ActivityPhotoUploaded,
		UserID:  userID,
		PhotoID: photo.ID,
		At:      now,
	})
	return &photo, nil
}

// AddComment добавляет комментарий. Имя автора копируется в комментарий в момент создания;
// если автора не удалось найти, используется заглушка, запись при этом не падает.
func (uc *photoUseCase) AddComment(ctx context.Context, userID, photoID uuid.UUID, text string) (*domain.Comment, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyComment
	}

	now := uc.now()
	comment := domain.Comment{
		ID:       uuid.New(),
		Comment:  text,
		DateTime: now,
		User:     uc.resolveAuthor(ctx, userID),
	}

	if _, err := uc.photos.AppendComment(ctx, photoID, comment); err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("usecase: append comment to %s: %w", photoID, err)
	}

	uc.logger.Info("comment added", "comment_id", comment.ID, "photo_id", photoID, "user_id", userID)
	uc.publish(ctx, payloads.ActivityPayload{
		Kind:      domain.ActivityCommentAdded,
		UserID:    userID,
		PhotoID:   photoID,
		CommentID: comment.ID,
		At:        now,
	})
	return &comment, nil
}

// resolveAuthor: рабочий набор, затем Identity Store, затем заглушка.
func (uc *photoUseCase) resolveAuthor(ctx context.Context, userID uuid.UUID) domain.CommentAuthor {
	if u, err := uc.users.GetUser(ctx, userID); err == nil {
		return u.Author()
	}

	u, err := uc.identity.FindUserByID(ctx, userID)
	if err == nil {
		return u.Author()
	}

	uc.logger.Warn("comment author not resolved, using placeholder", "user_id", userID, "error", err)
	return domain.UnknownAuthor(userID)
}

// ensureOwner гарантирует, что владелец фото присутствует в рабочем наборе.
// Пользователь мог быть зарегистрирован после загрузки рабочего набора другим процессом.
func (uc *photoUseCase) ensureOwner(ctx context.Context, userID uuid.UUID) error {
	exists, err := uc.users.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("usecase: probe owner %s: %w", userID, err)
	}
	if exists {
		return nil
	}

	u, err := uc.identity.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("usecase: find owner %s: %w", userID, err)
	}
	if _, err := uc.users.AddUser(ctx, *u); err != nil {
		return fmt.Errorf("usecase: add owner %s: %w", userID, err)
	}
	return nil
}

func (uc *photoUseCase) publish(ctx context.Context, payload payloads.ActivityPayload) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishActivity(ctx, payload); err != nil {
		uc.logger.Warn("failed to publish activity", "kind", payload.Kind, "photo_id", payload.PhotoID, "error", err)
	}
}

// fileName строит имя файла вида U<unix-millis>_<исходное имя>.
func fileName(now time.Time, originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("U%d_%s", now.UnixMilli(), base)
}
