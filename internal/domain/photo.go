package domain

import (
	"time"

	"github.com/google/uuid"
)

// Photo представляет загруженную фотографию вместе с её комментариями.
// Комментарии хранятся внутри фото в порядке добавления.
type Photo struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	FileName string    `json:"file_name"`
	DateTime time.Time `json:"date_time"`
	Comments []Comment `json:"comments"`
}

// Ref возвращает краткую ссылку на фото.
func (p Photo) Ref() PhotoRef {
	return PhotoRef{ID: p.ID, UserID: p.UserID, FileName: p.FileName}
}

// Clone возвращает копию фото, не разделяющую слайс комментариев с оригиналом.
func (p Photo) Clone() Photo {
	c := p
	c.Comments = make([]Comment, len(p.Comments))
	copy(c.Comments, p.Comments)
	return c
}

// PhotoRef — минимальная информация о фото для обратных выборок.
type PhotoRef struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	FileName string    `json:"file_name"`
}

// Comment — комментарий к фото.
// User содержит снимок имени автора на момент создания, а не живую ссылку:
// последующие изменения профиля на уже созданные комментарии не влияют.
type Comment struct {
	ID       uuid.UUID     `json:"id"`
	Comment  string        `json:"comment"`
	DateTime time.Time     `json:"date_time"`
	User     CommentAuthor `json:"user"`
}

// CommentAuthor — денормализованная копия автора комментария.
type CommentAuthor struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// UnknownAuthor используется, когда автора комментария не удалось найти ни в одном хранилище.
func UnknownAuthor(id uuid.UUID) CommentAuthor {
	return CommentAuthor{ID: id, FirstName: "Unknown", LastName: ""}
}

// AuthoredComment — комментарий пользователя вместе со ссылкой на фото, к которому он оставлен.
type AuthoredComment struct {
	Comment
	Photo PhotoRef `json:"photo"`
}
