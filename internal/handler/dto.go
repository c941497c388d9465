package handler

import (
	"time"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
)

// Ответы API отдают только перечисленные поля: секрет и служебные атрибуты не сериализуются.

type userListItemDTO struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type userDetailDTO struct {
	ID          uuid.UUID `json:"_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Occupation  string    `json:"occupation"`
}

type accountDTO struct {
	ID        uuid.UUID `json:"_id"`
	LoginName string    `json:"login_name"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type commentAuthorDTO struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type commentDTO struct {
	ID       uuid.UUID        `json:"_id"`
	DateTime time.Time        `json:"date_time"`
	Comment  string           `json:"comment"`
	User     commentAuthorDTO `json:"user"`
}

type photoDTO struct {
	ID       uuid.UUID    `json:"_id"`
	DateTime time.Time    `json:"date_time"`
	FileName string       `json:"file_name"`
	UserID   uuid.UUID    `json:"user_id"`
	Comments []commentDTO `json:"comments"`
}

type uploadedPhotoDTO struct {
	ID       uuid.UUID `json:"_id"`
	DateTime time.Time `json:"date_time"`
	FileName string    `json:"file_name"`
	UserID   uuid.UUID `json:"user_id"`
}

type photoRefDTO struct {
	ID       uuid.UUID `json:"_id"`
	UserID   uuid.UUID `json:"user_id"`
	FileName string    `json:"file_name"`
}

type authoredCommentDTO struct {
	ID       uuid.UUID   `json:"_id"`
	Comment  string      `json:"comment"`
	DateTime time.Time   `json:"date_time"`
	Photo    photoRefDTO `json:"photo"`
}

func toUserList(users []domain.User) []userListItemDTO {
	out := make([]userListItemDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userListItemDTO{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName})
	}
	return out
}

func toUserDetail(u *domain.User) userDetailDTO {
	return userDetailDTO{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		Description: u.Description,
		Occupation:  u.Occupation,
	}
}

func toAccount(u *domain.User) accountDTO {
	return accountDTO{ID: u.ID, LoginName: u.LoginName, FirstName: u.FirstName, LastName: u.LastName}
}

func toComment(c domain.Comment) commentDTO {
	return commentDTO{
		ID:       c.ID,
		DateTime: c.DateTime,
		Comment:  c.Comment,
		User:     commentAuthorDTO{ID: c.User.ID, FirstName: c.User.FirstName, LastName: c.User.LastName},
	}
}

func toPhotos(photos []domain.Photo) []photoDTO {
	out := make([]photoDTO, 0, len(photos))
	for _, p := range photos {
		comments := make([]commentDTO, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, toComment(c))
		}
		out = append(out, photoDTO{
			ID:       p.ID,
			DateTime: p.DateTime,
			FileName: p.FileName,
			UserID:   p.UserID,
			Comments: comments,
		})
	}
	return out
}

func toUploadedPhoto(p *domain.Photo) uploadedPhotoDTO {
	return uploadedPhotoDTO{ID: p.ID, DateTime: p.DateTime, FileName: p.FileName, UserID: p.UserID}
}

func toAuthoredComments(comments []domain.AuthoredComment) []authoredCommentDTO {
	out := make([]authoredCommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, authoredCommentDTO{
			ID:       c.ID,
			Comment:  c.Comment.Comment,
			DateTime: c.DateTime,
			Photo:    photoRefDTO{ID: c.Photo.ID, UserID: c.Photo.UserID, FileName: c.Photo.FileName},
		})
	}
	return out
}

func toCounts(counts map[uuid.UUID]domain.UserCounts) map[string]domain.UserCounts {
	out := make(map[string]domain.UserCounts, len(counts))
	for id, c := range counts {
		out[id.String()] = c
	}
	return out
}
