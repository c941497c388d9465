// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет учётную запись и профиль пользователя.
// Соответствует таблице 'users' в Identity Store.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	LoginName    string    `json:"login_name" db:"login_name" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"not null"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Location     string    `json:"location" db:"location"`
	Description  string    `json:"description" db:"description"`
	Occupation   string    `json:"occupation" db:"occupation"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Author возвращает денормализованную копию имени пользователя для комментария.
func (u User) Author() CommentAuthor {
	return CommentAuthor{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// UserCounts — агрегированная активность одного пользователя.
type UserCounts struct {
	PhotoCount   int `json:"photoCount"`
	CommentCount int `json:"commentCount"`
}
