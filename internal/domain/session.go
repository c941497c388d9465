package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session связывает непрозрачный токен с аутентифицированным пользователем.
// Сессии живут только в памяти процесса.
type Session struct {
	ID        string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired сообщает, истекла ли сессия к моменту now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
