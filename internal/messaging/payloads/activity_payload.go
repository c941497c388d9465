package payloads

import (
	"time"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
)

// ActivityPayload описывает событие активности (загрузка фото, новый комментарий),
// передаваемое через RabbitMQ.
type ActivityPayload struct {
	Kind      domain.ActivityKind `json:"kind"`
	UserID    uuid.UUID           `json:"user_id"`
	PhotoID   uuid.UUID           `json:"photo_id"`
	CommentID uuid.UUID           `json:"comment_id,omitempty"`
	At        time.Time           `json:"at"`
}
