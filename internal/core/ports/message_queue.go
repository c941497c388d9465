package ports

import (
	"context"

	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"
)

// ActivityPublisher публикует события активности пользователей.
// Используется обработчиками мутаций после успешной записи.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, payload payloads.ActivityPayload) error
}

// ActivityConsumer потребляет события активности из очереди.
// Используется воркером.
type ActivityConsumer interface {
	// StartConsumingActivities начинает прослушивание очереди и вызывает handler для каждого сообщения.
	// Возвращённый канал закрывается, когда потребление прекращено.
	StartConsumingActivities(ctx context.Context, handler func(context.Context, payloads.ActivityPayload) error) (<-chan struct{}, error)
}
