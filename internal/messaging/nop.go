// Package messaging содержит реализации портов очереди без брокера.
package messaging

import (
	"context"
	"log/slog"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"
)

// NopPublisher используется, когда RABBITMQ_URL не задан: события только логируются.
type NopPublisher struct {
	logger *slog.Logger
}

var _ ports.ActivityPublisher = (*NopPublisher)(nil)

func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) PublishActivity(ctx context.Context, payload payloads.ActivityPayload) error {
	p.logger.Debug("activity dropped, no broker configured", "kind", payload.Kind, "photo_id", payload.PhotoID)
	return nil
}
