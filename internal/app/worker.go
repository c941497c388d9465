package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"
	"github.com/go-chi/chi/v5"
)

var errConsumerStopped = errors.New("потребитель RabbitMQ остановился: канал закрыт")

// runWorker потребляет события активности и отдаёт /metrics и /healthz.
func (a *App) runWorker(ctx context.Context) error {
	if a.c.Consumer == nil {
		return errors.New("режим worker требует RABBITMQ_URL")
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	done, err := a.c.Consumer.StartConsumingActivities(workerCtx, a.handleActivity)
	if err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}
	a.logger.Info("worker started, waiting for activity events")

	// без живого потребителя воркер не должен отвечать на /healthz
	consumerLost := make(chan struct{})
	go func() {
		select {
		case <-done:
			if ctx.Err() == nil {
				a.logger.Error("activity consumer stopped, shutting worker down")
				close(consumerLost)
			}
			cancelWorker()
		case <-workerCtx.Done():
		}
	}()

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", a.c.Metrics.Handler())

	if err := a.serve(workerCtx, r); err != nil {
		return err
	}
	select {
	case <-consumerLost:
		return errConsumerStopped
	default:
		return nil
	}
}

func (a *App) handleActivity(ctx context.Context, p payloads.ActivityPayload) error {
	kind := string(p.Kind)
	switch p.Kind {
	case domain.ActivityPhotoUploaded, domain.ActivityCommentAdded:
	default:
		// повторная доставка не исправит неизвестный тип, поэтому сообщение подтверждается
		a.logger.Warn("unknown activity kind", "kind", kind, "photo_id", p.PhotoID)
		kind = "unknown"
	}
	a.c.Metrics.ObserveActivity(kind)
	a.logger.Info("activity event",
		"kind", p.Kind,
		"user_id", p.UserID,
		"photo_id", p.PhotoID,
		"comment_id", p.CommentID,
		"at", p.At,
	)
	return nil
}
