package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/config"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"
	"github.com/GoArmGo/PhotoShare/internal/metrics"
	"github.com/GoArmGo/PhotoShare/internal/snapshot"
	"github.com/GoArmGo/PhotoShare/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	usecase.UserUseCase
	seeded   *snapshot.Fixture
	password string
	err      error
}

func (s *stubUsers) SeedIdentity(ctx context.Context, f *snapshot.Fixture, password string) (int, error) {
	s.seeded = f
	s.password = password
	return len(f.Users), s.err
}

func newTestApp(c Components) *App {
	cfg := &config.Config{SeedPassword: "weak", ServerPort: "0"}
	return NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), c)
}

func TestRun_Seed(t *testing.T) {
	f, err := snapshot.LoadFixture("")
	require.NoError(t, err)
	users := &stubUsers{}
	closed := 0
	a := newTestApp(Components{
		Users:   users,
		Fixture: f,
		Closers: []func() error{func() error { closed++; return nil }},
	})

	require.NoError(t, a.Run(context.Background(), ModeSeed))
	assert.Same(t, f, users.seeded)
	assert.Equal(t, "weak", users.password)
	assert.Equal(t, 1, closed)
}

func TestRun_SeedFailure(t *testing.T) {
	a := newTestApp(Components{Users: &stubUsers{err: errors.New("db down")}, Fixture: &snapshot.Fixture{}})
	err := a.Run(context.Background(), ModeSeed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestRun_UnknownMode(t *testing.T) {
	a := newTestApp(Components{})
	assert.Error(t, a.Run(context.Background(), "batch"))
}

func TestRun_WorkerRequiresBroker(t *testing.T) {
	a := newTestApp(Components{Metrics: metrics.New()})
	err := a.Run(context.Background(), ModeWorker)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RABBITMQ_URL")
}

// fakeConsumer закрывает done, когда закрыт stop или отменён ctx.
type fakeConsumer struct {
	stop chan struct{}
}

func (f *fakeConsumer) StartConsumingActivities(ctx context.Context, _ func(context.Context, payloads.ActivityPayload) error) (<-chan struct{}, error) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-f.stop:
		case <-ctx.Done():
		}
	}()
	return done, nil
}

func TestRun_WorkerStopsWhenConsumerStops(t *testing.T) {
	consumer := &fakeConsumer{stop: make(chan struct{})}
	a := newTestApp(Components{Metrics: metrics.New(), Consumer: consumer})

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(context.Background(), ModeWorker) }()
	close(consumer.stop)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, errConsumerStopped)
	case <-time.After(5 * time.Second):
		t.Fatal("worker kept running after the consumer stopped")
	}
}

func TestRun_WorkerStopsOnCancel(t *testing.T) {
	consumer := &fakeConsumer{stop: make(chan struct{})}
	a := newTestApp(Components{Metrics: metrics.New(), Consumer: consumer})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx, ModeWorker) }()
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}

func TestShutdown_ClosesInReverseOrder(t *testing.T) {
	var order []int
	a := newTestApp(Components{Closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return errors.New("close failed") },
	}})

	err := a.Shutdown()
	assert.Error(t, err)
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, a.Shutdown())
}

func TestHandleActivity_CountsByKind(t *testing.T) {
	m := metrics.New()
	a := newTestApp(Components{Metrics: m})

	require.NoError(t, a.handleActivity(context.Background(), payloads.ActivityPayload{Kind: domain.ActivityPhotoUploaded}))
	require.NoError(t, a.handleActivity(context.Background(), payloads.ActivityPayload{Kind: "mystery"}))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `photoshare_activity_events_total{kind="photo_uploaded"} 1`)
	assert.Contains(t, rec.Body.String(), `photoshare_activity_events_total{kind="unknown"} 1`)
}
