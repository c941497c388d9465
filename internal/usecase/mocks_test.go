package usecase

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"
	"github.com/GoArmGo/PhotoShare/internal/snapshot"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserStorage is a mock implementation of ports.UserStorage.
type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) FindUserByLoginName(ctx context.Context, loginName string) (*domain.User, error) {
	args := m.Called(ctx, loginName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStorage) FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStorage) InsertUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// memFileStorage keeps blobs in memory.
type memFileStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newMemFileStorage() *memFileStorage {
	return &memFileStorage{files: make(map[string][]byte)}
}

func (s *memFileStorage) UploadFile(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return key, nil
}

func (s *memFileStorage) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// recordingPublisher remembers published payloads.
type recordingPublisher struct {
	mu       sync.Mutex
	payloads []payloads.ActivityPayload
	err      error
}

func (p *recordingPublisher) PublishActivity(ctx context.Context, payload payloads.ActivityPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return p.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) *snapshot.Store {
	t.Helper()
	return snapshot.New(discardLogger())
}

func addSnapshotUser(t *testing.T, s *snapshot.Store, first, last string) domain.User {
	t.Helper()
	u := domain.User{ID: uuid.New(), FirstName: first, LastName: last}
	_, err := s.AddUser(context.Background(), u)
	require.NoError(t, err)
	return u
}
