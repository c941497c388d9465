package snapshot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func addUser(t *testing.T, s *Store, first, last string) domain.User {
	t.Helper()
	u := domain.User{ID: uuid.New(), FirstName: first, LastName: last}
	added, err := s.AddUser(context.Background(), u)
	require.NoError(t, err)
	require.True(t, added)
	return u
}

func TestStore_AddUser_DeduplicatesAndStripsSecret(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := domain.User{ID: uuid.New(), FirstName: "Alan", LastName: "Turing", PasswordHash: "secret"}
	added, err := s.AddUser(ctx, u)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddUser(ctx, u)
	require.NoError(t, err)
	assert.False(t, added)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)

	_, err = s.AddUser(ctx, domain.User{})
	assert.Error(t, err)
}

func TestStore_ListUsers_InsertionOrder(t *testing.T) {
	s := newTestStore(t)
	a := addUser(t, s, "Ada", "Lovelace")
	b := addUser(t, s, "Alan", "Turing")
	c := addUser(t, s, "Grace", "Hopper")

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{users[0].ID, users[1].ID, users[2].ID})
}

func TestStore_GetUser(t *testing.T) {
	s := newTestStore(t)
	u := addUser(t, s, "Ada", "Lovelace")

	got, err := s.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", got.LastName)

	_, err = s.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_PhotosOfUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := addUser(t, s, "Ada", "Lovelace")
	empty := addUser(t, s, "Alan", "Turing")

	first := domain.Photo{ID: uuid.New(), UserID: owner.ID, FileName: "a.jpg", DateTime: time.Now()}
	second := domain.Photo{ID: uuid.New(), UserID: owner.ID, FileName: "b.jpg", DateTime: time.Now()}
	require.NoError(t, s.AddPhoto(ctx, first))
	require.NoError(t, s.AddPhoto(ctx, second))

	photos, err := s.PhotosOfUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "a.jpg", photos[0].FileName)
	assert.Equal(t, "b.jpg", photos[1].FileName)

	photos, err = s.PhotosOfUser(ctx, empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, photos)
	assert.Empty(t, photos)
}

func TestStore_AddPhoto_UnknownOwner(t *testing.T) {
	s := newTestStore(t)
	err := s.AddPhoto(context.Background(), domain.Photo{ID: uuid.New(), UserID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_AppendComment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := addUser(t, s, "Ada", "Lovelace")
	photo := domain.Photo{ID: uuid.New(), UserID: owner.ID, FileName: "a.jpg"}
	require.NoError(t, s.AddPhoto(ctx, photo))

	c1 := domain.Comment{ID: uuid.New(), Comment: "first", User: owner.Author()}
	c2 := domain.Comment{ID: uuid.New(), Comment: "second", User: owner.Author()}

	_, err := s.AppendComment(ctx, photo.ID, c1)
	require.NoError(t, err)
	updated, err := s.AppendComment(ctx, photo.ID, c2)
	require.NoError(t, err)
	require.Len(t, updated.Comments, 2)
	assert.Equal(t, "first", updated.Comments[0].Comment)
	assert.Equal(t, "second", updated.Comments[1].Comment)

	_, err = s.AppendComment(ctx, uuid.New(), c1)
	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
}

func TestStore_PhotosOfUser_ReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := addUser(t, s, "Ada", "Lovelace")
	photo := domain.Photo{ID: uuid.New(), UserID: owner.ID}
	require.NoError(t, s.AddPhoto(ctx, photo))
	_, err := s.AppendComment(ctx, photo.ID, domain.Comment{ID: uuid.New(), Comment: "x"})
	require.NoError(t, err)

	photos, err := s.PhotosOfUser(ctx, owner.ID)
	require.NoError(t, err)
	photos[0].Comments[0].Comment = "mutated"

	again, err := s.PhotosOfUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", again[0].Comments[0].Comment)
}

func TestStore_ScanPhotos_StopsOnError(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, "Ada", "Lovelace")
	addUser(t, s, "Alan", "Turing")

	stop := errors.New("stop")
	visited := 0
	err := s.ScanPhotos(context.Background(), func(owner domain.User, photos []domain.Photo) error {
		visited++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}

func TestStore_ScanPhotos_CancelledContext(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, "Ada", "Lovelace")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.ScanPhotos(ctx, func(domain.User, []domain.Photo) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ConcurrentAppendAndScan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := addUser(t, s, "Ada", "Lovelace")
	photo := domain.Photo{ID: uuid.New(), UserID: owner.ID}
	require.NoError(t, s.AddPhoto(ctx, photo))

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := s.AppendComment(ctx, photo.ID, domain.Comment{ID: uuid.New(), Comment: "c"})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < perWriter; i++ {
			_ = s.ScanPhotos(ctx, func(_ domain.User, photos []domain.Photo) error {
				for _, p := range photos {
					for _, c := range p.Comments {
						assert.NotEqual(t, uuid.Nil, c.ID)
					}
				}
				return nil
			})
		}
	}()
	wg.Wait()

	_, photos, comments := s.Stats()
	assert.Equal(t, 1, photos)
	assert.Equal(t, writers*perWriter, comments)
}
