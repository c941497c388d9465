package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/snapshot"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGallery(s *snapshot.Store) GalleryUseCase {
	return NewGalleryUseCase(s, s, discardLogger())
}

func addPhoto(t *testing.T, s *snapshot.Store, owner domain.User, comments ...domain.Comment) domain.Photo {
	t.Helper()
	p := domain.Photo{ID: uuid.New(), UserID: owner.ID, FileName: uuid.NewString() + ".jpg", DateTime: time.Now(), Comments: comments}
	require.NoError(t, s.AddPhoto(context.Background(), p))
	return p
}

func commentBy(author domain.User, text string, at time.Time) domain.Comment {
	return domain.Comment{ID: uuid.New(), Comment: text, DateTime: at, User: author.Author()}
}

func TestGallery_ListUsers_EachUserOnce(t *testing.T) {
	s := newStore(t)
	a := addSnapshotUser(t, s, "Ada", "Lovelace")
	b := addSnapshotUser(t, s, "Alan", "Turing")
	g := newGallery(s)

	for i := 0; i < 3; i++ {
		users, err := g.ListUsers(context.Background())
		require.NoError(t, err)
		seen := map[uuid.UUID]int{}
		for _, u := range users {
			seen[u.ID]++
		}
		assert.Equal(t, map[uuid.UUID]int{a.ID: 1, b.ID: 1}, seen)
	}
}

func TestGallery_GetUser(t *testing.T) {
	s := newStore(t)
	a := addSnapshotUser(t, s, "Ada", "Lovelace")
	g := newGallery(s)

	u, err := g.GetUser(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)

	_, err = g.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGallery_PhotosOfUser(t *testing.T) {
	s := newStore(t)
	owner := addSnapshotUser(t, s, "Ada", "Lovelace")
	empty := addSnapshotUser(t, s, "Alan", "Turing")
	p := addPhoto(t, s, owner)
	g := newGallery(s)

	photos, err := g.PhotosOfUser(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, p.ID, photos[0].ID)

	photos, err = g.PhotosOfUser(context.Background(), empty.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)

	_, err = g.PhotosOfUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGallery_CommentsAuthoredBy_SortedAcrossPhotos(t *testing.T) {
	s := newStore(t)
	a := addSnapshotUser(t, s, "Ada", "Lovelace")
	b := addSnapshotUser(t, s, "Alan", "Turing")
	c := addSnapshotUser(t, s, "Grace", "Hopper")

	t1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	// t3 is scanned before t1: a's photos come first in list order
	pa := addPhoto(t, s, a, commentBy(c, "third", t3), commentBy(b, "second", t2))
	pb := addPhoto(t, s, b, commentBy(c, "first", t1))

	got, err := newGallery(s).CommentsAuthoredBy(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Comment.Comment)
	assert.Equal(t, pb.Ref(), got[0].Photo)
	assert.Equal(t, "third", got[1].Comment.Comment)
	assert.Equal(t, pa.Ref(), got[1].Photo)
}

func TestGallery_CommentsAuthoredBy_StableForEqualTimes(t *testing.T) {
	s := newStore(t)
	a := addSnapshotUser(t, s, "Ada", "Lovelace")
	b := addSnapshotUser(t, s, "Alan", "Turing")
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	addPhoto(t, s, a, commentBy(b, "one", at), commentBy(b, "two", at))
	addPhoto(t, s, b, commentBy(b, "three", at))

	got, err := newGallery(s).CommentsAuthoredBy(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"one", "two", "three"},
		[]string{got[0].Comment.Comment, got[1].Comment.Comment, got[2].Comment.Comment})
}

func TestGallery_CommentsAuthoredBy_MatchesIDNotName(t *testing.T) {
	s := newStore(t)
	john1 := addSnapshotUser(t, s, "John", "Smith")
	john2 := addSnapshotUser(t, s, "John", "Smith")
	addPhoto(t, s, john1, commentBy(john2, "hi", time.Now()))

	got, err := newGallery(s).CommentsAuthoredBy(context.Background(), john1.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = newGallery(s).CommentsAuthoredBy(context.Background(), john2.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGallery_CommentsAuthoredBy_UnknownUserIsEmpty(t *testing.T) {
	s := newStore(t)
	got, err := newGallery(s).CommentsAuthoredBy(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGallery_ActivityCounts(t *testing.T) {
	s := newStore(t)
	a := addSnapshotUser(t, s, "Ada", "Lovelace")
	b := addSnapshotUser(t, s, "Alan", "Turing")
	idle := addSnapshotUser(t, s, "Grace", "Hopper")
	ghost := domain.User{ID: uuid.New(), FirstName: "Ghost"}

	// a comments on her own photo: counts toward both of her totals
	addPhoto(t, s, a, commentBy(a, "mine", time.Now()), commentBy(b, "nice", time.Now()))
	addPhoto(t, s, a)
	addPhoto(t, s, b, commentBy(ghost, "boo", time.Now()), commentBy(b, "thanks", time.Now()))

	g := newGallery(s)
	counts, err := g.ActivityCounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[uuid.UUID]domain.UserCounts{
		a.ID:    {PhotoCount: 2, CommentCount: 1},
		b.ID:    {PhotoCount: 1, CommentCount: 2},
		idle.ID: {PhotoCount: 0, CommentCount: 0},
	}, counts)

	again, err := g.ActivityCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, counts, again)
}

func TestGallery_ActivityCounts_FixtureInvariants(t *testing.T) {
	s := newStore(t)
	f, err := snapshot.LoadFixture("")
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background(), f))

	counts, err := newGallery(s).ActivityCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, len(f.Users))

	photos := map[uuid.UUID]int{}
	comments := map[uuid.UUID]int{}
	for _, p := range f.Photos {
		photos[p.UserID]++
		for _, c := range p.Comments {
			comments[c.UserID]++
		}
	}
	for _, u := range f.Users {
		assert.Equal(t, photos[u.ID], counts[u.ID].PhotoCount, u.LastName)
		assert.Equal(t, comments[u.ID], counts[u.ID].CommentCount, u.LastName)
	}
}

func TestGallery_CancelledScan(t *testing.T) {
	s := newStore(t)
	addSnapshotUser(t, s, "Ada", "Lovelace")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGallery(s).ActivityCounts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = newGallery(s).CommentsAuthoredBy(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
}
