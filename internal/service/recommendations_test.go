package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
	"github.com/TBKaGOC/filmorate/internal/storage/memory"
)

func newRecommendationFixture(t *testing.T, userCount, filmCount int) (*RecommendationService, *memory.FilmStorage) {
	t.Helper()
	users := memory.NewUserStorage()
	films := memory.NewFilmStorage()
	for i := 0; i < userCount; i++ {
		user := models.User{
			Login: fmt.Sprintf("user%d", i+1),
			Email: fmt.Sprintf("user%d@example.com", i+1),
			Name:  fmt.Sprintf("user%d", i+1),
		}
		require.NoError(t, users.AddUser(&user))
	}
	for i := 0; i < filmCount; i++ {
		film := models.Film{
			Name:        fmt.Sprintf("Film %d", i+1),
			ReleaseDate: time.Date(2000+i, time.June, 1, 0, 0, 0, 0, time.UTC),
			Duration:    100,
		}
		require.NoError(t, films.AddFilm(&film))
	}
	return NewRecommendationService(users, films), films
}

func filmIDs(films []models.Film) []uint {
	ids := make([]uint, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestRecommendationsUnknownUser(t *testing.T) {
	svc, _ := newRecommendationFixture(t, 1, 1)

	_, err := svc.GetRecommendations(42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecommendationsEmptyWhenUserLikesNothing(t *testing.T) {
	svc, films := newRecommendationFixture(t, 2, 2)

	require.NoError(t, films.AddLike(2, 1))
	require.NoError(t, films.AddLike(2, 2))

	recs, err := svc.GetRecommendations(1)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendationsEmptyWhenNoOverlap(t *testing.T) {
	svc, films := newRecommendationFixture(t, 2, 2)

	require.NoError(t, films.AddLike(1, 1))
	require.NoError(t, films.AddLike(2, 2))

	recs, err := svc.GetRecommendations(1)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendationsExcludeAlreadyLiked(t *testing.T) {
	svc, films := newRecommendationFixture(t, 2, 3)

	// User 1 likes films 1 and 2; user 2 likes 1, 2 and 3.
	require.NoError(t, films.AddLike(1, 1))
	require.NoError(t, films.AddLike(1, 2))
	require.NoError(t, films.AddLike(2, 1))
	require.NoError(t, films.AddLike(2, 2))
	require.NoError(t, films.AddLike(2, 3))

	recs, err := svc.GetRecommendations(1)
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, filmIDs(recs))
}

func TestRecommendationsLowestUserIDWinsOverlapTies(t *testing.T) {
	svc, films := newRecommendationFixture(t, 3, 3)

	// Users 1 and 3 each share exactly one like with user 2.
	require.NoError(t, films.AddLike(1, 1))
	require.NoError(t, films.AddLike(1, 2))
	require.NoError(t, films.AddLike(2, 1))
	require.NoError(t, films.AddLike(3, 1))
	require.NoError(t, films.AddLike(3, 3))

	recs, err := svc.GetRecommendations(2)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, filmIDs(recs))
}

func TestRecommendationsPickLargestOverlap(t *testing.T) {
	svc, films := newRecommendationFixture(t, 3, 4)

	// User 1 likes 1 and 2. User 2 shares one like, user 3 shares two.
	require.NoError(t, films.AddLike(1, 1))
	require.NoError(t, films.AddLike(1, 2))
	require.NoError(t, films.AddLike(2, 1))
	require.NoError(t, films.AddLike(2, 3))
	require.NoError(t, films.AddLike(3, 1))
	require.NoError(t, films.AddLike(3, 2))
	require.NoError(t, films.AddLike(3, 4))

	recs, err := svc.GetRecommendations(1)
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, filmIDs(recs))
}
