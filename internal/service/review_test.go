package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
	"github.com/TBKaGOC/filmorate/internal/storage/memory"
)

type reviewFixture struct {
	svc  *ReviewService
	feed *memory.FeedStorage
	film models.Film
}

func newReviewFixture(t *testing.T) reviewFixture {
	t.Helper()
	reviews := memory.NewReviewStorage()
	films := memory.NewFilmStorage()
	users := memory.NewUserStorage()
	feed := memory.NewFeedStorage()

	for _, login := range []string{"critic", "reader", "lurker"} {
		user := models.User{Login: login, Email: login + "@example.com"}
		require.NoError(t, users.AddUser(&user))
	}
	film := models.Film{
		Name:        "Alien",
		ReleaseDate: time.Date(1979, time.May, 25, 0, 0, 0, 0, time.UTC),
		Duration:    117,
	}
	require.NoError(t, films.AddFilm(&film))

	return reviewFixture{
		svc:  NewReviewService(reviews, films, users, feed),
		feed: feed,
		film: film,
	}
}

func (f reviewFixture) addReview(t *testing.T, userID uint) models.Review {
	t.Helper()
	review := models.Review{Content: "Solid", IsPositive: true, FilmID: f.film.ID, UserID: userID}
	require.NoError(t, f.svc.AddReview(&review))
	return review
}

func TestAddReviewUnknownFilmOrUser(t *testing.T) {
	f := newReviewFixture(t)

	badFilm := models.Review{Content: "x", FilmID: 42, UserID: 1}
	assert.ErrorIs(t, f.svc.AddReview(&badFilm), storage.ErrNotFound)

	badUser := models.Review{Content: "x", FilmID: f.film.ID, UserID: 42}
	assert.ErrorIs(t, f.svc.AddReview(&badUser), storage.ErrNotFound)
}

func TestReviewLifecycleFeedEvents(t *testing.T) {
	f := newReviewFixture(t)

	review := f.addReview(t, 1)
	_, err := f.svc.UpdateReview(review.ID, "Reconsidered", false)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteReview(review.ID))

	events, err := f.feed.ListByUser(1, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, models.OperationRemove, events[0].Operation)
	assert.Equal(t, models.OperationUpdate, events[1].Operation)
	assert.Equal(t, models.OperationAdd, events[2].Operation)
	for _, e := range events {
		assert.Equal(t, models.EventTypeReview, e.EventType)
		assert.Equal(t, review.ID, e.EntityID)
	}
}

func TestUpdateReviewKeepsAuthorAndFilm(t *testing.T) {
	f := newReviewFixture(t)

	review := f.addReview(t, 1)
	updated, err := f.svc.UpdateReview(review.ID, "Changed my mind", false)
	require.NoError(t, err)

	assert.Equal(t, review.UserID, updated.UserID)
	assert.Equal(t, review.FilmID, updated.FilmID)
	assert.Equal(t, "Changed my mind", updated.Content)
	assert.False(t, updated.IsPositive)
}

func TestReviewReactionsAdjustUseful(t *testing.T) {
	f := newReviewFixture(t)

	review := f.addReview(t, 1)

	require.NoError(t, f.svc.LikeReview(review.ID, 2))
	require.NoError(t, f.svc.LikeReview(review.ID, 3))
	got, err := f.svc.GetReview(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Useful)

	// A dislike replaces the user's previous like, swinging the score by two.
	require.NoError(t, f.svc.DislikeReview(review.ID, 2))
	got, err = f.svc.GetReview(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Useful)

	require.NoError(t, f.svc.RemoveReaction(review.ID, 2))
	got, err = f.svc.GetReview(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Useful)
}

func TestReviewReactionIdempotent(t *testing.T) {
	f := newReviewFixture(t)

	review := f.addReview(t, 1)
	require.NoError(t, f.svc.LikeReview(review.ID, 2))
	require.NoError(t, f.svc.LikeReview(review.ID, 2))

	got, err := f.svc.GetReview(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Useful)
}

func TestGetReviewsOrderedByUseful(t *testing.T) {
	f := newReviewFixture(t)

	first := f.addReview(t, 1)
	second := f.addReview(t, 2)
	require.NoError(t, f.svc.LikeReview(second.ID, 3))

	reviews, err := f.svc.GetReviews(f.film.ID, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, second.ID, reviews[0].ID)
	assert.Equal(t, first.ID, reviews[1].ID)
}

func TestGetReviewsUnknownFilm(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.GetReviews(42, 10)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRemoveReactionWithoutReaction(t *testing.T) {
	f := newReviewFixture(t)

	review := f.addReview(t, 1)
	require.NoError(t, f.svc.RemoveReaction(review.ID, 2))

	got, err := f.svc.GetReview(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Useful)
}
