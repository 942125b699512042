package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
	"github.com/TBKaGOC/filmorate/internal/storage/memory"
)

type filmFixture struct {
	svc       *FilmService
	films     *memory.FilmStorage
	users     *memory.UserStorage
	directors *memory.DirectorStorage
	reviews   *memory.ReviewStorage
	feed      *memory.FeedStorage
}

func newFilmFixture(t *testing.T, userCount int) filmFixture {
	t.Helper()
	f := filmFixture{
		films:     memory.NewFilmStorage(),
		users:     memory.NewUserStorage(),
		directors: memory.NewDirectorStorage(),
		reviews:   memory.NewReviewStorage(),
		feed:      memory.NewFeedStorage(),
	}
	f.svc = NewFilmService(f.films, f.users, memory.NewGenreStorage(), memory.NewMpaStorage(), f.directors, f.reviews, f.feed)
	for i := 0; i < userCount; i++ {
		user := models.User{
			Login: fmt.Sprintf("user%d", i+1),
			Email: fmt.Sprintf("user%d@example.com", i+1),
		}
		require.NoError(t, f.users.AddUser(&user))
	}
	return f
}

func validFilmInput() FilmInput {
	return FilmInput{
		Name:        "Alien",
		Description: "In space no one can hear you scream",
		ReleaseDate: time.Date(1979, time.May, 25, 0, 0, 0, 0, time.UTC),
		Duration:    117,
	}
}

func TestCreateFilmRejectsEarlyReleaseDate(t *testing.T) {
	f := newFilmFixture(t, 0)

	input := validFilmInput()
	input.ReleaseDate = time.Date(1895, time.December, 27, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.CreateFilm(input)
	assert.ErrorIs(t, err, storage.ErrCorruptedData)
}

func TestCreateFilmAcceptsFirstScreeningDate(t *testing.T) {
	f := newFilmFixture(t, 0)

	input := validFilmInput()
	input.ReleaseDate = models.EarliestReleaseDate
	_, err := f.svc.CreateFilm(input)
	assert.NoError(t, err)
}

func TestCreateFilmRejectsNonPositiveDuration(t *testing.T) {
	f := newFilmFixture(t, 0)

	input := validFilmInput()
	input.Duration = 0
	_, err := f.svc.CreateFilm(input)
	assert.ErrorIs(t, err, storage.ErrCorruptedData)
}

func TestCreateFilmRejectsLongDescription(t *testing.T) {
	f := newFilmFixture(t, 0)

	input := validFilmInput()
	input.Description = strings.Repeat("x", 201)
	_, err := f.svc.CreateFilm(input)
	assert.ErrorIs(t, err, storage.ErrCorruptedData)
}

func TestCreateFilmResolvesAssociations(t *testing.T) {
	f := newFilmFixture(t, 0)

	director := models.Director{Name: "Ridley Scott"}
	require.NoError(t, f.directors.AddDirector(&director))

	input := validFilmInput()
	input.MpaID = 4
	input.GenreIDs = []uint{4, 4}
	input.DirectorIDs = []uint{director.ID}

	film, err := f.svc.CreateFilm(input)
	require.NoError(t, err)

	assert.Equal(t, "R", film.MpaRating.Name)
	require.Len(t, film.Genres, 1)
	assert.Equal(t, "Thriller", film.Genres[0].Name)
	require.Len(t, film.Directors, 1)
	assert.Equal(t, "Ridley Scott", film.Directors[0].Name)
}

func TestCreateFilmUnknownGenre(t *testing.T) {
	f := newFilmFixture(t, 0)

	input := validFilmInput()
	input.GenreIDs = []uint{99}
	_, err := f.svc.CreateFilm(input)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAddLikeIsSetSemantics(t *testing.T) {
	f := newFilmFixture(t, 1)

	film, err := f.svc.CreateFilm(validFilmInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.AddLike(1, film.ID))
	require.NoError(t, f.svc.AddLike(1, film.ID))

	likers, err := f.films.GetLikers(film.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, likers)
}

func TestDeleteLikeNoOpEmitsNoEvent(t *testing.T) {
	f := newFilmFixture(t, 1)

	film, err := f.svc.CreateFilm(validFilmInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteLike(1, film.ID))

	events, err := f.feed.ListByUser(1, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLikeLifecycleFeedEvents(t *testing.T) {
	f := newFilmFixture(t, 1)

	film, err := f.svc.CreateFilm(validFilmInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.AddLike(1, film.ID))
	require.NoError(t, f.svc.DeleteLike(1, film.ID))

	events, err := f.feed.ListByUser(1, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Most recent first.
	assert.Equal(t, models.OperationRemove, events[0].Operation)
	assert.Equal(t, models.OperationAdd, events[1].Operation)
	for _, e := range events {
		assert.Equal(t, models.EventTypeLike, e.EventType)
		assert.Equal(t, film.ID, e.EntityID)
	}
}

func TestGetMostPopularOrdersByLikes(t *testing.T) {
	f := newFilmFixture(t, 3)

	for i := 0; i < 3; i++ {
		input := validFilmInput()
		input.Name = fmt.Sprintf("Film %d", i+1)
		_, err := f.svc.CreateFilm(input)
		require.NoError(t, err)
	}

	// Film 2 gets three likes, film 3 one, film 1 none.
	require.NoError(t, f.svc.AddLike(1, 2))
	require.NoError(t, f.svc.AddLike(2, 2))
	require.NoError(t, f.svc.AddLike(3, 2))
	require.NoError(t, f.svc.AddLike(1, 3))

	popular, err := f.svc.GetMostPopular(2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, filmIDs(popular))
}

func TestGetMostPopularFiltersByYear(t *testing.T) {
	f := newFilmFixture(t, 0)

	old := validFilmInput()
	old.ReleaseDate = time.Date(1979, time.May, 25, 0, 0, 0, 0, time.UTC)
	recent := validFilmInput()
	recent.Name = "Aliens"
	recent.ReleaseDate = time.Date(1986, time.July, 18, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.CreateFilm(old)
	require.NoError(t, err)
	sequel, err := f.svc.CreateFilm(recent)
	require.NoError(t, err)

	popular, err := f.svc.GetMostPopular(10, 0, 1986)
	require.NoError(t, err)
	assert.Equal(t, []uint{sequel.ID}, filmIDs(popular))
}

func TestGetCommonFilms(t *testing.T) {
	f := newFilmFixture(t, 2)

	first, err := f.svc.CreateFilm(validFilmInput())
	require.NoError(t, err)
	second := validFilmInput()
	second.Name = "Aliens"
	other, err := f.svc.CreateFilm(second)
	require.NoError(t, err)

	require.NoError(t, f.svc.AddLike(1, first.ID))
	require.NoError(t, f.svc.AddLike(2, first.ID))
	require.NoError(t, f.svc.AddLike(1, other.ID))

	common, err := f.svc.GetCommonFilms(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID}, filmIDs(common))
}

func TestSearchByTitleAndDirector(t *testing.T) {
	f := newFilmFixture(t, 0)

	director := models.Director{Name: "Updike"}
	require.NoError(t, f.directors.AddDirector(&director))

	titled := validFilmInput()
	titled.Name = "Update Me"
	byTitle, err := f.svc.CreateFilm(titled)
	require.NoError(t, err)

	directed := validFilmInput()
	directed.Name = "Something Else"
	directed.DirectorIDs = []uint{director.ID}
	byDirector, err := f.svc.CreateFilm(directed)
	require.NoError(t, err)

	results, err := f.svc.Search("upd", true, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{byTitle.ID, byDirector.ID}, filmIDs(results))

	results, err = f.svc.Search("upd", true, false)
	require.NoError(t, err)
	assert.Equal(t, []uint{byTitle.ID}, filmIDs(results))

	results, err = f.svc.Search("upd", false, true)
	require.NoError(t, err)
	assert.Equal(t, []uint{byDirector.ID}, filmIDs(results))
}

func TestGetDirectorFilmsSortedByYear(t *testing.T) {
	f := newFilmFixture(t, 1)

	director := models.Director{Name: "Ridley Scott"}
	require.NoError(t, f.directors.AddDirector(&director))

	newer := validFilmInput()
	newer.Name = "Gladiator"
	newer.ReleaseDate = time.Date(2000, time.May, 5, 0, 0, 0, 0, time.UTC)
	newer.DirectorIDs = []uint{director.ID}
	later, err := f.svc.CreateFilm(newer)
	require.NoError(t, err)

	older := validFilmInput()
	older.DirectorIDs = []uint{director.ID}
	earlier, err := f.svc.CreateFilm(older)
	require.NoError(t, err)

	films, err := f.svc.GetDirectorFilms(director.ID, storage.SortByYear)
	require.NoError(t, err)
	assert.Equal(t, []uint{earlier.ID, later.ID}, filmIDs(films))
}

func TestGetDirectorFilmsUnknownDirector(t *testing.T) {
	f := newFilmFixture(t, 0)

	_, err := f.svc.GetDirectorFilms(42, storage.SortByLikes)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteFilmScrubsLikesReviewsAndFeed(t *testing.T) {
	f := newFilmFixture(t, 1)

	film, err := f.svc.CreateFilm(validFilmInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.AddLike(1, film.ID))
	review := models.Review{Content: "Great", IsPositive: true, FilmID: film.ID, UserID: 1}
	require.NoError(t, f.reviews.AddReview(&review))
	require.NoError(t, f.feed.Append(&models.FeedEvent{
		UserID:    1,
		EventType: models.EventTypeReview,
		Operation: models.OperationAdd,
		EntityID:  review.ID,
	}))

	require.NoError(t, f.svc.DeleteFilm(film.ID))

	_, err = f.svc.GetFilm(film.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	ok, err := f.reviews.Contains(review.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	events, err := f.feed.ListByUser(1, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}
