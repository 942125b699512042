package storage

import "github.com/TBKaGOC/filmorate/internal/models"

// Sort orders accepted by FilmStorage.GetDirectorFilms.
const (
	SortByYear  = "year"
	SortByLikes = "likes"
)

// UserStorage holds user records and the directed friendship edge set.
// Implementations must upsert friendship edges keyed by the ordered
// (sender, recipient) pair rather than ever duplicating them.
type UserStorage interface {
	GetUsers() ([]models.User, error) // ascending id
	GetUser(id uint) (*models.User, error)
	GetUserByLoginOrEmail(login string) (*models.User, error)
	AddUser(user *models.User) error
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error // removes all edges touching the user
	Contains(id uint) (bool, error)

	UpsertFriendship(senderID, recipientID uint, confirmed bool) error
	DeleteFriendship(senderID, recipientID uint) (bool, error)
	FriendshipExists(senderID, recipientID uint) (bool, error)
	GetFriends(id uint) ([]models.User, error) // users reachable via outgoing edges, ascending id
	GetMutualFriends(id1, id2 uint) ([]models.User, error)
}

// FilmStorage holds films and the user-likes-film association.
type FilmStorage interface {
	GetFilms() ([]models.Film, error)
	GetFilm(id uint) (*models.Film, error)
	AddFilm(film *models.Film) error
	UpdateFilm(film *models.Film) error
	DeleteFilm(id uint) error // removes likes and association rows
	Contains(id uint) (bool, error)

	AddLike(userID, filmID uint) error // set semantics, duplicate is a no-op
	DeleteLike(userID, filmID uint) (bool, error)
	GetLikers(filmID uint) ([]uint, error)
	GetLikedFilms(userID uint) ([]models.Film, error) // ascending film id
	DeleteUserLikes(userID uint) error

	GetMostPopular(count int, genreID uint, year int) ([]models.Film, error)
	GetCommonFilms(userID, friendID uint) ([]models.Film, error)
	GetDirectorFilms(directorID uint, sortBy string) ([]models.Film, error)
	SearchByTitle(query string) ([]models.Film, error)
	SearchByDirector(query string) ([]models.Film, error)
}

// FeedStorage is an append-only log of domain events per user.
type FeedStorage interface {
	Append(event *models.FeedEvent) error
	ListByUser(userID uint, limit int) ([]models.FeedEvent, error) // most recent first
	DeleteByUser(userID uint) error
	DeleteByEntity(eventType models.FeedEventType, entityID uint) error
}

// ReviewStorage holds film reviews and per-user reactions to them.
type ReviewStorage interface {
	GetReview(id uint) (*models.Review, error)
	GetReviews(filmID uint, count int) ([]models.Review, error) // filmID 0 = all films; useful desc
	GetReviewsByFilm(filmID uint) ([]uint, error)
	AddReview(review *models.Review) error
	UpdateReview(review *models.Review) error
	DeleteReview(id uint) error
	Contains(id uint) (bool, error)

	// SetReaction upserts the user's reaction (+1 like, -1 dislike) and
	// adjusts the review's Useful score accordingly.
	SetReaction(reviewID, userID uint, value int) error
	DeleteReaction(reviewID, userID uint) (bool, error)
}

// DirectorStorage holds director records.
type DirectorStorage interface {
	GetDirectors() ([]models.Director, error)
	GetDirector(id uint) (*models.Director, error)
	AddDirector(director *models.Director) error
	UpdateDirector(director *models.Director) error
	DeleteDirector(id uint) error
	Contains(id uint) (bool, error)
}

// GenreStorage exposes the static genre catalog.
type GenreStorage interface {
	GetGenres() ([]models.Genre, error)
	GetGenre(id uint) (*models.Genre, error)
}

// MpaStorage exposes the static MPA rating catalog.
type MpaStorage interface {
	GetRatings() ([]models.MpaRating, error)
	GetRating(id uint) (*models.MpaRating, error)
}
