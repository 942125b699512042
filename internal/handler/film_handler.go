package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/service"
)

// region --- DTOs ---

// MpaInput references an MPA rating by id.
type MpaInput struct {
	ID uint `json:"id" binding:"required" example:"1"`
}

// IDRef references an associated entity by id.
type IDRef struct {
	ID uint `json:"id" binding:"required" example:"1"`
}

// CreateFilmInput defines the structure for creating a film.
type CreateFilmInput struct {
	Name        string    `json:"name" binding:"required" example:"Alien"`
	Description string    `json:"description" example:"In space no one can hear you scream"`
	ReleaseDate string    `json:"releaseDate" binding:"required" example:"1979-05-25"`
	Duration    int       `json:"duration" binding:"required" example:"117"`
	Mpa         *MpaInput `json:"mpa"`
	Genres      []IDRef   `json:"genres"`
	Directors   []IDRef   `json:"directors"`
}

// UpdateFilmInput defines the structure for a partial film update.
type UpdateFilmInput struct {
	ID          uint      `json:"id" binding:"required" example:"1"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	ReleaseDate *string   `json:"releaseDate"`
	Duration    *int      `json:"duration"`
	Mpa         *MpaInput `json:"mpa"`
	Genres      []IDRef   `json:"genres"`
	Directors   []IDRef   `json:"directors"`
}

// GenreResponse defines the structure for a genre.
type GenreResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Comedy"`
}

// MpaResponse defines the structure for an MPA rating.
type MpaResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"G"`
}

// DirectorResponse defines the structure for a director.
type DirectorResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Ridley Scott"`
}

// FilmResponse defines the structure for a film.
type FilmResponse struct {
	ID          uint               `json:"id" example:"1"`
	Name        string             `json:"name" example:"Alien"`
	Description string             `json:"description"`
	ReleaseDate string             `json:"releaseDate" example:"1979-05-25"`
	Duration    int                `json:"duration" example:"117"`
	Mpa         *MpaResponse       `json:"mpa,omitempty"`
	Genres      []GenreResponse    `json:"genres"`
	Directors   []DirectorResponse `json:"directors"`
}

func buildFilmResponse(film models.Film) FilmResponse {
	releaseDate := ""
	if !film.ReleaseDate.IsZero() {
		releaseDate = film.ReleaseDate.Format(dateLayout)
	}

	genres := make([]GenreResponse, 0, len(film.Genres))
	for _, g := range film.Genres {
		if g != nil {
			genres = append(genres, GenreResponse{ID: g.ID, Name: g.Name})
		}
	}
	directors := make([]DirectorResponse, 0, len(film.Directors))
	for _, d := range film.Directors {
		if d != nil {
			directors = append(directors, DirectorResponse{ID: d.ID, Name: d.Name})
		}
	}

	var mpa *MpaResponse
	if film.MpaRatingID != 0 {
		mpa = &MpaResponse{ID: film.MpaRating.ID, Name: film.MpaRating.Name}
	}

	return FilmResponse{
		ID:          film.ID,
		Name:        film.Name,
		Description: film.Description,
		ReleaseDate: releaseDate,
		Duration:    film.Duration,
		Mpa:         mpa,
		Genres:      genres,
		Directors:   directors,
	}
}

func buildFilmResponses(films []models.Film) []FilmResponse {
	responses := make([]FilmResponse, 0, len(films))
	for _, f := range films {
		responses = append(responses, buildFilmResponse(f))
	}
	return responses
}

func idsOf(refs []IDRef) []uint {
	ids := make([]uint, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

// endregion

// FilmHandler serves the film catalogue and like routes.
type FilmHandler struct {
	films *service.FilmService
}

// NewFilmHandler creates a FilmHandler with its dependencies.
func NewFilmHandler(films *service.FilmService) *FilmHandler {
	return &FilmHandler{films: films}
}

// GetFilms godoc
// @Summary      List films
// @Tags         films
// @Produce      json
// @Success      200  {array}  FilmResponse
// @Router       /films [get]
func (h *FilmHandler) GetFilms(c *gin.Context) {
	films, err := h.films.GetFilms()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildFilmResponses(films))
}

// GetFilm godoc
// @Summary      Get film by ID
// @Tags         films
// @Produce      json
// @Param        id   path      int  true  "Film ID"
// @Success      200  {object}  FilmResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /films/{id} [get]
func (h *FilmHandler) GetFilm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	film, err := h.films.GetFilm(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildFilmResponse(*film))
}

// CreateFilm godoc
// @Summary      Create a film
// @Tags         films
// @Accept       json
// @Produce      json
// @Param        input body CreateFilmInput true "Film Info"
// @Success      201  {object}  FilmResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Referenced genre, MPA rating or director not found"
// @Router       /films [post]
func (h *FilmHandler) CreateFilm(c *gin.Context) {
	var input CreateFilmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	releaseDate, ok := parseDate(c, input.ReleaseDate)
	if !ok {
		return
	}

	filmInput := service.FilmInput{
		Name:        input.Name,
		Description: input.Description,
		ReleaseDate: releaseDate,
		Duration:    input.Duration,
		GenreIDs:    idsOf(input.Genres),
		DirectorIDs: idsOf(input.Directors),
	}
	if input.Mpa != nil {
		filmInput.MpaID = input.Mpa.ID
	}

	film, err := h.films.CreateFilm(filmInput)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildFilmResponse(*film))
}

// UpdateFilm godoc
// @Summary      Update a film
// @Description  Applies a partial update; omitted fields keep their value.
// @Tags         films
// @Accept       json
// @Produce      json
// @Param        input body UpdateFilmInput true "New Film Info"
// @Success      200  {object}  FilmResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /films [put]
func (h *FilmHandler) UpdateFilm(c *gin.Context) {
	var input UpdateFilmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := service.FilmUpdate{
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
	}
	if input.ReleaseDate != nil {
		releaseDate, ok := parseDate(c, *input.ReleaseDate)
		if !ok {
			return
		}
		upd.ReleaseDate = &releaseDate
	}
	if input.Mpa != nil {
		upd.MpaID = &input.Mpa.ID
	}
	if input.Genres != nil {
		upd.GenreIDs = idsOf(input.Genres)
	}
	if input.Directors != nil {
		upd.DirectorIDs = idsOf(input.Directors)
	}

	film, err := h.films.UpdateFilm(input.ID, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildFilmResponse(*film))
}

// DeleteFilm godoc
// @Summary      Delete a film
// @Description  Removes the film, its likes, its reviews and referencing feed events.
// @Tags         films
// @Param        id   path  int  true  "Film ID"
// @Success      204  "No Content"
// @Router       /films/{id} [delete]
func (h *FilmHandler) DeleteFilm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.films.DeleteFilm(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LikeFilm godoc
// @Summary      Like a film
// @Tags         likes
// @Produce      json
// @Param        id      path  int  true  "Film ID"
// @Param        userId  path  int  true  "User ID"
// @Success      200  {object}  FilmResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /films/{id}/like/{userId} [put]
func (h *FilmHandler) LikeFilm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if err := h.films.AddLike(userID, id); err != nil {
		respondError(c, err)
		return
	}
	film, err := h.films.GetFilm(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildFilmResponse(*film))
}

// UnlikeFilm godoc
// @Summary      Remove a like from a film
// @Tags         likes
// @Param        id      path  int  true  "Film ID"
// @Param        userId  path  int  true  "User ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse
// @Router       /films/{id}/like/{userId} [delete]
func (h *FilmHandler) UnlikeFilm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if err := h.films.DeleteLike(userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMostPopular godoc
// @Summary      List the most popular films
// @Description  Orders films by like count; optional genre and release-year filters.
// @Tags         films
// @Produce      json
// @Param        count    query  int  false  "Max films to return"  default(10)
// @Param        genreId  query  int  false  "Filter by genre"
// @Param        year     query  int  false  "Filter by release year"
// @Success      200  {array}  FilmResponse
// @Router       /films/popular [get]
func (h *FilmHandler) GetMostPopular(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "10"))
	if err != nil || count < 1 {
		count = 10
	}
	genreID, _ := strconv.ParseUint(c.DefaultQuery("genreId", "0"), 10, 32)
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	films, err := h.films.GetMostPopular(count, uint(genreID), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildFilmResponses(films))
}

// GetCommonFilms godoc
// @Summary      List films two users both liked
// @Tags         films
// @Produce      json
// @Param        userId    query  int  true  "User ID"
// @Param        friendId  query  int  true  "Friend User ID"
// @Success      200  {array}   FilmResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /films/common [get]
func (h *FilmHandler) GetCommonFilms(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
		return
	}
	friendID, err := strconv.ParseUint(c.Query("friendId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friendId"})
		return
	}

	films, err := h.films.GetCommonFilms(uint(userID), uint(friendID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildFilmResponses(films))
}

// SearchFilms godoc
// @Summary      Search films
// @Description  Finds films whose title and/or director name contains the query.
// @Tags         films
// @Produce      json
// @Param        query  query  string  true   "Search text"
// @Param        by     query  string  false  "Comma-separated fields: title, director"  default(title)
// @Success      200  {array}  FilmResponse
// @Router       /films/search [get]
func (h *FilmHandler) SearchFilms(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'query' parameter is required"})
		return
	}
	by := c.DefaultQuery("by", "title")
	byTitle := strings.Contains(by, "title")
	byDirector := strings.Contains(by, "director")
	if !byTitle && !byDirector {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The 'by' parameter must name title and/or director"})
		return
	}

	films, err := h.films.Search(query, byTitle, byDirector)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildFilmResponses(films))
}

func parseDate(c *gin.Context, value string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}
