package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/service"
)

// DirectorInput defines the structure for creating a director.
type DirectorInput struct {
	Name string `json:"name" binding:"required" example:"Ridley Scott"`
}

// UpdateDirectorInput defines the structure for updating a director.
type UpdateDirectorInput struct {
	ID   uint   `json:"id" binding:"required" example:"1"`
	Name string `json:"name" binding:"required" example:"Ridley Scott"`
}

// DirectorHandler serves the director routes.
type DirectorHandler struct {
	directors *service.DirectorService
	films     *service.FilmService
}

// NewDirectorHandler creates a DirectorHandler with its dependencies.
func NewDirectorHandler(directors *service.DirectorService, films *service.FilmService) *DirectorHandler {
	return &DirectorHandler{directors: directors, films: films}
}

// GetDirectors godoc
// @Summary      List directors
// @Tags         directors
// @Produce      json
// @Success      200  {array}  DirectorResponse
// @Router       /directors [get]
func (h *DirectorHandler) GetDirectors(c *gin.Context) {
	directors, err := h.directors.GetDirectors()
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]DirectorResponse, 0, len(directors))
	for _, d := range directors {
		responses = append(responses, DirectorResponse{ID: d.ID, Name: d.Name})
	}
	c.JSON(http.StatusOK, responses)
}

// GetDirector godoc
// @Summary      Get director by ID
// @Tags         directors
// @Produce      json
// @Param        id   path      int  true  "Director ID"
// @Success      200  {object}  DirectorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /directors/{id} [get]
func (h *DirectorHandler) GetDirector(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	director, err := h.directors.GetDirector(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DirectorResponse{ID: director.ID, Name: director.Name})
}

// CreateDirector godoc
// @Summary      Create a director
// @Tags         directors
// @Accept       json
// @Produce      json
// @Param        input body DirectorInput true "Director Info"
// @Success      201  {object}  DirectorResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /directors [post]
func (h *DirectorHandler) CreateDirector(c *gin.Context) {
	var input DirectorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	director := models.Director{Name: input.Name}
	if err := h.directors.CreateDirector(&director); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, DirectorResponse{ID: director.ID, Name: director.Name})
}

// UpdateDirector godoc
// @Summary      Update a director
// @Tags         directors
// @Accept       json
// @Produce      json
// @Param        input body UpdateDirectorInput true "New Director Info"
// @Success      200  {object}  DirectorResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /directors [put]
func (h *DirectorHandler) UpdateDirector(c *gin.Context) {
	var input UpdateDirectorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	director, err := h.directors.UpdateDirector(input.ID, input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DirectorResponse{ID: director.ID, Name: director.Name})
}

// DeleteDirector godoc
// @Summary      Delete a director
// @Tags         directors
// @Param        id   path  int  true  "Director ID"
// @Success      204  "No Content"
// @Router       /directors/{id} [delete]
func (h *DirectorHandler) DeleteDirector(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.directors.DeleteDirector(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDirectorFilms godoc
// @Summary      List a director's films
// @Tags         directors
// @Produce      json
// @Param        id      path   int     true   "Director ID"
// @Param        sortBy  query  string  false  "Sort order (year or likes)"
// @Success      200  {array}   FilmResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /directors/{id}/films [get]
func (h *DirectorHandler) GetDirectorFilms(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	films, err := h.films.GetDirectorFilms(id, c.Query("sortBy"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildFilmResponses(films))
}
