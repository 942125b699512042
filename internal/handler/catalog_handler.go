package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TBKaGOC/filmorate/internal/service"
)

// CatalogHandler serves the static genre and MPA rating catalogs.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler with its dependencies.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetGenres godoc
// @Summary      List genres
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  GenreResponse
// @Router       /genres [get]
func (h *CatalogHandler) GetGenres(c *gin.Context) {
	genres, err := h.catalog.GetGenres()
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		responses = append(responses, GenreResponse{ID: g.ID, Name: g.Name})
	}
	c.JSON(http.StatusOK, responses)
}

// GetGenre godoc
// @Summary      Get genre by ID
// @Tags         catalog
// @Produce      json
// @Param        id   path      int  true  "Genre ID"
// @Success      200  {object}  GenreResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /genres/{id} [get]
func (h *CatalogHandler) GetGenre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	genre, err := h.catalog.GetGenre(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, GenreResponse{ID: genre.ID, Name: genre.Name})
}

// GetRatings godoc
// @Summary      List MPA ratings
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  MpaResponse
// @Router       /mpa [get]
func (h *CatalogHandler) GetRatings(c *gin.Context) {
	ratings, err := h.catalog.GetRatings()
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]MpaResponse, 0, len(ratings))
	for _, r := range ratings {
		responses = append(responses, MpaResponse{ID: r.ID, Name: r.Name})
	}
	c.JSON(http.StatusOK, responses)
}

// GetRating godoc
// @Summary      Get MPA rating by ID
// @Tags         catalog
// @Produce      json
// @Param        id   path      int  true  "Rating ID"
// @Success      200  {object}  MpaResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /mpa/{id} [get]
func (h *CatalogHandler) GetRating(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rating, err := h.catalog.GetRating(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MpaResponse{ID: rating.ID, Name: rating.Name})
}
