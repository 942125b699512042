package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/service"
)

// CreateReviewInput defines the structure for creating a review.
type CreateReviewInput struct {
	Content    string `json:"content" binding:"required" example:"A masterpiece of slow-burn horror"`
	IsPositive *bool  `json:"isPositive" binding:"required" example:"true"`
	FilmID     uint   `json:"filmId" binding:"required" example:"1"`
	UserID     uint   `json:"userId" binding:"required" example:"1"`
}

// UpdateReviewInput defines the structure for updating a review.
type UpdateReviewInput struct {
	ID         uint   `json:"reviewId" binding:"required" example:"1"`
	Content    string `json:"content" binding:"required"`
	IsPositive *bool  `json:"isPositive" binding:"required"`
}

// ReviewResponse defines the structure for a review.
type ReviewResponse struct {
	ID         uint   `json:"reviewId" example:"1"`
	Content    string `json:"content"`
	IsPositive bool   `json:"isPositive" example:"true"`
	FilmID     uint   `json:"filmId" example:"1"`
	UserID     uint   `json:"userId" example:"1"`
	Useful     int    `json:"useful" example:"3"`
}

func buildReviewResponse(review models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		Content:    review.Content,
		IsPositive: review.IsPositive,
		FilmID:     review.FilmID,
		UserID:     review.UserID,
		Useful:     review.Useful,
	}
}

// ReviewHandler serves the review and review-reaction routes.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a ReviewHandler with its dependencies.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// GetReviews godoc
// @Summary      List reviews
// @Description  Returns reviews ordered by usefulness, optionally for a single film.
// @Tags         reviews
// @Produce      json
// @Param        filmId  query  int  false  "Film ID"
// @Param        count   query  int  false  "Max reviews to return"  default(10)
// @Success      200  {array}   ReviewResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews [get]
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	filmID, _ := strconv.ParseUint(c.DefaultQuery("filmId", "0"), 10, 32)
	count, err := strconv.Atoi(c.DefaultQuery("count", "10"))
	if err != nil || count < 1 {
		count = 10
	}

	reviews, err := h.reviews.GetReviews(uint(filmID), count)
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, buildReviewResponse(r))
	}
	c.JSON(http.StatusOK, responses)
}

// GetReview godoc
// @Summary      Get review by ID
// @Tags         reviews
// @Produce      json
// @Param        id   path      int  true  "Review ID"
// @Success      200  {object}  ReviewResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	review, err := h.reviews.GetReview(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildReviewResponse(*review))
}

// CreateReview godoc
// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        input body CreateReviewInput true "Review Info"
// @Success      201  {object}  ReviewResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Film or user not found"
// @Router       /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review := models.Review{
		Content:    input.Content,
		IsPositive: *input.IsPositive,
		FilmID:     input.FilmID,
		UserID:     input.UserID,
	}
	if err := h.reviews.AddReview(&review); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildReviewResponse(review))
}

// UpdateReview godoc
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        input body UpdateReviewInput true "New Review Info"
// @Success      200  {object}  ReviewResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var input UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviews.UpdateReview(input.ID, input.Content, *input.IsPositive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildReviewResponse(*review))
}

// DeleteReview godoc
// @Summary      Delete a review
// @Tags         reviews
// @Param        id   path  int  true  "Review ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.reviews.DeleteReview(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LikeReview godoc
// @Summary      Like a review
// @Tags         reviews
// @Param        id      path  int  true  "Review ID"
// @Param        userId  path  int  true  "User ID"
// @Success      200  "OK"
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews/{id}/like/{userId} [put]
func (h *ReviewHandler) LikeReview(c *gin.Context) {
	h.react(c, h.reviews.LikeReview)
}

// DislikeReview godoc
// @Summary      Dislike a review
// @Tags         reviews
// @Param        id      path  int  true  "Review ID"
// @Param        userId  path  int  true  "User ID"
// @Success      200  "OK"
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews/{id}/dislike/{userId} [put]
func (h *ReviewHandler) DislikeReview(c *gin.Context) {
	h.react(c, h.reviews.DislikeReview)
}

// RemoveReaction godoc
// @Summary      Remove a review reaction
// @Tags         reviews
// @Param        id      path  int  true  "Review ID"
// @Param        userId  path  int  true  "User ID"
// @Success      200  "OK"
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews/{id}/like/{userId} [delete]
func (h *ReviewHandler) RemoveReaction(c *gin.Context) {
	h.react(c, h.reviews.RemoveReaction)
}

func (h *ReviewHandler) react(c *gin.Context, apply func(reviewID, userID uint) error) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if err := apply(id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
