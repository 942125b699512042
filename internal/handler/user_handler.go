package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/service"
)

// region --- DTOs ---

// CreateUserInput defines the structure for creating a user.
type CreateUserInput struct {
	Login    string `json:"login" binding:"required" example:"moviebuff"`
	Email    string `json:"email" binding:"required,email" example:"buff@example.com"`
	Name     string `json:"name" example:"Movie Buff"`
	Birthday string `json:"birthday" example:"1990-05-17"`
}

// UpdateUserInput defines the structure for a partial user update.
type UpdateUserInput struct {
	ID       uint    `json:"id" binding:"required" example:"1"`
	Login    *string `json:"login"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Birthday *string `json:"birthday"`
}

// UserResponse defines the structure for a user's profile.
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Login    string `json:"login" example:"moviebuff"`
	Email    string `json:"email" example:"buff@example.com"`
	Name     string `json:"name" example:"Movie Buff"`
	Birthday string `json:"birthday" example:"1990-05-17"`
}

// FeedEventResponse defines the structure for an activity feed entry.
type FeedEventResponse struct {
	EventID   uint   `json:"eventId" example:"1"`
	Timestamp int64  `json:"timestamp" example:"1670590017281"`
	UserID    uint   `json:"userId" example:"1"`
	EventType string `json:"eventType" example:"FRIEND"`
	Operation string `json:"operation" example:"ADD"`
	EntityID  uint   `json:"entityId" example:"2"`
}

func buildUserResponse(user models.User) UserResponse {
	birthday := ""
	if !user.Birthday.IsZero() {
		birthday = user.Birthday.Format(dateLayout)
	}
	return UserResponse{
		ID:       user.ID,
		Login:    user.Login,
		Email:    user.Email,
		Name:     user.Name,
		Birthday: birthday,
	}
}

func buildUserResponses(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, buildUserResponse(u))
	}
	return responses
}

// endregion

// UserHandler serves the user, friendship, feed and recommendation routes.
type UserHandler struct {
	users           *service.UserService
	friends         *service.FriendshipService
	social          *service.SocialService
	recommendations *service.RecommendationService
}

// NewUserHandler creates a UserHandler with its dependencies.
func NewUserHandler(
	users *service.UserService,
	friends *service.FriendshipService,
	social *service.SocialService,
	recommendations *service.RecommendationService,
) *UserHandler {
	return &UserHandler{
		users:           users,
		friends:         friends,
		social:          social,
		recommendations: recommendations,
	}
}

// GetUsers godoc
// @Summary      List users
// @Description  Returns all registered users.
// @Tags         users
// @Produce      json
// @Success      200  {array}   UserResponse
// @Router       /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.users.GetUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildUserResponses(users))
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  UserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildUserResponse(*user))
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Registers a new user without credentials (see /auth/register for the credentialed path).
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body CreateUserInput true "User Info"
// @Success      201  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Login or email already in use"
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthday, ok := parseBirthday(c, input.Birthday)
	if !ok {
		return
	}

	user := models.User{
		Login:    input.Login,
		Email:    input.Email,
		Name:     input.Name,
		Birthday: birthday,
	}
	if err := h.users.CreateUser(&user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildUserResponse(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Applies a partial update; omitted fields keep their value.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body UpdateUserInput true "New User Info"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := service.UserUpdate{
		Login: input.Login,
		Email: input.Email,
		Name:  input.Name,
	}
	if input.Birthday != nil {
		birthday, ok := parseBirthday(c, *input.Birthday)
		if !ok {
			return
		}
		upd.Birthday = &birthday
	}

	user, err := h.users.UpdateUser(input.ID, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildUserResponse(*user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Removes the user, their friendship edges, likes and feed events.
// @Tags         users
// @Param        id   path  int  true  "User ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.users.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFriend godoc
// @Summary      Send or confirm a friend request
// @Description  Creates a pending edge, or confirms the friendship when the other user already requested.
// @Tags         friendship
// @Produce      json
// @Param        id        path  int  true  "Sender User ID"
// @Param        friendId  path  int  true  "Recipient User ID"
// @Success      200  {array}   UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/friends/{friendId} [put]
func (h *UserHandler) AddFriend(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	friendID, ok := parseID(c, "friendId")
	if !ok {
		return
	}
	if err := h.friends.RequestFriend(id, friendID); err != nil {
		respondError(c, err)
		return
	}

	sender, err := h.users.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	recipient, err := h.users.GetUser(friendID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, []UserResponse{buildUserResponse(*sender), buildUserResponse(*recipient)})
}

// RemoveFriend godoc
// @Summary      Remove a friend
// @Description  Deletes the friendship edges between the pair; a no-op when none exist.
// @Tags         friendship
// @Param        id        path  int  true  "User ID"
// @Param        friendId  path  int  true  "Friend User ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/friends/{friendId} [delete]
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	friendID, ok := parseID(c, "friendId")
	if !ok {
		return
	}
	if err := h.friends.RemoveFriend(id, friendID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFriends godoc
// @Summary      List a user's friends
// @Tags         friendship
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   UserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/friends [get]
func (h *UserHandler) GetFriends(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	friends, err := h.social.GetFriends(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildUserResponses(friends))
}

// GetMutualFriends godoc
// @Summary      List mutual friends of two users
// @Tags         friendship
// @Produce      json
// @Param        id       path      int  true  "User ID"
// @Param        otherId  path      int  true  "Other User ID"
// @Success      200  {array}   UserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/friends/common/{otherId} [get]
func (h *UserHandler) GetMutualFriends(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	otherID, ok := parseID(c, "otherId")
	if !ok {
		return
	}
	mutual, err := h.social.GetMutualFriends(id, otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildUserResponses(mutual))
}

// GetFeed godoc
// @Summary      Get a user's activity feed
// @Description  Returns the user's feed events, most recent first.
// @Tags         feed
// @Produce      json
// @Param        id     path      int  true   "User ID"
// @Param        count  query     int  false  "Max events to return"  default(10)
// @Success      200  {array}   FeedEventResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/feed [get]
func (h *UserHandler) GetFeed(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	count, err := strconv.Atoi(c.DefaultQuery("count", "10"))
	if err != nil || count < 1 {
		count = 10
	}

	events, err := h.social.GetFeed(id, count)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]FeedEventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, FeedEventResponse{
			EventID:   e.EventID,
			Timestamp: e.Timestamp,
			UserID:    e.UserID,
			EventType: string(e.EventType),
			Operation: string(e.Operation),
			EntityID:  e.EntityID,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetRecommendations godoc
// @Summary      Get film recommendations for a user
// @Description  Suggests unseen films liked by the most similar other user.
// @Tags         recommendations
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   FilmResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/recommendations [get]
func (h *UserHandler) GetRecommendations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	films, err := h.recommendations.GetRecommendations(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildFilmResponses(films))
}

func parseBirthday(c *gin.Context, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	birthday, err := time.Parse(dateLayout, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birthday, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	if birthday.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Birthday cannot be in the future"})
		return time.Time{}, false
	}
	return birthday, true
}
