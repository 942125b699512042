package service

import (
	"fmt"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// DefaultFeedLimit bounds GetFeed when the caller supplies no count.
const DefaultFeedLimit = 10

// SocialService is a thin read facade over the friendship manager and the
// feed store. It owns no state of its own.
type SocialService struct {
	friends *FriendshipService
	users   storage.UserStorage
	feed    storage.FeedStorage
}

// NewSocialService creates the social query facade.
func NewSocialService(friends *FriendshipService, users storage.UserStorage, feed storage.FeedStorage) *SocialService {
	return &SocialService{friends: friends, users: users, feed: feed}
}

// GetFriends returns the user's friends.
func (s *SocialService) GetFriends(userID uint) ([]models.User, error) {
	return s.friends.ListFriends(userID)
}

// GetMutualFriends returns the friends both users share.
func (s *SocialService) GetMutualFriends(id1, id2 uint) ([]models.User, error) {
	return s.friends.MutualFriends(id1, id2)
}

// GetFeed returns the user's activity feed, most recent first, limited to
// the given count (DefaultFeedLimit when count <= 0).
func (s *SocialService) GetFeed(userID uint, count int) ([]models.FeedEvent, error) {
	ok, err := s.users.Contains(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, storage.ErrNotFound)
	}
	if count <= 0 {
		count = DefaultFeedLimit
	}
	return s.feed.ListByUser(userID, count)
}
