package service

import (
	"fmt"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

// FriendshipService mediates all state transitions on the friendship edge
// set and records a feed event for every effective mutation.
//
// The edge state machine per ordered pair (A, B): no edge, pending (A
// requested B), confirmed (both directions exist). A pending edge the user
// sent is already visible to the sender as a one-directional friend until
// the recipient reciprocates.
type FriendshipService struct {
	users storage.UserStorage
	feed  storage.FeedStorage
}

// NewFriendshipService creates a friendship manager over the given stores.
func NewFriendshipService(users storage.UserStorage, feed storage.FeedStorage) *FriendshipService {
	return &FriendshipService{users: users, feed: feed}
}

// RequestFriend creates a pending edge sender->recipient, or, when the
// recipient had already requested the sender, confirms the friendship in
// both directions. Emits a FRIEND/ADD event attributed to the sender,
// exactly once per call.
func (s *FriendshipService) RequestFriend(senderID, recipientID uint) error {
	if senderID == recipientID {
		return fmt.Errorf("user %d cannot befriend themselves: %w", senderID, storage.ErrCorruptedData)
	}
	if err := s.requireUsers(senderID, recipientID); err != nil {
		return err
	}

	reciprocal, err := s.users.FriendshipExists(recipientID, senderID)
	if err != nil {
		return err
	}
	if reciprocal {
		if err := s.users.UpsertFriendship(recipientID, senderID, true); err != nil {
			return err
		}
		if err := s.users.UpsertFriendship(senderID, recipientID, true); err != nil {
			return err
		}
	} else {
		if err := s.users.UpsertFriendship(senderID, recipientID, false); err != nil {
			return err
		}
	}

	return s.feed.Append(&models.FeedEvent{
		UserID:    senderID,
		EventType: models.EventTypeFriend,
		Operation: models.OperationAdd,
		EntityID:  recipientID,
	})
}

// RemoveFriend deletes the edges between the pair in both directions.
// Removing a non-existent friendship is a silent no-op; the FRIEND/REMOVE
// event is emitted only when an edge was actually removed.
func (s *FriendshipService) RemoveFriend(senderID, recipientID uint) error {
	if err := s.requireUsers(senderID, recipientID); err != nil {
		return err
	}

	removedOut, err := s.users.DeleteFriendship(senderID, recipientID)
	if err != nil {
		return err
	}
	removedIn, err := s.users.DeleteFriendship(recipientID, senderID)
	if err != nil {
		return err
	}
	if !removedOut && !removedIn {
		return nil
	}

	return s.feed.Append(&models.FeedEvent{
		UserID:    senderID,
		EventType: models.EventTypeFriend,
		Operation: models.OperationRemove,
		EntityID:  recipientID,
	})
}

// ListFriends returns the users reachable via an outgoing edge from the
// given user, pending and confirmed alike.
func (s *FriendshipService) ListFriends(userID uint) ([]models.User, error) {
	return s.users.GetFriends(userID)
}

// MutualFriends returns the intersection of both users' friend sets.
// The result is identical regardless of argument order.
func (s *FriendshipService) MutualFriends(id1, id2 uint) ([]models.User, error) {
	if err := s.requireUsers(id1, id2); err != nil {
		return nil, err
	}
	return s.users.GetMutualFriends(id1, id2)
}

func (s *FriendshipService) requireUsers(ids ...uint) error {
	for _, id := range ids {
		ok, err := s.users.Contains(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
		}
	}
	return nil
}
