package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
	"github.com/TBKaGOC/filmorate/internal/storage/memory"
)

func newSocialFixture(t *testing.T) (*SocialService, *memory.FeedStorage) {
	t.Helper()
	users := memory.NewUserStorage()
	feed := memory.NewFeedStorage()
	user := models.User{Login: "dolly", Email: "dolly@example.com"}
	require.NoError(t, users.AddUser(&user))
	friends := NewFriendshipService(users, feed)
	return NewSocialService(friends, users, feed), feed
}

func TestGetFeedMostRecentFirst(t *testing.T) {
	svc, feed := newSocialFixture(t)

	for i := uint(1); i <= 3; i++ {
		require.NoError(t, feed.Append(&models.FeedEvent{
			UserID:    1,
			EventType: models.EventTypeLike,
			Operation: models.OperationAdd,
			EntityID:  i,
		}))
	}

	events, err := svc.GetFeed(1, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, uint(3), events[0].EntityID)
	assert.Equal(t, uint(2), events[1].EntityID)
	assert.Equal(t, uint(1), events[2].EntityID)

	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i].Timestamp, events[i-1].Timestamp)
	}
}

func TestGetFeedDefaultLimit(t *testing.T) {
	svc, feed := newSocialFixture(t)

	for i := uint(1); i <= 15; i++ {
		require.NoError(t, feed.Append(&models.FeedEvent{
			UserID:    1,
			EventType: models.EventTypeLike,
			Operation: models.OperationAdd,
			EntityID:  i,
		}))
	}

	events, err := svc.GetFeed(1, 0)
	require.NoError(t, err)
	assert.Len(t, events, DefaultFeedLimit)
	// The newest events survive the cut.
	assert.Equal(t, uint(15), events[0].EntityID)
}

func TestGetFeedExplicitLimit(t *testing.T) {
	svc, feed := newSocialFixture(t)

	for i := uint(1); i <= 5; i++ {
		require.NoError(t, feed.Append(&models.FeedEvent{
			UserID:    1,
			EventType: models.EventTypeLike,
			Operation: models.OperationAdd,
			EntityID:  i,
		}))
	}

	events, err := svc.GetFeed(1, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestGetFeedUnknownUser(t *testing.T) {
	svc, _ := newSocialFixture(t)

	_, err := svc.GetFeed(42, 0)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetFeedOnlyOwnEvents(t *testing.T) {
	svc, feed := newSocialFixture(t)

	require.NoError(t, feed.Append(&models.FeedEvent{
		UserID:    1,
		EventType: models.EventTypeFriend,
		Operation: models.OperationAdd,
		EntityID:  2,
	}))
	require.NoError(t, feed.Append(&models.FeedEvent{
		UserID:    2,
		EventType: models.EventTypeFriend,
		Operation: models.OperationAdd,
		EntityID:  1,
	}))

	events, err := svc.GetFeed(1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint(1), events[0].UserID)
}
