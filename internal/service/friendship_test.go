package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
	"github.com/TBKaGOC/filmorate/internal/storage/memory"
)

func newFriendshipFixture(t *testing.T, userCount int) (*FriendshipService, *memory.UserStorage, *memory.FeedStorage) {
	t.Helper()
	users := memory.NewUserStorage()
	feed := memory.NewFeedStorage()
	for i := 0; i < userCount; i++ {
		login := string(rune('a' + i))
		user := models.User{
			Login:    login,
			Email:    login + "@example.com",
			Name:     login,
			Birthday: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, users.AddUser(&user))
	}
	return NewFriendshipService(users, feed), users, feed
}

func friendIDs(t *testing.T, svc *FriendshipService, userID uint) []uint {
	t.Helper()
	friends, err := svc.ListFriends(userID)
	require.NoError(t, err)
	ids := make([]uint, 0, len(friends))
	for _, f := range friends {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestRequestFriendPendingVisibleToSenderOnly(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, 2)

	require.NoError(t, svc.RequestFriend(1, 2))

	assert.Equal(t, []uint{2}, friendIDs(t, svc, 1))
	assert.Empty(t, friendIDs(t, svc, 2))
}

func TestRequestFriendReciprocalConfirmsBothDirections(t *testing.T) {
	svc, users, _ := newFriendshipFixture(t, 2)

	require.NoError(t, svc.RequestFriend(1, 2))
	require.NoError(t, svc.RequestFriend(2, 1))

	assert.Equal(t, []uint{2}, friendIDs(t, svc, 1))
	assert.Equal(t, []uint{1}, friendIDs(t, svc, 2))

	ok, err := users.FriendshipExists(1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = users.FriendshipExists(2, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRequestFriendSelfRejected(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, 1)

	err := svc.RequestFriend(1, 1)
	assert.ErrorIs(t, err, storage.ErrCorruptedData)
}

func TestRequestFriendUnknownUser(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, 1)

	assert.ErrorIs(t, svc.RequestFriend(1, 42), storage.ErrNotFound)
	assert.ErrorIs(t, svc.RequestFriend(42, 1), storage.ErrNotFound)
}

func TestRequestFriendEmitsOneEventPerCall(t *testing.T) {
	svc, _, feed := newFriendshipFixture(t, 2)

	require.NoError(t, svc.RequestFriend(1, 2))
	require.NoError(t, svc.RequestFriend(2, 1))

	events, err := feed.ListByUser(1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventTypeFriend, events[0].EventType)
	assert.Equal(t, models.OperationAdd, events[0].Operation)
	assert.Equal(t, uint(2), events[0].EntityID)

	events, err = feed.ListByUser(2, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint(1), events[0].EntityID)
}

func TestRemoveFriendDeletesBothDirections(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, 2)

	require.NoError(t, svc.RequestFriend(1, 2))
	require.NoError(t, svc.RequestFriend(2, 1))
	require.NoError(t, svc.RemoveFriend(1, 2))

	assert.Empty(t, friendIDs(t, svc, 1))
	assert.Empty(t, friendIDs(t, svc, 2))
}

func TestRemoveFriendNoOpEmitsNoEvent(t *testing.T) {
	svc, _, feed := newFriendshipFixture(t, 2)

	require.NoError(t, svc.RemoveFriend(1, 2))

	events, err := feed.ListByUser(1, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRemoveFriendEmitsEventWhenEdgeRemoved(t *testing.T) {
	svc, _, feed := newFriendshipFixture(t, 2)

	require.NoError(t, svc.RequestFriend(1, 2))
	require.NoError(t, svc.RemoveFriend(2, 1))

	events, err := feed.ListByUser(2, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.OperationRemove, events[0].Operation)
	assert.Equal(t, uint(1), events[0].EntityID)
}

func TestMutualFriendsCommutative(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, 4)

	// 1 and 2 both befriend 3 and 4.
	require.NoError(t, svc.RequestFriend(1, 3))
	require.NoError(t, svc.RequestFriend(1, 4))
	require.NoError(t, svc.RequestFriend(2, 3))
	require.NoError(t, svc.RequestFriend(2, 4))

	mutual12, err := svc.MutualFriends(1, 2)
	require.NoError(t, err)
	mutual21, err := svc.MutualFriends(2, 1)
	require.NoError(t, err)

	assert.Equal(t, mutual12, mutual21)
	require.Len(t, mutual12, 2)
	assert.Equal(t, uint(3), mutual12[0].ID)
	assert.Equal(t, uint(4), mutual12[1].ID)
}

func TestMutualFriendsDisjointSets(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, 4)

	require.NoError(t, svc.RequestFriend(1, 3))
	require.NoError(t, svc.RequestFriend(2, 4))

	mutual, err := svc.MutualFriends(1, 2)
	require.NoError(t, err)
	assert.Empty(t, mutual)
}

func TestDeleteUserScrubsFriendEdges(t *testing.T) {
	svc, users, _ := newFriendshipFixture(t, 3)

	require.NoError(t, svc.RequestFriend(1, 2))
	require.NoError(t, svc.RequestFriend(2, 1))
	require.NoError(t, svc.RequestFriend(3, 2))

	require.NoError(t, users.DeleteUser(2))

	assert.Empty(t, friendIDs(t, svc, 1))
	assert.Empty(t, friendIDs(t, svc, 3))
}
