package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

func addUsers(t *testing.T, s *UserStorage, logins ...string) {
	t.Helper()
	for _, login := range logins {
		user := models.User{Login: login, Email: login + "@example.com", Name: login}
		require.NoError(t, s.AddUser(&user))
	}
}

func TestAddUserAssignsSequentialIDs(t *testing.T) {
	s := NewUserStorage()
	addUsers(t, s, "a", "b")

	users, err := s.GetUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, uint(1), users[0].ID)
	assert.Equal(t, uint(2), users[1].ID)
}

func TestAddUserRejectsDuplicates(t *testing.T) {
	s := NewUserStorage()
	addUsers(t, s, "a")

	dupLogin := models.User{Login: "a", Email: "fresh@example.com"}
	assert.ErrorIs(t, s.AddUser(&dupLogin), storage.ErrDuplicated)

	dupEmail := models.User{Login: "fresh", Email: "a@example.com"}
	assert.ErrorIs(t, s.AddUser(&dupEmail), storage.ErrDuplicated)
}

func TestUpsertFriendshipOverwritesConfirmed(t *testing.T) {
	s := NewUserStorage()
	addUsers(t, s, "a", "b")

	require.NoError(t, s.UpsertFriendship(1, 2, false))
	ok, err := s.FriendshipExists(1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// Upserting the same ordered pair flips the flag without adding an edge.
	require.NoError(t, s.UpsertFriendship(1, 2, true))
	friends, err := s.GetFriends(1)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}

func TestDeleteFriendshipReportsRemoval(t *testing.T) {
	s := NewUserStorage()
	addUsers(t, s, "a", "b")

	require.NoError(t, s.UpsertFriendship(1, 2, false))

	removed, err := s.DeleteFriendship(1, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteFriendship(1, 2)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFriendshipEdgesAreDirected(t *testing.T) {
	s := NewUserStorage()
	addUsers(t, s, "a", "b")

	require.NoError(t, s.UpsertFriendship(1, 2, false))

	ok, err := s.FriendshipExists(2, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	friends, err := s.GetFriends(2)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestGetFriendsUnknownUser(t *testing.T) {
	s := NewUserStorage()

	_, err := s.GetFriends(1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetMutualFriendsSortedByID(t *testing.T) {
	s := NewUserStorage()
	addUsers(t, s, "a", "b", "c", "d")

	require.NoError(t, s.UpsertFriendship(1, 4, false))
	require.NoError(t, s.UpsertFriendship(1, 3, false))
	require.NoError(t, s.UpsertFriendship(2, 3, false))
	require.NoError(t, s.UpsertFriendship(2, 4, false))

	mutual, err := s.GetMutualFriends(1, 2)
	require.NoError(t, err)
	require.Len(t, mutual, 2)
	assert.Equal(t, uint(3), mutual[0].ID)
	assert.Equal(t, uint(4), mutual[1].ID)
}

func TestDeleteUserRemovesIncidentEdges(t *testing.T) {
	s := NewUserStorage()
	addUsers(t, s, "a", "b", "c")

	require.NoError(t, s.UpsertFriendship(1, 2, false))
	require.NoError(t, s.UpsertFriendship(3, 1, false))

	require.NoError(t, s.DeleteUser(1))

	ok, err := s.FriendshipExists(3, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	friends, err := s.GetFriends(3)
	require.NoError(t, err)
	assert.Empty(t, friends)
}
