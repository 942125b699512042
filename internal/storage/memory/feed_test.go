package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TBKaGOC/filmorate/internal/models"
)

func appendEvent(t *testing.T, s *FeedStorage, userID, entityID uint) models.FeedEvent {
	t.Helper()
	event := models.FeedEvent{
		UserID:    userID,
		EventType: models.EventTypeLike,
		Operation: models.OperationAdd,
		EntityID:  entityID,
	}
	require.NoError(t, s.Append(&event))
	return event
}

func TestAppendAssignsStrictlyIncreasingIDs(t *testing.T) {
	s := NewFeedStorage()

	first := appendEvent(t, s, 1, 1)
	second := appendEvent(t, s, 1, 2)

	assert.Equal(t, uint(1), first.EventID)
	assert.Equal(t, uint(2), second.EventID)
}

func TestAppendTimestampsNonDecreasing(t *testing.T) {
	s := NewFeedStorage()

	var last int64
	for i := uint(0); i < 100; i++ {
		event := appendEvent(t, s, 1, i)
		assert.GreaterOrEqual(t, event.Timestamp, last)
		last = event.Timestamp
	}
}

func TestListByUserTiesBreakOnEventID(t *testing.T) {
	s := NewFeedStorage()

	appendEvent(t, s, 1, 1)
	appendEvent(t, s, 1, 2)
	appendEvent(t, s, 1, 3)

	events, err := s.ListByUser(1, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, uint(3), events[0].EventID)
	assert.Equal(t, uint(2), events[1].EventID)
	assert.Equal(t, uint(1), events[2].EventID)
}

func TestDeleteByEntityKeepsOtherTypes(t *testing.T) {
	s := NewFeedStorage()

	appendEvent(t, s, 1, 7)
	require.NoError(t, s.Append(&models.FeedEvent{
		UserID:    1,
		EventType: models.EventTypeReview,
		Operation: models.OperationAdd,
		EntityID:  7,
	}))

	require.NoError(t, s.DeleteByEntity(models.EventTypeLike, 7))

	events, err := s.ListByUser(1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventTypeReview, events[0].EventType)
}

func TestDeleteByUserLeavesOthers(t *testing.T) {
	s := NewFeedStorage()

	appendEvent(t, s, 1, 1)
	appendEvent(t, s, 2, 1)

	require.NoError(t, s.DeleteByUser(1))

	events, err := s.ListByUser(1, 0)
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = s.ListByUser(2, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
