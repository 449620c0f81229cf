package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListHistoryReturnsOldestFirstAndMarksRead(t *testing.T) {
	repo := newMemChatRepository()
	rm, members := testRoom(2)
	sender, reader := members[0], members[1]

	appendUC := NewAppendMessageUseCase(repo)
	for _, body := range []string{"one", "two", "three"} {
		_, err := appendUC.Execute(context.Background(), rm, sender, body)
		require.NoError(t, err)
	}
	require.Equal(t, 3, repo.unread(rm.ID, reader))

	msgs, err := NewListHistoryUseCase(repo).Execute(context.Background(), rm.ID, reader)
	require.NoError(t, err)

	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Body)
	assert.Equal(t, "three", msgs[2].Body)
	assert.True(t, msgs[0].CreatedAt.Before(msgs[2].CreatedAt))

	// Reading the history clears the reader's counter and pins last_read to
	// the newest message.
	cur, err := repo.GetCursor(context.Background(), rm.ID, reader)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, 0, cur.UnreadCount)
	require.NotNil(t, cur.LastReadAt)
	assert.True(t, cur.LastReadAt.Equal(msgs[2].CreatedAt))
}

func TestListHistoryIsIdempotent(t *testing.T) {
	repo := newMemChatRepository()
	rm, members := testRoom(2)
	sender, reader := members[0], members[1]

	_, err := NewAppendMessageUseCase(repo).Execute(context.Background(), rm, sender, "hello")
	require.NoError(t, err)

	uc := NewListHistoryUseCase(repo)
	first, err := uc.Execute(context.Background(), rm.ID, reader)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), rm.ID, reader)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 0, repo.unread(rm.ID, reader))
}

func TestListHistorySkipsMarkReadForAnonymousReader(t *testing.T) {
	repo := newMemChatRepository()
	rm, members := testRoom(2)
	sender, other := members[0], members[1]

	_, err := NewAppendMessageUseCase(repo).Execute(context.Background(), rm, sender, "hello")
	require.NoError(t, err)

	_, err = NewListHistoryUseCase(repo).Execute(context.Background(), rm.ID, uuid.Nil)
	require.NoError(t, err)

	// Nobody's cursor moved.
	assert.Equal(t, 1, repo.unread(rm.ID, other))
}

func TestListHistoryEmptyRoom(t *testing.T) {
	repo := newMemChatRepository()
	reader := uuid.New()
	roomID := uuid.New()

	msgs, err := NewListHistoryUseCase(repo).Execute(context.Background(), roomID, reader)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	// The cursor still materializes with a cleared counter and no timestamp.
	cur, err := repo.GetCursor(context.Background(), roomID, reader)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, 0, cur.UnreadCount)
	assert.Nil(t, cur.LastReadAt)
}
