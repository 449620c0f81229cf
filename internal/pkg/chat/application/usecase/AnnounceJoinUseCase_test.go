package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
)

func TestAnnounceJoinStoresNoticeOnce(t *testing.T) {
	repo := newMemChatRepository()
	uc := NewAnnounceJoinUseCase(repo)
	rm, members := testRoom(2)
	joiner := members[1]
	name := "mina"

	msg, err := uc.Execute(context.Background(), rm, joiner, &name)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "mina joined the room", msg.Body)
	assert.Equal(t, joiner, msg.AuthorID)
	assert.True(t, msg.IsSystem())

	// A reconnect announces nothing.
	again, err := uc.Execute(context.Background(), rm, joiner, &name)
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Len(t, repo.messages[rm.ID], 1)
}

func TestAnnounceJoinBumpsEveryMemberIncludingJoiner(t *testing.T) {
	repo := newMemChatRepository()
	uc := NewAnnounceJoinUseCase(repo)
	rm, members := testRoom(3)
	joiner := members[2]

	_, err := uc.Execute(context.Background(), rm, joiner, nil)
	require.NoError(t, err)

	// System-authored: no member is exempt from the bump.
	for _, id := range members {
		assert.Equal(t, 1, repo.unread(rm.ID, id))
	}
}

func TestAnnounceJoinSuppressedByMatchingUserText(t *testing.T) {
	repo := newMemChatRepository()
	rm, members := testRoom(2)
	joiner := members[1]

	// The dedupe scans bodies for the marker substring, so a user message
	// containing the phrase suppresses the announcement.
	_, err := NewAppendMessageUseCase(repo).Execute(context.Background(), rm, joiner, "someone just joined the room I think")
	require.NoError(t, err)

	msg, err := NewAnnounceJoinUseCase(repo).Execute(context.Background(), rm, joiner, nil)
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestAnnounceJoinFallsBackToGenericName(t *testing.T) {
	repo := newMemChatRepository()
	rm, members := testRoom(2)

	msg, err := NewAnnounceJoinUseCase(repo).Execute(context.Background(), rm, members[1], nil)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "A participant "+chat.JoinMarker, msg.Body)
}
