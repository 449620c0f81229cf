package usecase

import (
	"context"

	"github.com/google/uuid"

	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
	room "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/domain"
)

// AnnounceJoinUseCase emits the "joined the room" system message on socket
// admission, at most once per (room, user). The existence check and the
// insert are not atomic across concurrent reconnects of the same user; a
// rare duplicate announcement is cosmetic and tolerated.
type AnnounceJoinUseCase struct {
	Repo repository.ChatRepository
}

func NewAnnounceJoinUseCase(repo repository.ChatRepository) *AnnounceJoinUseCase {
	return &AnnounceJoinUseCase{Repo: repo}
}

// Execute returns the stored announcement, or nil when one already exists.
// The unread bump treats the announcement as system-authored: every member's
// counter increments, including the joining user's.
func (uc *AnnounceJoinUseCase) Execute(ctx context.Context, rm *room.Room, userID uuid.UUID, displayName *string) (*chat.ChatMessage, error) {
	announced, err := uc.Repo.HasJoinNotice(ctx, rm.ID, userID, chat.JoinMarker)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if announced {
		return nil, nil
	}

	msg, err := uc.Repo.SaveMessage(ctx, chat.ChatMessage{
		RoomID:   rm.ID,
		AuthorID: userID,
		Body:     chat.JoinNotice(displayName),
	})
	if err != nil {
		return nil, persistenceErr(err)
	}

	if err := uc.Repo.BumpUnread(ctx, rm.ID, membersWith(rm, userID), uuid.Nil, msg.CreatedAt); err != nil {
		return nil, persistenceErr(err)
	}

	msg.CreatedAt = msg.CreatedAtUTC()
	return &msg, nil
}
