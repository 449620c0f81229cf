package usecase

import (
	"context"

	"github.com/google/uuid"

	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
	room "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/domain"
)

// AppendMessageUseCase persists a user message and updates every member's
// read cursor. The persist and the bump happen before the caller broadcasts,
// so the commit order on a room matches the broadcast order.
type AppendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewAppendMessageUseCase(repo repository.ChatRepository) *AppendMessageUseCase {
	return &AppendMessageUseCase{Repo: repo}
}

// Execute validates and stores the message, then bumps unread counters for
// owner, accepted participants and sender: the sender's cursor resets to
// zero, every other member's increments by one. A persistence failure fails
// the whole operation.
func (uc *AppendMessageUseCase) Execute(ctx context.Context, rm *room.Room, authorID uuid.UUID, body string) (chat.ChatMessage, error) {
	if err := chat.ValidateBody(body); err != nil {
		return chat.ChatMessage{}, err
	}

	msg, err := uc.Repo.SaveMessage(ctx, chat.ChatMessage{
		RoomID:   rm.ID,
		AuthorID: authorID,
		Body:     body,
	})
	if err != nil {
		return chat.ChatMessage{}, persistenceErr(err)
	}

	if err := uc.Repo.BumpUnread(ctx, rm.ID, membersWith(rm, authorID), authorID, msg.CreatedAt); err != nil {
		return chat.ChatMessage{}, persistenceErr(err)
	}

	msg.CreatedAt = msg.CreatedAtUTC()
	return msg, nil
}

// membersWith returns the room members plus the sender, de-duplicated. The
// sender is normally a member already, but the cursor bookkeeping must cover
// them even when membership changed mid-flight.
func membersWith(rm *room.Room, senderID uuid.UUID) []uuid.UUID {
	ids := rm.MemberIDs()
	for _, id := range ids {
		if id == senderID {
			return ids
		}
	}
	return append(ids, senderID)
}
