package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
)

// ListHistoryUseCase returns a room's messages oldest first and, when a
// reader is given, marks that reader's cursor read at the newest timestamp.
// The listing itself is idempotent.
type ListHistoryUseCase struct {
	Repo repository.ChatRepository
}

func NewListHistoryUseCase(repo repository.ChatRepository) *ListHistoryUseCase {
	return &ListHistoryUseCase{Repo: repo}
}

func (uc *ListHistoryUseCase) Execute(ctx context.Context, roomID uuid.UUID, readerID uuid.UUID) ([]chat.ChatMessage, error) {
	msgs, err := uc.Repo.ListMessages(ctx, roomID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	for i := range msgs {
		msgs[i].CreatedAt = msgs[i].CreatedAtUTC()
	}

	if readerID != uuid.Nil {
		var last *time.Time
		if len(msgs) > 0 {
			ts := msgs[len(msgs)-1].CreatedAt
			last = &ts
		}
		if err := uc.Repo.MarkRead(ctx, roomID, readerID, last); err != nil {
			return nil, persistenceErr(err)
		}
	}
	return msgs, nil
}
