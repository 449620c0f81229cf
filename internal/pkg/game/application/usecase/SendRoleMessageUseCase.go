package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
)

// SendRoleMessageUseCase appends a message to one role channel of a room.
type SendRoleMessageUseCase struct {
	Repo repository.GameRepository
}

func NewSendRoleMessageUseCase(repo repository.GameRepository) *SendRoleMessageUseCase {
	return &SendRoleMessageUseCase{Repo: repo}
}

// Execute verifies the author actually holds the channel's role before
// persisting. Body limits match the room chat.
func (uc *SendRoleMessageUseCase) Execute(ctx context.Context, roomID, authorID uuid.UUID, role game.Role, body string) (*game.RoleMessage, error) {
	if err := chat.ValidateBody(body); err != nil {
		return nil, err
	}

	assignment, err := uc.Repo.GetAssignment(ctx, roomID, authorID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if assignment == nil || assignment.Role != role {
		return nil, apperr.Forbidden("you do not hold this role")
	}

	saved, err := uc.Repo.SaveRoleMessage(ctx, game.RoleMessage{
		RoomID: roomID,
		UserID: authorID,
		Role:   role,
		Body:   body,
	})
	if err != nil {
		return nil, persistenceErr(err)
	}
	saved.UserDisplayName = assignment.UserDisplayName
	saved.UserProfileImageURL = assignment.UserProfileImageURL
	return &saved, nil
}
