package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
)

// ListRoleHistoryUseCase returns a role channel's backlog for replay on
// connect. The reader must hold the channel's role.
type ListRoleHistoryUseCase struct {
	Repo repository.GameRepository
}

func NewListRoleHistoryUseCase(repo repository.GameRepository) *ListRoleHistoryUseCase {
	return &ListRoleHistoryUseCase{Repo: repo}
}

func (uc *ListRoleHistoryUseCase) Execute(ctx context.Context, roomID, readerID uuid.UUID, role game.Role) ([]game.RoleMessage, error) {
	assignment, err := uc.Repo.GetAssignment(ctx, roomID, readerID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if assignment == nil || assignment.Role != role {
		return nil, apperr.Forbidden("you do not hold this role")
	}
	msgs, err := uc.Repo.ListRoleMessages(ctx, roomID, role)
	if err != nil {
		return nil, persistenceErr(err)
	}
	return msgs, nil
}
