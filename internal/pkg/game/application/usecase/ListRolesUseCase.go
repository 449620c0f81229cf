package usecase

import (
	"context"

	"github.com/google/uuid"

	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
)

// ListRolesUseCase returns the active round's assignments. Any authenticated
// viewer may see the board, not only the owner.
type ListRolesUseCase struct {
	Repo repository.GameRepository
}

func NewListRolesUseCase(repo repository.GameRepository) *ListRolesUseCase {
	return &ListRolesUseCase{Repo: repo}
}

func (uc *ListRolesUseCase) Execute(ctx context.Context, roomID uuid.UUID) ([]game.Assignment, error) {
	rows, err := uc.Repo.ListAssignments(ctx, roomID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	return rows, nil
}
