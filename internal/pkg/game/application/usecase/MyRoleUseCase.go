package usecase

import (
	"context"

	"github.com/google/uuid"

	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
)

// MyRoleUseCase looks up the caller's assignment. Holding no role is a
// normal answer, not an error.
type MyRoleUseCase struct {
	Repo repository.GameRepository
}

func NewMyRoleUseCase(repo repository.GameRepository) *MyRoleUseCase {
	return &MyRoleUseCase{Repo: repo}
}

func (uc *MyRoleUseCase) Execute(ctx context.Context, roomID, userID uuid.UUID) (*game.Assignment, error) {
	a, err := uc.Repo.GetAssignment(ctx, roomID, userID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	return a, nil
}
