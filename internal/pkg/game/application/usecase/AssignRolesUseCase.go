package usecase

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
	room "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/domain"
)

// AssignRolesUseCase starts a fresh round: it shuffles the candidate pool
// uniformly, slices police then thieves, and replaces every prior assignment
// and role-chat message of the room in one transaction. Fairness, not
// unpredictability, is the requirement, so math/rand is enough.
type AssignRolesUseCase struct {
	Repo repository.GameRepository
}

func NewAssignRolesUseCase(repo repository.GameRepository) *AssignRolesUseCase {
	return &AssignRolesUseCase{Repo: repo}
}

// Execute may only be called by the room owner. A request for more roles
// than the pool holds fails without touching prior assignments. Members left
// over after slicing hold no role and cannot use either role channel.
func (uc *AssignRolesUseCase) Execute(ctx context.Context, rm *room.Room, callerID uuid.UUID, police, thief int) ([]game.Assignment, error) {
	if rm.OwnerID != callerID {
		return nil, apperr.Forbidden("only the owner can assign roles")
	}
	if police < 0 {
		police = 0
	}
	if thief < 0 {
		thief = 0
	}

	pool := rm.MemberIDs()
	if police+thief > len(pool) {
		return nil, apperr.InvalidArg("not enough participants for the requested roles")
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	rows := make([]game.Assignment, 0, police+thief)
	for i := 0; i < police; i++ {
		rows = append(rows, game.Assignment{RoomID: rm.ID, UserID: pool[i], Role: game.RolePolice})
	}
	for i := police; i < police+thief; i++ {
		rows = append(rows, game.Assignment{RoomID: rm.ID, UserID: pool[i], Role: game.RoleThief})
	}

	stored, err := uc.Repo.ReplaceAssignments(ctx, rm.ID, rows)
	if err != nil {
		return nil, persistenceErr(err)
	}
	return stored, nil
}
