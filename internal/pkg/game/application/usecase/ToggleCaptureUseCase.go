package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
)

// CaptureResult is what the transport layer needs after a toggle: the
// updated row, the notice for both role channels, and whether this very
// update ended the round.
type CaptureResult struct {
	Assignment game.Assignment
	Notice     string
	GameOver   bool
}

// ToggleCaptureUseCase flips a target's captured flag on behalf of a police
// member and detects the win condition.
type ToggleCaptureUseCase struct {
	Repo repository.GameRepository
}

func NewToggleCaptureUseCase(repo repository.GameRepository) *ToggleCaptureUseCase {
	return &ToggleCaptureUseCase{Repo: repo}
}

// Execute requires the caller to hold the police role and the target to have
// an active assignment. Setting an already-set flag is a data-level no-op
// that still produces a notice. GameOver is reported only for the update
// that captures the last free thief, so the terminal notice fires exactly
// once per round.
func (uc *ToggleCaptureUseCase) Execute(ctx context.Context, roomID, callerID, targetID uuid.UUID, captured bool) (*CaptureResult, error) {
	caller, err := uc.Repo.GetAssignment(ctx, roomID, callerID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if caller == nil || caller.Role != game.RolePolice {
		return nil, apperr.Forbidden("only the police can toggle captures")
	}

	target, err := uc.Repo.GetAssignment(ctx, roomID, targetID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if target == nil {
		return nil, apperr.NotFound("target has no active role")
	}
	wasCaptured := target.Captured

	updated, err := uc.Repo.SetCaptured(ctx, roomID, targetID, captured)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if updated == nil {
		return nil, apperr.NotFound("target has no active role")
	}

	result := &CaptureResult{
		Assignment: *updated,
		Notice:     game.CaptureNotice(updated.UserDisplayName, captured),
	}

	if captured && !wasCaptured && updated.Role == game.RoleThief {
		all, err := uc.Repo.ListAssignments(ctx, roomID)
		if err != nil {
			return nil, persistenceErr(err)
		}
		result.GameOver = game.AllCaptured(all, game.RoleThief)
	}
	return result, nil
}
