package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
)

// seedRound stores a round directly so tests control who holds which role.
func seedRound(t *testing.T, repo *memGameRepository, roomID uuid.UUID, police, thieves []uuid.UUID) {
	t.Helper()
	var rows []game.Assignment
	for _, id := range police {
		rows = append(rows, game.Assignment{UserID: id, Role: game.RolePolice})
	}
	for _, id := range thieves {
		rows = append(rows, game.Assignment{UserID: id, Role: game.RoleThief})
	}
	_, err := repo.ReplaceAssignments(context.Background(), roomID, rows)
	require.NoError(t, err)
}

func TestToggleCaptureMarksThief(t *testing.T) {
	repo := newMemGameRepository()
	uc := NewToggleCaptureUseCase(repo)
	roomID := uuid.New()
	cop, thiefA, thiefB := uuid.New(), uuid.New(), uuid.New()
	seedRound(t, repo, roomID, []uuid.UUID{cop}, []uuid.UUID{thiefA, thiefB})

	result, err := uc.Execute(context.Background(), roomID, cop, thiefA, true)
	require.NoError(t, err)
	assert.True(t, result.Assignment.Captured)
	assert.Contains(t, result.Notice, "was caught by the police.")
	assert.False(t, result.GameOver, "one thief still free")
}

func TestToggleCapturePoliceOnly(t *testing.T) {
	repo := newMemGameRepository()
	uc := NewToggleCaptureUseCase(repo)
	roomID := uuid.New()
	cop, thiefA, thiefB := uuid.New(), uuid.New(), uuid.New()
	seedRound(t, repo, roomID, []uuid.UUID{cop}, []uuid.UUID{thiefA, thiefB})

	_, err := uc.Execute(context.Background(), roomID, thiefA, thiefB, true)
	assert.Equal(t, apperr.CodePermissionDenied, apperr.CodeOf(err))

	// A member with no role at all is equally rejected.
	_, err = uc.Execute(context.Background(), roomID, uuid.New(), thiefB, true)
	assert.Equal(t, apperr.CodePermissionDenied, apperr.CodeOf(err))
}

func TestToggleCaptureUnknownTarget(t *testing.T) {
	repo := newMemGameRepository()
	uc := NewToggleCaptureUseCase(repo)
	roomID := uuid.New()
	cop := uuid.New()
	seedRound(t, repo, roomID, []uuid.UUID{cop}, []uuid.UUID{uuid.New()})

	_, err := uc.Execute(context.Background(), roomID, cop, uuid.New(), true)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestToggleCaptureGameOverFiresExactlyOnce(t *testing.T) {
	repo := newMemGameRepository()
	uc := NewToggleCaptureUseCase(repo)
	roomID := uuid.New()
	cop, thiefA, thiefB := uuid.New(), uuid.New(), uuid.New()
	seedRound(t, repo, roomID, []uuid.UUID{cop}, []uuid.UUID{thiefA, thiefB})

	first, err := uc.Execute(context.Background(), roomID, cop, thiefA, true)
	require.NoError(t, err)
	assert.False(t, first.GameOver)

	last, err := uc.Execute(context.Background(), roomID, cop, thiefB, true)
	require.NoError(t, err)
	assert.True(t, last.GameOver, "capturing the last free thief ends the round")

	// Re-capturing an already captured thief reports the notice but never
	// re-fires the win.
	again, err := uc.Execute(context.Background(), roomID, cop, thiefB, true)
	require.NoError(t, err)
	assert.False(t, again.GameOver)
	assert.Contains(t, again.Notice, "was caught by the police.")
}

func TestToggleCaptureReleaseReopensTheRound(t *testing.T) {
	repo := newMemGameRepository()
	uc := NewToggleCaptureUseCase(repo)
	roomID := uuid.New()
	cop, thief := uuid.New(), uuid.New()
	seedRound(t, repo, roomID, []uuid.UUID{cop}, []uuid.UUID{thief})

	won, err := uc.Execute(context.Background(), roomID, cop, thief, true)
	require.NoError(t, err)
	assert.True(t, won.GameOver)

	released, err := uc.Execute(context.Background(), roomID, cop, thief, false)
	require.NoError(t, err)
	assert.False(t, released.GameOver)
	assert.Contains(t, released.Notice, "was released by the police.")

	// Capturing again after the release wins again.
	rewon, err := uc.Execute(context.Background(), roomID, cop, thief, true)
	require.NoError(t, err)
	assert.True(t, rewon.GameOver)
}

func TestToggleCaptureOnPoliceNeverEndsRound(t *testing.T) {
	repo := newMemGameRepository()
	uc := NewToggleCaptureUseCase(repo)
	roomID := uuid.New()
	copA, copB, thief := uuid.New(), uuid.New(), uuid.New()
	seedRound(t, repo, roomID, []uuid.UUID{copA, copB}, []uuid.UUID{thief})

	result, err := uc.Execute(context.Background(), roomID, copA, copB, true)
	require.NoError(t, err)
	assert.True(t, result.Assignment.Captured)
	assert.False(t, result.GameOver)
}
