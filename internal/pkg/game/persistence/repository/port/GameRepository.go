package repository

import (
	"context"

	"github.com/google/uuid"

	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
)

// GameRepository defines persistence for role rounds and role chat.
type GameRepository interface {
	// ReplaceAssignments atomically discards the room's prior assignments and
	// role-chat history, inserts the new rows and returns them enriched with
	// user profiles. No stale role or capture survives across rounds.
	ReplaceAssignments(ctx context.Context, roomID uuid.UUID, rows []game.Assignment) ([]game.Assignment, error)

	// ListAssignments returns the active round's assignments with profiles.
	ListAssignments(ctx context.Context, roomID uuid.UUID) ([]game.Assignment, error)

	// GetAssignment returns the user's assignment, or nil when the user holds
	// no role in the room.
	GetAssignment(ctx context.Context, roomID, userID uuid.UUID) (*game.Assignment, error)

	// SetCaptured updates the captured flag and returns the enriched row.
	SetCaptured(ctx context.Context, roomID, userID uuid.UUID, captured bool) (*game.Assignment, error)

	// SaveRoleMessage persists a role-channel message and returns it with id
	// and timestamp filled in.
	SaveRoleMessage(ctx context.Context, m game.RoleMessage) (game.RoleMessage, error)

	// ListRoleMessages returns one role channel's messages oldest first,
	// tie-broken by id, with author profiles joined.
	ListRoleMessages(ctx context.Context, roomID uuid.UUID, role game.Role) ([]game.RoleMessage, error)
}
