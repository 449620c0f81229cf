package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
)

// Role is one of the two sides of a hide-and-seek round.
type Role string

const (
	RolePolice Role = "police"
	RoleThief  Role = "thief"
)

// ParseRole validates a wire role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePolice, RoleThief:
		return Role(s), nil
	default:
		return "", apperr.InvalidArg("unknown role")
	}
}

// Assignment is one user's role in the active round of a room. At most one
// assignment exists per (room, user); a fresh assignment call replaces every
// row of the room wholesale.
type Assignment struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	UserID    uuid.UUID
	Role      Role
	Captured  bool
	CreatedAt time.Time

	// Presentation enrichment.
	UserDisplayName     *string
	UserProfileImageURL *string
}

// RoleMessage is a chat entry scoped to one role channel of a room, visible
// only to members holding that role.
type RoleMessage struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	UserID    uuid.UUID
	Role      Role
	Body      string
	CreatedAt time.Time

	UserDisplayName     *string
	UserProfileImageURL *string
}

// AllCaptured reports whether every assignment holding the role is captured.
// An empty set reports false: a round with no thieves has no win condition.
func AllCaptured(assignments []Assignment, role Role) bool {
	any := false
	for _, a := range assignments {
		if a.Role != role {
			continue
		}
		any = true
		if !a.Captured {
			return false
		}
	}
	return any
}

// CaptureNotice renders the system notice broadcast to both role channels
// when a capture flag flips.
func CaptureNotice(displayName *string, captured bool) string {
	name := "A participant"
	if displayName != nil && *displayName != "" {
		name = *displayName
	}
	if captured {
		return name + " was caught by the police."
	}
	return name + " was released by the police."
}

// GameOverNotice is broadcast to both role channels when the last free thief
// is captured.
const GameOverNotice = "Game over! The police win."
