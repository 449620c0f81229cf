package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence for room chat and read tracking.
//
// BumpUnread and the assignment-style multi-row updates must be transactional:
// a partially applied bump would break the unread invariants.
type ChatRepository interface {
	// SaveMessage persists a new message and returns it with id and
	// creation timestamp filled in.
	SaveMessage(ctx context.Context, m chat.ChatMessage) (chat.ChatMessage, error)

	// ListMessages returns the room's messages oldest first, tie-broken by
	// message id, with author profiles joined.
	ListMessages(ctx context.Context, roomID uuid.UUID) ([]chat.ChatMessage, error)

	// HasJoinNotice reports whether a stored message for (room, user)
	// contains the marker substring.
	HasJoinNotice(ctx context.Context, roomID, userID uuid.UUID, marker string) (bool, error)

	// MarkRead upserts the user's cursor: unread 0, last_read advanced to the
	// greater of the stored and provided values. A nil timestamp clears only
	// the counter.
	MarkRead(ctx context.Context, roomID, userID uuid.UUID, at *time.Time) error

	// BumpUnread upserts every member's cursor in one transaction: the sender
	// resets to zero with last_read = at; everyone else increments by one.
	// Pass uuid.Nil as senderID for system messages so no member is exempt.
	BumpUnread(ctx context.Context, roomID uuid.UUID, memberIDs []uuid.UUID, senderID uuid.UUID, at time.Time) error

	// GetCursor fetches a cursor, or nil when none exists yet.
	GetCursor(ctx context.Context, roomID, userID uuid.UUID) (*chat.ReadCursor, error)
}
