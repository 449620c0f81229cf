package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
)

// MaxBodyLen caps a chat message body.
const MaxBodyLen = 1000

// JoinMarker is the canonical substring of a stored join announcement. The
// dedupe check scans message bodies for it, so a user typing the exact phrase
// can suppress a future announcement; accepted as cosmetic.
const JoinMarker = "joined the room"

// ChatMessage is an immutable log entry in a room's chat. AuthorID is the
// acting user; join notices keep the joiner's id so the per-(room, user)
// dedupe query can find them, and are rendered as system entries instead.
type ChatMessage struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	CreatedAt time.Time

	// Presentation enrichment, populated by reads that join the author.
	AuthorDisplayName     *string
	AuthorProfileImageURL *string
}

// IsSystem reports whether the message is a system announcement.
func (m ChatMessage) IsSystem() bool {
	return strings.Contains(m.Body, JoinMarker)
}

// CreatedAtUTC returns the creation timestamp normalized to UTC. Timestamps
// are stored without a zone and always denote UTC.
func (m ChatMessage) CreatedAtUTC() time.Time {
	t := m.CreatedAt
	if t.Location() == time.UTC {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ValidateBody rejects empty and oversized message bodies.
func ValidateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return apperr.InvalidArg("message body is required")
	}
	if len([]rune(body)) > MaxBodyLen {
		return apperr.InvalidArg("message body exceeds maximum length")
	}
	return nil
}

// JoinNotice renders the join announcement body for a display name.
func JoinNotice(displayName *string) string {
	name := "A participant"
	if displayName != nil && strings.TrimSpace(*displayName) != "" {
		name = *displayName
	}
	return name + " " + JoinMarker
}

// ReadCursor is the per-(room, user) bookkeeping of last-seen timestamp and
// unread count. Created lazily on first interaction.
type ReadCursor struct {
	RoomID      uuid.UUID
	UserID      uuid.UUID
	LastReadAt  *time.Time
	UnreadCount int
}
