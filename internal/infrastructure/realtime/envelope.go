package realtime

import (
	"time"
)

// Event types pushed to clients. History is sent exactly once per connection,
// immediately after admission and before any live event.
const (
	EventHistory = "history"
	EventChat    = "chat"
	EventSystem  = "system"
)

// Event is the normalized envelope for a single chat, role-chat or system
// entry. Author fields are nil for system entries. CreatedAt must be UTC;
// it serializes as RFC 3339.
type Event struct {
	Type                string    `json:"type"`
	UserID              *string   `json:"userId"`
	UserDisplayName     *string   `json:"userDisplayName"`
	UserProfileImageURL *string   `json:"userProfileImageUrl"`
	Content             string    `json:"content"`
	Role                string    `json:"role,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	System              bool      `json:"system,omitempty"`
}

// HistoryEvent carries the ordered backlog replayed on (re)connect.
type HistoryEvent struct {
	Type     string  `json:"type"`
	Messages []Event `json:"messages"`
}

func NewHistoryEvent(messages []Event) HistoryEvent {
	return HistoryEvent{Type: EventHistory, Messages: messages}
}

// NewChatEvent builds a live chat envelope authored by a user.
func NewChatEvent(userID string, displayName, avatarURL *string, content string, createdAt time.Time) Event {
	return Event{
		Type:                EventChat,
		UserID:              &userID,
		UserDisplayName:     displayName,
		UserProfileImageURL: avatarURL,
		Content:             content,
		CreatedAt:           createdAt.UTC(),
	}
}

// NewSystemEvent builds a system notice envelope with no author.
func NewSystemEvent(content string, createdAt time.Time) Event {
	return Event{
		Type:      EventSystem,
		Content:   content,
		CreatedAt: createdAt.UTC(),
		System:    true,
	}
}
