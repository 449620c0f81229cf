package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
)

// memChatRepository mirrors the SQL adapter's semantics in memory: ordered
// message log per room, lazily created cursors, transactional-looking bumps.
type memChatRepository struct {
	messages map[uuid.UUID][]chat.ChatMessage
	cursors  map[uuid.UUID]map[uuid.UUID]*chat.ReadCursor
	seq      int

	saveErr error
	bumpErr error
}

func newMemChatRepository() *memChatRepository {
	return &memChatRepository{
		messages: make(map[uuid.UUID][]chat.ChatMessage),
		cursors:  make(map[uuid.UUID]map[uuid.UUID]*chat.ReadCursor),
	}
}

func (r *memChatRepository) SaveMessage(_ context.Context, m chat.ChatMessage) (chat.ChatMessage, error) {
	if r.saveErr != nil {
		return chat.ChatMessage{}, r.saveErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		// Monotonic timestamps so ordering assertions are deterministic.
		r.seq++
		m.CreatedAt = time.Date(2026, 1, 1, 0, 0, r.seq, 0, time.UTC)
	}
	r.messages[m.RoomID] = append(r.messages[m.RoomID], m)
	return m, nil
}

func (r *memChatRepository) ListMessages(_ context.Context, roomID uuid.UUID) ([]chat.ChatMessage, error) {
	msgs := append([]chat.ChatMessage(nil), r.messages[roomID]...)
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID.String() < msgs[j].ID.String()
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (r *memChatRepository) HasJoinNotice(_ context.Context, roomID, userID uuid.UUID, marker string) (bool, error) {
	for _, m := range r.messages[roomID] {
		if m.AuthorID == userID && strings.Contains(strings.ToLower(m.Body), strings.ToLower(marker)) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memChatRepository) MarkRead(_ context.Context, roomID, userID uuid.UUID, at *time.Time) error {
	cur := r.cursor(roomID, userID)
	cur.UnreadCount = 0
	if at != nil && (cur.LastReadAt == nil || at.After(*cur.LastReadAt)) {
		ts := at.UTC()
		cur.LastReadAt = &ts
	}
	return nil
}

func (r *memChatRepository) BumpUnread(_ context.Context, roomID uuid.UUID, memberIDs []uuid.UUID, senderID uuid.UUID, at time.Time) error {
	if r.bumpErr != nil {
		return r.bumpErr
	}
	ts := at.UTC()
	for _, uid := range memberIDs {
		cur := r.cursor(roomID, uid)
		if senderID != uuid.Nil && uid == senderID {
			cur.UnreadCount = 0
			cur.LastReadAt = &ts
		} else {
			cur.UnreadCount++
		}
	}
	return nil
}

func (r *memChatRepository) GetCursor(_ context.Context, roomID, userID uuid.UUID) (*chat.ReadCursor, error) {
	byUser := r.cursors[roomID]
	if byUser == nil {
		return nil, nil
	}
	cur, ok := byUser[userID]
	if !ok {
		return nil, nil
	}
	copied := *cur
	return &copied, nil
}

func (r *memChatRepository) cursor(roomID, userID uuid.UUID) *chat.ReadCursor {
	byUser := r.cursors[roomID]
	if byUser == nil {
		byUser = make(map[uuid.UUID]*chat.ReadCursor)
		r.cursors[roomID] = byUser
	}
	cur, ok := byUser[userID]
	if !ok {
		cur = &chat.ReadCursor{RoomID: roomID, UserID: userID}
		byUser[userID] = cur
	}
	return cur
}

// unread is a shorthand for cursor lookups in assertions; missing cursors
// read as zero.
func (r *memChatRepository) unread(roomID, userID uuid.UUID) int {
	cur, _ := r.GetCursor(context.Background(), roomID, userID)
	if cur == nil {
		return 0
	}
	return cur.UnreadCount
}
