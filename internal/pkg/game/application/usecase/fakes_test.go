package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
)

// memGameRepository mirrors the SQL adapter in memory: one assignment per
// (room, user), role chat wiped together with assignments.
type memGameRepository struct {
	assignments map[uuid.UUID][]game.Assignment
	roleChat    map[uuid.UUID][]game.RoleMessage
	seq         int

	replaceErr error
}

func newMemGameRepository() *memGameRepository {
	return &memGameRepository{
		assignments: make(map[uuid.UUID][]game.Assignment),
		roleChat:    make(map[uuid.UUID][]game.RoleMessage),
	}
}

func (r *memGameRepository) ReplaceAssignments(_ context.Context, roomID uuid.UUID, rows []game.Assignment) ([]game.Assignment, error) {
	if r.replaceErr != nil {
		return nil, r.replaceErr
	}
	now := time.Now().UTC()
	stored := make([]game.Assignment, 0, len(rows))
	for _, a := range rows {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.RoomID = roomID
		a.Captured = false
		a.CreatedAt = now
		stored = append(stored, a)
	}
	r.assignments[roomID] = stored
	r.roleChat[roomID] = nil
	return append([]game.Assignment(nil), stored...), nil
}

func (r *memGameRepository) ListAssignments(_ context.Context, roomID uuid.UUID) ([]game.Assignment, error) {
	return append([]game.Assignment(nil), r.assignments[roomID]...), nil
}

func (r *memGameRepository) GetAssignment(_ context.Context, roomID, userID uuid.UUID) (*game.Assignment, error) {
	for _, a := range r.assignments[roomID] {
		if a.UserID == userID {
			copied := a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memGameRepository) SetCaptured(_ context.Context, roomID, userID uuid.UUID, captured bool) (*game.Assignment, error) {
	rows := r.assignments[roomID]
	for i := range rows {
		if rows[i].UserID == userID {
			rows[i].Captured = captured
			copied := rows[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memGameRepository) SaveRoleMessage(_ context.Context, m game.RoleMessage) (game.RoleMessage, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		r.seq++
		m.CreatedAt = time.Date(2026, 1, 1, 0, 0, r.seq, 0, time.UTC)
	}
	r.roleChat[m.RoomID] = append(r.roleChat[m.RoomID], m)
	return m, nil
}

func (r *memGameRepository) ListRoleMessages(_ context.Context, roomID uuid.UUID, role game.Role) ([]game.RoleMessage, error) {
	var out []game.RoleMessage
	for _, m := range r.roleChat[roomID] {
		if m.Role == role {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
