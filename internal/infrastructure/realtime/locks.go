package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// PublishGuard serializes persist-then-broadcast sequences per room so the
// broadcast order on a room's channels matches the order the writes were
// committed in. Lock entries are created lazily and kept for the process
// lifetime; room cardinality is small enough that this never matters.
type PublishGuard struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewPublishGuard() *PublishGuard {
	return &PublishGuard{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the room's publish lock and returns the unlock func.
func (g *PublishGuard) Lock(roomID uuid.UUID) func() {
	g.mu.Lock()
	l := g.locks[roomID]
	if l == nil {
		l = &sync.Mutex{}
		g.locks[roomID] = l
	}
	g.mu.Unlock()

	l.Lock()
	return l.Unlock
}
