package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Registry tracks live sinks per channel key and fans events out to them.
// It owns no persistence; membership is its only state. A single instance is
// constructed at startup and handed to every connection-handling task.
type Registry struct {
	mu       sync.Mutex
	channels map[ChannelKey]map[string]Sink
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		channels: make(map[ChannelKey]map[string]Sink),
		logger:   logger,
	}
}

// Connect admits a sink under the channel key. The transport handshake must
// already be complete; the registry never writes handshake frames.
func (r *Registry) Connect(key ChannelKey, s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.channels[key]
	if members == nil {
		members = make(map[string]Sink)
		r.channels[key] = members
	}
	members[s.SessionID()] = s
}

// Disconnect removes the sink, dropping the channel entry once empty.
func (r *Registry) Disconnect(key ChannelKey, s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(key, s.SessionID())
}

// Broadcast delivers payload to every sink currently registered under key and
// returns the delivery count. Delivery is best-effort per recipient: a failed
// send removes and closes that sink but never aborts the remaining ones. The
// lock is held for the full fan-out so broadcasts on the same key reach every
// recipient in invocation order.
func (r *Registry) Broadcast(key ChannelKey, payload []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.channels[key]
	if len(members) == 0 {
		return 0
	}

	delivered := 0
	var failed []string
	for id, s := range members {
		if err := s.Send(payload); err != nil {
			r.logger.Warn("broadcast delivery failed", "channel", key.String(), "session", id, "err", err)
			failed = append(failed, id)
			continue
		}
		delivered++
	}
	for _, id := range failed {
		if s, ok := members[id]; ok {
			r.removeLocked(key, id)
			s.Close(websocket.CloseGoingAway, "delivery failed")
		}
	}
	return delivered
}

// BroadcastEvent serializes the event once and broadcasts the bytes.
func (r *Registry) BroadcastEvent(key ChannelKey, event any) int {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("encode broadcast event", "channel", key.String(), "err", err)
		return 0
	}
	return r.Broadcast(key, payload)
}

// Count reports the number of sinks attached to the channel key.
func (r *Registry) Count(key ChannelKey) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels[key])
}

func (r *Registry) removeLocked(key ChannelKey, sessionID string) {
	members := r.channels[key]
	if members == nil {
		return
	}
	delete(members, sessionID)
	if len(members) == 0 {
		delete(r.channels, key)
	}
}
