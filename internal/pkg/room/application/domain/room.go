package room

import (
	"github.com/google/uuid"
)

// Room is a meet-up post viewed through the messaging core's narrow window:
// identity, ownership and the accepted participant set. Membership mutation
// happens in the out-of-scope post component; this core only reads.
type Room struct {
	ID              uuid.UUID
	Title           string
	OwnerID         uuid.UUID
	ParticipantIDs  []uuid.UUID
	MaxParticipants int
	Status          string
}

// IsMember reports whether userID is the owner or an accepted participant.
func (r *Room) IsMember(userID uuid.UUID) bool {
	if r == nil {
		return false
	}
	if r.OwnerID == userID {
		return true
	}
	for _, id := range r.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the owner plus accepted participants, de-duplicated.
func (r *Room) MemberIDs() []uuid.UUID {
	seen := map[uuid.UUID]struct{}{r.OwnerID: {}}
	ids := []uuid.UUID{r.OwnerID}
	for _, id := range r.ParticipantIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
