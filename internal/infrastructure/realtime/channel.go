package realtime

import (
	"github.com/google/uuid"
)

// ChannelKey addresses one broadcast scope. The two kinds are distinct types
// so call sites can switch exhaustively instead of juggling tuples.
type ChannelKey interface {
	isChannelKey()
	String() string
}

// RoomChannel is the general chat channel of one room.
type RoomChannel struct {
	RoomID uuid.UUID
}

func (RoomChannel) isChannelKey() {}

func (k RoomChannel) String() string { return "room:" + k.RoomID.String() }

// RoleChannel is one of the two role-restricted sub-channels of a room.
// Role is carried as its wire string to keep this package free of game types.
type RoleChannel struct {
	RoomID uuid.UUID
	Role   string
}

func (RoleChannel) isChannelKey() {}

func (k RoleChannel) String() string { return "room:" + k.RoomID.String() + ":" + k.Role }
