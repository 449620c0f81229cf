package repository

import (
	"context"

	"github.com/google/uuid"

	room "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/domain"
)

// RoomRepository reads rooms and their accepted participants. This core never
// writes rooms; membership belongs to the post component.
type RoomRepository interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*room.Room, error)
}
