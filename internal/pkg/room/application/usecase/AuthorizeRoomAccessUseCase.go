package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	room "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
)

// AuthorizeRoomAccessUseCase resolves a room and verifies the caller may use
// its channels. It runs before any socket admission and before authenticated
// writes.
type AuthorizeRoomAccessUseCase struct {
	Rooms repository.RoomRepository
}

func NewAuthorizeRoomAccessUseCase(rooms repository.RoomRepository) *AuthorizeRoomAccessUseCase {
	return &AuthorizeRoomAccessUseCase{Rooms: rooms}
}

// Execute returns the room when userID is the owner or an accepted
// participant, apperr.NotFound when the room is absent and apperr.Forbidden
// otherwise.
func (uc *AuthorizeRoomAccessUseCase) Execute(ctx context.Context, roomID, userID uuid.UUID) (*room.Room, error) {
	rm, err := uc.Rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !rm.IsMember(userID) {
		return nil, apperr.Forbidden("join the post before chatting")
	}
	return rm, nil
}

// Resolve fetches the room without a membership check, for read surfaces open
// to any authenticated user.
func (uc *AuthorizeRoomAccessUseCase) Resolve(ctx context.Context, roomID uuid.UUID) (*room.Room, error) {
	return uc.Rooms.GetRoom(ctx, roomID)
}
