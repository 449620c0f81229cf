package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	room "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/room/persistence/repository/port"
)

type PgRoomRepository struct {
	pool *pgxpool.Pool
}

func NewPgRoomRepository(pool *pgxpool.Pool) *PgRoomRepository {
	return &PgRoomRepository{pool: pool}
}

var _ repository.RoomRepository = (*PgRoomRepository)(nil)

func (r *PgRoomRepository) GetRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var rm room.Room
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, owner_id, max_participants, status
		FROM posts
		WHERE id = $1
	`, id).Scan(&rm.ID, &rm.Title, &rm.OwnerID, &rm.MaxParticipants, &rm.Status)
	if err == pgx.ErrNoRows {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "roomRepo.GetRoom.Scan")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT user_id
		FROM post_participants
		WHERE post_id = $1 AND status = 'accepted'
	`, id)
	if err != nil {
		return nil, errors.Wrap(err, "roomRepo.GetRoom.Participants")
	}
	defer rows.Close()

	for rows.Next() {
		var uid uuid.UUID
		if err := rows.Scan(&uid); err != nil {
			return nil, errors.Wrap(err, "roomRepo.GetRoom.ScanParticipant")
		}
		rm.ParticipantIDs = append(rm.ParticipantIDs, uid)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "roomRepo.GetRoom.Rows")
	}
	return &rm, nil
}
