package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/repository/port"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (*repository.Profile, error) {
	p := repository.Profile{ID: id}
	err := r.pool.QueryRow(ctx, `
		SELECT display_name, profile_image_url
		FROM users
		WHERE id = $1
	`, id).Scan(&p.DisplayName, &p.ProfileImageURL)
	if err == pgx.ErrNoRows {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "userRepo.GetProfile.Scan")
	}
	return &p, nil
}
