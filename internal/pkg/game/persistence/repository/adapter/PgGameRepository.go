package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	game "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/game/persistence/repository/port"
)

type PgGameRepository struct {
	pool *pgxpool.Pool
}

func NewPgGameRepository(pool *pgxpool.Pool) *PgGameRepository {
	return &PgGameRepository{pool: pool}
}

var _ repository.GameRepository = (*PgGameRepository)(nil)

func (r *PgGameRepository) ReplaceAssignments(ctx context.Context, roomID uuid.UUID, rows []game.Assignment) ([]game.Assignment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "gameRepo.ReplaceAssignments.Begin")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM play_roles WHERE post_id = $1`, roomID); err != nil {
		return nil, errors.Wrap(err, "gameRepo.ReplaceAssignments.DeleteRoles")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM role_chat_messages WHERE post_id = $1`, roomID); err != nil {
		return nil, errors.Wrap(err, "gameRepo.ReplaceAssignments.DeleteChat")
	}

	now := time.Now().UTC()
	for _, a := range rows {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO play_roles (id, post_id, user_id, role, is_captured, created_at)
			VALUES ($1, $2, $3, $4, false, $5)
		`, a.ID, roomID, a.UserID, string(a.Role), now); err != nil {
			return nil, errors.Wrap(err, "gameRepo.ReplaceAssignments.Insert")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "gameRepo.ReplaceAssignments.Commit")
	}
	return r.ListAssignments(ctx, roomID)
}

func (r *PgGameRepository) ListAssignments(ctx context.Context, roomID uuid.UUID) ([]game.Assignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ra.id, ra.post_id, ra.user_id, ra.role, ra.is_captured, ra.created_at,
		       u.display_name, u.profile_image_url
		FROM play_roles ra
		JOIN users u ON u.id = ra.user_id
		WHERE ra.post_id = $1
		ORDER BY ra.created_at ASC, ra.id ASC
	`, roomID)
	if err != nil {
		return nil, errors.Wrap(err, "gameRepo.ListAssignments.Query")
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *PgGameRepository) GetAssignment(ctx context.Context, roomID, userID uuid.UUID) (*game.Assignment, error) {
	var a game.Assignment
	var role string
	err := r.pool.QueryRow(ctx, `
		SELECT ra.id, ra.post_id, ra.user_id, ra.role, ra.is_captured, ra.created_at,
		       u.display_name, u.profile_image_url
		FROM play_roles ra
		JOIN users u ON u.id = ra.user_id
		WHERE ra.post_id = $1 AND ra.user_id = $2
	`, roomID, userID).Scan(&a.ID, &a.RoomID, &a.UserID, &role, &a.Captured, &a.CreatedAt,
		&a.UserDisplayName, &a.UserProfileImageURL)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "gameRepo.GetAssignment.Scan")
	}
	a.Role = game.Role(role)
	return &a, nil
}

func (r *PgGameRepository) SetCaptured(ctx context.Context, roomID, userID uuid.UUID, captured bool) (*game.Assignment, error) {
	ct, err := r.pool.Exec(ctx, `
		UPDATE play_roles
		SET is_captured = $3
		WHERE post_id = $1 AND user_id = $2
	`, roomID, userID, captured)
	if err != nil {
		return nil, errors.Wrap(err, "gameRepo.SetCaptured.Update")
	}
	if ct.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetAssignment(ctx, roomID, userID)
}

func (r *PgGameRepository) SaveRoleMessage(ctx context.Context, m game.RoleMessage) (game.RoleMessage, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO role_chat_messages (id, post_id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.RoomID, m.UserID, string(m.Role), m.Body, m.CreatedAt.UTC())
	if err != nil {
		return game.RoleMessage{}, errors.Wrap(err, "gameRepo.SaveRoleMessage.Insert")
	}
	return m, nil
}

func (r *PgGameRepository) ListRoleMessages(ctx context.Context, roomID uuid.UUID, role game.Role) ([]game.RoleMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.post_id, m.user_id, m.role, m.content, m.created_at,
		       u.display_name, u.profile_image_url
		FROM role_chat_messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.post_id = $1 AND m.role = $2
		ORDER BY m.created_at ASC, m.id ASC
	`, roomID, string(role))
	if err != nil {
		return nil, errors.Wrap(err, "gameRepo.ListRoleMessages.Query")
	}
	defer rows.Close()

	var msgs []game.RoleMessage
	for rows.Next() {
		var m game.RoleMessage
		var roleStr string
		if err := rows.Scan(&m.ID, &m.RoomID, &m.UserID, &roleStr, &m.Body, &m.CreatedAt,
			&m.UserDisplayName, &m.UserProfileImageURL); err != nil {
			return nil, errors.Wrap(err, "gameRepo.ListRoleMessages.Scan")
		}
		m.Role = game.Role(roleStr)
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "gameRepo.ListRoleMessages.Rows")
	}
	return msgs, nil
}

func scanAssignments(rows pgx.Rows) ([]game.Assignment, error) {
	var out []game.Assignment
	for rows.Next() {
		var a game.Assignment
		var role string
		if err := rows.Scan(&a.ID, &a.RoomID, &a.UserID, &role, &a.Captured, &a.CreatedAt,
			&a.UserDisplayName, &a.UserProfileImageURL); err != nil {
			return nil, errors.Wrap(err, "gameRepo.scanAssignments.Scan")
		}
		a.Role = game.Role(role)
		out = append(out, a)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "gameRepo.scanAssignments.Rows")
	}
	return out, nil
}
