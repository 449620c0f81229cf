package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.ChatMessage) (chat.ChatMessage, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	// Stored without zone; the column always denotes UTC.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_messages (id, post_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.RoomID, m.AuthorID, m.Body, m.CreatedAt.UTC())
	if err != nil {
		return chat.ChatMessage{}, errors.Wrap(err, "chatRepo.SaveMessage.Insert")
	}
	return m, nil
}

func (r *PgChatRepository) ListMessages(ctx context.Context, roomID uuid.UUID) ([]chat.ChatMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.post_id, m.user_id, m.content, m.created_at,
		       u.display_name, u.profile_image_url
		FROM chat_messages m
		LEFT JOIN users u ON u.id = m.user_id
		WHERE m.post_id = $1
		ORDER BY m.created_at ASC, m.id ASC
	`, roomID)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListMessages.Query")
	}
	defer rows.Close()

	var msgs []chat.ChatMessage
	for rows.Next() {
		var m chat.ChatMessage
		if err := rows.Scan(&m.ID, &m.RoomID, &m.AuthorID, &m.Body, &m.CreatedAt,
			&m.AuthorDisplayName, &m.AuthorProfileImageURL); err != nil {
			return nil, errors.Wrap(err, "chatRepo.ListMessages.Scan")
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "chatRepo.ListMessages.Rows")
	}
	return msgs, nil
}

func (r *PgChatRepository) HasJoinNotice(ctx context.Context, roomID, userID uuid.UUID, marker string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM chat_messages
			WHERE post_id = $1 AND user_id = $2 AND content ILIKE '%' || $3 || '%'
		)
	`, roomID, userID, marker).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "chatRepo.HasJoinNotice.Scan")
	}
	return exists, nil
}

func (r *PgChatRepository) MarkRead(ctx context.Context, roomID, userID uuid.UUID, at *time.Time) error {
	var ts *time.Time
	if at != nil {
		utc := at.UTC()
		ts = &utc
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_reads (id, post_id, user_id, last_read_at, unread_count)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (post_id, user_id) DO UPDATE SET
			unread_count = 0,
			last_read_at = CASE
				WHEN EXCLUDED.last_read_at IS NULL THEN chat_reads.last_read_at
				WHEN chat_reads.last_read_at IS NULL THEN EXCLUDED.last_read_at
				ELSE GREATEST(chat_reads.last_read_at, EXCLUDED.last_read_at)
			END
	`, uuid.New(), roomID, userID, ts)
	if err != nil {
		return errors.Wrap(err, "chatRepo.MarkRead.Upsert")
	}
	return nil
}

func (r *PgChatRepository) BumpUnread(ctx context.Context, roomID uuid.UUID, memberIDs []uuid.UUID, senderID uuid.UUID, at time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.BumpUnread.Begin")
	}
	defer tx.Rollback(ctx)

	ts := at.UTC()
	for _, uid := range memberIDs {
		if senderID != uuid.Nil && uid == senderID {
			_, err = tx.Exec(ctx, `
				INSERT INTO chat_reads (id, post_id, user_id, last_read_at, unread_count)
				VALUES ($1, $2, $3, $4, 0)
				ON CONFLICT (post_id, user_id) DO UPDATE SET
					unread_count = 0,
					last_read_at = EXCLUDED.last_read_at
			`, uuid.New(), roomID, uid, ts)
		} else {
			_, err = tx.Exec(ctx, `
				INSERT INTO chat_reads (id, post_id, user_id, last_read_at, unread_count)
				VALUES ($1, $2, $3, NULL, 1)
				ON CONFLICT (post_id, user_id) DO UPDATE SET
					unread_count = chat_reads.unread_count + 1
			`, uuid.New(), roomID, uid)
		}
		if err != nil {
			return errors.Wrap(err, "chatRepo.BumpUnread.Upsert")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "chatRepo.BumpUnread.Commit")
	}
	return nil
}

func (r *PgChatRepository) GetCursor(ctx context.Context, roomID, userID uuid.UUID) (*chat.ReadCursor, error) {
	cur := chat.ReadCursor{RoomID: roomID, UserID: userID}
	rows, err := r.pool.Query(ctx, `
		SELECT last_read_at, unread_count
		FROM chat_reads
		WHERE post_id = $1 AND user_id = $2
	`, roomID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.GetCursor.Query")
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	if err := rows.Scan(&cur.LastReadAt, &cur.UnreadCount); err != nil {
		return nil, errors.Wrap(err, "chatRepo.GetCursor.Scan")
	}
	return &cur, nil
}
