package chat

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mindlog/internal/core/domain/chat"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/db"

	"github.com/jackc/pgx/v4"
)

type PgxSessionRepository struct {
	db db.Queryable
}

func NewPgxSessionRepository(db db.Queryable) *PgxSessionRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxSessionRepository{db: db}
}

func (r *PgxSessionRepository) Create(
	ctx context.Context,
	input chat.CreateSessionInput,
) (s chat.Session, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO chat_session (user_id, title, created_at, updated_at)
		 VALUES ($1, $2, $3, $3)
		 RETURNING id, user_id, title, created_at, updated_at`,
		string(input.UserID),
		input.Title,
		input.CreatedAt,
	)
	err = row.Scan(&s.ID, &s.UserID, &s.Title, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *PgxSessionRepository) GetByID(
	ctx context.Context,
	id chat.SessionID,
	userID user.ID,
) (s chat.Session, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, user_id, title, created_at, updated_at
		 FROM chat_session WHERE id = $1 AND user_id = $2`,
		string(id),
		string(userID),
	)
	err = row.Scan(&s.ID, &s.UserID, &s.Title, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, chat.ErrSessionDoesNotExist
	}
	return s, err
}

func (r *PgxSessionRepository) Touch(ctx context.Context, id chat.SessionID, at time.Time) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE chat_session SET updated_at = $2 WHERE id = $1`,
		string(id),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return chat.ErrSessionDoesNotExist
	}
	return nil
}

func (r *PgxSessionRepository) ReadWithRecentMessages(
	ctx context.Context,
	userID user.ID,
	messagesPerSession int,
) (sessions []chat.SessionWithMessages, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT s.id, s.user_id, s.title, s.created_at, s.updated_at,
		        m.id, m.role, m.content, m.created_at
		 FROM chat_session AS s
		 LEFT JOIN LATERAL (
			SELECT id, role, content, created_at
			FROM chat_message
			WHERE session_id = s.id
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		 ) AS m ON TRUE
		 WHERE s.user_id = $1
		 ORDER BY s.updated_at DESC, s.id, m.created_at DESC`,
		string(userID),
		messagesPerSession,
	)
	if err != nil {
		return sessions, err
	}
	defer rows.Close()

	for rows.Next() {
		var s chat.Session
		var messageID, role, content sql.NullString
		var messageCreatedAt sql.NullTime
		err = rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Title,
			&s.CreatedAt,
			&s.UpdatedAt,
			&messageID,
			&role,
			&content,
			&messageCreatedAt,
		)
		if err != nil {
			return sessions, err
		}

		if len(sessions) == 0 || sessions[len(sessions)-1].Session.ID != s.ID {
			sessions = append(sessions, chat.SessionWithMessages{Session: s, Messages: []chat.Message{}})
		}
		if messageID.Valid {
			last := &sessions[len(sessions)-1]
			last.Messages = append(last.Messages, chat.Message{
				ID:        chat.MessageID(messageID.String),
				SessionID: s.ID,
				Role:      chat.Role(role.String),
				Content:   content.String,
				CreatedAt: messageCreatedAt.Time,
			})
		}
	}
	return sessions, rows.Err()
}

type PgxMessageRepository struct {
	db db.Queryable
}

func NewPgxMessageRepository(db db.Queryable) *PgxMessageRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxMessageRepository{db: db}
}

func (r *PgxMessageRepository) Create(
	ctx context.Context,
	input chat.CreateMessageInput,
) (m chat.Message, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO chat_message (session_id, role, content, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, session_id, role, content, created_at`,
		string(input.SessionID),
		string(input.Role),
		string(input.Content),
		input.CreatedAt,
	)
	err = row.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt)
	return m, err
}
