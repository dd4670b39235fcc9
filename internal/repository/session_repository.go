package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitortoniolo/webapp-showme/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.SessionToken) error {
	const query = `
		INSERT INTO session_tokens (token, user_id, created_at, last_used_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, last_used_at
	`

	row := r.pool.QueryRow(ctx, query, session.Token, session.UserID)
	return row.Scan(&session.ID, &session.CreatedAt, &session.LastUsedAt)
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (models.SessionToken, error) {
	const query = `
		SELECT id, token, user_id, created_at, last_used_at
		FROM session_tokens WHERE token = $1
	`

	row := r.pool.QueryRow(ctx, query, token)
	var session models.SessionToken
	if err := row.Scan(
		&session.ID,
		&session.Token,
		&session.UserID,
		&session.CreatedAt,
		&session.LastUsedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SessionToken{}, ErrSessionNotFound
		}
		return models.SessionToken{}, err
	}
	return session, nil
}

// Touch records that the token was just used.
func (r *SessionRepository) Touch(ctx context.Context, id int64) error {
	const query = `UPDATE session_tokens SET last_used_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// DeleteByToken is idempotent: deleting a token that is already gone is
// not an error.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	const query = `DELETE FROM session_tokens WHERE token = $1`
	_, err := r.pool.Exec(ctx, query, token)
	return err
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID int64) ([]models.SessionToken, error) {
	const query = `
		SELECT id, token, user_id, created_at, last_used_at
		FROM session_tokens
		WHERE user_id = $1
		ORDER BY last_used_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.SessionToken
	for rows.Next() {
		var session models.SessionToken
		if err := rows.Scan(
			&session.ID,
			&session.Token,
			&session.UserID,
			&session.CreatedAt,
			&session.LastUsedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
