package sqldb

import (
	"context"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

type sessionsRepo struct {
	c conn
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.c.exec(ctx,
		`INSERT INTO sessions (id, user_id, token_hash, expires_at, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.TokenHash, s.ExpiresAt.UTC(), s.CreatedAt.UTC(),
	)
	return err
}

func (r *sessionsRepo) GetActiveSession(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (domain.Session, domain.User, error) {
	var (
		s domain.Session
		u domain.User
	)
	err := r.c.queryRow(ctx, `
		SELECT s.id, s.user_id, s.token_hash, s.expires_at, s.created_at,
		       u.id, u.name, u.email, u.password_hash, u.salt, u.iterations, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = ? AND s.expires_at > ?`,
		tokenHash, now.UTC(),
	).Scan(
		&s.ID, &s.UserID, &s.TokenHash, &s.ExpiresAt, &s.CreatedAt,
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Salt, &u.Iterations, &u.CreatedAt,
	)
	if err != nil {
		return domain.Session{}, domain.User{}, mapNotFound(err)
	}
	return s, u, nil
}

func (r *sessionsRepo) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.c.exec(ctx, `DELETE FROM sessions WHERE token_hash = ?`, tokenHash)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.c.exec(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
