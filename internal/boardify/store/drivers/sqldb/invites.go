package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

type invitesRepo struct {
	c conn
}

const inviteColumns = `id, board_id, email, token_hash, invited_by, expires_at, accepted_by, accepted_at, created_at`

func scanInvite(row interface{ Scan(...any) error }) (domain.Invite, error) {
	var (
		inv        domain.Invite
		acceptedBy sql.NullString
		acceptedAt sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.BoardID, &inv.Email, &inv.TokenHash, &inv.InvitedBy,
		&inv.ExpiresAt, &acceptedBy, &acceptedAt, &inv.CreatedAt,
	)
	if err != nil {
		return domain.Invite{}, err
	}
	inv.AcceptedBy = mapNullString(acceptedBy)
	if acceptedAt.Valid {
		t := acceptedAt.Time
		inv.AcceptedAt = &t
	}
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.c.exec(ctx,
		`INSERT INTO collaborative_board_invites (id, board_id, email, token_hash, invited_by, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.BoardID, domain.NormalizeEmail(inv.Email), inv.TokenHash, inv.InvitedBy,
		inv.ExpiresAt.UTC(), inv.CreatedAt.UTC(),
	)
	return err
}

func (r *invitesRepo) GetActiveInviteByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Invite, error) {
	inv, err := scanInvite(r.c.queryRow(ctx,
		`SELECT `+inviteColumns+` FROM collaborative_board_invites
		 WHERE token_hash = ? AND accepted_at IS NULL AND expires_at > ?`,
		hash, now.UTC(),
	))
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) ListActiveInvitesByEmail(ctx context.Context, email string, now time.Time) ([]domain.Invite, error) {
	return r.list(ctx,
		`SELECT `+inviteColumns+` FROM collaborative_board_invites
		 WHERE email = ? AND accepted_at IS NULL AND expires_at > ?
		 ORDER BY created_at, id`,
		domain.NormalizeEmail(email), now.UTC(),
	)
}

func (r *invitesRepo) ListActiveInvitesByBoard(ctx context.Context, boardID string, now time.Time) ([]domain.Invite, error) {
	return r.list(ctx,
		`SELECT `+inviteColumns+` FROM collaborative_board_invites
		 WHERE board_id = ? AND accepted_at IS NULL AND expires_at > ?
		 ORDER BY created_at, id`,
		boardID, now.UTC(),
	)
}

func (r *invitesRepo) list(ctx context.Context, query string, args ...any) ([]domain.Invite, error) {
	rows, err := r.c.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Invite{}
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitesRepo) MarkInviteAccepted(ctx context.Context, inviteID, userID string, at time.Time) error {
	return r.c.execOne(ctx,
		`UPDATE collaborative_board_invites SET accepted_by = ?, accepted_at = ?
		 WHERE id = ? AND accepted_at IS NULL`,
		userID, at.UTC(), inviteID,
	)
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.c.exec(ctx,
		`DELETE FROM collaborative_board_invites WHERE accepted_at IS NULL AND expires_at <= ?`,
		now.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
