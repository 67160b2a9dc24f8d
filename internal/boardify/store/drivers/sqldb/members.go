package sqldb

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

type membersRepo struct {
	c conn
}

func (r *membersRepo) AddMember(ctx context.Context, m domain.Member) error {
	_, err := r.c.exec(ctx,
		`INSERT INTO collaborative_board_members (board_id, user_id, role, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (board_id, user_id) DO NOTHING`,
		m.BoardID, m.UserID, string(m.Role), m.CreatedAt.UTC(),
	)
	return err
}

func (r *membersRepo) UpsertMember(ctx context.Context, m domain.Member) error {
	_, err := r.c.exec(ctx,
		`INSERT INTO collaborative_board_members (board_id, user_id, role, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (board_id, user_id) DO UPDATE SET role = excluded.role`,
		m.BoardID, m.UserID, string(m.Role), m.CreatedAt.UTC(),
	)
	return err
}

func (r *membersRepo) GetRole(ctx context.Context, boardID, userID string) (domain.BoardRole, error) {
	var role string
	err := r.c.queryRow(ctx,
		`SELECT role FROM collaborative_board_members WHERE board_id = ? AND user_id = ?`,
		boardID, userID,
	).Scan(&role)
	if err != nil {
		return domain.RoleNone, mapNotFound(err)
	}
	return parseRole(role)
}

// parseRole rejects role values written outside this package.
func parseRole(s string) (domain.BoardRole, error) {
	r := domain.BoardRole(s)
	if !r.Valid() {
		return domain.RoleNone, fmt.Errorf("unknown board role %q", s)
	}
	return r, nil
}

func (r *membersRepo) ListMembers(ctx context.Context, boardID string) ([]domain.Member, error) {
	rows, err := r.c.query(ctx, `
		SELECT m.board_id, m.user_id, m.role, m.created_at, u.email, u.name
		FROM collaborative_board_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.board_id = ?
		ORDER BY m.created_at, u.email`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Member{}
	for rows.Next() {
		var (
			m    domain.Member
			role string
		)
		if err := rows.Scan(&m.BoardID, &m.UserID, &role, &m.CreatedAt, &m.Email, &m.Name); err != nil {
			return nil, err
		}
		if m.Role, err = parseRole(role); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
