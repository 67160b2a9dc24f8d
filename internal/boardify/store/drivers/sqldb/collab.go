package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

type collabBoardsRepo struct {
	c conn
}

func (r *collabBoardsRepo) CreateCollabBoard(ctx context.Context, cb domain.CollaborativeBoard) error {
	_, err := r.c.exec(ctx,
		`INSERT INTO collaborative_boards (board_id, created_by, created_at) VALUES (?, ?, ?)`,
		cb.BoardID, cb.CreatedBy, cb.CreatedAt.UTC(),
	)
	return err
}

func (r *collabBoardsRepo) GetCollabBoard(ctx context.Context, boardID string) (domain.CollaborativeBoard, error) {
	var cb domain.CollaborativeBoard
	err := r.c.queryRow(ctx,
		`SELECT board_id, created_by, created_at FROM collaborative_boards WHERE board_id = ?`,
		boardID,
	).Scan(&cb.BoardID, &cb.CreatedBy, &cb.CreatedAt)
	if err != nil {
		return domain.CollaborativeBoard{}, mapNotFound(err)
	}
	return cb, nil
}

func (r *collabBoardsRepo) ListBoardsForMember(ctx context.Context, userID string) ([]domain.MemberBoard, error) {
	rows, err := r.c.query(ctx, `
		SELECT b.id, b.document, b.user_id, b.created_at, b.updated_at, m.role, cb.created_by
		FROM collaborative_board_members m
		JOIN collaborative_boards cb ON cb.board_id = m.board_id
		JOIN boards b ON b.id = m.board_id
		WHERE m.user_id = ?
		ORDER BY b.created_at, b.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.MemberBoard{}
	for rows.Next() {
		var (
			mb    domain.MemberBoard
			id    string
			doc   string
			owner sql.NullString
			role  string
		)
		if err := rows.Scan(&id, &doc, &owner, &mb.Record.CreatedAt, &mb.Record.UpdatedAt, &role, &mb.CreatedBy); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(doc), &mb.Record.Board); err != nil {
			return nil, fmt.Errorf("decode board %s: %w", id, err)
		}
		mb.Record.Board.ID = id
		mb.Record.Board = mb.Record.Board.Normalize()
		mb.Record.OwnerID = mapNullString(owner)
		if mb.Role, err = parseRole(role); err != nil {
			return nil, err
		}
		out = append(out, mb)
	}
	return out, rows.Err()
}
