package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

type boardsRepo struct {
	c conn
}

const (
	boardColumns = `b.id, b.document, b.user_id, b.created_at, b.updated_at`

	isCollab  = `EXISTS (SELECT 1 FROM collaborative_boards cb WHERE cb.board_id = b.id)`
	notCollab = `NOT ` + isCollab
)

func scanBoard(row interface{ Scan(...any) error }) (domain.BoardRecord, error) {
	var (
		rec   domain.BoardRecord
		id    string
		doc   string
		owner sql.NullString
	)
	if err := row.Scan(&id, &doc, &owner, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return domain.BoardRecord{}, err
	}
	if err := json.Unmarshal([]byte(doc), &rec.Board); err != nil {
		return domain.BoardRecord{}, fmt.Errorf("decode board %s: %w", id, err)
	}
	rec.Board.ID = id
	rec.Board = rec.Board.Normalize()
	rec.OwnerID = mapNullString(owner)
	return rec, nil
}

func encodeBoard(b domain.Board) (string, error) {
	raw, err := json.Marshal(b.Normalize())
	if err != nil {
		return "", fmt.Errorf("encode board %s: %w", b.ID, err)
	}
	return string(raw), nil
}

func (r *boardsRepo) CreateBoard(ctx context.Context, rec domain.BoardRecord) error {
	doc, err := encodeBoard(rec.Board)
	if err != nil {
		return err
	}
	_, err = r.c.exec(ctx,
		`INSERT INTO boards (id, document, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Board.ID, doc, mapStringNull(rec.OwnerID), rec.CreatedAt.UTC(), rec.UpdatedAt.UTC(),
	)
	return err
}

func (r *boardsRepo) GetPersonalBoard(ctx context.Context, id, ownerID string) (domain.BoardRecord, error) {
	rec, err := scanBoard(r.c.queryRow(ctx,
		`SELECT `+boardColumns+` FROM boards b WHERE b.id = ? AND b.user_id = ? AND `+notCollab,
		id, ownerID,
	))
	if err != nil {
		return domain.BoardRecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *boardsRepo) ListPersonalBoards(ctx context.Context, ownerID string) ([]domain.BoardRecord, error) {
	rows, err := r.c.query(ctx,
		`SELECT `+boardColumns+` FROM boards b WHERE b.user_id = ? AND `+notCollab+` ORDER BY b.created_at, b.id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.BoardRecord{}
	for rows.Next() {
		rec, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *boardsRepo) UpdatePersonalBoard(ctx context.Context, b domain.Board, ownerID string, at time.Time) error {
	doc, err := encodeBoard(b)
	if err != nil {
		return err
	}
	return r.c.execOne(ctx,
		`UPDATE boards SET document = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?
		   AND NOT EXISTS (SELECT 1 FROM collaborative_boards cb WHERE cb.board_id = boards.id)`,
		doc, at.UTC(), b.ID, ownerID,
	)
}

func (r *boardsRepo) DeletePersonalBoard(ctx context.Context, id, ownerID string) error {
	return r.c.execOne(ctx,
		`DELETE FROM boards
		 WHERE id = ? AND user_id = ?
		   AND NOT EXISTS (SELECT 1 FROM collaborative_boards cb WHERE cb.board_id = boards.id)`,
		id, ownerID,
	)
}

func (r *boardsRepo) GetCollabBoard(ctx context.Context, id string) (domain.BoardRecord, error) {
	rec, err := scanBoard(r.c.queryRow(ctx,
		`SELECT `+boardColumns+` FROM boards b WHERE b.id = ? AND `+isCollab,
		id,
	))
	if err != nil {
		return domain.BoardRecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *boardsRepo) UpdateCollabBoard(ctx context.Context, b domain.Board, at time.Time) error {
	doc, err := encodeBoard(b)
	if err != nil {
		return err
	}
	return r.c.execOne(ctx,
		`UPDATE boards SET document = ?, updated_at = ?
		 WHERE id = ?
		   AND EXISTS (SELECT 1 FROM collaborative_boards cb WHERE cb.board_id = boards.id)`,
		doc, at.UTC(), b.ID,
	)
}

func (r *boardsRepo) DeleteCollabBoard(ctx context.Context, id string) error {
	return r.c.execOne(ctx,
		`DELETE FROM boards
		 WHERE id = ?
		   AND EXISTS (SELECT 1 FROM collaborative_boards cb WHERE cb.board_id = boards.id)`,
		id,
	)
}
