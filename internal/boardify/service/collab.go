package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/boardview"
	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
)

// CollabService manages collaborative boards. Reads and edits need
// membership; deletion needs admin.
type CollabService struct {
	Store  store.Store
	Access *AccessService
	Now    func() time.Time
}

// Create stores the board, marks it collaborative and makes the creator its
// admin. All three writes commit together or not at all.
func (s *CollabService) Create(ctx context.Context, userID string, b domain.Board) (domain.MemberBoard, error) {
	log := slogx.FromContext(ctx)

	if err := b.Validate(); err != nil {
		return domain.MemberBoard{}, err
	}
	b = b.Normalize()
	now := nowFrom(s.Now)

	rec := domain.BoardRecord{Board: b, CreatedAt: now, UpdatedAt: now}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Boards().CreateBoard(ctx, rec); err != nil {
			return err
		}
		if err := tx.CollabBoards().CreateCollabBoard(ctx, domain.CollaborativeBoard{
			BoardID:   b.ID,
			CreatedBy: userID,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		return tx.Members().UpsertMember(ctx, domain.Member{
			BoardID:   b.ID,
			UserID:    userID,
			Role:      domain.RoleAdmin,
			CreatedAt: now,
		})
	})
	if err != nil {
		return domain.MemberBoard{}, mapBoardWriteErr(ctx, b.ID, err)
	}

	log.Info("collaborative board created", slog.String("board_id", b.ID))
	return domain.MemberBoard{Record: rec, Role: domain.RoleAdmin, CreatedBy: userID}, nil
}

func (s *CollabService) Get(ctx context.Context, userID, boardID string) (domain.MemberBoard, error) {
	role, err := s.Access.RequireMember(ctx, boardID, userID)
	if err != nil {
		return domain.MemberBoard{}, err
	}
	return s.load(ctx, boardID, role)
}

// load reads the stored board and its creator for a caller holding role.
func (s *CollabService) load(ctx context.Context, boardID string, role domain.BoardRole) (domain.MemberBoard, error) {
	rec, err := s.Store.Boards().GetCollabBoard(ctx, boardID)
	if err != nil {
		return domain.MemberBoard{}, mapBoardReadErr(ctx, boardID, err)
	}
	cb, err := s.Store.CollabBoards().GetCollabBoard(ctx, boardID)
	if err != nil {
		return domain.MemberBoard{}, mapBoardReadErr(ctx, boardID, err)
	}
	return domain.MemberBoard{Record: rec, Role: role, CreatedBy: cb.CreatedBy}, nil
}

// List returns the collaborative boards the user belongs to.
func (s *CollabService) List(ctx context.Context, userID string) ([]domain.MemberBoard, error) {
	out, err := s.Store.CollabBoards().ListBoardsForMember(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list collaborative boards", slog.Any("error", err))
		return nil, err
	}
	return out, nil
}

// Update replaces the document. Any member may edit; last write wins.
func (s *CollabService) Update(ctx context.Context, userID, pathID string, b domain.Board) (domain.MemberBoard, error) {
	if err := b.Validate(); err != nil {
		return domain.MemberBoard{}, err
	}
	if b.ID != pathID {
		return domain.MemberBoard{}, ErrBoardIDMismatch
	}

	role, err := s.Access.RequireMember(ctx, pathID, userID)
	if err != nil {
		return domain.MemberBoard{}, err
	}

	b = b.Normalize()
	now := nowFrom(s.Now)
	if err := s.Store.Boards().UpdateCollabBoard(ctx, b, now); err != nil {
		return domain.MemberBoard{}, mapBoardReadErr(ctx, pathID, err)
	}
	return s.load(ctx, pathID, role)
}

func (s *CollabService) Delete(ctx context.Context, userID, boardID string) error {
	if _, err := s.Access.RequireAdmin(ctx, boardID, userID); err != nil {
		return err
	}
	if err := s.Store.Boards().DeleteCollabBoard(ctx, boardID); err != nil {
		return mapBoardReadErr(ctx, boardID, err)
	}
	slogx.FromContext(ctx).Info("collaborative board deleted", slog.String("board_id", boardID))
	return nil
}

func (s *CollabService) Members(ctx context.Context, userID, boardID string) ([]domain.Member, error) {
	if _, err := s.Access.RequireMember(ctx, boardID, userID); err != nil {
		return nil, err
	}
	members, err := s.Store.Members().ListMembers(ctx, boardID)
	if err != nil {
		return nil, mapBoardReadErr(ctx, boardID, err)
	}
	return members, nil
}

// UpdateSubtasks is BoardService.UpdateSubtasks for members.
func (s *CollabService) UpdateSubtasks(
	ctx context.Context,
	userID, boardID, taskID string,
	subtasks []domain.Subtask,
) (domain.Board, error) {
	if _, err := s.Access.RequireMember(ctx, boardID, userID); err != nil {
		return domain.Board{}, err
	}

	var out domain.Board
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		rec, err := tx.Boards().GetCollabBoard(ctx, boardID)
		if err != nil {
			return err
		}
		now := nowFrom(s.Now)
		updated, _, err := boardview.SetSubtasks(rec.Board, taskID, subtasks, now)
		if err != nil {
			return err
		}
		out = updated
		return tx.Boards().UpdateCollabBoard(ctx, updated, now)
	})
	if err != nil {
		return domain.Board{}, mapSubtaskErr(ctx, boardID, err)
	}
	return out, nil
}

func (s *CollabService) Stats(
	ctx context.Context,
	userID, boardID string,
	f boardview.Filter,
	mode boardview.CompletionMode,
) (boardview.Stats, error) {
	mb, err := s.Get(ctx, userID, boardID)
	if err != nil {
		return boardview.Stats{}, err
	}
	return boardview.Summarize(mb.Record.Board, f, mode, nowFrom(s.Now)), nil
}
