package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/boardview"
	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
)

// BoardService manages personal boards. Every operation is scoped to the
// owner; collaborative boards are invisible here.
type BoardService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *BoardService) Create(ctx context.Context, userID string, b domain.Board) (domain.Board, error) {
	if err := b.Validate(); err != nil {
		return domain.Board{}, err
	}
	b = b.Normalize()

	now := nowFrom(s.Now)
	err := s.Store.Boards().CreateBoard(ctx, domain.BoardRecord{
		Board:     b,
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Board{}, mapBoardWriteErr(ctx, b.ID, err)
	}

	slogx.FromContext(ctx).Info("board created", slog.String("board_id", b.ID))
	return b, nil
}

func (s *BoardService) Get(ctx context.Context, userID, boardID string) (domain.Board, error) {
	rec, err := s.Store.Boards().GetPersonalBoard(ctx, boardID, userID)
	if err != nil {
		return domain.Board{}, mapBoardReadErr(ctx, boardID, err)
	}
	return rec.Board, nil
}

func (s *BoardService) List(ctx context.Context, userID string) ([]domain.Board, error) {
	recs, err := s.Store.Boards().ListPersonalBoards(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list boards", slog.Any("error", err))
		return nil, err
	}
	out := make([]domain.Board, len(recs))
	for i, r := range recs {
		out[i] = r.Board
	}
	return out, nil
}

// Update replaces the board document. pathID must match the document id.
func (s *BoardService) Update(ctx context.Context, userID, pathID string, b domain.Board) (domain.Board, error) {
	if err := b.Validate(); err != nil {
		return domain.Board{}, err
	}
	if b.ID != pathID {
		return domain.Board{}, ErrBoardIDMismatch
	}
	b = b.Normalize()

	if err := s.Store.Boards().UpdatePersonalBoard(ctx, b, userID, nowFrom(s.Now)); err != nil {
		return domain.Board{}, mapBoardReadErr(ctx, pathID, err)
	}
	return b, nil
}

func (s *BoardService) Delete(ctx context.Context, userID, boardID string) error {
	if err := s.Store.Boards().DeletePersonalBoard(ctx, boardID, userID); err != nil {
		return mapBoardReadErr(ctx, boardID, err)
	}
	slogx.FromContext(ctx).Info("board deleted", slog.String("board_id", boardID))
	return nil
}

// UpdateSubtasks replaces a task's subtasks, moving the task to the Done
// column once every subtask is completed.
func (s *BoardService) UpdateSubtasks(
	ctx context.Context,
	userID, boardID, taskID string,
	subtasks []domain.Subtask,
) (domain.Board, error) {
	var out domain.Board
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		rec, err := tx.Boards().GetPersonalBoard(ctx, boardID, userID)
		if err != nil {
			return err
		}

		now := nowFrom(s.Now)
		updated, moved, err := boardview.SetSubtasks(rec.Board, taskID, subtasks, now)
		if err != nil {
			return err
		}
		if moved {
			slogx.FromContext(ctx).Debug("task auto-promoted to done",
				slog.String("board_id", boardID),
				slog.String("task_id", taskID),
			)
		}

		out = updated
		return tx.Boards().UpdatePersonalBoard(ctx, updated, userID, now)
	})
	if err != nil {
		return domain.Board{}, mapSubtaskErr(ctx, boardID, err)
	}
	return out, nil
}

// Stats summarizes the board's tasks matching f.
func (s *BoardService) Stats(
	ctx context.Context,
	userID, boardID string,
	f boardview.Filter,
	mode boardview.CompletionMode,
) (boardview.Stats, error) {
	b, err := s.Get(ctx, userID, boardID)
	if err != nil {
		return boardview.Stats{}, err
	}
	return boardview.Summarize(b, f, mode, nowFrom(s.Now)), nil
}

func mapBoardReadErr(ctx context.Context, boardID string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrBoardNotFound
	}
	slogx.FromContext(ctx).Error("board store failure",
		slog.String("board_id", boardID),
		slog.Any("error", err),
	)
	return err
}

func mapBoardWriteErr(ctx context.Context, boardID string, err error) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		slogx.FromContext(ctx).Warn("board id already taken", slog.String("board_id", boardID))
		return ErrBoardExists
	}
	return mapBoardReadErr(ctx, boardID, err)
}

func mapSubtaskErr(ctx context.Context, boardID string, err error) error {
	switch {
	case errors.Is(err, boardview.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, boardview.ErrInvalidSubtask):
		return err
	default:
		return mapBoardReadErr(ctx, boardID, err)
	}
}
