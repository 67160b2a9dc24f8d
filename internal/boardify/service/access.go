package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
)

// AccessService decides what a user may do on a collaborative board.
//
// Roles only move upwards: none -> member (invite) -> admin. The board's
// creator is promoted to admin on demand by EnsureAdmin, so losing the
// membership row written at creation never locks them out. There is no
// demotion path.
type AccessService struct {
	Store store.Store
	Now   func() time.Time
}

// GetRole returns the user's role, or RoleNone without error when the user
// has no membership.
func (s *AccessService) GetRole(ctx context.Context, boardID, userID string) (domain.BoardRole, error) {
	role, err := s.Store.Members().GetRole(ctx, boardID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.RoleNone, nil
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to fetch board role",
			slog.String("board_id", boardID),
			slog.Any("error", err),
		)
		return domain.RoleNone, err
	}
	return role, nil
}

// EnsureAdmin returns RoleAdmin if the user is an admin, bootstrapping an
// admin membership when the user created the board. Anyone else gets
// RoleNone.
func (s *AccessService) EnsureAdmin(ctx context.Context, boardID, userID string) (domain.BoardRole, error) {
	log := slogx.FromContext(ctx)

	role, err := s.GetRole(ctx, boardID, userID)
	if err != nil {
		return domain.RoleNone, err
	}
	if role == domain.RoleAdmin {
		return domain.RoleAdmin, nil
	}

	cb, err := s.Store.CollabBoards().GetCollabBoard(ctx, boardID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.RoleNone, nil
	}
	if err != nil {
		log.Error("failed to fetch collaborative board",
			slog.String("board_id", boardID),
			slog.Any("error", err),
		)
		return domain.RoleNone, err
	}
	if cb.CreatedBy != userID {
		return domain.RoleNone, nil
	}

	err = s.Store.Members().UpsertMember(ctx, domain.Member{
		BoardID:   boardID,
		UserID:    userID,
		Role:      domain.RoleAdmin,
		CreatedAt: nowFrom(s.Now),
	})
	if err != nil {
		log.Error("failed to bootstrap creator admin",
			slog.String("board_id", boardID),
			slog.Any("error", err),
		)
		return domain.RoleNone, err
	}

	log.Info("bootstrapped creator as board admin",
		slog.String("board_id", boardID),
		slog.String("previous_role", string(role)),
	)
	return domain.RoleAdmin, nil
}

// RequireMember fails with ErrBoardNotFound when the collaborative board
// does not exist and ErrForbidden when the user holds no role on it.
func (s *AccessService) RequireMember(ctx context.Context, boardID, userID string) (domain.BoardRole, error) {
	return s.require(ctx, boardID, userID, domain.RoleMember)
}

// RequireAdmin is RequireMember for admin-only operations.
func (s *AccessService) RequireAdmin(ctx context.Context, boardID, userID string) (domain.BoardRole, error) {
	return s.require(ctx, boardID, userID, domain.RoleAdmin)
}

func (s *AccessService) require(ctx context.Context, boardID, userID string, want domain.BoardRole) (domain.BoardRole, error) {
	if _, err := s.Store.CollabBoards().GetCollabBoard(ctx, boardID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RoleNone, ErrBoardNotFound
		}
		return domain.RoleNone, err
	}

	role, err := s.GetRole(ctx, boardID, userID)
	if err != nil {
		return domain.RoleNone, err
	}
	if !role.Satisfies(want) {
		promoted, err := s.EnsureAdmin(ctx, boardID, userID)
		if err != nil {
			return domain.RoleNone, err
		}
		if promoted == domain.RoleAdmin {
			role = promoted
		}
	}
	if !role.Satisfies(want) {
		slogx.FromContext(ctx).Warn("board access denied",
			slog.String("board_id", boardID),
			slog.String("role", string(role)),
			slog.String("required", string(want)),
		)
		return role, ErrForbidden
	}
	return role, nil
}
