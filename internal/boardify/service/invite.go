package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/aussiebroadwan/boardify/pkg/cryptox"
	"github.com/aussiebroadwan/boardify/pkg/idx"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
)

// DefaultInviteTTL is used when InviteService.TTL is unset.
const DefaultInviteTTL = 7 * 24 * time.Hour

type InviteService struct {
	Store  store.Store
	Access *AccessService
	TTL    time.Duration
	Now    func() time.Time
}

// InviteResult describes what CreateInvite did. Token is only set for
// InviteStatusCreated and is never retrievable again.
type InviteResult struct {
	Status    domain.InviteStatus
	Email     string
	Token     string
	ExpiresAt time.Time
	InviteID  string
}

func (s *InviteService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultInviteTTL
	}
	return s.TTL
}

// CreateInvite invites email to a collaborative board. Only admins may
// invite. Registered users become members immediately; anyone else gets a
// single-use token.
func (s *InviteService) CreateInvite(ctx context.Context, boardID, email, invitedBy string) (InviteResult, error) {
	log := slogx.FromContext(ctx)

	email, err := ParseEmail(email)
	if err != nil {
		return InviteResult{}, err
	}

	if _, err := s.Access.RequireAdmin(ctx, boardID, invitedBy); err != nil {
		return InviteResult{}, err
	}

	now := nowFrom(s.Now)

	existing, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		err := s.Store.Members().AddMember(ctx, domain.Member{
			BoardID:   boardID,
			UserID:    existing.ID,
			Role:      domain.RoleMember,
			CreatedAt: now,
		})
		if err != nil {
			log.Error("failed to add invited member",
				slog.String("board_id", boardID),
				slog.Any("error", err),
			)
			return InviteResult{}, err
		}
		log.Info("existing user added to board",
			slog.String("board_id", boardID),
			slog.String("member_id", existing.ID),
		)
		return InviteResult{Status: domain.InviteStatusMemberAdded, Email: email}, nil

	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to look up invitee", slog.Any("error", err))
		return InviteResult{}, err
	}

	token, tokenHash, err := cryptox.NewSecret()
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return InviteResult{}, err
	}

	inv := domain.Invite{
		ID:        idx.NewAt(now),
		BoardID:   boardID,
		Email:     email,
		TokenHash: tokenHash,
		InvitedBy: invitedBy,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}
	if err := s.Store.Invites().CreateInvite(ctx, inv); err != nil {
		log.Error("failed to create invite",
			slog.String("board_id", boardID),
			slog.Any("error", err),
		)
		return InviteResult{}, err
	}

	log.Info("invite created",
		slog.String("invite_id", inv.ID),
		slog.String("board_id", boardID),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	return InviteResult{
		Status:    domain.InviteStatusCreated,
		Email:     email,
		Token:     token,
		ExpiresAt: inv.ExpiresAt,
		InviteID:  inv.ID,
	}, nil
}

// AcceptInvite redeems an invite token for user and returns the board id.
func (s *InviteService) AcceptInvite(ctx context.Context, token string, user domain.User) (string, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return "", ErrInviteNotFound
	}

	inv, err := s.Store.Invites().GetActiveInviteByTokenHash(ctx, cryptox.Fingerprint(token), nowFrom(s.Now))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite acceptance with unknown or expired token")
			return "", ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return "", err
	}

	if !domain.SameEmail(inv.Email, user.Email) {
		log.Warn("invite acceptance by different email",
			slog.String("invite_id", inv.ID),
		)
		return "", ErrInviteEmailMismatch
	}

	if err := s.consume(ctx, inv, user.ID); err != nil {
		return "", err
	}

	log.Info("invite accepted",
		slog.String("invite_id", inv.ID),
		slog.String("board_id", inv.BoardID),
	)
	return inv.BoardID, nil
}

// ClaimPendingInvites consumes every active invite addressed to the user's
// email and returns the boards joined, each once. Each invite is consumed
// in its own transaction. A failed invite stays pending and does not stop
// the rest; the failures are returned joined.
func (s *InviteService) ClaimPendingInvites(ctx context.Context, user domain.User) ([]string, error) {
	log := slogx.FromContext(ctx)

	pending, err := s.Store.Invites().ListActiveInvitesByEmail(ctx, user.Email, nowFrom(s.Now))
	if err != nil {
		log.Error("failed to list pending invites", slog.Any("error", err))
		return nil, err
	}

	var errs []error
	joined := make([]string, 0, len(pending))
	for _, inv := range pending {
		err := s.consume(ctx, inv, user.ID)
		if errors.Is(err, ErrInviteNotFound) {
			// Consumed concurrently; the membership exists either way.
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !slices.Contains(joined, inv.BoardID) {
			joined = append(joined, inv.BoardID)
		}
	}

	if len(joined) > 0 {
		log.Info("claimed pending invites", slog.Any("board_ids", joined))
	}
	return joined, errors.Join(errs...)
}

// ListPendingInvites returns the outstanding invites of a board. Admin only.
func (s *InviteService) ListPendingInvites(ctx context.Context, boardID, userID string) ([]domain.Invite, error) {
	if _, err := s.Access.RequireAdmin(ctx, boardID, userID); err != nil {
		return nil, err
	}
	return s.Store.Invites().ListActiveInvitesByBoard(ctx, boardID, nowFrom(s.Now))
}

// consume grants membership and marks the invite accepted atomically.
func (s *InviteService) consume(ctx context.Context, inv domain.Invite, userID string) error {
	now := nowFrom(s.Now)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Members().AddMember(ctx, domain.Member{
			BoardID:   inv.BoardID,
			UserID:    userID,
			Role:      domain.RoleMember,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		return tx.Invites().MarkInviteAccepted(ctx, inv.ID, userID, now)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrInviteNotFound
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to consume invite",
			slog.String("invite_id", inv.ID),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
