package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/aussiebroadwan/boardify/pkg/cryptox"
	"github.com/aussiebroadwan/boardify/pkg/idx"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
)

// DefaultSessionTTL is used when SessionService.TTL is unset.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionService issues and resolves opaque session tokens. Only the token
// fingerprint is stored; sessions are never renewed.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
	Now   func() time.Time
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// CreateSession stores a new session for userID and returns the raw token.
// The token cannot be retrieved again.
func (s *SessionService) CreateSession(ctx context.Context, userID string) (string, time.Time, error) {
	return s.createSession(ctx, s.Store, userID)
}

func (s *SessionService) createSession(ctx context.Context, st store.Store, userID string) (string, time.Time, error) {
	log := slogx.FromContext(ctx)

	token, tokenHash, err := cryptox.NewSecret()
	if err != nil {
		log.Error("failed to generate session token", slog.Any("error", err))
		return "", time.Time{}, err
	}

	now := nowFrom(s.Now)
	sess := domain.Session{
		ID:        idx.NewAt(now),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}
	if err := st.Sessions().CreateSession(ctx, sess); err != nil {
		log.Error("failed to store session",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return "", time.Time{}, err
	}

	log.Debug("session created",
		slog.String("session_id", sess.ID),
		slog.String("user_id", userID),
		slog.Time("expires_at", sess.ExpiresAt),
	)
	return token, sess.ExpiresAt, nil
}

// Resolve returns the user owning an unexpired session.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.User, domain.Session, error) {
	if token == "" {
		return domain.User{}, domain.Session{}, ErrSessionNotFound
	}

	sess, user, err := s.Store.Sessions().GetActiveSession(ctx, cryptox.Fingerprint(token), nowFrom(s.Now))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.Session{}, ErrSessionNotFound
		}
		slogx.FromContext(ctx).Error("failed to resolve session", slog.Any("error", err))
		return domain.User{}, domain.Session{}, err
	}
	return user, sess, nil
}

// Revoke deletes the session matching token. Unknown tokens are ignored.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.Fingerprint(token)); err != nil {
		slogx.FromContext(ctx).Error("failed to revoke session", slog.Any("error", err))
		return err
	}
	return nil
}
