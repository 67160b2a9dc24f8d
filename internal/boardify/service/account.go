package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/aussiebroadwan/boardify/pkg/cryptox"
	"github.com/aussiebroadwan/boardify/pkg/idx"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
)

// AccountService handles signup and login. Both end with pending invites
// claimed and a fresh session issued.
type AccountService struct {
	Store      store.Store
	Sessions   *SessionService
	Invites    *InviteService
	Iterations int
	Now        func() time.Time
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	User         domain.User
	Token        string
	ExpiresAt    time.Time
	JoinedBoards []string
}

// ParseEmail validates a bare address and returns its normalized form.
func ParseEmail(raw string) (string, error) {
	email := domain.NormalizeEmail(raw)
	if email == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func (s *AccountService) iterations() int {
	if s.Iterations <= 0 {
		return cryptox.DefaultIterations
	}
	return s.Iterations
}

// Signup registers a user. Name is optional.
func (s *AccountService) Signup(ctx context.Context, name, email, password string) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	email, err := ParseEmail(email)
	if err != nil {
		log.Warn("signup with invalid email")
		return AuthResult{}, err
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		log.Warn("signup with short password")
		return AuthResult{}, ErrPasswordTooShort
	}

	_, err = s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		log.Warn("signup with email already in use")
		return AuthResult{}, ErrEmailInUse
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return AuthResult{}, err
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		log.Error("failed to generate salt", slog.Any("error", err))
		return AuthResult{}, err
	}

	now := nowFrom(s.Now)
	iterations := s.iterations()
	user := domain.User{
		ID:           idx.NewAt(now),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: cryptox.HashPassword(password, salt, iterations),
		Salt:         salt,
		Iterations:   iterations,
		CreatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent signup.
			return AuthResult{}, ErrEmailInUse
		}
		log.Error("failed to create user", slog.Any("error", err))
		return AuthResult{}, err
	}

	log.Info("user signed up", slog.String("user_id", user.ID))

	return s.startSession(ctx, user)
}

// Login verifies credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	email, err := ParseEmail(email)
	if err != nil {
		return AuthResult{}, err
	}
	if password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login for unknown email")
			return AuthResult{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return AuthResult{}, err
	}

	if !cryptox.VerifyPassword(password, user.Salt, user.Iterations, user.PasswordHash) {
		log.Warn("login with wrong password", slog.String("user_id", user.ID))
		return AuthResult{}, ErrInvalidCredentials
	}

	log.Info("user logged in", slog.String("user_id", user.ID))

	return s.startSession(ctx, user)
}

// Me resolves a session token to its user.
func (s *AccountService) Me(ctx context.Context, token string) (domain.User, error) {
	user, _, err := s.Sessions.Resolve(ctx, token)
	return user, err
}

// Logout revokes exactly the presented session.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Revoke(ctx, token)
}

func (s *AccountService) startSession(ctx context.Context, user domain.User) (AuthResult, error) {
	// A failed claim leaves its invite pending for the next login, so it
	// must not fail an account that already exists.
	var joined []string
	if s.Invites != nil {
		var err error
		if joined, err = s.Invites.ClaimPendingInvites(ctx, user); err != nil {
			slogx.FromContext(ctx).Warn("failed to claim pending invites",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
	}

	token, expiresAt, err := s.Sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		User:         user,
		Token:        token,
		ExpiresAt:    expiresAt,
		JoinedBoards: joined,
	}, nil
}
