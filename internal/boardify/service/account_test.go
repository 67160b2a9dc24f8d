package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/stretchr/testify/require"
)

func TestParseEmail(t *testing.T) {
	t.Parallel()

	email, err := ParseEmail("  Alice@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", email)

	for _, bad := range []string{"", "   ", "alice", "alice@", "Alice <alice@example.com>", "a b@example.com"} {
		_, err := ParseEmail(bad)
		require.ErrorIs(t, err, ErrInvalidEmail, bad)
	}
}

func TestSignup(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)

	t.Run("creates user and session", func(t *testing.T) {
		res, err := e.accounts.Signup(ctx, " Alice ", "Alice@Example.com", "correct horse")
		require.NoError(t, err)
		require.Equal(t, "Alice", res.User.Name)
		require.Equal(t, "alice@example.com", res.User.Email)
		require.NotEmpty(t, res.Token)
		require.Equal(t, testEpoch.Add(DefaultSessionTTL), res.ExpiresAt)
		require.Empty(t, res.JoinedBoards)

		require.NotEqual(t, "correct horse", res.User.PasswordHash)
		require.NotEmpty(t, res.User.Salt)

		me, err := e.accounts.Me(ctx, res.Token)
		require.NoError(t, err)
		require.Equal(t, res.User.ID, me.ID)
	})

	t.Run("rejects duplicate email regardless of case", func(t *testing.T) {
		_, err := e.accounts.Signup(ctx, "", "ALICE@example.com", "another password")
		require.ErrorIs(t, err, ErrEmailInUse)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := e.accounts.Signup(ctx, "", "not-an-email", "correct horse")
		require.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := e.accounts.Signup(ctx, "", "bob@example.com", "1234567")
		require.ErrorIs(t, err, ErrPasswordTooShort)

		_, err = e.accounts.Signup(ctx, "", "bob@example.com", "12345678")
		require.NoError(t, err)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		_, err := e.accounts.Signup(ctx, "", "carol@example.com", "ééééééé")
		require.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestLogin(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	signed := e.signup(t, "alice@example.com")

	res, err := e.accounts.Login(ctx, "ALICE@example.com ", "correct horse")
	require.NoError(t, err)
	require.Equal(t, signed.User.ID, res.User.ID)
	require.NotEqual(t, signed.Token, res.Token, "every login issues a new session")

	_, err = e.accounts.Login(ctx, "alice@example.com", "wrong horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.accounts.Login(ctx, "nobody@example.com", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.accounts.Login(ctx, "alice@example.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesOnlyThatSession(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)

	first := e.signup(t, "alice@example.com")
	second, err := e.accounts.Login(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, e.accounts.Logout(ctx, first.Token))

	_, err = e.accounts.Me(ctx, first.Token)
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = e.accounts.Me(ctx, second.Token)
	require.NoError(t, err)

	// Repeating a logout or logging out without a token is harmless.
	require.NoError(t, e.accounts.Logout(ctx, first.Token))
	require.NoError(t, e.accounts.Logout(ctx, ""))
}

func TestSessionExpiry(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	e.sessions.TTL = time.Hour

	res := e.signup(t, "alice@example.com")

	e.clock.Advance(59 * time.Minute)
	_, err := e.accounts.Me(ctx, res.Token)
	require.NoError(t, err)

	e.clock.Advance(time.Minute)
	_, err = e.accounts.Me(ctx, res.Token)
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = e.accounts.Me(ctx, "garbage")
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = e.accounts.Me(ctx, "")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

var errDBDown = errors.New("db down")

// txDownStore fails every transaction while plain reads and writes work.
type txDownStore struct{ store.Store }

func (txDownStore) WithTx(context.Context, func(tx store.Tx) error) error { return errDBDown }

func TestSignupSurvivesFailedInviteClaim(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)

	alice := e.signup(t, "alice@example.com")
	_, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)
	_, err = e.invites.CreateInvite(ctx, "team", "bob@example.com", alice.User.ID)
	require.NoError(t, err)

	degraded := newEnvWithStore(txDownStore{e.store})
	bob, err := degraded.accounts.Signup(ctx, "", "bob@example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, bob.Token)
	require.Empty(t, bob.JoinedBoards)

	me, err := e.accounts.Me(ctx, bob.Token)
	require.NoError(t, err)
	require.Equal(t, bob.User.ID, me.ID)

	// The invite is still pending and the next login claims it.
	pending, err := e.invites.ListPendingInvites(ctx, "team", alice.User.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	again, err := e.accounts.Login(ctx, "bob@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, []string{"team"}, again.JoinedBoards)
}
