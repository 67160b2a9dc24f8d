package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/boardview"
	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/stretchr/testify/require"
)

func TestCollaborativeInviteFlow(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)

	alice := e.signup(t, "alice@example.com")

	created, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, created.Role)

	inv, err := e.invites.CreateInvite(ctx, "team", "Bob@Example.com", alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InviteStatusCreated, inv.Status)
	require.Equal(t, "bob@example.com", inv.Email)
	require.NotEmpty(t, inv.Token)

	pending, err := e.invites.ListPendingInvites(ctx, "team", alice.User.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// Signing up with the invited email claims the invite.
	bob, err := e.accounts.Signup(ctx, "Bob", "BOB@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, []string{"team"}, bob.JoinedBoards)

	got, err := e.collab.Get(ctx, bob.User.ID, "team")
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, got.Role)
	require.Equal(t, alice.User.ID, got.CreatedBy)

	boards, err := e.collab.List(ctx, bob.User.ID)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, "team", boards[0].Record.Board.ID)

	// The claimed token is spent.
	_, err = e.invites.AcceptInvite(ctx, inv.Token, bob.User)
	require.ErrorIs(t, err, ErrInviteNotFound)

	pending, err = e.invites.ListPendingInvites(ctx, "team", alice.User.ID)
	require.NoError(t, err)
	require.Empty(t, pending)

	// Members may edit but not administer.
	edited := got.Record.Board
	edited.Name = "Team board"
	_, err = e.collab.Update(ctx, bob.User.ID, "team", edited)
	require.NoError(t, err)

	_, err = e.invites.CreateInvite(ctx, "team", "carol@example.com", bob.User.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = e.invites.ListPendingInvites(ctx, "team", bob.User.ID)
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, e.collab.Delete(ctx, bob.User.ID, "team"), ErrForbidden)

	members, err := e.collab.Members(ctx, bob.User.ID, "team")
	require.NoError(t, err)
	require.Len(t, members, 2)

	roles := map[string]domain.BoardRole{}
	for _, m := range members {
		roles[m.Email] = m.Role
	}
	require.Equal(t, domain.RoleAdmin, roles["alice@example.com"])
	require.Equal(t, domain.RoleMember, roles["bob@example.com"])

	require.NoError(t, e.collab.Delete(ctx, alice.User.ID, "team"))
	_, err = e.collab.Get(ctx, alice.User.ID, "team")
	require.ErrorIs(t, err, ErrBoardNotFound)

	boards, err = e.collab.List(ctx, bob.User.ID)
	require.NoError(t, err)
	require.Empty(t, boards)
}

func TestCreateInviteForExistingUserAddsMember(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)

	alice := e.signup(t, "alice@example.com")
	bob := e.signup(t, "bob@example.com")
	_, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)

	res, err := e.invites.CreateInvite(ctx, "team", "BOB@example.com", alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InviteStatusMemberAdded, res.Status)
	require.Empty(t, res.Token)

	role, err := e.access.GetRole(ctx, "team", bob.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, role)

	// Inviting the admin does not demote them.
	res, err = e.invites.CreateInvite(ctx, "team", "alice@example.com", alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InviteStatusMemberAdded, res.Status)

	role, err = e.access.GetRole(ctx, "team", alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)
}

func TestAcceptInvite(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)

	alice := e.signup(t, "alice@example.com")
	_, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)

	// Invite first, then register the invitee under another email so the
	// invite is not claimed at signup.
	inv, err := e.invites.CreateInvite(ctx, "team", "bob@example.com", alice.User.ID)
	require.NoError(t, err)
	mallory := e.signup(t, "mallory@example.com")

	t.Run("rejects a different email", func(t *testing.T) {
		_, err := e.invites.AcceptInvite(ctx, inv.Token, mallory.User)
		require.ErrorIs(t, err, ErrInviteEmailMismatch)

		role, err := e.access.GetRole(ctx, "team", mallory.User.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleNone, role)
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		_, err := e.invites.AcceptInvite(ctx, "nope", mallory.User)
		require.ErrorIs(t, err, ErrInviteNotFound)
		_, err = e.invites.AcceptInvite(ctx, "", mallory.User)
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("accepts once for the matching email", func(t *testing.T) {
		bob := domain.User{ID: "bob-id", Email: "Bob@Example.com"}
		require.NoError(t, e.store.Users().CreateUser(ctx, domain.User{
			ID: bob.ID, Email: "bob@example.com", PasswordHash: "x", Salt: "y", Iterations: 1, CreatedAt: testEpoch,
		}))

		boardID, err := e.invites.AcceptInvite(ctx, inv.Token, bob)
		require.NoError(t, err)
		require.Equal(t, "team", boardID)

		role, err := e.access.GetRole(ctx, "team", bob.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, role)

		_, err = e.invites.AcceptInvite(ctx, inv.Token, bob)
		require.ErrorIs(t, err, ErrInviteNotFound)
	})
}

func TestRepeatedInvitesToSameEmail(t *testing.T) {
	ctx := testCtx()

	setup := func(t *testing.T) (*env, AuthResult, []InviteResult) {
		e := newEnv(t)
		alice := e.signup(t, "alice@example.com")
		_, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
		require.NoError(t, err)

		invs := make([]InviteResult, 2)
		for i := range invs {
			invs[i], err = e.invites.CreateInvite(ctx, "team", "bob@example.com", alice.User.ID)
			require.NoError(t, err)
		}
		require.NotEqual(t, invs[0].Token, invs[1].Token)
		return e, alice, invs
	}

	assertSingleMembership := func(t *testing.T, e *env, alice AuthResult) {
		members, err := e.collab.Members(ctx, alice.User.ID, "team")
		require.NoError(t, err)
		require.Len(t, members, 2)

		pending, err := e.invites.ListPendingInvites(ctx, "team", alice.User.ID)
		require.NoError(t, err)
		require.Empty(t, pending)
	}

	t.Run("signup claims both", func(t *testing.T) {
		e, alice, _ := setup(t)

		bob := e.signup(t, "bob@example.com")
		require.Equal(t, []string{"team"}, bob.JoinedBoards)
		assertSingleMembership(t, e, alice)
	})

	t.Run("each token redeems on its own", func(t *testing.T) {
		e, alice, invs := setup(t)

		bob := domain.User{ID: "bob-id", Email: "bob@example.com"}
		require.NoError(t, e.store.Users().CreateUser(ctx, domain.User{
			ID: bob.ID, Email: bob.Email, PasswordHash: "x", Salt: "y", Iterations: 1, CreatedAt: testEpoch,
		}))

		for _, inv := range invs {
			boardID, err := e.invites.AcceptInvite(ctx, inv.Token, bob)
			require.NoError(t, err)
			require.Equal(t, "team", boardID)
		}
		assertSingleMembership(t, e, alice)
	})
}

func TestInviteExpiry(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	e.invites.TTL = time.Hour

	alice := e.signup(t, "alice@example.com")
	_, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)

	inv, err := e.invites.CreateInvite(ctx, "team", "bob@example.com", alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, testEpoch.Add(time.Hour), inv.ExpiresAt)

	e.clock.Advance(time.Hour)

	bob := e.signup(t, "bob@example.com")
	require.Empty(t, bob.JoinedBoards)

	_, err = e.invites.AcceptInvite(ctx, inv.Token, bob.User)
	require.ErrorIs(t, err, ErrInviteNotFound)

	_, err = e.collab.Get(ctx, bob.User.ID, "team")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestInviteRequiresCollaborativeBoard(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")

	_, err := e.boards.Create(ctx, alice.User.ID, sampleBoard("mine"))
	require.NoError(t, err)

	_, err = e.invites.CreateInvite(ctx, "mine", "bob@example.com", alice.User.ID)
	require.ErrorIs(t, err, ErrBoardNotFound)

	_, err = e.invites.CreateInvite(ctx, "missing", "bob@example.com", alice.User.ID)
	require.ErrorIs(t, err, ErrBoardNotFound)

	_, err = e.invites.CreateInvite(ctx, "mine", "not an email", alice.User.ID)
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestPersonalAndCollaborativeBoardsAreDisjoint(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")

	_, err := e.boards.Create(ctx, alice.User.ID, sampleBoard("mine"))
	require.NoError(t, err)
	_, err = e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)

	_, err = e.collab.Get(ctx, alice.User.ID, "mine")
	require.ErrorIs(t, err, ErrBoardNotFound)
	_, err = e.boards.Get(ctx, alice.User.ID, "team")
	require.ErrorIs(t, err, ErrBoardNotFound)

	personal, err := e.boards.List(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Len(t, personal, 1)
	require.Equal(t, "mine", personal[0].ID)

	// Board ids are unique across both kinds.
	_, err = e.collab.Create(ctx, alice.User.ID, sampleBoard("mine"))
	require.ErrorIs(t, err, ErrBoardExists)
	_, err = e.boards.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.ErrorIs(t, err, ErrBoardExists)
}

func TestCollabUpdate(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")
	outsider := e.signup(t, "eve@example.com")

	_, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)

	_, err = e.collab.Update(ctx, alice.User.ID, "team", sampleBoard("other"))
	require.ErrorIs(t, err, ErrBoardIDMismatch)

	_, err = e.collab.Update(ctx, outsider.User.ID, "team", sampleBoard("team"))
	require.ErrorIs(t, err, ErrForbidden)

	_, err = e.collab.Get(ctx, outsider.User.ID, "team")
	require.ErrorIs(t, err, ErrForbidden)

	invalid := sampleBoard("team")
	invalid.Columns = nil
	_, err = e.collab.Update(ctx, alice.User.ID, "team", invalid)
	require.ErrorIs(t, err, domain.ErrInvalidBoard)

	e.clock.Advance(time.Minute)
	edited := sampleBoard("team")
	edited.Name = "Renamed"
	updated, err := e.collab.Update(ctx, alice.User.ID, "team", edited)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Record.Board.Name)
	require.Equal(t, alice.User.ID, updated.CreatedBy)
	require.Equal(t, domain.RoleAdmin, updated.Role)
	require.False(t, updated.Record.CreatedAt.IsZero())
	require.True(t, updated.Record.UpdatedAt.After(updated.Record.CreatedAt))

	got, err := e.collab.Get(ctx, alice.User.ID, "team")
	require.NoError(t, err)
	require.Equal(t, got, updated)
}

func TestCollabSubtasksAndStats(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")
	outsider := e.signup(t, "eve@example.com")

	_, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)

	b, err := e.collab.UpdateSubtasks(ctx, alice.User.ID, "team", "t1", []domain.Subtask{
		{ID: "s1", Title: "unit", Completed: true},
	})
	require.NoError(t, err)
	require.Equal(t, "t1", b.Columns[2].Tasks[0].ID)

	_, err = e.collab.UpdateSubtasks(ctx, outsider.User.ID, "team", "t1", nil)
	require.ErrorIs(t, err, ErrForbidden)

	stats, err := e.collab.Stats(ctx, alice.User.ID, "team", boardview.Filter{}, boardview.CompletionOfTotal)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalTasks)
	require.Equal(t, 1, stats.DoneTasks)
	require.Equal(t, 50, stats.Completion)
}

func TestCreatorRegainsAdmin(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")
	bob := e.signup(t, "bob@example.com")

	// A collaborative board whose creator has no membership row.
	require.NoError(t, e.store.WithTx(ctx, func(tx store.Tx) error {
		rec := domain.BoardRecord{Board: sampleBoard("team").Normalize(), CreatedAt: testEpoch, UpdatedAt: testEpoch}
		if err := tx.Boards().CreateBoard(ctx, rec); err != nil {
			return err
		}
		return tx.CollabBoards().CreateCollabBoard(ctx, domain.CollaborativeBoard{
			BoardID: "team", CreatedBy: alice.User.ID, CreatedAt: testEpoch,
		})
	}))

	role, err := e.access.GetRole(ctx, "team", alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleNone, role)

	role, err = e.access.RequireAdmin(ctx, "team", alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)

	role, err = e.access.GetRole(ctx, "team", alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)

	// A member who did not create the board is never promoted.
	require.NoError(t, e.store.Members().AddMember(ctx, domain.Member{
		BoardID: "team", UserID: bob.User.ID, Role: domain.RoleMember, CreatedAt: testEpoch,
	}))
	role, err = e.access.EnsureAdmin(ctx, "team", bob.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleNone, role)

	role, err = e.access.RequireMember(ctx, "team", bob.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, role)

	_, err = e.access.RequireAdmin(ctx, "team", bob.User.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCreatorDemotedToMemberIsPromoted(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")

	_, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)
	require.NoError(t, e.store.Members().UpsertMember(ctx, domain.Member{
		BoardID: "team", UserID: alice.User.ID, Role: domain.RoleMember, CreatedAt: testEpoch,
	}))

	role, err := e.access.EnsureAdmin(ctx, "team", alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)
}

var errBoom = errors.New("boom")

// failingStore hands out transactions whose membership writes fail.
type failingStore struct{ store.Store }

func (s failingStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(failingTx{tx})
	})
}

// baseTx keeps the embedded field from being named Tx, which would shadow
// the Tx method the interface requires.
type baseTx = store.Tx

type failingTx struct{ baseTx }

func (t failingTx) Members() store.Members { return failingMembers{t.baseTx.Members()} }

type failingMembers struct{ store.Members }

func (failingMembers) UpsertMember(context.Context, domain.Member) error { return errBoom }

func TestCollabCreateRollsBack(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")

	broken := &CollabService{Store: failingStore{e.store}, Access: e.access, Now: e.clock.Now}
	_, err := broken.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.ErrorIs(t, err, errBoom)

	_, err = e.store.CollabBoards().GetCollabBoard(ctx, "team")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = e.store.Boards().GetCollabBoard(ctx, "team")
	require.ErrorIs(t, err, store.ErrNotFound)

	boards, err := e.collab.List(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Empty(t, boards)

	// Nothing was left behind holding the id.
	_, err = e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)
}
