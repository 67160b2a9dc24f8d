//go:build e2e

package boardify_test

import (
	"testing"

	"github.com/aussiebroadwan/boardify/pkg/boardsdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies both probes on a fresh SQLite deployment.
func TestHealthEndpoints(t *testing.T) {
	baseURL := setupSQLite(t)
	client := boardsdk.NewClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	ready, err := client.GetReadiness(t.Context())
	assertHealthy(t, ready, err)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestCollaborationFlowSQLite(t *testing.T) {
	runCollaborationFlow(t, setupSQLite(t))
}

func TestCollaborationFlowPostgres(t *testing.T) {
	runCollaborationFlow(t, setupPostgres(t))
}

// runCollaborationFlow walks through the main product journey:
//  1. Alice signs up and creates personal and shared boards
//  2. Alice invites Bob before he has an account
//  3. Bob signs up and lands on the shared board as a member
//  4. Both edit and inspect the board; only Alice may administer it
func runCollaborationFlow(t *testing.T, baseURL string) {
	ctx := t.Context()

	alice := signup(t, baseURL, "alice@example.com")

	_, err := alice.CreateBoard(ctx, sampleBoard("personal"))
	require.NoError(t, err)

	shared, err := alice.CreateCollabBoard(ctx, sampleBoard("shared"))
	require.NoError(t, err)
	require.Equal(t, "admin", shared.Role)

	inv, err := alice.Invite(ctx, "shared", "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, boardsdk.InviteStatusCreated, inv.Status)
	require.NotEmpty(t, inv.Token)

	bob := signup(t, baseURL, "Bob@Example.com")

	boards, err := bob.ListCollabBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, "shared", boards[0].ID)
	require.Equal(t, "member", boards[0].Role)

	// The claimed token cannot be redeemed again.
	_, err = bob.AcceptInvite(ctx, inv.Token)
	require.True(t, boardsdk.IsNotFound(err), "got %v", err)

	// Bob never sees Alice's personal board.
	personal, err := bob.ListBoards(ctx)
	require.NoError(t, err)
	require.Empty(t, personal)
	_, err = bob.GetBoard(ctx, "personal")
	require.True(t, boardsdk.IsNotFound(err))

	updated, err := bob.UpdateCollabSubtasks(ctx, "shared", "t1", []boardsdk.Subtask{
		{ID: "s1", Title: "unit", Completed: true},
	})
	require.NoError(t, err)
	require.Equal(t, "t1", updated.Columns[2].Tasks[0].ID)

	stats, err := alice.CollabBoardStats(ctx, "shared", boardsdk.StatsQuery{})
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalTasks)
	require.Equal(t, 1, stats.DoneTasks)
	require.Equal(t, 50, stats.Completion)
	require.Equal(t, 1, stats.Overdue)
	require.Equal(t, 3.0, stats.Workload["alice"])

	members, err := alice.ListMembers(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, members, 2)

	require.True(t, boardsdk.IsForbidden(bob.DeleteCollabBoard(ctx, "shared")))
	require.NoError(t, alice.DeleteCollabBoard(ctx, "shared"))

	_, err = bob.GetCollabBoard(ctx, "shared")
	require.True(t, boardsdk.IsNotFound(err))
}

// TestLogoutEndsOnlyThatSession checks logout only revokes the presented
// session.
func TestLogoutEndsOnlyThatSession(t *testing.T) {
	baseURL := setupSQLite(t)
	ctx := t.Context()

	first := signup(t, baseURL, "carol@example.com")

	second := boardsdk.NewClient(baseURL)
	_, err := second.Login(ctx, "carol@example.com", testPassword)
	require.NoError(t, err)

	require.NoError(t, second.Logout(ctx))

	_, err = second.Me(ctx)
	require.True(t, boardsdk.IsUnauthorized(err))

	me, err := first.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "carol@example.com", me.Email)
}
