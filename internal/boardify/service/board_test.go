package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/boardview"
	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestPersonalBoardLifecycle(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")
	bob := e.signup(t, "bob@example.com")

	raw := sampleBoard("b1")
	raw.Columns[1].Tasks = nil

	created, err := e.boards.Create(ctx, alice.User.ID, raw)
	require.NoError(t, err)
	require.Equal(t, domain.BoardSchemaVersion, created.SchemaVersion)
	require.NotNil(t, created.Columns[1].Tasks)

	got, err := e.boards.Get(ctx, alice.User.ID, "b1")
	require.NoError(t, err)
	require.Equal(t, created, got)

	t.Run("invisible to other users", func(t *testing.T) {
		_, err := e.boards.Get(ctx, bob.User.ID, "b1")
		require.ErrorIs(t, err, ErrBoardNotFound)

		list, err := e.boards.List(ctx, bob.User.ID)
		require.NoError(t, err)
		require.Empty(t, list)

		_, err = e.boards.Update(ctx, bob.User.ID, "b1", got)
		require.ErrorIs(t, err, ErrBoardNotFound)
		require.ErrorIs(t, e.boards.Delete(ctx, bob.User.ID, "b1"), ErrBoardNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := e.boards.Create(ctx, bob.User.ID, sampleBoard("b1"))
		require.ErrorIs(t, err, ErrBoardExists)
	})

	t.Run("update replaces the document", func(t *testing.T) {
		next := got
		next.Name = "Renamed"
		_, err := e.boards.Update(ctx, alice.User.ID, "b1", next)
		require.NoError(t, err)

		after, err := e.boards.Get(ctx, alice.User.ID, "b1")
		require.NoError(t, err)
		require.Equal(t, "Renamed", after.Name)
	})

	t.Run("update rejects id mismatch", func(t *testing.T) {
		_, err := e.boards.Update(ctx, alice.User.ID, "b1", sampleBoard("b2"))
		require.ErrorIs(t, err, ErrBoardIDMismatch)
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		invalid := sampleBoard("b3")
		invalid.Name = " "
		_, err := e.boards.Create(ctx, alice.User.ID, invalid)
		require.ErrorIs(t, err, domain.ErrInvalidBoard)

		invalid = sampleBoard("b3")
		invalid.SchemaVersion = 2
		_, err = e.boards.Create(ctx, alice.User.ID, invalid)
		require.ErrorIs(t, err, domain.ErrInvalidBoard)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, e.boards.Delete(ctx, alice.User.ID, "b1"))
		_, err := e.boards.Get(ctx, alice.User.ID, "b1")
		require.ErrorIs(t, err, ErrBoardNotFound)
		require.ErrorIs(t, e.boards.Delete(ctx, alice.User.ID, "b1"), ErrBoardNotFound)
	})
}

func TestListPersonalBoardsInCreationOrder(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")

	for _, id := range []string{"zeta", "alpha", "mid"} {
		_, err := e.boards.Create(ctx, alice.User.ID, sampleBoard(id))
		require.NoError(t, err)
		e.clock.Advance(time.Second)
	}

	list, err := e.boards.List(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "zeta", list[0].ID)
	require.Equal(t, "alpha", list[1].ID)
	require.Equal(t, "mid", list[2].ID)
}

func TestUpdateSubtasks(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")

	_, err := e.boards.Create(ctx, alice.User.ID, sampleBoard("b1"))
	require.NoError(t, err)

	t.Run("partial progress stays put", func(t *testing.T) {
		b, err := e.boards.UpdateSubtasks(ctx, alice.User.ID, "b1", "t1", []domain.Subtask{
			{ID: "s1", Title: "one", Completed: true},
			{ID: "s2", Title: "two"},
		})
		require.NoError(t, err)
		require.Len(t, b.Columns[0].Tasks, 2)
		require.Len(t, b.Columns[0].Tasks[0].Subtasks, 2)
		require.Empty(t, b.Columns[0].Tasks[0].CompletedAt)
	})

	t.Run("completing every subtask moves the task to done", func(t *testing.T) {
		b, err := e.boards.UpdateSubtasks(ctx, alice.User.ID, "b1", "t1", []domain.Subtask{
			{ID: "s1", Title: "one", Completed: true},
			{ID: "s2", Title: "two", Completed: true},
		})
		require.NoError(t, err)
		require.Len(t, b.Columns[0].Tasks, 1)
		require.Len(t, b.Columns[2].Tasks, 1)

		moved := b.Columns[2].Tasks[0]
		require.Equal(t, "t1", moved.ID)
		require.Equal(t, testEpoch.Format(time.RFC3339), moved.CompletedAt)

		stored, err := e.boards.Get(ctx, alice.User.ID, "b1")
		require.NoError(t, err)
		require.Equal(t, b, stored)
	})

	t.Run("reopening a subtask does not move the task back", func(t *testing.T) {
		b, err := e.boards.UpdateSubtasks(ctx, alice.User.ID, "b1", "t1", []domain.Subtask{
			{ID: "s1", Title: "one"},
		})
		require.NoError(t, err)
		require.Equal(t, "t1", b.Columns[2].Tasks[0].ID)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := e.boards.UpdateSubtasks(ctx, alice.User.ID, "b1", "missing", nil)
		require.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("subtask without id", func(t *testing.T) {
		_, err := e.boards.UpdateSubtasks(ctx, alice.User.ID, "b1", "t2", []domain.Subtask{{Title: "x"}})
		require.ErrorIs(t, err, boardview.ErrInvalidSubtask)
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := e.boards.UpdateSubtasks(ctx, alice.User.ID, "nope", "t1", nil)
		require.ErrorIs(t, err, ErrBoardNotFound)
	})
}

func TestBoardStats(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	alice := e.signup(t, "alice@example.com")

	b := sampleBoard("b1")
	hours := 3.0
	b.Columns[0].Tasks[0].Hours = &hours
	b.Columns[0].Tasks[1].DueDate = "2026-05-01"
	_, err := e.boards.Create(ctx, alice.User.ID, b)
	require.NoError(t, err)

	stats, err := e.boards.Stats(ctx, alice.User.ID, "b1", boardview.Filter{}, boardview.CompletionOfTotal)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalTasks)
	require.Equal(t, 2, stats.TodoTasks)
	require.Equal(t, 0, stats.Completion)
	require.Equal(t, 1, stats.Overdue)
	require.Equal(t, 3.0, stats.Workload["alice"])
	require.Equal(t, map[string]int{"Chore": 1, "Feature": 1}, stats.TypeCounts)

	stats, err = e.boards.Stats(ctx, alice.User.ID, "b1", boardview.Filter{Type: "feature"}, boardview.CompletionOfTotal)
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalTasks)

	_, err = e.boards.Stats(ctx, alice.User.ID, "missing", boardview.Filter{}, boardview.CompletionOfTotal)
	require.ErrorIs(t, err, ErrBoardNotFound)
}

func TestTaskTypes(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)

	names, err := e.types.List(ctx)
	require.NoError(t, err)
	require.Empty(t, names)

	name, err := e.types.Create(ctx, "  Feature ")
	require.NoError(t, err)
	require.Equal(t, "Feature", name)

	_, err = e.types.Create(ctx, "Bug")
	require.NoError(t, err)
	_, err = e.types.Create(ctx, "Feature")
	require.NoError(t, err, "existing names are accepted")

	names, err = e.types.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Bug", "Feature"}, names)

	_, err = e.types.Create(ctx, "   ")
	require.ErrorIs(t, err, ErrInvalidTaskType)
}

func TestHousekeepingCleanup(t *testing.T) {
	ctx := testCtx()
	e := newEnv(t)
	e.sessions.TTL = time.Hour
	e.invites.TTL = 2 * time.Hour

	alice := e.signup(t, "alice@example.com")
	_, err := e.collab.Create(ctx, alice.User.ID, sampleBoard("team"))
	require.NoError(t, err)
	_, err = e.invites.CreateInvite(ctx, "team", "bob@example.com", alice.User.ID)
	require.NoError(t, err)

	hk := NewHousekeepingService(e.store, slogx.Discard(), 0)
	hk.Now = e.clock.Now
	require.Equal(t, time.Hour, hk.Interval)

	require.Equal(t, CleanupReport{}, hk.Cleanup(ctx))

	e.clock.Advance(90 * time.Minute)
	require.Equal(t, CleanupReport{Sessions: 1}, hk.Cleanup(ctx))

	e.clock.Advance(time.Hour)
	require.Equal(t, CleanupReport{Invites: 1}, hk.Cleanup(ctx))
}

func TestHousekeepingStartStop(t *testing.T) {
	e := newEnv(t)
	hk := NewHousekeepingService(e.store, slogx.Discard(), time.Minute)
	hk.Start()
	hk.Stop()
}
