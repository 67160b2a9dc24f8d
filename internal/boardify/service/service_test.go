package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/aussiebroadwan/boardify/internal/boardify/store/drivers/sqlite"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// clock is a settable time source shared by every service of an env.
type clock struct{ t time.Time }

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var testEpoch = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type env struct {
	store    store.Store
	clock    *clock
	sessions *SessionService
	access   *AccessService
	invites  *InviteService
	accounts *AccountService
	boards   *BoardService
	collab   *CollabService
	types    *TaskTypeService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return newEnvWithStore(st)
}

func newEnvWithStore(st store.Store) *env {
	c := newClock(testEpoch)
	e := &env{store: st, clock: c}

	e.sessions = &SessionService{Store: st, Now: c.Now}
	e.access = &AccessService{Store: st, Now: c.Now}
	e.invites = &InviteService{Store: st, Access: e.access, Now: c.Now}
	e.accounts = &AccountService{
		Store:      st,
		Sessions:   e.sessions,
		Invites:    e.invites,
		Iterations: 1000,
		Now:        c.Now,
	}
	e.boards = &BoardService{Store: st, Now: c.Now}
	e.collab = &CollabService{Store: st, Access: e.access, Now: c.Now}
	e.types = &TaskTypeService{Store: st, Now: c.Now}
	return e
}

func testCtx() context.Context {
	return slogx.WithContext(context.Background(), slogx.Discard())
}

func (e *env) signup(t *testing.T, email string) AuthResult {
	t.Helper()
	res, err := e.accounts.Signup(testCtx(), "", email, "correct horse")
	require.NoError(t, err)
	return res
}

func sampleBoard(id string) domain.Board {
	return domain.Board{
		ID:   id,
		Name: "Board " + id,
		Columns: []domain.Column{
			{ID: "todo", Name: "To Do", Tasks: []domain.Task{
				{ID: "t1", Title: "Write tests", Type: "Chore", Assignee: "alice"},
				{ID: "t2", Title: "Ship it", Type: "Feature"},
			}},
			{ID: "doing", Name: "In Progress"},
			{ID: "done", Name: "Done"},
		},
	}
}
