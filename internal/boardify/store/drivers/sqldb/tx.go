package sqldb

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/boardify/internal/boardify/store"
)

type txStore struct {
	tx *sql.Tx
	c  conn
}

func newTx(tx *sql.Tx, d Dialect) *txStore {
	return &txStore{
		tx: tx,
		c:  conn{db: tx, d: d},
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits or rolls back; the outer DB stays open

// Ping is a no-op for transactions; the connection is already held.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users               { return &usersRepo{c: t.c} }
func (t *txStore) Sessions() store.Sessions         { return &sessionsRepo{c: t.c} }
func (t *txStore) Boards() store.Boards             { return &boardsRepo{c: t.c} }
func (t *txStore) CollabBoards() store.CollabBoards { return &collabBoardsRepo{c: t.c} }
func (t *txStore) Members() store.Members           { return &membersRepo{c: t.c} }
func (t *txStore) Invites() store.Invites           { return &invitesRepo{c: t.c} }
func (t *txStore) TaskTypes() store.TaskTypes       { return &taskTypesRepo{c: t.c} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
