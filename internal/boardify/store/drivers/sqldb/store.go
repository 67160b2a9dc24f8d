// Package sqldb holds the repositories shared by the SQL drivers. A driver
// opens the *sql.DB, describes its Dialect and adds migrations on top.
package sqldb

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/boardify/internal/boardify/store"
)

type Store struct {
	db *sql.DB
	d  Dialect
	c  conn
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d, c: conn{db: db, d: d}}
}

// DB exposes the handle for driver specific work such as migrations.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.d), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users               { return &usersRepo{c: s.c} }
func (s *Store) Sessions() store.Sessions         { return &sessionsRepo{c: s.c} }
func (s *Store) Boards() store.Boards             { return &boardsRepo{c: s.c} }
func (s *Store) CollabBoards() store.CollabBoards { return &collabBoardsRepo{c: s.c} }
func (s *Store) Members() store.Members           { return &membersRepo{c: s.c} }
func (s *Store) Invites() store.Invites           { return &invitesRepo{c: s.c} }
func (s *Store) TaskTypes() store.TaskTypes       { return &taskTypesRepo{c: s.c} }
