package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestOptionsDSN(t *testing.T) {
	dsn := Options{
		Host:     "db",
		Port:     "5432",
		User:     "boardify",
		Password: "p@ss word",
		Name:     "boardify",
		SSLMode:  "disable",
	}.DSN()

	require.Equal(t, "postgres://boardify:p%40ss%20word@db:5432/boardify?sslmode=disable", dsn)
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("boom")))
}

func TestDialectRebinds(t *testing.T) {
	require.Equal(t, "a = $1 AND b = $2", Dialect().Rebind("a = ? AND b = ?"))
}
