package sqldb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE x = ? AND y > ? ORDER BY a`

	require.Equal(t, q, Dialect{Name: "sqlite"}.Rebind(q))
	require.Equal(t,
		`SELECT a FROM t WHERE x = $1 AND y > $2 ORDER BY a`,
		Dialect{Name: "postgres", Numbered: true}.Rebind(q),
	)
	require.Equal(t, `SELECT 1`, Dialect{Numbered: true}.Rebind(`SELECT 1`))
}
