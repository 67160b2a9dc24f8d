package idx_test

import (
	"sort"
	"testing"
	"time"

	"github.com/aussiebroadwan/boardify/pkg/idx"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNewIsValidULID(t *testing.T) {
	id := idx.New()
	_, err := ulid.ParseStrict(id)
	require.NoError(t, err)
}

func TestNewAtEmbedsTimestamp(t *testing.T) {
	tm := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	u, err := ulid.ParseStrict(idx.NewAt(tm))
	require.NoError(t, err)
	require.Equal(t, tm, ulid.Time(u.Time()).UTC())
}

func TestMonotonicWithinSameMillisecond(t *testing.T) {
	tm := time.Unix(1700000000, 0)
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = idx.NewAt(tm)
	}
	require.True(t, sort.StringsAreSorted(ids))
	require.NotEqual(t, ids[0], ids[1])
}
