package sqldb

import (
	"testing"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, want := range []domain.BoardRole{domain.RoleAdmin, domain.RoleMember} {
		got, err := parseRole(string(want))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	for _, bad := range []string{"", "owner", "ADMIN"} {
		_, err := parseRole(bad)
		require.Error(t, err, bad)
	}
}
