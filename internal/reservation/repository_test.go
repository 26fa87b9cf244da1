package reservation

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryBuilder() *pgxRepository {
	return &pgxRepository{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

func TestBuildListQuery(t *testing.T) {
	t.Run("Pages Map To Offsets", func(t *testing.T) {
		query, _, err := newQueryBuilder().buildListQuery(Filter{OwnerID: "owner-1", Page: 3, PageSize: 10})
		require.NoError(t, err)
		assert.Contains(t, query, "LIMIT 10")
		assert.Contains(t, query, "OFFSET 20")
	})

	t.Run("Zero Page Clamps To First", func(t *testing.T) {
		// An explicit page=0 survives query binding; the offset must clamp
		// rather than underflow uint64.
		query, _, err := newQueryBuilder().buildListQuery(Filter{OwnerID: "owner-1", Page: 0, PageSize: 20})
		require.NoError(t, err)
		assert.Contains(t, query, "LIMIT 20")
		assert.Contains(t, query, "OFFSET 0")
	})

	t.Run("Zero Page Size Clamps To Default", func(t *testing.T) {
		query, _, err := newQueryBuilder().buildListQuery(Filter{OwnerID: "owner-1", Page: 1, PageSize: 0})
		require.NoError(t, err)
		assert.Contains(t, query, "LIMIT 20")
		assert.Contains(t, query, "OFFSET 0")
	})

	t.Run("Status Filter Is Optional", func(t *testing.T) {
		query, args, err := newQueryBuilder().buildListQuery(Filter{OwnerID: "owner-1", Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.NotContains(t, query, "status = $")
		assert.Len(t, args, 1)

		query, args, err = newQueryBuilder().buildListQuery(Filter{OwnerID: "owner-1", Status: "confirmed", Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Contains(t, query, "status = $2")
		assert.Equal(t, []any{"owner-1", "confirmed"}, args)
	})
}
