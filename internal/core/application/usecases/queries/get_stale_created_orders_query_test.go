package queries_test

import (
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetStaleCreatedOrdersQuery(t *testing.T) {
	t.Run("valid query", func(t *testing.T) {
		cutoff := time.Now().Add(-30 * time.Minute)
		query, err := queries.NewGetStaleCreatedOrdersQuery(cutoff)
		require.NoError(t, err)

		assert.NoError(t, query.Validate())
		assert.Equal(t, cutoff, query.Cutoff())
	})

	t.Run("zero cutoff", func(t *testing.T) {
		_, err := queries.NewGetStaleCreatedOrdersQuery(time.Time{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetStaleCreatedOrdersQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrGetStaleCreatedOrdersQueryIsNotConstructed)
	})
}
