package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	orderID := kernel.NewUUID()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
	require.NoError(t, err)

	t.Run("valid query", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(orderID, actor)
		require.NoError(t, err)

		assert.NoError(t, query.Validate())
		assert.True(t, query.OrderID().IsEqual(orderID))
		assert.True(t, query.Actor().IsEqual(actor))
	})

	t.Run("invalid order id", func(t *testing.T) {
		var invalid kernel.UUID
		_, err := queries.NewGetOrderQuery(invalid, actor)
		require.Error(t, err)
	})

	t.Run("invalid actor", func(t *testing.T) {
		var invalid kernel.Actor
		_, err := queries.NewGetOrderQuery(orderID, invalid)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetOrderQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}
