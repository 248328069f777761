package services_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibilityPolicy_IsEligible(t *testing.T) {
	policy := services.NewEligibilityPolicy()

	clientID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	adminID := kernel.NewUUID()
	strangerID := kernel.NewUUID()

	newOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), clientID, "apartment cleaning", "", 4500, time.Now())
		require.NoError(t, err)
		return o
	}

	assign := func(t *testing.T, o *order.Order) {
		t.Helper()
		worker, err := kernel.NewActor(workerID, kernel.RoleWorker)
		require.NoError(t, err)
		_, err = o.ApplyTransition(order.Assigned, worker, nil, time.Now())
		require.NoError(t, err)
	}

	t.Run("admin is eligible for every order", func(t *testing.T) {
		o := newOrder(t)

		assert.True(t, policy.IsEligible(adminID, kernel.RoleAdmin, o))

		assign(t, o)
		assert.True(t, policy.IsEligible(adminID, kernel.RoleAdmin, o))
	})

	t.Run("owning client is eligible", func(t *testing.T) {
		o := newOrder(t)

		assert.True(t, policy.IsEligible(clientID, kernel.RoleClient, o))
	})

	t.Run("unrelated client is not eligible", func(t *testing.T) {
		o := newOrder(t)

		assert.False(t, policy.IsEligible(strangerID, kernel.RoleClient, o))
	})

	t.Run("any worker is eligible for an unassigned order", func(t *testing.T) {
		o := newOrder(t)

		assert.True(t, policy.IsEligible(workerID, kernel.RoleWorker, o))
		assert.True(t, policy.IsEligible(strangerID, kernel.RoleWorker, o))
	})

	t.Run("only the assigned worker is eligible once assigned", func(t *testing.T) {
		o := newOrder(t)
		assign(t, o)

		assert.True(t, policy.IsEligible(workerID, kernel.RoleWorker, o))
		assert.False(t, policy.IsEligible(strangerID, kernel.RoleWorker, o))
	})

	t.Run("eligibility follows assignment changes without caching", func(t *testing.T) {
		o := newOrder(t)

		assert.True(t, policy.IsEligible(strangerID, kernel.RoleWorker, o))

		assign(t, o)

		assert.False(t, policy.IsEligible(strangerID, kernel.RoleWorker, o))
	})

	t.Run("invalid input is never eligible", func(t *testing.T) {
		o := newOrder(t)
		var invalidID kernel.UUID

		assert.False(t, policy.IsEligible(invalidID, kernel.RoleAdmin, o))
		assert.False(t, policy.IsEligible(adminID, kernel.RoleUnknown, o))
		assert.False(t, policy.IsEligible(adminID, kernel.RoleAdmin, nil))

		var zero order.Order
		assert.False(t, policy.IsEligible(adminID, kernel.RoleAdmin, &zero))
	})
}
