package notifications_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustActor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func receive(t *testing.T, sub *notifications.Subscriber) notifications.Message {
	t.Helper()
	select {
	case msg := <-sub.Outbound():
		return msg
	case <-time.After(time.Second):
		t.Fatal("expected a message but none arrived")
		return notifications.Message{}
	}
}

func assertSilent(t *testing.T, sub *notifications.Subscriber) {
	t.Helper()
	select {
	case msg := <-sub.Outbound():
		t.Fatalf("expected no message, got %s", msg.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	clientID := kernel.NewUUID()
	workerID := kernel.NewUUID()

	newDispatcher := func(registry *notifications.Registry) *notifications.Dispatcher {
		return notifications.NewDispatcher(registry, services.NewEligibilityPolicy(), time.Second, nil)
	}

	newTestOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), clientID, "apartment cleaning", "", 4500, time.Now())
		require.NoError(t, err)
		return o
	}

	register := func(t *testing.T, registry *notifications.Registry, userID kernel.UUID, role kernel.Role) *notifications.Subscriber {
		t.Helper()
		sub, err := notifications.NewSubscriber(userID, role, 4)
		require.NoError(t, err)
		registry.Register(sub)
		return sub
	}

	t.Run("creation event reaches owner, workers and admins", func(t *testing.T) {
		registry := notifications.NewRegistry()
		dispatcher := newDispatcher(registry)

		owner := register(t, registry, clientID, kernel.RoleClient)
		stranger := register(t, registry, kernel.NewUUID(), kernel.RoleClient)
		worker := register(t, registry, workerID, kernel.RoleWorker)
		admin := register(t, registry, kernel.NewUUID(), kernel.RoleAdmin)

		o := newTestOrder(t)
		event, err := order.NewTransitionEvent(
			o.ID(), order.Unknown, order.Created, mustActor(t, clientID, kernel.RoleClient), time.Now(),
		)
		require.NoError(t, err)

		dispatcher.Dispatch(t.Context(), event, o)

		for _, sub := range []*notifications.Subscriber{owner, worker, admin} {
			msg := receive(t, sub)
			assert.Equal(t, notifications.MessageOrderCreated, msg.Type)
			assert.Equal(t, o.ID().String(), msg.Payload.OrderID)
			assert.Equal(t, clientID.String(), msg.Payload.ClientID)
			assert.Equal(t, "created", msg.Payload.Status)
			assert.Empty(t, msg.Payload.OldStatus)
		}

		assertSilent(t, stranger)
	})

	t.Run("assignment event excludes other workers", func(t *testing.T) {
		registry := notifications.NewRegistry()
		dispatcher := newDispatcher(registry)

		owner := register(t, registry, clientID, kernel.RoleClient)
		assignedWorker := register(t, registry, workerID, kernel.RoleWorker)
		otherWorker := register(t, registry, kernel.NewUUID(), kernel.RoleWorker)

		o := newTestOrder(t)
		worker := mustActor(t, workerID, kernel.RoleWorker)
		event, err := o.ApplyTransition(order.Assigned, worker, nil, time.Now())
		require.NoError(t, err)

		dispatcher.Dispatch(t.Context(), event, o)

		ownerMsg := receive(t, owner)
		assert.Equal(t, notifications.MessageWorkerAssigned, ownerMsg.Type)
		assert.Equal(t, "created", ownerMsg.Payload.OldStatus)
		assert.Equal(t, "assigned", ownerMsg.Payload.Status)
		assert.Equal(t, workerID.String(), ownerMsg.Payload.WorkerID)

		receive(t, assignedWorker)
		assertSilent(t, otherWorker)
	})

	t.Run("message type follows the target status", func(t *testing.T) {
		registry := notifications.NewRegistry()
		dispatcher := newDispatcher(registry)
		admin := register(t, registry, kernel.NewUUID(), kernel.RoleAdmin)

		o := newTestOrder(t)
		worker := mustActor(t, workerID, kernel.RoleWorker)

		steps := []struct {
			target   order.Status
			expected string
		}{
			{order.Assigned, notifications.MessageWorkerAssigned},
			{order.InProgress, notifications.MessageOrderInProgress},
			{order.Completed, notifications.MessageOrderCompleted},
		}

		for _, step := range steps {
			event, err := o.ApplyTransition(step.target, worker, nil, time.Now())
			require.NoError(t, err)

			dispatcher.Dispatch(t.Context(), event, o)
			msg := receive(t, admin)
			assert.Equal(t, step.expected, msg.Type)
		}
	})

	t.Run("cancellation event", func(t *testing.T) {
		registry := notifications.NewRegistry()
		dispatcher := newDispatcher(registry)
		owner := register(t, registry, clientID, kernel.RoleClient)

		o := newTestOrder(t)
		client := mustActor(t, clientID, kernel.RoleClient)
		event, err := o.ApplyTransition(order.Cancelled, client, nil, time.Now())
		require.NoError(t, err)

		dispatcher.Dispatch(t.Context(), event, o)

		msg := receive(t, owner)
		assert.Equal(t, notifications.MessageOrderCanceled, msg.Type)
		assert.Equal(t, "cancelled", msg.Payload.Status)
	})

	t.Run("rapid dispatches keep per-connection order", func(t *testing.T) {
		registry := notifications.NewRegistry()
		dispatcher := newDispatcher(registry)
		admin := register(t, registry, kernel.NewUUID(), kernel.RoleAdmin)

		o := newTestOrder(t)
		worker := mustActor(t, workerID, kernel.RoleWorker)

		for _, target := range []order.Status{order.Assigned, order.InProgress, order.Completed} {
			event, err := o.ApplyTransition(target, worker, nil, time.Now())
			require.NoError(t, err)

			dispatcher.Dispatch(t.Context(), event, o)
		}

		expected := []string{
			notifications.MessageWorkerAssigned,
			notifications.MessageOrderInProgress,
			notifications.MessageOrderCompleted,
		}
		for _, want := range expected {
			assert.Equal(t, want, receive(t, admin).Type)
		}
	})

	t.Run("slow subscriber does not block others", func(t *testing.T) {
		registry := notifications.NewRegistry()
		dispatcher := notifications.NewDispatcher(
			registry, services.NewEligibilityPolicy(), 50*time.Millisecond, nil,
		)

		slow, err := notifications.NewSubscriber(kernel.NewUUID(), kernel.RoleAdmin, 1)
		require.NoError(t, err)
		require.NoError(t, slow.Send(notifications.Message{}, time.Millisecond))
		registry.Register(slow)

		fast := register(t, registry, kernel.NewUUID(), kernel.RoleAdmin)

		o := newTestOrder(t)
		event, err := order.NewTransitionEvent(
			o.ID(), order.Unknown, order.Created, mustActor(t, clientID, kernel.RoleClient), time.Now(),
		)
		require.NoError(t, err)

		start := time.Now()
		dispatcher.Dispatch(t.Context(), event, o)
		assert.Less(t, time.Since(start), 50*time.Millisecond, "dispatch should not wait for delivery")

		receive(t, fast)
	})

	t.Run("closed subscriber is skipped without panic", func(t *testing.T) {
		registry := notifications.NewRegistry()
		dispatcher := newDispatcher(registry)

		gone := register(t, registry, kernel.NewUUID(), kernel.RoleAdmin)
		gone.Close()

		live := register(t, registry, kernel.NewUUID(), kernel.RoleAdmin)

		o := newTestOrder(t)
		event, err := order.NewTransitionEvent(
			o.ID(), order.Unknown, order.Created, mustActor(t, clientID, kernel.RoleClient), time.Now(),
		)
		require.NoError(t, err)

		dispatcher.Dispatch(t.Context(), event, o)
		receive(t, live)
	})
}
