package notifications

import (
	"errors"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	// ErrSubscriberClosed is returned when sending to a subscriber whose
	// connection has been closed.
	ErrSubscriberClosed = errors.New("subscriber is closed")

	// ErrDeliveryTimeout is returned when a subscriber's outbound buffer
	// stays full past the delivery timeout.
	ErrDeliveryTimeout = errors.New("delivery timed out")

	// ErrBufferFull is returned by TrySend when the outbound buffer has no
	// free slot.
	ErrBufferFull = errors.New("outbound buffer is full")
)

// Subscriber represents one live connection of an authenticated user.
// A user may hold several subscribers at once (one per open connection); each
// has its own identity and outbound buffer, so a slow connection only affects
// itself.
type Subscriber struct {
	id     kernel.UUID
	userID kernel.UUID
	role   kernel.Role

	outbound chan Message
	done     chan struct{}
	once     sync.Once
}

// NewSubscriber creates a subscriber for a connection owned by the given user.
// The buffer size bounds how many undelivered messages may queue before
// Send starts timing out.
func NewSubscriber(userID kernel.UUID, role kernel.Role, buffer int) (*Subscriber, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return nil, err
	}

	if buffer < 1 {
		buffer = 1
	}

	return &Subscriber{
		id:       kernel.NewUUID(),
		userID:   userID,
		role:     role,
		outbound: make(chan Message, buffer),
		done:     make(chan struct{}),
	}, nil
}

// ID returns the unique identifier of this connection.
func (s *Subscriber) ID() kernel.UUID {
	return s.id
}

// UserID returns the identity of the connection's owner.
func (s *Subscriber) UserID() kernel.UUID {
	return s.userID
}

// Role returns the owner's role.
func (s *Subscriber) Role() kernel.Role {
	return s.role
}

// Outbound returns the channel the connection's write loop drains.
// The channel is never closed; the write loop must also watch Done.
func (s *Subscriber) Outbound() <-chan Message {
	return s.outbound
}

// Done returns a channel that is closed when the subscriber is closed.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// Send queues a message for delivery. It waits up to timeout for buffer
// space, then gives up with ErrDeliveryTimeout. Returns ErrSubscriberClosed
// if the connection is already gone.
func (s *Subscriber) Send(msg Message, timeout time.Duration) error {
	select {
	case <-s.done:
		return ErrSubscriberClosed
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s.outbound <- msg:
		return nil
	case <-s.done:
		return ErrSubscriberClosed
	case <-timer.C:
		return ErrDeliveryTimeout
	}
}

// TrySend queues a message without waiting. Returns ErrSubscriberClosed if
// the connection is already gone and ErrBufferFull when the outbound buffer
// has no room.
func (s *Subscriber) TrySend(msg Message) error {
	select {
	case <-s.done:
		return ErrSubscriberClosed
	default:
	}

	select {
	case s.outbound <- msg:
		return nil
	case <-s.done:
		return ErrSubscriberClosed
	default:
		return ErrBufferFull
	}
}

// Close marks the subscriber as gone, releasing any pending senders.
// The outbound channel stays open so concurrent Send calls never panic.
// Safe to call multiple times.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}
