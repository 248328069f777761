// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and their
// database representation, including the append-only status history.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational tables with indexing for efficient
// querying by status and worker assignment.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID  `gorm:"type:uuid;index"`
	WorkerID    *uuid.UUID `gorm:"type:uuid;index"`
	ServiceName string
	Description string
	Price       int
	Status      int `gorm:"index"`
	CreatedAt   time.Time
	History     []HistoryEntryDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryEntryDTO represents one recorded status change of an order.
// Rows are keyed by (order_id, seq) so history entries are append-only:
// existing rows are never updated or deleted.
type HistoryEntryDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	Status     int
	ActorID    uuid.UUID `gorm:"type:uuid"`
	ActorRole  int
	OccurredAt time.Time
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order domain aggregate to its database representation.
// History entries are numbered by their position in the aggregate's history.
func fromDomain(aggregate *order.Order) OrderDTO {
	var workerID *uuid.UUID
	if id := aggregate.Worker(); id != nil {
		raw := id.Bytes()
		workerID = &raw
	}

	history := aggregate.History()
	entries := make([]HistoryEntryDTO, 0, len(history))
	for i, entry := range history {
		entries = append(entries, HistoryEntryDTO{
			OrderID:    aggregate.ID().Bytes(),
			Seq:        i,
			Status:     int(entry.Status()),
			ActorID:    entry.ActorID().Bytes(),
			ActorRole:  int(entry.ActorRole()),
			OccurredAt: entry.OccurredAt(),
		})
	}

	createdAt := time.Time{}
	if len(history) > 0 {
		createdAt = history[0].OccurredAt()
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		ClientID:    aggregate.ClientID().Bytes(),
		WorkerID:    workerID,
		ServiceName: aggregate.ServiceName(),
		Description: aggregate.Description(),
		Price:       aggregate.Price(),
		Status:      int(aggregate.Status()),
		CreatedAt:   createdAt,
		History:     entries,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including history using RestoreOrder,
// so invariants are revalidated on every load.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var workerID *kernel.UUID
	if dto.WorkerID != nil {
		wID, workerErr := kernel.UUIDFromBytes((*dto.WorkerID)[:])
		if workerErr != nil {
			return nil, workerErr
		}

		workerID = &wID
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		actorID, actorErr := kernel.UUIDFromBytes(entryDTO.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}

		entry, entryErr := order.RestoreHistoryEntry(
			order.Status(entryDTO.Status),
			actorID,
			kernel.Role(entryDTO.ActorRole),
			entryDTO.OccurredAt,
		)
		if entryErr != nil {
			return nil, entryErr
		}

		history = append(history, entry)
	}

	return order.RestoreOrder(
		id,
		clientID,
		workerID,
		dto.ServiceName,
		dto.Description,
		dto.Price,
		order.Status(dto.Status),
		history,
	)
}
