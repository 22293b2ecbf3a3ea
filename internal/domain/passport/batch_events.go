package passport

import (
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeBatch = "Batch"

// Event type constants
const (
	EventTypeBatchCreated   = "BatchCreated"
	EventTypeBatchPublished = "BatchPublished"
	EventTypeBatchArchived  = "BatchArchived"
)

// BatchCreatedEvent is published when a new batch is created
type BatchCreatedEvent struct {
	shared.BaseDomainEvent
	BatchNumber string `json:"batch_number"`
	ProductID   string `json:"product_id"`
}

// NewBatchCreatedEvent creates a new BatchCreatedEvent
func NewBatchCreatedEvent(batch *Batch) *BatchCreatedEvent {
	return &BatchCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchCreated, AggregateTypeBatch, batch.ID, batch.TenantID),
		BatchNumber:     batch.BatchNumber,
		ProductID:       batch.ProductID.String(),
	}
}

// BatchPublishedEvent is published when a batch passport goes public
type BatchPublishedEvent struct {
	shared.BaseDomainEvent
	BatchNumber string `json:"batch_number"`
	PublicSlug  string `json:"public_slug"`
}

// NewBatchPublishedEvent creates a new BatchPublishedEvent
func NewBatchPublishedEvent(batch *Batch) *BatchPublishedEvent {
	return &BatchPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchPublished, AggregateTypeBatch, batch.ID, batch.TenantID),
		BatchNumber:     batch.BatchNumber,
		PublicSlug:      batch.PublicSlug,
	}
}

// BatchArchivedEvent is published when a batch passport is withdrawn
type BatchArchivedEvent struct {
	shared.BaseDomainEvent
	BatchNumber string `json:"batch_number"`
	PublicSlug  string `json:"public_slug"`
}

// NewBatchArchivedEvent creates a new BatchArchivedEvent
func NewBatchArchivedEvent(batch *Batch) *BatchArchivedEvent {
	return &BatchArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchArchived, AggregateTypeBatch, batch.ID, batch.TenantID),
		BatchNumber:     batch.BatchNumber,
		PublicSlug:      batch.PublicSlug,
	}
}
