package label

import (
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// Event types for the label context
const (
	EventTypeLabelDesignCreated = "label.design.created"
	EventTypeLabelDesignUpdated = "label.design.updated"
	EventTypeLabelDesignDeleted = "label.design.deleted"
)

const aggregateTypeLabelDesign = "LabelDesign"

// LabelDesignCreatedEvent is raised when a tenant saves a new label design
type LabelDesignCreatedEvent struct {
	shared.BaseDomainEvent
	Category Category `json:"category"`
	Name     string   `json:"name"`
}

// NewLabelDesignCreatedEvent creates a LabelDesignCreatedEvent
func NewLabelDesignCreatedEvent(d *LabelDesign) *LabelDesignCreatedEvent {
	return &LabelDesignCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLabelDesignCreated, aggregateTypeLabelDesign, d.ID, d.TenantID),
		Category:        d.Category,
		Name:            d.Name,
	}
}

// LabelDesignUpdatedEvent is raised when a tenant updates a label design
type LabelDesignUpdatedEvent struct {
	shared.BaseDomainEvent
	Category Category `json:"category"`
	Name     string   `json:"name"`
}

// NewLabelDesignUpdatedEvent creates a LabelDesignUpdatedEvent
func NewLabelDesignUpdatedEvent(d *LabelDesign) *LabelDesignUpdatedEvent {
	return &LabelDesignUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLabelDesignUpdated, aggregateTypeLabelDesign, d.ID, d.TenantID),
		Category:        d.Category,
		Name:            d.Name,
	}
}
