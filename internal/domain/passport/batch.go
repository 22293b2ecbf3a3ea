package passport

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// PublicationStatus is the lifecycle state of a batch passport
type PublicationStatus string

const (
	StatusDraft     PublicationStatus = "draft"
	StatusPublished PublicationStatus = "published"
	StatusArchived  PublicationStatus = "archived"
)

// slugEncoding produces lowercase URL-safe slugs without padding
var slugEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Batch is a production batch of a product and the unit of passport
// publication. It is the aggregate root for passport operations: one public
// DPP page exists per published batch, addressed by its slug.
type Batch struct {
	shared.TenantAggregateRoot
	ProductID      uuid.UUID
	BatchNumber    string
	ProductionDate time.Time
	ExpiryDate     *time.Time
	Quantity       decimal.Decimal
	PackageCount   int
	Status         PublicationStatus
	PublicSlug     string // Set on first publish, stable across re-publishes
	PublishedAt    *time.Time
	ArchivedAt     *time.Time
}

// NewBatch creates a new draft batch for a product
func NewBatch(tenantID, productID uuid.UUID, batchNumber string, productionDate time.Time, quantity decimal.Decimal) (*Batch, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if err := validateBatchNumber(batchNumber); err != nil {
		return nil, err
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	batch := &Batch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		BatchNumber:         strings.ToUpper(strings.TrimSpace(batchNumber)),
		ProductionDate:      productionDate,
		Quantity:            quantity,
		Status:              StatusDraft,
	}

	batch.AddDomainEvent(NewBatchCreatedEvent(batch))

	return batch, nil
}

// SetExpiryDate sets the batch expiry date. It must be after production.
func (b *Batch) SetExpiryDate(expiry time.Time) error {
	if !expiry.After(b.ProductionDate) {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry date must be after production date")
	}

	b.ExpiryDate = &expiry
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetPackageCount sets the number of transport packages in the batch
func (b *Batch) SetPackageCount(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_PACKAGE_COUNT", "Package count cannot be negative")
	}

	b.PackageCount = count
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Publish makes the batch passport publicly readable. The slug is minted on
// first publish and kept on subsequent publishes so printed QR codes stay
// valid.
func (b *Batch) Publish() error {
	switch b.Status {
	case StatusPublished:
		return shared.NewDomainError("ALREADY_PUBLISHED", "Batch is already published")
	case StatusDraft, StatusArchived:
	}

	if b.PublicSlug == "" {
		slug, err := newPublicSlug()
		if err != nil {
			return shared.NewDomainError("SLUG_GENERATION_FAILED", "Failed to generate public slug")
		}
		b.PublicSlug = slug
	}

	now := time.Now()
	b.Status = StatusPublished
	b.PublishedAt = &now
	b.ArchivedAt = nil
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchPublishedEvent(b))

	return nil
}

// Archive withdraws the passport from public view. The slug is retained so
// the public page can answer with a gone-style response instead of a 404.
func (b *Batch) Archive() error {
	if b.Status != StatusPublished {
		return shared.NewDomainError("NOT_PUBLISHED", "Only published batches can be archived")
	}

	now := time.Now()
	b.Status = StatusArchived
	b.ArchivedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchArchivedEvent(b))

	return nil
}

// IsPublished returns true if the passport is publicly readable
func (b *Batch) IsPublished() bool {
	return b.Status == StatusPublished
}

// IsDraft returns true if the batch has never been published or was reset
func (b *Batch) IsDraft() bool {
	return b.Status == StatusDraft
}

// IsExpired returns true if the batch has passed its expiry date
func (b *Batch) IsExpired() bool {
	if b.ExpiryDate == nil {
		return false
	}
	return time.Now().After(*b.ExpiryDate)
}

func newPublicSlug() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return slugEncoding.EncodeToString(buf), nil
}

func validateBatchNumber(batchNumber string) error {
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" {
		return shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number cannot be empty")
	}
	if len(batchNumber) > 50 {
		return shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number cannot exceed 50 characters")
	}
	return nil
}
