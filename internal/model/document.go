package model

import (
	"time"

	"github.com/google/uuid"
)

// Document status enum constants
const (
	DocumentStatusPending   = "PENDING"
	DocumentStatusExtracted = "EXTRACTED"
	DocumentStatusFailed    = "FAILED"
)

// Document tracks one request-for-quote PDF known to the system, keyed by the
// file id the listing backend reports. Extraction results are shared across
// all users; whoever extracts first fills the record.
type Document struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FileID      string     `gorm:"type:varchar(512);uniqueIndex;not null" json:"file_id"`
	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Extraction  string     `gorm:"type:jsonb" json:"extraction"` // Raw extraction payload from the backend
	Geography   string     `gorm:"type:varchar(100)" json:"geography"`
	Currency    string     `gorm:"type:varchar(3)" json:"currency"` // Default currency derived from geography
	ExtractedBy *uuid.UUID `gorm:"type:uuid" json:"extracted_by"`
	Extractor   *User      `gorm:"foreignKey:ExtractedBy" json:"extractor,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// The four per-document pricing stores. Each is an independent last-write-wins
// record keyed by document id; payloads are the JSON-serialized tables.

// ItemPriceRecord caches the fetched item price table for a document.
type ItemPriceRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocID     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"doc_id"`
	Payload   string    `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscountTableRecord caches the fetched CNP/discount table for a document.
type DiscountTableRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocID     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"doc_id"`
	Payload   string    `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscountLedgerRecord holds the applied-discount ledger. Version increments
// on every commit; merges happen server-side inside a transaction so two
// sessions editing the same role's field cannot silently drop an edit.
type DiscountLedgerRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocID     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"doc_id"`
	Payload   string    `gorm:"type:jsonb;not null" json:"payload"`
	Version   int       `gorm:"not null;default:0" json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PricingSnapshotRecord caches the last computed final pricing table. Cleared
// whenever the ledger or discount table changes to force recomputation.
type PricingSnapshotRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocID     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"doc_id"`
	Currency  string    `gorm:"type:varchar(3);not null" json:"currency"`
	Role      string    `gorm:"type:varchar(50);not null" json:"role"` // Role the snapshot was computed for
	Payload   string    `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}
