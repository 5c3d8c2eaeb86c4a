package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionExtractDocument   = "EXTRACT_DOCUMENT"
	ActionFetchItemPrices   = "FETCH_ITEM_PRICES"
	ActionFetchDiscountInfo = "FETCH_DISCOUNT_INFO"
	ActionComputePricing    = "COMPUTE_FINAL_PRICING"

	// Discount approval workflow actions
	ActionProposeDiscount = "PROPOSE_DISCOUNT"
	ActionDecideDiscount  = "DECIDE_DISCOUNT"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(512);index" json:"entity_id"`       // Document file id or item id
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
