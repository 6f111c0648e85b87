package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CreditReasonRefill  = "REFILL"
	CreditReasonListing = "LISTING"
)

// CreditTransaction is written in the same database transaction as the
// credit change it describes.
type CreditTransaction struct {
	ID     string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(36);not null;index" json:"userId"`

	Amount    int    `gorm:"not null" json:"amount"`
	Reason    string `gorm:"size:20;not null" json:"reason"`
	Reference string `gorm:"size:100" json:"reference"`
	ProductID string `gorm:"size:100" json:"productId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (t *CreditTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
