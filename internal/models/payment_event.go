package models

import "time"

// PaymentEvent marks a provider event as applied. The primary key is the
// provider's event identifier, so a redelivered webhook cannot insert twice.
type PaymentEvent struct {
	ID        string `gorm:"size:100;primaryKey" json:"id"`
	UserID    string `gorm:"type:varchar(36);index" json:"userId"`
	ProductID string `gorm:"size:100" json:"productId"`
	Amount    int    `json:"amount"`

	ProcessedAt time.Time `gorm:"autoCreateTime" json:"processedAt"`
}
