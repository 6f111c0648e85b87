package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	Name        string  `gorm:"size:200;not null" json:"name"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Price       float64 `gorm:"not null;index" json:"price"`
	For         string  `gorm:"column:listing_for;size:10;not null;index" json:"for"`
	Type        string  `gorm:"size:20;not null;index" json:"type"`

	Area      float64 `json:"area"`
	Rooms     int     `json:"rooms"`
	Bathrooms int     `json:"bathrooms"`
	Garage    int     `json:"garage"`

	Garden          bool `json:"garden"`
	Balcony         bool `json:"balcony"`
	Terrace         bool `json:"terrace"`
	Pool            bool `json:"pool"`
	AirConditioning bool `json:"airConditioning"`
	Heating         bool `json:"heating"`
	Furnished       bool `json:"furnished"`
	Elevator        bool `json:"elevator"`
	Parking         bool `json:"parking"`

	Location string   `gorm:"size:255" json:"location"`
	Images   []string `gorm:"type:text;serializer:json" json:"images"`

	SellerName  string `gorm:"size:200" json:"sellerName"`
	SellerPhone string `gorm:"size:20" json:"sellerPhone"`

	Status string `gorm:"size:20;default:'ACTIVE';index" json:"status"`

	UserID string `gorm:"type:varchar(36);not null;index" json:"userId"`
	User   *User  `json:"user,omitempty"`

	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
