package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	LastName     string  `gorm:"size:100" json:"lastName"`
	Phone        string  `gorm:"size:20" json:"phone"`
	PasswordHash string  `gorm:"size:255" json:"-"`
	Credit       int     `gorm:"not null;default:0;check:credit >= 0" json:"credit"`
	Role         string  `gorm:"size:20;default:'USER'" json:"role"`
	ExternalID   *string `gorm:"size:255;uniqueIndex" json:"-"`

	Properties         []Property          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"properties,omitempty"`
	CreditTransactions []CreditTransaction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creditTransactions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// FullName is what gets copied onto a listing as the seller name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	if u.Name == "" {
		return u.LastName
	}
	return u.Name + " " + u.LastName
}
