package dto

import (
	"time"

	"github.com/BruksfildServices01/estate-listings/internal/models"
)

type CurrentUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Credit    int       `json:"credit"`
	CanList   bool      `json:"canList"`
	CreatedAt time.Time `json:"createdAt"`

	Properties         []models.Property          `json:"properties"`
	CreditTransactions []models.CreditTransaction `json:"creditTransactions"`
}

func NewCurrentUser(u *models.User) CurrentUser {
	out := CurrentUser{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		LastName:           u.LastName,
		FullName:           u.FullName(),
		Phone:              u.Phone,
		Role:               u.Role,
		Credit:             u.Credit,
		CanList:            u.Credit >= 1,
		CreatedAt:          u.CreatedAt,
		Properties:         u.Properties,
		CreditTransactions: u.CreditTransactions,
	}
	if out.Properties == nil {
		out.Properties = []models.Property{}
	}
	if out.CreditTransactions == nil {
		out.CreditTransactions = []models.CreditTransaction{}
	}
	return out
}
