package property

import (
	"context"

	"github.com/BruksfildServices01/estate-listings/internal/models"
)

// Scope restricts a listing query either to active public listings or to
// one owner's listings regardless of status.
type Scope struct {
	OwnerID string
}

func PublicScope() Scope {
	return Scope{}
}

func OwnerScope(userID string) Scope {
	return Scope{OwnerID: userID}
}

func (s Scope) IsPublic() bool {
	return s.OwnerID == ""
}

type Repository interface {
	// -------- Query --------
	ListProperties(
		ctx context.Context,
		scope Scope,
		filter Filter,
	) ([]models.Property, int64, error)

	GetProperty(
		ctx context.Context,
		id string,
	) (*models.Property, error)

	// -------- Create (credit-gated) --------
	CreateWithCredit(
		ctx context.Context,
		p *models.Property,
	) error

	// -------- Seed --------
	Upsert(
		ctx context.Context,
		p *models.Property,
	) error
}
