package user

import (
	"context"

	"github.com/BruksfildServices01/estate-listings/internal/models"
)

type Repository interface {
	// FindByID loads the user together with properties and credit
	// transactions.
	FindByID(ctx context.Context, id string) (*models.User, error)

	FindByEmail(ctx context.Context, email string) (*models.User, error)

	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)

	Create(ctx context.Context, u *models.User) error

	LinkExternalID(ctx context.Context, userID, externalID string) error
}
