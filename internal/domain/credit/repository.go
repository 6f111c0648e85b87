package credit

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/estate-listings/internal/models"
)

var (
	// ErrAlreadyProcessed means the payment event was applied before; the
	// caller should acknowledge it and move on.
	ErrAlreadyProcessed = errors.New("payment event already processed")

	ErrUserNotFound = errors.New("user not found")
)

type Refill struct {
	EventID   string
	UserID    string
	ProductID string
	Amount    int
}

type Repository interface {
	// Increment adds r.Amount to the user's balance server-side and
	// records the event id so a redelivery is a no-op.
	Increment(ctx context.Context, r Refill) (*models.User, error)

	Balance(ctx context.Context, userID string) (int, error)
}
