package credit

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/estate-listings/internal/domain/credit"
)

// CanList answers whether the user may create a listing right now. The
// balance is always re-read; a value cached in the session is never used.
type CanList struct {
	repo domain.Repository
}

func NewCanList(repo domain.Repository) *CanList {
	return &CanList{repo: repo}
}

func (uc *CanList) Execute(ctx context.Context, userID string) (bool, error) {
	balance, err := uc.repo.Balance(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return balance >= 1, nil
}
