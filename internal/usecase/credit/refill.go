package credit

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/estate-listings/internal/audit"
	"github.com/BruksfildServices01/estate-listings/internal/cache"
	domain "github.com/BruksfildServices01/estate-listings/internal/domain/credit"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/metrics"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

const (
	MessageRefilled     = "You have successfully refilled your credits"
	MessageRefillFailed = "Failed to refill credits"
)

type RefillInput struct {
	EventID   string
	UserID    string
	ProductID string
	Amount    int
}

type Refill struct {
	repo    domain.Repository
	cache   cache.PageCache
	audit   audit.Sink
	metrics *metrics.Metrics
}

func NewRefill(
	repo domain.Repository,
	pc cache.PageCache,
	sink audit.Sink,
	m *metrics.Metrics,
) *Refill {
	return &Refill{
		repo:    repo,
		cache:   pc,
		audit:   sink,
		metrics: m,
	}
}

// Execute adds in.Amount credits to the user. A payment event that was
// already applied returns domain.ErrAlreadyProcessed and changes nothing.
func (uc *Refill) Execute(ctx context.Context, in RefillInput) (*models.User, error) {

	var fields []httperr.FieldError
	if strings.TrimSpace(in.UserID) == "" {
		fields = append(fields, httperr.FieldError{Field: "user_id", Message: "Field is required"})
	}
	if in.Amount <= 0 {
		fields = append(fields, httperr.FieldError{Field: "coin", Message: "Must be greater than 0"})
	}
	if len(fields) > 0 {
		return nil, httperr.NewValidationError(fields...)
	}

	u, err := uc.repo.Increment(ctx, domain.Refill{
		EventID:   in.EventID,
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Amount:    in.Amount,
	})
	if err != nil {
		return nil, err
	}

	paths := []string{cache.PathManageCredits, cache.PathBuyCredit}
	if in.ProductID != "" {
		paths = append(paths, cache.BuyCreditPath(in.ProductID))
	}
	if err := uc.cache.Invalidate(ctx, paths...); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("cache invalidation failed")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   audit.ActionCreditRefilled,
		Entity:   "user",
		EntityID: in.UserID,
		Metadata: map[string]any{
			"amount":    in.Amount,
			"productId": in.ProductID,
			"eventId":   in.EventID,
		},
	})
	uc.metrics.CreditsRefilled.Add(float64(in.Amount))

	return u, nil
}
