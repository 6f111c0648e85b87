package property

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/estate-listings/internal/audit"
	"github.com/BruksfildServices01/estate-listings/internal/cache"
	domain "github.com/BruksfildServices01/estate-listings/internal/domain/property"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/metrics"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type CreateListing struct {
	repo    domain.Repository
	cache   cache.PageCache
	audit   audit.Sink
	metrics *metrics.Metrics
}

func NewCreateListing(
	repo domain.Repository,
	pc cache.PageCache,
	sink audit.Sink,
	m *metrics.Metrics,
) *CreateListing {
	return &CreateListing{
		repo:    repo,
		cache:   pc,
		audit:   sink,
		metrics: m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateListing) Execute(
	ctx context.Context,
	user *models.User,
	in domain.ListingInput,
) (*models.Property, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.Trimmed()

	// --------------------------------------------------
	// 2. Session
	// --------------------------------------------------
	if user == nil {
		return nil, httperr.ErrUnauthenticated
	}

	// --------------------------------------------------
	// 3. Fast credit check (the transaction re-checks)
	// --------------------------------------------------
	if user.Credit < 1 {
		return nil, httperr.ErrInsufficientCredit
	}

	// --------------------------------------------------
	// 4. Spend credit + insert, atomically
	// --------------------------------------------------
	p := newProperty(user, in)
	if err := uc.repo.CreateWithCredit(ctx, p); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Side effects (never fail the request)
	// --------------------------------------------------
	if err := uc.cache.Invalidate(ctx, cache.PathHome, cache.MyListingsPath(user.ID)); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("cache invalidation failed")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   user.ID,
		Action:   audit.ActionPropertyCreated,
		Entity:   "property",
		EntityID: p.ID,
		Metadata: map[string]any{
			"type":  p.Type,
			"for":   p.For,
			"price": p.Price,
		},
	})
	uc.metrics.ListingsCreated.Inc()

	return p, nil
}

func newProperty(user *models.User, in domain.ListingInput) *models.Property {
	return &models.Property{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		For:         string(in.For),
		Type:        string(in.Type),

		Area:      in.Area,
		Rooms:     in.Rooms,
		Bathrooms: in.Bathrooms,
		Garage:    in.Garage,

		Garden:          in.Garden,
		Balcony:         in.Balcony,
		Terrace:         in.Terrace,
		Pool:            in.Pool,
		AirConditioning: in.AirConditioning,
		Heating:         in.Heating,
		Furnished:       in.Furnished,
		Elevator:        in.Elevator,
		Parking:         in.Parking,

		Location:    in.Location,
		Images:      in.Images,
		SellerName:  strings.TrimSpace(user.FullName()),
		SellerPhone: in.SellerPhone,
		Status:      string(domain.InitialStatus()),
		UserID:      user.ID,
	}
}
