package property

import (
	"context"
	"net/url"
	"strconv"

	"github.com/BruksfildServices01/estate-listings/internal/cache"
	domain "github.com/BruksfildServices01/estate-listings/internal/domain/property"
	"github.com/BruksfildServices01/estate-listings/internal/dto"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
)

const messageFetched = "Properties fetched successfully"

// ======================================================
// PUBLIC LISTING
// ======================================================

type ListProperties struct {
	repo  domain.Repository
	cache cache.PageCache
}

func NewListProperties(repo domain.Repository, pc cache.PageCache) *ListProperties {
	return &ListProperties{repo: repo, cache: pc}
}

// Execute returns one page of ACTIVE properties matching f.
func (uc *ListProperties) Execute(
	ctx context.Context,
	f domain.Filter,
) (*dto.PropertyPage, error) {
	return listPage(ctx, uc.repo, uc.cache, cache.PathHome, domain.PublicScope(), f)
}

// ======================================================
// OWNER LISTING
// ======================================================

type ListUserProperties struct {
	repo  domain.Repository
	cache cache.PageCache
}

func NewListUserProperties(repo domain.Repository, pc cache.PageCache) *ListUserProperties {
	return &ListUserProperties{repo: repo, cache: pc}
}

// Execute returns one page of the user's own properties, whatever their
// status.
func (uc *ListUserProperties) Execute(
	ctx context.Context,
	userID string,
	f domain.Filter,
) (*dto.PropertyPage, error) {
	return listPage(ctx, uc.repo, uc.cache, cache.MyListingsPath(userID), domain.OwnerScope(userID), f)
}

// ======================================================
// SHARED
// ======================================================

func listPage(
	ctx context.Context,
	repo domain.Repository,
	pc cache.PageCache,
	path string,
	scope domain.Scope,
	f domain.Filter,
) (*dto.PropertyPage, error) {

	log := logger.FromContext(ctx)

	f, err := f.Normalize()
	if err != nil {
		return nil, err
	}

	key := cacheKey(f)

	// gen is read before the query so a page built from rows older than a
	// concurrent Invalidate is not stored for later readers.
	var cached dto.PropertyPage
	gen, found, cacheErr := pc.Get(ctx, path, key, &cached)
	if cacheErr != nil {
		log.Warn().Err(cacheErr).Str("path", path).Msg("page cache read failed")
	}
	if found {
		return &cached, nil
	}

	props, total, err := repo.ListProperties(ctx, scope, f)
	if err != nil {
		return nil, err
	}

	page := &dto.PropertyPage{
		Message:    messageFetched,
		Success:    true,
		Properties: props,
		Pagination: domain.Paginate(total, f.Page, f.Limit),
		Filters:    f,
	}

	if cacheErr == nil {
		if err := pc.Set(ctx, path, gen, key, page); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("page cache write failed")
		}
	}

	return page, nil
}

// cacheKey is stable for equal filters: url.Values encodes keys sorted.
func cacheKey(f domain.Filter) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	v.Set("sort", f.Sort)
	v.Set("order", f.Order)
	if f.Type != "" {
		v.Set("type", string(f.Type))
	}
	if f.For != "" {
		v.Set("for", string(f.For))
	}
	if f.PriceMin != nil {
		v.Set("priceMin", strconv.FormatFloat(*f.PriceMin, 'f', -1, 64))
	}
	if f.PriceMax != nil {
		v.Set("priceMax", strconv.FormatFloat(*f.PriceMax, 'f', -1, 64))
	}
	if f.Query != "" {
		v.Set("query", f.Query)
	}
	return v.Encode()
}
