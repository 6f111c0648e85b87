package property

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/estate-listings/internal/audit"
	"github.com/BruksfildServices01/estate-listings/internal/cache"
	"github.com/BruksfildServices01/estate-listings/internal/config"
	domain "github.com/BruksfildServices01/estate-listings/internal/domain/property"
	"github.com/BruksfildServices01/estate-listings/internal/dto"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/infra/repository"
	"github.com/BruksfildServices01/estate-listings/internal/metrics"
	"github.com/BruksfildServices01/estate-listings/internal/models"
	"github.com/BruksfildServices01/estate-listings/internal/testutil"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Dispatch(ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

type mockRepo struct{ mock.Mock }

func (m *mockRepo) ListProperties(ctx context.Context, scope domain.Scope, f domain.Filter) ([]models.Property, int64, error) {
	args := m.Called(ctx, scope, f)
	props, _ := args.Get(0).([]models.Property)
	return props, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *mockRepo) CreateWithCredit(ctx context.Context, p *models.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) Upsert(ctx context.Context, p *models.Property) error {
	return m.Called(ctx, p).Error(0)
}

func newRedisCache(t *testing.T) *cache.RedisCache {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.NewRedis(context.Background(), config.RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	return c
}

func seed(t *testing.T, db *gorm.DB, props ...models.Property) {
	t.Helper()
	repo := repository.NewPropertyGormRepository(db)
	for i := range props {
		require.NoError(t, repo.Upsert(context.Background(), &props[i]))
	}
}

func validInput() domain.ListingInput {
	return domain.ListingInput{
		Name:        "  Loft  ",
		Description: "Open plan loft",
		Price:       210000,
		For:         domain.ForSale,
		Type:        domain.Type("APARTMENT"),
		Area:        95,
		Rooms:       2,
		Location:    "Batumi",
		SellerPhone: "5559876543",
		Images:      []string{"https://cdn.example.com/loft.webp"},
		Balcony:     true,
	}
}

// --------------------------------------------------
// Query
// --------------------------------------------------

func TestListProperties_Envelope(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", 0)

	var props []models.Property
	for _, price := range []float64{280000, 120000, 250000} {
		p := testutil.PropertyFixture(owner.ID)
		p.Price = price
		props = append(props, p)
	}
	seed(t, db, props...)

	uc := NewListProperties(repository.NewPropertyGormRepository(db), cache.Nop{})

	lo, hi := 100000.0, 300000.0
	page, err := uc.Execute(context.Background(), domain.Filter{
		Type: "APARTMENT", For: "SALE",
		PriceMin: &lo, PriceMax: &hi,
		Sort: "price", Order: "asc",
		Page: 1, Limit: 2,
	})
	require.NoError(t, err)

	assert.True(t, page.Success)
	require.Len(t, page.Properties, 2)
	assert.Equal(t, 120000.0, page.Properties[0].Price)
	assert.Equal(t, domain.Pagination{
		TotalCount:      3,
		TotalPages:      2,
		CurrentPage:     1,
		Limit:           2,
		HasNextPage:     true,
		HasPreviousPage: false,
	}, page.Pagination)
	assert.Equal(t, "price", page.Filters.Sort)
}

func TestListProperties_NormalisesFilter(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewListProperties(repository.NewPropertyGormRepository(db), cache.Nop{})

	page, err := uc.Execute(context.Background(), domain.Filter{Page: -1, Limit: 0, Sort: "bogus", Order: "sideways"})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Filters.Page)
	assert.Equal(t, 10, page.Filters.Limit)
	assert.Equal(t, "createdAt", page.Filters.Sort)
	assert.Equal(t, "desc", page.Filters.Order)
	assert.NotNil(t, page.Properties)
	assert.Zero(t, page.Pagination.TotalPages)
}

func TestListProperties_InvalidEnum(t *testing.T) {
	repo := &mockRepo{}
	uc := NewListProperties(repo, cache.Nop{})

	_, err := uc.Execute(context.Background(), domain.Filter{Type: "CASTLE"})

	_, ok := httperr.AsValidation(err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "ListProperties", mock.Anything, mock.Anything, mock.Anything)
}

func TestListProperties_PersistenceFailure(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ListProperties", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, int64(0), httperr.Persistence("properties.count", errors.New("down")))

	page, err := NewListProperties(repo, cache.Nop{}).Execute(context.Background(), domain.Filter{})

	assert.Nil(t, page)
	assert.True(t, httperr.IsPersistence(err))
}

func TestListProperties_ReadThroughCache(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ListProperties", mock.Anything, domain.PublicScope(), mock.Anything).
		Return([]models.Property{{ID: "p1", Name: "cached"}}, int64(1), nil).Once()

	uc := NewListProperties(repo, newRedisCache(t))

	first, err := uc.Execute(context.Background(), domain.Filter{Page: 1})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), domain.Filter{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, first.Properties[0].ID, second.Properties[0].ID)
	repo.AssertNumberOfCalls(t, "ListProperties", 1)
}

func TestListUserProperties_OwnerScope(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ListProperties", mock.Anything, domain.OwnerScope("u1"), mock.Anything).
		Return([]models.Property{}, int64(0), nil)

	page, err := NewListUserProperties(repo, cache.Nop{}).Execute(context.Background(), "u1", domain.Filter{})

	require.NoError(t, err)
	assert.Empty(t, page.Properties)
	repo.AssertExpectations(t)
}

func TestCacheKey_StableAndDistinct(t *testing.T) {
	a, _ := domain.Filter{Query: "villa", Page: 2}.Normalize()
	b, _ := domain.Filter{Page: 2, Query: " villa "}.Normalize()
	c, _ := domain.Filter{Page: 3, Query: "villa"}.Normalize()

	assert.Equal(t, cacheKey(a), cacheKey(b))
	assert.NotEqual(t, cacheKey(a), cacheKey(c))
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func newCreate(t *testing.T, db *gorm.DB, pc cache.PageCache) (*CreateListing, *recordingSink, *metrics.Metrics) {
	sink := &recordingSink{}
	m := metrics.Discard()
	return NewCreateListing(repository.NewPropertyGormRepository(db), pc, sink, m), sink, m
}

func TestCreateListing_SpendsCreditAndCopiesSeller(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "owner@example.com", 1)
	uc, sink, _ := newCreate(t, db, cache.Nop{})

	p, err := uc.Execute(context.Background(), user, validInput())
	require.NoError(t, err)

	assert.Equal(t, "Loft", p.Name)
	assert.Equal(t, "Nino Beridze", p.SellerName)
	assert.Equal(t, "ACTIVE", p.Status)
	assert.Equal(t, user.ID, p.UserID)
	assert.True(t, p.Balcony)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, 0, reloaded.Credit)

	require.Len(t, sink.events, 1)
	assert.Equal(t, audit.ActionPropertyCreated, sink.events[0].Action)
	assert.Equal(t, p.ID, sink.events[0].EntityID)
}

func TestCreateListing_InvalidatesCachedPages(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "owner@example.com", 1)
	pc := newRedisCache(t)
	ctx := context.Background()

	list := NewListProperties(repository.NewPropertyGormRepository(db), pc)
	before, err := list.Execute(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Zero(t, before.Pagination.TotalCount)

	uc, _, _ := newCreate(t, db, pc)
	_, err = uc.Execute(ctx, user, validInput())
	require.NoError(t, err)

	after, err := list.Execute(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, after.Pagination.TotalCount)
}

type listResult struct {
	page *dto.PropertyPage
	err  error
}

// stallingRepo serves the first list call from the database, then holds the
// result until release is closed.
type stallingRepo struct {
	domain.Repository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (r *stallingRepo) ListProperties(ctx context.Context, scope domain.Scope, f domain.Filter) ([]models.Property, int64, error) {
	props, total, err := r.Repository.ListProperties(ctx, scope, f)
	r.once.Do(func() {
		close(r.entered)
		<-r.release
	})
	return props, total, err
}

func TestListProperties_StaleReadDoesNotOutliveInvalidate(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "owner@example.com", 1)
	pc := newRedisCache(t)
	ctx := context.Background()

	repo := &stallingRepo{
		Repository: repository.NewPropertyGormRepository(db),
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	list := NewListProperties(repo, pc)

	done := make(chan *listResult, 1)
	go func() {
		page, err := list.Execute(ctx, domain.Filter{})
		done <- &listResult{page: page, err: err}
	}()

	<-repo.entered

	uc, _, _ := newCreate(t, db, pc)
	_, err := uc.Execute(ctx, user, validInput())
	require.NoError(t, err)

	close(repo.release)
	stale := <-done
	require.NoError(t, stale.err)
	require.Zero(t, stale.page.Pagination.TotalCount)

	fresh, err := list.Execute(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, fresh.Pagination.TotalCount)
}

func TestCreateListing_Rejections(t *testing.T) {
	db := testutil.NewDB(t)
	broke := testutil.CreateUser(t, db, "broke@example.com", 0)
	uc, sink, _ := newCreate(t, db, cache.Nop{})

	t.Run("validation lists every field", func(t *testing.T) {
		in := validInput()
		in.Name = "   "
		in.Price = 0
		in.Images = nil

		_, err := uc.Execute(context.Background(), broke, in)

		ve, ok := httperr.AsValidation(err)
		require.True(t, ok)
		fields := ve.FieldMap()
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "price")
		assert.Contains(t, fields, "images")
	})

	t.Run("no session", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), nil, validInput())
		assert.ErrorIs(t, err, httperr.ErrUnauthenticated)
	})

	t.Run("no credit", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), broke, validInput())
		assert.ErrorIs(t, err, httperr.ErrInsufficientCredit)
	})

	t.Run("stale credit in session", func(t *testing.T) {
		stale := *broke
		stale.Credit = 3

		_, err := uc.Execute(context.Background(), &stale, validInput())
		assert.ErrorIs(t, err, httperr.ErrInsufficientCredit)
	})

	var count int64
	require.NoError(t, db.Model(&models.Property{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, sink.events)
}

func TestCreateListing_CacheFailureDoesNotFailRequest(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "owner@example.com", 1)
	uc, _, _ := newCreate(t, db, failingCache{})

	_, err := uc.Execute(context.Background(), user, validInput())
	assert.NoError(t, err)
}

type failingCache struct{ cache.Nop }

func (failingCache) Invalidate(context.Context, ...string) error {
	return errors.New("redis down")
}
