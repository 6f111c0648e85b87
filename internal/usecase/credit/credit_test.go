package credit

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/estate-listings/internal/audit"
	"github.com/BruksfildServices01/estate-listings/internal/cache"
	domain "github.com/BruksfildServices01/estate-listings/internal/domain/credit"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/infra/repository"
	"github.com/BruksfildServices01/estate-listings/internal/metrics"
	dbtest "github.com/BruksfildServices01/estate-listings/internal/testutil"
)

type spyCache struct {
	cache.Nop
	invalidated []string
}

func (s *spyCache) Invalidate(_ context.Context, paths ...string) error {
	s.invalidated = append(s.invalidated, paths...)
	return nil
}

func TestRefill_IncrementsAndInvalidates(t *testing.T) {
	db := dbtest.NewDB(t)
	u := dbtest.CreateUser(t, db, "buyer@example.com", 3)
	pc := &spyCache{}
	m := metrics.Discard()

	uc := NewRefill(repository.NewCreditGormRepository(db), pc, audit.Discard{}, m)

	updated, err := uc.Execute(context.Background(), RefillInput{
		EventID: "payment:1", UserID: u.ID, ProductID: "p1", Amount: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, updated.Credit)
	assert.Equal(t, []string{
		"/my-profile/manage-credits",
		"/my-profile/manage-credits/buy-credit",
		"/my-profile/manage-credits/buy-credit/p1",
	}, pc.invalidated)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.CreditsRefilled))
}

func TestRefill_ConcurrentRefillsAllLand(t *testing.T) {
	db := dbtest.NewDB(t)
	u := dbtest.CreateUser(t, db, "buyer@example.com", 0)
	uc := NewRefill(repository.NewCreditGormRepository(db), cache.Nop{}, audit.Discard{}, metrics.Discard())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), RefillInput{
				EventID: "payment:" + string(rune('a'+i)),
				UserID:  u.ID,
				Amount:  2,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ok, err := NewCanList(repository.NewCreditGormRepository(db)).Execute(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	balance, err := repository.NewCreditGormRepository(db).Balance(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance)
}

func TestRefill_Redelivery(t *testing.T) {
	db := dbtest.NewDB(t)
	u := dbtest.CreateUser(t, db, "buyer@example.com", 0)
	m := metrics.Discard()
	uc := NewRefill(repository.NewCreditGormRepository(db), cache.Nop{}, audit.Discard{}, m)

	in := RefillInput{EventID: "payment:9", UserID: u.ID, Amount: 5}
	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.CreditsRefilled))
}

func TestRefill_Validation(t *testing.T) {
	db := dbtest.NewDB(t)
	uc := NewRefill(repository.NewCreditGormRepository(db), cache.Nop{}, audit.Discard{}, metrics.Discard())

	_, err := uc.Execute(context.Background(), RefillInput{UserID: " ", Amount: 0})

	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 2)
}

func TestCanList(t *testing.T) {
	db := dbtest.NewDB(t)
	rich := dbtest.CreateUser(t, db, "rich@example.com", 1)
	poor := dbtest.CreateUser(t, db, "poor@example.com", 0)
	uc := NewCanList(repository.NewCreditGormRepository(db))

	for id, want := range map[string]bool{rich.ID: true, poor.ID: false, "ghost": false} {
		got, err := uc.Execute(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
}

func TestListPlans(t *testing.T) {
	uc := NewListPlans()

	plans := uc.Execute()
	require.Len(t, plans, 6)
	assert.Equal(t, "starter", plans[0].ID)

	p, ok := uc.Find("popular-choice")
	require.True(t, ok)
	assert.Equal(t, 5, p.Credits)
	assert.Equal(t, 18.0, p.Price)
	assert.True(t, p.Popular)

	_, ok = uc.Find("free-lunch")
	assert.False(t, ok)
}
