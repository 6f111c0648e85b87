package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/estate-listings/internal/models"
	"github.com/BruksfildServices01/estate-listings/internal/testutil"
)

func TestStore_ListFiltersAndPages(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewStore(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := []models.AuditLog{
		{Action: ActionPropertyCreated, Entity: "property", CreatedAt: base},
		{Action: ActionPropertyCreated, Entity: "property", CreatedAt: base.Add(time.Hour)},
		{Action: ActionCreditRefilled, Entity: "user", CreatedAt: base.Add(2 * time.Hour)},
		{Action: ActionPropertyCreated, Entity: "property", CreatedAt: base.AddDate(0, 0, 2)},
	}
	require.NoError(t, db.Create(&rows).Error)

	logs, total, err := s.List(ctx, Query{Action: ActionPropertyCreated, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt), "newest first")

	logs, total, err = s.List(ctx, Query{
		Action: ActionPropertyCreated,
		From:   base,
		To:     base.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, logs, 2)

	logs, total, err = s.List(ctx, Query{Entity: "user"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, ActionCreditRefilled, logs[0].Action)
}

func TestStore_ListPageBeyondEndIsEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewStore(db)
	require.NoError(t, s.Save(context.Background(), Event{Action: ActionUserRegistered}))

	logs, total, err := s.List(context.Background(), Query{Page: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestQuery_Normalize(t *testing.T) {
	q := Query{Page: -1, Limit: 5000}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, defaultLimit, q.Limit)

	q = Query{Page: 3, Limit: 10}.Normalize()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 10, q.Limit)
}
