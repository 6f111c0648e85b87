package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraRepo "github.com/BruksfildServices01/estate-listings/internal/infra/repository"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/models"
	"github.com/BruksfildServices01/estate-listings/internal/testutil"
)

func TestSeed_UpsertsByIDAndSkipsMissing(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "seed@example.com", 0)

	export := `[
		{"id":"11111111-1111-1111-1111-111111111111","name":"Old name","description":"d","price":100,
		 "for":"RENT","type":"OFFICE","location":"Tbilisi","images":["https://cdn.example.com/1.webp"],
		 "status":"ACTIVE","userId":"` + owner.ID + `","createdAt":"2020-01-01T00:00:00Z"},
		{"name":"No id","description":"d","price":1,"for":"SALE","type":"LAND","userId":"` + owner.ID + `"}
	]`
	repo := infraRepo.NewPropertyGormRepository(db)

	res, err := seed(context.Background(), strings.NewReader(export), repo, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, result{Found: 2, Seeded: 1, Skipped: 1}, res)

	var p models.Property
	require.NoError(t, db.First(&p, "id = ?", "11111111-1111-1111-1111-111111111111").Error)
	assert.Equal(t, "Old name", p.Name)
	assert.True(t, p.CreatedAt.Year() > 2020, "export timestamps are dropped")

	// Running again with an edited export updates in place.
	edited := strings.Replace(export, "Old name", "New name", 1)
	_, err = seed(context.Background(), strings.NewReader(edited), repo, logger.Nop())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Property{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.First(&p, "id = ?", "11111111-1111-1111-1111-111111111111").Error)
	assert.Equal(t, "New name", p.Name)
}

func TestSeed_RejectsMalformedFile(t *testing.T) {
	_, err := seed(context.Background(), strings.NewReader(`{"not":"a list"}`), nil, logger.Nop())
	assert.Error(t, err)
}
