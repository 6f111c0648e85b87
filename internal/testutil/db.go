// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/estate-listings/internal/db"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

// NewDB opens a private in-memory sqlite database with the full schema.
// A single connection serialises transactions the way row locks would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func CreateUser(t *testing.T, gdb *gorm.DB, email string, credit int) *models.User {
	t.Helper()

	u := &models.User{
		Email:    email,
		Name:     "Nino",
		LastName: "Beridze",
		Phone:    "5551234567",
		Credit:   credit,
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

// PropertyFixture returns an ACTIVE apartment for sale; callers override
// what the test is about.
func PropertyFixture(ownerID string) models.Property {
	return models.Property{
		Name:        "Sunny flat",
		Description: "Two bedrooms close to the park",
		Price:       150000,
		For:         "SALE",
		Type:        "APARTMENT",
		Area:        80,
		Rooms:       3,
		Bathrooms:   1,
		Location:    "Tbilisi, Vake",
		Images:      []string{"https://cdn.example.com/a.webp"},
		SellerName:  "Nino Beridze",
		SellerPhone: "5551234567",
		Status:      "ACTIVE",
		UserID:      ownerID,
	}
}
