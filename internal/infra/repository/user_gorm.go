package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/estate-listings/internal/domain/user"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByID(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Preload("Properties", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("CreditTransactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&u).Error

	return r.one(&u, err, "users.find_by_id")
}

func (r *UserGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error

	return r.one(&u, err, "users.find_by_email")
}

func (r *UserGormRepository) FindByExternalID(
	ctx context.Context,
	externalID string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&u).Error

	return r.one(&u, err, "users.find_by_external_id")
}

func (r *UserGormRepository) Create(
	ctx context.Context,
	u *models.User,
) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		return httperr.ErrConflict
	}
	return httperr.Persistence("users.create", err)
}

func (r *UserGormRepository) LinkExternalID(
	ctx context.Context,
	userID string,
	externalID string,
) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("external_id", externalID).Error
	if isUniqueViolation(err) {
		return httperr.ErrConflict
	}
	return httperr.Persistence("users.link_external_id", err)
}

func (r *UserGormRepository) one(u *models.User, err error, op string) (*models.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, httperr.Persistence(op, err)
	}
	return u, nil
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
