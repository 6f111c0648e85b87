package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/estate-listings/internal/domain/property"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

type PropertyGormRepository struct {
	db *gorm.DB
}

func NewPropertyGormRepository(db *gorm.DB) *PropertyGormRepository {
	return &PropertyGormRepository{db: db}
}

// --------------------------------------------------
// Query
// --------------------------------------------------

func (r *PropertyGormRepository) ListProperties(
	ctx context.Context,
	scope domain.Scope,
	f domain.Filter,
) ([]models.Property, int64, error) {

	q := r.filtered(r.db.WithContext(ctx).Model(&models.Property{}), scope, f).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, httperr.Persistence("properties.count", err)
	}

	props := make([]models.Property, 0, f.Limit)
	if total == 0 || f.Offset() < 0 || f.Offset() >= int(total) {
		return props, total, nil
	}

	if err := q.
		Order(clause.OrderByColumn{
			Column: clause.Column{Name: f.SortColumn()},
			Desc:   f.Order == domain.OrderDesc,
		}).
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&props).Error; err != nil {
		return nil, 0, httperr.Persistence("properties.find", err)
	}

	return props, total, nil
}

func (r *PropertyGormRepository) filtered(
	q *gorm.DB,
	scope domain.Scope,
	f domain.Filter,
) *gorm.DB {

	if scope.IsPublic() {
		q = q.Where("status = ?", string(domain.StatusActive))
	} else {
		q = q.Where("user_id = ?", scope.OwnerID)
	}

	if f.Type != "" {
		q = q.Where("type = ?", string(f.Type))
	}

	if f.For != "" {
		q = q.Where("listing_for = ?", string(f.For))
	}

	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}

	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}

	if f.Query != "" {
		like := "%" + escapeLike(toLower(f.Query)) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(location) LIKE ? ESCAPE '\\'",
			like, like, like,
		)
	}

	return q
}

func (r *PropertyGormRepository) GetProperty(
	ctx context.Context,
	id string,
) (*models.Property, error) {

	var p models.Property
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, httperr.Persistence("properties.get", err)
	}
	return &p, nil
}

// --------------------------------------------------
// Create (credit-gated)
// --------------------------------------------------

// CreateWithCredit spends one credit of p.UserID and inserts p in a single
// transaction. The decrement is conditional, so two concurrent requests
// can never both spend the last credit.
func (r *PropertyGormRepository) CreateWithCredit(
	ctx context.Context,
	p *models.Property,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		res := tx.Model(&models.User{}).
			Where("id = ? AND credit >= ?", p.UserID, 1).
			UpdateColumn("credit", gorm.Expr("credit - ?", 1))
		if res.Error != nil {
			return httperr.Persistence("users.decrement_credit", res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.ErrInsufficientCredit
		}

		if err := tx.Create(p).Error; err != nil {
			return httperr.Persistence("properties.create", err)
		}

		entry := models.CreditTransaction{
			UserID:    p.UserID,
			Amount:    -1,
			Reason:    models.CreditReasonListing,
			Reference: p.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return httperr.Persistence("credit_transactions.create", err)
		}

		return nil
	})
}

// --------------------------------------------------
// Seed
// --------------------------------------------------

func (r *PropertyGormRepository) Upsert(
	ctx context.Context,
	p *models.Property,
) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(p).Error
	return httperr.Persistence("properties.upsert", err)
}

// Compile-time check
var _ domain.Repository = (*PropertyGormRepository)(nil)
