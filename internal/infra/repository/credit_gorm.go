package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/estate-listings/internal/domain/credit"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

type CreditGormRepository struct {
	db *gorm.DB
}

func NewCreditGormRepository(db *gorm.DB) *CreditGormRepository {
	return &CreditGormRepository{db: db}
}

func (r *CreditGormRepository) Increment(
	ctx context.Context,
	in domain.Refill,
) (*models.User, error) {

	var updated models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// --------------------------------------------------
		// Dedup by provider event id
		// --------------------------------------------------
		if in.EventID != "" {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.PaymentEvent{
					ID:        in.EventID,
					UserID:    in.UserID,
					ProductID: in.ProductID,
					Amount:    in.Amount,
				})
			if res.Error != nil {
				if isUniqueViolation(res.Error) {
					return domain.ErrAlreadyProcessed
				}
				return httperr.Persistence("payment_events.create", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrAlreadyProcessed
			}
		}

		// --------------------------------------------------
		// Server-side increment
		// --------------------------------------------------
		res := tx.Model(&models.User{}).
			Where("id = ?", in.UserID).
			UpdateColumn("credit", gorm.Expr("credit + ?", in.Amount))
		if res.Error != nil {
			return httperr.Persistence("users.increment_credit", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}

		entry := models.CreditTransaction{
			UserID:    in.UserID,
			Amount:    in.Amount,
			Reason:    models.CreditReasonRefill,
			Reference: in.EventID,
			ProductID: in.ProductID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return httperr.Persistence("credit_transactions.create", err)
		}

		if err := tx.Where("id = ?", in.UserID).First(&updated).Error; err != nil {
			return httperr.Persistence("users.reload", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *CreditGormRepository) Balance(
	ctx context.Context,
	userID string,
) (int, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Select("id", "credit").
		Where("id = ?", userID).
		First(&u).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrUserNotFound
	}
	if err != nil {
		return 0, httperr.Persistence("users.balance", err)
	}
	return u.Credit, nil
}

// Compile-time check
var _ domain.Repository = (*CreditGormRepository)(nil)
