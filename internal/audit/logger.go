package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

// Store persists audit rows.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, ev Event) error {

	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		UserID:   optional(ev.UserID),
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: optional(ev.EntityID),
		Metadata: metaJSON,
	}

	return s.db.WithContext(ctx).Create(&row).Error
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Query narrows List. Zero values mean "no filter".
type Query struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Normalize clamps paging the same way the listings endpoints do.
func (q Query) Normalize() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > maxLimit {
		q.Limit = defaultLimit
	}
	return q
}

// List returns the newest rows first together with the unpaged total.
func (s *Store) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	q = q.Normalize()

	tx := s.db.WithContext(ctx).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		tx = tx.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		tx = tx.Where("created_at < ?", q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, httperr.Persistence("count audit logs", err)
	}

	logs := []models.AuditLog{}
	if err := tx.
		Order("created_at DESC").
		Order("id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, httperr.Persistence("list audit logs", err)
	}

	return logs, total, nil
}
