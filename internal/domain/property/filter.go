package property

import (
	"math"
	"strings"

	"github.com/BruksfildServices01/estate-listings/internal/httperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (Page-1)*Limit inside int for any allowed limit.
	MaxPage = math.MaxInt / MaxLimit

	SortCreatedAt = "createdAt"
	OrderAsc      = "asc"
	OrderDesc     = "desc"
)

// sortColumns is the allow-list of sortable fields. Anything else falls
// back to createdAt; it is never an error.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"area":      "area",
	"rooms":     "rooms",
}

type Filter struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`

	Type     Type     `json:"type,omitempty"`
	For      For      `json:"for,omitempty"`
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	Query    string   `json:"query,omitempty"`

	Sort  string `json:"sort"`
	Order string `json:"order"`
}

// Normalize applies defaults and the sort allow-list. Only an unknown
// type or for value is reported back to the caller.
func (f Filter) Normalize() (Filter, error) {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}

	if _, ok := sortColumns[f.Sort]; !ok {
		f.Sort = SortCreatedAt
	}

	f.Order = strings.ToLower(strings.TrimSpace(f.Order))
	if f.Order != OrderAsc {
		f.Order = OrderDesc
	}

	f.Query = strings.TrimSpace(f.Query)

	var fields []httperr.FieldError
	if f.Type != "" && !f.Type.Valid() {
		fields = append(fields, httperr.FieldError{Field: "type", Message: "Invalid property type"})
	}
	if f.For != "" && !f.For.Valid() {
		fields = append(fields, httperr.FieldError{Field: "for", Message: "Invalid listing purpose"})
	}
	if len(fields) > 0 {
		return f, httperr.NewValidationError(fields...)
	}

	return f, nil
}

// SortColumn maps the normalized sort field to its column name.
func (f Filter) SortColumn() string {
	if col, ok := sortColumns[f.Sort]; ok {
		return col
	}
	return sortColumns[SortCreatedAt]
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
