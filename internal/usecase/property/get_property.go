package property

import (
	"context"

	domain "github.com/BruksfildServices01/estate-listings/internal/domain/property"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

type GetProperty struct {
	repo domain.Repository
}

func NewGetProperty(repo domain.Repository) *GetProperty {
	return &GetProperty{repo: repo}
}

func (uc *GetProperty) Execute(ctx context.Context, id string) (*models.Property, error) {
	return uc.repo.GetProperty(ctx, id)
}
