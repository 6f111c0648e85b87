package dto

import (
	"github.com/BruksfildServices01/estate-listings/internal/domain/property"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

type PropertyPage struct {
	Message    string              `json:"message"`
	Success    bool                `json:"success"`
	Properties []models.Property   `json:"properties"`
	Pagination property.Pagination `json:"pagination"`
	Filters    property.Filter     `json:"filters"`
}
