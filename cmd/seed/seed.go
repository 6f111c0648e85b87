package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

type propertyUpserter interface {
	Upsert(ctx context.Context, p *models.Property) error
}

type result struct {
	Found   int
	Seeded  int
	Skipped int
}

// seed upserts every property in r by id. Rows without an id are skipped.
// Timestamps from the export are dropped so the database assigns fresh ones.
func seed(ctx context.Context, r io.Reader, repo propertyUpserter, log *logger.Logger) (result, error) {
	var props []models.Property
	if err := json.NewDecoder(r).Decode(&props); err != nil {
		return result{}, fmt.Errorf("decode properties: %w", err)
	}

	res := result{Found: len(props)}
	log.Info().Int("found", res.Found).Msg("properties to seed")

	for i := range props {
		p := &props[i]
		if p.ID == "" {
			log.Warn().Str("name", p.Name).Msg("property missing id, skipping")
			res.Skipped++
			continue
		}

		p.CreatedAt = time.Time{}
		p.UpdatedAt = time.Time{}
		p.ExpiresAt = nil
		p.User = nil

		if err := repo.Upsert(ctx, p); err != nil {
			return res, fmt.Errorf("upsert %s: %w", p.ID, err)
		}
		res.Seeded++
	}

	return res, nil
}
