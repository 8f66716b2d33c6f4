package repository

import (
	"context"

	"github.com/landmark-service/internal/domain"
)

// LandmarkRepository defines access to the upstream geosearch API.
type LandmarkRepository interface {
	// Search returns landmarks around a point, in upstream ranking order
	// (typically nearest first), up to the configured limit.
	Search(ctx context.Context, lat, lon, radius float64) ([]domain.Landmark, error)

	// Detail returns the page detail for a landmark, or
	// errors.ErrLandmarkNotFound when the upstream marks the page missing.
	Detail(ctx context.Context, pageID int64) (*domain.LandmarkDetail, error)
}
