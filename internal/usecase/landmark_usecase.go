package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/landmark-service/internal/domain"
	"github.com/landmark-service/internal/domain/repository"
	"github.com/landmark-service/internal/pkg/errors"
	"github.com/landmark-service/internal/pkg/utils"
	"github.com/landmark-service/internal/pkg/validator"
	"github.com/landmark-service/internal/usecase/dto"
)

// LandmarkUseCase - search and detail lookups against the upstream,
// fronted by a short-TTL response cache.
type LandmarkUseCase struct {
	landmarkRepo repository.LandmarkRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	searchTTL    time.Duration
	detailTTL    time.Duration
}

// NewLandmarkUseCase - creates a new LandmarkUseCase.
func NewLandmarkUseCase(
	landmarkRepo repository.LandmarkRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	searchTTL time.Duration,
	detailTTL time.Duration,
) *LandmarkUseCase {
	return &LandmarkUseCase{
		landmarkRepo: landmarkRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		searchTTL:    searchTTL,
		detailTTL:    detailTTL,
	}
}

// Search validates the request, applies the default radius and queries
// the upstream (through the cache). Result order is the upstream's.
func (uc *LandmarkUseCase) Search(ctx context.Context, req dto.SearchLandmarksRequest) (*dto.SearchLandmarksResponse, error) {
	if req.Radius == 0 {
		req.Radius = utils.DefaultSearchRadius
	}

	if err := validator.Validate(&req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(validator.Violations(err))
	}
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	cacheKey := fmt.Sprintf("landmarks:search:%.4f:%.4f:%.0f", req.Lat, req.Lon, req.Radius)
	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var resp dto.SearchLandmarksResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		uc.logger.Warn("Failed to unmarshal cached search response", zap.String("key", cacheKey))
	}

	landmarks, err := uc.landmarkRepo.Search(ctx, req.Lat, req.Lon, req.Radius)
	if err != nil {
		uc.logger.Error("Upstream search failed",
			zap.Float64("lat", req.Lat),
			zap.Float64("lon", req.Lon),
			zap.Float64("radius", req.Radius),
			zap.Error(err))
		return nil, err
	}

	resp := &dto.SearchLandmarksResponse{Landmarks: landmarks}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.searchTTL); err != nil {
			uc.logger.Warn("Failed to cache search response", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return resp, nil
}

// Detail fetches one landmark's page detail (through the cache).
// Not-found is passed through untouched and never cached.
func (uc *LandmarkUseCase) Detail(ctx context.Context, pageID int64) (*domain.LandmarkDetail, error) {
	if pageID <= 0 {
		return nil, errors.ErrInvalidPageID
	}

	cacheKey := fmt.Sprintf("landmarks:detail:%d", pageID)
	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var detail domain.LandmarkDetail
		if err := json.Unmarshal(cached, &detail); err == nil {
			return &detail, nil
		}
		uc.logger.Warn("Failed to unmarshal cached detail", zap.String("key", cacheKey))
	}

	detail, err := uc.landmarkRepo.Detail(ctx, pageID)
	if err != nil {
		if err != errors.ErrLandmarkNotFound {
			uc.logger.Error("Upstream detail failed", zap.Int64("pageid", pageID), zap.Error(err))
		}
		return nil, err
	}

	if data, err := json.Marshal(detail); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.detailTTL); err != nil {
			uc.logger.Warn("Failed to cache detail", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return detail, nil
}
