package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/landmark-service/internal/pkg/errors"
	"github.com/landmark-service/internal/pkg/utils"
	"github.com/landmark-service/internal/pkg/validator"
	"github.com/landmark-service/internal/usecase"
	"github.com/landmark-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// LandmarkHandler - handler for landmark search and detail requests.
type LandmarkHandler struct {
	landmarkUC *usecase.LandmarkUseCase
	logger     *zap.Logger
}

// NewLandmarkHandler - creates a new LandmarkHandler.
func NewLandmarkHandler(landmarkUC *usecase.LandmarkUseCase, logger *zap.Logger) *LandmarkHandler {
	return &LandmarkHandler{
		landmarkUC: landmarkUC,
		logger:     logger,
	}
}

// Search godoc
// @Summary Search landmarks around a point
// @Description Queries the upstream geosearch for landmarks around the given coordinate. Results keep the upstream ranking (typically nearest first), up to 50 entries.
// @Tags Landmarks
// @Produce json
// @Param lat query number true "Latitude [-90,90]"
// @Param lon query number true "Longitude [-180,180]"
// @Param radius query number false "Search radius in meters [10,10000]" default(5000)
// @Success 200 {object} dto.SearchLandmarksResponse
// @Failure 400 {object} errors.AppError
// @Failure 429 {object} errors.AppError
// @Failure 500 {object} errors.AppError
// @Router /api/landmarks/search [get]
func (h *LandmarkHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchLandmarksRequest

	lat := c.Query("lat")
	if lat == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(
			validator.Violation("lat", "required", "query parameter 'lat' is required")))
	}
	parsedLat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(
			validator.Violation("lat", "numeric", "query parameter 'lat' must be a number")))
	}
	req.Lat = parsedLat

	lon := c.Query("lon")
	if lon == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(
			validator.Violation("lon", "required", "query parameter 'lon' is required")))
	}
	parsedLon, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(
			validator.Violation("lon", "numeric", "query parameter 'lon' must be a number")))
	}
	req.Lon = parsedLon

	// Absent or non-numeric radius falls back to the default; range
	// checks happen in the use case. An explicit zero is out of range
	// and must not ride the default-on-absent path.
	if radiusStr := c.Query("radius"); radiusStr != "" {
		if radius, err := strconv.ParseFloat(radiusStr, 64); err == nil {
			if radius == 0 {
				return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(
					validator.Violation("radius", "min", "radius must be between 10 and 10000 meters")))
			}
			req.Radius = radius
		}
	}

	result, err := h.landmarkUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// Detail godoc
// @Summary Get landmark detail
// @Description Fetches the intro extract, thumbnail (max 400px) and canonical URL for one landmark page.
// @Tags Landmarks
// @Produce json
// @Param pageid path integer true "Upstream page id"
// @Success 200 {object} domain.LandmarkDetail
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Failure 429 {object} errors.AppError
// @Failure 500 {object} errors.AppError
// @Router /api/landmarks/{pageid} [get]
func (h *LandmarkHandler) Detail(c *fiber.Ctx) error {
	pageID, err := strconv.ParseInt(c.Params("pageid"), 10, 64)
	if err != nil || pageID <= 0 {
		return utils.SendError(c, errors.ErrInvalidPageID)
	}

	detail, err := h.landmarkUC.Detail(c.Context(), pageID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(detail)
}
