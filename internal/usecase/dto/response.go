package dto

import "github.com/landmark-service/internal/domain"

// SearchLandmarksResponse - landmarks around the requested point, in
// upstream order.
type SearchLandmarksResponse struct {
	Landmarks []domain.Landmark `json:"landmarks"`
}
