package dto

// SearchLandmarksRequest - validated parameters for a landmark search.
// A zero radius means "not supplied" and is replaced with the default
// before validation of range happens at the use case boundary.
type SearchLandmarksRequest struct {
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lon    float64 `json:"lon" validate:"min=-180,max=180"`
	Radius float64 `json:"radius" validate:"omitempty,min=10,max=10000"`
}
