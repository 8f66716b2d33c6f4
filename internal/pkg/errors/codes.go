package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"VALIDATION_ERROR",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidPageID = New(
		"INVALID_PAGE_ID",
		"Page id must be a positive integer",
		http.StatusBadRequest,
	)

	ErrLandmarkNotFound = New(
		"LANDMARK_NOT_FOUND",
		"Landmark not found",
		http.StatusNotFound,
	)

	ErrRateLimited = New(
		"RATE_LIMIT_EXCEEDED",
		"Too many requests, slow down",
		http.StatusTooManyRequests,
	)

	ErrUpstreamError = New(
		"UPSTREAM_ERROR",
		"Upstream geosearch service failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
