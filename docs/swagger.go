// Package docs Landmark Service API.
//
// Map-based landmark discovery service. Proxies an encyclopedia
// geosearch API: given a coordinate and radius it returns nearby
// landmarks, and per-landmark detail (intro extract, thumbnail,
// canonical URL) on demand.
//
// Endpoints are rate limited per client source address.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
