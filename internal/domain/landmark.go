package domain

// Landmark is a single point of interest returned by the upstream
// geosearch. It is a read-only view of upstream data: fields the upstream
// did not send stay nil and are omitted from JSON, never zero-filled.
type Landmark struct {
	PageID  int64    `json:"pageid"`
	Title   string   `json:"title"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Dist    *float64 `json:"dist,omitempty"`    // meters from the search center
	Primary *string  `json:"primary,omitempty"` // set when the coordinate is the page's primary one
}

// Thumbnail is an upstream page image, already capped in size by the
// detail request.
type Thumbnail struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// LandmarkDetail carries the lazily fetched page data for a selected
// landmark: intro extract, thumbnail and canonical URL. All three are
// optional upstream.
type LandmarkDetail struct {
	PageID    int64      `json:"pageid"`
	Title     string     `json:"title"`
	Extract   *string    `json:"extract,omitempty"`
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`
	URL       *string    `json:"url,omitempty"`
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
