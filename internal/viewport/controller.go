// Package viewport converts continuous map movement into a bounded
// stream of landmark searches. It drives the map widget and the device
// geolocation through narrow interfaces and never lets a superseded
// search overwrite fresher results.
package viewport

import (
	"context"
	"sync"
	"time"

	"github.com/landmark-service/internal/domain"
	"github.com/landmark-service/internal/pkg/utils"
	"go.uber.org/zap"
)

// Searcher issues landmark searches. Server-side this is the landmark
// use case; in a remote client it is the API wrapper.
type Searcher interface {
	Search(ctx context.Context, lat, lon, radius float64) ([]domain.Landmark, error)
}

// Detailer fetches page detail for a selected landmark.
type Detailer interface {
	Detail(ctx context.Context, pageID int64) (*domain.LandmarkDetail, error)
}

// Geolocator is the one-shot device position capability.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (domain.Coordinate, error)
}

// MapView is the opaque map widget; the controller only ever recenters it.
type MapView interface {
	SetCenter(c domain.Coordinate)
}

// Result is what a completed viewport search delivers to the
// presentation layer. Err is set after retries are exhausted; landmarks
// and error are never both populated, so "no data" and "failed" stay
// visually distinguishable.
type Result struct {
	Center    domain.Coordinate
	Radius    float64
	Landmarks []domain.Landmark
	Err       error
}

// Options tune the controller. Zero values pick the defaults.
type Options struct {
	Debounce      time.Duration // quiet window after a settle event (default 500ms)
	RetryAttempts int           // extra fetch attempts after a failure (default 2)
	DetailTTL     time.Duration // in-process detail cache lifetime (default 1m)
}

const (
	defaultDebounce      = 500 * time.Millisecond
	defaultRetryAttempts = 2
	defaultDetailTTL     = time.Minute
)

type detailEntry struct {
	detail    *domain.LandmarkDetail
	expiresAt time.Time
}

// Controller debounces map settle events and runs at most one "current"
// search at a time in the token sense: in-flight calls are not aborted,
// but only the freshest token may deliver results.
type Controller struct {
	searcher   Searcher
	detailer   Detailer
	geolocator Geolocator
	view       MapView
	onResult   func(Result)
	logger     *zap.Logger

	debounce      time.Duration
	retryAttempts int
	detailTTL     time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	token   uint64
	details map[int64]detailEntry
}

// NewController - creates a new viewport Controller. onResult receives
// every non-superseded search outcome.
func NewController(
	searcher Searcher,
	detailer Detailer,
	geolocator Geolocator,
	view MapView,
	onResult func(Result),
	logger *zap.Logger,
	opts Options,
) *Controller {
	if opts.Debounce == 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = defaultRetryAttempts
	}
	if opts.DetailTTL == 0 {
		opts.DetailTTL = defaultDetailTTL
	}

	return &Controller{
		searcher:      searcher,
		detailer:      detailer,
		geolocator:    geolocator,
		view:          view,
		onResult:      onResult,
		logger:        logger,
		debounce:      opts.Debounce,
		retryAttempts: opts.RetryAttempts,
		detailTTL:     opts.DetailTTL,
		details:       make(map[int64]detailEntry),
	}
}

// OnMapSettled records a new viewport after movement has stopped. Only
// the last settle event inside the quiet window dispatches a search;
// the pending timer of an earlier event is canceled, not just ignored.
func (c *Controller) OnMapSettled(lat, lon, zoom float64) {
	center := domain.Coordinate{Lat: lat, Lon: lon}
	radius := utils.RadiusForZoom(zoom)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.dispatch(center, radius)
	})
}

// Locate asks the device for its position once, recenters the view and
// dispatches immediately, bypassing the debounce path.
func (c *Controller) Locate(ctx context.Context, zoom float64) error {
	pos, err := c.geolocator.CurrentPosition(ctx)
	if err != nil {
		c.logger.Warn("Geolocation failed", zap.Error(err))
		return err
	}

	if c.view != nil {
		c.view.SetCenter(pos)
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.dispatch(pos, utils.RadiusForZoom(zoom))
	return nil
}

// Detail returns page detail for a landmark, served from a short-lived
// in-process cache when fresh.
func (c *Controller) Detail(ctx context.Context, pageID int64) (*domain.LandmarkDetail, error) {
	c.mu.Lock()
	if entry, ok := c.details[pageID]; ok && time.Now().Before(entry.expiresAt) {
		c.mu.Unlock()
		return entry.detail, nil
	}
	c.mu.Unlock()

	var detail *domain.LandmarkDetail
	var err error
	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		detail, err = c.detailer.Detail(ctx, pageID)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.details[pageID] = detailEntry{detail: detail, expiresAt: time.Now().Add(c.detailTTL)}
	c.mu.Unlock()

	return detail, nil
}

// Close cancels any pending debounce timer. In-flight fetches finish on
// their own and are discarded by the token check.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// dispatch claims a fresh token and starts the fetch.
func (c *Controller) dispatch(center domain.Coordinate, radius float64) {
	c.mu.Lock()
	c.token++
	token := c.token
	c.mu.Unlock()

	go c.fetch(token, center, radius)
}

// fetch runs the search with retries, then delivers the result unless a
// newer dispatch claimed the token meanwhile. The upstream call itself
// is never aborted; a stale completed response is simply dropped.
func (c *Controller) fetch(token uint64, center domain.Coordinate, radius float64) {
	ctx := context.Background()

	var landmarks []domain.Landmark
	var err error
	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		landmarks, err = c.searcher.Search(ctx, center.Lat, center.Lon, radius)
		if err == nil {
			break
		}
		c.logger.Warn("Viewport search attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	c.mu.Lock()
	stale := token != c.token
	c.mu.Unlock()
	if stale {
		c.logger.Debug("Discarding superseded viewport response",
			zap.Float64("lat", center.Lat),
			zap.Float64("lon", center.Lon))
		return
	}

	result := Result{Center: center, Radius: radius, Err: err}
	if err == nil {
		result.Landmarks = landmarks
	}
	c.onResult(result)
}
