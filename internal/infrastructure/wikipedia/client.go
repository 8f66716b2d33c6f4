package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/landmark-service/internal/config"
	"github.com/landmark-service/internal/domain"
	"github.com/landmark-service/internal/domain/repository"
	"github.com/landmark-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	searchLimit int
	thumbSize   int
	logger      *zap.Logger
}

// NewClient creates the upstream geosearch/page-detail client.
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) repository.LandmarkRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		searchLimit: cfg.SearchLimit,
		thumbSize:   cfg.ThumbnailSize,
		logger:      logger,
	}
}

// geosearchResponse mirrors the upstream geosearch envelope. Optional
// fields are pointers so absence survives the round trip.
type geosearchResponse struct {
	Error *apiError `json:"error"`
	Query *struct {
		Geosearch []geosearchItem `json:"geosearch"`
	} `json:"query"`
}

type geosearchItem struct {
	PageID  int64    `json:"pageid"`
	Title   string   `json:"title"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Dist    *float64 `json:"dist"`
	Primary *string  `json:"primary"`
}

// detailResponse mirrors the upstream page-detail envelope: pages keyed
// by page id, a missing page flagged with an empty "missing" member.
type detailResponse struct {
	Error *apiError `json:"error"`
	Query *struct {
		Pages map[string]detailPage `json:"pages"`
	} `json:"query"`
}

type detailPage struct {
	PageID    int64             `json:"pageid"`
	Title     string            `json:"title"`
	Missing   *string           `json:"missing"`
	Extract   *string           `json:"extract"`
	Thumbnail *domain.Thumbnail `json:"thumbnail"`
	FullURL   *string           `json:"fullurl"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// Search queries the upstream geosearch around a point. Results keep the
// upstream ranking; no re-sorting happens here.
func (c *client) Search(ctx context.Context, lat, lon, radius float64) ([]domain.Landmark, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "geosearch")
	params.Set("gscoord", fmt.Sprintf("%f|%f", lat, lon))
	params.Set("gsradius", strconv.FormatFloat(radius, 'f', -1, 64))
	params.Set("gslimit", strconv.Itoa(c.searchLimit))
	params.Set("format", "json")

	var result geosearchResponse
	if err := c.call(ctx, params, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		c.logger.Error("Upstream returned API error",
			zap.String("code", result.Error.Code),
			zap.String("info", result.Error.Info))
		return nil, errors.ErrUpstreamError.WithMessage(
			fmt.Sprintf("upstream rejected geosearch: %s", result.Error.Code))
	}
	if result.Query == nil {
		return nil, errors.ErrUpstreamError.WithMessage("upstream geosearch response missing query block")
	}

	landmarks := make([]domain.Landmark, 0, len(result.Query.Geosearch))
	for _, item := range result.Query.Geosearch {
		landmarks = append(landmarks, domain.Landmark{
			PageID:  item.PageID,
			Title:   item.Title,
			Lat:     item.Lat,
			Lon:     item.Lon,
			Dist:    item.Dist,
			Primary: item.Primary,
		})
	}

	c.logger.Debug("Geosearch completed",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Float64("radius", radius),
		zap.Int("results", len(landmarks)))

	return landmarks, nil
}

// Detail fetches the intro extract, thumbnail and canonical URL for one
// page. A page the upstream marks missing maps to ErrLandmarkNotFound.
func (c *client) Detail(ctx context.Context, pageID int64) (*domain.LandmarkDetail, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("pageids", strconv.FormatInt(pageID, 10))
	params.Set("prop", "extracts|pageimages|info")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("piprop", "thumbnail")
	params.Set("pithumbsize", strconv.Itoa(c.thumbSize))
	params.Set("inprop", "url")
	params.Set("format", "json")

	var result detailResponse
	if err := c.call(ctx, params, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		c.logger.Error("Upstream returned API error",
			zap.String("code", result.Error.Code),
			zap.String("info", result.Error.Info))
		return nil, errors.ErrUpstreamError.WithMessage(
			fmt.Sprintf("upstream rejected detail query: %s", result.Error.Code))
	}
	if result.Query == nil {
		return nil, errors.ErrLandmarkNotFound
	}

	page, ok := result.Query.Pages[strconv.FormatInt(pageID, 10)]
	if !ok || page.Missing != nil {
		return nil, errors.ErrLandmarkNotFound
	}

	detail := &domain.LandmarkDetail{
		PageID:    page.PageID,
		Title:     page.Title,
		Extract:   page.Extract,
		Thumbnail: page.Thumbnail,
		URL:       page.FullURL,
	}

	c.logger.Debug("Detail fetched",
		zap.Int64("pageid", pageID),
		zap.Bool("has_extract", detail.Extract != nil),
		zap.Bool("has_thumbnail", detail.Thumbnail != nil))

	return detail, nil
}

// call performs one upstream GET and decodes the JSON envelope. Transport
// failures and non-2xx statuses surface as UPSTREAM_ERROR; no retries at
// this layer.
func (c *client) call(ctx context.Context, params url.Values, out interface{}) error {
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create upstream request", zap.Error(err))
		return errors.ErrUpstreamError.WithMessage("failed to create upstream request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Upstream request failed", zap.Error(err))
		return errors.ErrUpstreamError.WithMessage(fmt.Sprintf("upstream unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Upstream returned non-OK status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return errors.ErrUpstreamError.WithMessage(
			fmt.Sprintf("upstream responded with status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode upstream response", zap.Error(err))
		return errors.ErrUpstreamError.WithMessage("failed to decode upstream response")
	}

	c.logger.Debug("Upstream call completed",
		zap.Duration("elapsed", time.Since(start)))

	return nil
}
