package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/landmark-service/internal/config"
	apperrors "github.com/landmark-service/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) *config.UpstreamConfig {
	return &config.UpstreamConfig{
		BaseURL:        baseURL,
		UserAgent:      "landmark-service-test/1.0",
		RequestTimeout: 5 * time.Second,
		SearchLimit:    50,
		ThumbnailSize:  400,
	}
}

func TestClient_Search(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful search preserves order and optional fields", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"list":     r.URL.Query().Get("list"),
				"gscoord":  r.URL.Query().Get("gscoord"),
				"gsradius": r.URL.Query().Get("gsradius"),
				"gslimit":  r.URL.Query().Get("gslimit"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"batchcomplete": "",
				"query": {
					"geosearch": [
						{"pageid": 100, "ns": 0, "title": "Statue of Liberty", "lat": 40.6892, "lon": -74.0445, "dist": 120.5, "primary": ""},
						{"pageid": 200, "ns": 0, "title": "Ellis Island", "lat": 40.6995, "lon": -74.0396}
					]
				}
			}`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		landmarks, err := c.Search(context.Background(), 40.7128, -74.0060, 5000)
		require.NoError(t, err)
		require.Len(t, landmarks, 2)

		assert.Equal(t, "geosearch", gotQuery["list"])
		assert.Equal(t, "40.712800|-74.006000", gotQuery["gscoord"])
		assert.Equal(t, "5000", gotQuery["gsradius"])
		assert.Equal(t, "50", gotQuery["gslimit"])

		// Upstream order is kept as-is.
		assert.Equal(t, int64(100), landmarks[0].PageID)
		assert.Equal(t, "Statue of Liberty", landmarks[0].Title)
		require.NotNil(t, landmarks[0].Dist)
		assert.Equal(t, 120.5, *landmarks[0].Dist)
		require.NotNil(t, landmarks[0].Primary)

		// Absent upstream fields stay absent.
		assert.Equal(t, int64(200), landmarks[1].PageID)
		assert.Nil(t, landmarks[1].Dist)
		assert.Nil(t, landmarks[1].Primary)
	})

	t.Run("empty result set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"batchcomplete": "", "query": {"geosearch": []}}`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		landmarks, err := c.Search(context.Background(), 0, 0, 1000)
		require.NoError(t, err)
		assert.Empty(t, landmarks)
	})

	t.Run("non-OK status surfaces as upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		landmarks, err := c.Search(context.Background(), 40.7, -74.0, 5000)
		assert.Nil(t, landmarks)
		require.Error(t, err)

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrUpstreamError.Code, appErr.Code)
		assert.Contains(t, appErr.Message, "503")
	})

	t.Run("api-level error surfaces as upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": {"code": "invalidparammix", "info": "bad params"}}`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		_, err := c.Search(context.Background(), 40.7, -74.0, 5000)
		require.Error(t, err)

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrUpstreamError.Code, appErr.Code)
		assert.Contains(t, appErr.Message, "invalidparammix")
	})

	t.Run("transport failure surfaces as upstream error", func(t *testing.T) {
		c := NewClient(testConfig("http://127.0.0.1:1"), logger)

		_, err := c.Search(context.Background(), 40.7, -74.0, 5000)
		require.Error(t, err)

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrUpstreamError.Code, appErr.Code)
	})
}

func TestClient_Detail(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful detail with all optional fields", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"pageids":     r.URL.Query().Get("pageids"),
				"prop":        r.URL.Query().Get("prop"),
				"pithumbsize": r.URL.Query().Get("pithumbsize"),
				"inprop":      r.URL.Query().Get("inprop"),
				"explaintext": r.URL.Query().Get("explaintext"),
			}
			w.Write([]byte(`{
				"query": {
					"pages": {
						"100": {
							"pageid": 100,
							"title": "Statue of Liberty",
							"extract": "A colossal neoclassical sculpture.",
							"thumbnail": {"source": "https://upload.example/thumb.jpg", "width": 400, "height": 300},
							"fullurl": "https://en.wikipedia.org/wiki/Statue_of_Liberty"
						}
					}
				}
			}`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		detail, err := c.Detail(context.Background(), 100)
		require.NoError(t, err)
		require.NotNil(t, detail)

		assert.Equal(t, "100", gotQuery["pageids"])
		assert.Equal(t, "extracts|pageimages|info", gotQuery["prop"])
		assert.Equal(t, "400", gotQuery["pithumbsize"])
		assert.Equal(t, "url", gotQuery["inprop"])
		assert.Equal(t, "1", gotQuery["explaintext"])

		assert.Equal(t, int64(100), detail.PageID)
		assert.Equal(t, "Statue of Liberty", detail.Title)
		require.NotNil(t, detail.Extract)
		assert.Equal(t, "A colossal neoclassical sculpture.", *detail.Extract)
		require.NotNil(t, detail.Thumbnail)
		assert.Equal(t, 400, detail.Thumbnail.Width)
		require.NotNil(t, detail.URL)
	})

	t.Run("absent optional fields stay absent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"query": {"pages": {"200": {"pageid": 200, "title": "Ellis Island"}}}}`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		detail, err := c.Detail(context.Background(), 200)
		require.NoError(t, err)
		assert.Nil(t, detail.Extract)
		assert.Nil(t, detail.Thumbnail)
		assert.Nil(t, detail.URL)
	})

	t.Run("missing page maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"query": {"pages": {"999": {"pageid": 999, "missing": ""}}}}`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		detail, err := c.Detail(context.Background(), 999)
		assert.Nil(t, detail)
		assert.Equal(t, apperrors.ErrLandmarkNotFound, err)
	})

	t.Run("page absent from map maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"query": {"pages": {}}}`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		_, err := c.Detail(context.Background(), 123)
		assert.Equal(t, apperrors.ErrLandmarkNotFound, err)
	})

	t.Run("sends configured user agent", func(t *testing.T) {
		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte(`{"query": {"pages": {"1": {"pageid": 1, "title": "X"}}}}`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		_, err := c.Detail(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "landmark-service-test/1.0", gotUA)
	})
}
