package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"virtual-energy-trader/internal/model"
)

// PJM hub LMP datasets used by the simulation.
const (
	DefaultDayAheadDataset = "pjm_lmp_day_ahead_hourly"
	DefaultRealTimeDataset = "pjm_lmp_real_time_5_min"
	DefaultLocationType    = "HUB"
)

// GridStatusClient fetches LMP series from the Grid Status API.
type GridStatusClient struct {
	APIKey          string
	BaseURL         string
	DayAheadDataset string
	RealTimeDataset string
	LocationType    string
	Client          *http.Client
}

// NewGridStatusClient creates a Grid Status API client. An empty baseURL
// defaults to "https://api.gridstatus.io".
func NewGridStatusClient(apiKey, baseURL string) *GridStatusClient {
	if baseURL == "" {
		baseURL = "https://api.gridstatus.io"
	}
	return &GridStatusClient{
		APIKey:          apiKey,
		BaseURL:         baseURL,
		DayAheadDataset: DefaultDayAheadDataset,
		RealTimeDataset: DefaultRealTimeDataset,
		LocationType:    DefaultLocationType,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name identifies the client in initialize responses and logs.
func (c *GridStatusClient) Name() string { return "gridstatus" }

// GridStatusError represents an error from the Grid Status API.
type GridStatusError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate-limit errors
}

func (e *GridStatusError) Error() string {
	return e.Message
}

// FetchDayAhead returns the 24 hourly day-ahead points for a delivery date.
func (c *GridStatusClient) FetchDayAhead(date time.Time) ([]model.PricePoint, error) {
	start := midnight(date)
	return c.fetchSeries(c.DayAheadDataset, start, start.Add(24*time.Hour))
}

// FetchRealTime returns the five-minute real-time points for a delivery
// date. The query window extends a few hours into the next day; callers
// filter to the delivery date.
func (c *GridStatusClient) FetchRealTime(date time.Time) ([]model.PricePoint, error) {
	start := midnight(date)
	return c.fetchSeries(c.RealTimeDataset, start, start.Add(30*time.Hour))
}

func (c *GridStatusClient) fetchSeries(datasetID string, start, end time.Time) ([]model.PricePoint, error) {
	resp, err := c.query(datasetID, start, end)
	if err != nil {
		return nil, err
	}
	return hubSeries(resp.Data), nil
}

// query performs one dataset query. Responses may come from the
// development-only cache when it is enabled.
func (c *GridStatusClient) query(datasetID string, start, end time.Time) (*model.GridStatusLMPResponse, error) {
	if err := c.validateAPIKey(); err != nil {
		return nil, err
	}
	if datasetID == "" {
		return nil, fmt.Errorf("dataset_id is required")
	}

	cacheKey := GenerateCacheKey(datasetID, start, end)
	if cache := GetCache(); cache != nil {
		if cached, found := cache.Get(cacheKey); found {
			log.Printf("[GridStatus] Cache hit: %d intervals (dataset=%s, start=%s, end=%s)",
				len(cached.Data), datasetID,
				start.Format("2006-01-02"), end.Format("2006-01-02"))
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + fmt.Sprintf("/v1/datasets/%s/query", datasetID))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("start_time", start.UTC().Format(time.RFC3339))
	q.Set("end_time", end.UTC().Format(time.RFC3339))
	q.Set("timezone", "UTC")
	q.Set("filter_column", "location_type")
	q.Set("filter_value", c.LocationType)
	u.RawQuery = q.Encode()

	log.Printf("[GridStatus] Request: GET %s (dataset=%s, start=%s, end=%s)",
		u.Path, datasetID, start.Format("2006-01-02"), end.Format("2006-01-02"))

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Accept", "application/json")

	startedAt := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startedAt)
	if err != nil {
		log.Printf("[GridStatus] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[GridStatus] Response: %d %s (duration: %v, dataset=%s)",
		resp.StatusCode, resp.Status, duration, datasetID)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusForbidden:
		return nil, &GridStatusError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &GridStatusError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusUnauthorized:
		return nil, &GridStatusError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Unauthorized: Invalid API key",
		}
	default:
		return nil, &GridStatusError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result model.GridStatusLMPResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("[GridStatus] Success: Received %d intervals (dataset=%s)", len(result.Data), datasetID)

	if cache := GetCache(); cache != nil {
		cache.Set(cacheKey, &result)
	}
	return &result, nil
}

func (c *GridStatusClient) validateAPIKey() error {
	if c.APIKey == "" {
		return &GridStatusError{
			Code:    "MISSING_API_KEY",
			Message: "API key is required",
		}
	}
	if len(c.APIKey) < 10 {
		return &GridStatusError{
			Code:    "INVALID_API_KEY_FORMAT",
			Message: "API key appears to be invalid (too short)",
		}
	}
	return nil
}

// hubSeries converts interval rows into price points, restricted to the
// first location seen. Multiple hubs can match the location_type filter;
// mixing them would duplicate timestamps.
func hubSeries(intervals []model.LMPInterval) []model.PricePoint {
	if len(intervals) == 0 {
		return nil
	}
	location := intervals[0].Location
	out := make([]model.PricePoint, 0, len(intervals))
	for _, it := range intervals {
		if it.Location != location {
			continue
		}
		out = append(out, model.PricePoint{
			Timestamp: it.IntervalStartUTC,
			Price:     decimal.NewFromFloat(it.LMP),
		})
	}
	log.Printf("[GridStatus] Using location %s: %d of %d intervals", location, len(out), len(intervals))
	return out
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
