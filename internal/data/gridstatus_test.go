package data

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-energy-trader/internal/model"
)

const testAPIKey = "test-api-key-0123456789"

func fixtureResponse(location string, hours int) model.GridStatusLMPResponse {
	resp := model.GridStatusLMPResponse{StatusCode: 200}
	for h := 0; h < hours; h++ {
		start := testDate.Add(time.Duration(h) * time.Hour)
		resp.Data = append(resp.Data, model.LMPInterval{
			IntervalStartUTC: start,
			IntervalEndUTC:   start.Add(time.Hour),
			Market:           "DAY_AHEAD_HOURLY",
			Location:         location,
			LocationType:     "HUB",
			LMP:              40 + float64(h),
		})
	}
	return resp
}

func TestFetchDayAhead(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.Header.Get("x-api-key"))
		assert.Equal(t, "/v1/datasets/pjm_lmp_day_ahead_hourly/query", r.URL.Path)
		gotQuery = map[string]string{
			"filter_column": r.URL.Query().Get("filter_column"),
			"filter_value":  r.URL.Query().Get("filter_value"),
			"timezone":      r.URL.Query().Get("timezone"),
		}
		json.NewEncoder(w).Encode(fixtureResponse("WESTERN HUB", 24))
	}))
	defer srv.Close()

	c := NewGridStatusClient(testAPIKey, srv.URL)
	points, err := c.FetchDayAhead(testDate)
	require.NoError(t, err)
	require.Len(t, points, 24)
	assert.Equal(t, testDate, points[0].Timestamp)
	assert.True(t, points[0].Price.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, map[string]string{
		"filter_column": "location_type",
		"filter_value":  "HUB",
		"timezone":      "UTC",
	}, gotQuery)
}

func TestFetchFiltersToFirstLocation(t *testing.T) {
	resp := fixtureResponse("WESTERN HUB", 3)
	other := fixtureResponse("EASTERN HUB", 3)
	resp.Data = append(resp.Data, other.Data...)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewGridStatusClient(testAPIKey, srv.URL)
	points, err := c.FetchDayAhead(testDate)
	require.NoError(t, err)
	assert.Len(t, points, 3)
}

func TestQueryErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		code   string
	}{
		{"unauthorized", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", http.StatusForbidden, "INVALID_API_KEY"},
		{"rate limited", http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"server error", http.StatusInternalServerError, "API_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.status == http.StatusTooManyRequests {
					w.Header().Set("Retry-After", "30")
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c := NewGridStatusClient(testAPIKey, srv.URL)
			_, err := c.FetchDayAhead(testDate)
			require.Error(t, err)
			var gsErr *GridStatusError
			require.ErrorAs(t, err, &gsErr)
			assert.Equal(t, tc.code, gsErr.Code)
			assert.Equal(t, tc.status, gsErr.StatusCode)
			if tc.status == http.StatusTooManyRequests {
				assert.Equal(t, "30", gsErr.RetryAfter)
			}
		})
	}
}

func TestAPIKeyValidation(t *testing.T) {
	c := NewGridStatusClient("", "http://unused")
	_, err := c.FetchDayAhead(testDate)
	var gsErr *GridStatusError
	require.ErrorAs(t, err, &gsErr)
	assert.Equal(t, "MISSING_API_KEY", gsErr.Code)

	c = NewGridStatusClient("short", "http://unused")
	_, err = c.FetchDayAhead(testDate)
	require.ErrorAs(t, err, &gsErr)
	assert.Equal(t, "INVALID_API_KEY_FORMAT", gsErr.Code)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	daPath := filepath.Join(dir, "da.json")
	rtPath := filepath.Join(dir, "rt.json")

	writeFixture := func(path string, resp model.GridStatusLMPResponse) {
		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, raw, 0o644))
	}
	writeFixture(daPath, fixtureResponse("WESTERN HUB", 24))
	writeFixture(rtPath, fixtureResponse("WESTERN HUB", 12))

	f := &FileSource{DayAheadPath: daPath, RealTimePath: rtPath}
	assert.Equal(t, "file", f.Name())

	da, err := f.FetchDayAhead(testDate)
	require.NoError(t, err)
	assert.Len(t, da, 24)
	rt, err := f.FetchRealTime(testDate)
	require.NoError(t, err)
	assert.Len(t, rt, 12)

	t.Run("missing file", func(t *testing.T) {
		bad := &FileSource{DayAheadPath: filepath.Join(dir, "nope.json")}
		_, err := bad.FetchDayAhead(testDate)
		assert.Error(t, err)
	})

	t.Run("empty data", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.json")
		writeFixture(empty, model.GridStatusLMPResponse{StatusCode: 200})
		bad := &FileSource{DayAheadPath: empty}
		_, err := bad.FetchDayAhead(testDate)
		assert.Error(t, err)
	})
}

func TestGenerateCacheKey(t *testing.T) {
	a := GenerateCacheKey("ds", testDate, testDate.Add(time.Hour))
	b := GenerateCacheKey("ds", testDate, testDate.Add(time.Hour))
	c := GenerateCacheKey("other", testDate, testDate.Add(time.Hour))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
