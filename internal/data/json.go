package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"virtual-energy-trader/internal/model"
)

// FileSource serves price series from canned Grid Status JSON responses,
// for offline runs and fixtures. It satisfies the same provider contract
// as the live client.
type FileSource struct {
	DayAheadPath string
	RealTimePath string
}

func (f *FileSource) Name() string { return "file" }

// FetchDayAhead loads the hourly series from DayAheadPath.
func (f *FileSource) FetchDayAhead(_ time.Time) ([]model.PricePoint, error) {
	return loadSeriesFile(f.DayAheadPath)
}

// FetchRealTime loads the five-minute series from RealTimePath.
func (f *FileSource) FetchRealTime(_ time.Time) ([]model.PricePoint, error) {
	return loadSeriesFile(f.RealTimePath)
}

func loadSeriesFile(path string) ([]model.PricePoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read series file: %w", err)
	}
	var resp model.GridStatusLMPResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse series file: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("series file %s contains no intervals", path)
	}
	return hubSeries(resp.Data), nil
}
