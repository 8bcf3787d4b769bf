package model

import "time"

// GridStatusLMPResponse matches the JSON shape returned by the Grid Status
// dataset query endpoints (and the canned fixture files used offline).
type GridStatusLMPResponse struct {
	StatusCode int           `json:"status_code"`
	Data       []LMPInterval `json:"data"`
}

// LMPInterval is one interval row from a Grid Status LMP dataset.
// Timestamps arrive as RFC3339 strings with offsets.
type LMPInterval struct {
	IntervalStartUTC time.Time `json:"interval_start_utc"`
	IntervalEndUTC   time.Time `json:"interval_end_utc"`

	Market       string `json:"market"`
	Location     string `json:"location"`
	LocationType string `json:"location_type"`

	// LMP in $/MWh.
	LMP float64 `json:"lmp"`
}

func (i LMPInterval) Duration() time.Duration {
	return i.IntervalEndUTC.Sub(i.IntervalStartUTC)
}
