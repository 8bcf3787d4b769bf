package models

import "time"

// StatusResponse mirrors the simulation status snapshot.
type StatusResponse struct {
	Phase           string    `json:"phase"`
	CanPlaceBids    bool      `json:"can_place_bids"`
	SecondsToCutoff int64     `json:"seconds_to_cutoff"`
	BiddingDate     string    `json:"bidding_date"`
	DeliveryDate    string    `json:"delivery_date"`
	DataInitialized bool      `json:"data_initialized"`
	SimulatedTime   time.Time `json:"simulated_time"`
}

// InitializeResponse reports what initialize loaded.
type InitializeResponse struct {
	Initialized    bool   `json:"initialized"`
	AlreadyLoaded  bool   `json:"already_loaded"`
	ReferenceDate  string `json:"reference_date"`
	DayAheadPoints int    `json:"day_ahead_points"`
	RealTimePoints int    `json:"real_time_points"`
	Source         string `json:"source"`
}

// AdvanceResponse reports one clearing run.
type AdvanceResponse struct {
	ClearedCount  int       `json:"cleared_count"`
	Executed      int       `json:"executed"`
	Rejected      int       `json:"rejected"`
	SimulatedTime time.Time `json:"simulated_time"`
}

// SimulatedTimeResponse is shared by back-to-bidding and set-time.
type SimulatedTimeResponse struct {
	SimulatedTime time.Time `json:"simulated_time"`
}

// ResetResponse reports what reset dropped.
type ResetResponse struct {
	ClearedBids   int `json:"cleared_bids"`
	ClearedTrades int `json:"cleared_trades"`
}

// SubmitBidResponse returns the new bid's id.
type SubmitBidResponse struct {
	BidID string `json:"bid_id"`
}

// BulkSubmitResponse returns the new bids' ids in submission order.
type BulkSubmitResponse struct {
	BidIDs []string `json:"bid_ids"`
}

// BidView is one bid in a listing.
type BidView struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	Hour          int       `json:"hour"`
	Side          string    `json:"side"`
	LimitPrice    float64   `json:"limit_price"`
	Quantity      float64   `json:"quantity"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Status        string    `json:"status"`
	ClearingPrice *float64  `json:"clearing_price,omitempty"`
}

// ListBidsResponse wraps a participant's bids.
type ListBidsResponse struct {
	Bids []BidView `json:"bids"`
}

// TradeView is one settled trade in a listing.
type TradeView struct {
	ID              string    `json:"id"`
	BidID           string    `json:"bid_id"`
	ParticipantID   string    `json:"participant_id"`
	Hour            int       `json:"hour"`
	Side            string    `json:"side"`
	ExecutedPrice   float64   `json:"executed_price"`
	Quantity        float64   `json:"quantity"`
	Timestamp       time.Time `json:"timestamp"`
	RealTimeAverage *float64  `json:"real_time_average,omitempty"`
	PnL             *float64  `json:"pnl,omitempty"`
}

// ListTradesResponse wraps all trades with the running total.
type ListTradesResponse struct {
	Trades   []TradeView `json:"trades"`
	TotalPnL float64     `json:"total_pnl"`
}

// SeriesStatsView summarizes one price series.
type SeriesStatsView struct {
	Latest float64 `json:"latest"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Count  int     `json:"count"`
}

// SummaryResponse is the market summary.
type SummaryResponse struct {
	DayAhead SeriesStatsView `json:"day_ahead"`
	RealTime SeriesStatsView `json:"real_time"`
	Spread   float64         `json:"spread"`
}

// PricePointView is one chart point.
type PricePointView struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// TimeseriesResponse carries both chart series.
type TimeseriesResponse struct {
	ReferenceDate string           `json:"reference_date"`
	DayAhead      []PricePointView `json:"day_ahead"`
	RealTime      []PricePointView `json:"real_time"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
