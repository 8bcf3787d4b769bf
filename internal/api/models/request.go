package models

// SubmitBidRequest is the body for POST /api/v1/bids.
type SubmitBidRequest struct {
	ParticipantID string  `json:"participant_id" binding:"required"`
	Hour          *int    `json:"hour" binding:"required"`
	Side          string  `json:"side" binding:"required"`
	Price         float64 `json:"price" binding:"required"`
	Quantity      float64 `json:"quantity" binding:"required"`
}

// BulkSubmitRequest is the body for POST /api/v1/bids/bulk.
// Batches are capped server-side (10 entries by default).
type BulkSubmitRequest struct {
	Entries []SubmitBidRequest `json:"entries" binding:"required"`
}

// SetTimeRequest is the body for POST /api/v1/simulation/time.
type SetTimeRequest struct {
	Hour   *int `json:"hour" binding:"required"`
	Minute *int `json:"minute" binding:"required"`
}
