package data

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"virtual-energy-trader/internal/model"
)

// Synthetic generates deterministic fallback price series when the live
// provider is unavailable. The same delivery date always yields the same
// series, so simulations stay reproducible without network access.
//
// The shape is a plausible PJM day: a base price with morning and evening
// peaks, plus seeded jitter. Real-time wobbles around the day-ahead curve.
type Synthetic struct {
	// BasePrice is the off-peak level in $/MWh. Defaults to 35.
	BasePrice float64
}

func (s *Synthetic) Name() string { return "synthetic" }

// FetchDayAhead generates 24 hourly points for the delivery date.
func (s *Synthetic) FetchDayAhead(date time.Time) ([]model.PricePoint, error) {
	rng := s.rng(date, 1)
	start := midnight(date)
	out := make([]model.PricePoint, 0, 24)
	for h := 0; h < 24; h++ {
		price := s.hourlyShape(h) + rng.Float64()*4 - 2
		out = append(out, model.PricePoint{
			Timestamp: start.Add(time.Duration(h) * time.Hour),
			Price:     decimal.NewFromFloat(price).Round(2),
		})
	}
	return out, nil
}

// FetchRealTime generates 288 five-minute points for the delivery date.
func (s *Synthetic) FetchRealTime(date time.Time) ([]model.PricePoint, error) {
	rng := s.rng(date, 2)
	start := midnight(date)
	out := make([]model.PricePoint, 0, 288)
	for i := 0; i < 288; i++ {
		ts := start.Add(time.Duration(i) * 5 * time.Minute)
		price := s.hourlyShape(ts.Hour()) + rng.Float64()*10 - 5
		out = append(out, model.PricePoint{
			Timestamp: ts,
			Price:     decimal.NewFromFloat(price).Round(2),
		})
	}
	return out, nil
}

// hourlyShape returns the deterministic daily price curve for an hour.
func (s *Synthetic) hourlyShape(hour int) float64 {
	base := s.BasePrice
	if base == 0 {
		base = 35
	}
	morning := 12 * math.Exp(-math.Pow(float64(hour)-8, 2)/8)
	evening := 20 * math.Exp(-math.Pow(float64(hour)-18, 2)/6)
	return base + morning + evening
}

// rng seeds a generator from the delivery date so the series is a pure
// function of (date, stream).
func (s *Synthetic) rng(date time.Time, stream int64) *rand.Rand {
	seed := midnight(date).Unix() + stream
	return rand.New(rand.NewSource(seed))
}
