package market

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"virtual-energy-trader/internal/model"
)

// SeriesStore holds the two read-only price series for one reference
// delivery date: 24 hourly day-ahead points and the five-minute real-time
// points. It is immutable after construction. The simulated delivery date
// is the same calendar date the series carry, so timestamps compare
// directly against the simulated clock.
type SeriesStore struct {
	deliveryDate time.Time
	dayAhead     []model.PricePoint
	realTime     []model.PricePoint
	byHour       [24]*decimal.Decimal
}

// NewSeriesStore validates and indexes the loaded series. The day-ahead
// series must cover all 24 hours of deliveryDate; the real-time series must
// be non-empty. Both are sorted chronologically.
func NewSeriesStore(deliveryDate time.Time, dayAhead, realTime []model.PricePoint) (*SeriesStore, error) {
	if len(dayAhead) == 0 {
		return nil, newError(CodeDataUnavailable, "day-ahead series is empty")
	}
	if len(realTime) == 0 {
		return nil, newError(CodeDataUnavailable, "real-time series is empty")
	}

	s := &SeriesStore{
		deliveryDate: midnightUTC(deliveryDate),
		dayAhead:     make([]model.PricePoint, len(dayAhead)),
		realTime:     make([]model.PricePoint, len(realTime)),
	}
	copy(s.dayAhead, dayAhead)
	copy(s.realTime, realTime)
	sort.Slice(s.dayAhead, func(i, j int) bool { return s.dayAhead[i].Timestamp.Before(s.dayAhead[j].Timestamp) })
	sort.Slice(s.realTime, func(i, j int) bool { return s.realTime[i].Timestamp.Before(s.realTime[j].Timestamp) })

	for i := range s.dayAhead {
		p := s.dayAhead[i]
		if !sameDay(p.Timestamp, s.deliveryDate) {
			continue
		}
		h := p.Timestamp.UTC().Hour()
		if s.byHour[h] == nil {
			price := p.Price
			s.byHour[h] = &price
		}
	}
	for h := 0; h < 24; h++ {
		if s.byHour[h] == nil {
			return nil, newError(CodeDataUnavailable,
				fmt.Sprintf("day-ahead series missing hour %d", h))
		}
	}
	return s, nil
}

// DeliveryDate returns the delivery date (midnight UTC).
func (s *SeriesStore) DeliveryDate() time.Time { return s.deliveryDate }

// DayAheadFor returns the day-ahead clearing price for a delivery hour.
func (s *SeriesStore) DayAheadFor(hour int) (decimal.Decimal, error) {
	if hour < 0 || hour > 23 {
		return decimal.Zero, newError(CodeInvalidHour, fmt.Sprintf("hour %d out of range", hour))
	}
	return *s.byHour[hour], nil
}

// DayAhead returns a copy of the full hourly series.
func (s *SeriesStore) DayAhead() []model.PricePoint {
	out := make([]model.PricePoint, len(s.dayAhead))
	copy(out, s.dayAhead)
	return out
}

// RealTime returns a copy of the full five-minute series.
func (s *SeriesStore) RealTime() []model.PricePoint {
	out := make([]model.PricePoint, len(s.realTime))
	copy(out, s.realTime)
	return out
}

// RealTimeThrough returns the delivery-day real-time points with
// timestamp <= until. Used by the timeseries endpoint to show market
// progression up to the simulated current time.
func (s *SeriesStore) RealTimeThrough(until time.Time) []model.PricePoint {
	out := make([]model.PricePoint, 0, len(s.realTime))
	for _, p := range s.realTime {
		if !sameDay(p.Timestamp, s.deliveryDate) {
			continue
		}
		if p.Timestamp.After(until) {
			break
		}
		out = append(out, p)
	}
	return out
}

// RealTimeForHour returns the delivery-day real-time points inside
// [hour:00, hour:59] with timestamp <= until. A zero until returns the
// whole hour.
func (s *SeriesStore) RealTimeForHour(hour int, until time.Time) []model.PricePoint {
	out := make([]model.PricePoint, 0, 12)
	for _, p := range s.realTime {
		t := p.Timestamp.UTC()
		if !sameDay(t, s.deliveryDate) || t.Hour() != hour {
			continue
		}
		if !until.IsZero() && t.After(until) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SeriesStats summarizes one series for the market summary endpoint.
type SeriesStats struct {
	Latest decimal.Decimal
	Min    decimal.Decimal
	Max    decimal.Decimal
	Mean   decimal.Decimal
	Count  int
}

// Stats computes latest/min/max/mean over a point slice. Returns zero
// stats for an empty slice.
func Stats(points []model.PricePoint) SeriesStats {
	st := SeriesStats{Count: len(points)}
	if len(points) == 0 {
		return st
	}
	st.Latest = points[len(points)-1].Price
	st.Min = points[0].Price
	st.Max = points[0].Price
	sum := decimal.Zero
	for _, p := range points {
		if p.Price.LessThan(st.Min) {
			st.Min = p.Price
		}
		if p.Price.GreaterThan(st.Max) {
			st.Max = p.Price
		}
		sum = sum.Add(p.Price)
	}
	st.Mean = sum.Div(decimal.NewFromInt(int64(len(points))))
	return st
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
