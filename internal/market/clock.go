package market

import (
	"fmt"
	"time"

	"virtual-energy-trader/internal/model"
)

// Clock tracks the simulation's logical time and phase, decoupled from the
// wall clock. It only moves when an operation moves it.
//
// Invariants: in BIDDING the simulated time is on biddingDate, in TRADING
// it is on deliveryDate; deliveryDate = biddingDate + 1 day; the bid cutoff
// is fixed on biddingDate.
type Clock struct {
	phase        model.Phase
	now          time.Time
	biddingDate  time.Time
	deliveryDate time.Time
	cutoff       time.Time
	startHour    int
}

// NewClock starts a clock in BIDDING at startHour on the day before
// deliveryDate, with the cutoff at cutoffHour on that same bidding day.
func NewClock(deliveryDate time.Time, startHour, cutoffHour int) (*Clock, error) {
	if startHour < 0 || startHour > 23 || cutoffHour < 0 || cutoffHour > 23 {
		return nil, fmt.Errorf("start hour %d / cutoff hour %d out of range", startHour, cutoffHour)
	}
	delivery := midnightUTC(deliveryDate)
	bidding := delivery.AddDate(0, 0, -1)
	return &Clock{
		phase:        model.PhaseBidding,
		now:          bidding.Add(time.Duration(startHour) * time.Hour),
		biddingDate:  bidding,
		deliveryDate: delivery,
		cutoff:       bidding.Add(time.Duration(cutoffHour) * time.Hour),
		startHour:    startHour,
	}, nil
}

func (c *Clock) Phase() model.Phase     { return c.phase }
func (c *Clock) Now() time.Time         { return c.now }
func (c *Clock) BiddingDate() time.Time { return c.biddingDate }
func (c *Clock) DeliveryDate() time.Time {
	return c.deliveryDate
}
func (c *Clock) Cutoff() time.Time { return c.cutoff }

// CanPlaceBids reports whether new bids are accepted: BIDDING phase and
// strictly before the cutoff.
func (c *Clock) CanPlaceBids() bool {
	return c.phase == model.PhaseBidding && c.now.Before(c.cutoff)
}

// SecondsToCutoff is the remaining bidding window, clamped to zero.
func (c *Clock) SecondsToCutoff() int64 {
	d := c.cutoff.Sub(c.now)
	if d < 0 {
		return 0
	}
	return int64(d.Seconds())
}

// EnterTrading moves the clock to 00:00 UTC on the delivery date.
func (c *Clock) EnterTrading() {
	c.phase = model.PhaseTrading
	c.now = c.deliveryDate
}

// EnterBidding moves the clock back to the bidding start hour on the
// bidding date.
func (c *Clock) EnterBidding() {
	c.phase = model.PhaseBidding
	c.now = c.biddingDate.Add(time.Duration(c.startHour) * time.Hour)
}

// SetTimeOfDay changes the simulated time of day without touching phase or
// date. Test hook only; it can move the clock past the cutoff but never
// across a date boundary.
func (c *Clock) SetTimeOfDay(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return newError(CodeInvalidHour, fmt.Sprintf("hour %d out of range", hour))
	}
	if minute < 0 || minute > 59 {
		return newError(CodeInvalidHour, fmt.Sprintf("minute %d out of range", minute))
	}
	c.now = midnightUTC(c.now).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return nil
}
