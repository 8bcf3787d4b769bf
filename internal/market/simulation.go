package market

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"virtual-energy-trader/internal/model"
	"virtual-energy-trader/internal/recorder"
)

// Provider supplies the two price series for a delivery date.
type Provider interface {
	FetchDayAhead(date time.Time) ([]model.PricePoint, error)
	FetchRealTime(date time.Time) ([]model.PricePoint, error)
	Name() string
}

// Options configures a Simulation instance.
type Options struct {
	// DeliveryDate is the reference delivery day (D0). Bidding happens on
	// the day before.
	DeliveryDate time.Time
	// StartHour is the bidding-day time of day the clock starts (and
	// returns to). Defaults to 10.
	StartHour int
	// CutoffHour is the bidding-day hour after which submissions are
	// rejected. Defaults to 11.
	CutoffHour int
	// BatchLimit caps one bulk submission. Defaults to 10. The cap is per
	// batch; nothing is enforced across batches.
	BatchLimit int
	// Provider is the primary market-data source.
	Provider Provider
	// Fallback is used when the primary provider fails. Typically the
	// deterministic synthetic generator.
	Fallback Provider
	// Recorder receives clearing history. Defaults to a no-op.
	Recorder recorder.Recorder
}

// Simulation owns the whole market state: clock, price series, bid book
// and trade list. Every public operation takes the one coarse lock, so
// submissions cannot race a phase transition.
//
// Instances are independent; nothing in this package is global state.
type Simulation struct {
	mu sync.Mutex

	clock  *Clock
	store  *SeriesStore
	book   *Book
	trades []model.Trade

	provider Provider
	fallback Provider
	rec      recorder.Recorder
	source   string

	batchLimit int
}

func NewSimulation(opts Options) (*Simulation, error) {
	if opts.StartHour == 0 {
		opts.StartHour = 10
	}
	if opts.CutoffHour == 0 {
		opts.CutoffHour = 11
	}
	if opts.BatchLimit == 0 {
		opts.BatchLimit = 10
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.DeliveryDate.IsZero() {
		return nil, fmt.Errorf("delivery date is required")
	}
	clock, err := NewClock(opts.DeliveryDate, opts.StartHour, opts.CutoffHour)
	if err != nil {
		return nil, err
	}
	return &Simulation{
		clock:      clock,
		book:       NewBook(),
		provider:   opts.Provider,
		fallback:   opts.Fallback,
		rec:        opts.Recorder,
		batchLimit: opts.BatchLimit,
	}, nil
}

// InitializeResult reports what Initialize loaded.
type InitializeResult struct {
	Initialized    bool
	Already        bool
	DeliveryDate   time.Time
	DayAheadPoints int
	RealTimePoints int
	Source         string
}

// Initialize loads the price series for the configured delivery date.
// Idempotent: once loaded, further calls return the current state without
// refetching. Provider failure falls back to the deterministic synthetic
// series; only a fallback failure is fatal.
func (s *Simulation) Initialize() (*InitializeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return &InitializeResult{
			Initialized:    true,
			Already:        true,
			DeliveryDate:   s.clock.DeliveryDate(),
			DayAheadPoints: len(s.store.DayAhead()),
			RealTimePoints: len(s.store.RealTime()),
			Source:         s.source,
		}, nil
	}

	date := s.clock.DeliveryDate()
	store, source, err := s.loadSeries(date)
	if err != nil {
		return nil, err
	}
	s.store = store
	s.source = source
	log.Printf("[Sim] initialized for %s: %d day-ahead, %d real-time points (source=%s)",
		date.Format("2006-01-02"), len(store.DayAhead()), len(store.RealTime()), source)

	return &InitializeResult{
		Initialized:    true,
		DeliveryDate:   date,
		DayAheadPoints: len(store.DayAhead()),
		RealTimePoints: len(store.RealTime()),
		Source:         source,
	}, nil
}

func (s *Simulation) loadSeries(date time.Time) (*SeriesStore, string, error) {
	if s.provider != nil {
		store, err := fetchInto(s.provider, date)
		if err == nil {
			return store, s.provider.Name(), nil
		}
		log.Printf("[Sim] provider %s failed (%v), trying fallback", s.provider.Name(), err)
	}
	if s.fallback == nil {
		return nil, "", newError(CodeDataUnavailable, "no market data source available")
	}
	store, err := fetchInto(s.fallback, date)
	if err != nil {
		return nil, "", fmt.Errorf("fallback series failed: %w", err)
	}
	return store, s.fallback.Name(), nil
}

func fetchInto(p Provider, date time.Time) (*SeriesStore, error) {
	da, err := p.FetchDayAhead(date)
	if err != nil {
		return nil, err
	}
	rt, err := p.FetchRealTime(date)
	if err != nil {
		return nil, err
	}
	return NewSeriesStore(date, da, rt)
}

// Status is the snapshot returned to the HTTP layer.
type Status struct {
	Phase           model.Phase
	CanPlaceBids    bool
	SecondsToCutoff int64
	BiddingDate     time.Time
	DeliveryDate    time.Time
	DataInitialized bool
	SimulatedTime   time.Time
}

func (s *Simulation) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Phase:           s.clock.Phase(),
		CanPlaceBids:    s.store != nil && s.clock.CanPlaceBids(),
		SecondsToCutoff: s.clock.SecondsToCutoff(),
		BiddingDate:     s.clock.BiddingDate(),
		DeliveryDate:    s.clock.DeliveryDate(),
		DataInitialized: s.store != nil,
		SimulatedTime:   s.clock.Now(),
	}
}

// SubmitBid validates and appends a single bid. Validation order is fixed:
// hour, price, quantity, side, then the bidding window.
func (s *Simulation) SubmitBid(participantID string, hour int, side model.Side, price, quantity decimal.Decimal) (*model.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(participantID, hour, side, price, quantity)
}

// SubmitBids appends a bulk batch atomically: the whole batch is validated
// before any bid lands in the book. Batches are capped at BatchLimit
// entries.
func (s *Simulation) SubmitBids(entries []BidEntry) ([]model.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) == 0 {
		return nil, newError(CodeInvalidQuantity, "batch is empty")
	}
	if len(entries) > s.batchLimit {
		return nil, newError(CodeBatchTooLarge,
			fmt.Sprintf("batch of %d exceeds limit of %d", len(entries), s.batchLimit))
	}
	for _, e := range entries {
		if err := s.validateLocked(e.Hour, e.Side, e.Price, e.Quantity); err != nil {
			return nil, err
		}
	}
	out := make([]model.Bid, 0, len(entries))
	for _, e := range entries {
		bid, err := s.submitLocked(e.ParticipantID, e.Hour, e.Side, e.Price, e.Quantity)
		if err != nil {
			return nil, err
		}
		out = append(out, *bid)
	}
	return out, nil
}

// BidEntry is one row of a bulk submission.
type BidEntry struct {
	ParticipantID string
	Hour          int
	Side          model.Side
	Price         decimal.Decimal
	Quantity      decimal.Decimal
}

func (s *Simulation) validateLocked(hour int, side model.Side, price, quantity decimal.Decimal) error {
	if hour < 0 || hour > 23 {
		return newError(CodeInvalidHour, fmt.Sprintf("hour must be 0-23, got %d", hour))
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return newError(CodeInvalidPrice, "price must be positive")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return newError(CodeInvalidQuantity, "quantity must be positive")
	}
	if !side.Valid() {
		return newError(CodeInvalidSide, fmt.Sprintf("side must be BUY or SELL, got %q", side))
	}
	if s.store == nil {
		return newError(CodeNotInitialized, "market data not initialized")
	}
	if !s.clock.CanPlaceBids() {
		return newError(CodeBiddingClosed, "bidding window is closed")
	}
	return nil
}

func (s *Simulation) submitLocked(participantID string, hour int, side model.Side, price, quantity decimal.Decimal) (*model.Bid, error) {
	if err := s.validateLocked(hour, side, price, quantity); err != nil {
		return nil, err
	}
	bid := &model.Bid{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		Hour:          hour,
		Side:          side,
		LimitPrice:    price,
		Quantity:      quantity,
		SubmittedAt:   s.clock.Now(),
		Status:        model.StatusPending,
	}
	s.book.Append(bid)
	return bid, nil
}

// Bids returns all bids for one participant.
func (s *Simulation) Bids(participantID string) []model.Bid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.ByParticipant(participantID)
}

// AdvanceResult reports one advanceToTradingDay run.
type AdvanceResult struct {
	ClearedCount  int
	Executed      int
	Rejected      int
	SimulatedTime time.Time
}

// Advance clears every pending bid against the day-ahead series and moves
// the clock to 00:00 UTC on the delivery date. With zero pending bids it
// fails with NOTHING_TO_CLEAR so callers can tell "nothing to do" from
// success. Clearing either applies to the whole pending set or not at all.
func (s *Simulation) Advance() (*AdvanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, newError(CodeNotInitialized, "market data not initialized")
	}
	if s.clock.Phase() != model.PhaseBidding {
		return nil, newError(CodeInvalidTransition, "advance is only allowed from the bidding phase")
	}
	pending := s.book.Pending()
	if len(pending) == 0 {
		return nil, newError(CodeNothingToClear, "no pending bids to clear")
	}

	clearedAt := s.clock.Now()
	res, err := clearPendingBids(pending, s.store, clearedAt)
	if err != nil {
		return nil, err
	}
	s.trades = append(s.trades, res.Trades...)
	s.clock.EnterTrading()

	evt := &recorder.ClearingEvent{ClearedAt: clearedAt, Trades: res.Trades}
	for _, b := range pending {
		evt.Bids = append(evt.Bids, *b)
	}
	if err := s.rec.RecordClearing(evt); err != nil {
		log.Printf("[Sim] recorder failed: %v", err)
	}

	log.Printf("[Sim] cleared %d bids: %d executed, %d rejected", len(pending), res.Executed, res.Rejected)
	return &AdvanceResult{
		ClearedCount:  len(pending),
		Executed:      res.Executed,
		Rejected:      res.Rejected,
		SimulatedTime: s.clock.Now(),
	}, nil
}

// BackToBidding returns the clock to the bidding day for a new cycle.
// Requires the trading phase and at least one executed bid in the current
// book. Bids and trades are preserved for audit; only Reset empties them.
func (s *Simulation) BackToBidding() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clock.Phase() != model.PhaseTrading {
		return time.Time{}, newError(CodeInvalidTransition, "back-to-bidding is only allowed from the trading phase")
	}
	if s.book.CountExecuted() == 0 {
		return time.Time{}, newError(CodeInvalidTransition, "no executed bids in the current cycle")
	}
	s.clock.EnterBidding()
	return s.clock.Now(), nil
}

// SetTime sets the simulated time of day without changing phase or date.
// Test hook; the HTTP layer does not expose it in production.
func (s *Simulation) SetTime(hour, minute int) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.clock.SetTimeOfDay(hour, minute); err != nil {
		return time.Time{}, err
	}
	return s.clock.Now(), nil
}

// Reset empties the bid book and trade list. Phase and simulated time are
// untouched, as is the loaded price data.
func (s *Simulation) Reset() (clearedBids, clearedTrades int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clearedBids = s.book.Clear()
	clearedTrades = len(s.trades)
	s.trades = nil
	return clearedBids, clearedTrades
}

// Trades settles every trade at the current simulated time and returns the
// views plus the total P&L over trades with a computed value. During the
// trading phase the average covers only elapsed real-time points; outside
// it, completed trades settle over their whole hour.
func (s *Simulation) Trades() ([]model.SettledTrade, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, decimal.Zero, newError(CodeNotInitialized, "market data not initialized")
	}
	until := time.Time{}
	if s.clock.Phase() == model.PhaseTrading {
		until = s.clock.Now()
	}
	settled, total := settleAll(s.trades, s.store, until)
	return settled, total, nil
}

// Summary reports latest prices and per-series stats. In the bidding phase
// the real-time side is empty (delivery has not begun); in the trading
// phase it covers points up to the simulated time.
type Summary struct {
	DayAhead SeriesStats
	RealTime SeriesStats
	Spread   decimal.Decimal
}

func (s *Simulation) Summary() (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, newError(CodeNotInitialized, "market data not initialized")
	}
	sum := &Summary{DayAhead: Stats(s.store.DayAhead())}
	if s.clock.Phase() == model.PhaseTrading {
		sum.RealTime = Stats(s.store.RealTimeThrough(s.clock.Now()))
	}
	if sum.RealTime.Count > 0 {
		sum.Spread = sum.RealTime.Latest.Sub(sum.DayAhead.Latest)
	}
	return sum, nil
}

// Timeseries returns the chart series: the full day-ahead curve and the
// real-time points elapsed so far.
type Timeseries struct {
	DeliveryDate time.Time
	DayAhead     []model.PricePoint
	RealTime     []model.PricePoint
}

func (s *Simulation) Timeseries() (*Timeseries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, newError(CodeNotInitialized, "market data not initialized")
	}
	ts := &Timeseries{
		DeliveryDate: s.clock.DeliveryDate(),
		DayAhead:     s.store.DayAhead(),
		RealTime:     []model.PricePoint{},
	}
	if s.clock.Phase() == model.PhaseTrading {
		ts.RealTime = s.store.RealTimeThrough(s.clock.Now())
	}
	return ts, nil
}
