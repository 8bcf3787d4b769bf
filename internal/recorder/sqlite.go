package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists clearing history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations. Pass ":memory:" for an ephemeral database in tests.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[Recorder] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bid_outcomes (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			cleared_at     INTEGER NOT NULL,
			bid_id         TEXT NOT NULL,
			participant_id TEXT NOT NULL,
			hour           INTEGER NOT NULL,
			side           TEXT NOT NULL,
			limit_price    TEXT NOT NULL,
			quantity       TEXT NOT NULL,
			status         TEXT NOT NULL,
			clearing_price TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bid_outcomes_ts ON bid_outcomes(cleared_at)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			cleared_at     INTEGER NOT NULL,
			trade_id       TEXT NOT NULL,
			bid_id         TEXT NOT NULL,
			participant_id TEXT NOT NULL,
			hour           INTEGER NOT NULL,
			side           TEXT NOT NULL,
			executed_price TEXT NOT NULL,
			quantity       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(cleared_at)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordClearing writes one row per resolved bid and one per trade, in a
// single transaction.
func (r *SQLiteRecorder) RecordClearing(evt *ClearingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ts := evt.ClearedAt.Unix()
	for _, b := range evt.Bids {
		var clearing *string
		if b.ClearingPrice != nil {
			s := b.ClearingPrice.String()
			clearing = &s
		}
		_, err := tx.Exec(
			`INSERT INTO bid_outcomes
				(cleared_at, bid_id, participant_id, hour, side, limit_price, quantity, status, clearing_price)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ts, b.ID, b.ParticipantID, b.Hour, string(b.Side),
			b.LimitPrice.String(), b.Quantity.String(), string(b.Status), clearing,
		)
		if err != nil {
			return fmt.Errorf("insert bid outcome: %w", err)
		}
	}
	for _, t := range evt.Trades {
		_, err := tx.Exec(
			`INSERT INTO trades
				(cleared_at, trade_id, bid_id, participant_id, hour, side, executed_price, quantity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ts, t.ID, t.BidID, t.ParticipantID, t.Hour, string(t.Side),
			t.ExecutedPrice.String(), t.Quantity.String(),
		)
		if err != nil {
			return fmt.Errorf("insert trade: %w", err)
		}
	}
	return tx.Commit()
}

// CountBidOutcomes returns the number of recorded bid outcomes.
func (r *SQLiteRecorder) CountBidOutcomes() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM bid_outcomes`).Scan(&n)
	return n, err
}

// CountTrades returns the number of recorded trades.
func (r *SQLiteRecorder) CountTrades() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM trades`).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
