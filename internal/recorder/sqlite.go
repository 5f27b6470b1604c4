package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var log = logrus.WithField("component", "recorder")

// QuoteRow is a stored quote snapshot.
type QuoteRow struct {
	Timestamp        time.Time
	Symbol           string
	Price            float64
	PercentChange24h float64
	Volume24h        float64
	SimulatedBuy     float64
	SimulatedSell    float64
}

// SQLiteRecorder persists quote history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			symbol             TEXT NOT NULL,
			price              REAL,
			percent_change_24h REAL,
			volume_24h         REAL,
			simulated_buy      REAL,
			simulated_sell     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_symbol_ts ON quote_snapshots(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuote(evt *QuoteEvent) error {
	if evt == nil || evt.Quote == nil {
		return fmt.Errorf("record quote: empty event")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	q := evt.Quote
	ts := q.FetchedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO quote_snapshots
		(timestamp, symbol, price, percent_change_24h, volume_24h, simulated_buy, simulated_sell)
		VALUES (?,?,?,?,?,?,?)`,
		ts.Unix(), q.Symbol, q.Price, q.PercentChange24h, q.Volume24h,
		evt.Split.Buy, evt.Split.Sell,
	)
	return err
}

// Recent returns up to limit snapshots for symbol, newest first.
func (r *SQLiteRecorder) Recent(symbol string, limit int) ([]QuoteRow, error) {
	if limit <= 0 {
		limit = 50
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, symbol, price, percent_change_24h, volume_24h, simulated_buy, simulated_sell
		FROM quote_snapshots WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []QuoteRow
	for rows.Next() {
		var row QuoteRow
		var ts int64
		if err := rows.Scan(&ts, &row.Symbol, &row.Price, &row.PercentChange24h, &row.Volume24h,
			&row.SimulatedBuy, &row.SimulatedSell); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		row.Timestamp = time.Unix(ts, 0)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}
