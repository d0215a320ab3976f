package export

import (
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/fcfs-sim/sim"
)

const createTrialsTable = `
CREATE TABLE IF NOT EXISTS trials (
	sheet        TEXT PRIMARY KEY,
	serve_time   REAL    NOT NULL,
	servers      INTEGER NOT NULL,
	customers    INTEGER NOT NULL,
	window_secs  REAL    NOT NULL,
	lunch_hours  REAL    NOT NULL,
	seed         INTEGER NOT NULL,
	avg_queue    REAL    NOT NULL,
	spread       REAL    NOT NULL,
	mean_tba     REAL    NOT NULL,
	max_queue    REAL    NOT NULL,
	p95_queue    REAL    NOT NULL,
	waited       INTEGER NOT NULL,
	makespan     REAL    NOT NULL,
	utilization  REAL    NOT NULL,
	erlang_mdc   REAL,
	created_at   TEXT    NOT NULL
)`

const createCustomersTable = `
CREATE TABLE IF NOT EXISTS customers (
	sheet        TEXT    NOT NULL REFERENCES trials(sheet),
	id           INTEGER NOT NULL,
	arrival      REAL    NOT NULL,
	queue        REAL    NOT NULL,
	interarrival REAL    NOT NULL,
	PRIMARY KEY (sheet, id)
)`

// SQLiteStore buffers sheets and writes them to a SQLite database in
// batches. Buffered sheets are flushed on Close and at process exit.
type SQLiteStore struct {
	*sql.DB

	mu           sync.Mutex
	path         string
	trialStmt    *sql.Stmt
	customerStmt *sql.Stmt
	pending      []*Sheet
	batchSize    int
	closed       bool
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}
	for _, stmt := range []string{createTrialsTable, createCustomersTable} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("creating results tables: %w", err)
		}
	}

	s := &SQLiteStore{DB: db, path: path, batchSize: 16}
	s.trialStmt, err = db.Prepare(`INSERT INTO trials VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("preparing trial insert: %w", err)
	}
	s.customerStmt, err = db.Prepare(`INSERT INTO customers VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("preparing customer insert: %w", err)
	}

	atexit.Register(func() {
		if err := s.Flush(); err != nil {
			logrus.Errorf("Flushing %s at exit: %v", path, err)
		}
	})
	return s, nil
}

// Export buffers res as a new sheet.
func (s *SQLiteStore) Export(res *sim.TrialResult) error {
	return s.WriteSheet(NewSheet(res))
}

// WriteSheet buffers sheet, flushing once a batch is full.
func (s *SQLiteStore) WriteSheet(sheet *Sheet) error {
	if sheet.Result == nil {
		return fmt.Errorf("sheet %s has no trial result", sheet.Name)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("results db %s is closed", s.path)
	}
	s.pending = append(s.pending, sheet)
	full := len(s.pending) >= s.batchSize
	s.mu.Unlock()

	if full {
		return s.Flush()
	}
	return nil
}

// Flush writes all buffered sheets in a single transaction.
func (s *SQLiteStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *SQLiteStore) flushLocked() error {
	if s.closed || len(s.pending) == 0 {
		return nil
	}

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	trialStmt := tx.Stmt(s.trialStmt)
	customerStmt := tx.Stmt(s.customerStmt)
	now := time.Now().UTC().Format(time.RFC3339)

	for _, sheet := range s.pending {
		res := sheet.Result
		var erlang any
		if !math.IsInf(res.Reference.MDcQueueTime, 0) {
			erlang = res.Reference.MDcQueueTime
		}
		_, err := trialStmt.Exec(
			sheet.Name,
			res.Params.ServeTime,
			res.Params.ServerCount,
			res.Params.CustomerCount,
			res.Params.WindowDuration,
			res.Params.LunchTimeHours(),
			res.Seed,
			res.Summary.MeanQueueTime,
			res.Summary.StdQueueTime,
			res.Summary.MeanInterarrival,
			res.Summary.MaxQueueTime,
			res.Summary.P95QueueTime,
			res.Summary.CustomersWaited,
			res.Makespan,
			res.Utilization,
			erlang,
			now,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting trial %s: %w", sheet.Name, err)
		}
		for _, r := range sheet.Rows {
			if _, err := customerStmt.Exec(sheet.Name, r.ID, r.ArrivalTime, r.QueueTime, r.Interarrival); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("inserting customer %d of %s: %w", r.ID, sheet.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	logrus.Debugf("Flushed %d sheets to %s", len(s.pending), s.path)
	s.pending = nil
	return nil
}

// Close flushes pending sheets and closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	flushErr := s.flushLocked()
	s.closed = true
	_ = s.trialStmt.Close()
	_ = s.customerStmt.Close()
	if err := s.DB.Close(); err != nil {
		return err
	}
	return flushErr
}
