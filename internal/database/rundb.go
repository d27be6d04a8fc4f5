package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/trackerlens/trackerlens/internal/analysis"
	"github.com/trackerlens/trackerlens/internal/model"
)

// RunDB provides SQLite-based storage for analysis runs.
// It manages connection pooling and provides methods for saving and
// retrieving runs.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "trackerlens.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string.
	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple readers gain little here
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store one row per completed analysis
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		source_dir TEXT NOT NULL,
		domain_count INTEGER NOT NULL,
		row_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source_dir);

	-- The prevalence ranking of each run, one row per ranked domain
	CREATE TABLE IF NOT EXISTS run_domains (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		rank INTEGER NOT NULL,
		domain TEXT NOT NULL,
		owner TEXT,
		prevalence REAL NOT NULL,
		sites INTEGER NOT NULL,
		fingerprinting INTEGER NOT NULL,
		cookies REAL NOT NULL,
		PRIMARY KEY (run_id, rank)
	);

	CREATE INDEX IF NOT EXISTS idx_run_domains_domain ON run_domains(domain);

	-- The category-frequency table of each run, in ascending position order
	CREATE TABLE IF NOT EXISTS run_categories (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_run_categories_category ON run_categories(category);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunSummary identifies one stored analysis run.
type RunSummary struct {
	ID          int64
	Timestamp   time.Time
	SourceDir   string
	DomainCount int
	RowCount    int
}

// StoredRun is one stored run with its ranking and category tables.
type StoredRun struct {
	RunSummary

	// TopDomains is the stored prevalence ranking, descending.
	TopDomains []model.DomainScalars

	// CategoryCounts is the stored frequency table, ascending.
	CategoryCounts []analysis.CategoryCount
}

// SaveRun stores one analysis result and returns the new run id.
// Only the scalar columns the compare command needs are persisted; the
// optional performance metrics stay in the report output.
func (rdb *RunDB) SaveRun(ctx context.Context, result *analysis.Result, sourceDir string) (int64, error) {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source_dir, domain_count, row_count) VALUES (?, ?, ?)`,
		sourceDir, result.Domains, result.Rows,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for rank, d := range result.TopDomains {
		var owner any
		if d.Owner != nil {
			owner = *d.Owner
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_domains (run_id, rank, domain, owner, prevalence, sites, fingerprinting, cookies)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, rank+1, d.Domain, owner, d.Prevalence, d.Sites, int(d.Fingerprinting), d.Cookies,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert ranked domain: %w", err)
		}
	}

	for pos, c := range result.CategoryCounts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_categories (run_id, position, category, count) VALUES (?, ?, ?, ?)`,
			runID, pos+1, c.Category, c.Count,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert category count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns stored run summaries, newest first.
func (rdb *RunDB) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT id, timestamp, source_dir, domain_count, row_count FROM runs ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var timestamp string
		if err := rows.Scan(&s.ID, &timestamp, &s.SourceDir, &s.DomainCount, &s.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		s.Timestamp = parseTimestamp(timestamp)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetRun retrieves one stored run with its tables.
// Returns nil if the run does not exist.
func (rdb *RunDB) GetRun(ctx context.Context, id int64) (*StoredRun, error) {
	var run StoredRun
	var timestamp string

	err := rdb.db.QueryRowContext(ctx,
		`SELECT id, timestamp, source_dir, domain_count, row_count FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &timestamp, &run.SourceDir, &run.DomainCount, &run.RowCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.Timestamp = parseTimestamp(timestamp)

	domainRows, err := rdb.db.QueryContext(ctx,
		`SELECT domain, owner, prevalence, sites, fingerprinting, cookies
		 FROM run_domains WHERE run_id = ? ORDER BY rank`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranked domains: %w", err)
	}
	defer domainRows.Close()

	for domainRows.Next() {
		var d model.DomainScalars
		var owner sql.NullString
		var fingerprinting int
		if err := domainRows.Scan(&d.Domain, &owner, &d.Prevalence, &d.Sites, &fingerprinting, &d.Cookies); err != nil {
			return nil, fmt.Errorf("failed to scan ranked domain: %w", err)
		}
		if owner.Valid {
			d.Owner = &owner.String
		}
		d.Fingerprinting = model.FingerprintingLevel(fingerprinting)
		run.TopDomains = append(run.TopDomains, d)
	}
	if err := domainRows.Err(); err != nil {
		return nil, err
	}

	categoryRows, err := rdb.db.QueryContext(ctx,
		`SELECT category, count FROM run_categories WHERE run_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer categoryRows.Close()

	for categoryRows.Next() {
		var c analysis.CategoryCount
		if err := categoryRows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		run.CategoryCounts = append(run.CategoryCounts, c)
	}
	return &run, categoryRows.Err()
}

// LatestRunIDs returns the ids of the n most recent runs, newest first.
func (rdb *RunDB) LatestRunIDs(ctx context.Context, n int) ([]int64, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT id FROM runs ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest runs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// timestampFormats lists the timestamp layouts SQLite may hand back,
// depending on version and connection configuration.
var timestampFormats = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// parseTimestamp parses a SQLite timestamp string.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
