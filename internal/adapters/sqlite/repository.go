package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"monthlyBars/internal/domain"
	"monthlyBars/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const periodLayout = "2006-01-02"

// Repository implements ports.MonthlyWriter by storing monthly bars in SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/monthly.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS monthly_bars (
		ticker TEXT NOT NULL,
		period TEXT NOT NULL,
		open REAL NOT NULL,
		high REAL NOT NULL,
		low REAL NOT NULL,
		close REAL NOT NULL,
		sma_10 REAL NULL,
		sma_20 REAL NULL,
		ema_10 REAL NULL,
		ema_20 REAL NULL,
		PRIMARY KEY (ticker, period)
	);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// Name identifies the sink in logs.
func (r *Repository) Name() string { return "sqlite" }

// Write replaces every stored bar of ticker with series in a single transaction.
func (r *Repository) Write(ctx context.Context, ticker string, series []domain.MonthlyRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w: %w", ticker, ports.ErrWriteFailed, err)
	}
	defer tx.Rollback() // No-op after Commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_bars WHERE ticker = ?`, ticker); err != nil {
		return fmt.Errorf("failed to clear bars for %s: %w: %w", ticker, ports.ErrWriteFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO monthly_bars (ticker, period, open, high, low, close, sma_10, sma_20, ema_10, ema_20)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w: %w", ticker, ports.ErrWriteFailed, err)
	}
	defer stmt.Close()

	for _, b := range series {
		_, err := stmt.ExecContext(ctx,
			ticker, b.Period.Format(periodLayout), b.Open, b.High, b.Low, b.Close,
			nullable(b.SMA10), nullable(b.SMA20), nullable(b.EMA10), nullable(b.EMA20))
		if err != nil {
			return fmt.Errorf("failed to insert bar %s for %s: %w: %w", b.Period.Format(periodLayout), ticker, ports.ErrWriteFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bars for %s: %w: %w", ticker, ports.ErrWriteFailed, err)
	}
	r.logger.Debug(ctx, "Monthly bars stored", map[string]interface{}{"ticker": ticker, "rows": len(series)})
	return nil
}

// FindByTicker retrieves the stored bars of ticker ordered by period ascending.
func (r *Repository) FindByTicker(ctx context.Context, ticker string) ([]domain.MonthlyRecord, error) {
	const query = `
	SELECT period, open, high, low, close, sma_10, sma_20, ema_10, ema_20
	FROM monthly_bars
	WHERE ticker = ?
	ORDER BY period ASC`

	rows, err := r.db.QueryContext(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars for %s: %w: %w", ticker, ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	series := make([]domain.MonthlyRecord, 0)
	for rows.Next() {
		b, err := scanBar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bar for %s: %w", ticker, err)
		}
		series = append(series, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bar rows: %w", err)
	}
	return series, nil
}

func scanBar(rows *sql.Rows) (domain.MonthlyRecord, error) {
	var (
		b                          domain.MonthlyRecord
		period                     string
		sma10, sma20, ema10, ema20 sql.NullFloat64
	)
	if err := rows.Scan(&period, &b.Open, &b.High, &b.Low, &b.Close, &sma10, &sma20, &ema10, &ema20); err != nil {
		return b, err
	}
	t, err := time.Parse(periodLayout, period)
	if err != nil {
		return b, fmt.Errorf("invalid stored period %q: %w", period, err)
	}
	b.Period = t
	b.SMA10 = fromNull(sma10)
	b.SMA20 = fromNull(sma20)
	b.EMA10 = fromNull(ema10)
	b.EMA20 = fromNull(ema20)
	return b, nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
