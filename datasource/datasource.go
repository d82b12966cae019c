// Package datasource gives read-only access to the ledger table through gorm.
// Every call runs under the configured query timeout.
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"securecheck-api/config"
	"securecheck-api/metrics"
	"securecheck-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Store struct {
	db      *gorm.DB
	dialect string
	timeout time.Duration
}

// Open connects using cfg.Driver and verifies the connection.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, &UnavailableError{Op: "open", Cause: err}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, &UnavailableError{Op: "open", Cause: err}
	}
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	s := New(db, cfg.Driver, cfg.QueryTimeout)
	if err := s.Ping(context.Background()); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing gorm handle.
func New(db *gorm.DB, dialect string, timeout time.Duration) *Store {
	return &Store{db: db, dialect: dialect, timeout: timeout}
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql", "":
		return mysql.Open(cfg.GetDSN()), nil
	case "postgres":
		return postgres.Open(cfg.GetDSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.GetDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Dialect() string { return s.dialect }

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		return &UnavailableError{Op: "ping", Cause: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		metrics.DataSourceFailures.WithLabelValues("ping").Inc()
		return &UnavailableError{Op: "ping", Cause: err}
	}
	return nil
}

// Snapshot reads every ledger row. The returned snapshot is never shared
// between requests.
func (s *Store) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	var records []models.StopRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		metrics.DataSourceFailures.WithLabelValues("snapshot").Inc()
		return nil, &UnavailableError{Op: "snapshot", Cause: err}
	}
	metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	metrics.SnapshotRows.Set(float64(len(records)))

	return &models.Snapshot{Records: records, LoadedAt: time.Now().UTC()}, nil
}

// Query runs raw query text and collects all rows. Column order follows the
// result set.
func (s *Store) Query(ctx context.Context, query string) (*models.Table, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		metrics.DataSourceFailures.WithLabelValues("query").Inc()
		return nil, err
	}
	defer rows.Close()

	tbl, err := collect(rows)
	if err != nil {
		metrics.DataSourceFailures.WithLabelValues("query").Inc()
		return nil, err
	}
	return tbl, nil
}

func collect(rows *sql.Rows) (*models.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read column types: %w", err)
	}

	tbl := &models.Table{Columns: cols, Rows: []map[string]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = normalize(values[i], types[i])
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tbl, nil
}

// normalize turns driver byte slices into strings, or numbers for numeric
// columns. MySQL's text protocol returns every value as bytes and pgx hands
// back NUMERIC as text.
func normalize(v any, ct *sql.ColumnType) any {
	var s string
	switch t := v.(type) {
	case []byte:
		s = string(t)
	case string:
		s = t
	default:
		return v
	}
	switch numericKind(ct.DatabaseTypeName()) {
	case kindInt:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case kindFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

type kind int

const (
	kindText kind = iota
	kindInt
	kindFloat
)

func numericKind(dbType string) kind {
	t := strings.ToUpper(dbType)
	switch {
	case strings.Contains(t, "INT"):
		return kindInt
	case strings.Contains(t, "DECIMAL"), strings.Contains(t, "NUMERIC"),
		strings.Contains(t, "FLOAT"), strings.Contains(t, "DOUBLE"), strings.Contains(t, "REAL"):
		return kindFloat
	default:
		return kindText
	}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
