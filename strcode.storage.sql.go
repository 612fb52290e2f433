package strcode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLConfig configures an SQLPackStorage.
type SQLConfig struct {
	// Driver is the database/sql driver: postgres or sqlite3.
	Driver string

	// DSN is the driver connection string.
	DSN string

	// Table is the name of the packs table.
	// Default: "strcode_packs"
	Table string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime.
	// Default: 30 minutes
	ConnMaxLifetime time.Duration

	// ConnMaxIdleTime is the maximum idle time for connections.
	// Default: 5 minutes
	ConnMaxIdleTime time.Duration

	// AutoMigrate creates the schema on open.
	// Default: false
	AutoMigrate bool

	// QueryTimeout bounds every query.
	// Default: 30 seconds
	QueryTimeout time.Duration

	Logger *zap.Logger
}

// DefaultSQLConfig returns a configuration with sensible defaults.
func DefaultSQLConfig(driver, dsn string) SQLConfig {
	return SQLConfig{
		Driver:          driver,
		DSN:             dsn,
		Table:           DefaultPacksTable,
		MaxOpenConns:    DefaultMaxOpenConns,
		MaxIdleConns:    DefaultMaxIdleConns,
		ConnMaxLifetime: DefaultConnMaxLifetime,
		ConnMaxIdleTime: DefaultConnMaxIdleTime,
		QueryTimeout:    DefaultQueryTimeout,
	}
}

// SQLite pragmas applied on open.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA synchronous = NORMAL;",
	"PRAGMA busy_timeout = 5000;",
}

// SQLPackStorage stores pack sources in a PostgreSQL or SQLite table.
// Sources are kept as YAML text, so a row can be inspected and edited
// with plain SQL.
type SQLPackStorage struct {
	db     *sql.DB
	config SQLConfig
	sq     sq.StatementBuilderType
	mu     sync.RWMutex
	closed bool
}

// SQLPackStorageDriver creates SQLPackStorage instances for one
// database/sql driver.
type SQLPackStorageDriver struct {
	Driver string
}

func init() {
	RegisterPackStorageDriver(DriverPostgres, &SQLPackStorageDriver{Driver: DriverPostgres})
	RegisterPackStorageDriver(DriverSQLite, &SQLPackStorageDriver{Driver: DriverSQLite})
}

// Open creates an SQLPackStorage and migrates its schema.
func (d *SQLPackStorageDriver) Open(dsn string) (PackStorage, error) {
	config := DefaultSQLConfig(d.Driver, dsn)
	config.AutoMigrate = true
	return NewSQLPackStorage(config)
}

// NewSQLPackStorage opens the database and verifies the connection.
func NewSQLPackStorage(config SQLConfig) (*SQLPackStorage, error) {
	if config.DSN == "" {
		return nil, NewStorageError(ErrMsgStorageEmptyDSN, config.Driver, "", nil)
	}
	if config.Driver != DriverPostgres && config.Driver != DriverSQLite {
		return nil, NewStorageError(ErrMsgStorageUnknownDriver, config.Driver, "", nil)
	}

	// Apply defaults for zero values
	if config.Table == "" {
		config.Table = DefaultPacksTable
	}
	if config.MaxOpenConns == 0 {
		config.MaxOpenConns = DefaultMaxOpenConns
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = DefaultMaxIdleConns
	}
	if config.ConnMaxLifetime == 0 {
		config.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if config.ConnMaxIdleTime == 0 {
		config.ConnMaxIdleTime = DefaultConnMaxIdleTime
	}
	if config.QueryTimeout == 0 {
		config.QueryTimeout = DefaultQueryTimeout
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, NewStorageError(ErrMsgStorageOpenFailed, config.Driver, "", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), config.QueryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		closeAfterError(db, config)
		return nil, NewStorageError(ErrMsgStorageOpenFailed, config.Driver, "", err)
	}

	if config.Driver != DriverPostgres {
		for _, pragma := range sqlitePragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				closeAfterError(db, config)
				return nil, NewStorageError(ErrMsgStorageOpenFailed, config.Driver, "", err)
			}
		}
	}

	storage := &SQLPackStorage{
		db:     db,
		config: config,
		sq:     sq.StatementBuilder.PlaceholderFormat(placeholderFor(config.Driver)),
	}

	if config.AutoMigrate {
		if err := storage.RunMigrations(ctx); err != nil {
			closeAfterError(db, config)
			return nil, err
		}
	}

	config.Logger.Debug(LogMsgStorageOpened, zap.String(LogFieldDriver, config.Driver))
	return storage, nil
}

func closeAfterError(db *sql.DB, config SQLConfig) {
	if err := db.Close(); err != nil {
		config.Logger.Warn(LogMsgStorageCloseError, zap.String(LogFieldDriver, config.Driver), zap.Error(err))
	}
}

func (s *SQLPackStorage) migrationsTable() string {
	return s.config.Table + "_migrations"
}

// Get implements PackStorage
func (s *SQLPackStorage) Get(ctx context.Context, isocode string) (*LanguagePackSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, newStorageClosedError(s.config.Driver)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	query, args, err := s.sq.Select("source").
		From(s.config.Table).
		Where(sq.Eq{"isocode": isocode}).
		ToSql()
	if err != nil {
		return nil, NewStorageError(ErrMsgStorageQueryFailed, s.config.Driver, isocode, err)
	}

	var source string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&source); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewPackNotFoundError(isocode)
		}
		return nil, NewStorageError(ErrMsgStorageQueryFailed, s.config.Driver, isocode, err)
	}

	src, err := ParseLanguagePack([]byte(source), PackFormatYAML)
	if err != nil {
		return nil, NewStorageError(ErrMsgStorageReadFailed, s.config.Driver, isocode, err)
	}
	return src, nil
}

// List implements PackStorage
func (s *SQLPackStorage) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, newStorageClosedError(s.config.Driver)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	query, args, err := s.sq.Select("isocode").From(s.config.Table).OrderBy("isocode").ToSql()
	if err != nil {
		return nil, NewStorageError(ErrMsgStorageQueryFailed, s.config.Driver, "", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError(ErrMsgStorageQueryFailed, s.config.Driver, "", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, NewStorageError(ErrMsgStorageQueryFailed, s.config.Driver, "", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError(ErrMsgStorageQueryFailed, s.config.Driver, "", err)
	}
	// Collation differs between databases.
	sort.Strings(codes)
	return codes, nil
}

// Save implements PackStorage
func (s *SQLPackStorage) Save(ctx context.Context, src *LanguagePackSource) error {
	if err := validateSaveSource(src, s.config.Driver); err != nil {
		return err
	}
	isocode := src.Header.IsoCode
	data, err := MarshalLanguagePack(src, PackFormatYAML)
	if err != nil {
		return NewStorageError(ErrMsgStorageWriteFailed, s.config.Driver, isocode, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return newStorageClosedError(s.config.Driver)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	query, args, err := s.sq.Insert(s.config.Table).
		Columns("isocode", "name", "source", "updated_at").
		Values(isocode, src.Header.Name, string(data), now).
		Suffix("ON CONFLICT (isocode) DO UPDATE SET name = excluded.name, source = excluded.source, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return NewStorageError(ErrMsgStorageWriteFailed, s.config.Driver, isocode, err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return NewStorageError(ErrMsgStorageWriteFailed, s.config.Driver, isocode, err)
	}
	s.config.Logger.Debug(LogMsgStorageSaved, zap.String(LogFieldIsoCode, isocode))
	return nil
}

// Delete implements PackStorage
func (s *SQLPackStorage) Delete(ctx context.Context, isocode string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return newStorageClosedError(s.config.Driver)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	query, args, err := s.sq.Delete(s.config.Table).Where(sq.Eq{"isocode": isocode}).ToSql()
	if err != nil {
		return NewStorageError(ErrMsgStorageDeleteFailed, s.config.Driver, isocode, err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return NewStorageError(ErrMsgStorageDeleteFailed, s.config.Driver, isocode, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return NewPackNotFoundError(isocode)
	}
	s.config.Logger.Debug(LogMsgStorageDeleted, zap.String(LogFieldIsoCode, isocode))
	return nil
}

// Close releases database connections.
func (s *SQLPackStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return newStorageClosedError(s.config.Driver)
	}
	s.closed = true
	return s.db.Close()
}

// sqlMigration is one schema step.
type sqlMigration struct {
	Version     int
	Description string
	SQL         string
}

func (s *SQLPackStorage) migrations() []sqlMigration {
	return []sqlMigration{
		{
			Version:     1,
			Description: "create packs table",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				isocode    VARCHAR(32) PRIMARY KEY,
				name       TEXT NOT NULL,
				source     TEXT NOT NULL,
				updated_at VARCHAR(64) NOT NULL
			)`, s.config.Table),
		},
	}
}

// RunMigrations applies pending schema migrations.
func (s *SQLPackStorage) RunMigrations(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		version     INTEGER PRIMARY KEY,
		applied_at  VARCHAR(64) NOT NULL,
		description VARCHAR(255)
	)`, s.migrationsTable()))
	if err != nil {
		return NewStorageError(ErrMsgStorageMigrateFailed, s.config.Driver, "", err)
	}

	applied := make(map[int]bool)
	query, args, err := s.sq.Select("version").From(s.migrationsTable()).ToSql()
	if err != nil {
		return NewStorageError(ErrMsgStorageMigrateFailed, s.config.Driver, "", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return NewStorageError(ErrMsgStorageMigrateFailed, s.config.Driver, "", err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return NewStorageError(ErrMsgStorageMigrateFailed, s.config.Driver, "", err)
		}
		applied[v] = true
	}
	rows.Close()

	for _, m := range s.migrations() {
		if applied[m.Version] {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return NewStorageError(ErrMsgStorageMigrateFailed, s.config.Driver, "", err)
		}
		s.config.Logger.Info(LogMsgStorageMigrated,
			zap.String(LogFieldDriver, s.config.Driver),
			zap.Int(LogFieldCount, m.Version))
	}
	return nil
}

func (s *SQLPackStorage) applyMigration(ctx context.Context, m sqlMigration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	query, args, err := s.sq.Insert(s.migrationsTable()).
		Columns("version", "applied_at", "description").
		Values(m.Version, time.Now().UTC().Format(time.RFC3339), m.Description).
		ToSql()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// CurrentSchemaVersion returns the highest applied migration.
func (s *SQLPackStorage) CurrentSchemaVersion(ctx context.Context) (int, error) {
	query, args, err := s.sq.Select("MAX(version)").From(s.migrationsTable()).ToSql()
	if err != nil {
		return 0, NewStorageError(ErrMsgStorageQueryFailed, s.config.Driver, "", err)
	}
	var version sql.NullInt64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&version); err != nil {
		return 0, NewStorageError(ErrMsgStorageQueryFailed, s.config.Driver, "", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

// placeholderFor returns the bind parameter style of driver.
func placeholderFor(driver string) sq.PlaceholderFormat {
	if driver == DriverPostgres {
		return sq.Dollar
	}
	return sq.Question
}
