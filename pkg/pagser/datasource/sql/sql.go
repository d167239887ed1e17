package sql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/lib/pq"              // registers the "postgres" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/sllt/pagser/pkg/pagser/config"
	"github.com/sllt/pagser/pkg/pagser/datasource"
	"github.com/sllt/pagser/pkg/pagser/datasource/sql/qb"
)

const (
	sqlite   = "sqlite"
	postgres = "postgres"
	pgx      = "pgx"
	mysqlDB  = "mysql"

	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 2
)

//nolint:gochecknoglobals // SQL latency buckets in milliseconds
var histogramBuckets = []float64{.05, .075, .1, .125, .15, .2, .3, .5, .75, 1, 2, 3, 4, 5, 7.5, 10}

// Metrics is the subset of metrics.Manager the datasource records into.
type Metrics interface {
	NewHistogram(name, desc string, buckets ...float64)
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
}

// DBConfig has those members which are necessary to connect to a database.
type DBConfig struct {
	Dialect         string        `validate:"required,oneof=postgres pgx mysql sqlite"`
	DSN             string        `validate:"required"`
	HostName        string        `validate:"-"`
	Database        string        `validate:"-"`
	MaxOpenConns    int           `validate:"min=1"`
	MaxIdleConns    int           `validate:"min=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `validate:"min=0"`
}

// NewSQL reads the DB_* keys from configs and returns a lazily connected pool.
func NewSQL(configs config.Config, logger datasource.Logger, metrics Metrics, opts ...otelsql.Option) (*DB, error) {
	dbConfig, err := getDBConfig(configs)
	if err != nil {
		return nil, err
	}

	return Connect(dbConfig, logger, metrics, opts...)
}

func getDBConfig(configs config.Config) (*DBConfig, error) {
	maxOpen, err := intSetting(configs, "DB_MAX_OPEN_CONNECTIONS", defaultMaxOpenConns)
	if err != nil {
		return nil, err
	}

	maxIdle, err := intSetting(configs, "DB_MAX_IDLE_CONNECTIONS", defaultMaxIdleConns)
	if err != nil {
		return nil, err
	}

	var lifetime time.Duration

	if v := configs.Get("DB_CONN_MAX_LIFETIME"); v != "" {
		lifetime, err = time.ParseDuration(v)
		if err != nil {
			return nil, &ConfigError{Field: "DB_CONN_MAX_LIFETIME", Err: err}
		}
	}

	return &DBConfig{
		Dialect:         strings.ToLower(configs.GetOrDefault("DB_DIALECT", postgres)),
		DSN:             configs.Get("DB_URL"),
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: lifetime,
	}, nil
}

func intSetting(configs config.Config, key string, def int) (int, error) {
	v, err := strconv.Atoi(configs.GetOrDefault(key, strconv.Itoa(def)))
	if err != nil {
		return 0, &ConfigError{Field: key, Err: err}
	}

	return v, nil
}

// Connect validates cfg and prepares the pool. No connection is opened until the first query.
func Connect(cfg *DBConfig, logger datasource.Logger, metrics Metrics, opts ...otelsql.Option) (*DB, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	driverName, err := parseDSN(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Dialect != sqlite {
		opts = append([]otelsql.Option{otelsql.WithAttributes(otelsql.AttributesFromDSN(cfg.DSN)...)}, opts...)
	}

	sqlDB, err := otelsql.Open(driverName, cfg.DSN, opts...)
	if err != nil {
		return nil, &ConfigError{Field: "DB_DIALECT", Err: err}
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db, err := New(sqlDB, cfg, logger, metrics)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	reg, err := otelsql.RegisterDBStatsMetrics(sqlDB, opts...)
	if err == nil {
		db.statsRegistration = reg
	}

	if logger != nil {
		if err != nil {
			logger.Warnf("could not register connection pool metrics: %v", err)
		}

		logger.Infof("prepared %s connection pool for %s/%s (max %d connections)",
			cfg.Dialect, cfg.HostName, cfg.Database, cfg.MaxOpenConns)
	}

	return db, nil
}

func validateConfig(cfg *DBConfig) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ConfigError{Field: fe.Field(), Err: fmt.Errorf("failed on %q rule", fe.Tag())}
	}

	return &ConfigError{Field: "DBConfig", Err: err}
}

// parseDSN checks the shape of the DSN for the configured dialect, fills HostName and Database
// and returns the driver to open.
func parseDSN(cfg *DBConfig) (string, error) {
	switch cfg.Dialect {
	case postgres, pgx:
		pgCfg, err := pgconn.ParseConfig(cfg.DSN)
		if err != nil {
			return "", &ConfigError{Field: "DB_URL", Err: err}
		}

		cfg.HostName = net.JoinHostPort(pgCfg.Host, strconv.Itoa(int(pgCfg.Port)))
		cfg.Database = pgCfg.Database

		return cfg.Dialect, nil
	case mysqlDB:
		myCfg, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return "", &ConfigError{Field: "DB_URL", Err: err}
		}

		cfg.HostName = myCfg.Addr
		cfg.Database = myCfg.DBName

		return mysqlDB, nil
	case sqlite:
		path := strings.TrimPrefix(cfg.DSN, "file:")
		if i := strings.IndexByte(path, '?'); i >= 0 {
			path = path[:i]
		}

		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}

		cfg.HostName = "localhost"
		cfg.Database = path

		return sqlite, nil
	default:
		return "", &ConfigError{Field: "DB_DIALECT", Err: fmt.Errorf("%w: %q", errUnsupportedDialect, cfg.Dialect)}
	}
}

func dialectBuilder(db qb.DialectProvider) (*qb.Builder, error) {
	b, err := qb.FromDB(db)
	if err != nil {
		return nil, &ConfigError{Field: "DB_DIALECT", Err: err}
	}

	return b, nil
}
