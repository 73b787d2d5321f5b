// Package database owns the PostgreSQL runtime the gateways run on: the pgx
// connection pool, query tracing, transactions and schema migrations.
package database

import (
	"context"
	"fmt"

	"shopcatalog/internal/config"
	"shopcatalog/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// DB wraps the pgx connection pool and a logger.
type DB struct {
	Pool *pgxpool.Pool
	log  zerolog.Logger
}

type options struct {
	registerer prometheus.Registerer
}

type Option func(*options)

// WithMetrics records query metrics into reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// multiTracer fans pgx's single tracer slot out to several tracers.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// New creates a connection pool from cfg and pings it.
//
// SQL statements are traced through the logger in the local environment only.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...Option) (*DB, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}
	poolConfig.MaxConns = cfg.Database.MaxConns
	poolConfig.MinConns = cfg.Database.MinConns
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	var tracers []pgx.QueryTracer
	if o.registerer != nil {
		metrics, err := NewQueryMetrics(o.registerer)
		if err != nil {
			return nil, err
		}
		tracers = append(tracers, metrics)
	}
	if cfg.IsLocal() {
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   logger.NewPgxLogger(log),
			LogLevel: logger.PgxTraceLogLevel(log.GetLevel()),
		})
	}
	switch len(tracers) {
	case 0:
	case 1:
		poolConfig.ConnConfig.Tracer = tracers[0]
	default:
		poolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("dsn", RedactDSN(cfg.Database.DSN())).Msg("connected to the database")
	return &DB{Pool: pool, log: log}, nil
}

// InTx runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back otherwise.
func (db *DB) InTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, db.Pool, fn)
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
}
