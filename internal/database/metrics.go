package database

import (
	"context"
	"fmt"
	"time"

	"shopcatalog/internal/persistence"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const unnamedQuery = "unnamed"

type queryStartKey struct{}

// QueryMetrics is a pgx tracer that counts and times queries, labelled by the
// name set with persistence.WithQueryName.
type QueryMetrics struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewQueryMetrics creates the collectors and registers them with reg.
func NewQueryMetrics(reg prometheus.Registerer) (*QueryMetrics, error) {
	m := &QueryMetrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "db",
			Name:      "queries_total",
			Help:      "Queries executed, by query name and outcome.",
		}, []string{"query", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Query latency, by query name.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"query"}),
	}

	for _, c := range []prometheus.Collector{m.queries, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register query metrics: %w", err)
		}
	}
	return m, nil
}

func (m *QueryMetrics) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, time.Now())
}

func (m *QueryMetrics) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	name := persistence.QueryName(ctx)
	if name == "" {
		name = unnamedQuery
	}

	outcome := "ok"
	if data.Err != nil {
		outcome = "error"
	}
	m.queries.WithLabelValues(name, outcome).Inc()

	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		m.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}
