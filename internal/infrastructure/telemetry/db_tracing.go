package telemetry

import (
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include query variables in spans, dev only
	SlowQueryThresh time.Duration
	DBName          string
}

// DefaultDBTracingConfig returns the default database tracing configuration.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:         false,
		LogFullSQL:      false,
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "ordena",
	}
}

// RegisterDBTracing installs the otelgorm plugin on the GORM instance and a
// callback that flags slow queries on the active span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(cfg.DBName),
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerSlowQueryCallback(db, cfg.SlowQueryThresh); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func registerSlowQueryCallback(db *gorm.DB, threshold time.Duration) error {
	if threshold <= 0 {
		threshold = DefaultDBTracingConfig().SlowQueryThresh
	}

	before := func(db *gorm.DB) {
		db.Set("telemetry:query_start", time.Now())
	}
	after := func(db *gorm.DB) {
		startVal, ok := db.Get("telemetry:query_start")
		if !ok {
			return
		}
		start, ok := startVal.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		if elapsed < threshold {
			return
		}
		span := trace.SpanFromContext(db.Statement.Context)
		if !span.IsRecording() {
			return
		}
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
		)
	}

	if err := db.Callback().Query().Before("gorm:query").Register("telemetry:before_query", before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("telemetry:slow_query", after); err != nil {
		return err
	}
	if err := db.Callback().Create().Before("gorm:create").Register("telemetry:before_create", before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("telemetry:slow_create", after); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("telemetry:before_update", before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("telemetry:slow_update", after); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("telemetry:before_delete", before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("telemetry:slow_delete", after); err != nil {
		return err
	}
	return nil
}
