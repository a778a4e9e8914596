package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dbLogger routes gorm's log output through the global zerolog logger.
type dbLogger struct {
	level gormlogger.LogLevel
}

func newDBLogger() gormlogger.Interface {
	return &dbLogger{level: gormlogger.Warn}
}

func (l *dbLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &dbLogger{level: level}
}

func (l *dbLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		log.Info().Msgf(msg, args...)
	}
}

func (l *dbLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		log.Warn().Msgf(msg, args...)
	}
}

func (l *dbLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		log.Error().Msgf(msg, args...)
	}
}

// Trace logs every statement with its duration. A missing record is not
// treated as a query error, aggregating over empty data is the normal
// case for the ledger.
func (l *dbLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).
			Str("sql", sql).
			Dur("duration", time.Since(begin)).
			Msg("query failed")
		return
	}

	log.Debug().
		Str("sql", sql).
		Int64("rows", rows).
		Dur("duration", time.Since(begin)).
		Msg("query")
}
