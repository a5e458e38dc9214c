package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/docflow_app/internal/middleware"
	"github.com/jackc/pgx/v5"

	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Location is the zone the workflow clock runs in. Nil means UTC.
	Location *time.Location
	// Now is replaceable in tests.
	Now func() time.Time
}

// Option configures the BaseService embedded in every service.
type Option func(*BaseService)

// WithLocation sets the zone audit and aging timestamps are taken in.
func WithLocation(loc *time.Location) Option {
	return func(s *BaseService) {
		s.Location = loc
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		s.Now = now
	}
}

func (s *BaseService) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Clock returns the current time in the configured location.
func (s *BaseService) Clock() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// RunInTx runs fn inside one transaction. Any error from fn rolls the
// transaction back and is returned unchanged.
func (s *BaseService) RunInTx(ctx context.Context, txManager portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := txManager.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction")
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := txManager.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back transaction")
		}
		return err
	}

	if err := txManager.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction")
		return err
	}
	return nil
}
