package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Lukk17/exchangeApp/internal/metrics"
	"github.com/Lukk17/exchangeApp/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics *metrics.Metrics // Optional
	Now     func() time.Time
}

// ServiceOption is a functional option shared by the rate services
type ServiceOption func(*BaseService)

// WithMetrics makes the service report to the given collectors
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithClock overrides the wall clock, mainly for tests
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Now = now
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{Now: time.Now}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
