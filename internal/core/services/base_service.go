package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/events"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.AuthorizerSvc
	Clock      func() time.Time
}

// BaseOption configures the BaseService embedded in every service.
type BaseOption func(*BaseService)

// WithAuthorizer sets the permission checker used by AuthorizeUser.
func WithAuthorizer(a portssvc.AuthorizerSvc) BaseOption {
	return func(b *BaseService) {
		b.Authorizer = a
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) BaseOption {
	return func(b *BaseService) {
		b.Clock = now
	}
}

func newBaseService(opts []BaseOption) BaseService {
	var b BaseService
	for _, opt := range opts {
		opt(&b)
	}
	return b
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
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logLookupError logs repository failures but stays quiet on plain not-found results.
func (s *BaseService) logLookupError(ctx context.Context, err error, msg string, keyvals ...any) {
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, msg, keyvals...)
	}
}

// AuthorizeUser checks that the user holds the required permission.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID string, perm domain.Permission) error {
	if s.Authorizer != nil {
		if err := s.Authorizer.Authorize(ctx, userID, perm); err != nil {
			s.LogDebug(ctx, "Permission check failed",
				slog.String("user_id", userID),
				slog.String("permission", string(perm)))
			return err
		}
		return nil
	}
	s.LogDebug(ctx, "No authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("permission", string(perm)))
	return nil
}

func (s *BaseService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// publishEvent hands env to the publisher after the business write committed. Failures
// are logged only; the journal can be rebuilt through the replay endpoint.
func (s *BaseService) publishEvent(ctx context.Context, pub events.Publisher, env events.Envelope) {
	if pub == nil {
		s.LogDebug(ctx, "No event publisher configured, skipping event", slog.String("event_type", string(env.Type)))
		return
	}
	if err := pub.Publish(ctx, env); err != nil {
		s.LogError(ctx, err, "Failed to publish business event",
			slog.String("event_type", string(env.Type)),
			slog.String("source_id", env.SourceID))
		return
	}
	s.LogDebug(ctx, "Business event published",
		slog.String("event_type", string(env.Type)),
		slog.String("source_id", env.SourceID))
}
