package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/gkh-dispatch/internal/events"
	"github.com/spec-kit/gkh-dispatch/internal/repository"
	apperrors "github.com/spec-kit/gkh-dispatch/pkg/util/errorutil"
)

// publishEvent stamps and dispatches an event. Handler failures never fail the command.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := dispatcher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event handlers failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

func requestLookupError(err error, requestID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
	}
	return apperrors.MapError(err)
}

func nopLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
