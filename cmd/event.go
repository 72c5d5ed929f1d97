package cmd

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/safety-lms/internal/core/events"
	"github.com/frahmantamala/safety-lms/pkg/logger"
)

// subscribeEventLog records every domain event in the application log.
func subscribeEventLog(bus *events.EventBus, lg *slog.Logger) {
	logEvent := func(ctx context.Context, event events.Event) error {
		lg.InfoContext(ctx, "domain event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"trace_id", logger.TraceID(ctx),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		events.EventTypeEnrollmentCreated,
		events.EventTypeEnrollmentCompleted,
		events.EventTypeMigrationFallback,
	} {
		bus.Subscribe(eventType, logEvent)
	}
}
