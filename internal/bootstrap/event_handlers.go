package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/LetterSpin_Go/internal/event"
	"github.com/osse101/LetterSpin_Go/internal/logger"
	"github.com/osse101/LetterSpin_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the Prometheus collector and the event
// auditor to every engine event.
func RegisterEventHandlers(bus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	for _, eventType := range event.EngineTypes {
		bus.Subscribe(eventType, auditEvent)
	}
	slog.Info(LogMsgEventAuditorRegistered, "types", len(event.EngineTypes))

	return nil
}

// auditEvent writes each committed outcome to the debug log.
func auditEvent(ctx context.Context, evt event.Event) error {
	logger.FromContext(ctx).Debug(LogMsgEventAudited,
		"type", evt.Type,
		"version", evt.Version,
		"payload", evt.Payload)
	return nil
}
