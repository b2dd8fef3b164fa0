package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/osse101/LetterSpin_Go/internal/config"
	"github.com/osse101/LetterSpin_Go/internal/event"
)

// EventSystem is the in-process bus the engine publishes outcomes on and
// the retrying publisher in front of it.
type EventSystem struct {
	Bus       *event.MemoryBus
	Publisher *event.ResilientPublisher
}

type eventSettings struct {
	maxRetries     int
	retryDelay     time.Duration
	deadLetterPath string
}

// resolveEventSettings applies defaults to unset event options.
func resolveEventSettings(cfg *config.Config) eventSettings {
	s := eventSettings{
		maxRetries:     cfg.EventMaxRetries,
		retryDelay:     cfg.EventRetryDelay,
		deadLetterPath: cfg.DeadLetterPath,
	}
	if s.maxRetries == 0 {
		s.maxRetries = EventDefaultMaxRetries
	}
	if s.retryDelay == 0 {
		s.retryDelay = EventDefaultRetryDelay
	}
	if s.deadLetterPath == "" {
		s.deadLetterPath = EventDefaultDeadLetterPath
	}
	return s
}

// InitializeEventSystem builds the bus, subscribes the metrics collector and
// the auditor, and starts the resilient publisher.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	settings := resolveEventSettings(cfg)

	if err := os.MkdirAll(filepath.Dir(settings.deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	if err := RegisterEventHandlers(bus); err != nil {
		return nil, err
	}

	publisher, err := event.NewResilientPublisher(bus, settings.maxRetries, settings.retryDelay, settings.deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	reportDeadLetters(settings.deadLetterPath)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", settings.maxRetries,
		"retry_delay", settings.retryDelay,
		"deadletter_path", settings.deadLetterPath)

	return &EventSystem{Bus: bus, Publisher: publisher}, nil
}

// reportDeadLetters warns about events a previous run could not deliver.
func reportDeadLetters(path string) int {
	entries, err := event.ReadDeadLetters(path)
	if err != nil {
		slog.Warn(LogMsgDeadLetterUnreadable, "path", path, "error", err)
		return 0
	}
	if len(entries) > 0 {
		slog.Warn(LogMsgDeadLettersPending, "path", path, "count", len(entries),
			"oldest", entries[0].Timestamp)
	}
	return len(entries)
}
