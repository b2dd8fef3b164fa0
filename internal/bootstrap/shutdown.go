package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/LetterSpin_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	Events *EventSystem
	Stores *Stores
}

// GracefulShutdown stops the HTTP server first so no new requests start,
// then flushes pending events and finally closes the store.
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Events != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.Events.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Stores != nil {
		slog.Info(LogMsgClosingStore)
		components.Stores.Close()
	}

	slog.Info(LogMsgServerStopped)
}
