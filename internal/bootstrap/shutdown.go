package bootstrap

import (
	"context"
	"io"
	"log/slog"
)

// stoppable is satisfied by *server.Server.
type stoppable interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  stoppable
	LogFile io.Closer
}

// GracefulShutdown stops the HTTP server, letting in-flight requests finish
// within ctx, then closes the log file. Errors are logged and do not stop
// the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)

	if components.LogFile != nil {
		if err := components.LogFile.Close(); err != nil {
			slog.Error(LogMsgLogFileCloseFailed, "error", err)
		}
	}
}
