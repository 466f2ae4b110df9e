package grpc

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// handleSignals receives SIGTERM / SIGINT etc to gracefully shut down a gRPC server.
// Repeated signals cause the server to terminate at increasing levels of urgency.
func handleSignals(log *slog.Logger, callbacks ...func()) {
	c := make(chan os.Signal, len(callbacks)) // Channel should be buffered a bit
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	i := 0
	for sig := range c {
		log.Info("received signal", "number", i+1, "signal", sig.String())
		if i >= len(callbacks) {
			os.Exit(1)
		}
		go callbacks[i]()
		i++
	}
}
