package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mindlog/internal/app/consumers"
	"mindlog/internal/app/deps"
)

// The worker consumes queued reminder notifications and delivers them
// by email. It shares the dependency wiring with the HTTP server but
// exposes no network surface of its own.
func main() {
	deps, shutdownDeps := deps.InitDeps()
	shutdownConsumers := consumers.InitConsumers(deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	deps.Logger.Info(context.Background(), "Worker has started.")
	<-stopCh

	shutdownConsumers()
	shutdownDeps()
	deps.Logger.Info(context.Background(), "Worker has shutdowned.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
