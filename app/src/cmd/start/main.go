package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpapi "atm-service/app/src/api/http"
	"atm-service/app/src/domain"
	"atm-service/app/src/infra"
	"atm-service/app/src/shared/constants"
)

// forcedExitCode is returned when a second interrupt arrives during
// shutdown: 128+SIGINT, distinct from init failures.
const forcedExitCode = 130

func main() {
	ctx := infra.WithCorrelationID(context.Background(), constants.GenerateUUID())

	app, cleanup, err := initApplication(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise application: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	cfg := app.Config
	logger := app.Logger

	infra.LogConfig(ctx, logger, cfg)
	infra.StartMetricsServer(logger, cfg.MetricsPort)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	capacity := cfg.ChannelCapacity
	if capacity <= 0 {
		capacity = 1000
	}
	reports := make(chan domain.Message, capacity)

	var fleet sync.WaitGroup
	for _, aircraft := range app.Fleet {
		aircraft := aircraft
		fleet.Add(1)
		go func() {
			defer fleet.Done()
			aircraft.Run(runCtx, reports)
		}()
	}

	towerDone := make(chan domain.TowerStats, 1)
	go func() {
		towerDone <- app.Tower.Run(runCtx, reports)
	}()

	httpServer := newHTTPServer(cfg.HTTPPort, app.Board, len(app.Fleet), logger)
	httpListener, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		stop()
		<-towerDone
		fleet.Wait()
		cleanup()
		logger.Fatalf(ctx, "failed to listen on HTTP port %s: %v", cfg.HTTPPort, err)
	}

	serverErrs := make(chan error, 1)
	var servers sync.WaitGroup

	servers.Add(1)
	go func() {
		defer servers.Done()
		logger.Printf(ctx, "status API listening on %s", httpListener.Addr())
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrs <- fmt.Errorf("http server: %w", err)
		}
	}()

	runtime := time.Duration(cfg.RuntimeSeconds) * time.Second
	logger.Printf(ctx, "running simulation for %s with %d aircraft", runtime, len(app.Fleet))

	select {
	case <-time.After(runtime):
		logger.Println(ctx, "runtime window elapsed, stopping")
	case sig := <-sigCh:
		logger.Printf(ctx, "received %s, stopping", sig)
	case err := <-serverErrs:
		logger.Errorf(ctx, "server error: %v", err)
	}

	stop()

	// Escape hatch: a second interrupt skips the graceful drain and
	// exits immediately. Unflushed log rows are lost on this path.
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "received %s during shutdown, exiting immediately\n", sig)
		os.Exit(forcedExitCode)
	}()

	stats := <-towerDone
	fleet.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Printf(ctx, "HTTP server shutdown error: %v", err)
	}
	servers.Wait()

	logger.Printf(ctx, "simulation complete: processed=%d rejected=%d terminated=%d log=%s",
		stats.Processed, stats.Rejected, stats.Terminated, cfg.LogPath)
}

func newHTTPServer(port string, status domain.StatusSource, aircraftCount int, logger *infra.Logger) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           httpapi.NewServer(status, aircraftCount, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
