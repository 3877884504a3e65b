package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/reel/internal/fixture"
	"github.com/five82/reel/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:8000", "listen address")
	dataPath := flag.String("data", "", "catalog JSON file (required)")
	rpm := flag.Int("rpm", 0, "requests per minute per client IP (0 disables)")
	delay := flag.Duration("delay", 0, "hold every /api/titles response this long")
	debug := flag.Bool("debug", false, "write debug logs")
	flag.Parse()

	if *dataPath == "" {
		fmt.Fprintln(os.Stderr, "reel-fixture: -data is required")
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := serve(ctx, *addr, *dataPath, *rpm, *delay, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "reel-fixture: %v\n", err)
		return 1
	}
	return 0
}

func serve(ctx context.Context, addr, dataPath string, rpm int, delay time.Duration, debug bool) error {
	logger := logging.New(os.Stderr, debug)

	cat, err := fixture.Load(dataPath)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: addr,
		Handler: fixture.NewServer(cat, fixture.Options{
			Logger:            logger,
			RequestsPerMinute: rpm,
			Delay:             delay,
		}).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "data", dataPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
