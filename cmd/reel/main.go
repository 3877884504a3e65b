package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/reel/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override reel config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	kind := flag.String("type", "", "content type to open: movie or series (defaults to the saved choice)")
	apiBase := flag.String("api", "", "catalog API base URL (overrides api_base)")
	debug := flag.Bool("debug", false, "write debug logs")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Kind:       *kind,
		APIBase:    *apiBase,
		Debug:      *debug,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "reel: %v\n", err)
		return 1
	}
	return 0
}
