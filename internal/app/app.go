package app

import (
	"context"
	"fmt"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/config"
	"github.com/five82/reel/internal/genre"
	"github.com/five82/reel/internal/logging"
	"github.com/five82/reel/internal/prefs"
	"github.com/five82/reel/internal/ui"
)

// Options configure the Reel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/reel/prefs.toml
	Kind       string // movie or series; empty uses the saved preference
	APIBase    string // overrides api_base from the config file
	Debug      bool
}

// Run boots the Reel TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	uiOpts, closeLog, err := prepare(ctx, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	err = ui.Run(uiOpts)
	if err != nil {
		uiOpts.Logger.Error("ui exited", "err", err)
	} else {
		uiOpts.Logger.Info("reel stopped")
	}
	return err
}

// prepare loads settings and builds everything the UI needs. The returned
// func closes the log file.
func prepare(ctx context.Context, opts Options) (ui.Options, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	kind := userPrefs.Kind
	if opts.Kind != "" {
		kind, err = catalog.ParseKind(opts.Kind)
		if err != nil {
			return ui.Options{}, nil, err
		}
	}

	apiBase := cfg.APIBase
	if opts.APIBase != "" {
		apiBase = opts.APIBase
	}

	logFile, err := logging.Open(cfg.LogPath(), opts.Debug)
	if err != nil {
		return ui.Options{}, nil, err
	}
	logger := logFile.Logger

	client, err := catalog.NewClient(apiBase,
		catalog.WithRateLimit(cfg.RequestsPerSecond),
		catalog.WithLogger(logger.WithPrefix("catalog")),
	)
	if err != nil {
		_ = logFile.Close()
		return ui.Options{}, nil, fmt.Errorf("init catalog client: %w", err)
	}

	logger.Info("reel starting", "api", apiBase, "kind", kind, "locale", cfg.Locale.String())

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Kind:      kind,
		Collate:   genre.Collation(cfg.Locale),
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LogPath:   logFile.Path(),
	}
	return uiOpts, func() { _ = logFile.Close() }, nil
}
