package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/popcorn/internal/config"
	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/prefs"
	"github.com/five82/popcorn/internal/state"
	"github.com/five82/popcorn/internal/ui"
	"github.com/five82/popcorn/internal/watchlist"
)

// Options configure the popcorn application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/popcorn/prefs.toml
	Storage    string // overrides the config's storage backend when set
}

// Services are the wired components the UI runs on.
type Services struct {
	Config config.Config
	Prefs  prefs.Prefs
	Client *omdb.Client
	Store  *state.Store

	persist watchlist.Store
}

// Setup loads configuration, starts logging and opens the watched list.
// The caller must Close the result.
func Setup(ctx context.Context, opts Options) (*Services, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.SetStorage(opts.Storage)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logging.Init(cfg.LogDir, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logging.Warn("preferences unreadable, using defaults", "error", err)
	}

	client, err := omdb.NewClient(cfg.APIBase, cfg.APIKey, cfg.RequestsPerSecond)
	if err != nil {
		logging.Close()
		return nil, fmt.Errorf("init omdb client: %w", err)
	}

	persist, err := watchlist.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		logging.Close()
		return nil, fmt.Errorf("open watched list: %w", err)
	}

	store, err := state.NewStore(ctx, persist)
	if err != nil {
		_ = persist.Close()
		logging.Close()
		return nil, err
	}

	logging.Info("popcorn starting",
		"storage", cfg.Storage,
		"data_dir", cfg.DataDir,
		"api_base", cfg.APIBase,
		"rate", cfg.RequestsPerSecond,
	)

	return &Services{
		Config:  cfg,
		Prefs:   userPrefs,
		Client:  client,
		Store:   store,
		persist: persist,
	}, nil
}

// Close cancels outstanding requests and releases storage and the log file.
func (s *Services) Close() error {
	s.Store.Shutdown()
	err := s.persist.Close()
	logging.Close()
	return err
}

// Run boots the popcorn TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	svc, err := Setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, svc.Close())
	}()

	return ui.Run(ui.Options{
		Context:   ctx,
		Searcher:  svc.Client,
		Store:     svc.Store,
		Prefs:     svc.Prefs,
		PrefsPath: opts.PrefsPath,
		LogPath:   logging.Path(),
	})
}
