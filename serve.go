package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aouyang1/errorparty/api"
	"github.com/aouyang1/errorparty/assets"
	"github.com/aouyang1/errorparty/audio"
	"github.com/aouyang1/errorparty/celebrate"
	"github.com/aouyang1/errorparty/config"
	"github.com/aouyang1/errorparty/diagnostics"
	"github.com/aouyang1/errorparty/panel"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daemon: panel server and diagnostics watcher",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rotator := assets.NewRotator(cfg.RootPath)
	for _, c := range assets.Categories {
		names, err := rotator.Pool(c)
		if err != nil {
			slog.Warn("asset pool unavailable", "category", c, "dir", rotator.Dir(c), "error", err)
			continue
		}
		slog.Info("found assets", "category", c, "dir", rotator.Dir(c), "count", len(names))
	}

	surface := panel.NewSurface()
	seq := celebrate.NewSequencer(celebrate.Config{
		Display: surface,
		Picker:  rotator,
		Player:  audio.NewPlayer(nil),
		Prober:  audio.NewProber(nil),
	})
	defer seq.Stop()

	watcher, err := diagnostics.NewWatcher(cfg.DiagnosticsPath, seq.Trigger)
	if err != nil {
		return fmt.Errorf("failed to initialize diagnostics watcher: %w", err)
	}

	ws := api.NewWebServer(rotator, surface, seq, api.WithErrorCount(watcher.Errors))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// manual triggers still work without the watcher
		if err := watcher.Run(ctx); err != nil {
			slog.Warn("diagnostics watcher stopped", "path", watcher.Path(), "error", err)
		}
		return nil
	})
	g.Go(func() error {
		return ws.Run(ctx, cfg.ListenAddr)
	})
	slog.Info("panel available", "url", cfg.WebServerURL)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("shutting down")
	return nil
}
