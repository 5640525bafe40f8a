package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/spaserve/internal/admin"
	"github.com/playperu/spaserve/internal/config"
	"github.com/playperu/spaserve/internal/handler/health"
	"github.com/playperu/spaserve/internal/metrics"
	"github.com/playperu/spaserve/internal/server"
	"github.com/playperu/spaserve/internal/spa"
)

const buildCommand = "flutter build web"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		if errors.Is(err, spa.ErrRootMissing) {
			fmt.Fprintf(os.Stderr, "error: %v: run '%s' first\n", err, buildCommand)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Static root ---
	site, err := spa.Open(cfg.StaticDir, cfg.IndexFile)
	if err != nil {
		return err
	}
	defer site.Close()
	if err := site.Check(ctx); err != nil {
		logger.Warn("entry document not servable, fallback requests will get 404", "dir", site.Dir(), "error", err)
	}

	// --- Public server ---
	m := metrics.New()
	app := spa.NewHandler(site.FS(), site.Index(), logger, spa.WithFallbackHook(m.ObserveFallback))
	srv := server.New(cfg.HTTPAddr(), logger, server.NewRouter(logger, app, m.Middleware))
	if err := srv.Listen(); err != nil {
		return err
	}

	// --- Admin server ---
	var adminSrv *server.Server
	if cfg.AdminAddr != "" {
		adminSrv = server.New(cfg.AdminAddr, logger, admin.NewRouter(logger, map[string]health.Checker{
			"static": site,
		}, m.Handler()))
		if err := adminSrv.Listen(); err != nil {
			srv.Close()
			return err
		}
	}

	announce(stdout, cfg.URL())

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", srv.Addr().String(), "dir", site.Dir())
		return srv.Serve()
	})

	if adminSrv != nil {
		g.Go(func() error {
			logger.Info("starting admin server", "addr", adminSrv.Addr().String())
			return adminSrv.Serve()
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			fmt.Fprintln(stdout, "\nServer stopped.")
		}
		logger.Info("shutting down http server")
		err := srv.Shutdown(context.Background())
		if adminSrv != nil {
			err = errors.Join(err, adminSrv.Shutdown(context.Background()))
		}
		return err
	})

	return g.Wait()
}

func announce(w io.Writer, url string) {
	fmt.Fprint(w, "Serving Flutter web app at ")
	color.New(color.FgGreen, color.Bold).Fprintln(w, url)
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")
}
