package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dsforge/internal/handler"
	"dsforge/internal/hub"
	"dsforge/internal/loader"
	"dsforge/internal/log"
	"dsforge/internal/repository/sqlite"
	"dsforge/internal/scaffold"
	"dsforge/internal/service"
	"dsforge/internal/watcher"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("dsforge serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		addr         = fs.String("addr", "", "HTTP listen address")
		dbPath       = fs.String("db", "", "SQLite registry path")
		templatesDir = fs.String("templates", "", "directory with extra template packs")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := loadConfig()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *templatesDir != "" {
		cfg.TemplatesDir = *templatesDir
	}

	logger := log.WithComponent("serve")

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Database.Path).Msg("open registry")
		return 1
	}
	defer repo.Close()

	templates, err := loader.NewRegistry(cfg.TemplatesDir)
	if err != nil {
		logger.Error().Err(err).Msg("load templates")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := service.NewEventBus()

	sseHub := hub.New()
	go sseHub.Run(ctx)
	sseHub.Attach(ctx, bus)

	engine := scaffold.New(templates,
		scaffold.WithRepository(repo),
		scaffold.WithEventBus(bus),
		scaffold.WithDefaults(cfg.OutputDir, cfg.Author),
	)
	projects := service.NewProjectService(repo, bus)

	// Reload template packs when the directory changes on disk.
	if cfg.TemplatesDir != "" {
		w := watcher.New(cfg.TemplatesDir, func() {
			if err := templates.Reload(); err != nil {
				logger.Error().Err(err).Msg("reload templates")
				return
			}
			bus.Publish(service.Event{
				Type:    service.EventTemplatesReloaded,
				Payload: map[string]int{"templates": len(templates.List())},
			})
		})
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("template watcher stopped")
			}
		}()
	}

	h := handler.New(templates, engine, projects, sseHub)

	// No WriteTimeout: the /events stream stays open for the client's lifetime.
	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     h.Routes(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("db", cfg.Database.Path).Msg("server listening")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
		return 1
	}

	logger.Info().Msg("server stopped")
	return 0
}
