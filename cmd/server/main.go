package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docsite/internal/api"
	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/outline"
	"github.com/dgallion1/docsite/internal/parser"
	"github.com/dgallion1/docsite/internal/perf"
	"github.com/dgallion1/docsite/internal/render"
	"github.com/dgallion1/docsite/internal/section"
	"github.com/dgallion1/docsite/internal/session"
	"github.com/dgallion1/docsite/internal/site"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Section sources, tried in order.
	var sources []section.Source
	if cfg.ContentDir != "" {
		sources = append(sources, section.NewFileSource(cfg.ContentDir))
	}
	var remote *section.RemoteSource
	if cfg.RemoteBaseURL != "" {
		remote = section.NewRemoteSource(cfg.RemoteBaseURL)
		sources = append(sources, remote)
	}

	builder := &outline.Builder{
		Top:       outline.ParseLevel(cfg.HeadingTop),
		Sub:       outline.ParseLevel(cfg.HeadingSub),
		Separator: outline.DefaultSeparator,
	}
	monitor := perf.NewMonitor(cfg.PerfWindow)

	topics := site.DefaultTopics()
	pageIDs := make([]string, 0, len(topics))
	for _, t := range topics {
		pageIDs = append(pageIDs, t.ContentID())
	}

	loader := section.NewLoader(section.Config{
		Patterns:        cfg.SectionPatterns,
		CacheTTL:        cfg.SectionCacheTTL,
		WarmConcurrency: cfg.WarmConcurrency,
		MaxBytes:        cfg.MaxSectionBytes,
		Parser:          parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		ReservedIDs:     pageIDs,
	}, builder, monitor, log, sources...)
	loader.Start(ctx)

	if cfg.WarmOnStart {
		go func() {
			refs, err := loader.List()
			if err != nil {
				log.Warn("listing sections for warm-up failed", "error", err)
				return
			}
			n := loader.Warm(ctx, refs)
			log.Info("section cache warmed", "loaded", n, "total", len(refs))
		}()
	}

	sessions := session.NewStore(cfg.SessionTTL)
	go sessions.Start(ctx, time.Minute)

	renderer, err := render.New()
	if err != nil {
		log.Error("template setup failed", "error", err)
		os.Exit(1)
	}

	// Initialize HTTP server.
	srv := api.NewServer(site.New(topics, site.DefaultBreakpoints()), loader, sessions, monitor, renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()
		loader.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if remote != nil {
			remote.Close()
		}
	}()

	log.Info("starting docsite", "port", cfg.Port, "content_dir", cfg.ContentDir, "remote", cfg.RemoteBaseURL)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
