package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeredson/Spoti-Finder/internal/adapters/rest"
	"github.com/jeredson/Spoti-Finder/internal/adapters/spotify"
	"github.com/jeredson/Spoti-Finder/internal/adapters/sqlite"
	"github.com/jeredson/Spoti-Finder/internal/adapters/text"
	"github.com/jeredson/Spoti-Finder/internal/config"
	"github.com/jeredson/Spoti-Finder/internal/core/services"
	"github.com/jeredson/Spoti-Finder/internal/logging"
	"github.com/jeredson/Spoti-Finder/internal/worker"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		log.Fatal().Msg("SPOTIFINDER_SPOTIFY_CLIENT_ID and SPOTIFINDER_SPOTIFY_CLIENT_SECRET are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Driven adapters.
	repo, err := sqlite.NewAdapter(cfg.Catalog.CachePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog cache")
	}
	defer repo.Close()

	provider := spotify.NewClient(ctx, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, log)
	detector := text.NewAnalyzer()

	// Core services.
	recommender := services.NewRecommender(services.WithPreferenceWeight(cfg.Recommend.PreferenceWeight))
	library := services.NewLibrary(provider, repo, services.LibraryConfig{
		Genres:         cfg.Spotify.Genres,
		TracksPerGenre: cfg.Spotify.PerGenre,
		Clusters:       cfg.Catalog.Clusters,
	}, log)

	if err := library.LoadCached(ctx); err != nil {
		log.Warn().Err(err).Msg("could not restore cached catalog")
	}
	if cfg.Catalog.RefreshOnStart {
		go func() {
			if _, err := library.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("initial catalog refresh failed")
			}
		}()
	}

	pool := worker.NewPool(repo, cfg.Worker.QueueSize, log)
	pool.Start(cfg.Worker.Workers)
	defer pool.Stop()

	// Driving adapter.
	handler := rest.NewHandler(recommender, library, detector, pool, rest.Limits{
		Default: cfg.Recommend.DefaultLimit,
		Max:     cfg.Recommend.MaxLimit,
	}, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("spotifinder api listening")

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown error")
		}
	}
}
