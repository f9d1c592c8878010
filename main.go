package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/manuchak/detecta-core-sub015/api"
	"github.com/manuchak/detecta-core-sub015/gazetteer"
	"github.com/manuchak/detecta-core-sub015/util"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGINT,
}

func main() {
	config, err := util.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if config.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	gaz, err := loadGazetteer(config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load gazetteer")
	}
	log.Info().
		Int("places", len(gaz.Places())).
		Int("zones", len(gaz.Zones())).
		Msg("gazetteer loaded")

	waitGroup, ctx := errgroup.WithContext(ctx)

	runGinServer(ctx, waitGroup, config, gaz)

	err = waitGroup.Wait()
	if err != nil {
		log.Fatal().Err(err).Msg("error from wait group")
	}
}

// loadGazetteer prefers the operator-provided JSON table, falling back to
// the compiled-in one.
func loadGazetteer(config util.Config) (*gazetteer.Gazetteer, error) {
	if config.GazetteerPath == "" {
		return gazetteer.Default(), nil
	}
	return gazetteer.LoadFile(config.GazetteerPath)
}

// runGinServer starts the Gin HTTP server with graceful shutdown.
func runGinServer(
	ctx context.Context,
	waitGroup *errgroup.Group,
	config util.Config,
	gaz *gazetteer.Gazetteer,
) {
	server, err := api.NewServer(config, gaz)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create server")
	}

	httpServer := &http.Server{
		Addr:    config.HTTPServerAddress,
		Handler: server.GetRouter(),
		// Avoid slowloris and stuck connections under pressure.
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	waitGroup.Go(func() error {
		log.Info().Msgf("start HTTP server at %s", config.HTTPServerAddress)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server failed to serve")
			return err
		}
		return nil
	})

	waitGroup.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("graceful shutdown HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server forced to shutdown")
			return err
		}

		log.Info().Msg("HTTP server is stopped")
		return nil
	})
}
