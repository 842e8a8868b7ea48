package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/config"
	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/feed"
	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/metrics"
	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/server"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector()
	store := feed.NewStore()
	client := gtfsrt.NewClient(cfg.Feed.URL, cfg.Feed.APIKey)
	scheduler := feed.NewScheduler(client, store, cfg.Feed.RefreshInterval(), collector)

	go scheduler.Run(ctx)

	srv := server.New(cfg.Server.Port, store, scheduler, collector.Handler())
	srv.Start()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
}
