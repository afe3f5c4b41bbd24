package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"scotlandyard/config"
	"scotlandyard/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("config", os.Getenv(config.EnvPrefix+"_CONFIG"), "Path to a YAML config file")
	name := flag.String("name", "match", "Experiment name used for the records directory")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	log.Debug().Msgf("loaded config: %+v", *cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp, err := experiments.FromConfig(*name, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up experiment")
	}
	if _, err := experiments.Run(ctx, exp); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}
