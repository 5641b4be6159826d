package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/cli"
	"github.com/robalobadob/mastermind/internal/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		log.Error().Err(err).Msg("mastermind")
		os.Exit(cli.GetExitCode(err))
	}
}
