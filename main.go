// main.go
//
// Entry point for the Hangman HTTP server.
// Loads configuration, opens and migrates the database, loads the phrase
// list, and serves until SIGINT/SIGTERM.

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/db"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/logging"
	"github.com/robalobadob/hangman/internal/phrases"
	"github.com/robalobadob/hangman/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (overrides "+config.EnvConfigPath+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup("hangman-go", cfg.LogLevel, cfg.LogFormat)

	conn, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open database")
	}
	defer conn.Close()
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	list, err := phrases.Load(cfg.PhrasesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load phrase list")
	}
	log.Info().Int("phrases", list.Len()).Msg("phrase list loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg, store.NewMemoryStore(), conn, list)
	log.Info().Str("port", cfg.Port).Msg("starting hangman server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("server stopped")
}
