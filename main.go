package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/walkbingo/internal/db"
	"github.com/robalobadob/walkbingo/internal/httpserver"
	"github.com/robalobadob/walkbingo/internal/prompts"
	"github.com/robalobadob/walkbingo/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := prompts.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load prompt pool")
	}
	log.Info().Int("prompts", prompts.Stats()).Msg("prompt pool loaded")

	sqlDB, err := db.OpenAndMigrate(getEnv("DB_PATH", "./data/walkbingo.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer sqlDB.Close()

	srv := httpserver.New(httpserver.ConfigFromEnv(), store.NewMemoryStore(), sqlDB)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting walkbingo server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
