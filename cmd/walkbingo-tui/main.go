package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/walkbingo/internal/prompts"
	"github.com/robalobadob/walkbingo/internal/tui"
)

func main() {
	_ = godotenv.Load()

	if err := prompts.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load prompt pool")
	}
	if err := tui.Run(prompts.Pool(), os.Getenv("WALKBINGO_LOG")); err != nil {
		log.Fatal().Err(err).Msg("tui exited")
	}
}
