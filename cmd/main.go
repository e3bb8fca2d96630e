package main

import (
	"os"

	"github.com/joho/godotenv"

	"offerwall-service/internal/logger"
	"offerwall-service/internal/server"
)

func main() {
	envErr := godotenv.Load(".env")

	logger.Init(os.Getenv("APP_ENV"))
	if envErr != nil {
		logger.Get().Warn().Msg("no .env file loaded, using process environment")
	}

	if err := server.Start(); err != nil {
		logger.Get().Fatal().Err(err).Msg("server failed to start")
	}
}
