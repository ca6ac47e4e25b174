package main

import (
	"vista/config"
	"vista/di"
	_ "vista/docs"
	"vista/helper"
	"vista/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Vista Suite API
// @version 1.0
// @description Hotel operations dashboard: shift logs, staff messaging, rooms, bookings and analytics.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)
	logger.WithFileOutput(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
