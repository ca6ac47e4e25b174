package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"vista/config"
	"vista/di"
	"vista/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)
	logger.WithFileOutput(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeWorker()
	consumer.Run(ctx)

	log.Info().Msg("activity worker stopped")
}
