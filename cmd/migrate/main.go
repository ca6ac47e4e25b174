package main

import (
	"os"
	"slices"
	"strings"
	"vista/config"
	"vista/helper"
	"vista/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < 2 || !slices.Contains(helper.Actions, os.Args[1]) {
		log.Fatal().Msgf("usage: migrate <%s> [version]", strings.Join(helper.Actions, "|"))
	}

	if err := helper.Run(config.Get(), os.Args[1], os.Args[2:]...); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("migration failed")
	}
}
