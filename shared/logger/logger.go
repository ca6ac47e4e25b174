package logger

import (
	"io"
	"os"
	"time"
	"vista/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const FormatJSON = "json"

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(console())
	log.Trace().Msg("Zerolog initialized.")
}

func console() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
}

// Writer picks stdout as-is for json, the pretty console writer otherwise.
func Writer(format string) io.Writer {
	if format == FormatJSON {
		return os.Stdout
	}

	return console()
}

// WithFileOutput switches stdout to the configured format and, when a path is set, also writes raw JSON lines into
// a size-rotated file.
func WithFileOutput(config *config.Config) {
	stdout := Writer(config.Logger.Format)

	if config.Logger.FilePath == "" {
		log.Logger = log.Output(stdout)

		return
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(stdout, NewRotatingWriter(config)))

	log.Info().Str("path", config.Logger.FilePath).Msg("File logging enabled.")
}

func NewRotatingWriter(config *config.Config) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   config.Logger.FilePath,
		MaxSize:    config.Logger.MaxSizeMB,
		MaxBackups: config.Logger.MaxBackups,
		MaxAge:     config.Logger.MaxAgeDays,
		Compress:   true,
	}
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel falls back to trace when LOG_LEVEL is empty or unknown.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
