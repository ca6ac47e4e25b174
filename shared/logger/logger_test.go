package logger_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"vista/config"
	"vista/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func preserve(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	preserve(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestSetLogLevel(t *testing.T) {
	preserve(t)

	tests := []struct {
		logLevel string
		want     zerolog.Level
	}{
		{logLevel: "debug", want: zerolog.DebugLevel},
		{logLevel: "info", want: zerolog.InfoLevel},
		{logLevel: "error", want: zerolog.ErrorLevel},
		{logLevel: "disabled", want: zerolog.Disabled},
		{logLevel: "loud", want: zerolog.TraceLevel},
		{logLevel: "", want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.logLevel, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestErrorWithStack(t *testing.T) {
	preserve(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("room 204 not found"))

	assert.Contains(t, buf.String(), "room 204 not found")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestWriter(t *testing.T) {
	assert.Same(t, os.Stdout, logger.Writer(logger.FormatJSON))
	assert.IsType(t, zerolog.ConsoleWriter{}, logger.Writer("console"))
}

func TestWithFileOutput(t *testing.T) {
	preserve(t)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	path := filepath.Join(t.TempDir(), "vista.log")

	cfg := &config.Config{}
	cfg.Logger.Format = logger.FormatJSON
	cfg.Logger.FilePath = path
	cfg.Logger.MaxSizeMB = 1

	logger.WithFileOutput(cfg)
	log.Info().Str("room", "204").Msg("status changed")

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "File logging enabled.")
	assert.Contains(t, string(content), `"room":"204"`)
}

func TestNewRotatingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vista.log")

	cfg := &config.Config{}
	cfg.Logger.FilePath = path
	cfg.Logger.MaxSizeMB = 1

	writer := logger.NewRotatingWriter(cfg)
	defer writer.Close()

	_, err := writer.Write([]byte("shift started\n"))
	assert.NoError(t, err)

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "shift started\n", string(content))
}
