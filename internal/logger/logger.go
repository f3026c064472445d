package logger

import (
	"fmt"
	"io"
	"os"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/config"
)

// Setup configures the global zerolog logger from config. The console format
// is used outside production; a rotating file sink is added when enabled.
func Setup(cfg config.LoggingConfig) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var writers []io.Writer
	if cfg.Format == "console" {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		writers = append(writers, os.Stdout)
	}

	if cfg.File.Enabled {
		fw, err := rotatelogs.New(
			cfg.File.Path+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.File.Path),
			rotatelogs.WithMaxAge(cfg.File.MaxAge),
			rotatelogs.WithRotationTime(cfg.File.RotationTime),
		)
		if err != nil {
			return fmt.Errorf("failed to open rotating log file: %w", err)
		}
		writers = append(writers, fw)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	return nil
}
