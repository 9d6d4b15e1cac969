package cmd

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogging(out io.Writer) error {
	level, err := zerolog.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	if v.GetBool(keyVerbose) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	switch v.GetString(keyLogFormat) {
	case "json":
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	case "console", "":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	default:
		return errors.Errorf("unknown log format %q", v.GetString(keyLogFormat))
	}
	return nil
}
