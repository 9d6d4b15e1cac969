package cmd

import (
	"strings"

	"github.com/Beastly713/sss256/pkg/gf256"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys. Flags, SSS256_* environment variables and the config
// file all resolve through these.
const (
	keyField       = "field"
	keyVerbose     = "verbose"
	keyLogLevel    = "log.level"
	keyLogFormat   = "log.format"
	keyShares      = "shares"
	keyThreshold   = "threshold"
	keyDestination = "destination"
	keyArmor       = "armor"
)

var (
	configFile string
	v          = newViper()
)

func newViper() *viper.Viper {
	cfg := viper.New()
	cfg.SetEnvPrefix("SSS256")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(keyField, "")
	cfg.SetDefault(keyLogLevel, "info")
	cfg.SetDefault(keyLogFormat, "console")
	cfg.SetDefault(keyArmor, false)
	return cfg
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// loadConfig reads the config file, if any. A missing default file is not
// an error; a missing explicit one is.
func loadConfig() error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".sss256")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "failed to read config")
	}
	return nil
}

// configuredField returns the field selected by --field / config.
func configuredField() (*gf256.Field, error) {
	f, err := gf256.ParseStrategy(v.GetString(keyField))
	if err != nil {
		return nil, errors.Wrap(err, "invalid field setting")
	}
	return f, nil
}
