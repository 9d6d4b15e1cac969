package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFreshConfig swaps in an unbound viper instance for the test.
func withFreshConfig(t *testing.T, file string) {
	t.Helper()
	oldV, oldFile := v, configFile
	v, configFile = newViper(), file
	t.Cleanup(func() { v, configFile = oldV, oldFile })
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sss256.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field: rijndael\nshares: 7\nlog:\n  level: warn\n"), 0600))
	withFreshConfig(t, path)

	require.NoError(t, loadConfig())
	assert.Equal(t, 7, v.GetInt(keyShares))
	assert.Equal(t, "warn", v.GetString(keyLogLevel))

	f, err := configuredField()
	require.NoError(t, err)
	assert.Equal(t, "rijndael", f.Name())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	withFreshConfig(t, "")

	require.NoError(t, loadConfig(), "a missing default config file is fine")
	f, err := configuredField()
	require.NoError(t, err)
	assert.Equal(t, "0x11d", f.Name())
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	withFreshConfig(t, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, loadConfig())
}

func TestEnvironmentOverridesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sss256.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 2\n"), 0600))
	withFreshConfig(t, path)
	t.Setenv("SSS256_THRESHOLD", "4")

	require.NoError(t, loadConfig())
	assert.Equal(t, 4, v.GetInt(keyThreshold))
}

func TestConfiguredFieldInvalid(t *testing.T) {
	withFreshConfig(t, "")
	v.Set(keyField, "0x100")
	_, err := configuredField()
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	withFreshConfig(t, "")
	logger := log.Logger
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
	})

	var buf bytes.Buffer
	v.Set(keyLogFormat, "json")
	require.NoError(t, setupLogging(&buf))
	log.Info().Str("file", "a.share").Msg("created share")
	log.Debug().Msg("hidden")
	assert.Contains(t, buf.String(), `"file":"a.share"`)
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	v.Set(keyVerbose, true)
	require.NoError(t, setupLogging(&buf))
	log.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")

	v.Set(keyLogFormat, "xml")
	assert.Error(t, setupLogging(&buf))

	v.Set(keyLogFormat, "json")
	v.Set(keyLogLevel, "loud")
	assert.Error(t, setupLogging(&buf))
}
