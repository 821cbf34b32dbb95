package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmizzell/kanby"
)

func clearFlags(t *testing.T) {
	t.Helper()
	oldData, oldLog, oldLevel := dataFileFlag, logFileFlag, logLevelFlag
	dataFileFlag, logFileFlag, logLevelFlag = "", "", ""
	t.Cleanup(func() {
		dataFileFlag, logFileFlag, logLevelFlag = oldData, oldLog, oldLevel
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	clearFlags(t)
	for _, key := range []string{"KANBY_DATA_FILE", "KANBY_LOG_FILE", "KANBY_LOG_LEVEL", "KANBY_SAVE_POLL_INTERVAL", "KANBY_SAVE_JOIN_TIMEOUT", "KANBY_SHUTDOWN_SAVE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultDataFile, cfg.DataFile)
	assert.Equal(t, defaultLogName, cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, kanby.DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, kanby.DefaultJoinTimeout, cfg.JoinTimeout)
	assert.Equal(t, defaultShutdownSaveTimeout, cfg.ShutdownSaveTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearFlags(t)
	t.Setenv("KANBY_DATA_FILE", "/tmp/boards/data.json")
	t.Setenv("KANBY_LOG_FILE", "")
	t.Setenv("KANBY_LOG_LEVEL", "debug")
	t.Setenv("KANBY_SAVE_POLL_INTERVAL", "250ms")
	t.Setenv("KANBY_SAVE_JOIN_TIMEOUT", "bogus")
	t.Setenv("KANBY_SHUTDOWN_SAVE_TIMEOUT", "10s")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/boards/data.json", cfg.DataFile)
	assert.Equal(t, filepath.Join("/tmp/boards", defaultLogName), cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, kanby.DefaultJoinTimeout, cfg.JoinTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownSaveTimeout)
}

func TestFlagsOverrideEnv(t *testing.T) {
	clearFlags(t)
	t.Setenv("KANBY_DATA_FILE", "/tmp/env.json")
	t.Setenv("KANBY_LOG_FILE", "/tmp/env.log")
	t.Setenv("KANBY_LOG_LEVEL", "warn")

	dataFileFlag = "/tmp/flag.json"
	logFileFlag = "/tmp/flag.log"
	logLevelFlag = "error"

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag.json", cfg.DataFile)
	assert.Equal(t, "/tmp/flag.log", cfg.LogFile)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	cfg := Config{LogFile: filepath.Join(t.TempDir(), "kanby.log"), LogLevel: "chatty"}
	logger, file := newLogger(cfg)
	defer file.Close()

	assert.Equal(t, "info", logger.GetLevel().String())
}
