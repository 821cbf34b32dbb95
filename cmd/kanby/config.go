package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/fmizzell/kanby"
)

const (
	defaultDataFile            = "kanby_data.json"
	defaultLogName             = "kanby.log"
	defaultLogLevel            = "info"
	defaultShutdownSaveTimeout = 5 * time.Second
)

// Config holds runtime settings resolved from flags, the environment and .env
type Config struct {
	DataFile            string
	LogFile             string
	LogLevel            string
	PollInterval        time.Duration
	JoinTimeout         time.Duration
	ShutdownSaveTimeout time.Duration
}

// loadConfig reads .env (if present) and the environment, then applies flag overrides
func loadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		DataFile:            envString("KANBY_DATA_FILE", defaultDataFile),
		LogFile:             envString("KANBY_LOG_FILE", ""),
		LogLevel:            envString("KANBY_LOG_LEVEL", defaultLogLevel),
		PollInterval:        envDuration("KANBY_SAVE_POLL_INTERVAL", kanby.DefaultPollInterval),
		JoinTimeout:         envDuration("KANBY_SAVE_JOIN_TIMEOUT", kanby.DefaultJoinTimeout),
		ShutdownSaveTimeout: envDuration("KANBY_SHUTDOWN_SAVE_TIMEOUT", defaultShutdownSaveTimeout),
	}

	if dataFileFlag != "" {
		cfg.DataFile = dataFileFlag
	}
	if logFileFlag != "" {
		cfg.LogFile = logFileFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(filepath.Dir(cfg.DataFile), defaultLogName)
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
