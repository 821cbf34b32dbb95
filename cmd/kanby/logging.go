package main

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger writes to a rolling file; the terminal belongs to the board
func newLogger(cfg Config) (*log.Logger, *lumberjack.Logger) {
	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
	}

	logger := log.New()
	logger.SetOutput(file)
	logger.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	if err != nil {
		logger.WithError(err).Warnf("unknown log level %q, using info", cfg.LogLevel)
	}

	return logger, file
}
