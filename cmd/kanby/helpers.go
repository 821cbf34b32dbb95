package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/fmizzell/kanby"
)

// session is one run of the tool against a data file
type session struct {
	cfg     Config
	logger  *log.Logger
	logFile io.Closer
	store   *kanby.FileStore
	manager *kanby.SaveManager
	ws      *kanby.Workspace
}

// openSession loads the workspace and starts the save pipeline
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, logFile := newLogger(cfg)

	store, err := kanby.NewFileStore(cfg.DataFile, kanby.WithStoreLogger(logger))
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}

	manager := kanby.NewSaveManager(store,
		kanby.WithLogger(logger),
		kanby.WithPollInterval(cfg.PollInterval),
		kanby.WithJoinTimeout(cfg.JoinTimeout),
	)

	ws := store.Load()
	logger.WithFields(log.Fields{
		"path":     store.Path(),
		"projects": len(ws.Projects),
		"tasks":    ws.TaskCount(),
	}).Info("workspace loaded")

	return &session{
		cfg:     cfg,
		logger:  logger,
		logFile: logFile,
		store:   store,
		manager: manager,
		ws:      ws,
	}, nil
}

// commit drains pending saves, writes the current workspace and releases the session
func (s *session) commit() error {
	s.manager.Shutdown()
	err := s.manager.SaveNow(s.ws, s.cfg.ShutdownSaveTimeout)
	if err != nil {
		s.logger.WithError(err).Error("final save failed")
	}
	s.logFile.Close()
	if err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	return nil
}

// close releases the session without writing
func (s *session) close() {
	s.manager.Shutdown()
	s.logFile.Close()
}

// project resolves a project by name; empty means the remembered project
func (s *session) project(name string) (*kanby.Project, error) {
	if name == "" {
		return s.ws.CurrentProject(), nil
	}
	p := s.ws.Project(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", kanby.ErrProjectNotFound, name)
	}
	return p, nil
}

// findTask returns the project holding id, searching every project when name is empty
func (s *session) findTask(name, id string) (*kanby.Project, error) {
	if name != "" {
		p, err := s.project(name)
		if err != nil {
			return nil, err
		}
		if _, ok := p.Find(id); !ok {
			return nil, fmt.Errorf("%w: %s", kanby.ErrTaskNotFound, id)
		}
		return p, nil
	}
	for _, p := range s.ws.Projects {
		if _, ok := p.Find(id); ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", kanby.ErrTaskNotFound, id)
}

// parseColumn accepts a column's name or a short alias such as "todo" or "doing"
func parseColumn(input string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	switch normalized {
	case "todo", "":
		return kanby.ColumnTodo, nil
	case "inprogress", "progress", "doing", "wip":
		return kanby.ColumnInProgress, nil
	case "done", "complete", "completed":
		return kanby.ColumnDone, nil
	}
	return "", fmt.Errorf("%w: %s (use todo, in-progress or done)", kanby.ErrUnknownColumn, input)
}

// parsePriorityFlag validates a --priority value
func parsePriorityFlag(input string) (kanby.Priority, error) {
	if strings.TrimSpace(input) == "" {
		return kanby.DefaultPriority, nil
	}
	p := kanby.ParsePriority(input, "")
	if p == "" {
		return "", fmt.Errorf("unknown priority: %s (use low, mid or high)", input)
	}
	return p, nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
