package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the data file and what it holds",
	Args:  cobra.NoArgs,
	Run:   showStatus,
}

func showStatus(cmd *cobra.Command, args []string) {
	if err := runStatus(); err != nil {
		fatal("%v", err)
	}
}

func runStatus() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	fmt.Printf("Data file: %s\n", s.store.Path())
	if info, err := os.Stat(s.store.Path()); err == nil {
		fmt.Printf("  Size: %d bytes, modified %s\n", info.Size(), info.ModTime().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("  Not created yet")
	}
	if _, err := os.Stat(s.store.BackupPath()); err == nil {
		fmt.Printf("Backup: %s\n", s.store.BackupPath())
	} else {
		fmt.Println("Backup: none")
	}
	if _, err := os.Stat(s.store.TempPath()); err == nil {
		fmt.Printf("Warning: leftover temp file %s from an interrupted save\n", s.store.TempPath())
	}

	fmt.Printf("Projects: %d\n", len(s.ws.Projects))
	fmt.Printf("Tasks: %d\n", s.ws.TaskCount())
	fmt.Printf("Current project: %s\n", s.ws.CurrentProject().Name)
	fmt.Printf("Log file: %s\n", s.cfg.LogFile)

	saves := s.manager.Status()
	fmt.Printf("Save pipeline: running=%t in_progress=%t queued=%d saved=%d failed=%d\n",
		saves.Running, saves.SaveInProgress, saves.QueueDepth, saves.SuccessCount, saves.FailureCount)
	if saves.LastSaveTime.IsZero() {
		fmt.Println("  Last save: none this session")
	} else {
		fmt.Printf("  Last save: %s\n", saves.LastSaveTime.Format("2006-01-02 15:04:05"))
	}
	return nil
}
