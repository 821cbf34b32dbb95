package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteProject string

var deleteCmd = &cobra.Command{
	Use:     "delete <task-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Run:     deleteTask,
}

func init() {
	deleteCmd.Flags().StringVarP(&deleteProject, "project", "p", "", "Project holding the task (default: search all projects)")
}

func deleteTask(cmd *cobra.Command, args []string) {
	if err := runDelete(args[0]); err != nil {
		fatal("%v", err)
	}
}

func runDelete(id string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	p, err := s.findTask(deleteProject, id)
	if err != nil {
		s.close()
		return err
	}
	task, err := s.ws.DeleteTask(p.Name, id)
	if err != nil {
		s.close()
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if err := s.commit(); err != nil {
		return err
	}

	fmt.Printf("✓ Task deleted: %s\n", id)
	fmt.Printf("  %s\n", task.Title)
	return nil
}
