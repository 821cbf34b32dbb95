package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmizzell/kanby"
)

var moveProject string

var moveCmd = &cobra.Command{
	Use:   "move <task-id> <column>",
	Short: "Move a task to another column",
	Long:  `Move a task to the end of another column. Column may be todo, in-progress or done.`,
	Args:  cobra.ExactArgs(2),
	Run:   moveTask,
}

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Complete a task",
	Long:  `Move a task to the Done column.`,
	Args:  cobra.ExactArgs(1),
	Run:   completeTask,
}

func init() {
	moveCmd.Flags().StringVarP(&moveProject, "project", "p", "", "Project holding the task (default: search all projects)")
	doneCmd.Flags().StringVarP(&moveProject, "project", "p", "", "Project holding the task (default: search all projects)")
}

func moveTask(cmd *cobra.Command, args []string) {
	column, err := parseColumn(args[1])
	if err != nil {
		fatal("%v", err)
	}
	if err := runMove(args[0], column); err != nil {
		fatal("%v", err)
	}
}

func completeTask(cmd *cobra.Command, args []string) {
	if err := runMove(args[0], kanby.ColumnDone); err != nil {
		fatal("%v", err)
	}
}

func runMove(id, column string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	p, err := s.findTask(moveProject, id)
	if err != nil {
		s.close()
		return err
	}

	task, ref, err := s.ws.FindTask(p.Name, id)
	if err != nil {
		s.close()
		return err
	}
	if ref.Column == column {
		s.close()
		fmt.Printf("Task %s is already in %s.\n", id, column)
		return nil
	}

	if err := s.ws.MoveTask(p.Name, id, column); err != nil {
		s.close()
		return fmt.Errorf("failed to move task: %w", err)
	}
	if err := s.commit(); err != nil {
		return err
	}

	fmt.Printf("✓ Task moved: %s\n", id)
	fmt.Printf("  %s: %s → %s\n", task.Title, ref.Column, column)
	return nil
}
