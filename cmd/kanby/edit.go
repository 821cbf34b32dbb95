package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editProject  string
	editTitle    string
	editPriority string
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Change a task's title or priority",
	Args:  cobra.ExactArgs(1),
	Run:   editTask,
}

func init() {
	editCmd.Flags().StringVarP(&editProject, "project", "p", "", "Project holding the task (default: search all projects)")
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editPriority, "priority", "P", "", "New priority: low, mid or high")
}

func editTask(cmd *cobra.Command, args []string) {
	if err := runEdit(args[0]); err != nil {
		fatal("%v", err)
	}
}

func runEdit(id string) error {
	if editTitle == "" && editPriority == "" {
		return errors.New("nothing to change: pass --title and/or --priority")
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	p, err := s.findTask(editProject, id)
	if err != nil {
		s.close()
		return err
	}
	task, _, err := s.ws.FindTask(p.Name, id)
	if err != nil {
		s.close()
		return err
	}

	title := task.Title
	if editTitle != "" {
		title = editTitle
	}
	priority := task.Priority
	if editPriority != "" {
		if priority, err = parsePriorityFlag(editPriority); err != nil {
			s.close()
			return err
		}
	}

	if err := s.ws.EditTask(p.Name, id, title, priority); err != nil {
		s.close()
		return fmt.Errorf("failed to edit task: %w", err)
	}
	if err := s.commit(); err != nil {
		return err
	}

	fmt.Printf("✓ Task %s updated\n", id)
	fmt.Printf("  Title: %s\n", title)
	fmt.Printf("  Priority: %s\n", priority)
	return nil
}
