package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	addProject  string
	addColumn   string
	addPriority string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long:  `Add a new task to a column of a project. Defaults to the To Do column of the last opened project.`,
	Args:  cobra.MinimumNArgs(1),
	Run:   addTask,
}

func init() {
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "Project name (default: last opened project)")
	addCmd.Flags().StringVarP(&addColumn, "column", "c", "todo", "Column: todo, in-progress or done")
	addCmd.Flags().StringVarP(&addPriority, "priority", "P", "mid", "Priority: low, mid or high")
}

func addTask(cmd *cobra.Command, args []string) {
	if err := runAdd(strings.Join(args, " ")); err != nil {
		fatal("%v", err)
	}
}

func runAdd(title string) error {
	column, err := parseColumn(addColumn)
	if err != nil {
		return err
	}
	priority, err := parsePriorityFlag(addPriority)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	p, err := s.project(addProject)
	if err != nil {
		s.close()
		return err
	}

	task, err := s.ws.AddTask(p.Name, column, title, priority)
	if err != nil {
		s.close()
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.commit(); err != nil {
		return err
	}

	fmt.Printf("✓ Task created: %s\n", task.ID)
	fmt.Printf("  Title: %s\n", task.Title)
	fmt.Printf("  Project: %s\n", p.Name)
	fmt.Printf("  Column: %s\n", column)
	fmt.Printf("  Priority: %s\n", task.Priority)
	return nil
}
