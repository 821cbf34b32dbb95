package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmizzell/kanby"
)

var (
	listProject string
	listColumn  string
	listAll     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `List the tasks of a project column by column. Use --all to print every project.`,
	Run:   listTasks,
}

func init() {
	listCmd.Flags().StringVarP(&listProject, "project", "p", "", "Project name (default: last opened project)")
	listCmd.Flags().StringVarP(&listColumn, "column", "c", "", "Only show one column: todo, in-progress or done")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "List every project")
}

func listTasks(cmd *cobra.Command, args []string) {
	if err := runList(); err != nil {
		fatal("%v", err)
	}
}

func runList() error {
	columns := kanby.Columns
	if listColumn != "" {
		column, err := parseColumn(listColumn)
		if err != nil {
			return err
		}
		columns = []string{column}
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	projects := s.ws.Projects
	if !listAll {
		p, err := s.project(listProject)
		if err != nil {
			return err
		}
		projects = []*kanby.Project{p}
	}

	for _, p := range projects {
		displayProject(p, columns)
	}
	return nil
}

func displayProject(p *kanby.Project, columns []string) {
	fmt.Printf("📋 %s\n", p.Name)
	fmt.Println()

	for _, column := range columns {
		tasks := p.Columns[column]
		fmt.Printf("%s (%d)\n", column, len(tasks))
		if len(tasks) == 0 {
			fmt.Println("  (empty)")
		}
		for _, task := range tasks {
			fmt.Printf("  %s %s  %s\n", priorityIcon(task.Priority), task.ID, task.Title)
		}
		fmt.Println()
	}
}

func priorityIcon(p kanby.Priority) string {
	switch p {
	case kanby.PriorityHigh:
		return "[H]"
	case kanby.PriorityLow:
		return "[L]"
	}
	return "[M]"
}
