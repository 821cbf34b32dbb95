package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectDeleteYes bool

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProjectList(); err != nil {
			fatal("%v", err)
		}
	},
}

var projectNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProjectNew(args[0]); err != nil {
			fatal("%v", err)
		}
	},
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProjectRename(args[0], args[1]); err != nil {
			fatal("%v", err)
		}
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a project and all of its tasks",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProjectDelete(args[0]); err != nil {
			fatal("%v", err)
		}
	},
}

var projectUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Open this project next time the board starts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProjectUse(args[0]); err != nil {
			fatal("%v", err)
		}
	},
}

func init() {
	projectDeleteCmd.Flags().BoolVarP(&projectDeleteYes, "yes", "y", false, "Delete without asking")
	projectCmd.AddCommand(projectListCmd, projectNewCmd, projectRenameCmd, projectDeleteCmd, projectUseCmd)
}

func runProjectList() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	current := s.ws.CurrentProject().Name
	for _, p := range s.ws.Projects {
		marker := " "
		if p.Name == current {
			marker = "*"
		}
		count := 0
		for _, tasks := range p.Columns {
			count += len(tasks)
		}
		fmt.Printf("%s %s (%d tasks)\n", marker, p.Name, count)
	}
	return nil
}

func runProjectNew(name string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	p, err := s.ws.CreateProject(name)
	if err != nil {
		s.close()
		return fmt.Errorf("failed to create project: %w", err)
	}
	if err := s.commit(); err != nil {
		return err
	}
	fmt.Printf("✓ Project created: %s\n", p.Name)
	return nil
}

func runProjectRename(oldName, newName string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := s.ws.RenameProject(oldName, newName); err != nil {
		s.close()
		return fmt.Errorf("failed to rename project: %w", err)
	}
	if err := s.commit(); err != nil {
		return err
	}
	fmt.Printf("✓ Project renamed: %s → %s\n", oldName, newName)
	return nil
}

func runProjectDelete(name string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	p, err := s.project(name)
	if err != nil {
		s.close()
		return err
	}
	if !projectDeleteYes {
		s.close()
		return fmt.Errorf("refusing to delete project %q without --yes", p.Name)
	}
	if err := s.ws.DeleteProject(p.Name); err != nil {
		s.close()
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if err := s.commit(); err != nil {
		return err
	}
	fmt.Printf("✓ Project deleted: %s\n", name)
	return nil
}

func runProjectUse(name string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := s.ws.SetLastProject(name); err != nil {
		s.close()
		return err
	}
	if err := s.commit(); err != nil {
		return err
	}
	fmt.Printf("✓ Current project: %s\n", name)
	return nil
}
