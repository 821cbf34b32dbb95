package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	dataFileFlag string
	logFileFlag  string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:     "kanby",
	Short:   "Terminal kanban board",
	Long:    `Kanby keeps To Do, In Progress and Done columns for any number of projects in a single JSON file. Run without a subcommand to open the board.`,
	Version: version,
	Run:     runBoard,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataFileFlag, "data-file", "f", "", "Path to the data file (default kanby_data.json, or $KANBY_DATA_FILE)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Path to the log file (default kanby.log next to the data file)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(addCmd, listCmd, editCmd, moveCmd, doneCmd, deleteCmd, projectCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
