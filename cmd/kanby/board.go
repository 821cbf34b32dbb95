package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fmizzell/kanby/tui"
)

func runBoard(cmd *cobra.Command, args []string) {
	s, err := openSession()
	if err != nil {
		fatal("%v", err)
	}

	model := tui.New(s.ws, s.manager)
	program := tea.NewProgram(model, tea.WithAltScreen())

	s.manager.SetCallbacks(
		func(msg string) { program.Send(tui.SaveResultMsg{Text: msg}) },
		func(msg string) { program.Send(tui.SaveResultMsg{Text: msg, Failed: true}) },
	)

	// Ctrl+C reaches the board as a key press; signals from outside end the program the same way
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)
	go func() {
		sig, ok := <-signals
		if !ok {
			return
		}
		s.logger.WithField("signal", sig.String()).Info("shutting down on signal")
		program.Quit()
	}()

	_, runErr := program.Run()
	s.manager.SetCallbacks(nil, nil)
	if runErr != nil {
		s.logger.WithError(runErr).Error("board exited with error")
	}

	// The board may hold changes that were never queued, such as an unconfirmed move
	if err := s.commit(); err != nil {
		fmt.Fprintf(os.Stderr, "Kanby closed, but the final save failed: %v\n", err)
		os.Exit(1)
	}
	if runErr != nil {
		fatal("%v", runErr)
	}
	fmt.Println("Kanby closed. Your data has been saved.")
}
