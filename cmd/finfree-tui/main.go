package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/config"
	"github.com/rgehrsitz/finfree/internal/store"
	"github.com/rgehrsitz/finfree/internal/tracker"
	"github.com/rgehrsitz/finfree/internal/tui"
)

func main() {
	var settingsFile, logFile string

	rootCmd := &cobra.Command{
		Use:   "finfree-tui [state-file]",
		Short: "Interactive financial freedom dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(settingsFile)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				settings.Store.Driver = config.StoreFile
				settings.Store.Path = args[0]
			}

			// the screen belongs to the TUI, so logs go to a file
			logger := logrus.New()
			logger.SetLevel(logrus.WarnLevel)
			if level, err := logrus.ParseLevel(settings.LogLevel); err == nil {
				logger.SetLevel(level)
			}
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()
			logger.SetOutput(f)

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(logger)

			st, err := store.New(settings.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			tr, err := tracker.Open(cmd.Context(), st, engine)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				tui.NewModel(cmd.Context(), tr, settings.Currency),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	rootCmd.Flags().StringVar(&settingsFile, "settings", "", "Settings file (default finfree-settings.yaml)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "finfree-tui.log", "Where to write logs while the dashboard runs")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
