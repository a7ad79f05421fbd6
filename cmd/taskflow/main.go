package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taskflow/taskflow/internal/app"
	"github.com/taskflow/taskflow/internal/backup"
	"github.com/taskflow/taskflow/internal/config"
	"github.com/taskflow/taskflow/internal/stats"
	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "taskflow",
	Short:   "Personal task and project tracker",
	Long:    `TaskFlow tracks tasks and projects locally: filter, sort and search them, follow deadlines, and review productivity statistics. Running without a subcommand opens the interactive interface.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, logger zerolog.Logger) error {
			logger.Info().Str("version", version).Msg("starting")
			program := tea.NewProgram(ui.NewApp(st, logger), tea.WithAltScreen())
			_, err := program.Run()
			return err
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all tasks and projects to a JSON backup",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, logger zerolog.Logger) error {
			now := time.Now()
			path := backup.DefaultFilename(now)
			if len(args) == 1 {
				path = args[0]
			}
			if err := backup.WriteFile(path, st.Tasks(), st.Projects(), now); err != nil {
				return err
			}
			logger.Info().Str("path", path).Msg("exported backup")
			fmt.Printf("Exported %d tasks and %d projects to %s\n",
				len(st.Tasks()), len(st.Projects()), path)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all state from a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, logger zerolog.Logger) error {
			tasks, projects, err := backup.ReadFile(args[0])
			if err != nil {
				if errors.Is(err, backup.ErrBadFormat) {
					return fmt.Errorf("%s is not a taskflow backup: %w", args[0], err)
				}
				return err
			}
			if err := st.ReplaceAll(tasks, projects); err != nil {
				return err
			}
			logger.Info().Str("path", args[0]).
				Int("tasks", len(tasks)).Int("projects", len(projects)).
				Msg("imported backup")
			fmt.Printf("Imported %d tasks and %d projects\n", len(tasks), len(projects))
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print task statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, logger zerolog.Logger) error {
			now := time.Now()
			tasks := st.Tasks()

			summary := stats.Summarize(tasks, now)
			fmt.Printf("Total: %d  Completed: %d  Pending: %d  Overdue: %d\n",
				summary.Total, summary.Completed, summary.Pending, summary.Overdue)

			for _, finding := range stats.Insights(tasks, now) {
				fmt.Println(finding)
			}
			return nil
		})
	},
}

// withStore loads config, logging and the entity store, runs fn, and
// tears everything down afterwards.
func withStore(fn func(*store.Store, zerolog.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, closeLogger, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLogger()

	entities, st, err := app.OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(entities, logger)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
