package cli

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/five82/tody/internal/config"
	"github.com/five82/tody/internal/logs"
	"github.com/five82/tody/internal/logtail"
)

func newLogsCmd(a *App) *cobra.Command {
	var lines int
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			minLevel := slog.LevelDebug
			if level != "" {
				if minLevel, err = logs.ParseLevel(level); err != nil {
					return err
				}
			}

			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			tail = logtail.FilterLevel(tail, minLevel)

			out := cmd.OutOrStdout()
			if len(tail) == 0 {
				_, err := fmt.Fprintf(out, "No log entries in %s\n", cfg.LogFile)
				return err
			}
			colorizer := logtail.NewColorizer(lipgloss.NewRenderer(out))
			for _, line := range colorizer.Lines(tail) {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to read from the end of the file (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "Only show records at or above this level (debug|info|warn|error; default all)")
	return cmd
}
