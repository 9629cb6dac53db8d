package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glasscube/glasscube/api"
	"github.com/glasscube/glasscube/locale"
	"github.com/glasscube/glasscube/settings"
	"github.com/glasscube/glasscube/tui"
)

var (
	termLog    string
	termSilent bool
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Run the terminal résumé",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig

		logFile, err := os.OpenFile(termLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer logFile.Close()
		logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel()}))

		bundle, err := locale.Load()
		if err != nil {
			return err
		}

		db, err := settings.OpenSQLite(cfg.StateDBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		prefs, err := settings.Open(cmd.Context(), db)
		if err != nil {
			return err
		}

		client, err := api.NewClient(cfg.APIURL, cfg.APIOptions(logger)...)
		if err != nil {
			return err
		}

		tcfg := tui.Config{
			Bundle:       bundle,
			Prefs:        prefs,
			Projects:     client,
			Logger:       logger,
			FetchTimeout: cfg.APITimeout,
		}
		if !termSilent {
			tcfg.Player = tui.NewBellPlayer(os.Stderr)
		}

		p := tea.NewProgram(tui.New(tcfg), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
		stop := tui.Subscribe(p, prefs)
		defer stop()

		if _, err := p.Run(); err != nil {
			logger.Error("terminal exited", "err", err)
			return err
		}
		return nil
	},
}

func init() {
	termCmd.Flags().StringVar(&termLog, "log", "glasscube-term.log", "debug log file")
	termCmd.Flags().BoolVar(&termSilent, "silent", false, "disable the terminal bell")
}
