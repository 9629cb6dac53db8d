package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/glasscube/glasscube"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile   string
	verbose   bool
	appConfig glasscube.SiteConfig
)

var rootCmd = &cobra.Command{
	Use:   "glasscube",
	Short: "Portfolio and blog site backed by a content API",
	Long: `glasscube serves a localized portfolio, blog and project pages read from an
external content API, with an editor under /yoz/ that writes back to it.
It also ships a terminal résumé (glasscube term).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./glasscube.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.AddCommand(serveCmd, termCmd, versionCmd)
}

func initializeConfig(_ *cobra.Command) error {
	cfg, err := glasscube.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the glasscube version",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("glasscube %s\n", version)
	},
}
