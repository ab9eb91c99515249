// Package cli provides the command-line interface for contentmux.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/contentmux/contentmux/internal/config"
	"github.com/contentmux/contentmux/internal/manager"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "contentmux",
	Short: "Ingest and normalize content from pluggable sources",
	Long: "contentmux reads files, feeds, web pages, and content catalogs, " +
		"normalizes each item into a typed record, and reports on source health.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("contentmux %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the logger handed to the manager and connectors.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newManager loads the config and registers every configured source.
func newManager() (*manager.Manager, *config.Config, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	mgr := manager.New(
		manager.WithLogger(newLogger()),
		manager.WithFanout(cfg.Manager.Fanout),
		manager.WithTimeout(cfg.Manager.Timeout.Duration),
		manager.WithCacheTTL(cfg.Manager.CacheTTL.Duration),
	)
	for name, ok := range mgr.AddSources(cfg.Sources) {
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: source %s could not be added\n", name)
		}
	}
	return mgr, cfg, nil
}
