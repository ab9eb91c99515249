package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate source statistics",
	RunE:  statsAction,
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", "terminal", "output format: terminal, json")
	rootCmd.AddCommand(statsCmd)
}

func statsAction(cmd *cobra.Command, _ []string) error {
	mgr, _, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Cleanup()

	mgr.FetchModels(cmd.Context())
	stats := mgr.Statistics()

	switch statsFormat {
	case "json":
		out := struct {
			TotalSources      int `json:"total_sources"`
			ActiveSources     int `json:"active_sources"`
			ErrorSources      int `json:"error_sources"`
			TotalContentItems int `json:"total_content_items"`
		}{stats.TotalSources, stats.ActiveSources, stats.ErrorSources, stats.TotalContentItems}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "terminal", "":
		fmt.Printf("sources: %d total, %d active, %d error\n",
			stats.TotalSources, stats.ActiveSources, stats.ErrorSources)
		fmt.Printf("content items (last fetch): %d\n", stats.TotalContentItems)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want terminal or json)", statsFormat)
	}
}
