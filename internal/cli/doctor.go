package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/contentmux/contentmux/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and source health",
	RunE:  doctorAction,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func doctorAction(cmd *cobra.Command, _ []string) error {
	ok := true

	// Config dir
	if info, err := os.Stat(configDir); err != nil || !info.IsDir() {
		printCheck(false, "config directory %s", configDir)
		return fmt.Errorf("some checks failed")
	}
	printCheck(true, "config directory %s", configDir)

	// Config file
	cfg, err := config.Load(configDir)
	if err != nil {
		printCheck(false, "config.yaml: %v", err)
		return fmt.Errorf("some checks failed")
	}
	counts := make(map[string]int)
	for _, src := range cfg.Sources {
		counts[src.Type]++
	}
	printCheck(true, "config.yaml (%d file, %d feed, %d scrape, %d database)",
		counts[config.TypeFile], counts[config.TypeFeed], counts[config.TypeScrape], counts[config.TypeDatabase])

	// Per-source probes
	mgr, _, err := newManager()
	if err != nil {
		printCheck(false, "sources: %v", err)
		return fmt.Errorf("some checks failed")
	}
	defer mgr.Cleanup()

	health := mgr.HealthCheckAll(cmd.Context())
	names := make([]string, 0, len(health))
	for name := range health {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printCheck(health[name], "source %s", name)
		if !health[name] {
			ok = false
		}
	}

	stats := mgr.Statistics()
	if stats.TotalSources < len(cfg.Sources) {
		printInfo("%d of %d configured sources registered", stats.TotalSources, len(cfg.Sources))
		ok = false
	}

	if !ok {
		return fmt.Errorf("some checks failed")
	}
	fmt.Println("\nAll checks passed.")
	return nil
}

func printCheck(pass bool, format string, args ...any) {
	mark := "FAIL"
	if pass {
		mark = " OK "
	}
	fmt.Printf("[%s] %s\n", mark, fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Printf("[INFO] %s\n", fmt.Sprintf(format, args...))
}
