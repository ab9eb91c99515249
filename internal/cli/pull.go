package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contentmux/contentmux/internal/render"
)

var pullFormat string

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch and normalize content from all configured sources",
	RunE:  pullAction,
}

func init() {
	pullCmd.Flags().StringVar(&pullFormat, "format", "terminal", "output format: terminal, json")
	rootCmd.AddCommand(pullCmd)
}

func pullAction(cmd *cobra.Command, _ []string) error {
	mgr, _, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Cleanup()

	models := mgr.FetchModels(cmd.Context())

	in := render.Input{Models: models, Stats: mgr.Statistics()}
	switch pullFormat {
	case "json":
		return render.NewJSON().Format(os.Stdout, in)
	case "terminal", "":
		return render.NewTerminal(false).Format(os.Stdout, in)
	default:
		return fmt.Errorf("unknown format %q (want terminal or json)", pullFormat)
	}
}
