package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/contentmux/contentmux/internal/render"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search fetched content by title and body",
	Args:  cobra.ExactArgs(1),
	RunE:  searchAction,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func searchAction(cmd *cobra.Command, args []string) error {
	mgr, _, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Cleanup()

	mgr.FetchModels(cmd.Context())
	matches := mgr.Search(args[0])

	in := render.Input{Models: matches, Stats: mgr.Statistics()}
	return render.NewTerminal(false).Format(os.Stdout, in)
}
