package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/adapter"
	syncpkg "github.com/skrillsdev/skrills/internal/sync"
)

// NewSyncAllCmd creates the sync-all command: fan out a sync from one
// adapter to every other configured adapter.
func NewSyncAllCmd() *cobra.Command {
	var from string
	var dryRun, jsonOut bool

	cmd := &cobra.Command{
		Use:   "sync-all",
		Short: "Sync from one adapter to every other adapter",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := resolveAdapterByName(cmd, from)
			if err != nil {
				return err
			}

			all := adapters(cmd)
			targets := make([]adapter.AgentAdapter, 0, len(all)-1)
			for name, a := range all {
				if name == src.Name() {
					continue
				}
				targets = append(targets, a)
			}

			opts := syncpkg.DefaultOptions()
			opts.DryRun = dryRun

			reports := syncpkg.SyncAll(src, targets, syncpkg.AllFields(), opts)

			if jsonOut {
				data, _ := json.MarshalIndent(reports, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			for _, report := range reports {
				printSyncReport(report, false)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source adapter: claude, codex, or copilot")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan without writing")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")
	cmd.MarkFlagRequired("from")
	return cmd
}
