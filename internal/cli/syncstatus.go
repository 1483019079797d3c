package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/cliutil"
)

// NewSyncStatusCmd creates the sync-status command: report the current
// snapshot's age and skill count without forcing a rebuild.
func NewSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-status",
		Short: "Report the current skill snapshot's age and skill count",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := buildCache(cmd)
			if err != nil {
				return err
			}
			snap, err := cache.Get()
			if err != nil {
				return err
			}

			fmt.Printf("%s %d skills indexed across %d roots\n", cliutil.SuccessIcon, len(snap.Skills), len(snap.Roots))
			fmt.Printf("  %s %s\n", cliutil.Dim("taken at"), snap.TakenAt.Format("2006-01-02T15:04:05Z07:00"))
			for _, r := range snap.Roots {
				fmt.Printf("  %s %s -> %s\n", cliutil.Dim("root"), r.Source, r.Dir)
			}
			return nil
		},
	}
}
