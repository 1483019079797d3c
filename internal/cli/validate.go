package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/validator"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	var targetArg string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check discovered skills against a target's frontmatter rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := buildCache(cmd)
			if err != nil {
				return err
			}
			snap, err := cache.Get()
			if err != nil {
				return err
			}

			targets, err := validator.Targets(targetArg)
			if err != nil {
				return err
			}

			var results []validator.Result
			for _, t := range targets {
				results = append(results, validator.CheckAll(snap.Skills, t)...)
			}
			report := validator.NewReport(results)

			if jsonOut {
				if err := report.WriteJSON(os.Stdout); err != nil {
					return err
				}
			} else {
				report.WriteText(os.Stdout)
			}

			if !report.OK() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetArg, "target", "all", "claude, codex, copilot, both, or all")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")
	return cmd
}
