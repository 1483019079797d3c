package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/cliutil"
	"github.com/skrillsdev/skrills/internal/validator"
)

// NewAnalyzeCmd creates the analyze command: validate plus optional
// suggestion/autofix of the issues Autofix knows how to resolve
// (missing/too-long name and description).
func NewAnalyzeCmd() *cobra.Command {
	var targetArg string
	var suggestions bool
	var fix bool
	var backup bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Validate skills and optionally suggest or apply fixes",
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
			report.WriteText(os.Stdout)

			if !suggestions && !fix {
				if !report.OK() {
					os.Exit(1)
				}
				return nil
			}

			fmt.Println()
			for _, res := range results {
				if len(res.Issues) == 0 || res.Skill.SourcePath == "" {
					continue
				}
				if fix {
					kinds, err := validator.Autofix(res.Skill.SourcePath, res.Issues, validator.FixOptions{Backup: backup})
					if err != nil {
						fmt.Fprintf(os.Stderr, "%s %s: %v\n", cliutil.ErrorIcon, res.Skill.SourcePath, err)
						continue
					}
					if len(kinds) > 0 {
						fmt.Printf("%s %s: fixed %v\n", cliutil.SuccessIcon, res.Skill.SourcePath, kinds)
					}
				} else {
					fmt.Printf("%s %s: autofix would address %d issue(s)\n", cliutil.Info("suggestion"), res.Skill.SourcePath, len(res.Issues))
				}
			}

			if !report.OK() && !fix {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetArg, "target", "all", "claude, codex, copilot, both, or all")
	cmd.Flags().BoolVar(&suggestions, "suggestions", false, "print autofix suggestions without applying them")
	cmd.Flags().BoolVar(&fix, "fix", false, "apply autofix in place")
	cmd.Flags().BoolVar(&backup, "backup", true, "write a .bak copy before autofixing (with --fix)")
	return cmd
}
