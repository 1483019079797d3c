package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/cliutil"
	syncpkg "github.com/skrillsdev/skrills/internal/sync"
)

// NewSyncCmd creates the sync command: sync one field set from one adapter
// to another.
func NewSyncCmd() *cobra.Command {
	var from, to string
	var dryRun, skipExistingCommands, conflictSkip, jsonOut bool
	var skillsOnly, commandsOnly, mcpOnly, prefsOnly bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync skills/commands/mcp servers/preferences from one adapter to another",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := resolveAdapterByName(cmd, from)
			if err != nil {
				return err
			}
			dst, err := resolveAdapterByName(cmd, to)
			if err != nil {
				return err
			}

			sel := syncpkg.AllFields()
			if skillsOnly || commandsOnly || mcpOnly || prefsOnly {
				sel = syncpkg.Selection{Skills: skillsOnly, Commands: commandsOnly, McpServers: mcpOnly, Preferences: prefsOnly}
			}

			opts := syncpkg.DefaultOptions()
			opts.DryRun = dryRun
			opts.SkipExistingCommands = skipExistingCommands
			if conflictSkip {
				opts.Conflict = syncpkg.ConflictSkip
			}

			report, err := syncpkg.Run(src, dst, sel, opts)
			if err != nil {
				return err
			}
			printSyncReport(report, jsonOut)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source adapter: claude, codex, or copilot")
	cmd.Flags().StringVar(&to, "to", "", "target adapter: claude, codex, or copilot")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan without writing")
	cmd.Flags().BoolVar(&skipExistingCommands, "skip-existing-commands", false, "never overwrite a command that already exists on the target")
	cmd.Flags().BoolVar(&conflictSkip, "conflict-skip", false, "skip items whose content differs instead of overwriting")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")
	cmd.Flags().BoolVar(&skillsOnly, "skills", false, "sync skills only")
	cmd.Flags().BoolVar(&commandsOnly, "commands", false, "sync commands only")
	cmd.Flags().BoolVar(&mcpOnly, "mcp-servers", false, "sync mcp servers only")
	cmd.Flags().BoolVar(&prefsOnly, "preferences", false, "sync preferences only")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func printSyncReport(report syncpkg.Report, jsonOut bool) {
	if jsonOut {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("%s -> %s (%s)\n", report.Source, report.Target, cliutil.Dim(report.CorrelationID))
	fmt.Printf("  %s created, %s updated, %d skipped, %d failed\n",
		cliutil.Success(fmt.Sprint(report.Created)), cliutil.Success(fmt.Sprint(report.Updated)),
		len(report.Skipped), len(report.Failed))
	for _, item := range report.Skipped {
		fmt.Printf("  %s %s/%s: %s\n", cliutil.WarningIcon, item.Field, item.Name, item.Reason)
	}
	for _, item := range report.Failed {
		icon := cliutil.ErrorIcon
		reason := item.Reason
		if item.Err != nil {
			reason = item.Err.Error()
		}
		fmt.Fprintf(os.Stderr, "  %s %s: %s\n", icon, item.Name, reason)
	}
}
