// Package cli implements the skrills command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/cliutil"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

// Version is set at build time.
var Version = "dev"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skrills",
		Short: "A shared skill layer across Claude, Codex, and Copilot",
		Long: `Skrills discovers skills across Claude, Codex, and Copilot config
directories, validates them against each agent's frontmatter rules, resolves
their depends graphs, and syncs skills/commands/mcp servers/preferences
between agents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("claude-root", "", "Claude config root (default $XDG_CONFIG_HOME/claude or $HOME/.claude)")
	rootCmd.PersistentFlags().String("codex-root", "", "Codex config root (default $XDG_CONFIG_HOME/codex or $HOME/.codex)")
	rootCmd.PersistentFlags().String("copilot-root", "", "Copilot config root (default $XDG_CONFIG_HOME/copilot or $HOME/.copilot)")

	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewSyncCmd())
	rootCmd.AddCommand(NewSyncAllCmd())
	rootCmd.AddCommand(NewSyncStatusCmd())
	rootCmd.AddCommand(NewResolveDependenciesCmd())
	rootCmd.AddCommand(NewDoctorCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("skrills %s\n", Version)
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if se, ok := err.(*skrillserr.Error); ok {
			fmt.Fprintf(os.Stderr, "%s %s\n", cliutil.ErrorIcon, se.Error())
			if se.Hint != "" {
				fmt.Fprintf(os.Stderr, "  %s\n", cliutil.Dim(se.Hint))
			}
		} else {
			fmt.Fprintf(os.Stderr, "%s %s\n", cliutil.ErrorIcon, err.Error())
		}
		return err
	}
	return nil
}
