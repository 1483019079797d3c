package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/cliutil"
	"github.com/skrillsdev/skrills/internal/depresolver"
	"github.com/skrillsdev/skrills/internal/skillindex"
	"github.com/skrillsdev/skrills/internal/skillsource"
)

// NewResolveDependenciesCmd creates the resolve-dependencies command.
func NewResolveDependenciesCmd() *cobra.Command {
	var jsonOut bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "resolve-dependencies <skill>",
		Short: "Resolve a skill's depends graph to a flat, ordered list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := buildCache(cmd)
			if err != nil {
				return err
			}
			snap, err := cache.Get()
			if err != nil {
				return err
			}

			lookup := func(name string, source skillsource.Source) []skillindex.SkillMeta {
				var out []skillindex.SkillMeta
				for _, s := range snap.Skills {
					if s.Name != name {
						continue
					}
					if source != "" && s.Source != source {
						continue
					}
					out = append(out, s)
				}
				return out
			}

			opts := depresolver.DefaultOptions()
			if maxDepth > 0 {
				opts.MaxDepth = maxDepth
			}

			result, err := depresolver.Resolve(args[0], lookup, opts)
			if err != nil {
				return err
			}

			if jsonOut {
				data, _ := json.MarshalIndent(result, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			for _, dep := range result.Resolved {
				fmt.Printf("%s%s (%s, depth %d)\n", indent(dep.Depth), dep.Name, dep.Source, dep.Depth)
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(os.Stderr, "%s %s\n", cliutil.WarningIcon, w)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "override the default max resolution depth")
	return cmd
}

func indent(depth int) string {
	out := make([]byte, depth*2)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
