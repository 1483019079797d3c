package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/adapter"
	"github.com/skrillsdev/skrills/internal/adapter/claudeagent"
	"github.com/skrillsdev/skrills/internal/adapter/codexagent"
	"github.com/skrillsdev/skrills/internal/adapter/copilotagent"
	"github.com/skrillsdev/skrills/internal/runtimestate"
	"github.com/skrillsdev/skrills/internal/skillindex"
	"github.com/skrillsdev/skrills/internal/skrillserr"
	"github.com/skrillsdev/skrills/internal/snapshotcache"
)

// skrillsHome resolves $SKRILLS_HOME, defaulting to $HOME/.skrills.
func skrillsHome() string {
	if h := os.Getenv("SKRILLS_HOME"); h != "" {
		return h
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".skrills")
}

// adapterConfigRoot resolves an adapter's config root the same way
// skillindex.ResolveRoots does: $XDG_CONFIG_HOME/<adapter> when set, else
// $HOME/.<adapter>.
func adapterConfigRoot(name string) string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, name)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "."+name)
}

// resolveAdapterRoot returns the --<name>-root flag value if set, else the
// adapter's default config root.
func resolveAdapterRoot(cmd *cobra.Command, flag, adapterName string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return adapterConfigRoot(adapterName)
}

// adapters constructs the three concrete adapters rooted per --claude-root,
// --codex-root, --copilot-root (or their defaults).
func adapters(cmd *cobra.Command) map[adapter.Name]adapter.AgentAdapter {
	return map[adapter.Name]adapter.AgentAdapter{
		adapter.Claude:  claudeagent.New(resolveAdapterRoot(cmd, "claude-root", "claude")),
		adapter.Codex:   codexagent.New(resolveAdapterRoot(cmd, "codex-root", "codex")),
		adapter.Copilot: copilotagent.New(resolveAdapterRoot(cmd, "copilot-root", "copilot")),
	}
}

func resolveAdapterByName(cmd *cobra.Command, name string) (adapter.AgentAdapter, error) {
	as := adapters(cmd)
	a, ok := as[adapter.Name(name)]
	if !ok {
		return nil, skrillserr.InvalidArgument("unknown adapter " + name + ", expected claude, codex, or copilot")
	}
	return a, nil
}

// buildCache constructs a TTL-bounded snapshot cache seeded from disk and
// backed by a full skillindex.Build rescan, per the manifest's configured
// priority, TTL, and pin set.
func buildCache(cmd *cobra.Command) (*snapshotcache.Cache, error) {
	home := skrillsHome()
	manifest, err := runtimestate.LoadManifest(filepath.Join(home, "skills-manifest.json"))
	if err != nil {
		return nil, err
	}
	pins, err := runtimestate.LoadPins(filepath.Join(home, "skills-pins.json"))
	if err != nil {
		return nil, err
	}

	rootOpts := skillindex.OptionsFromEnv()
	rootOpts.HomeDir = home

	rebuild := func() ([]skillindex.SkillMeta, []snapshotcache.RootFingerprint, error) {
		roots := skillindex.ResolveRoots(rootOpts)
		metas, err := skillindex.Build(roots, manifest.Priority, pins)
		if err != nil {
			return nil, nil, err
		}
		fps := make([]snapshotcache.RootFingerprint, 0, len(roots))
		for _, r := range roots {
			fps = append(fps, snapshotcache.RootFingerprint{Source: string(r.Source), Dir: r.Dir})
		}
		return metas, fps, nil
	}

	ttl := time.Duration(manifest.CacheTTLMillis) * time.Millisecond
	seed := snapshotcache.NewSeed(snapshotcache.DefaultPath(home))
	return snapshotcache.New(ttl, rebuild, seed), nil
}
