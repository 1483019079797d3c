package skillindex

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/skrillsdev/skrills/internal/skillsource"
)

// Root is one directory tree configured as a source of skills.
type Root struct {
	Source skillsource.Source
	Dir    string // absolute path
}

// RootOptions configures root resolution precedence:
// explicit CLI overrides > environment toggles > built-in defaults. The
// manifest's priority list is not consulted here; it orders records later,
// when Build passes it to Rank.
type RootOptions struct {
	// Explicit overrides the whole root set when non-empty.
	Explicit []Root

	// HomeDir is the configured skrills home (defaults to $HOME/.skrills).
	HomeDir string

	// IncludeClaude / IncludeMarketplace mirror the
	// SKRILLS_INCLUDE_CLAUDE / SKRILLS_INCLUDE_MARKETPLACE env toggles.
	IncludeClaude      bool
	IncludeMarketplace bool

	// MirrorSource overrides the directory used for the Mirror source
	// (SKRILLS_MIRROR_SOURCE).
	MirrorSource string

	// NoMirror disables the Mirror source entirely (SKRILLS_NO_MIRROR).
	NoMirror bool
}

// OptionsFromEnv reads the SKRILLS_* environment toggles into a RootOptions.
func OptionsFromEnv() RootOptions {
	home, _ := os.UserHomeDir()
	return RootOptions{
		HomeDir:            filepath.Join(home, ".skrills"),
		IncludeClaude:      envBool("SKRILLS_INCLUDE_CLAUDE", true),
		IncludeMarketplace: envBool("SKRILLS_INCLUDE_MARKETPLACE", false),
		MirrorSource:       os.Getenv("SKRILLS_MIRROR_SOURCE"),
		NoMirror:           envBool("SKRILLS_NO_MIRROR", false),
	}
}

func envBool(name string, def bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true" || v == "yes"
}

// ResolveRoots computes the final ordered root set: explicit overrides win
// outright; otherwise built-in defaults are expanded and filtered by the env
// toggles, with duplicate directories coalesced to one entry.
func ResolveRoots(opts RootOptions) []Root {
	if len(opts.Explicit) > 0 {
		return coalesce(opts.Explicit)
	}

	home := opts.HomeDir
	if home == "" {
		h, _ := os.UserHomeDir()
		home = filepath.Join(h, ".skrills")
	}

	var roots []Root
	roots = append(roots, Root{Source: skillsource.Codex, Dir: adapterConfigRoot("codex")})

	if !opts.NoMirror {
		mirrorDir := opts.MirrorSource
		if mirrorDir == "" {
			mirrorDir = filepath.Join(home, "mirror")
		}
		roots = append(roots, Root{Source: skillsource.Mirror, Dir: mirrorDir})
	}

	if opts.IncludeClaude {
		roots = append(roots, Root{Source: skillsource.Claude, Dir: adapterConfigRoot("claude")})
	}

	roots = append(roots, Root{Source: skillsource.Agent, Dir: filepath.Join(home, "agent")})

	if opts.IncludeMarketplace {
		roots = append(roots, Root{Source: skillsource.Marketplace, Dir: filepath.Join(home, "marketplace")})
	}

	return coalesce(roots)
}

func userHome() string {
	h, _ := os.UserHomeDir()
	return h
}

// adapterConfigRoot resolves an adapter's config root: $XDG_CONFIG_HOME/<adapter>
// when set, else $HOME/.<adapter>
func adapterConfigRoot(adapter string) string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, adapter)
	}
	return filepath.Join(userHome(), "."+adapter)
}

func coalesce(roots []Root) []Root {
	seen := map[string]bool{}
	out := make([]Root, 0, len(roots))
	for _, r := range roots {
		abs, err := filepath.Abs(r.Dir)
		if err != nil {
			abs = r.Dir
		}
		r.Dir = abs
		if seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, r)
	}
	return out
}
