// Package depresolver walks a skill's `depends` graph to a flat, ordered
// resolution using depth-first post-order traversal: no teacher package
// implements dependency-graph resolution, so this is new code written in
// the error-collecting idiom established by skrillserr and the rest of
// the core.
package depresolver

import (
	"github.com/Masterminds/semver/v3"

	"github.com/skrillsdev/skrills/internal/skillindex"
	"github.com/skrillsdev/skrills/internal/skillsource"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

// Lookup finds the best candidate(s) for name, optionally narrowed to a
// specific source. When source is empty, all matching records are
// returned so the resolver can tie-break by priority_rank.
type Lookup func(name string, source skillsource.Source) []skillindex.SkillMeta

// Options configures Resolve's behavior.
type Options struct {
	StrictOptional bool
	MaxDepth       int
}

// DefaultOptions returns MaxDepth=50, StrictOptional=false.
func DefaultOptions() Options {
	return Options{MaxDepth: 50}
}

// ResolvedDependency is one entry of a post-order resolution.
type ResolvedDependency struct {
	URI      string
	Name     string
	Source   skillsource.Source
	Version  string
	Optional bool
	Depth    int
}

// Result is the output of Resolve.
type Result struct {
	Resolved []ResolvedDependency
	Warnings []string
	Success  bool
}

type visitor struct {
	lookup   Lookup
	opts     Options
	visited  map[string]bool
	inStack  map[string]bool
	stack    []string
	resolved []ResolvedDependency
	warnings []string
}

// Resolve runs the DFS post-order algorithm starting from root, returning
// the flattened dependency order (dependencies strictly precede
// dependents) or the first fatal error encountered.
func Resolve(root string, lookup Lookup, opts Options) (Result, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}

	v := &visitor{
		lookup:  lookup,
		opts:    opts,
		visited: map[string]bool{},
		inStack: map[string]bool{},
	}

	if err := v.visit(root, 0, "root", "", false); err != nil {
		return Result{}, err
	}

	return Result{Resolved: v.resolved, Warnings: v.warnings, Success: true}, nil
}

func (v *visitor) visit(name string, depth int, requiredBy string, versionReq *semver.Constraints, optional bool) error {
	if v.inStack[name] {
		chain := append(append([]string{}, v.stack...), name)
		return skrillserr.CircularDependency(chain)
	}
	if v.visited[name] {
		return nil
	}
	if depth > v.opts.MaxDepth {
		return skrillserr.MaxDepthExceeded(name, depth)
	}

	candidates := v.lookup(name, "")
	if len(candidates) == 0 {
		if optional && !v.opts.StrictOptional {
			v.warnings = append(v.warnings, "optional dependency "+name+" required by "+requiredBy+" not found")
			return nil
		}
		return skrillserr.NotFound(name, requiredBy)
	}

	best := bestCandidate(candidates)

	if versionReq != nil && best.Version != nil {
		if !versionReq.Check(best.Version) {
			return skrillserr.VersionMismatch(name, versionReq.String(), best.Version.String())
		}
	}

	v.inStack[name] = true
	v.stack = append(v.stack, name)

	for _, dep := range best.Frontmatter.Depends {
		if err := v.visit(dep.Name, depth+1, name, dep.VersionReq, dep.Optional); err != nil {
			return err
		}
	}

	delete(v.inStack, name)
	v.stack = v.stack[:len(v.stack)-1]
	v.visited[name] = true

	version := ""
	if best.Version != nil {
		version = best.Version.String()
	}
	v.resolved = append(v.resolved, ResolvedDependency{
		URI:      best.SourcePath,
		Name:     best.Name,
		Source:   best.Source,
		Version:  version,
		Optional: optional,
		Depth:    depth,
	})

	return nil
}

// bestCandidate picks the lowest PriorityRank among same-named candidates
// when the edge does not pin a source.
func bestCandidate(candidates []skillindex.SkillMeta) skillindex.SkillMeta {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.PriorityRank < best.PriorityRank {
			best = c
		}
	}
	return best
}
