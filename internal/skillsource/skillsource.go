// Package skillsource defines the logical roots a skill can be discovered
// under and their default precedence, generalizing the teacher's
// skills.Source / commands.Source / rules.Source "team > personal > project
// > starter" idiom to skrills' cross-adapter root set.
package skillsource

import "strings"

// Source tags the logical root a skill was found under.
type Source string

const (
	Codex       Source = "codex"
	Claude      Source = "claude"
	Copilot     Source = "copilot"
	Mirror      Source = "mirror"
	Cache       Source = "cache"
	Marketplace Source = "marketplace"
	Agent       Source = "agent"
)

// Strict reports whether this source requires a SKILL.md basename (true) or
// accepts any *.md file (false, "permissive").
func (s Source) Strict() bool {
	switch s {
	case Codex, Copilot, Mirror, Agent:
		return true
	default:
		return false
	}
}

// Label returns a human-readable label for the source.
func (s Source) Label() string {
	switch s {
	case Codex, Claude, Copilot, Mirror, Cache, Marketplace, Agent:
		return string(s)
	default:
		return string(s)
	}
}

// DefaultPriority is the built-in precedence order used when no manifest
// overrides it: lower index = higher priority.
var DefaultPriority = []Source{Codex, Mirror, Claude, Agent}

// Parse maps a case-insensitive string to a known Source.
func Parse(s string) (Source, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Codex):
		return Codex, true
	case string(Claude):
		return Claude, true
	case string(Copilot):
		return Copilot, true
	case string(Mirror):
		return Mirror, true
	case string(Cache):
		return Cache, true
	case string(Marketplace):
		return Marketplace, true
	case string(Agent):
		return Agent, true
	default:
		return "", false
	}
}

// Rank returns the precedence rank of s within priority (lower = higher
// priority). Sources absent from priority rank after all named sources, in
// a stable order among themselves.
func Rank(s Source, priority []Source) int {
	for i, p := range priority {
		if p == s {
			return i
		}
	}
	return len(priority) + int(hashFallback(s))
}

// hashFallback gives sources missing from an explicit priority list a stable,
// deterministic (if arbitrary) relative order instead of colliding at the
// same rank.
func hashFallback(s Source) byte {
	for i, known := range []Source{Codex, Claude, Copilot, Mirror, Cache, Marketplace, Agent} {
		if s == known {
			return byte(i + 1)
		}
	}
	return 0
}
