// Package skillindex discovers skill files across prioritized roots, parses
// and hashes them, and ranks them by source precedence. Grounded on the
// teacher's skills.Registry / skills.LoadFromDirectory
// (HartBrook-staghorn/internal/skills), generalized from a single
// last-write-wins registry to a full multi-record ranked index.
package skillindex

import (
	"github.com/Masterminds/semver/v3"

	"github.com/skrillsdev/skrills/internal/frontmatter"
	"github.com/skrillsdev/skrills/internal/skillsource"
)

// SkillMeta is an immutable per-discovery record for one skill file.
type SkillMeta struct {
	Name         string
	Description  string
	Version      *semver.Version
	Source       skillsource.Source
	SourcePath   string
	RelativePath string
	ContentHash  string
	ByteLen      int64
	Frontmatter  frontmatter.Frontmatter
	PriorityRank int
	Pinned       bool

	// Diagnostic is set when parsing the file's frontmatter failed; the
	// skill is still indexed so validate can report it, but carries an
	// empty Frontmatter.
	Diagnostic error
}
