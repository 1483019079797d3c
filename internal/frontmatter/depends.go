package frontmatter

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/skrillsdev/skrills/internal/skillsource"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

// sourcePrefix matches the optional "source:" prefix of the compact dependency form.
var sourcePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// namePattern matches the dependency name grammar: [A-Za-z0-9][A-Za-z0-9_.:/-]*
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:/-]*$`)

// declaredDependency mirrors the two spellings a `depends` list entry can take.
type declaredDependency struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version,omitempty"`
	Source   string `yaml:"source,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`

	simple bool
}

// parseDependsNode parses the `depends` YAML node into normalized dependencies.
// The list may mix simple string entries and structured mapping entries.
func parseDependsNode(node *yaml.Node) ([]NormalizedDependency, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, skrillserr.New(skrillserr.CodeFrontmatterParse,
			"frontmatter parse error (Yaml): depends must be a list", "")
	}

	out := make([]NormalizedDependency, 0, len(node.Content))
	for _, item := range node.Content {
		var dd declaredDependency
		switch item.Kind {
		case yaml.ScalarNode:
			dd.simple = true
			dd.Name = item.Value
		case yaml.MappingNode:
			if err := item.Decode(&dd); err != nil {
				return nil, skrillserr.Wrap(skrillserr.CodeFrontmatterParse, "Yaml", "", err)
			}
		default:
			return nil, skrillserr.New(skrillserr.CodeFrontmatterParse,
				"frontmatter parse error (Yaml): depends entries must be a string or mapping", "")
		}

		norm, err := normalizeDependency(dd)
		if err != nil {
			return nil, err
		}
		out = append(out, norm)
	}
	return out, nil
}

// normalizeDependency validates and normalizes a single dependency entry, parsing the
// compact "[source:]name[@req]" grammar for simple string entries.
func normalizeDependency(dd declaredDependency) (NormalizedDependency, error) {
	name := dd.Name
	source := dd.Source
	versionRaw := dd.Version

	if dd.simple {
		raw := dd.Name
		rest := raw

		if idx := strings.Index(rest, ":"); idx >= 0 {
			candidate := rest[:idx]
			if sourcePrefix.MatchString(candidate) && isKnownSource(candidate) {
				source = candidate
				rest = rest[idx+1:]
			} else if sourcePrefix.MatchString(candidate) {
				return NormalizedDependency{}, skrillserr.InvalidDependencyFormat(raw)
			}
		}

		if idx := strings.Index(rest, "@"); idx >= 0 {
			name = rest[:idx]
			versionRaw = rest[idx+1:]
		} else {
			name = rest
		}
	}

	name = strings.TrimSpace(name)
	if !namePattern.MatchString(name) {
		return NormalizedDependency{}, skrillserr.InvalidDependencyFormat(dd.Name)
	}

	norm := NormalizedDependency{
		Name:     name,
		Source:   source,
		Optional: dd.Optional,
	}

	if versionRaw != "" {
		c, err := semver.NewConstraint(versionRaw)
		if err != nil {
			return NormalizedDependency{}, skrillserr.InvalidDependencyFormat(dd.Name)
		}
		norm.VersionReq = c
		norm.VersionRaw = versionRaw
	}

	return norm, nil
}

// isKnownSource reports whether s names one of the recognized SkillSource tags
// (case-insensitively), per the dependency grammar's source: prefix rule.
func isKnownSource(s string) bool {
	_, ok := skillsource.Parse(s)
	return ok
}
