package depresolver

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrillsdev/skrills/internal/frontmatter"
	"github.com/skrillsdev/skrills/internal/skillindex"
	"github.com/skrillsdev/skrills/internal/skillsource"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

func depOn(name string, req *semver.Constraints, optional bool) frontmatter.NormalizedDependency {
	return frontmatter.NormalizedDependency{Name: name, VersionReq: req, Optional: optional}
}

func metaWithDeps(name string, version string, deps ...frontmatter.NormalizedDependency) skillindex.SkillMeta {
	var v *semver.Version
	if version != "" {
		v = semver.MustParse(version)
	}
	return skillindex.SkillMeta{
		Name:    name,
		Source:  skillsource.Codex,
		Version: v,
		Frontmatter: frontmatter.Frontmatter{
			Depends: deps,
		},
	}
}

func lookupFrom(metas map[string]skillindex.SkillMeta) Lookup {
	return func(name string, _ skillsource.Source) []skillindex.SkillMeta {
		if m, ok := metas[name]; ok {
			return []skillindex.SkillMeta{m}
		}
		return nil
	}
}

func TestResolve_LinearChainIsPostOrder(t *testing.T) {
	metas := map[string]skillindex.SkillMeta{
		"a": metaWithDeps("a", "", depOn("b", nil, false)),
		"b": metaWithDeps("b", "", depOn("c", nil, false)),
		"c": metaWithDeps("c", ""),
	}

	res, err := Resolve("a", lookupFrom(metas), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Resolved, 3)
	assert.Equal(t, "c", res.Resolved[0].Name)
	assert.Equal(t, "b", res.Resolved[1].Name)
	assert.Equal(t, "a", res.Resolved[2].Name)
}

func TestResolve_DetectsCircularDependency(t *testing.T) {
	metas := map[string]skillindex.SkillMeta{
		"a": metaWithDeps("a", "", depOn("b", nil, false)),
		"b": metaWithDeps("b", "", depOn("a", nil, false)),
	}

	_, err := Resolve("a", lookupFrom(metas), DefaultOptions())
	require.Error(t, err)
	serr, ok := err.(*skrillserr.Error)
	require.True(t, ok)
	assert.Equal(t, skrillserr.CodeCircularDependency, serr.Code)
}

func TestResolve_MissingRequiredDependencyFails(t *testing.T) {
	metas := map[string]skillindex.SkillMeta{
		"a": metaWithDeps("a", "", depOn("ghost", nil, false)),
	}

	_, err := Resolve("a", lookupFrom(metas), DefaultOptions())
	require.Error(t, err)
	serr := err.(*skrillserr.Error)
	assert.Equal(t, skrillserr.CodeNotFound, serr.Code)
}

func TestResolve_MissingOptionalDependencyWarns(t *testing.T) {
	metas := map[string]skillindex.SkillMeta{
		"a": metaWithDeps("a", "", depOn("ghost", nil, true)),
	}

	res, err := Resolve("a", lookupFrom(metas), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 1)
	assert.Len(t, res.Resolved, 1)
}

func TestResolve_VersionMismatchFails(t *testing.T) {
	constraint, err := semver.NewConstraint(">=2.0.0")
	require.NoError(t, err)

	metas := map[string]skillindex.SkillMeta{
		"a": metaWithDeps("a", "", depOn("b", constraint, false)),
		"b": metaWithDeps("b", "1.0.0"),
	}

	_, err = Resolve("a", lookupFrom(metas), DefaultOptions())
	require.Error(t, err)
	serr := err.(*skrillserr.Error)
	assert.Equal(t, skrillserr.CodeVersionMismatch, serr.Code)
}

func TestResolve_MaxDepthExceeded(t *testing.T) {
	metas := map[string]skillindex.SkillMeta{
		"a": metaWithDeps("a", "", depOn("b", nil, false)),
		"b": metaWithDeps("b", "", depOn("c", nil, false)),
		"c": metaWithDeps("c", ""),
	}

	_, err := Resolve("a", lookupFrom(metas), Options{MaxDepth: 1})
	require.Error(t, err)
	serr := err.(*skrillserr.Error)
	assert.Equal(t, skrillserr.CodeMaxDepthExceeded, serr.Code)
}

func TestResolve_TieBreaksByLowestPriorityRank(t *testing.T) {
	lower := skillindex.SkillMeta{Name: "b", PriorityRank: 1, Source: skillsource.Claude}
	higher := skillindex.SkillMeta{Name: "b", PriorityRank: 0, Source: skillsource.Codex}

	lookup := func(name string, _ skillsource.Source) []skillindex.SkillMeta {
		if name == "a" {
			return []skillindex.SkillMeta{metaWithDeps("a", "", depOn("b", nil, false))}
		}
		if name == "b" {
			return []skillindex.SkillMeta{lower, higher}
		}
		return nil
	}

	res, err := Resolve("a", lookup, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Resolved, 2)
	assert.Equal(t, skillsource.Codex, res.Resolved[0].Source)
}
