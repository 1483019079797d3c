// Package validator checks discovered skills against per-target frontmatter
// rules, optionally auto-fixing violations. Grounded on the teacher's
// config validation idiom (HartBrook-staghorn/internal/config/config.go's
// field-by-field checks), generalized to a pluggable per-adapter rule set.
package validator

import (
	"fmt"

	"github.com/skrillsdev/skrills/internal/skillindex"
)

// Target names a validation profile.
type Target string

const (
	TargetClaude  Target = "claude"
	TargetCodex   Target = "codex"
	TargetCopilot Target = "copilot"
)

// Strict reports whether Target requires recognized frontmatter keys.
func (t Target) Strict() bool {
	return t == TargetCodex || t == TargetCopilot
}

// Level is an issue's severity.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Kind enumerates the issue taxonomy a Check can report.
type Kind string

const (
	KindMissingName               Kind = "missing_name"
	KindMissingDescription        Kind = "missing_description"
	KindNameTooLong               Kind = "name_too_long"
	KindDescriptionTooLong        Kind = "description_too_long"
	KindInvalidFrontmatter        Kind = "invalid_frontmatter"
	KindContentTooLarge           Kind = "content_too_large"
	KindDependencyNotFound        Kind = "dependency_not_found"
	KindCircularDependency        Kind = "circular_dependency"
	KindInvalidVersionConstraint  Kind = "invalid_version_constraint"
	KindVersionMismatch           Kind = "version_mismatch"
	KindInvalidDependencyFormat   Kind = "invalid_dependency_format"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
	copilotSoftLimit  = 30_000
)

// Issue is one violation found on a skill.
type Issue struct {
	Kind   Kind
	Level  Level
	Detail string
	Bytes  int64
}

func (i Issue) String() string {
	if i.Detail == "" {
		return string(i.Kind)
	}
	return fmt.Sprintf("%s: %s", i.Kind, i.Detail)
}

// Result pairs a skill record with the issues found on it for one target.
type Result struct {
	Skill  skillindex.SkillMeta
	Target Target
	Issues []Issue
}

// HasErrors reports whether any issue in Result is error-level.
func (r Result) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Level == LevelError {
			return true
		}
	}
	return false
}

// Check runs the frontmatter-shape rules for one target against one skill.
// The dependency-graph kinds (KindDependencyNotFound and the rest) are not
// produced by Check, and none of its callers add them.
func Check(meta skillindex.SkillMeta, target Target) []Issue {
	var issues []Issue

	if meta.Diagnostic != nil {
		issues = append(issues, Issue{
			Kind:   KindInvalidFrontmatter,
			Level:  LevelError,
			Detail: meta.Diagnostic.Error(),
		})
		return issues
	}

	if target.Strict() {
		if meta.Name == "" {
			issues = append(issues, Issue{Kind: KindMissingName, Level: LevelError})
		}
		if meta.Description == "" {
			issues = append(issues, Issue{Kind: KindMissingDescription, Level: LevelError})
		}
	}

	if len(meta.Name) > maxNameLen {
		issues = append(issues, Issue{
			Kind: KindNameTooLong, Level: LevelError,
			Detail: fmt.Sprintf("%d chars, max %d", len(meta.Name), maxNameLen),
		})
	}
	if len(meta.Description) > maxDescriptionLen {
		issues = append(issues, Issue{
			Kind: KindDescriptionTooLong, Level: LevelError,
			Detail: fmt.Sprintf("%d chars, max %d", len(meta.Description), maxDescriptionLen),
		})
	}

	if target == TargetCopilot && meta.ByteLen >= copilotSoftLimit {
		issues = append(issues, Issue{
			Kind: KindContentTooLarge, Level: LevelWarning,
			Detail: fmt.Sprintf("%d bytes, soft limit %d", meta.ByteLen, copilotSoftLimit),
			Bytes:  meta.ByteLen,
		})
	}

	return issues
}

// CheckAll runs Check across every skill for one target.
func CheckAll(metas []skillindex.SkillMeta, target Target) []Result {
	results := make([]Result, 0, len(metas))
	for _, m := range metas {
		results = append(results, Result{Skill: m, Target: target, Issues: Check(m, target)})
	}
	return results
}

// Targets expands "both"/"all" into concrete per-adapter targets.
func Targets(name string) ([]Target, error) {
	switch name {
	case "claude":
		return []Target{TargetClaude}, nil
	case "codex":
		return []Target{TargetCodex}, nil
	case "copilot":
		return []Target{TargetCopilot}, nil
	case "both":
		return []Target{TargetClaude, TargetCodex}, nil
	case "all", "":
		return []Target{TargetClaude, TargetCodex, TargetCopilot}, nil
	default:
		return nil, fmt.Errorf("unknown validation target %q", name)
	}
}
