package validator

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/skrillsdev/skrills/internal/frontmatter"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

// FixOptions controls Autofix's write behavior.
type FixOptions struct {
	Backup bool // copy the original to <path>.bak before replacing
}

// Autofix rewrites the skill file at path to resolve MissingName,
// MissingDescription, NameTooLong, and DescriptionTooLong issues, leaving
// everything else untouched. It returns the issues it actually fixed.
func Autofix(path string, issues []Issue, opts FixOptions) ([]Kind, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, skrillserr.Wrap(skrillserr.CodeIO, "failed to read skill for autofix", "", err)
	}

	fm, body, perr := frontmatter.Parse(raw)
	firstLine, _, _ := strings.Cut(strings.TrimPrefix(string(raw), "﻿"), "\n")
	hadFrontmatter := perr == nil && strings.TrimSpace(firstLine) == "---"

	fixed := map[Kind]bool{}
	for _, issue := range issues {
		switch issue.Kind {
		case KindMissingName:
			if fm.Name == "" {
				fm.Name = derivedIdentifier(path)
				fixed[KindMissingName] = true
			}
		case KindMissingDescription:
			if fm.Description == "" {
				fm.Description = synthesizeDescription(body)
				fixed[KindMissingDescription] = true
			}
		case KindNameTooLong:
			if len(fm.Name) > maxNameLen {
				fm.Name = truncate(fm.Name, maxNameLen)
				fixed[KindNameTooLong] = true
			}
		case KindDescriptionTooLong:
			if len(fm.Description) > maxDescriptionLen {
				fm.Description = truncate(fm.Description, maxDescriptionLen)
				fixed[KindDescriptionTooLong] = true
			}
		}
	}

	if !hadFrontmatter {
		if fm.Name == "" {
			fm.Name = derivedIdentifier(path)
			fixed[KindMissingName] = true
		}
		if fm.Description == "" {
			fm.Description = synthesizeDescription(raw)
			fixed[KindMissingDescription] = true
		}
		body = raw
	}

	if len(fixed) == 0 {
		return nil, nil
	}

	newContent, err := renderFrontmatter(fm, body)
	if err != nil {
		return nil, err
	}

	if opts.Backup {
		if err := os.WriteFile(path+".bak", raw, 0o644); err != nil {
			return nil, skrillserr.Wrap(skrillserr.CodeIO, "failed to write backup", "", err)
		}
	}

	if err := writeAtomic(path, newContent); err != nil {
		return nil, err
	}

	kinds := make([]Kind, 0, len(fixed))
	for k := range fixed {
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// derivedIdentifier synthesizes a name from the skill file's path: the
// parent directory name when the file is SKILL.md, else the file stem.
func derivedIdentifier(path string) string {
	if filepath.Base(path) == "SKILL.md" {
		return filepath.Base(filepath.Dir(path))
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// synthesizeDescription takes the first non-empty paragraph of body,
// truncated to fit within the description length limit.
func synthesizeDescription(body []byte) string {
	for _, para := range strings.Split(string(body), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		para = strings.Join(strings.Fields(para), " ")
		return truncate(para, maxDescriptionLen)
	}
	return ""
}

// truncate shortens s to at most limit characters, making the last
// character an ellipsis when truncation occurred.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

// renderFrontmatter serializes fm back into a fenced YAML block followed by
// body, preserving extras in their recorded order: known keys come first as
// name, description, version, depends, then extras in original order. A
// trailing newline follows the closing fence.
func renderFrontmatter(fm frontmatter.Frontmatter, body []byte) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	add := func(key string, val any) {
		k := &yaml.Node{}
		_ = k.Encode(key)
		v := &yaml.Node{}
		_ = v.Encode(val)
		node.Content = append(node.Content, k, v)
	}

	if fm.Name != "" {
		add("name", fm.Name)
	}
	if fm.Description != "" {
		add("description", fm.Description)
	}
	if fm.Version != "" {
		add("version", fm.Version)
	}
	if len(fm.Depends) > 0 {
		deps := make([]any, 0, len(fm.Depends))
		for _, d := range fm.Depends {
			if d.VersionRaw == "" && d.Source == "" && !d.Optional {
				deps = append(deps, d.Name)
				continue
			}
			entry := map[string]any{"name": d.Name}
			if d.VersionRaw != "" {
				entry["version"] = d.VersionRaw
			}
			if d.Source != "" {
				entry["source"] = d.Source
			}
			if d.Optional {
				entry["optional"] = true
			}
			deps = append(deps, entry)
		}
		add("depends", deps)
	}
	for _, key := range fm.ExtraKeys {
		add(key, fm.Extras[key])
	}

	data, err := yaml.Marshal(node)
	if err != nil {
		return nil, skrillserr.Wrap(skrillserr.CodeIO, "failed to render frontmatter", "", err)
	}

	var out strings.Builder
	out.WriteString("---\n")
	out.Write(data)
	out.WriteString("---\n")
	out.Write(body)
	if len(body) == 0 || body[len(body)-1] != '\n' {
		out.WriteByte('\n')
	}
	return []byte(out.String()), nil
}

// writeAtomic writes data to path via a sibling temp file plus rename,
// so a crash mid-write never leaves a truncated file in place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-autofix-*")
	if err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to create temp file for autofix", "", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to write autofix output", "", err)
	}
	if err := tmp.Close(); err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to close autofix temp file", "", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to publish autofix output", "", err)
	}
	return nil
}

// titleCase converts a kebab-case identifier into Title Case words, used by
// callers rendering a human-facing label from a derived name. Generalizes
// the teacher's hand-rolled toTitleCase (internal/skills/skill.go) to a
// locale-aware Unicode title caser.
func titleCase(s string) string {
	caser := cases.Title(language.English)
	words := strings.Split(s, "-")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
