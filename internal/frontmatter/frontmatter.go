// Package frontmatter parses and normalizes the YAML frontmatter block that
// leads a skill's SKILL.md (or Claude-style *.md) file.
package frontmatter

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/skrillsdev/skrills/internal/skrillserr"
)

// recognizedKeys are the frontmatter keys this package maps strictly.
// Everything else round-trips through Extras.
var recognizedKeys = map[string]bool{
	"name":        true,
	"description": true,
	"version":     true,
	"depends":     true,
}

// Frontmatter is the parsed, normalized form of a skill's frontmatter block.
type Frontmatter struct {
	Name        string
	Description string
	Version     string
	Depends     []NormalizedDependency

	// Extras preserves every unrecognized top-level key, in first-seen order.
	Extras    map[string]any
	ExtraKeys []string
}

// NormalizedDependency is the parsed, grammar-checked form of a DeclaredDependency.
type NormalizedDependency struct {
	Name        string
	VersionReq  *semver.Constraints
	VersionRaw  string
	Source      string
	Optional    bool
}

// Parse splits raw file bytes into (frontmatter, body).
// Absence of the opening "---" fence yields an empty Frontmatter and body == input.
func Parse(raw []byte) (Frontmatter, []byte, error) {
	s := string(raw)
	s = strings.TrimPrefix(s, "﻿") // strip UTF-8 BOM

	fmText, body, has, err := splitFence(s)
	if err != nil {
		return Frontmatter{}, nil, skrillserr.Wrap(skrillserr.CodeFrontmatterParse, "Fence", "", err)
	}
	if !has {
		return Frontmatter{}, []byte(s), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(fmText), &doc); err != nil {
		return Frontmatter{}, nil, skrillserr.Wrap(skrillserr.CodeFrontmatterParse, "Yaml", "", err)
	}
	if len(doc.Content) == 0 {
		return Frontmatter{}, []byte(body), nil
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return Frontmatter{}, nil, skrillserr.New(skrillserr.CodeFrontmatterParse,
			"frontmatter parse error (Yaml): top-level frontmatter must be a mapping", "")
	}

	fm := Frontmatter{Extras: map[string]any{}}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valNode := mapping.Content[i+1]
		key := keyNode.Value

		switch key {
		case "name":
			fm.Name = valNode.Value
		case "description":
			fm.Description = valNode.Value
		case "version":
			fm.Version = valNode.Value
		case "depends":
			deps, err := parseDependsNode(valNode)
			if err != nil {
				return Frontmatter{}, nil, err
			}
			fm.Depends = deps
		default:
			var v any
			if err := valNode.Decode(&v); err != nil {
				return Frontmatter{}, nil, skrillserr.Wrap(skrillserr.CodeFrontmatterParse, "Yaml", "", err)
			}
			fm.Extras[key] = v
			fm.ExtraKeys = append(fm.ExtraKeys, key)
		}
	}

	return fm, []byte(body), nil
}

// splitFence finds the leading "---"..."---" block, if any.
func splitFence(s string) (fm, body string, has bool, err error) {
	br := bufio.NewReader(strings.NewReader(s))

	first, ferr := br.ReadString('\n')
	if ferr != nil && !errors.Is(ferr, io.EOF) {
		return "", "", false, ferr
	}
	if strings.TrimSpace(strings.TrimRight(first, "\r\n")) != "---" {
		return "", s, false, nil
	}

	var lines []string
	found := false
	for {
		line, lerr := br.ReadString('\n')
		if lerr != nil && !errors.Is(lerr, io.EOF) {
			return "", "", false, lerr
		}
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) == "---" {
			found = true
			break
		}
		lines = append(lines, trimmed)
		if errors.Is(lerr, io.EOF) {
			break
		}
	}
	if !found {
		return "", "", false, errors.New("unterminated frontmatter (missing closing ---)")
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return "", "", false, err
	}
	return strings.Join(lines, "\n"), string(rest), true, nil
}

// IsRecognizedKey reports whether key is one of the strictly-mapped frontmatter fields.
func IsRecognizedKey(key string) bool {
	return recognizedKeys[key]
}
