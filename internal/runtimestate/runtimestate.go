// Package runtimestate reads and atomically writes skrills' small
// user-editable JSON state files: the skill manifest, the pinned-skill set,
// and runtime overrides. Grounded on the teacher's config.Load/Save
// (internal/config/config.go) atomic-directory-creation idiom, generalized
// from YAML to JSON
package runtimestate

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/skrillsdev/skrills/internal/skillsource"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

// Manifest is the user-editable skills-manifest.json.
type Manifest struct {
	Priority        []skillsource.Source `json:"priority,omitempty"`
	ExposeAgents    bool                 `json:"expose_agents,omitempty"`
	CacheTTLMillis  int64                `json:"cache_ttl_ms,omitempty"`
}

// DefaultManifest returns the manifest used when no skills-manifest.json exists.
func DefaultManifest() Manifest {
	return Manifest{
		Priority:       skillsource.DefaultPriority,
		ExposeAgents:   true,
		CacheTTLMillis: 30_000,
	}
}

// LoadManifest reads a manifest from path, falling back to DefaultManifest
// when the file doesn't exist.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultManifest(), nil
		}
		return Manifest{}, skrillserr.Wrap(skrillserr.CodeIO, "failed to read manifest", "", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, skrillserr.Wrap(skrillserr.CodeInvalidArgument, "invalid manifest JSON", "", err)
	}
	if len(m.Priority) == 0 {
		m.Priority = skillsource.DefaultPriority
	}
	if m.CacheTTLMillis == 0 {
		m.CacheTTLMillis = 30_000
	}
	return m, nil
}

// SaveManifest writes m to path atomically (temp file + rename).
func SaveManifest(path string, m Manifest) error {
	return writeJSONAtomic(path, m)
}

// LoadPins reads a pin list from path, returning an empty set if the file
// doesn't exist.
func LoadPins(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, skrillserr.Wrap(skrillserr.CodeIO, "failed to read pinned skills", "", err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, skrillserr.Wrap(skrillserr.CodeInvalidArgument, "invalid pinned skills JSON", "", err)
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out, nil
}

// SavePins writes the pin set atomically.
func SavePins(path string, pins map[string]bool) error {
	names := make([]string, 0, len(pins))
	for n := range pins {
		names = append(names, n)
	}
	return writeJSONAtomic(path, names)
}

// RuntimeOptions is the user-editable skills-runtime.json: ad hoc overrides
// consumers may stash between invocations (e.g. last-used adapter pair).
type RuntimeOptions struct {
	Values map[string]any `json:"values,omitempty"`
}

// LoadRuntimeOptions reads runtime overrides from path, defaulting to empty.
func LoadRuntimeOptions(path string) (RuntimeOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RuntimeOptions{Values: map[string]any{}}, nil
		}
		return RuntimeOptions{}, skrillserr.Wrap(skrillserr.CodeIO, "failed to read runtime options", "", err)
	}
	var ro RuntimeOptions
	if err := json.Unmarshal(data, &ro); err != nil {
		return RuntimeOptions{}, skrillserr.Wrap(skrillserr.CodeInvalidArgument, "invalid runtime options JSON", "", err)
	}
	if ro.Values == nil {
		ro.Values = map[string]any{}
	}
	return ro, nil
}

// SaveRuntimeOptions writes runtime overrides atomically.
func SaveRuntimeOptions(path string, ro RuntimeOptions) error {
	return writeJSONAtomic(path, ro)
}

// writeJSONAtomic marshals v as indented JSON and writes it to path via a
// sibling temp file + rename.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to marshal state", "", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to create state directory", "", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to create temp file", "", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to write state", "", err)
	}
	if err := tmp.Close(); err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to close temp file", "", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to publish state", "", err)
	}
	return nil
}
