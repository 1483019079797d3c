// Package copilotagent implements the AgentAdapter for Copilot: strict
// `skills/**/SKILL.md`, no commands surface, and two separate JSON files —
// `mcp-config.json` and `config.json` — rather than the single settings
// document Claude and Codex use. Grounded on the teacher's
// config.Paths struct-of-paths idiom (HartBrook-staghorn/internal/
// config/paths.go) for config_root resolution.
package copilotagent

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/skrillsdev/skrills/internal/adapter"
	"github.com/skrillsdev/skrills/internal/skillindex"
	"github.com/skrillsdev/skrills/internal/skillsource"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

const adapterLabel = "copilot"

// Adapter implements adapter.AgentAdapter for Copilot.
type Adapter struct {
	root string
}

// New constructs an Adapter rooted at root (typically
// $XDG_CONFIG_HOME/copilot or $HOME/.copilot).
func New(root string) *Adapter {
	return &Adapter{root: root}
}

func (a *Adapter) Name() adapter.Name { return adapter.Copilot }

func (a *Adapter) Support() adapter.FieldSupport {
	return adapter.FieldSupport{Skills: true, Commands: false, McpServers: true, Preferences: true}
}

func (a *Adapter) ConfigRoot() string { return a.root }

func (a *Adapter) mcpConfigPath() string { return filepath.Join(a.root, "mcp-config.json") }
func (a *Adapter) prefsPath() string     { return filepath.Join(a.root, "config.json") }

// ReadSkills discovers every SKILL.md under the root (strict).
func (a *Adapter) ReadSkills() ([]skillindex.SkillMeta, error) {
	metas, err := skillindex.Walk(skillindex.Root{Source: skillsource.Copilot, Dir: a.root})
	if err != nil {
		return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldSkills), err)
	}
	return metas, nil
}

// WriteSkills writes each skill under <root>/skills/<name>/SKILL.md.
func (a *Adapter) WriteSkills(skills []skillindex.SkillMeta) error {
	for _, s := range skills {
		name, err := adapter.SanitizeName(s.Name)
		if err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldSkills), err)
		}
		data, err := os.ReadFile(s.SourcePath)
		if err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldSkills), err)
		}
		dest := filepath.Join(a.root, "skills", name, "SKILL.md")
		if dest == s.SourcePath {
			continue
		}
		if err := writeAtomic(dest, data); err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldSkills), err)
		}
	}
	return nil
}

// ReadCommands always returns UnsupportedField: Copilot has no commands
// surface.
func (a *Adapter) ReadCommands() ([]adapter.Command, error) {
	return nil, skrillserr.UnsupportedField(adapterLabel, string(adapter.FieldCommands))
}

// WriteCommands always returns UnsupportedField.
func (a *Adapter) WriteCommands(cmds []adapter.Command) error {
	return skrillserr.UnsupportedField(adapterLabel, string(adapter.FieldCommands))
}

type mcpServerJSON struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

func readJSONMap(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func writeJSONMap(path string, raw map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// ReadMcpServers decodes mcp-config.json's "servers" map.
func (a *Adapter) ReadMcpServers() ([]adapter.McpServer, error) {
	raw, err := readJSONMap(a.mcpConfigPath())
	if err != nil {
		return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldMcpServers), err)
	}
	entry, ok := raw["servers"]
	if !ok {
		return nil, nil
	}
	var servers map[string]mcpServerJSON
	if err := json.Unmarshal(entry, &servers); err != nil {
		return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldMcpServers), err)
	}

	var out []adapter.McpServer
	for name, s := range servers {
		var transport adapter.McpTransport
		if s.URL != "" {
			transport = adapter.HTTPTransport{URL: s.URL, Headers: s.Headers}
		} else {
			transport = adapter.StdioTransport{Command: s.Command, Args: s.Args, Env: s.Env}
		}
		out = append(out, adapter.McpServer{Name: name, Transport: transport})
	}
	return out, nil
}

// WriteMcpServers rewrites mcp-config.json's "servers" map, preserving any
// other top-level key verbatim.
func (a *Adapter) WriteMcpServers(servers []adapter.McpServer) error {
	raw, err := readJSONMap(a.mcpConfigPath())
	if err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldMcpServers), err)
	}

	out := map[string]mcpServerJSON{}
	for _, s := range servers {
		var entry mcpServerJSON
		switch t := s.Transport.(type) {
		case adapter.StdioTransport:
			entry = mcpServerJSON{Command: t.Command, Args: t.Args, Env: t.Env}
		case adapter.HTTPTransport:
			entry = mcpServerJSON{URL: t.URL, Headers: t.Headers}
		}
		out[s.Name] = entry
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldMcpServers), err)
	}
	raw["servers"] = encoded

	if err := writeJSONMap(a.mcpConfigPath(), raw); err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldMcpServers), err)
	}
	return nil
}

// ReadPreferences decodes config.json's "model" key.
func (a *Adapter) ReadPreferences() (adapter.Preferences, error) {
	raw, err := readJSONMap(a.prefsPath())
	if err != nil {
		return adapter.Preferences{}, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldPreferences), err)
	}
	prefs := adapter.Preferences{Extras: map[string]any{}}
	if m, ok := raw["model"]; ok {
		var model string
		if err := json.Unmarshal(m, &model); err == nil {
			prefs.Model = &model
		}
	}
	for k, v := range raw {
		if k == "model" {
			continue
		}
		var decoded any
		if err := json.Unmarshal(v, &decoded); err == nil {
			prefs.Extras[k] = decoded
		}
	}
	return prefs, nil
}

// WritePreferences rewrites config.json's "model" key.
func (a *Adapter) WritePreferences(prefs adapter.Preferences) error {
	raw, err := readJSONMap(a.prefsPath())
	if err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldPreferences), err)
	}
	if prefs.Model != nil {
		encoded, err := json.Marshal(*prefs.Model)
		if err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldPreferences), err)
		}
		raw["model"] = encoded
	}
	for k, v := range prefs.Extras {
		encoded, err := json.Marshal(v)
		if err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldPreferences), err)
		}
		raw[k] = encoded
	}
	if err := writeJSONMap(a.prefsPath(), raw); err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldPreferences), err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
