// Package claudeagent implements the AgentAdapter for Claude: permissive
// `*.md` skills, `commands/*.md`, and a single `settings.json` for both
// MCP servers and preferences. Grounded on the teacher's
// commands.ConvertToClaude / rules.ConvertToClaude header-stamping
// converters (HartBrook-staghorn/internal/commands/claude.go,
// internal/rules/claude.go), generalized from "render one command" to the
// full read/write adapter surface.
package claudeagent

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/skrillsdev/skrills/internal/adapter"
	"github.com/skrillsdev/skrills/internal/skillindex"
	"github.com/skrillsdev/skrills/internal/skillsource"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

const adapterLabel = "claude"

// Adapter implements adapter.AgentAdapter for Claude.
type Adapter struct {
	root string
}

// New constructs an Adapter rooted at root (typically
// $XDG_CONFIG_HOME/claude or $HOME/.claude).
func New(root string) *Adapter {
	return &Adapter{root: root}
}

func (a *Adapter) Name() adapter.Name { return adapter.Claude }

func (a *Adapter) Support() adapter.FieldSupport {
	return adapter.FieldSupport{Skills: true, Commands: true, McpServers: true, Preferences: true}
}

func (a *Adapter) ConfigRoot() string { return a.root }

func (a *Adapter) skillsDir() string   { return filepath.Join(a.root, "skills") }
func (a *Adapter) commandsDir() string { return filepath.Join(a.root, "commands") }
func (a *Adapter) settingsPath() string { return filepath.Join(a.root, "settings.json") }

// ReadSkills discovers every *.md under skillsDir() (permissive) and
// indexes it as the Claude source.
func (a *Adapter) ReadSkills() ([]skillindex.SkillMeta, error) {
	metas, err := skillindex.Walk(skillindex.Root{Source: skillsource.Claude, Dir: a.root})
	if err != nil {
		return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldSkills), err)
	}
	return metas, nil
}

// WriteSkills renders each skill's frontmatter+body back out under
// skillsDir(), keyed by the sanitized skill name.
func (a *Adapter) WriteSkills(skills []skillindex.SkillMeta) error {
	if err := os.MkdirAll(a.skillsDir(), 0o755); err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldSkills), err)
	}
	for _, s := range skills {
		name, err := adapter.SanitizeName(s.Name)
		if err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldSkills), err)
		}
		data, err := os.ReadFile(s.SourcePath)
		if err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldSkills), err)
		}
		dest := filepath.Join(a.skillsDir(), name+".md")
		if dest == s.SourcePath {
			continue
		}
		if err := writeAtomic(dest, data); err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldSkills), err)
		}
	}
	return nil
}

// ReadCommands loads every *.md under commandsDir().
func (a *Adapter) ReadCommands() ([]adapter.Command, error) {
	entries, err := os.ReadDir(a.commandsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldCommands), err)
	}

	var cmds []adapter.Command
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(a.commandsDir(), e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldCommands), err)
		}
		sum := sha256.Sum256(data)
		cmds = append(cmds, adapter.Command{
			Name:         strings.TrimSuffix(e.Name(), ".md"),
			Content:      data,
			RelativePath: e.Name(),
			ContentHash:  "sha256:" + hex.EncodeToString(sum[:]),
		})
	}
	return cmds, nil
}

// WriteCommands writes each command's content byte-for-byte under
// commandsDir(), with no banner or other added text.
func (a *Adapter) WriteCommands(cmds []adapter.Command) error {
	if err := os.MkdirAll(a.commandsDir(), 0o755); err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldCommands), err)
	}
	for _, c := range cmds {
		name, err := adapter.SanitizeName(c.Name)
		if err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldCommands), err)
		}
		dest := filepath.Join(a.commandsDir(), name+".md")
		if err := writeAtomic(dest, c.Content); err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldCommands), err)
		}
	}
	return nil
}

// mcpServerJSON is one entry of settings.json's "mcpServers" map.
type mcpServerJSON struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

func (a *Adapter) readSettings() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(a.settingsPath())
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

func (a *Adapter) writeSettings(raw map[string]json.RawMessage) error {
	if err := os.MkdirAll(a.root, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(a.settingsPath(), data)
}

// ReadMcpServers reads the "mcpServers" key of settings.json.
func (a *Adapter) ReadMcpServers() ([]adapter.McpServer, error) {
	raw, err := a.readSettings()
	if err != nil {
		return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldMcpServers), err)
	}
	entry, ok := raw["mcpServers"]
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

// WriteMcpServers merges servers into settings.json's "mcpServers" key,
// preserving every other top-level key untouched.
func (a *Adapter) WriteMcpServers(servers []adapter.McpServer) error {
	raw, err := a.readSettings()
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
	raw["mcpServers"] = encoded

	if err := a.writeSettings(raw); err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldMcpServers), err)
	}
	return nil
}

// ReadPreferences reads the "model" key (and every other key except
// "mcpServers" as Extras) from settings.json.
func (a *Adapter) ReadPreferences() (adapter.Preferences, error) {
	raw, err := a.readSettings()
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
		if k == "model" || k == "mcpServers" {
			continue
		}
		var decoded any
		if err := json.Unmarshal(v, &decoded); err == nil {
			prefs.Extras[k] = decoded
		}
	}
	return prefs, nil
}

// WritePreferences merges prefs into settings.json, preserving mcpServers
// and any other untouched keys.
func (a *Adapter) WritePreferences(prefs adapter.Preferences) error {
	raw, err := a.readSettings()
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

	if err := a.writeSettings(raw); err != nil {
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
