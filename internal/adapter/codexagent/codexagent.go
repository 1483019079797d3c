// Package codexagent implements the AgentAdapter for Codex:
// strict `skills/**/SKILL.md`, `prompts/*.md` commands, and a single
// `config.toml` holding both `[mcp_servers.*]` and top-level preferences.
// Grounded on the teacher's config.Paths struct-of-paths idiom
// (HartBrook-staghorn/internal/config/paths.go) for config_root
// resolution; config.toml (de)serialization is new to this adapter since
// the teacher only ever reads/writes YAML — BurntSushi/toml is adopted
// from the rest of the example pack for this concern.
package codexagent

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/skrillsdev/skrills/internal/adapter"
	"github.com/skrillsdev/skrills/internal/skillindex"
	"github.com/skrillsdev/skrills/internal/skillsource"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

const adapterLabel = "codex"

// Adapter implements adapter.AgentAdapter for Codex.
type Adapter struct {
	root string
}

// New constructs an Adapter rooted at root (typically
// $XDG_CONFIG_HOME/codex or $HOME/.codex).
func New(root string) *Adapter {
	return &Adapter{root: root}
}

func (a *Adapter) Name() adapter.Name { return adapter.Codex }

func (a *Adapter) Support() adapter.FieldSupport {
	return adapter.FieldSupport{Skills: true, Commands: true, McpServers: true, Preferences: true}
}

func (a *Adapter) ConfigRoot() string { return a.root }

func (a *Adapter) promptsDir() string  { return filepath.Join(a.root, "prompts") }
func (a *Adapter) configPath() string  { return filepath.Join(a.root, "config.toml") }

// ReadSkills discovers every SKILL.md under the root (strict).
func (a *Adapter) ReadSkills() ([]skillindex.SkillMeta, error) {
	metas, err := skillindex.Walk(skillindex.Root{Source: skillsource.Codex, Dir: a.root})
	if err != nil {
		return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldSkills), err)
	}
	return metas, nil
}

// WriteSkills writes each skill under <root>/skills/<name>/SKILL.md and
// sets skills = true in config.toml's [features] table.
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
	raw, err := a.readConfig()
	if err == nil {
		features, _ := raw["features"].(map[string]any)
		if features == nil {
			features = map[string]any{}
		}
		features["skills"] = true
		raw["features"] = features
		err = a.writeConfig(raw)
	}
	if err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldSkills), err)
	}
	return nil
}

// ReadCommands loads every *.md under promptsDir().
func (a *Adapter) ReadCommands() ([]adapter.Command, error) {
	entries, err := os.ReadDir(a.promptsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldCommands), err)
	}

	var cmds []adapter.Command
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		path := filepath.Join(a.promptsDir(), e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldCommands), err)
		}
		sum := sha256.Sum256(data)
		cmds = append(cmds, adapter.Command{
			Name:         e.Name()[:len(e.Name())-len(filepath.Ext(e.Name()))],
			Content:      data,
			RelativePath: e.Name(),
			ContentHash:  "sha256:" + hex.EncodeToString(sum[:]),
		})
	}
	return cmds, nil
}

// WriteCommands writes each command under promptsDir().
func (a *Adapter) WriteCommands(cmds []adapter.Command) error {
	if err := os.MkdirAll(a.promptsDir(), 0o755); err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldCommands), err)
	}
	for _, c := range cmds {
		name, err := adapter.SanitizeName(c.Name)
		if err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldCommands), err)
		}
		dest := filepath.Join(a.promptsDir(), name+".md")
		if err := writeAtomic(dest, c.Content); err != nil {
			return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldCommands), err)
		}
	}
	return nil
}

type mcpServerTOML struct {
	Command string            `toml:"command,omitempty"`
	Args    []string          `toml:"args,omitempty"`
	Env     map[string]string `toml:"env,omitempty"`
	URL     string            `toml:"url,omitempty"`
}

// readConfig decodes config.toml into a plain map so that every key this
// adapter doesn't model round-trips untouched.
func (a *Adapter) readConfig() (map[string]any, error) {
	raw := map[string]any{}
	data, err := os.ReadFile(a.configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return raw, nil
		}
		return nil, err
	}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (a *Adapter) writeConfig(raw map[string]any) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(raw); err != nil {
		return err
	}
	return writeAtomic(a.configPath(), buf.Bytes())
}

// ReadMcpServers decodes config.toml's [mcp_servers.*] table.
func (a *Adapter) ReadMcpServers() ([]adapter.McpServer, error) {
	raw, err := a.readConfig()
	if err != nil {
		return nil, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldMcpServers), err)
	}

	servers, _ := raw["mcp_servers"].(map[string]any)
	var out []adapter.McpServer
	for name, v := range servers {
		fields, ok := v.(map[string]any)
		if !ok {
			continue
		}
		var transport adapter.McpTransport
		if url, ok := fields["url"].(string); ok && url != "" {
			transport = adapter.HTTPTransport{URL: url}
		} else {
			transport = adapter.StdioTransport{
				Command: asString(fields["command"]),
				Args:    asStringSlice(fields["args"]),
				Env:     asStringMap(fields["env"]),
			}
		}
		out = append(out, adapter.McpServer{Name: name, Transport: transport})
	}
	return out, nil
}

// WriteMcpServers rewrites config.toml's [mcp_servers.*] table, preserving
// every other top-level key verbatim. The sync orchestrator treats Codex as
// a stdio-only target and drops HTTP servers before they reach this method;
// an HTTPTransport passed in directly is written as a bare url entry.
func (a *Adapter) WriteMcpServers(servers []adapter.McpServer) error {
	raw, err := a.readConfig()
	if err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldMcpServers), err)
	}

	encoded := map[string]any{}
	for _, s := range servers {
		switch t := s.Transport.(type) {
		case adapter.StdioTransport:
			encoded[s.Name] = mcpServerTOML{Command: t.Command, Args: t.Args, Env: t.Env}
		case adapter.HTTPTransport:
			encoded[s.Name] = mcpServerTOML{URL: t.URL}
		}
	}
	raw["mcp_servers"] = encoded

	if err := a.writeConfig(raw); err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldMcpServers), err)
	}
	return nil
}

// ReadPreferences decodes config.toml's top-level "model" key.
func (a *Adapter) ReadPreferences() (adapter.Preferences, error) {
	raw, err := a.readConfig()
	if err != nil {
		return adapter.Preferences{}, skrillserr.AdapterRead(adapterLabel, string(adapter.FieldPreferences), err)
	}
	prefs := adapter.Preferences{Extras: map[string]any{}}
	if model := asString(raw["model"]); model != "" {
		prefs.Model = &model
	}
	for k, v := range raw {
		if k == "model" || k == "mcp_servers" {
			continue
		}
		prefs.Extras[k] = v
	}
	return prefs, nil
}

// WritePreferences rewrites config.toml's top-level "model" key, leaving
// mcp_servers and everything else untouched.
func (a *Adapter) WritePreferences(prefs adapter.Preferences) error {
	raw, err := a.readConfig()
	if err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldPreferences), err)
	}
	if prefs.Model != nil {
		raw["model"] = *prefs.Model
	}
	for k, v := range prefs.Extras {
		raw[k] = v
	}
	if err := a.writeConfig(raw); err != nil {
		return skrillserr.AdapterWrite(adapterLabel, string(adapter.FieldPreferences), err)
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asStringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}
	return out
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
