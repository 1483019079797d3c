// Package adapter defines the AgentAdapter capability set and the wire
// types each concrete adapter (claudeagent, codexagent, copilotagent) reads
// and writes. Grounded on the teacher's per-target command converters
// (HartBrook-staghorn/internal/commands/claude.go ConvertToClaude,
// internal/rules/claude.go), generalized from "one converter function per
// target" into a small interface with one concrete implementation per
// target, since Go has no ergonomic generics-over-capability-sets pattern
// that reads better than three plain structs here.
package adapter

import (
	"regexp"
	"strings"

	"github.com/skrillsdev/skrills/internal/skillindex"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

// Name identifies a concrete adapter.
type Name string

const (
	Claude  Name = "claude"
	Codex   Name = "codex"
	Copilot Name = "copilot"
)

// Field identifies one of the four syncable surfaces.
type Field string

const (
	FieldSkills      Field = "skills"
	FieldCommands    Field = "commands"
	FieldMcpServers  Field = "mcp_servers"
	FieldPreferences Field = "preferences"
)

// FieldSupport records which fields an adapter implements. Unsupported
// fields are filtered, not failed, during sync.
type FieldSupport struct {
	Skills      bool
	Commands    bool
	McpServers  bool
	Preferences bool
}

func (fs FieldSupport) Supports(f Field) bool {
	switch f {
	case FieldSkills:
		return fs.Skills
	case FieldCommands:
		return fs.Commands
	case FieldMcpServers:
		return fs.McpServers
	case FieldPreferences:
		return fs.Preferences
	default:
		return false
	}
}

// Command is a byte-safe custom command body; content is never forced
// through a string type that could lossily re-encode it.
type Command struct {
	Name         string
	Content      []byte
	RelativePath string
	ContentHash  string
}

// McpTransport is a sum type over the two transports an MCP server
// declaration can use.
type McpTransport interface {
	isMcpTransport()
}

// StdioTransport launches a local process speaking MCP over stdio.
type StdioTransport struct {
	Command string
	Args    []string
	Env     map[string]string
}

func (StdioTransport) isMcpTransport() {}

// HTTPTransport speaks MCP over a remote HTTP endpoint.
type HTTPTransport struct {
	URL     string
	Headers map[string]string
}

func (HTTPTransport) isMcpTransport() {}

// McpServer is one configured MCP server entry.
type McpServer struct {
	Name      string
	Transport McpTransport
	Tools     []string
	Extras    map[string]any
}

// Preferences holds adapter-level settings beyond skills/commands/mcp.
type Preferences struct {
	Model  *string
	Extras map[string]any
}

// AdapterState bundles everything one sync pass reads or writes for an adapter.
type AdapterState struct {
	Skills      []skillindex.SkillMeta
	Commands    []Command
	McpServers  []McpServer
	Preferences Preferences
}

// AgentAdapter is implemented once per supported coding agent.
type AgentAdapter interface {
	Name() Name
	Support() FieldSupport
	ConfigRoot() string

	ReadSkills() ([]skillindex.SkillMeta, error)
	WriteSkills(skills []skillindex.SkillMeta) error

	ReadCommands() ([]Command, error)
	WriteCommands(cmds []Command) error

	ReadMcpServers() ([]McpServer, error)
	WriteMcpServers(servers []McpServer) error

	ReadPreferences() (Preferences, error)
	WritePreferences(prefs Preferences) error
}

var sanitizePattern = regexp.MustCompile(`[^a-zA-Z0-9.-]+`)

// SanitizeName maps an arbitrary skill/command name to a filesystem-safe
// basename stem. Names containing a path separator or a parent-directory
// component are rejected outright; every other invalid character is
// substituted with an underscore and runs of underscores are collapsed.
func SanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", skrillserr.InvalidArgument("name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", skrillserr.InvalidArgument("name must not contain path separators or parent-directory components: " + name)
	}
	sanitized := sanitizePattern.ReplaceAllString(name, "_")
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		return "", skrillserr.InvalidArgument("name has no safe characters: " + name)
	}
	return sanitized, nil
}
