// Package mcpserver binds skrills' core operations to MCP tool handlers
// over mark3labs/mcp-go's stdio transport. The MCP wire framing and RPC
// dispatch themselves are an external collaborator (consumed as a
// library, per the library's own documented NewMCPServer/AddTool/
// ServeStdio pattern); this package only supplies the tool schemas and
// the plain functions that answer them.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/skrillsdev/skrills/internal/adapter"
	"github.com/skrillsdev/skrills/internal/adapter/claudeagent"
	"github.com/skrillsdev/skrills/internal/adapter/codexagent"
	"github.com/skrillsdev/skrills/internal/adapter/copilotagent"
	"github.com/skrillsdev/skrills/internal/depresolver"
	"github.com/skrillsdev/skrills/internal/skillindex"
	"github.com/skrillsdev/skrills/internal/skillsource"
	"github.com/skrillsdev/skrills/internal/snapshotcache"
	syncpkg "github.com/skrillsdev/skrills/internal/sync"
	"github.com/skrillsdev/skrills/internal/validator"
)

// Server wires a snapshotcache.Cache and the three concrete adapters to
// a set of MCP tools.
type Server struct {
	cache    *snapshotcache.Cache
	adapters map[adapter.Name]adapter.AgentAdapter
}

// New constructs a Server. adapters should contain one entry per
// supported agent, keyed by adapter.Name.
func New(cache *snapshotcache.Cache, adapters map[adapter.Name]adapter.AgentAdapter) *Server {
	return &Server{cache: cache, adapters: adapters}
}

// Register attaches every tool this package knows about to s.
func (srv *Server) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("validate_skills",
		mcp.WithDescription("Check discovered skills against a target adapter's frontmatter rules."),
		mcp.WithString("target", mcp.Required(), mcp.Description("claude, codex, copilot, or all")),
	), srv.handleValidateSkills)

	s.AddTool(mcp.NewTool("resolve_dependencies",
		mcp.WithDescription("Resolve a skill's depends graph to a flat, ordered dependency list."),
		mcp.WithString("skill", mcp.Required(), mcp.Description("name of the skill to resolve dependencies for")),
	), srv.handleResolveDependencies)

	s.AddTool(mcp.NewTool("sync",
		mcp.WithDescription("Sync skills/commands/mcp_servers/preferences from one adapter to another."),
		mcp.WithString("from", mcp.Required(), mcp.Description("source adapter: claude, codex, or copilot")),
		mcp.WithString("to", mcp.Required(), mcp.Description("target adapter: claude, codex, or copilot")),
		mcp.WithBoolean("dry_run", mcp.Description("preview without writing")),
	), srv.handleSync)

	s.AddTool(mcp.NewTool("sync_all",
		mcp.WithDescription("Sync from one adapter to every other adapter that declares support."),
		mcp.WithString("from", mcp.Required(), mcp.Description("source adapter: claude, codex, or copilot")),
		mcp.WithBoolean("dry_run", mcp.Description("preview without writing")),
	), srv.handleSyncAll)

	s.AddTool(mcp.NewTool("sync_status",
		mcp.WithDescription("Report the current skill snapshot's age and skill count."),
	), srv.handleSyncStatus)
}

// ServeStdio registers every tool and serves them over stdio until the
// client disconnects or the process is asked to stop.
func (srv *Server) ServeStdio() error {
	s := server.NewMCPServer("skrills", "0.1.0")
	srv.Register(s)
	return server.ServeStdio(s)
}

func (srv *Server) resolveAdapter(name string) (adapter.AgentAdapter, error) {
	a, ok := srv.adapters[adapter.Name(name)]
	if !ok {
		return nil, fmt.Errorf("unknown adapter %q", name)
	}
	return a, nil
}

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (srv *Server) handleValidateSkills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	targetArg, err := req.RequireString("target")
	if err != nil {
		return nil, err
	}

	snap, err := srv.cache.Get()
	if err != nil {
		return nil, err
	}

	targets, err := validator.Targets(targetArg)
	if err != nil {
		return nil, err
	}

	var results []validator.Result
	for _, t := range targets {
		results = append(results, validator.CheckAll(snap.Skills, t)...)
	}

	return textResult(validator.NewReport(results))
}

func (srv *Server) handleResolveDependencies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("skill")
	if err != nil {
		return nil, err
	}

	snap, err := srv.cache.Get()
	if err != nil {
		return nil, err
	}

	lookup := func(n string, source skillsource.Source) []skillindex.SkillMeta {
		var out []skillindex.SkillMeta
		for _, s := range snap.Skills {
			if s.Name != n {
				continue
			}
			if source != "" && s.Source != source {
				continue
			}
			out = append(out, s)
		}
		return out
	}

	result, err := depresolver.Resolve(name, lookup, depresolver.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return textResult(result)
}

func (srv *Server) handleSync(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fromName, err := req.RequireString("from")
	if err != nil {
		return nil, err
	}
	toName, err := req.RequireString("to")
	if err != nil {
		return nil, err
	}

	src, err := srv.resolveAdapter(fromName)
	if err != nil {
		return nil, err
	}
	dst, err := srv.resolveAdapter(toName)
	if err != nil {
		return nil, err
	}

	opts := syncpkg.DefaultOptions()
	opts.DryRun = req.GetBool("dry_run", false)

	report, err := syncpkg.Run(src, dst, syncpkg.AllFields(), opts)
	if err != nil {
		return nil, err
	}
	return textResult(report)
}

func (srv *Server) handleSyncAll(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fromName, err := req.RequireString("from")
	if err != nil {
		return nil, err
	}
	src, err := srv.resolveAdapter(fromName)
	if err != nil {
		return nil, err
	}

	var targets []adapter.AgentAdapter
	for name, a := range srv.adapters {
		if name == src.Name() {
			continue
		}
		targets = append(targets, a)
	}

	opts := syncpkg.DefaultOptions()
	opts.DryRun = req.GetBool("dry_run", false)

	reports := syncpkg.SyncAll(src, targets, syncpkg.AllFields(), opts)
	return textResult(reports)
}

func (srv *Server) handleSyncStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := srv.cache.Get()
	if err != nil {
		return nil, err
	}
	status := struct {
		SkillCount int    `json:"skill_count"`
		TakenAt    string `json:"taken_at"`
	}{
		SkillCount: len(snap.Skills),
		TakenAt:    snap.TakenAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	return textResult(status)
}

// NewDefaultAdapters constructs the three concrete adapters rooted under
// their default config directories.
func NewDefaultAdapters(claudeRoot, codexRoot, copilotRoot string) map[adapter.Name]adapter.AgentAdapter {
	return map[adapter.Name]adapter.AgentAdapter{
		adapter.Claude:  claudeagent.New(claudeRoot),
		adapter.Codex:   codexagent.New(codexRoot),
		adapter.Copilot: copilotagent.New(copilotRoot),
	}
}
