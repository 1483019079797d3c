// Package sync implements the sync orchestrator: comparing a source
// and target adapter's fields, planning per-item create/update/skip
// actions, and executing them (or merely previewing them under --dry-run).
// Grounded on the teacher's cli.runSync command-level orchestration
// (HartBrook-staghorn/internal/cli/sync.go), generalized from "fetch one
// team config and apply it" to "diff two adapters field by field".
package sync

import (
	"github.com/google/uuid"

	"github.com/skrillsdev/skrills/internal/adapter"
	"github.com/skrillsdev/skrills/internal/skillindex"
)

// Field selection for one sync invocation.
type Selection struct {
	Skills      bool
	Commands    bool
	McpServers  bool
	Preferences bool
}

// AllFields selects every field.
func AllFields() Selection {
	return Selection{Skills: true, Commands: true, McpServers: true, Preferences: true}
}

// Conflict policy for items present on both sides with differing content.
type Conflict string

const (
	ConflictOverwrite Conflict = "overwrite"
	ConflictSkip      Conflict = "skip"
)

// Options configures one sync invocation.
type Options struct {
	DryRun               bool
	SkipExistingCommands bool
	Conflict             Conflict
}

// DefaultOptions overwrites conflicting items and does not skip existing commands.
func DefaultOptions() Options {
	return Options{Conflict: ConflictOverwrite}
}

// Action is the per-item decision the planner makes.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionSkip   Action = "skip"
)

// PlanItem is one planned or executed unit of work.
type PlanItem struct {
	Field  adapter.Field
	Name   string
	Action Action
	Reason string
	Err    error
}

// Report is the result of one sync invocation across all selected fields.
type Report struct {
	CorrelationID string
	Source        adapter.Name
	Target        adapter.Name
	Created       int
	Updated       int
	Skipped       []PlanItem
	Failed        []PlanItem
}

// Run plans and (unless DryRun) executes a sync from src to dst over sel.
func Run(src, dst adapter.AgentAdapter, sel Selection, opts Options) (Report, error) {
	report := Report{
		CorrelationID: uuid.NewString(),
		Source:        src.Name(),
		Target:        dst.Name(),
	}

	if sel.Skills && src.Support().Skills && dst.Support().Skills {
		if err := syncSkills(src, dst, opts, &report); err != nil {
			return report, err
		}
	}
	if sel.Commands && src.Support().Commands && dst.Support().Commands {
		if err := syncCommands(src, dst, opts, &report); err != nil {
			return report, err
		}
	}
	if sel.McpServers && src.Support().McpServers && dst.Support().McpServers {
		if err := syncMcpServers(src, dst, opts, &report); err != nil {
			return report, err
		}
	}
	if sel.Preferences && src.Support().Preferences && dst.Support().Preferences {
		if err := syncPreferences(src, dst, opts, &report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func syncSkills(src, dst adapter.AgentAdapter, opts Options, report *Report) error {
	sourceSkills, err := src.ReadSkills()
	if err != nil {
		return err
	}
	targetSkills, err := dst.ReadSkills()
	if err != nil {
		return err
	}
	targetHash := map[string]string{}
	for _, s := range targetSkills {
		targetHash[s.Name] = s.ContentHash
	}

	var writeList []skillindex.SkillMeta
	for _, s := range sourceSkills {
		existingHash, present := targetHash[s.Name]
		switch {
		case !present:
			report.Created++
			writeList = append(writeList, s)
		case existingHash != s.ContentHash && opts.Conflict == ConflictSkip:
			report.Skipped = append(report.Skipped, PlanItem{
				Field: adapter.FieldSkills, Name: s.Name, Action: ActionSkip, Reason: "conflict-skip",
			})
		case existingHash != s.ContentHash:
			report.Updated++
			writeList = append(writeList, s)
		default:
			report.Skipped = append(report.Skipped, PlanItem{
				Field: adapter.FieldSkills, Name: s.Name, Action: ActionSkip, Reason: "hash-equal",
			})
		}
	}

	if opts.DryRun || len(writeList) == 0 {
		return nil
	}
	return dst.WriteSkills(writeList)
}

func syncCommands(src, dst adapter.AgentAdapter, opts Options, report *Report) error {
	sourceCmds, err := src.ReadCommands()
	if err != nil {
		return err
	}
	targetCmds, err := dst.ReadCommands()
	if err != nil {
		return err
	}
	targetHash := map[string]string{}
	for _, c := range targetCmds {
		targetHash[c.Name] = c.ContentHash
	}

	var writeList []adapter.Command
	for _, c := range sourceCmds {
		existingHash, present := targetHash[c.Name]
		switch {
		case !present:
			report.Created++
			writeList = append(writeList, c)
		case opts.SkipExistingCommands:
			report.Skipped = append(report.Skipped, PlanItem{
				Field: adapter.FieldCommands, Name: c.Name, Action: ActionSkip, Reason: "skip-existing-commands",
			})
		case existingHash != c.ContentHash && opts.Conflict == ConflictSkip:
			report.Skipped = append(report.Skipped, PlanItem{
				Field: adapter.FieldCommands, Name: c.Name, Action: ActionSkip, Reason: "conflict-skip",
			})
		case existingHash != c.ContentHash:
			report.Updated++
			writeList = append(writeList, c)
		default:
			report.Skipped = append(report.Skipped, PlanItem{
				Field: adapter.FieldCommands, Name: c.Name, Action: ActionSkip, Reason: "hash-equal",
			})
		}
	}

	if opts.DryRun || len(writeList) == 0 {
		return nil
	}
	return dst.WriteCommands(writeList)
}

func syncMcpServers(src, dst adapter.AgentAdapter, opts Options, report *Report) error {
	servers, err := src.ReadMcpServers()
	if err != nil {
		return err
	}

	var writeList []adapter.McpServer
	for _, s := range servers {
		if _, isHTTP := s.Transport.(adapter.HTTPTransport); isHTTP && dst.Name() != adapter.Copilot {
			// HTTP-transport MCP servers are filtered, not failed, when
			// syncing to a stdio-only target.
			report.Skipped = append(report.Skipped, PlanItem{
				Field: adapter.FieldMcpServers, Name: s.Name, Action: ActionSkip,
				Reason: "http transport unsupported by stdio-only target",
			})
			continue
		}
		writeList = append(writeList, s)
		report.Updated++
	}

	if opts.DryRun || len(writeList) == 0 {
		return nil
	}
	return dst.WriteMcpServers(writeList)
}

func syncPreferences(src, dst adapter.AgentAdapter, opts Options, report *Report) error {
	prefs, err := src.ReadPreferences()
	if err != nil {
		return err
	}
	if prefs.Model == nil {
		return nil
	}
	report.Updated++
	if opts.DryRun {
		return nil
	}
	return dst.WritePreferences(adapter.Preferences{Model: prefs.Model})
}

// SyncAll runs src against every adapter in targets independently. One
// target's failure does not abort the others; its report carries the error
// in a synthetic Failed entry instead.
func SyncAll(src adapter.AgentAdapter, targets []adapter.AgentAdapter, sel Selection, opts Options) []Report {
	reports := make([]Report, 0, len(targets))
	for _, dst := range targets {
		report, err := Run(src, dst, sel, opts)
		if err != nil {
			report.Failed = append(report.Failed, PlanItem{
				Name: string(dst.Name()), Reason: err.Error(), Err: err,
			})
		}
		reports = append(reports, report)
	}
	return reports
}
