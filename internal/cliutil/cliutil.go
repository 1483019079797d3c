// Package cliutil holds small colored-output helpers shared by every cobra
// command, grounded on the teacher's icon/SprintFunc set
// (HartBrook-staghorn/internal/cli/root.go).
package cliutil

import "github.com/fatih/color"

var (
	SuccessIcon = color.New(color.FgGreen).Sprint("✓")
	WarningIcon = color.New(color.FgYellow).Sprint("⚠")
	ErrorIcon   = color.New(color.FgRed).Sprint("✗")

	Success = color.New(color.FgGreen).SprintFunc()
	Warning = color.New(color.FgYellow).SprintFunc()
	Info    = color.New(color.FgCyan).SprintFunc()
	Dim     = color.New(color.Faint).SprintFunc()
)
