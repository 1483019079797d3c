// Skrills - a shared skill layer across Claude, Codex, and Copilot
package main

import (
	"os"
	"runtime"

	"github.com/skrillsdev/skrills/internal/cli"
)

func main() {
	installSigchldHygiene()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// installSigchldHygiene ignores SIGCHLD on Unix-like systems so that
// subordinate processes spawned by adapters (e.g. an MCP server's stdio
// child) are reaped by the kernel instead of lingering as zombies.
// signal.Ignore's runtime support for SIGCHLD already implies NOCLDWAIT;
// nothing here needs further action on process exit.
func installSigchldHygiene() {
	if runtime.GOOS == "windows" {
		return
	}
	ignoreSigchld()
}
