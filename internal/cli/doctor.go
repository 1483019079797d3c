package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/adapter"
	"github.com/skrillsdev/skrills/internal/cliutil"
	"github.com/skrillsdev/skrills/internal/runtimestate"
)

// NewDoctorCmd creates the doctor command: a read-only diagnostics sweep
// over adapter roots, runtime state files, and the snapshot cache.
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose adapter roots, runtime state, and snapshot cache health",
		RunE: func(cmd *cobra.Command, args []string) error {
			healthy := true

			for name, a := range adapters(cmd) {
				if !checkAdapterRoot(name, a) {
					healthy = false
				}
			}

			home := skrillsHome()
			if !checkRuntimeFile("skills-manifest.json", func() error {
				_, err := runtimestate.LoadManifest(filepath.Join(home, "skills-manifest.json"))
				return err
			}) {
				healthy = false
			}
			if !checkRuntimeFile("skills-pins.json", func() error {
				_, err := runtimestate.LoadPins(filepath.Join(home, "skills-pins.json"))
				return err
			}) {
				healthy = false
			}
			if !checkRuntimeFile("skills-runtime.json", func() error {
				_, err := runtimestate.LoadRuntimeOptions(filepath.Join(home, "skills-runtime.json"))
				return err
			}) {
				healthy = false
			}

			cache, err := buildCache(cmd)
			if err != nil {
				fmt.Printf("%s snapshot cache: %v\n", cliutil.ErrorIcon, err)
				healthy = false
			} else if snap, err := cache.Get(); err != nil {
				fmt.Printf("%s snapshot cache: %v\n", cliutil.ErrorIcon, err)
				healthy = false
			} else {
				age := time.Since(snap.TakenAt).Round(time.Second)
				fmt.Printf("%s snapshot cache: %d skills, %s old\n", cliutil.SuccessIcon, len(snap.Skills), age)
			}

			if !healthy {
				os.Exit(1)
			}
			return nil
		},
	}
}

func checkAdapterRoot(name adapter.Name, a adapter.AgentAdapter) bool {
	root := a.ConfigRoot()
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		fmt.Printf("%s %s root %s does not exist yet\n", cliutil.WarningIcon, name, root)
		return true
	case err != nil:
		fmt.Printf("%s %s root %s: %v\n", cliutil.ErrorIcon, name, root, err)
		return false
	case !info.IsDir():
		fmt.Printf("%s %s root %s is not a directory\n", cliutil.ErrorIcon, name, root)
		return false
	}

	probe := filepath.Join(root, ".skrills-doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		fmt.Printf("%s %s root %s is not writable: %v\n", cliutil.ErrorIcon, name, root, err)
		return false
	}
	os.Remove(probe)
	fmt.Printf("%s %s root %s exists and is writable\n", cliutil.SuccessIcon, name, root)
	return true
}

func checkRuntimeFile(label string, load func() error) bool {
	if err := load(); err != nil {
		fmt.Printf("%s %s: %v\n", cliutil.ErrorIcon, label, err)
		return false
	}
	fmt.Printf("%s %s parses cleanly\n", cliutil.SuccessIcon, label)
	return true
}
