package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/skrillsdev/skrills/internal/cliutil"
)

// Summary tallies issue counts across a Report.
type Summary struct {
	Skills   int `json:"skills"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report is the overall output of a validate run.
type Report struct {
	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
}

// NewReport builds a Report and its Summary from a set of per-skill results.
func NewReport(results []Result) Report {
	summary := Summary{Skills: len(results)}
	for _, r := range results {
		for _, issue := range r.Issues {
			switch issue.Level {
			case LevelError:
				summary.Errors++
			case LevelWarning:
				summary.Warnings++
			}
		}
	}
	return Report{Results: results, Summary: summary}
}

// OK reports whether the run found no error-level issues.
func (r Report) OK() bool {
	return r.Summary.Errors == 0
}

// WriteJSON renders the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders the report in the teacher's colored-glyph style, one
// line per issue grouped under its skill.
func (r Report) WriteText(w io.Writer) {
	for _, res := range r.Results {
		if len(res.Issues) == 0 {
			fmt.Fprintf(w, "%s %s (%s)\n", cliutil.SuccessIcon, titleCase(res.Skill.Name), res.Target)
			continue
		}
		label := res.Skill.Name
		if label == "" {
			label = "(unnamed)"
		}
		fmt.Fprintf(w, "%s (%s)\n", titleCase(label), res.Target)
		for _, issue := range res.Issues {
			icon := cliutil.ErrorIcon
			if issue.Level == LevelWarning {
				icon = cliutil.WarningIcon
			}
			fmt.Fprintf(w, "  %s %s\n", icon, issue.String())
		}
	}

	fmt.Fprintf(w, "\n%s skills checked, %s\n",
		cliutil.Info(fmt.Sprint(r.Summary.Skills)),
		summaryLine(r.Summary))
}

func summaryLine(s Summary) string {
	parts := make([]string, 0, 2)
	if s.Errors > 0 {
		parts = append(parts, cliutil.Warning(fmt.Sprintf("%d errors", s.Errors)))
	} else {
		parts = append(parts, cliutil.Success("0 errors"))
	}
	if s.Warnings > 0 {
		parts = append(parts, cliutil.Dim(fmt.Sprintf("%d warnings", s.Warnings)))
	}
	return strings.Join(parts, ", ")
}
