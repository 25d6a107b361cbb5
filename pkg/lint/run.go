package lint

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// Run is the outcome of checking a set of files.
type Run struct {
	ID        string    `json:"run_id"`
	Trigger   string    `json:"trigger"`
	StartedAt time.Time `json:"started_at"`
	Results   []Result  `json:"results"`
}

// Invalid returns the number of files with an Invalid verdict.
func (r Run) Invalid() int {
	n := 0
	for _, res := range r.Results {
		if !res.Valid() {
			n++
		}
	}
	return n
}

// Valid reports whether every file in the run is valid.
func (r Run) Valid() bool {
	return r.Invalid() == 0
}

// Findings returns the total number of findings across all files.
func (r Run) Findings() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Findings)
	}
	return n
}

// WriteText writes a human-readable summary of the run.
func (r Run) WriteText(w io.Writer) error {
	for _, res := range r.Results {
		mark := "✓"
		if !res.Valid() {
			mark = "✗"
		}
		if _, err := fmt.Fprintf(w, "%s %s: %s\n", mark, res.File, res.Verdict); err != nil {
			return err
		}
		for _, f := range res.Findings {
			if _, err := fmt.Fprintf(w, "  - %s\n", f); err != nil {
				return err
			}
			if f.Suggestion != "" {
				if _, err := fmt.Fprintf(w, "    = suggestion: %s\n", f.Suggestion); err != nil {
					return err
				}
			}
		}
	}

	_, err := fmt.Fprintf(w, "\nSummary: %d file(s), %d invalid, %d finding(s)\n",
		len(r.Results), r.Invalid(), r.Findings())
	return err
}

// Header returns the CSV column names.
func (r Run) Header() []string {
	return []string{"file", "verdict", "path", "category", "line", "column", "message", "suggestion"}
}

// Records returns one CSV row per finding, and one row for each valid file.
func (r Run) Records() [][]string {
	var rows [][]string
	for _, res := range r.Results {
		if len(res.Findings) == 0 {
			rows = append(rows, []string{res.File, res.Verdict.String(), "", "", "", "", "", ""})
			continue
		}
		for _, f := range res.Findings {
			rows = append(rows, []string{
				res.File,
				res.Verdict.String(),
				f.Path,
				string(f.Category),
				position(f.Location.Line),
				position(f.Location.Column),
				f.Message,
				f.Suggestion,
			})
		}
	}
	return rows
}

func position(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
