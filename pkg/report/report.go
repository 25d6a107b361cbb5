package report

import (
	"fmt"
	"io"
	"strings"
)

// Verdict is the outcome of one validation pass.
type Verdict int

const (
	Valid Verdict = iota
	Invalid
)

// String returns "Valid" or "Invalid".
func (v Verdict) String() string {
	if v == Valid {
		return "Valid"
	}
	return "Invalid"
}

// MarshalText renders the verdict for JSON and YAML output.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses "Valid" or "Invalid".
func (v *Verdict) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Valid":
		*v = Valid
	case "Invalid":
		*v = Invalid
	default:
		return fmt.Errorf("unknown verdict %q", text)
	}
	return nil
}

// Report is the final result of validating one document.
type Report struct {
	Verdict  Verdict   `json:"verdict"`
	Findings []Finding `json:"findings"`
}

// New reduces findings to a report: no findings is Valid, anything else
// is Invalid and keeps every finding in order.
func New(findings []Finding) Report {
	if len(findings) == 0 {
		return Report{Verdict: Valid, Findings: []Finding{}}
	}
	out := make([]Finding, len(findings))
	copy(out, findings)
	return Report{Verdict: Invalid, Findings: out}
}

// Valid reports whether the document passed.
func (r Report) Valid() bool {
	return r.Verdict == Valid
}

// Err returns nil for a valid report and an *Error otherwise.
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Findings: r.Findings}
}

// Format writes the verdict followed by one line per finding.
func (r Report) Format(w io.Writer) error {
	if _, err := fmt.Fprintln(w, r.Verdict); err != nil {
		return err
	}
	for _, f := range r.Findings {
		if _, err := fmt.Fprintf(w, "  - %s\n", f); err != nil {
			return err
		}
		if f.Suggestion != "" {
			if _, err := fmt.Fprintf(w, "    = suggestion: %s\n", f.Suggestion); err != nil {
				return err
			}
		}
	}
	return nil
}

// Error is the error form of an Invalid report.
type Error struct {
	Findings []Finding
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Findings) == 1 {
		return fmt.Sprintf("configuration is invalid: %s", e.Findings[0])
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration is invalid with %d findings:\n", len(e.Findings))
	for _, f := range e.Findings {
		fmt.Fprintf(&sb, "  - %s\n", f)
	}
	return sb.String()
}
