package report

import (
	"fmt"
	"strings"

	"astron-hq/astroncheck/pkg/document"
)

// Category groups findings by the kind of mistake.
type Category string

const (
	CategoryStructural Category = "structural" // wrong node kind where a mapping/list/scalar was expected
	CategorySchema     Category = "schema"     // role type missing or not registered
	CategoryField      Category = "field"      // unexpected, missing or invalid attribute
)

// Finding is one problem detected in a configuration document.
type Finding struct {
	// Path is the location within the document, e.g. "roles[0].control".
	// It is empty for the document root.
	Path string `json:"path"`

	// Message is a human-readable reason.
	Message string `json:"message"`

	Category Category `json:"category"`

	// Location is the source position, when known.
	Location document.Location `json:"location,omitzero"`

	// Suggestion is an optional hint, e.g. "Did you mean 'control'?".
	Suggestion string `json:"suggestion,omitempty"`
}

// String renders the finding on one line: "path: message (file:line:col)".
func (f Finding) String() string {
	var sb strings.Builder
	if f.Path != "" {
		sb.WriteString(f.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(f.Message)
	if f.Location.IsValid() {
		fmt.Fprintf(&sb, " (%s)", f.Location)
	}
	return sb.String()
}

// List accumulates findings during one validation pass.
// The zero value is ready to use.
type List struct {
	findings []Finding
}

// Add appends a finding.
func (l *List) Add(f Finding) {
	l.findings = append(l.findings, f)
}

// Addf appends a finding with a formatted message.
func (l *List) Addf(cat Category, path string, loc document.Location, format string, args ...any) {
	l.Add(Finding{
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Category: cat,
		Location: loc,
	})
}

// Len returns the number of findings collected.
func (l *List) Len() int {
	return len(l.findings)
}

// Findings returns a copy of the collected findings.
func (l *List) Findings() []Finding {
	out := make([]Finding, len(l.findings))
	copy(out, l.findings)
	return out
}

// ByCategory returns the findings of one category.
func ByCategory(findings []Finding, cat Category) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Category == cat {
			out = append(out, f)
		}
	}
	return out
}
