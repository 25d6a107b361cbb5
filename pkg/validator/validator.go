package validator

import (
	"fmt"

	"astron-hq/astroncheck/pkg/check"
	"astron-hq/astroncheck/pkg/document"
	"astron-hq/astroncheck/pkg/report"
	"astron-hq/astroncheck/pkg/schema"
)

// Validator checks configuration documents against a schema registry.
// It keeps no state between calls and is safe for concurrent use as long as
// the registry is not modified.
type Validator struct {
	registry *schema.Registry
}

// New creates a validator backed by reg. A nil registry selects
// schema.Default().
func New(reg *schema.Registry) *Validator {
	if reg == nil {
		reg = schema.Default()
	}
	return &Validator{registry: reg}
}

// Validate validates doc against the built-in schemas.
func Validate(doc *document.Node) report.Report {
	return New(nil).Validate(doc)
}

// Registry returns the registry the validator checks against.
func (v *Validator) Registry() *schema.Registry {
	return v.registry
}

// Validate runs one pass over doc and returns every finding it produced.
// A finding never stops the pass; only a root that is not a mapping does.
func (v *Validator) Validate(doc *document.Node) report.Report {
	var findings report.List

	for visit := range Walk(doc, v.registry) {
		if visit.Finding != nil {
			findings.Add(*visit.Finding)
			if visit.Fatal {
				break
			}
			continue
		}
		checkMapping(&findings, visit.Path, visit.Node, visit.Schema)
	}

	return report.New(findings.Findings())
}

// checkMapping applies the closed-world rules to one mapping: unexpected
// attributes, then missing required attributes, then the checks of every
// declared attribute present, then the cross-field rules.
func checkMapping(out *report.List, path string, m *document.Node, s *schema.Node) {
	allowed := s.Allowed()

	for _, e := range m.Entries {
		if allowed[e.Key] {
			continue
		}
		out.Add(report.Finding{
			Path:       join(path, e.Key),
			Message:    fmt.Sprintf("unexpected attribute %s", e.Key),
			Category:   report.CategoryField,
			Location:   e.KeyAt,
			Suggestion: report.SuggestName(e.Key, missing(m, s.Names())),
		})
	}

	for _, name := range s.Required() {
		if m.Has(name) {
			continue
		}
		out.Add(report.Finding{
			Path:     join(path, name),
			Message:  fmt.Sprintf("missing required attribute %s", name),
			Category: report.CategoryField,
			Location: m.Location,
		})
	}

	for _, e := range m.Entries {
		spec, ok := s.Field(e.Key)
		if !ok {
			continue
		}
		checkValue(out, join(path, e.Key), e.Value, spec)
	}

	for _, rule := range s.Rules {
		for _, viol := range rule.Check(m) {
			loc := m.Location
			if n, ok := m.Get(viol.Field); ok {
				loc = n.Location
			}
			out.Add(report.Finding{
				Path:     join(path, viol.Field),
				Message:  viol.Problem.Message,
				Category: report.CategoryField,
				Location: loc,
			})
		}
	}
}

// checkValue runs the checkers of spec against n and descends into nested
// mappings and list elements. Nested role lists are left to the walker.
func checkValue(out *report.List, path string, n *document.Node, spec schema.FieldSpec) {
	problems := check.Run(n, spec.Checkers()...)
	for _, p := range problems {
		out.Add(report.Finding{
			Path:     path,
			Message:  p.Message,
			Category: category(p, n, spec),
			Location: n.Location,
		})
		if p.IsKind() {
			return
		}
	}

	switch spec.Kind {
	case schema.KindMapping:
		if spec.Child != nil {
			checkMapping(out, path, n, spec.Child)
		}
	case schema.KindList:
		if spec.Elem == nil {
			return
		}
		for i, item := range n.Items {
			checkValue(out, fmt.Sprintf("%s[%d]", path, i), item, *spec.Elem)
		}
	}
}

// category classifies a problem: a container of the wrong kind, or a scalar
// field holding a container, is structural; everything else is a field error.
func category(p *check.Problem, n *document.Node, spec schema.FieldSpec) report.Category {
	if !p.IsKind() {
		return report.CategoryField
	}
	switch spec.Kind {
	case schema.KindMapping:
		if n.IsMapping() {
			return report.CategoryField
		}
		return report.CategoryStructural
	case schema.KindList, schema.KindNestedRole:
		if n.IsSequence() {
			return report.CategoryField
		}
		return report.CategoryStructural
	}
	if n.IsMapping() || n.IsSequence() {
		return report.CategoryStructural
	}
	return report.CategoryField
}

// missing returns the names not present in m, used as suggestion candidates.
func missing(m *document.Node, names []string) []string {
	var out []string
	for _, name := range names {
		if !m.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
