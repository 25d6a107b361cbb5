package validator

import (
	"fmt"
	"iter"

	"astron-hq/astroncheck/pkg/document"
	"astron-hq/astroncheck/pkg/report"
	"astron-hq/astroncheck/pkg/schema"
)

// Visit is one schema-bearing node produced by Walk.
//
// Either Schema is set and the engine checks Node against it, or Finding is
// set and the node gets no field-level checks. Fatal marks a finding that
// ends the pass.
type Visit struct {
	Path   string
	Node   *document.Node
	Schema *schema.Node

	// Role is the resolved role type for role visits.
	Role string

	Finding *report.Finding
	Fatal   bool
}

// Walk enumerates the nodes of doc that carry their own schema: first the
// root with the top-level schema, then every element of each nested role
// list in list order. Each role's type is resolved before its schema is
// looked up; roles without a usable type yield a single finding.
//
// The sequence is lazy. Each call to Walk starts a fresh pass.
func Walk(doc *document.Node, reg *schema.Registry) iter.Seq[Visit] {
	return func(yield func(Visit) bool) {
		if !doc.IsMapping() {
			loc := document.Location{}
			if doc != nil {
				loc = doc.Location
			}
			yield(Visit{
				Node: doc,
				Finding: &report.Finding{
					Message:  fmt.Sprintf("document must be a mapping, got %s", doc.Describe()),
					Category: report.CategoryStructural,
					Location: loc,
				},
				Fatal: true,
			})
			return
		}

		top := reg.TopLevel()
		if !yield(Visit{Node: doc, Schema: top}) {
			return
		}

		for _, e := range doc.Entries {
			spec, ok := top.Field(e.Key)
			if !ok || spec.Kind != schema.KindNestedRole || !e.Value.IsSequence() {
				continue
			}
			for i, item := range e.Value.Items {
				path := fmt.Sprintf("%s[%d]", e.Key, i)
				if !yield(roleVisit(path, item, reg)) {
					return
				}
			}
		}
	}
}

// roleVisit resolves the schema of one role block.
func roleVisit(path string, role *document.Node, reg *schema.Registry) Visit {
	v := Visit{Path: path, Node: role}

	if !role.IsMapping() {
		v.Finding = &report.Finding{
			Path:     path,
			Message:  fmt.Sprintf("role must be a mapping, got %s", role.Describe()),
			Category: report.CategoryStructural,
			Location: role.Location,
		}
		return v
	}

	typ, ok := role.Get(schema.TypeField)
	if !ok {
		v.Finding = &report.Finding{
			Path:       path,
			Message:    "role missing type",
			Category:   report.CategorySchema,
			Location:   role.Location,
			Suggestion: report.SuggestMissing(schema.TypeField, "stateserver"),
		}
		return v
	}
	if !typ.IsScalar() {
		v.Finding = &report.Finding{
			Path:     path + "." + schema.TypeField,
			Message:  fmt.Sprintf("role type must be a string, got %s", typ.Describe()),
			Category: report.CategoryStructural,
			Location: typ.Location,
		}
		return v
	}

	rs, err := reg.SchemaFor(typ.Value)
	if err != nil {
		v.Finding = &report.Finding{
			Path:       path + "." + schema.TypeField,
			Message:    err.Error(),
			Category:   report.CategorySchema,
			Location:   typ.Location,
			Suggestion: report.SuggestName(typ.Value, reg.Types()),
		}
		return v
	}

	v.Role = rs.Type
	v.Schema = rs.Node
	return v
}
