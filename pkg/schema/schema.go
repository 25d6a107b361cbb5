package schema

import (
	"fmt"

	"astron-hq/astroncheck/pkg/check"
	"astron-hq/astroncheck/pkg/document"
)

// Kind is the value kind of a schema field.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindNetworkAddress
	KindInteger
	KindPositiveInteger
	KindFilePath
	KindList       // list of Elem
	KindNestedRole // list of role blocks, each validated against its own role schema
	KindMapping    // nested closed mapping described by Child
)

var kindNames = map[Kind]string{
	KindString:          "string",
	KindBool:            "bool",
	KindNetworkAddress:  "network_address",
	KindInteger:         "integer",
	KindPositiveInteger: "positive_integer",
	KindFilePath:        "file_path",
	KindList:            "list",
	KindNestedRole:      "nested_role",
	KindMapping:         "mapping",
}

// String returns the kind name used in schema listings.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// FieldSpec describes one attribute of a mapping.
type FieldSpec struct {
	Name     string
	Kind     Kind
	Required bool

	// Elem describes list elements for KindList.
	Elem *FieldSpec

	// Child is the schema of a KindMapping value.
	Child *Node

	// NonEmpty requires at least one element for KindList and KindNestedRole.
	NonEmpty bool

	// Checks are extra constraints run after the kind checker.
	Checks []check.Checker

	// Constraint is a short human description of Checks for schema listings.
	Constraint string
}

// Checkers returns the kind checker followed by the extra constraints.
func (f FieldSpec) Checkers() []check.Checker {
	var base []check.Checker
	switch f.Kind {
	case KindString:
		base = []check.Checker{check.String()}
	case KindBool:
		base = []check.Checker{check.Bool()}
	case KindNetworkAddress:
		base = []check.Checker{check.NetworkAddress()}
	case KindInteger:
		base = []check.Checker{check.Int()}
	case KindPositiveInteger:
		base = []check.Checker{check.Int(), check.Positive()}
	case KindFilePath:
		base = []check.Checker{check.FilePath()}
	case KindList, KindNestedRole:
		if f.NonEmpty {
			base = []check.Checker{check.NonEmptyList()}
		} else {
			base = []check.Checker{check.List()}
		}
	case KindMapping:
		base = []check.Checker{check.Mapping()}
	}
	return append(base, f.Checks...)
}

// TypeName renders the kind including list element kinds, e.g. "list<file_path>".
func (f FieldSpec) TypeName() string {
	if f.Kind == KindList && f.Elem != nil {
		return fmt.Sprintf("list<%s>", f.Elem.TypeName())
	}
	return f.Kind.String()
}

// Violation is a cross-field rule failure attributed to one field.
type Violation struct {
	Field   string
	Problem *check.Problem
}

// Rule is a constraint spanning several fields of one mapping.
// It runs after the per-field checks and must tolerate missing or malformed
// fields, which are already reported elsewhere.
type Rule struct {
	Description string
	Check       func(m *document.Node) []Violation
}

// Node is the schema of one closed mapping: the fields it may contain and
// the cross-field rules it must satisfy.
type Node struct {
	Fields []FieldSpec
	Rules  []Rule
}

// Field returns the spec for name.
func (n *Node) Field(name string) (FieldSpec, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Allowed returns the set of required and optional field names.
func (n *Node) Allowed() map[string]bool {
	allowed := make(map[string]bool, len(n.Fields))
	for _, f := range n.Fields {
		allowed[f.Name] = true
	}
	return allowed
}

// Required returns the required field names in declaration order.
func (n *Node) Required() []string {
	var names []string
	for _, f := range n.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Optional returns the optional field names in declaration order.
func (n *Node) Optional() []string {
	var names []string
	for _, f := range n.Fields {
		if !f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Names returns every field name in declaration order.
func (n *Node) Names() []string {
	names := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		names = append(names, f.Name)
	}
	return names
}

// TypeField is the attribute every role block uses to select its schema.
const TypeField = "type"

// RoleSchema is the schema of one role type.
type RoleSchema struct {
	Type        string
	Description string
	Node        *Node
}

// OrderedRange returns a rule requiring minField <= maxField when both are
// present integers. The violation is attributed to maxField.
func OrderedRange(minField, maxField string) Rule {
	return Rule{
		Description: fmt.Sprintf("%s <= %s", minField, maxField),
		Check: func(m *document.Node) []Violation {
			lo, ok := m.Get(minField)
			if !ok {
				return nil
			}
			hi, ok := m.Get(maxField)
			if !ok {
				return nil
			}
			a, okA := check.ParseInteger(lo)
			b, okB := check.ParseInteger(hi)
			if !okA || !okB || check.AtMost(a, b) {
				return nil
			}
			return []Violation{{
				Field:   maxField,
				Problem: check.Problemf("%s (%s) must not be less than %s (%s)", maxField, b, minField, a),
			}}
		},
	}
}
