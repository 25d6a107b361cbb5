package schema

import (
	"strings"

	"astron-hq/astroncheck/pkg/check"
)

// Builder assembles a Node field by field.
// Every mapping built this way is closed: undeclared attributes are rejected.
type Builder struct {
	node *Node
}

// Object builds a mapping schema.
func Object(fn func(b *Builder)) *Node {
	b := &Builder{node: &Node{}}
	fn(b)
	return b.node
}

// Role builds a role schema. The common "type" attribute is declared first.
func Role(roleType, description string, fn func(b *Builder)) RoleSchema {
	node := Object(func(b *Builder) {
		b.Required(TypeField, KindString)
		fn(b)
	})
	return RoleSchema{Type: roleType, Description: description, Node: node}
}

// Field adds a fully specified field.
func (b *Builder) Field(spec FieldSpec) *Builder {
	b.node.Fields = append(b.node.Fields, spec)
	return b
}

// Required adds a required field of the given kind.
func (b *Builder) Required(name string, kind Kind, checks ...check.Checker) *Builder {
	return b.Field(FieldSpec{Name: name, Kind: kind, Required: true, Checks: checks})
}

// Optional adds an optional field of the given kind.
func (b *Builder) Optional(name string, kind Kind, checks ...check.Checker) *Builder {
	return b.Field(FieldSpec{Name: name, Kind: kind, Checks: checks})
}

// RequiredAddress adds a required host:port field.
func (b *Builder) RequiredAddress(name string) *Builder {
	return b.Required(name, KindNetworkAddress)
}

// OptionalAddress adds an optional host:port field.
func (b *Builder) OptionalAddress(name string) *Builder {
	return b.Optional(name, KindNetworkAddress)
}

// RequiredChannel adds a required channel id: a positive integer outside the
// policy's reserved band.
func (b *Builder) RequiredChannel(name string, policy ChannelPolicy) *Builder {
	return b.Field(channelField(name, true, policy))
}

// OptionalChannel adds an optional channel id.
func (b *Builder) OptionalChannel(name string, policy ChannelPolicy) *Builder {
	return b.Field(channelField(name, false, policy))
}

func channelField(name string, required bool, policy ChannelPolicy) FieldSpec {
	spec := FieldSpec{Name: name, Kind: KindPositiveInteger, Required: required}
	if !policy.Reserved.IsZero() {
		spec.Checks = []check.Checker{check.NotReserved(policy.Reserved)}
		spec.Constraint = "channel, reserved " + policy.Reserved.String()
	}
	return spec
}

// Enum adds a string field restricted to values.
func (b *Builder) Enum(name string, required bool, values ...string) *Builder {
	return b.Field(FieldSpec{
		Name:       name,
		Kind:       KindString,
		Required:   required,
		Checks:     []check.Checker{check.Enum(values...)},
		Constraint: "one of " + strings.Join(values, "|"),
	})
}

// List adds a list field whose elements follow elem.
func (b *Builder) List(name string, required, nonEmpty bool, elem FieldSpec) *Builder {
	return b.Field(FieldSpec{Name: name, Kind: KindList, Required: required, NonEmpty: nonEmpty, Elem: &elem})
}

// Roles adds a list of role blocks.
func (b *Builder) Roles(name string, required, nonEmpty bool) *Builder {
	return b.Field(FieldSpec{Name: name, Kind: KindNestedRole, Required: required, NonEmpty: nonEmpty})
}

// RequiredObject adds a required nested mapping.
func (b *Builder) RequiredObject(name string, fn func(b *Builder)) *Builder {
	return b.Field(FieldSpec{Name: name, Kind: KindMapping, Required: true, Child: Object(fn)})
}

// OptionalObject adds an optional nested mapping.
func (b *Builder) OptionalObject(name string, fn func(b *Builder)) *Builder {
	return b.Field(FieldSpec{Name: name, Kind: KindMapping, Child: Object(fn)})
}

// Rule adds a cross-field rule.
func (b *Builder) Rule(r Rule) *Builder {
	b.node.Rules = append(b.node.Rules, r)
	return b
}

// Element returns an element spec for List.
func Element(kind Kind, checks ...check.Checker) FieldSpec {
	return FieldSpec{Kind: kind, Checks: checks}
}
