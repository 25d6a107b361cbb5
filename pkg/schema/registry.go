package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownRole is returned by SchemaFor for unregistered role types.
var ErrUnknownRole = errors.New("unknown role type")

// Registry maps role type names to their schemas and holds the top-level
// document schema.
//
// A Registry is populated once at start-up. After that it is only read and
// may be shared between goroutines without locking; Register must not be
// called concurrently with lookups.
type Registry struct {
	top   *Node
	roles map[string]RoleSchema
}

// NewRegistry creates a registry with the given top-level schema and no roles.
func NewRegistry(top *Node) *Registry {
	if top == nil {
		top = &Node{}
	}
	return &Registry{
		top:   top,
		roles: make(map[string]RoleSchema),
	}
}

// Register adds a role schema. Empty and duplicate type names are rejected.
func (r *Registry) Register(s RoleSchema) error {
	if s.Type == "" {
		return errors.New("role schema has an empty type name")
	}
	if s.Node == nil {
		return fmt.Errorf("role schema %q has no fields", s.Type)
	}
	if _, exists := r.roles[s.Type]; exists {
		return fmt.Errorf("role type %q is already registered", s.Type)
	}
	r.roles[s.Type] = s
	return nil
}

// MustRegister is Register for the built-in table; it panics on error.
func (r *Registry) MustRegister(schemas ...RoleSchema) {
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

// SchemaFor returns the schema registered for roleType.
func (r *Registry) SchemaFor(roleType string) (RoleSchema, error) {
	s, ok := r.roles[roleType]
	if !ok {
		return RoleSchema{}, fmt.Errorf("%w %q", ErrUnknownRole, roleType)
	}
	return s, nil
}

// TopLevel returns the schema of the document root.
func (r *Registry) TopLevel() *Node {
	return r.top
}

// Types returns the registered role types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.roles))
	for t := range r.roles {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
