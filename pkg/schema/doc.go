// Package schema defines the declarative schemas the validator enforces.
//
// A schema is data, not code. Each mapping in a configuration document is
// described by a Node listing its fields; each field has a Kind, a
// required/optional flag and optional extra checkers. Mappings are closed:
// any attribute not listed is rejected.
//
// The Registry holds the top-level document schema and one RoleSchema per
// role type, keyed by the value of the role's "type" attribute:
//
//	reg := schema.Builtin(schema.DefaultChannelPolicy)
//	ss, err := reg.SchemaFor("stateserver")
//
// Adding a role type means registering one more RoleSchema; the validator
// needs no changes:
//
//	reg.MustRegister(schema.Role("uberdog", "Global singleton objects", func(b *schema.Builder) {
//	    b.RequiredChannel("control", schema.DefaultChannelPolicy)
//	    b.OptionalObject("tuning", func(t *schema.Builder) {
//	        t.Optional("flush_interval", schema.KindPositiveInteger)
//	    })
//	}))
//
// Default returns a shared, read-only registry built from the built-in
// table. It is safe for concurrent use.
package schema
