package schema

import (
	"sync"

	"astron-hq/astroncheck/pkg/check"
)

// ChannelPolicy controls which channel ids operators may assign to roles.
type ChannelPolicy struct {
	// Reserved is the band kept for control and broadcast channels.
	Reserved check.Band
}

// DefaultChannelPolicy reserves channels 1-999. The low range carries the
// control channel (1) and the broadcast channels for clients (10),
// state servers (12) and database servers (13). Ids from 1000 upward are
// accepted; deployments that keep everything below 100000 for the cluster
// itself configure a wider band instead.
var DefaultChannelPolicy = ChannelPolicy{
	Reserved: check.Band{Min: 1, Max: 999},
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide built-in registry using
// DefaultChannelPolicy. It is built on first use and never modified.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = Builtin(DefaultChannelPolicy)
	})
	return defaultRegistry
}

// Builtin builds a registry holding the top-level schema and every built-in
// role schema, with channel fields checked against policy.
func Builtin(policy ChannelPolicy) *Registry {
	r := NewRegistry(TopLevel())
	r.MustRegister(
		StateServer(policy),
		ClientAgent(policy),
		EventLogger(),
		Database(policy),
	)
	return r
}

// TopLevel returns the schema of the document root.
func TopLevel() *Node {
	return Object(func(b *Builder) {
		b.RequiredObject("messagedirector", func(md *Builder) {
			md.RequiredAddress("bind")
			md.OptionalAddress("connect")
			md.Optional("threaded", KindBool)
		})
		b.OptionalObject("general", func(g *Builder) {
			g.List("dc_files", false, true, Element(KindFilePath))
			g.OptionalAddress("eventlogger")
		})
		b.Roles("roles", true, true)
	})
}

// StateServer is the schema of the "stateserver" role.
func StateServer(policy ChannelPolicy) RoleSchema {
	return Role("stateserver", "Keeps distributed object state", func(b *Builder) {
		b.RequiredChannel("control", policy)
	})
}

// ClientAgent is the schema of the "clientagent" role.
func ClientAgent(policy ChannelPolicy) RoleSchema {
	return Role("clientagent", "Accepts game client connections", func(b *Builder) {
		b.RequiredAddress("bind")
		b.Required("version", KindString)
		b.Optional("haproxy", KindBool)
		b.Optional("manual_dc_hash", KindString)
		b.RequiredObject("channels", func(ch *Builder) {
			ch.RequiredChannel("min", policy)
			ch.RequiredChannel("max", policy)
			ch.Rule(OrderedRange("min", "max"))
		})
		b.OptionalObject("client", func(c *Builder) {
			c.Optional("relocate", KindBool)
			c.Enum("add_interest", false, "visible", "enabled", "disabled")
			c.Optional("manual_dc_hash", KindString)
			c.Optional("send_hash", KindBool)
			c.Optional("send_version", KindBool)
		})
		b.OptionalObject("tuning", func(t *Builder) {
			t.Optional("interest_timeout", KindPositiveInteger)
		})
	})
}

// EventLogger is the schema of the "eventlogger" role.
func EventLogger() RoleSchema {
	return Role("eventlogger", "Writes cluster events to rotating log files", func(b *Builder) {
		b.OptionalAddress("bind")
		b.Optional("output", KindString)
		b.Optional("rotate_interval", KindString)
	})
}

// Database is the schema of the "database" role.
func Database(policy ChannelPolicy) RoleSchema {
	return Role("database", "Stores persistent distributed objects", func(b *Builder) {
		b.RequiredChannel("control", policy)
		b.RequiredObject("generate", func(g *Builder) {
			g.Required("min", KindPositiveInteger)
			g.Required("max", KindPositiveInteger)
			g.Rule(OrderedRange("min", "max"))
		})
		b.RequiredObject("backend", func(be *Builder) {
			be.Enum("type", true, "yaml", "mongodb")
			be.Optional("directory", KindFilePath)
			be.Optional("server", KindString)
			be.Optional("database", KindString)
			be.Optional("username", KindString)
			be.Optional("password", KindString)
		})
	})
}
