// Astroncheck validates configuration files for Astron server clusters.
//
// It checks the message director settings, the general section and every
// role block (stateserver, clientagent, database, eventlogger) against the
// built-in role schemas, and reports every problem it finds in one pass.
//
// Usage:
//
//	# Validate one file
//	astroncheck check --file astrond.yml
//
//	# Validate every .yml/.yaml file under a directory, as JSON
//	astroncheck check --dir configs/ --format json
//
//	# Re-validate on change and serve metrics and health probes
//	astroncheck check --dir configs/ --watch --metrics-addr :9102
//
//	# Inspect the role schemas
//	astroncheck schema list
//	astroncheck schema show clientagent
//
// Exit status is 0 when every file is valid, 1 when at least one file is
// invalid and 2 on usage or settings errors.
package main

func main() {
	Execute()
}
