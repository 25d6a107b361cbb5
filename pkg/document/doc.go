// Package document holds the in-memory tree of a topology configuration file.
//
// The validator never sees raw text. A front end turns the file into a tree of
// mappings, lists and scalars and hands the root node over:
//
//	root, err := document.ParseFile("astrond.yml", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rep := validator.Validate(root)
//
// Every node keeps its source Location so findings can point at a line.
// Mapping entries keep document order, which makes diagnostics deterministic.
//
// Tests and callers that build documents by hand can use the constructors:
//
//	root := document.Map(
//	    "messagedirector", document.Map("bind", "127.0.0.1:7199"),
//	    "roles", document.Seq(document.Map("type", "stateserver", "control", 100100)),
//	)
package document
