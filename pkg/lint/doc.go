// Package lint checks configuration files on disk.
//
// A Linter ties the pieces together for one file: it parses the YAML with
// package document, validates the tree with package validator, records the
// outcome with the metrics collector and logs it. A run checks a set of
// files under one run ID:
//
//	l := lint.New(lint.Options{Validator: validator.New(reg)})
//	run, err := l.CheckPath(ctx, lint.TriggerInitial, "configs/")
//	if err != nil {
//	    return err
//	}
//	if !run.Valid() {
//	    os.Exit(1)
//	}
//
// Files that cannot be read or parsed are not run errors: they produce an
// Invalid result with one structural finding, so every file in a run gets
// a verdict.
package lint
