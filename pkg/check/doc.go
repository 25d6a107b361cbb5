// Package check provides the reusable value checkers used by field specs.
//
// A Checker looks at one document node and returns a Problem or nil. Checkers
// know nothing about paths or schemas; the validator runs them and turns each
// Problem into a finding at the right location.
//
// Kind checkers (Int, String, NetworkAddress, NonEmptyList, ...) verify the
// shape of a value. Constraint checkers (Positive, NotReserved, Enum) verify
// its content and stay silent on values of the wrong shape, so a chain such as
//
//	check.Run(node, check.Int(), check.Positive(), check.NotReserved(band))
//
// reports "must be an integer" once instead of three times, while a value
// that is both non-positive and reserved would surface every failed
// constraint.
package check
