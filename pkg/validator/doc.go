// Package validator checks a parsed configuration document against the
// schema registry and reports every problem it finds in one pass.
//
// # Overview
//
// Validation is a single linear walk. Walk yields the document root with
// the top-level schema, then every role block with the schema selected by
// its "type" attribute. At each schema-bearing mapping the engine applies
// the same closed-world algorithm:
//
//  1. attributes present but not declared are reported as unexpected
//  2. declared required attributes that are absent are reported as missing
//  3. every declared attribute present runs its field checkers; nested
//     mappings and list elements are checked recursively
//  4. cross-field rules of the schema run last
//
// A role whose type is missing or not registered produces one finding and
// no field checks. Only a root that is not a mapping ends the pass early.
//
// # Usage
//
//	doc, err := document.ParseFile("astrond.yml", document.DefaultMaxFileSize)
//	if err != nil {
//	    return err
//	}
//	rep := validator.Validate(doc)
//	fmt.Println(rep.Verdict) // "Valid" or "Invalid"
//
// # Thread Safety
//
// A Validator holds only a read-only registry; Validate may be called from
// any number of goroutines.
package validator
