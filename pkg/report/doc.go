// Package report holds the output of a validation pass: the ordered list of
// findings and the Valid/Invalid verdict derived from it.
//
// A Finding names the document path ("roles[0].control"), a message, an
// error category and, when the document came from a file, the source
// location:
//
//	rep := report.New(findings)
//	if !rep.Valid() {
//	    rep.Format(os.Stderr)
//	}
//
// The verdict renders literally as "Valid" or "Invalid" in text and JSON.
package report
