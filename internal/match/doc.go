// Package match ranks identifiers by similarity and scores how well a
// database column type fits a Go field kind.
//
// It backs the "did you mean" hints of the generator diagnostics and of
// fromrow.CheckColumns, and the type report of the check command.
package match
