// Package diagnostic collects errors, warnings and infos produced while
// planning record types.
//
// Diagnostics carry a stable code (FR0xx for problems, FR1xx for infos),
// the record type and field they concern, the source position and optional
// "did you mean" suggestions.
package diagnostic
