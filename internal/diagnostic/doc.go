// Package diagnostic provides structured findings produced while checking
// a factor table before closure construction.
//
// Findings carry:
//   - a severity (info, warning, error)
//   - a stable code such as "conflicting_factor"
//   - the unit pair ("px->in") or unit they concern, if any
package diagnostic
