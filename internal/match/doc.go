// Package match ranks known units against a mistyped token so that errors
// can suggest what the caller probably meant.
//
// Key functions:
//   - Normalize: folds tokens and labels to a comparable form
//   - Levenshtein: computes edit distance between strings
//   - Rank: scores every known unit against an input
//   - Suggest: picks the plausible candidates for an error message
package match
