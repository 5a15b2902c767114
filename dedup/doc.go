// Package dedup decides which structural-variant calls are duplicates of
// other calls.
//
// Paired SVs are compared against the SVs of their alternate paths; single
// breakends are compared against overlapping single breakends.  Calls are
// ranked precise first, then passing filters, then by quality.
package dedup
