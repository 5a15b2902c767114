// Package pon matches structural-variant calls against a panel of normals: a
// list of recurrent artifact regions with hit counts.
//
// Regions are 1-based and closed.  Paired regions are bucketed by chromosome
// pair and orientations, single regions by chromosome and orientation; within
// a bucket they are sorted by start so that a query is a binary search
// followed by a short scan.
package pon
