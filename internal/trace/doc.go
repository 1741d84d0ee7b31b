// Package trace provides the canonical JSON codec used for run records.
//
// Solutions and verdict summaries are serialized with Marshal before
// they touch the ledger or a golden file, so equal runs always produce
// byte-identical records.
package trace
