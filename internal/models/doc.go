// Package models defines the core domain models for the expense ledger.
//
// # Records and derivations
//
// Expenses and Payments are the recorded history of a group. Balances and
// settlement suggestions are never stored: they are recomputed from the full
// non-deleted history on every read (see internal/ledger). Recomputing from
// source avoids incremental-update drift at the cost of O(n) work per read,
// which is fine for per-group volumes in the hundreds.
//
// # Soft deletes
//
// Expenses and Payments carry an IsDeleted tombstone instead of being removed.
// A tombstoned record contributes nothing to any balance but stays queryable
// for history. The only hard delete in the system is whole-group deletion.
//
// # Identity
//
// Members are keyed by a stable uid. Balance maps, payer lines and split
// lines all reference members by uid only; display name, role and status are
// carried for the API surface and never influence balance math.
package models
