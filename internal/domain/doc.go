// Package domain defines the core business entities of the task board:
// boards, columns, and tasks, together with their validation rules and
// the identity contract shared by all entities.
//
// Entities are transient: they are hydrated from the store for the
// duration of one operation, mutated, persisted, and discarded. The
// store is the source of truth between operations. The Task aggregate
// additionally buffers a domain event per mutation; see the events
// package for the publication contract.
package domain
